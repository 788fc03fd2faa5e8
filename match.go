package rpng

// LZ77 matching over a rolling 4-byte hash, the encoder's half of deflate
// (spec §4.B). One matcher instance is scoped to a single block's input
// slice and is never reused across calls.

const (
	hashBits    = 15
	hashSize    = 1 << hashBits
	winSize     = 1 << 15 // 32 KiB
	winMask     = winSize - 1
	minMatchLen = 4
	maxMatchLen = 258
)

func hash4(b []byte, p int) uint32 {
	v := uint32(b[p]) | uint32(b[p+1])<<8 | uint32(b[p+2])<<16 | uint32(b[p+3])<<24
	return (v * 0x9E377989) >> (32 - hashBits)
}

func maxChainForLevel(level int) int {
	if level < 8 {
		return 1 << uint(level+1)
	}
	return 1 << 13
}

// lzToken is either a literal byte (length == 0) or a length/distance
// back-reference.
type lzToken struct {
	literal  byte
	length   int
	distance int
}

// matchState holds the chain tables for one block's matching pass.
type matchState struct {
	data     []byte
	head     [hashSize]int32 // position+1, 0 means empty
	prev     [winSize]int32  // position+1, 0 means empty
	level    int
	maxChain int
}

func newMatchState(data []byte, level int) *matchState {
	return &matchState{data: data, level: level, maxChain: maxChainForLevel(level)}
}

func (m *matchState) insert(p int) {
	if p+4 > len(m.data) {
		return
	}
	h := hash4(m.data, p)
	m.prev[p&winMask] = m.head[h]
	m.head[h] = int32(p + 1)
}

// longestMatch returns the best (length, distance) starting at p, or
// length==0 if no match of at least minMatchLen was found.
func (m *matchState) longestMatch(p int) (int, int) {
	data := m.data
	h := hash4(data, p)
	cand := m.head[h]
	bestLen := 0
	bestDist := 0
	limit := len(data)
	maxLen := limit - p
	if maxLen > maxMatchLen {
		maxLen = maxMatchLen
	}
	chain := m.maxChain
	minPos := p - winSize
	for cand != 0 && chain > 0 {
		cp := int(cand) - 1
		if cp < minPos {
			break
		}
		if cp != p && data[cp+bestLen] == data[p+bestLen] || bestLen == 0 {
			l := matchLength(data, cp, p, maxLen)
			if l > bestLen {
				bestLen = l
				bestDist = p - cp
				if l >= maxLen {
					break
				}
			}
		}
		cand = m.prev[cp&winMask]
		chain--
	}
	if bestLen < minMatchLen {
		return 0, 0
	}
	return bestLen, bestDist
}

func matchLength(data []byte, a, b, maxLen int) int {
	n := 0
	for n < maxLen && data[a+n] == data[b+n] {
		n++
	}
	return n
}

// lzParse runs the full matching pass over data (one block's worth),
// producing a token stream plus the literal/length and distance symbol
// frequency tables the Huffman stage needs. Levels >= 5 get one-step lazy
// matching: a candidate match at p is held back if the match starting at
// p+1 is strictly longer.
func lzParse(data []byte, level int) ([]lzToken, []int, []int) {
	m := newMatchState(data, level)
	litFreq := make([]int, 288)
	distFreq := make([]int, 30)
	var toks []lzToken

	lazy := level >= 5
	n := len(data)
	p := 0
	var pendingLen, pendingDist, pendingPos int
	havePending := false

	emitLiteral := func(pos int) {
		toks = append(toks, lzToken{literal: data[pos]})
		litFreq[data[pos]]++
	}
	emitMatch := func(length, dist int) {
		toks = append(toks, lzToken{length: length, distance: dist})
		lsym, _, _ := lengthToSymbol(length)
		dsym, _, _ := distanceToSymbol(dist)
		litFreq[lsym]++
		distFreq[dsym]++
	}

	for p < n {
		length, dist := 0, 0
		if p+minMatchLen <= n {
			length, dist = m.longestMatch(p)
		}
		m.insert(p)

		if !lazy {
			if length >= minMatchLen {
				emitMatch(length, dist)
				for i := 1; i < length && p+i < n; i++ {
					m.insert(p + i)
				}
				p += length
			} else {
				emitLiteral(p)
				p++
			}
			continue
		}

		if havePending {
			if length > pendingLen {
				emitLiteral(pendingPos)
				havePending = false
				if length >= minMatchLen {
					pendingLen, pendingDist, pendingPos, havePending = length, dist, p, true
				}
				p++
				continue
			}
			emitMatch(pendingLen, pendingDist)
			for i := 1; i < pendingLen && p+i-1 < n; i++ {
				m.insert(p + i - 1)
			}
			p = pendingPos + pendingLen
			havePending = false
			continue
		}

		if length >= minMatchLen {
			pendingLen, pendingDist, pendingPos, havePending = length, dist, p, true
			p++
			continue
		}
		emitLiteral(p)
		p++
	}
	if havePending {
		emitMatch(pendingLen, pendingDist)
	}
	litFreq[256]++ // end-of-block marker
	return toks, litFreq, distFreq
}
