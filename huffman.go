package rpng

import "sort"

// Canonical Huffman code construction shared by the deflate encoder for the
// lit/len alphabet (288 symbols, max length 15), the distance alphabet (30
// symbols, max length 15), and the 19-symbol pre-code (max length 7).
//
// Code lengths are chosen with a package-merge construction (the "coin
// collector's" algorithm), which produces an optimal length-limited prefix
// code in one pass instead of zlib's build-then-reflow two-pass approach —
// both are valid readings of spec §4.B's "package-merge-style length
// limitation", and package-merge is the textbook name for the technique.

// genCodeLengths returns, for each symbol with freq[i] > 0, the code length
// of an optimal prefix code limited to maxBits. Symbols with freq[i] == 0
// get length 0 (unused). With no nonzero frequency every length is 0; with
// exactly one, that symbol gets length 1.
func genCodeLengths(freq []int, maxBits int) []int {
	n := len(freq)
	lengths := make([]int, n)

	type item struct {
		weight  int64
		symbols []int
	}

	var present []item
	for i, f := range freq {
		if f > 0 {
			present = append(present, item{weight: int64(f), symbols: []int{i}})
		}
	}
	switch len(present) {
	case 0:
		return lengths
	case 1:
		lengths[present[0].symbols[0]] = 1
		return lengths
	}

	sort.Slice(present, func(i, j int) bool { return present[i].weight < present[j].weight })

	// layer holds the sorted item list for the current bit; at bit 1 it is
	// just the base items.
	base := present
	layer := base
	counts := make([]int, n) // accumulated code-length increments per symbol

	for bit := 1; bit <= maxBits; bit++ {
		if bit > 1 {
			// Package consecutive pairs of the previous layer.
			var packages []item
			for i := 0; i+1 < len(layer); i += 2 {
				packages = append(packages, item{
					weight:  layer[i].weight + layer[i+1].weight,
					symbols: append(append([]int{}, layer[i].symbols...), layer[i+1].symbols...),
				})
			}
			merged := make([]item, 0, len(base)+len(packages))
			merged = append(merged, base...)
			merged = append(merged, packages...)
			sort.Slice(merged, func(i, j int) bool { return merged[i].weight < merged[j].weight })
			layer = merged
		}
		if bit == maxBits {
			take := 2*len(base) - 2
			if take > len(layer) {
				take = len(layer)
			}
			for i := 0; i < take; i++ {
				for _, s := range layer[i].symbols {
					counts[s]++
				}
			}
		}
	}
	for i, c := range counts {
		lengths[i] = c
	}
	return lengths
}

// canonicalCodes assigns canonical Huffman codes given per-symbol lengths,
// returning each code already bit-reversed into the LSB-first order the
// deflate bit stream requires.
func canonicalCodes(lengths []int) []uint32 {
	n := len(lengths)
	codes := make([]uint32, n)

	maxLen := 0
	for _, l := range lengths {
		if l > maxLen {
			maxLen = l
		}
	}
	if maxLen == 0 {
		return codes
	}

	blCount := make([]int, maxLen+1)
	for _, l := range lengths {
		if l > 0 {
			blCount[l]++
		}
	}
	nextCode := make([]uint32, maxLen+2)
	code := uint32(0)
	for bits := 1; bits <= maxLen; bits++ {
		code = (code + uint32(blCount[bits-1])) << 1
		nextCode[bits] = code
	}
	for sym := 0; sym < n; sym++ {
		l := lengths[sym]
		if l == 0 {
			continue
		}
		c := nextCode[l]
		nextCode[l]++
		codes[sym] = reverseBits(c, uint(l))
	}
	return codes
}

func reverseBits(v uint32, n uint) uint32 {
	var r uint32
	for i := uint(0); i < n; i++ {
		r = (r << 1) | (v & 1)
		v >>= 1
	}
	return r
}

// clPreCodeOrder is the order in which pre-code lengths are transmitted,
// chosen so that trailing zero lengths (common for long, short alphabets)
// can be truncated by HCLEN.
var clPreCodeOrder = [19]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// clToken is one emitted pre-code symbol, optionally carrying extra bits
// (for symbols 16/17/18, which encode run lengths).
type clToken struct {
	sym   int
	extra uint32
	nbits uint
}

// runLengthEncodeLengths turns a concatenated code-length table (lit/len
// lengths followed by distance lengths) into the RLE token stream defined
// by RFC 1951 §3.2.7, using symbols 16 (repeat previous 3-6), 17 (zero run
// 3-10), 18 (zero run 11-138).
func runLengthEncodeLengths(lens []int) []clToken {
	var toks []clToken
	n := len(lens)
	i := 0
	for i < n {
		v := lens[i]
		j := i + 1
		for j < n && lens[j] == v {
			j++
		}
		runLen := j - i
		if v == 0 {
			for runLen > 0 {
				switch {
				case runLen < 3:
					toks = append(toks, clToken{sym: 0})
					runLen--
				case runLen <= 10:
					toks = append(toks, clToken{sym: 17, extra: uint32(runLen - 3), nbits: 3})
					runLen = 0
				default:
					take := runLen
					if take > 138 {
						take = 138
					}
					toks = append(toks, clToken{sym: 18, extra: uint32(take - 11), nbits: 7})
					runLen -= take
				}
			}
		} else {
			toks = append(toks, clToken{sym: v})
			runLen--
			for runLen > 0 {
				switch {
				case runLen < 3:
					toks = append(toks, clToken{sym: v})
					runLen--
				default:
					take := runLen
					if take > 6 {
						take = 6
					}
					toks = append(toks, clToken{sym: 16, extra: uint32(take - 3), nbits: 2})
					runLen -= take
				}
			}
		}
		i = j
	}
	return toks
}
