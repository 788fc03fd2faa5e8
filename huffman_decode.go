package rpng

// Flat Huffman decode tables: one primary table of 1<<primaryBits entries,
// with long codes (length > primaryBits) spilling into sub-tables appended
// to the same backing array and addressed by offset (spec §4.C). This is
// deliberately not the linked-list-of-codes shape vendored stdlib decoders
// use elsewhere in the pack (see jonjohnsonjr-targz/sgzip's vendored
// compress/flate) — a single flat array indexed by the next primaryBits
// bits of the stream is the table layout the spec calls for.

const (
	litLenPrimaryBits = 10
	distPrimaryBits   = 8
	clPrimaryBits     = 7
)

// decEntry bit layout: bits [16:] hold a symbol (direct entry) or a
// sub-table offset (long entry); bit 4 (0x10) marks a long entry; the low
// nibble then holds the sub-table's index width. Direct entries pack their
// code length into the low bits instead, which is always < 16 for every
// primaryBits this package uses, so the two shapes never collide.
type decTable struct {
	table       []uint32
	primaryBits uint
}

const longEntryFlag = 0x10

func buildDecodeTable(lengths []int, primaryBits uint) *decTable {
	codes := canonicalCodes(lengths)
	table := make([]uint32, 1<<primaryBits)

	type longSym struct {
		sym, length int
		code        uint32
	}
	var longs []longSym

	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		if uint(l) <= primaryBits {
			code := codes[sym]
			step := 1 << uint(l)
			entry := uint32(sym<<16) | uint32(l)
			for idx := int(code); idx < len(table); idx += step {
				table[idx] = entry
			}
		} else {
			longs = append(longs, longSym{sym, l, codes[sym]})
		}
	}

	if len(longs) > 0 {
		prefixMask := uint32(1<<primaryBits) - 1
		groups := map[uint32][]longSym{}
		for _, e := range longs {
			prefix := e.code & prefixMask
			groups[prefix] = append(groups[prefix], e)
		}
		for prefix, group := range groups {
			subBits := 0
			for _, e := range group {
				rem := e.length - int(primaryBits)
				if rem > subBits {
					subBits = rem
				}
			}
			sub := make([]uint32, 1<<uint(subBits))
			for _, e := range group {
				rem := e.length - int(primaryBits)
				subCode := e.code >> primaryBits
				step := 1 << uint(rem)
				entry := uint32(e.sym<<16) | uint32(e.length)
				for idx := int(subCode); idx < len(sub); idx += step {
					sub[idx] = entry
				}
			}
			offset := len(table)
			table = append(table, sub...)
			table[prefix] = uint32(offset<<16) | longEntryFlag | uint32(subBits)
		}
	}
	return &decTable{table: table, primaryBits: primaryBits}
}

// decodeSymbol reads one symbol from br using t, consuming its code bits,
// and returns the symbol; an empty table slot yields a Malformed error.
func decodeSymbol(br *bitReader, t *decTable) (int, error) {
	peeked := br.peek(t.primaryBits)
	entry := t.table[peeked]
	if entry == 0 {
		return 0, newErr(Malformed, "invalid huffman code")
	}
	if isLongEntry(entry) {
		offset := int(entry >> 16)
		subBits := uint(entry & 0x0F)
		wide := br.peek(t.primaryBits + subBits)
		subIdx := wide >> t.primaryBits
		sub := t.table[offset+int(subIdx)]
		if sub == 0 {
			return 0, newErr(Malformed, "invalid huffman code")
		}
		length := uint(sub & 0xFFFF)
		br.consume(length)
		return int(sub >> 16), nil
	}
	length := uint(entry & 0xFFFF)
	br.consume(length)
	return int(entry >> 16), nil
}

// isLongEntry distinguishes a sub-table pointer from a direct (symbol,
// length) entry. Direct entries store their code length in the low 16
// bits, which never reaches longEntryFlag (16) for any alphabet this
// package decodes (max code length 15), so testing the flag bit alone is
// unambiguous.
func isLongEntry(entry uint32) bool {
	return entry&longEntryFlag != 0
}
