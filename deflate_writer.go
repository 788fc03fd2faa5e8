package rpng

// DEFLATE encoder (RFC 1951), component B: one dynamic-Huffman block per up
// to blockCap bytes of input, LZ77 matching via match.go, canonical Huffman
// via huffman.go, LSB-first bit stream via bitwriter.go.

const blockCap = 256 << 10 // 256 KiB

// deflate compresses input into a raw (unwrapped) deflate stream at the
// given level (1-9; level gates lazy matching and the hash chain depth, see
// match.go). The encoder is infallible given sufficient memory.
func deflate(input []byte, level int) []byte {
	bw := newBitWriter(deflateBound(len(input)))
	if len(input) == 0 {
		writeDeflateBlock(bw, nil, level, true)
		return bw.bytes()
	}
	for off := 0; off < len(input); off += blockCap {
		end := off + blockCap
		if end > len(input) {
			end = len(input)
		}
		last := end == len(input)
		writeDeflateBlock(bw, input[off:end], level, last)
	}
	return bw.bytes()
}

// deflateZlib wraps deflate's output in the RFC 1950 zlib container: a
// 2-byte header (0x78 0x01, "deflate / 32K window / fastest") and a 4-byte
// big-endian Adler-32 trailer over the uncompressed input.
func deflateZlib(input []byte, level int) []byte {
	body := deflate(input, level)
	out := make([]byte, 0, 2+len(body)+4)
	out = append(out, 0x78, 0x01)
	out = append(out, body...)
	var trailer [4]byte
	putUint32BE(trailer[:], adler32Of(input))
	out = append(out, trailer[:]...)
	return out
}

// deflateBound returns a safe over-estimate of the raw deflate output size
// for n bytes of input, per spec §4.B.
func deflateBound(n int) int {
	a := 128 + n*110/100
	b := 128 + n + ((n/(31*1024))+1)*5
	if a > b {
		return a
	}
	return b
}

func writeDeflateBlock(bw *bitWriter, block []byte, level int, last bool) {
	toks, litFreq, distFreq := lzParse(block, level)

	distUsed := false
	for _, f := range distFreq {
		if f > 0 {
			distUsed = true
			break
		}
	}
	if !distUsed {
		distFreq[0] = 1
	}

	litLens := genCodeLengths(litFreq, 15)
	distLens := genCodeLengths(distFreq, 15)
	litCodes := canonicalCodes(litLens)
	distCodes := canonicalCodes(distLens)

	maxLit := 256
	for i := len(litLens) - 1; i > maxLit; i-- {
		if litLens[i] != 0 {
			maxLit = i
			break
		}
	}
	maxDist := 0
	for i := len(distLens) - 1; i > 0; i-- {
		if distLens[i] != 0 {
			maxDist = i
			break
		}
	}

	clLens := append(append([]int{}, litLens[:maxLit+1]...), distLens[:maxDist+1]...)
	clToks := runLengthEncodeLengths(clLens)

	clFreq := make([]int, 19)
	for _, t := range clToks {
		clFreq[t.sym]++
	}
	clLens19 := genCodeLengths(clFreq, 7)
	clCodes := canonicalCodes(clLens19)

	hclen := 4
	for i := 18; i >= 4; i-- {
		if clLens19[clPreCodeOrder[i]] != 0 {
			hclen = i + 1
			break
		}
	}

	bfinal := uint32(0)
	if last {
		bfinal = 1
	}
	bw.writeBits(bfinal, 1)
	bw.writeBits(2, 2) // BTYPE = dynamic Huffman

	bw.writeBits(uint32(maxLit-256), 5)  // HLIT
	bw.writeBits(uint32(maxDist), 5)     // HDIST
	bw.writeBits(uint32(hclen-4), 4)     // HCLEN

	for i := 0; i < hclen; i++ {
		bw.writeBits(uint32(clLens19[clPreCodeOrder[i]]), 3)
	}

	for _, t := range clToks {
		bw.writeCode(clCodes[t.sym], uint(clLens19[t.sym]))
		if t.nbits > 0 {
			bw.writeBits(t.extra, t.nbits)
		}
	}

	for _, t := range toks {
		if t.length == 0 {
			bw.writeCode(litCodes[t.literal], uint(litLens[t.literal]))
			continue
		}
		lsym, lextra, lnbits := lengthToSymbol(t.length)
		bw.writeCode(litCodes[lsym], uint(litLens[lsym]))
		if lnbits > 0 {
			bw.writeBits(lextra, lnbits)
		}
		dsym, dextra, dnbits := distanceToSymbol(t.distance)
		bw.writeCode(distCodes[dsym], uint(distLens[dsym]))
		if dnbits > 0 {
			bw.writeBits(dextra, dnbits)
		}
	}
	bw.writeCode(litCodes[endOfBlock], uint(litLens[endOfBlock]))
}
