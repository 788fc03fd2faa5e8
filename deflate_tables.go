package rpng

// RFC 1951 length and distance code tables, shared by the encoder (to map a
// match length/distance to a symbol + extra bits) and the decoder (to map a
// decoded symbol + extra bits back to a length/distance).

var lengthBase = [29]int{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
	35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var lengthExtraBits = [29]uint{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
	3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
}

var distBase = [30]int{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
	257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145,
	8193, 12289, 16385, 24577,
}

var distExtraBits = [30]uint{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
	7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// lengthToSymbol maps a match length (3..258) to (symbol 257..285, extra
// bits value, extra bit count).
func lengthToSymbol(length int) (int, uint32, uint) {
	for i := len(lengthBase) - 1; i >= 0; i-- {
		if length >= lengthBase[i] {
			return 257 + i, uint32(length - lengthBase[i]), lengthExtraBits[i]
		}
	}
	return 257, 0, 0
}

// distanceToSymbol maps a match distance (1..32768) to (symbol 0..29, extra
// bits value, extra bit count).
func distanceToSymbol(dist int) (int, uint32, uint) {
	for i := len(distBase) - 1; i >= 0; i-- {
		if dist >= distBase[i] {
			return i, uint32(dist - distBase[i]), distExtraBits[i]
		}
	}
	return 0, 0, 0
}

const endOfBlock = 256

// fixedLitLenLengths is the BTYPE=01 literal/length code length table:
// 0-143 get 8 bits, 144-255 get 9, 256-279 get 7, 280-287 get 8.
func fixedLitLenLengths() []int {
	lens := make([]int, 288)
	for i := 0; i <= 143; i++ {
		lens[i] = 8
	}
	for i := 144; i <= 255; i++ {
		lens[i] = 9
	}
	for i := 256; i <= 279; i++ {
		lens[i] = 7
	}
	for i := 280; i <= 287; i++ {
		lens[i] = 8
	}
	return lens
}

// fixedDistLengths is the BTYPE=01 distance code length table: all 30
// symbols get 5 bits.
func fixedDistLengths() []int {
	lens := make([]int, 30)
	for i := range lens {
		lens[i] = 5
	}
	return lens
}
