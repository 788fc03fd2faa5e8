package rpng

// Chunk builders, component G: pure constructors for the ancillary chunks
// this package knows how to write. Every builder returns a Chunk with CRC
// left to the chunk engine (Chunk.CRC is always computed on demand, never
// cached), matching spec §4.G's "CRC is always zero on construction and
// filled in by the chunk engine on insertion" — there's simply no stored
// CRC field on Chunk to leave at zero.

// BuildTEXt builds a tEXt chunk: keyword (1-80 ASCII bytes) ‖ 0x00 ‖ text
// (must not itself contain a NUL byte).
func BuildTEXt(keyword, text string) (Chunk, error) {
	if err := validateKeyword(keyword); err != nil {
		return Chunk{}, err
	}
	if containsNUL(text) {
		return Chunk{}, newErr(UnsupportedFormat, "tEXt text must not contain a NUL byte")
	}
	data := make([]byte, 0, len(keyword)+1+len(text))
	data = append(data, keyword...)
	data = append(data, 0x00)
	data = append(data, text...)
	return Chunk{Type: TypeTEXT, Data: data}, nil
}

// BuildZTXt builds a zTXt chunk: keyword ‖ 0x00 ‖ compression method (0x00,
// written explicitly rather than left to implicit zero-fill — see
// spec §9's design note on the source's calloc-zeroed byte) ‖ zlib-
// compressed text.
func BuildZTXt(keyword, text string) (Chunk, error) {
	if err := validateKeyword(keyword); err != nil {
		return Chunk{}, err
	}
	compressed := deflateZlib([]byte(text), deflateLevel)
	data := make([]byte, 0, len(keyword)+2+len(compressed))
	data = append(data, keyword...)
	data = append(data, 0x00)
	data = append(data, 0x00) // compression method, explicit
	data = append(data, compressed...)
	return Chunk{Type: TypeZTXT, Data: data}, nil
}

// BuildGAMA builds a gAMA chunk: a u32 big-endian value = round(gamma *
// 100000).
func BuildGAMA(gamma float64) (Chunk, error) {
	if gamma <= 0 {
		return Chunk{}, newErrf(UnsupportedFormat, "gamma must be positive, got %v", gamma)
	}
	var data [4]byte
	putUint32BE(data[:], uint32(gamma*100000+0.5))
	return Chunk{Type: TypeGAMA, Data: data[:]}, nil
}

// BuildSRGB builds an sRGB chunk: a single rendering-intent byte in
// {0,1,2,3}. An intent outside that range is rejected, not clamped.
func BuildSRGB(intent int) (Chunk, error) {
	if intent < 0 || intent > 3 {
		return Chunk{}, newErrf(UnsupportedFormat, "sRGB rendering intent %d out of range 0-3", intent)
	}
	return Chunk{Type: TypeSRGB, Data: []byte{byte(intent)}}, nil
}

// BuildTIME builds a tIME chunk: u16 year ‖ u8 month(1-12) ‖ u8 day(1-31) ‖
// u8 hour(0-23) ‖ u8 min(0-59) ‖ u8 sec(0-60, leap second tolerant).
func BuildTIME(year, month, day, hour, min, sec int) (Chunk, error) {
	if year < 0 || year > 65535 {
		return Chunk{}, newErrf(UnsupportedFormat, "tIME year %d out of range", year)
	}
	if month < 1 || month > 12 {
		return Chunk{}, newErrf(UnsupportedFormat, "tIME month %d out of range", month)
	}
	if day < 1 || day > 31 {
		return Chunk{}, newErrf(UnsupportedFormat, "tIME day %d out of range", day)
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 || sec < 0 || sec > 60 {
		return Chunk{}, newErr(UnsupportedFormat, "tIME time-of-day field out of range")
	}
	data := make([]byte, 7)
	putUint16BE(data[0:2], uint16(year))
	data[2] = byte(month)
	data[3] = byte(day)
	data[4] = byte(hour)
	data[5] = byte(min)
	data[6] = byte(sec)
	return Chunk{Type: TypeTIME, Data: data}, nil
}

// BuildPHYs builds a pHYs chunk: u32 ppu_x ‖ u32 ppu_y ‖ u8 unit (0=unknown,
// 1=meter).
func BuildPHYs(ppuX, ppuY uint32, unit byte) (Chunk, error) {
	if unit > 1 {
		return Chunk{}, newErrf(UnsupportedFormat, "pHYs unit %d must be 0 or 1", unit)
	}
	data := make([]byte, 9)
	putUint32BE(data[0:4], ppuX)
	putUint32BE(data[4:8], ppuY)
	data[8] = unit
	return Chunk{Type: TypePHYS, Data: data}, nil
}

// Chromaticity holds the eight CIE xy values a cHRM chunk carries.
type Chromaticity struct {
	WhiteX, WhiteY float64
	RedX, RedY     float64
	GreenX, GreenY float64
	BlueX, BlueY   float64
}

// BuildCHRM builds a cHRM chunk: eight u32 values, each coord * 100000.
// Written as FOURCC cHRM, not pHYs — the original implementation's
// rpng_chunk_write_chroma wrote pHYs by mistake (spec §9's Open Questions);
// this builder does not reproduce that bug.
func BuildCHRM(c Chromaticity) (Chunk, error) {
	vals := []float64{c.WhiteX, c.WhiteY, c.RedX, c.RedY, c.GreenX, c.GreenY, c.BlueX, c.BlueY}
	data := make([]byte, 32)
	for i, v := range vals {
		if v < 0 || v > 1 {
			return Chunk{}, newErrf(UnsupportedFormat, "cHRM coordinate %v out of range [0,1]", v)
		}
		putUint32BE(data[i*4:i*4+4], uint32(v*100000+0.5))
	}
	return Chunk{Type: TypeCHRM, Data: data}, nil
}

func validateKeyword(keyword string) error {
	if len(keyword) < 1 || len(keyword) > 80 {
		return newErrf(UnsupportedFormat, "keyword length %d out of range 1-80", len(keyword))
	}
	if containsNUL(keyword) {
		return newErr(UnsupportedFormat, "keyword must not contain a NUL byte")
	}
	for _, b := range []byte(keyword) {
		if b < 0x20 || b > 0x7E {
			return newErrf(UnsupportedFormat, "keyword byte %#x is not printable ASCII", b)
		}
	}
	return nil
}

func containsNUL(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return true
		}
	}
	return false
}
