package rpng

// Ancillary chunk decoders, component J: the read-side mirror of the
// builders in builders.go. Each parser takes a Chunk already validated by
// the chunk engine (signature checked, CRC verifiable via VerifyAll) and
// returns a typed value, failing with UnsupportedFormat if the payload
// length doesn't match the chunk's fixed wire layout.

import "bytes"

// ParseTEXt splits a tEXt chunk's payload back into its keyword and text.
func ParseTEXt(c Chunk) (keyword, text string, err error) {
	if c.Type != TypeTEXT {
		return "", "", newErrf(UnsupportedFormat, "not a tEXt chunk: %s", c.Type)
	}
	i := bytes.IndexByte(c.Data, 0x00)
	if i < 0 {
		return "", "", newErr(UnsupportedFormat, "tEXt chunk missing keyword terminator")
	}
	return string(c.Data[:i]), string(c.Data[i+1:]), nil
}

// ParseZTXt splits a zTXt chunk's payload and inflates its zlib-compressed
// text.
func ParseZTXt(c Chunk) (keyword, text string, err error) {
	if c.Type != TypeZTXT {
		return "", "", newErrf(UnsupportedFormat, "not a zTXt chunk: %s", c.Type)
	}
	i := bytes.IndexByte(c.Data, 0x00)
	if i < 0 || i+1 >= len(c.Data) {
		return "", "", newErr(UnsupportedFormat, "zTXt chunk missing keyword terminator or compression byte")
	}
	compMethod := c.Data[i+1]
	if compMethod != 0 {
		return "", "", newErrf(UnsupportedFormat, "unsupported zTXt compression method %d", compMethod)
	}
	plain, err := inflateZlib(c.Data[i+2:])
	if err != nil {
		return "", "", err
	}
	return string(c.Data[:i]), string(plain), nil
}

// ParseGAMA recovers the gamma value a gAMA chunk encodes.
func ParseGAMA(c Chunk) (gamma float64, err error) {
	if c.Type != TypeGAMA || len(c.Data) != 4 {
		return 0, newErr(UnsupportedFormat, "malformed gAMA chunk")
	}
	return float64(uint32BE(c.Data)) / 100000, nil
}

// ParseSRGB recovers the rendering intent byte an sRGB chunk encodes.
func ParseSRGB(c Chunk) (intent uint8, err error) {
	if c.Type != TypeSRGB || len(c.Data) != 1 {
		return 0, newErr(UnsupportedFormat, "malformed sRGB chunk")
	}
	return c.Data[0], nil
}

// TimeValue is the UTC timestamp a tIME chunk carries. The wire format has
// no timezone field; by PNG convention the value is UTC.
type TimeValue struct {
	Year                   int
	Month, Day             int
	Hour, Minute, Second   int
}

// ParseTIME recovers a tIME chunk's timestamp fields.
func ParseTIME(c Chunk) (TimeValue, error) {
	if c.Type != TypeTIME || len(c.Data) != 7 {
		return TimeValue{}, newErr(UnsupportedFormat, "malformed tIME chunk")
	}
	return TimeValue{
		Year:   int(uint16BE(c.Data[0:2])),
		Month:  int(c.Data[2]),
		Day:    int(c.Data[3]),
		Hour:   int(c.Data[4]),
		Minute: int(c.Data[5]),
		Second: int(c.Data[6]),
	}, nil
}

// ParsePHYs recovers a pHYs chunk's pixels-per-unit values and unit byte.
func ParsePHYs(c Chunk) (ppuX, ppuY uint32, unit byte, err error) {
	if c.Type != TypePHYS || len(c.Data) != 9 {
		return 0, 0, 0, newErr(UnsupportedFormat, "malformed pHYs chunk")
	}
	return uint32BE(c.Data[0:4]), uint32BE(c.Data[4:8]), c.Data[8], nil
}

// ParseCHRM recovers a cHRM chunk's eight chromaticity coordinates, each
// divided back down by 100000.
func ParseCHRM(c Chunk) (Chromaticity, error) {
	if c.Type != TypeCHRM || len(c.Data) != 32 {
		return Chromaticity{}, newErr(UnsupportedFormat, "malformed cHRM chunk")
	}
	v := make([]float64, 8)
	for i := range v {
		v[i] = float64(uint32BE(c.Data[i*4:i*4+4])) / 100000
	}
	return Chromaticity{
		WhiteX: v[0], WhiteY: v[1],
		RedX: v[2], RedY: v[3],
		GreenX: v[4], GreenY: v[5],
		BlueX: v[6], BlueY: v[7],
	}, nil
}
