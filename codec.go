package rpng

// Image codec, component F: composes the scanline filter (D) and deflate
// encoder (B) into Encode, and the chunk engine (E), deflate decoder (C),
// and scanline filter (D) into Decode.

const ihdrPayloadLen = 13

// colorTypeForChannels maps a supported channel count to its IHDR
// color_type byte: 1 -> gray, 2 -> gray+alpha, 3 -> rgb, 4 -> rgba.
// Indexed color (color_type 3, channels via PLTE) is a non-goal of this
// pixel pipeline (spec §1); only these four direct-sample layouts decode.
func colorTypeForChannels(channels int) (byte, bool) {
	switch channels {
	case 1:
		return 0, true
	case 2:
		return 4, true
	case 3:
		return 2, true
	case 4:
		return 6, true
	default:
		return 0, false
	}
}

func channelsForColorType(colorType byte) (int, bool) {
	switch colorType {
	case 0:
		return 1, true
	case 4:
		return 2, true
	case 2:
		return 3, true
	case 6:
		return 4, true
	default:
		return 0, false
	}
}

// deflateLevel is the fixed compression level Encode uses (spec §4.F: zlib
// wrapped, level 8).
const deflateLevel = 8

// Encode builds a complete PNG stream from a tightly packed pixel buffer.
// pixels must be exactly width*height*channels*(bitDepth/8) bytes, row
// major, with no stride padding.
func Encode(pixels []byte, width, height, channels, bitDepth int) ([]byte, error) {
	colorType, ok := colorTypeForChannels(channels)
	if !ok {
		return nil, newErrf(UnsupportedFormat, "unsupported channel count %d", channels)
	}
	if bitDepth != 8 && bitDepth != 16 {
		return nil, newErrf(UnsupportedFormat, "unsupported bit depth %d", bitDepth)
	}
	if width <= 0 || height <= 0 {
		return nil, newErrf(UnsupportedFormat, "invalid dimensions %dx%d", width, height)
	}
	sampleBytes := bitDepth / 8
	stride := channels * sampleBytes
	rowBytes := width * stride
	wantLen := rowBytes * height
	if len(pixels) != wantLen {
		return nil, newErrf(UnsupportedFormat, "pixel buffer is %d bytes, want %d", len(pixels), wantLen)
	}

	filtered := make([]byte, (rowBytes+1)*height)
	var buffers [filterCount][]byte
	for i := range buffers {
		buffers[i] = make([]byte, rowBytes)
	}
	var prevRow []byte
	for y := 0; y < height; y++ {
		cur := pixels[y*rowBytes : (y+1)*rowBytes]
		ft, out := chooseFilter(cur, prevRow, stride, buffers)
		dst := filtered[y*(rowBytes+1):]
		dst[0] = byte(ft)
		copy(dst[1:1+rowBytes], out)
		prevRow = cur
	}

	compressed := deflateZlib(filtered, deflateLevel)

	var ihdr [ihdrPayloadLen]byte
	putUint32BE(ihdr[0:4], uint32(width))
	putUint32BE(ihdr[4:8], uint32(height))
	ihdr[8] = byte(bitDepth)
	ihdr[9] = colorType
	ihdr[10] = 0 // compression method
	ihdr[11] = 0 // filter method
	ihdr[12] = 0 // interlace method

	out := make([]byte, 0, len(Signature)+64+len(compressed)+12)
	out = append(out, Signature[:]...)
	out = Chunk{Type: TypeIHDR, Data: ihdr[:]}.encode(out)
	out = Chunk{Type: TypeIDAT, Data: compressed}.encode(out)
	out = Chunk{Type: TypeIEND, Data: nil}.encode(out)
	return out, nil
}

// Decode parses a complete PNG stream back into a pixel buffer plus its
// IHDR fields. Interlaced streams and color_type 3 (indexed) are rejected;
// see spec §1's Non-goals for the pixel pipeline.
func Decode(buf []byte) (pixels []byte, width, height, channels, bitDepth int, err error) {
	return DecodeLimit(buf, DefaultLimits())
}

// DecodeLimit is Decode with caller-supplied Limits instead of the
// package defaults.
func DecodeLimit(buf []byte, limits Limits) (pixels []byte, width, height, channels, bitDepth int, err error) {
	if err = validateSignature(buf); err != nil {
		return nil, 0, 0, 0, 0, err
	}

	ihdrChunk, ok, err := ReadFirst(buf, TypeIHDR)
	if err != nil {
		return nil, 0, 0, 0, 0, err
	}
	if !ok || len(ihdrChunk.Data) != ihdrPayloadLen {
		return nil, 0, 0, 0, 0, newErr(UnsupportedFormat, "missing or malformed IHDR")
	}

	w := int(uint32BE(ihdrChunk.Data[0:4]))
	h := int(uint32BE(ihdrChunk.Data[4:8]))
	bd := int(ihdrChunk.Data[8])
	colorType := ihdrChunk.Data[9]
	compression := ihdrChunk.Data[10]
	filterMethod := ihdrChunk.Data[11]
	interlace := ihdrChunk.Data[12]

	if compression != 0 || filterMethod != 0 {
		return nil, 0, 0, 0, 0, newErr(UnsupportedFormat, "unsupported compression/filter method")
	}
	if interlace != 0 {
		return nil, 0, 0, 0, 0, newErr(UnsupportedFormat, "interlaced images are not supported")
	}
	if bd != 8 && bd != 16 {
		return nil, 0, 0, 0, 0, newErrf(UnsupportedFormat, "unsupported bit depth %d", bd)
	}
	ch, ok := channelsForColorType(colorType)
	if !ok {
		return nil, 0, 0, 0, 0, newErrf(UnsupportedFormat, "unsupported color type %d", colorType)
	}
	if w <= 0 || h <= 0 {
		return nil, 0, 0, 0, 0, newErr(UnsupportedFormat, "invalid IHDR dimensions")
	}

	chunks, err := ReadAll(buf, limits)
	if err != nil {
		return nil, 0, 0, 0, 0, err
	}
	var idat []byte
	sawIDAT := false
	for _, c := range chunks {
		if c.Type != TypeIDAT {
			continue
		}
		sawIDAT = true
		idat = append(idat, c.Data...)
	}
	if !sawIDAT {
		return nil, 0, 0, 0, 0, newErr(TruncatedStream, "no IDAT chunk present")
	}

	ok, err = VerifyAll(buf)
	if err != nil {
		return nil, 0, 0, 0, 0, err
	}
	if !ok {
		return nil, 0, 0, 0, 0, newErr(ChecksumMismatch, "one or more chunk CRCs do not match")
	}

	sampleBytes := bd / 8
	stride := ch * sampleBytes
	rowBytes := w * stride
	wantInflated := h * (1 + rowBytes)

	filtered, err := inflateZlibLimit(idat, limits.maxOutputSize())
	if err != nil {
		return nil, 0, 0, 0, 0, err
	}
	if len(filtered) != wantInflated {
		return nil, 0, 0, 0, 0, newErrf(Malformed, "inflated size %d, want %d", len(filtered), wantInflated)
	}

	px := make([]byte, rowBytes*h)
	var prevRaw []byte
	for y := 0; y < h; y++ {
		row := filtered[y*(1+rowBytes) : (y+1)*(1+rowBytes)]
		ft := int(row[0])
		if ft < 0 || ft >= filterCount {
			return nil, 0, 0, 0, 0, newErrf(Malformed, "invalid filter type %d on row %d", ft, y)
		}
		raw := px[y*rowBytes : (y+1)*rowBytes]
		copy(raw, row[1:])
		unfilterRow(ft, raw, prevRaw, stride)
		prevRaw = raw
	}

	return px, w, h, ch, bd, nil
}
