package rpng

import "github.com/pkg/errors"

// Signature is the immutable 8-byte PNG signature that must appear exactly
// once, at offset 0, in every valid stream.
var Signature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// FourCC is a 4-byte chunk type identifier. Comparisons against it are
// always 4-byte equality checks, never string/NUL-terminated comparisons;
// case distinguishes critical/ancillary, public/private, and the reserved
// and safe-to-copy bits, per the PNG spec.
type FourCC [4]byte

// NewFourCC builds a FourCC from a (normally 4-character) string.
func NewFourCC(s string) FourCC {
	var f FourCC
	copy(f[:], s)
	return f
}

func (f FourCC) String() string { return string(f[:]) }

// Critical reports whether the chunk type is critical: bit 5 of the first
// FOURCC byte is clear, i.e. the first letter is uppercase.
func (f FourCC) Critical() bool { return f[0]&0x20 == 0 }

// Ancillary is the complement of Critical.
func (f FourCC) Ancillary() bool { return !f.Critical() }

// Chunk type identifiers used throughout this package.
var (
	TypeIHDR = NewFourCC("IHDR")
	TypePLTE = NewFourCC("PLTE")
	TypeIDAT = NewFourCC("IDAT")
	TypeIEND = NewFourCC("IEND")
	TypeTRNS = NewFourCC("tRNS")
	TypeTEXT = NewFourCC("tEXt")
	TypeZTXT = NewFourCC("zTXt")
	TypeGAMA = NewFourCC("gAMA")
	TypeSRGB = NewFourCC("sRGB")
	TypeTIME = NewFourCC("tIME")
	TypePHYS = NewFourCC("pHYs")
	TypeCHRM = NewFourCC("cHRM")
)

// Chunk is the in-memory value for one chunk of a PNG stream. Data is owned
// exclusively by the Chunk value: every constructor here copies its input,
// so releasing a Chunk releases its data and mutating a caller's original
// slice afterward cannot corrupt it.
type Chunk struct {
	Type FourCC
	Data []byte
}

// Length is the wire-format payload length of the chunk.
func (c Chunk) Length() uint32 { return uint32(len(c.Data)) }

// CRC is the CRC-32 of Type‖Data, recomputed on demand (Chunk values built
// by the chunk builders in builders.go never carry a stale stored CRC).
func (c Chunk) CRC() uint32 { return crc32Of(c.Type[:], c.Data) }

// wireSize is the number of bytes c occupies on the wire: 4-byte length +
// 4-byte type + payload + 4-byte CRC.
func (c Chunk) wireSize() int { return 8 + len(c.Data) + 4 }

// encode appends the wire-format framing of c to dst and returns the
// extended slice.
func (c Chunk) encode(dst []byte) []byte {
	var header [8]byte
	putUint32BE(header[:4], c.Length())
	copy(header[4:8], c.Type[:])
	dst = append(dst, header[:]...)
	dst = append(dst, c.Data...)
	var trailer [4]byte
	putUint32BE(trailer[:], c.CRC())
	return append(dst, trailer[:]...)
}

const maxChunkLength = 1<<31 - 1

// chunkSpan is the engine's internal working value while walking a buffer:
// it aliases buf rather than copying, unlike the caller-facing Chunk.
type chunkSpan struct {
	typ        FourCC
	data       []byte
	storedCRC  uint32
	start, end int // [start, end) spans the whole chunk: header..trailer
}

func (s chunkSpan) toChunk() Chunk {
	data := make([]byte, len(s.data))
	copy(data, s.data)
	return Chunk{Type: s.typ, Data: data}
}

// validateSignature checks that buf begins with the PNG signature.
func validateSignature(buf []byte) error {
	if len(buf) < len(Signature) {
		return newErr(InvalidSignature, "buffer shorter than signature")
	}
	for i, want := range Signature {
		if buf[i] != want {
			return newErr(InvalidSignature, "signature mismatch")
		}
	}
	return nil
}

// readChunkSpan parses one chunk starting at offset, returning the span and
// the offset where the next chunk (if any) begins.
func readChunkSpan(buf []byte, offset int) (chunkSpan, int, error) {
	if offset+8 > len(buf) {
		return chunkSpan{}, 0, newErr(TruncatedStream, "chunk header runs past end of buffer")
	}
	length := uint32BE(buf[offset : offset+4])
	if length > maxChunkLength {
		return chunkSpan{}, 0, newErrf(TruncatedStream, "chunk length %d exceeds 2^31-1", length)
	}
	var typ FourCC
	copy(typ[:], buf[offset+4:offset+8])
	dataStart := offset + 8
	dataEnd := dataStart + int(length)
	if dataEnd < dataStart || dataEnd+4 > len(buf) {
		return chunkSpan{}, 0, newErrf(TruncatedStream, "chunk %q payload/crc runs past end of buffer", typ.String())
	}
	span := chunkSpan{
		typ:       typ,
		data:      buf[dataStart:dataEnd],
		storedCRC: uint32BE(buf[dataEnd : dataEnd+4]),
		start:     offset,
		end:       dataEnd + 4,
	}
	return span, span.end, nil
}

// walkChunks calls fn for each chunk starting right after the signature,
// stopping after IEND (inclusive) or on the first error. fn returning
// (false, nil) stops the walk early without error.
func walkChunks(buf []byte, fn func(chunkSpan) (bool, error)) error {
	if err := validateSignature(buf); err != nil {
		return err
	}
	offset := len(Signature)
	for {
		span, next, err := readChunkSpan(buf, offset)
		if err != nil {
			return err
		}
		cont, err := fn(span)
		if err != nil {
			return err
		}
		if !cont || span.typ == TypeIEND {
			return nil
		}
		offset = next
	}
}

// Count walks buf and returns the total number of chunks, including IEND.
func Count(buf []byte) (int, error) {
	n := 0
	err := walkChunks(buf, func(chunkSpan) (bool, error) {
		n++
		return true, nil
	})
	return n, err
}

// ReadFirst returns the first chunk whose type matches typ, or ok == false
// if none is found. Data is copied out of buf.
func ReadFirst(buf []byte, typ FourCC) (c Chunk, ok bool, err error) {
	err = walkChunks(buf, func(s chunkSpan) (bool, error) {
		if s.typ == typ {
			c, ok = s.toChunk(), true
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return Chunk{}, false, err
	}
	return c, ok, nil
}

// ReadAll returns every chunk in buf, including IEND, failing with
// ChunkCountOverflow if there are more than limits.MaxChunks.
func ReadAll(buf []byte, limits Limits) ([]Chunk, error) {
	max := limits.maxChunks()
	var out []Chunk
	err := walkChunks(buf, func(s chunkSpan) (bool, error) {
		if len(out) >= max {
			return false, newErrf(ChunkCountOverflow, "more than %d chunks", max)
		}
		out = append(out, s.toChunk())
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// VerifyAll recomputes every chunk's CRC and reports whether every stored
// CRC matches the computed one. A mismatch is reported as ok == false, not
// as an error; structural problems (bad signature, truncated stream) still
// propagate as errors.
func VerifyAll(buf []byte) (bool, error) {
	ok := true
	err := walkChunks(buf, func(s chunkSpan) (bool, error) {
		if crc32Of(s.typ[:], s.data) != s.storedCRC {
			ok = false
		}
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return ok, nil
}

// RemoveFirst returns a copy of buf with the first chunk of type typ
// omitted. If no such chunk exists, the returned bytes equal buf byte for
// byte.
func RemoveFirst(buf []byte, typ FourCC) ([]byte, error) {
	return removeMatching(buf, typ, true)
}

// RemoveAll returns a copy of buf with every chunk of type typ omitted.
func RemoveAll(buf []byte, typ FourCC) ([]byte, error) {
	return removeMatching(buf, typ, false)
}

func removeMatching(buf []byte, typ FourCC, firstOnly bool) ([]byte, error) {
	out := make([]byte, 0, len(buf))
	out = append(out, Signature[:]...)
	removed := false
	err := walkChunks(buf, func(s chunkSpan) (bool, error) {
		if s.typ == typ && (!firstOnly || !removed) {
			removed = true
			return true, nil
		}
		out = append(out, buf[s.start:s.end]...)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveAncillary retains only IHDR, PLTE, IDAT, IEND, and tRNS (the last
// only when PLTE is present, since indexed transparency is tied to the
// palette).
func RemoveAncillary(buf []byte) ([]byte, error) {
	hasPLTE := false
	if err := walkChunks(buf, func(s chunkSpan) (bool, error) {
		if s.typ == TypePLTE {
			hasPLTE = true
			return false, nil
		}
		return true, nil
	}); err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(buf))
	out = append(out, Signature[:]...)
	err := walkChunks(buf, func(s chunkSpan) (bool, error) {
		switch {
		case s.typ == TypeIHDR, s.typ == TypePLTE, s.typ == TypeIDAT, s.typ == TypeIEND:
			out = append(out, buf[s.start:s.end]...)
		case s.typ == TypeTRNS && hasPLTE:
			out = append(out, buf[s.start:s.end]...)
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// InsertAfterIHDR splices chunk immediately after IHDR, recomputing its CRC
// from type‖data. It and InsertBeforeIEND are the chunk-engine operations
// that alter relative chunk positions by design.
func InsertAfterIHDR(buf []byte, chunk Chunk) ([]byte, error) {
	out := make([]byte, 0, len(buf)+chunk.wireSize())
	out = append(out, Signature[:]...)
	inserted := false
	err := walkChunks(buf, func(s chunkSpan) (bool, error) {
		out = append(out, buf[s.start:s.end]...)
		if s.typ == TypeIHDR && !inserted {
			out = chunk.encode(out)
			inserted = true
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, errors.WithStack(newErr(TruncatedStream, "stream has no IHDR to insert after"))
	}
	return out, nil
}

// InsertBeforeIEND splices chunk immediately before IEND.
func InsertBeforeIEND(buf []byte, chunk Chunk) ([]byte, error) {
	out, inserted, err := insertBeforeIEND(buf, chunk)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, errors.WithStack(newErr(TruncatedStream, "stream has no IEND to insert before"))
	}
	return out, nil
}

func insertBeforeIEND(buf []byte, chunk Chunk) ([]byte, bool, error) {
	out := make([]byte, 0, len(buf)+chunk.wireSize())
	out = append(out, Signature[:]...)
	inserted := false
	err := walkChunks(buf, func(s chunkSpan) (bool, error) {
		if s.typ == TypeIEND && !inserted {
			out = chunk.encode(out)
			inserted = true
		}
		out = append(out, buf[s.start:s.end]...)
		return true, nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, inserted, nil
}

// CombineIDAT concatenates all IDAT payloads into a single IDAT chunk with
// one recomputed CRC, preserving the order of every non-IDAT chunk.
func CombineIDAT(buf []byte) ([]byte, error) {
	var combined []byte
	sawIDAT := false
	out := make([]byte, 0, len(buf))
	out = append(out, Signature[:]...)
	err := walkChunks(buf, func(s chunkSpan) (bool, error) {
		if s.typ == TypeIDAT {
			combined = append(combined, s.data...)
			sawIDAT = true
			return true, nil
		}
		out = append(out, buf[s.start:s.end]...)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if !sawIDAT {
		return out, nil
	}
	merged, inserted, err := insertBeforeIEND(out, Chunk{Type: TypeIDAT, Data: combined})
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, errors.WithStack(newErr(TruncatedStream, "stream has no IEND to combine IDAT before"))
	}
	return merged, nil
}

// SplitIDAT splits every IDAT chunk whose payload exceeds pieceSize into a
// sequence of IDAT chunks of exactly pieceSize bytes, plus a trailing piece
// with the remainder. Pieces stay consecutive, preserving the stream
// invariant that all IDAT chunks are contiguous.
func SplitIDAT(buf []byte, pieceSize int) ([]byte, error) {
	if pieceSize <= 0 {
		return nil, newErrf(TruncatedStream, "split size must be positive, got %d", pieceSize)
	}
	out := make([]byte, 0, len(buf))
	out = append(out, Signature[:]...)
	err := walkChunks(buf, func(s chunkSpan) (bool, error) {
		if s.typ != TypeIDAT || len(s.data) <= pieceSize {
			out = append(out, buf[s.start:s.end]...)
			return true, nil
		}
		for offset := 0; offset < len(s.data); offset += pieceSize {
			end := offset + pieceSize
			if end > len(s.data) {
				end = len(s.data)
			}
			out = Chunk{Type: TypeIDAT, Data: s.data[offset:end]}.encode(out)
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
