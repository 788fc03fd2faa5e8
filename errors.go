package rpng

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies the ways a buffer can fail to be a valid (or valid enough)
// PNG stream. Every exported codec operation in this package that can fail
// surfaces one of these through *Error; the LoadFile/SaveFile wrappers
// return the os package's errors unchanged.
type Kind int

const (
	// InvalidSignature means the buffer does not start with the 8-byte PNG
	// signature.
	InvalidSignature Kind = iota + 1
	// TruncatedStream means a chunk header or payload runs past the end of
	// the buffer.
	TruncatedStream
	// UnsupportedFormat means color_type 3 on the non-indexed path, a bit
	// depth outside {8, 16}, interlace != 0, or a channel count outside
	// {1, 2, 3, 4}.
	UnsupportedFormat
	// ChunkCountOverflow means more than Limits.MaxChunks chunks were found
	// by ReadAll.
	ChunkCountOverflow
	// ChecksumMismatch means a stored chunk CRC did not match the computed
	// CRC, or a zlib Adler-32 trailer did not match the inflated output.
	ChecksumMismatch
	// Malformed means the deflate stream itself is invalid: a reserved
	// block type, a corrupt Huffman code, a bad stored-block length pair,
	// or a stream that ends before its final block does.
	Malformed
	// CapacityExceeded means an inflated buffer would exceed a
	// caller-supplied capacity.
	CapacityExceeded
)

func (k Kind) String() string {
	switch k {
	case InvalidSignature:
		return "invalid signature"
	case TruncatedStream:
		return "truncated stream"
	case UnsupportedFormat:
		return "unsupported format"
	case ChunkCountOverflow:
		return "chunk count overflow"
	case ChecksumMismatch:
		return "checksum mismatch"
	case Malformed:
		return "malformed deflate stream"
	case CapacityExceeded:
		return "capacity exceeded"
	default:
		return "unknown error"
	}
}

// Error is the error type returned by every fallible codec operation in
// this package. It carries a Kind a caller can switch on, plus an optional
// human-readable detail.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return "rpng: " + e.Kind.String()
	}
	return "rpng: " + e.Kind.String() + ": " + e.Detail
}

// Is lets callers write errors.Is(err, rpng.ErrChecksumMismatch) without
// string matching.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel values for errors.Is comparisons; only Kind is inspected.
var (
	ErrInvalidSignature   = &Error{Kind: InvalidSignature}
	ErrTruncatedStream    = &Error{Kind: TruncatedStream}
	ErrUnsupportedFormat  = &Error{Kind: UnsupportedFormat}
	ErrChunkCountOverflow = &Error{Kind: ChunkCountOverflow}
	ErrChecksumMismatch   = &Error{Kind: ChecksumMismatch}
	ErrMalformed          = &Error{Kind: Malformed}
	ErrCapacityExceeded   = &Error{Kind: CapacityExceeded}
)

func newErr(kind Kind, detail string) error {
	return errors.WithStack(&Error{Kind: kind, Detail: detail})
}

func newErrf(kind Kind, format string, args ...interface{}) error {
	return errors.WithStack(&Error{Kind: kind, Detail: fmt.Sprintf(format, args...)})
}
