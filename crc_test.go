package rpng

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCRC32KnownVectors(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want uint32
	}{
		{"empty", []byte{}, 0x00000000},
		{"123456789", []byte("123456789"), 0xCBF43926},
		{"IEND type", []byte("IEND"), 0xAE426082},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, crc32Of(tc.data))
		})
	}
}

func TestCRC32OfMultipleSlicesMatchesConcatenation(t *testing.T) {
	a := []byte("IDAT")
	b := []byte{1, 2, 3, 4, 5}
	require.Equal(t, crc32Of(append(append([]byte{}, a...), b...)), crc32Of(a, b))
}

func TestAdler32KnownVector(t *testing.T) {
	// "Wikipedia" -> 0x11E60398, a commonly cited Adler-32 test vector.
	require.Equal(t, uint32(0x11E60398), adler32Of([]byte("Wikipedia")))
}

func TestAdler32EmptyIsOne(t *testing.T) {
	require.Equal(t, uint32(1), adler32Of(nil))
}

func TestBigEndianHelpersRoundTrip(t *testing.T) {
	var b32 [4]byte
	putUint32BE(b32[:], 0xDEADBEEF)
	require.Equal(t, uint32(0xDEADBEEF), uint32BE(b32[:]))

	var b16 [2]byte
	putUint16BE(b16[:], 0xBEEF)
	require.Equal(t, uint16(0xBEEF), uint16BE(b16[:]))
}
