package rpng

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeflateInflateRoundTripSmall(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("a"),
		[]byte("hello, hello, hello, hello world"),
		bytes.Repeat([]byte{0x42}, 1000),
		bytes.Repeat([]byte("abcabcabcabc"), 500),
	}
	for _, in := range cases {
		out := deflate(in, 8)
		got, err := inflate(out)
		require.NoError(t, err)
		require.Equal(t, in, got)
	}
}

func TestDeflateInflateRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{0, 1, 4, 100, 5000, 70000} {
		in := make([]byte, n)
		rng.Read(in)
		out := deflate(in, 8)
		got, err := inflate(out)
		require.NoError(t, err, "n=%d", n)
		require.Equal(t, in, got, "n=%d", n)
	}
}

func TestDeflateZlibRoundTripAndChecksum(t *testing.T) {
	in := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog"), 200)
	wrapped := deflateZlib(in, 8)
	require.Equal(t, byte(0x78), wrapped[0])
	require.Equal(t, byte(0x01), wrapped[1])

	got, err := inflateZlib(wrapped)
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestInflateZlibDetectsChecksumMismatch(t *testing.T) {
	in := []byte("some text to compress for the trailer check")
	wrapped := deflateZlib(in, 8)
	wrapped[len(wrapped)-1] ^= 0xFF // corrupt the Adler-32 trailer

	_, err := inflateZlib(wrapped)
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, ChecksumMismatch, e.Kind)
}

func TestDeflateSpansMultipleBlocks(t *testing.T) {
	in := make([]byte, blockCap*2+123)
	rand.New(rand.NewSource(2)).Read(in)
	out := deflate(in, 8)
	got, err := inflate(out)
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestGenCodeLengthsRespectsMaxBits(t *testing.T) {
	freq := make([]int, 288)
	// A heavily skewed distribution that would need > 15 bits unlimited.
	freq[0] = 1
	for i := 1; i < 40; i++ {
		freq[i] = 1 << uint(i%20)
	}
	lens := genCodeLengths(freq, 15)
	for _, l := range lens {
		require.LessOrEqual(t, l, 15)
	}
	// Kraft inequality must hold (sum 2^-l <= 1) for a valid prefix code.
	var sum float64
	for _, l := range lens {
		if l > 0 {
			sum += 1.0 / float64(int(1)<<uint(l))
		}
	}
	require.LessOrEqual(t, sum, 1.0+1e-9)
}

func TestCanonicalCodesArePrefixFree(t *testing.T) {
	lengths := []int{3, 3, 3, 3, 3, 2, 4, 4}
	codes := canonicalCodes(lengths)
	// Rebuild the MSB-first canonical form (un-reverse) and check prefix
	// freedom directly, since canonicalCodes returns bit-reversed codes.
	type cw struct {
		code uint32
		len  int
	}
	var words []cw
	for i, l := range lengths {
		if l == 0 {
			continue
		}
		words = append(words, cw{reverseBits(codes[i], uint(l)), l})
	}
	for i := range words {
		for j := range words {
			if i == j {
				continue
			}
			shorter, longer := words[i], words[j]
			if shorter.len > longer.len {
				continue
			}
			prefix := longer.code >> uint(longer.len-shorter.len)
			require.NotEqual(t, shorter.code, prefix, "code %d is a prefix of code %d", i, j)
		}
	}
}

func TestRunLengthEncodeLengthsReconstructs(t *testing.T) {
	lens := []int{0, 0, 0, 0, 3, 3, 3, 3, 3, 3, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 5}
	toks := runLengthEncodeLengths(lens)

	var rebuilt []int
	for _, tk := range toks {
		switch tk.sym {
		case 16:
			n := int(tk.extra) + 3
			prev := rebuilt[len(rebuilt)-1]
			for i := 0; i < n; i++ {
				rebuilt = append(rebuilt, prev)
			}
		case 17:
			n := int(tk.extra) + 3
			for i := 0; i < n; i++ {
				rebuilt = append(rebuilt, 0)
			}
		case 18:
			n := int(tk.extra) + 11
			for i := 0; i < n; i++ {
				rebuilt = append(rebuilt, 0)
			}
		default:
			rebuilt = append(rebuilt, tk.sym)
		}
	}
	require.Equal(t, lens, rebuilt)
}
