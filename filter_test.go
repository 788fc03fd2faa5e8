package rpng

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAbs8SignedReinterpretation(t *testing.T) {
	require.Equal(t, 0, abs8(0))
	require.Equal(t, 1, abs8(1))
	require.Equal(t, 1, abs8(0xFF)) // -1 as int8
	require.Equal(t, 128, abs8(0x80))
}

func TestPaethPicksNearestNeighbor(t *testing.T) {
	// a, b, c all equal: predictor collapses to that value.
	require.Equal(t, byte(10), paeth(10, 10, 10))
	// Classic worked example: a=10 b=20 c=5 -> p=25, da=15, db=5, dc=20 -> b wins.
	require.Equal(t, byte(20), paeth(10, 20, 5))
	// a closest.
	require.Equal(t, byte(5), paeth(5, 100, 90))
}

func TestFilterRoundTrip(t *testing.T) {
	stride := 3
	cur := []byte{10, 20, 30, 40, 50, 60, 70, 80, 90}
	prev := []byte{5, 6, 7, 8, 9, 10, 11, 12, 13}

	for ft := 0; ft < filterCount; ft++ {
		out := make([]byte, len(cur))
		filterRow(ft, out, cur, prev, stride)

		back := make([]byte, len(out))
		copy(back, out)
		unfilterRow(ft, back, prev, stride)
		require.Equal(t, cur, back, "filter type %d did not round-trip", ft)
	}
}

func TestFilterRoundTripFirstRow(t *testing.T) {
	stride := 4
	cur := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	for ft := 0; ft < filterCount; ft++ {
		out := make([]byte, len(cur))
		filterRow(ft, out, cur, nil, stride)
		back := make([]byte, len(out))
		copy(back, out)
		unfilterRow(ft, back, nil, stride)
		require.Equal(t, cur, back, "filter type %d did not round-trip on first row", ft)
	}
}

func TestChooseFilterIsDeterministic(t *testing.T) {
	stride := 3
	cur := []byte{1, 2, 3, 4, 5, 6, 9, 9, 9}
	prev := []byte{0, 0, 0, 1, 1, 1, 2, 2, 2}

	var bufs1, bufs2 [filterCount][]byte
	for i := range bufs1 {
		bufs1[i] = make([]byte, len(cur))
		bufs2[i] = make([]byte, len(cur))
	}
	ft1, out1 := chooseFilter(cur, prev, stride, bufs1)
	ft2, out2 := chooseFilter(cur, prev, stride, bufs2)
	require.Equal(t, ft1, ft2)
	require.Equal(t, out1, out2)
}

func TestChooseFilterPicksUpWhenRowRepeats(t *testing.T) {
	// A row identical to the one above it: the Up filter's output is all
	// zeros, which no other filter's sum-of-abs can beat (see DESIGN.md's
	// note on scenario S6 for why a monotonic per-row gradient does not
	// actually produce this case row over row).
	stride := 3
	rowBytes := 8 * stride
	cur := make([]byte, rowBytes)
	prev := make([]byte, rowBytes)
	for i := range cur {
		cur[i] = byte(5)
		prev[i] = byte(5)
	}
	var bufs [filterCount][]byte
	for i := range bufs {
		bufs[i] = make([]byte, rowBytes)
	}
	ft, out := chooseFilter(cur, prev, stride, bufs)
	require.Equal(t, filterUp, ft)
	for _, b := range out {
		require.Equal(t, byte(0), b)
	}
}
