package rpng

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTEXtBuildParseRoundTrip(t *testing.T) {
	c, err := BuildTEXt("Title", "rpng test image")
	require.NoError(t, err)
	kw, text, err := ParseTEXt(c)
	require.NoError(t, err)
	require.Equal(t, "Title", kw)
	require.Equal(t, "rpng test image", text)
}

func TestZTXtBuildParseRoundTrip(t *testing.T) {
	long := "this text should compress reasonably well since it repeats " +
		"this text should compress reasonably well since it repeats "
	c, err := BuildZTXt("Comment", long)
	require.NoError(t, err)
	kw, text, err := ParseZTXt(c)
	require.NoError(t, err)
	require.Equal(t, "Comment", kw)
	require.Equal(t, long, text)
}

func TestGAMABuildParseRoundTrip(t *testing.T) {
	c, err := BuildGAMA(0.45455)
	require.NoError(t, err)
	gamma, err := ParseGAMA(c)
	require.NoError(t, err)
	require.InDelta(t, 0.45455, gamma, 1e-5)
}

func TestSRGBBuildParseRoundTrip(t *testing.T) {
	c, err := BuildSRGB(2)
	require.NoError(t, err)
	intent, err := ParseSRGB(c)
	require.NoError(t, err)
	require.Equal(t, uint8(2), intent)
}

func TestTIMEBuildParseRoundTrip(t *testing.T) {
	c, err := BuildTIME(2026, 7, 29, 12, 0, 1)
	require.NoError(t, err)
	tv, err := ParseTIME(c)
	require.NoError(t, err)
	require.Equal(t, TimeValue{Year: 2026, Month: 7, Day: 29, Hour: 12, Minute: 0, Second: 1}, tv)
}

func TestPHYsBuildParseRoundTrip(t *testing.T) {
	c, err := BuildPHYs(2835, 2835, 1)
	require.NoError(t, err)
	x, y, unit, err := ParsePHYs(c)
	require.NoError(t, err)
	require.Equal(t, uint32(2835), x)
	require.Equal(t, uint32(2835), y)
	require.Equal(t, byte(1), unit)
}

func TestCHRMBuildParseRoundTrip(t *testing.T) {
	want := Chromaticity{
		WhiteX: 0.3127, WhiteY: 0.3290,
		RedX: 0.64, RedY: 0.33,
		GreenX: 0.30, GreenY: 0.60,
		BlueX: 0.15, BlueY: 0.06,
	}
	c, err := BuildCHRM(want)
	require.NoError(t, err)
	got, err := ParseCHRM(c)
	require.NoError(t, err)
	require.InDelta(t, want.WhiteX, got.WhiteX, 1e-5)
	require.InDelta(t, want.RedY, got.RedY, 1e-5)
	require.InDelta(t, want.BlueX, got.BlueX, 1e-5)
}

func TestParseRejectsWrongChunkType(t *testing.T) {
	c, err := BuildGAMA(1.0)
	require.NoError(t, err)
	_, _, err = ParseTEXt(c)
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, UnsupportedFormat, e.Kind)
}
