package rpng

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildTEXtLayout(t *testing.T) {
	c, err := BuildTEXt("Author", "Ada Lovelace")
	require.NoError(t, err)
	require.Equal(t, TypeTEXT, c.Type)
	require.Equal(t, "Author\x00Ada Lovelace", string(c.Data))
}

func TestBuildTEXtRejectsNULInText(t *testing.T) {
	_, err := BuildTEXt("Author", "a\x00b")
	require.Error(t, err)
}

func TestBuildZTXtCompressionByteExplicitZero(t *testing.T) {
	c, err := BuildZTXt("Comment", "some longer text to compress here and there")
	require.NoError(t, err)
	require.Equal(t, TypeZTXT, c.Type)
	i := 0
	for ; c.Data[i] != 0; i++ {
	}
	require.Equal(t, "Comment", string(c.Data[:i]))
	require.Equal(t, byte(0x00), c.Data[i+1])
}

func TestBuildGAMAScaling(t *testing.T) {
	c, err := BuildGAMA(0.45455)
	require.NoError(t, err)
	require.Equal(t, uint32(45455), uint32BE(c.Data))
}

func TestBuildSRGBRejectsOutOfRange(t *testing.T) {
	_, err := BuildSRGB(4)
	require.Error(t, err)
	c, err := BuildSRGB(1)
	require.NoError(t, err)
	require.Equal(t, []byte{1}, c.Data)
}

func TestBuildTIMEValidatesRanges(t *testing.T) {
	_, err := BuildTIME(2024, 13, 1, 0, 0, 0)
	require.Error(t, err)

	c, err := BuildTIME(2024, 3, 14, 9, 26, 53)
	require.NoError(t, err)
	require.Equal(t, TypeTIME, c.Type)
	require.Len(t, c.Data, 7)
}

func TestBuildPHYsLayout(t *testing.T) {
	c, err := BuildPHYs(2835, 2835, 1)
	require.NoError(t, err)
	require.Equal(t, uint32(2835), uint32BE(c.Data[0:4]))
	require.Equal(t, uint32(2835), uint32BE(c.Data[4:8]))
	require.Equal(t, byte(1), c.Data[8])
}

func TestBuildCHRMWritesCorrectFourCC(t *testing.T) {
	c, err := BuildCHRM(Chromaticity{
		WhiteX: 0.3127, WhiteY: 0.3290,
		RedX: 0.64, RedY: 0.33,
		GreenX: 0.30, GreenY: 0.60,
		BlueX: 0.15, BlueY: 0.06,
	})
	require.NoError(t, err)
	require.Equal(t, TypeCHRM, c.Type)
	require.NotEqual(t, TypePHYS, c.Type)
	require.Len(t, c.Data, 32)
	require.Equal(t, uint32(31270), uint32BE(c.Data[0:4]))
}
