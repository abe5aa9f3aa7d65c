package pixelnode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeSeedsPattern(t *testing.T) {
	sizes := []struct{ w, h int }{
		{1, 1}, {3, 2}, {2, 3}, {300, 4}, {640, 480},
	}
	for _, sz := range sizes {
		b, err := NewPixelBuffer(sz.w, sz.h)
		require.NoError(t, err)
		require.Equal(t, sz.w*sz.h, b.Len())
		require.Len(t, b.Read().Pix, sz.w*sz.h*BytesPerTexel)

		for i := 0; i < b.Len(); i++ {
			outer := i / sz.h
			want := uint32(0x00FF0000) | uint32(outer&0xFF)
			if b.Word(i) != want {
				t.Fatalf("%dx%d texel %d = %#08x, want %#08x", sz.w, sz.h, i, b.Word(i), want)
			}
		}
	}
}

func TestResizeDiscardsContent(t *testing.T) {
	b, err := NewPixelBuffer(4, 4)
	require.NoError(t, err)
	b.ScrollGreen(0x40)
	require.NoError(t, b.Resize(4, 4))
	assert.Equal(t, uint32(0x00FF0000), b.Word(0))
}

func TestResizeRejectsBadSizes(t *testing.T) {
	b, err := NewPixelBuffer(2, 2)
	require.NoError(t, err)
	before := append([]byte(nil), b.Read().Pix...)

	for _, sz := range [][2]int{{0, 1}, {1, 0}, {-3, 5}} {
		assert.ErrorIs(t, b.Resize(sz[0], sz[1]), ErrInvalidSize)
	}
	assert.Equal(t, 2, b.Width())
	assert.Equal(t, 2, b.Height())
	assert.Equal(t, before, b.Read().Pix)
}

func TestFailedResizeKeepsBuffer(t *testing.T) {
	b, err := NewPixelBuffer(4, 4)
	require.NoError(t, err)
	b.SetMaxBytes(4 * 4 * BytesPerTexel)
	b.ScrollGreen(1)
	before := append([]byte(nil), b.Read().Pix...)

	err = b.Resize(5, 5)
	assert.ErrorIs(t, err, ErrAllocation)
	assert.Equal(t, 4, b.Width())
	assert.Equal(t, 4, b.Height())
	assert.Equal(t, before, b.Read().Pix)

	assert.ErrorIs(t, b.Resize(1<<40, 1<<40), ErrAllocation)
}

func TestScrollGreenWrapsInsideByte(t *testing.T) {
	b, err := NewPixelBuffer(3, 2)
	require.NoError(t, err)

	for i := 0; i < 51; i++ {
		b.ScrollGreen(5)
	}
	// 51*5 = 255
	assert.Equal(t, uint32(0x00FFFF00), b.Word(0))
	assert.Equal(t, uint32(0x00FFFF02), b.Word(5))

	b.ScrollGreen(5) // 255+5 wraps to 4
	assert.Equal(t, uint32(0x00FF0400), b.Word(0))
	assert.Equal(t, uint32(0x00FF0401), b.Word(2))
}

func TestScrollGreenCopiesRunHead(t *testing.T) {
	b, err := NewPixelBuffer(2, 3)
	require.NoError(t, err)
	// Disturb a non-head texel; the next scroll rewrites the run from its
	// first texel.
	b.pix[1*BytesPerTexel+1] = 0x99
	b.ScrollGreen(1)
	assert.Equal(t, b.Word(0), b.Word(1))
	assert.Equal(t, uint32(0x00FF0100), b.Word(1))
}

func TestSetMaxBytesDefault(t *testing.T) {
	b := &PixelBuffer{}
	b.SetMaxBytes(0)
	assert.Equal(t, DefaultMaxBufferBytes, b.maxBytes)
}
