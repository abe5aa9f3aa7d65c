package pixelnode

import (
	"encoding/binary"
	"fmt"
	"math"
)

// BytesPerTexel is the size of one RGBA8 texel.
const BytesPerTexel = 4

// Texel word constants. A texel is read as a little-endian uint32.
const (
	seedWord   uint32 = 0x00FF0000
	greenMask  uint32 = 0x0000FF00
	greenClear uint32 = 0xFFFF00FF
)

// PixelBuffer owns a contiguous block of width×height RGBA8 texels.
//
// Resize always discards the previous content and writes the seed pattern.
// The new block is allocated before the old one is dropped, so a failed
// resize leaves the buffer exactly as it was.
//
// PixelBuffer is not safe for concurrent use; the render side reads copies
// handed over by a FrameExchange.
type PixelBuffer struct {
	pix      []byte
	w, h     int
	maxBytes int
}

// View is a read-only window onto a PixelBuffer. It is valid until the next
// Resize or mutation of the buffer it came from.
type View struct {
	Pix           []byte
	Width, Height int
}

// NewPixelBuffer allocates a buffer of the given size and seeds it.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	b := &PixelBuffer{maxBytes: DefaultMaxBufferBytes}
	if err := b.Resize(width, height); err != nil {
		return nil, err
	}
	return b, nil
}

// SetMaxBytes sets the largest allocation Resize will attempt. Values <= 0
// restore DefaultMaxBufferBytes.
func (b *PixelBuffer) SetMaxBytes(n int) {
	if n <= 0 {
		n = DefaultMaxBufferBytes
	}
	b.maxBytes = n
}

// Resize reallocates storage for width×height texels and writes the seed
// pattern. Prior content is not preserved.
func (b *PixelBuffer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize %dx%d: %w", width, height, ErrInvalidSize)
	}
	n, ok := byteCount(width, height)
	limit := b.maxBytes
	if limit <= 0 {
		limit = DefaultMaxBufferBytes
	}
	if !ok || n > limit {
		return fmt.Errorf("resize %dx%d (limit %d bytes): %w", width, height, limit, ErrAllocation)
	}

	pix := make([]byte, n)
	seedPattern(pix, width, height)

	b.pix = pix
	b.w = width
	b.h = height
	return nil
}

// byteCount returns width*height*4, reporting false on overflow.
func byteCount(width, height int) (int, bool) {
	if width > math.MaxInt/height {
		return 0, false
	}
	texels := width * height
	if texels > math.MaxInt/BytesPerTexel {
		return 0, false
	}
	return texels * BytesPerTexel, true
}

// seedPattern fills pix with the initial pattern. The outer index runs over
// width and the inner over height; each outer run of height texels holds
// 0x00FF0000 | (outer & 0xFF).
func seedPattern(pix []byte, width, height int) {
	i := 0
	for y := 0; y < width; y++ {
		word := seedWord | uint32(y&0xFF)
		for x := 0; x < height; x++ {
			binary.LittleEndian.PutUint32(pix[i:], word)
			i += BytesPerTexel
		}
	}
}

// ScrollGreen adds inc to bits 8–15 of every texel, wrapping inside that
// byte and leaving the other bits untouched. Like seedPattern it walks
// width outer runs of height texels, deriving each run from its first texel.
func (b *PixelBuffer) ScrollGreen(inc uint8) {
	add := uint32(inc) << 8
	i := 0
	for y := 0; y < b.w; y++ {
		first := binary.LittleEndian.Uint32(b.pix[i:])
		g := ((first & greenMask) + add) & greenMask
		row := (first & greenClear) | g
		for x := 0; x < b.h; x++ {
			binary.LittleEndian.PutUint32(b.pix[i:], row)
			i += BytesPerTexel
		}
	}
}

// Read returns a read-only view of the current content.
func (b *PixelBuffer) Read() View {
	return View{Pix: b.pix, Width: b.w, Height: b.h}
}

// Width returns the buffer width in texels.
func (b *PixelBuffer) Width() int { return b.w }

// Height returns the buffer height in texels.
func (b *PixelBuffer) Height() int { return b.h }

// Len returns the number of texels.
func (b *PixelBuffer) Len() int { return b.w * b.h }

// Word returns texel i as a little-endian 32-bit word.
func (b *PixelBuffer) Word(i int) uint32 {
	return binary.LittleEndian.Uint32(b.pix[i*BytesPerTexel:])
}
