package softnode

import (
	"image"
	"image/color"

	"github.com/phanxgames/pixelnode"
	"golang.org/x/image/draw"
)

// Surface is the software "GPU context": the image nodes draw into.
type Surface struct {
	Target *image.RGBA

	acquired int
}

// NewSurface returns a surface with an opaque black target of w×h pixels.
func NewSurface(w, h int) *Surface {
	s := &Surface{Target: image.NewRGBA(image.Rect(0, 0, w, h))}
	s.Clear(color.RGBA{A: 0xFF})
	return s
}

// API implements pixelnode.GPUContext.
func (s *Surface) API() pixelnode.GraphicsAPI {
	return pixelnode.GraphicsAPISoftware
}

// Acquire implements pixelnode.GPUContext. The software context has no
// thread affinity; Acquire only tracks nesting.
func (s *Surface) Acquire() error {
	s.acquired++
	return nil
}

// Release implements pixelnode.GPUContext.
func (s *Surface) Release() {
	if s.acquired > 0 {
		s.acquired--
	}
}

// Current reports whether the surface is inside an Acquire/Release scope.
func (s *Surface) Current() bool {
	return s.acquired > 0
}

// Clear fills the whole target with c.
func (s *Surface) Clear(c color.Color) {
	draw.Draw(s.Target, s.Target.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Resize replaces the target with a cleared image of w×h pixels.
func (s *Surface) Resize(w, h int) {
	s.Target = image.NewRGBA(image.Rect(0, 0, w, h))
	s.Clear(color.RGBA{A: 0xFF})
}

var _ pixelnode.GPUContext = (*Surface)(nil)
