package pixelnode

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Rect is an axis-aligned rectangle. The origin is the top-left corner with
// Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Intersects reports whether r and other overlap. Rectangles sharing only an
// edge are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// QuadBounds returns the quad an item of w×h draws, in item space. Corners
// sit on (0,0) and (w-1,h-1), so items of one unit or less are empty.
func QuadBounds(w, h float64) Rect {
	return Rect{Width: w - 1, Height: h - 1}
}

// Transform returns the axis-aligned bounds of r's corners mapped through m.
func (r Rect) Transform(m mgl32.Mat4) Rect {
	corners := [4]mgl32.Vec3{
		{float32(r.X), float32(r.Y), 0},
		{float32(r.X), float32(r.Y + r.Height), 0},
		{float32(r.X + r.Width), float32(r.Y + r.Height), 0},
		{float32(r.X + r.Width), float32(r.Y), 0},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		p := mgl32.TransformCoordinate(c, m)
		minX = math.Min(minX, float64(p.X()))
		minY = math.Min(minY, float64(p.Y()))
		maxX = math.Max(maxX, float64(p.X()))
		maxY = math.Max(maxY, float64(p.Y()))
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
