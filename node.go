package pixelnode

import (
	"github.com/go-gl/mathgl/mgl32"
)

// StateFlags declares which pieces of GPU pipeline state a node changes, so
// the host knows what to restore after it renders.
type StateFlags uint32

const (
	DepthState StateFlags = 1 << iota
	StencilState
	ScissorState
	ColorState
	BlendState
	CullState
	ViewportState
	RenderTargetState
)

// RenderingFlags declares how a node's output relates to its bounds.
type RenderingFlags uint32

const (
	// BoundedRectRendering means the node only draws inside Rect.
	BoundedRectRendering RenderingFlags = 1 << iota
	// DepthAwareRendering means the node respects the host's depth setup.
	DepthAwareRendering
	// OpaqueRendering means every pixel inside Rect is written opaque.
	OpaqueRendering
)

// DirtyState marks what changed on a node since the last frame.
type DirtyState uint32

const (
	DirtyGeometry DirtyState = 1 << iota
	DirtyMaterial
	DirtyOpacity
)

// RenderState is the per-frame state a host passes to Render.
type RenderState struct {
	// Projection maps scene coordinates to clip space.
	Projection mgl32.Mat4
	// Matrix is the node's accumulated model transform.
	Matrix mgl32.Mat4
	// Opacity is the inherited opacity in [0, 1].
	Opacity float32
	// Context is the GPU context current for this call. Backends check it
	// with a type assertion and reject contexts they do not understand.
	Context GPUContext
}

// DefaultRenderState returns identity transforms at full opacity.
func DefaultRenderState(ctx GPUContext) RenderState {
	return RenderState{
		Projection: mgl32.Ident4(),
		Matrix:     mgl32.Ident4(),
		Opacity:    1,
		Context:    ctx,
	}
}

// Transform returns Projection × Matrix.
func (s *RenderState) Transform() mgl32.Mat4 {
	return s.Projection.Mul4(s.Matrix)
}

// NodeItem is the view of an Item a render node is given: where to read
// frames from and how big to draw.
type NodeItem interface {
	// AcquireFrame returns the newest pixel frame. The result is valid until
	// the next AcquireFrame call and may be nil before the first publish.
	AcquireFrame() *Frame
	// Rect returns the item's bounds in item space.
	Rect() Rect
}

// RenderNode turns a frame's state into draw calls for one backend.
//
// Lifecycle: Uninitialized → (first Render) → ProgramReady → Destroyed.
// A node whose program fails to build becomes inert: Render keeps returning
// an error wrapping ErrShaderCompile. ReleaseResources is idempotent.
//
// Render and ReleaseResources must be called inside WithGPUContext.
type RenderNode interface {
	ColorSink

	// Backend identifies the graphics API this node was built for.
	Backend() GraphicsAPI
	// Render uploads the newest frame and draws the textured quad.
	Render(state *RenderState) error
	// ReleaseResources frees every GPU object the node owns.
	ReleaseResources()

	// ChangedStates reports the pipeline state Render touches.
	ChangedStates() StateFlags
	// Flags reports the node's rendering properties.
	Flags() RenderingFlags
	// Rect returns the item's bounding rectangle for host culling.
	Rect() Rect

	// MarkDirty records that part of the node needs refreshing.
	MarkDirty(state DirtyState)
	// Colors returns the last palette pushed with SetColors.
	Colors() PaletteFloats
	// TextureSize returns the recorded texture dimensions (0, 0 before the
	// first upload).
	TextureSize() (w, h int)
}

// QuadCorners returns the corner positions in item space for an item of size
// w×h, ordered for a triangle fan, together with their texture coordinates.
func QuadCorners(w, h float32) (pos [4]mgl32.Vec2, uv [4]mgl32.Vec2) {
	pos = [4]mgl32.Vec2{
		{0, 0},
		{0, h - 1},
		{w - 1, h - 1},
		{w - 1, 0},
	}
	uv = [4]mgl32.Vec2{
		{0, 0},
		{0, 1},
		{1, 1},
		{1, 0},
	}
	return pos, uv
}

// FanIndices expands a 4-vertex triangle fan into two triangles for APIs
// without fan topology.
var FanIndices = [6]uint16{0, 1, 2, 0, 2, 3}
