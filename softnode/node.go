package softnode

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/pixelnode"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

func init() {
	pixelnode.RegisterNodeFactory(pixelnode.GraphicsAPISoftware, New)
}

type nodeState uint8

const (
	stateUninitialized nodeState = iota
	stateReady
	stateFailed
	stateDestroyed
)

// Node is the software render node. Its "texture" is a CPU image resized
// only when the frame dimensions change and fully rewritten every frame.
type Node struct {
	item  pixelnode.NodeItem
	state nodeState

	sampler draw.Transformer

	texture      *image.RGBA
	texW, texH   int
	recreations  int
	uploads      int
	culled       int
	dirty        pixelnode.DirtyState
	buildSampler func() (draw.Transformer, error)

	colorsMu sync.Mutex
	colors   pixelnode.PaletteFloats
}

// New returns an uninitialized software node for item.
func New(item pixelnode.NodeItem) pixelnode.RenderNode {
	return &Node{
		item:         item,
		colors:       pixelnode.DefaultPalette.Floats(),
		buildSampler: nearestSampler,
	}
}

// nearestSampler is the software equivalent of a shader program: a
// nearest-neighbour, clamp-to-edge texture sampler.
func nearestSampler() (draw.Transformer, error) {
	return draw.NearestNeighbor, nil
}

// Backend implements pixelnode.RenderNode.
func (n *Node) Backend() pixelnode.GraphicsAPI {
	return pixelnode.GraphicsAPISoftware
}

// init builds the sampler. A failure leaves the node inert.
func (n *Node) init() error {
	s, err := n.buildSampler()
	if err != nil {
		n.state = stateFailed
		pixelnode.Logger().Warn("softnode: sampler build failed", "err", err)
		return fmt.Errorf("softnode: %w: %v", pixelnode.ErrShaderCompile, err)
	}
	n.sampler = s
	n.state = stateReady
	return nil
}

// Render implements pixelnode.RenderNode.
func (n *Node) Render(rs *pixelnode.RenderState) error {
	switch n.state {
	case stateDestroyed:
		return pixelnode.ErrNodeReleased
	case stateFailed:
		return fmt.Errorf("softnode: node inert: %w", pixelnode.ErrShaderCompile)
	}

	surf, ok := rs.Context.(*Surface)
	if !ok || surf == nil || surf.Target == nil {
		return fmt.Errorf("softnode: got %T: %w", rs.Context, pixelnode.ErrIncompatibleContext)
	}

	if n.state == stateUninitialized {
		if err := n.init(); err != nil {
			return err
		}
	}

	frame := n.item.AcquireFrame()
	if frame == nil {
		return nil
	}

	if n.texW != frame.Width || n.texH != frame.Height {
		n.recreateTexture(frame.Width, frame.Height)
	}

	n.upload(frame.Pix)
	n.dirty = 0

	r := n.item.Rect()
	quad := pixelnode.QuadBounds(r.Width, r.Height)
	if quad.Empty() || rs.Opacity <= 0 {
		return nil
	}
	m := rs.Transform()
	if !quad.Transform(m).Intersects(targetRect(surf.Target.Bounds())) {
		n.culled++
		return nil
	}

	aff := quadTransform(m, float32(r.Width), float32(r.Height), n.texW, n.texH)
	op, opts := draw.Src, (*draw.Options)(nil)
	if rs.Opacity < 1 {
		op = draw.Over
		opts = &draw.Options{
			SrcMask: image.NewUniform(color.Alpha{A: uint8(rs.Opacity*0xFF + 0.5)}),
		}
	}
	n.sampler.Transform(surf.Target, aff, n.texture, n.texture.Bounds(), op, opts)
	return nil
}

// upload copies the frame into the texture. Texels are shown opaque, so the
// alpha byte is overwritten.
func (n *Node) upload(pix []byte) {
	copy(n.texture.Pix, pix)
	for i := 3; i < len(n.texture.Pix); i += 4 {
		n.texture.Pix[i] = 0xFF
	}
	n.uploads++
}

func targetRect(b image.Rectangle) pixelnode.Rect {
	return pixelnode.Rect{
		X:      float64(b.Min.X),
		Y:      float64(b.Min.Y),
		Width:  float64(b.Dx()),
		Height: float64(b.Dy()),
	}
}

// recreateTexture drops the current texture and allocates one of w×h.
func (n *Node) recreateTexture(w, h int) {
	n.texture = image.NewRGBA(image.Rect(0, 0, w, h))
	n.texW, n.texH = w, h
	n.recreations++
	pixelnode.Logger().Debug("softnode: texture recreated", "width", w, "height", h)
}

// quadTransform maps texture pixel space onto the destination: texel
// (sx, sy) lands on item point (sx/texW·(w-1), sy/texH·(h-1)), which m then
// maps to the target. Only m's 2D affine part is used.
func quadTransform(m mgl32.Mat4, w, h float32, texW, texH int) f64.Aff3 {
	sx := float64(w-1) / float64(texW)
	sy := float64(h-1) / float64(texH)
	return f64.Aff3{
		float64(m.At(0, 0)) * sx, float64(m.At(0, 1)) * sy, float64(m.At(0, 3)),
		float64(m.At(1, 0)) * sx, float64(m.At(1, 1)) * sy, float64(m.At(1, 3)),
	}
}

// ReleaseResources implements pixelnode.RenderNode.
func (n *Node) ReleaseResources() {
	if n.state == stateDestroyed {
		return
	}
	n.texture = nil
	n.texW, n.texH = 0, 0
	n.sampler = nil
	n.state = stateDestroyed
}

// SetColors implements pixelnode.ColorSink. The palette is stored but the
// sampler does not use it.
func (n *Node) SetColors(c pixelnode.PaletteFloats) {
	n.colorsMu.Lock()
	n.colors = c
	n.colorsMu.Unlock()
}

// Colors implements pixelnode.RenderNode.
func (n *Node) Colors() pixelnode.PaletteFloats {
	n.colorsMu.Lock()
	defer n.colorsMu.Unlock()
	return n.colors
}

// ChangedStates implements pixelnode.RenderNode.
func (n *Node) ChangedStates() pixelnode.StateFlags {
	return pixelnode.BlendState
}

// Flags implements pixelnode.RenderNode.
func (n *Node) Flags() pixelnode.RenderingFlags {
	return pixelnode.BoundedRectRendering | pixelnode.DepthAwareRendering
}

// Rect implements pixelnode.RenderNode.
func (n *Node) Rect() pixelnode.Rect {
	return n.item.Rect()
}

// MarkDirty implements pixelnode.RenderNode.
func (n *Node) MarkDirty(s pixelnode.DirtyState) {
	n.dirty |= s
}

// Dirty returns the dirty bits set since the last Render.
func (n *Node) Dirty() pixelnode.DirtyState {
	return n.dirty
}

// TextureSize implements pixelnode.RenderNode.
func (n *Node) TextureSize() (w, h int) {
	return n.texW, n.texH
}

// Recreations returns how many times the texture has been (re)allocated.
func (n *Node) Recreations() int {
	return n.recreations
}

// Uploads returns how many full uploads the node has performed.
func (n *Node) Uploads() int {
	return n.uploads
}

// Culled returns how many renders skipped drawing because the quad fell
// outside the surface.
func (n *Node) Culled() int {
	return n.culled
}

var _ pixelnode.RenderNode = (*Node)(nil)
