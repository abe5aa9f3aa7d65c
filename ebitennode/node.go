package ebitennode

import (
	"fmt"
	"image"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/pixelnode"
)

func init() {
	pixelnode.RegisterNodeFactory(pixelnode.GraphicsAPIEbitengine, New)
}

type nodeState uint8

const (
	stateUninitialized nodeState = iota
	stateReady
	stateFailed
	stateDestroyed
)

// Node draws an item's frames onto an Ebitengine screen.
type Node struct {
	item  pixelnode.NodeItem
	state nodeState
	dev   device

	shader  shader
	texture texture

	texW, texH  int
	recreations int
	uploads     int
	dirty       pixelnode.DirtyState

	colorsMu sync.Mutex
	colors   pixelnode.PaletteFloats
}

// New returns an uninitialized Ebitengine node for item. The shader is
// compiled on the first Render.
func New(item pixelnode.NodeItem) pixelnode.RenderNode {
	return &Node{
		item:   item,
		colors: pixelnode.DefaultPalette.Floats(),
	}
}

// Backend implements pixelnode.RenderNode.
func (n *Node) Backend() pixelnode.GraphicsAPI {
	return pixelnode.GraphicsAPIEbitengine
}

// ensureShader compiles the Kage shader once. A compile error leaves the
// node inert instead of panicking.
func (n *Node) ensureShader(dev device) error {
	n.dev = dev
	s, err := dev.newShader([]byte(textureShaderSrc))
	if err != nil {
		n.state = stateFailed
		pixelnode.Logger().Warn("ebitennode: shader compile failed", "err", err)
		return fmt.Errorf("ebitennode: %w: %v", pixelnode.ErrShaderCompile, err)
	}
	n.shader = s
	n.state = stateReady
	return nil
}

// Render implements pixelnode.RenderNode.
func (n *Node) Render(rs *pixelnode.RenderState) error {
	switch n.state {
	case stateDestroyed:
		return pixelnode.ErrNodeReleased
	case stateFailed:
		return fmt.Errorf("ebitennode: node inert: %w", pixelnode.ErrShaderCompile)
	}

	ctx, ok := rs.Context.(*Context)
	if !ok || ctx == nil || ctx.dev == nil {
		return fmt.Errorf("ebitennode: got %T: %w", rs.Context, pixelnode.ErrIncompatibleContext)
	}

	if n.state == stateUninitialized {
		if err := n.ensureShader(ctx.dev); err != nil {
			return err
		}
	}

	frame := n.item.AcquireFrame()
	if frame == nil {
		return nil
	}

	if n.texW != frame.Width || n.texH != frame.Height {
		if n.texture != nil {
			n.texture.Deallocate()
		}
		n.texture = n.dev.newTexture(frame.Width, frame.Height)
		n.texW, n.texH = frame.Width, frame.Height
		n.recreations++
		pixelnode.Logger().Debug("ebitennode: texture recreated",
			"width", frame.Width, "height", frame.Height)
	}

	n.texture.WritePixels(frame.Pix)
	n.uploads++
	n.dirty = 0

	r := n.item.Rect()
	if pixelnode.QuadBounds(r.Width, r.Height).Empty() || rs.Opacity <= 0 {
		return nil
	}
	m := rs.Transform()
	if ctx.Screen != nil && !onScreen(r, m, ctx.Screen.Bounds()) {
		return nil
	}

	blend := ebiten.BlendCopy
	if rs.Opacity < 1 {
		blend = ebiten.BlendSourceOver
	}
	n.dev.draw(ctx.Screen, drawCall{
		verts:   quadVertices(m, float32(r.Width), float32(r.Height), n.texW, n.texH),
		shader:  n.shader,
		texture: n.texture,
		opacity: rs.Opacity,
		blend:   blend,
	})
	return nil
}

// onScreen reports whether the quad of an item with bounds r, placed by m,
// touches the screen.
func onScreen(r pixelnode.Rect, m mgl32.Mat4, screen image.Rectangle) bool {
	return pixelnode.QuadBounds(r.Width, r.Height).Transform(m).Intersects(pixelnode.Rect{
		X:      float64(screen.Min.X),
		Y:      float64(screen.Min.Y),
		Width:  float64(screen.Dx()),
		Height: float64(screen.Dy()),
	})
}

// quadVertices places the item's fan corners on screen through m and maps
// their texture coordinates to texel units.
func quadVertices(m mgl32.Mat4, w, h float32, texW, texH int) [4]ebiten.Vertex {
	pos, uv := pixelnode.QuadCorners(w, h)
	var out [4]ebiten.Vertex
	for i := range pos {
		p := mgl32.TransformCoordinate(pos[i].Vec3(0), m)
		out[i] = ebiten.Vertex{
			DstX:   p.X(),
			DstY:   p.Y(),
			SrcX:   uv[i].X() * float32(texW),
			SrcY:   uv[i].Y() * float32(texH),
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		}
	}
	return out
}

// ReleaseResources implements pixelnode.RenderNode.
func (n *Node) ReleaseResources() {
	if n.state == stateDestroyed {
		return
	}
	if n.texture != nil {
		n.texture.Deallocate()
		n.texture = nil
	}
	if n.shader != nil {
		n.shader.Deallocate()
		n.shader = nil
	}
	n.texW, n.texH = 0, 0
	n.state = stateDestroyed
}

// SetColors implements pixelnode.ColorSink.
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

// TextureSize implements pixelnode.RenderNode.
func (n *Node) TextureSize() (w, h int) {
	return n.texW, n.texH
}

var _ pixelnode.RenderNode = (*Node)(nil)
