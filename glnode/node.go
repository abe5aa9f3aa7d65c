package glnode

import (
	"fmt"
	"sync"

	"github.com/phanxgames/pixelnode"
)

func init() {
	pixelnode.RegisterNodeFactory(pixelnode.GraphicsAPIOpenGL, New)
}

type nodeState uint8

const (
	stateUninitialized nodeState = iota
	stateReady
	stateFailed
	stateDestroyed
)

// Node draws an item's pixel frames as one textured quad with OpenGL.
type Node struct {
	item  pixelnode.NodeItem
	state nodeState
	dev   glAPI

	prog    program
	quad    quad
	texture uint32
	verts   [4 * floatsPerVertex]float32

	texW, texH  int
	recreations int
	uploads     int
	dirty       pixelnode.DirtyState

	colorsMu sync.Mutex
	colors   pixelnode.PaletteFloats
}

// New returns an uninitialized OpenGL node for item. No GL calls are made
// until the first Render.
func New(item pixelnode.NodeItem) pixelnode.RenderNode {
	return &Node{
		item:   item,
		colors: pixelnode.DefaultPalette.Floats(),
	}
}

// Backend implements pixelnode.RenderNode.
func (n *Node) Backend() pixelnode.GraphicsAPI {
	return pixelnode.GraphicsAPIOpenGL
}

func (n *Node) init(dev glAPI) error {
	n.dev = dev
	prog, err := dev.buildProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		n.state = stateFailed
		pixelnode.Logger().Warn("glnode: program build failed", "err", err)
		return fmt.Errorf("glnode: %w: %v", pixelnode.ErrShaderCompile, err)
	}
	n.prog = prog
	n.quad = dev.createQuad()
	n.state = stateReady
	return nil
}

// Render implements pixelnode.RenderNode.
func (n *Node) Render(rs *pixelnode.RenderState) error {
	switch n.state {
	case stateDestroyed:
		return pixelnode.ErrNodeReleased
	case stateFailed:
		return fmt.Errorf("glnode: node inert: %w", pixelnode.ErrShaderCompile)
	}

	ctx, ok := rs.Context.(*Context)
	if !ok || ctx == nil || ctx.gl == nil {
		return fmt.Errorf("glnode: got %T: %w", rs.Context, pixelnode.ErrIncompatibleContext)
	}

	if n.state == stateUninitialized {
		if err := n.init(ctx.gl); err != nil {
			return err
		}
	}

	frame := n.item.AcquireFrame()
	if frame == nil {
		return nil
	}

	if n.texW != frame.Width || n.texH != frame.Height {
		if n.texture != 0 {
			n.dev.deleteTexture(n.texture)
		}
		n.texture = n.dev.createTexture(frame.Width, frame.Height)
		n.texW, n.texH = frame.Width, frame.Height
		n.recreations++
		pixelnode.Logger().Debug("glnode: texture recreated",
			"width", frame.Width, "height", frame.Height)
	}

	n.dev.uploadTexture(n.texture, frame.Width, frame.Height, frame.Pix)
	n.dev.unbind()
	n.uploads++

	r := n.item.Rect()
	pos, uv := pixelnode.QuadCorners(float32(r.Width), float32(r.Height))
	for i := range pos {
		v := n.verts[i*floatsPerVertex:]
		v[0], v[1] = pos[i].X(), pos[i].Y()
		v[2], v[3] = uv[i].X(), uv[i].Y()
	}
	n.dev.updateQuad(n.quad, n.verts[:])

	n.dev.draw(drawCall{
		prog:    n.prog,
		quad:    n.quad,
		texture: n.texture,
		matrix:  rs.Transform(),
		opacity: rs.Opacity,
	})
	n.dev.unbind()
	n.dirty = 0
	return nil
}

// ReleaseResources implements pixelnode.RenderNode. Must run with the GL
// context current.
func (n *Node) ReleaseResources() {
	if n.state == stateDestroyed {
		return
	}
	if n.texture != 0 {
		n.dev.deleteTexture(n.texture)
		n.texture = 0
	}
	if n.state == stateReady {
		n.dev.deleteQuad(n.quad)
		n.dev.deleteProgram(n.prog)
	}
	n.quad = quad{}
	n.prog = program{}
	n.texW, n.texH = 0, 0
	n.state = stateDestroyed
}

// SetColors implements pixelnode.ColorSink. The shader does not read the
// palette; it is kept node-side only.
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
