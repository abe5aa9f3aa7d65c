package ebitennode

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/pixelnode"
)

// texture is the part of *ebiten.Image the node uses for its frame texture.
type texture interface {
	WritePixels(pix []byte)
	Deallocate()
	Bounds() image.Rectangle
}

// shader is the part of *ebiten.Shader the node uses.
type shader interface {
	Deallocate()
}

// drawCall is one textured-quad draw.
type drawCall struct {
	verts   [4]ebiten.Vertex
	shader  shader
	texture texture
	opacity float32
	blend   ebiten.Blend
}

// device creates and draws Ebitengine resources. ebitenDevice is the real
// one; tests use a recording fake.
type device interface {
	newShader(src []byte) (shader, error)
	newTexture(w, h int) texture
	draw(target *ebiten.Image, d drawCall)
}

type ebitenDevice struct{}

func (ebitenDevice) newShader(src []byte) (shader, error) {
	s, err := ebiten.NewShader(src)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (ebitenDevice) newTexture(w, h int) texture {
	return ebiten.NewImageWithOptions(image.Rect(0, 0, w, h), &ebiten.NewImageOptions{
		Unmanaged: true,
	})
}

func (ebitenDevice) draw(target *ebiten.Image, d drawCall) {
	if target == nil {
		return
	}
	op := &ebiten.DrawTrianglesShaderOptions{
		Blend:    d.blend,
		Uniforms: map[string]any{"Opacity": d.opacity},
	}
	op.Images[0] = d.texture.(*ebiten.Image)
	target.DrawTrianglesShader(d.verts[:], pixelnode.FanIndices[:], d.shader.(*ebiten.Shader), op)
}

// Context is the Ebitengine GPU context: the screen image of the current
// Draw call.
type Context struct {
	Screen *ebiten.Image

	dev device
}

// NewContext returns a context that draws onto screen.
func NewContext(screen *ebiten.Image) *Context {
	return &Context{Screen: screen, dev: ebitenDevice{}}
}

// API implements pixelnode.GPUContext.
func (c *Context) API() pixelnode.GraphicsAPI {
	return pixelnode.GraphicsAPIEbitengine
}

// Acquire implements pixelnode.GPUContext. Ebitengine has no context to
// bind; resources may be created and freed from Update or Draw.
func (c *Context) Acquire() error {
	return nil
}

// Release implements pixelnode.GPUContext.
func (c *Context) Release() {}

var _ pixelnode.GPUContext = (*Context)(nil)
