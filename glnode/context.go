package glnode

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/phanxgames/pixelnode"
)

// Context is the OpenGL GPU context handed to Item.Paint. It wraps the
// GLFW window whose GL context nodes draw into.
type Context struct {
	window *glfw.Window
	gl     glAPI
}

// NewContext wraps win. The window's GL context must have been created
// with a 3.3 core profile and gl.Init must already have succeeded.
func NewContext(win *glfw.Window) *Context {
	return &Context{window: win, gl: glDevice{}}
}

// API implements pixelnode.GPUContext.
func (c *Context) API() pixelnode.GraphicsAPI {
	return pixelnode.GraphicsAPIOpenGL
}

// Acquire makes the window's GL context current on the calling thread.
func (c *Context) Acquire() error {
	if c.window != nil {
		c.window.MakeContextCurrent()
	}
	return nil
}

// Release implements pixelnode.GPUContext. The context stays current; GLFW
// hosts paint from a single locked thread.
func (c *Context) Release() {}

var _ pixelnode.GPUContext = (*Context)(nil)
