// Package glnode is the OpenGL 3.3 core render node for pixelnode, plus a
// GLFW window host.
//
// The node compiles a tiny textured-quad program on its first Render,
// keeps one RGBA8 texture (nearest filtering, clamp-to-edge) sized to the
// newest frame, re-uploads the whole frame every paint and draws a
// four-vertex triangle fan with blending disabled. The texture, vertex
// array and program are unbound again after each upload and draw.
//
// Importing the package registers the node for
// [pixelnode.GraphicsAPIOpenGL]. GL calls must come from the goroutine that
// owns the context; the package locks the main goroutine to its OS thread
// in init, as GLFW requires.
package glnode
