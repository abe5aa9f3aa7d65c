// Package softnode is the software-rasterizer render node for pixelnode.
//
// The node keeps a CPU-side texture (an *image.RGBA) in step with the item's
// pixel frames and draws it as a textured quad into the *image.RGBA held by
// a [Surface], using nearest-neighbour sampling from golang.org/x/image/draw.
// Only the 2D affine part of the render transform is honoured.
//
// Importing the package registers the node for
// [pixelnode.GraphicsAPISoftware]:
//
//	import _ "github.com/phanxgames/pixelnode/softnode"
//
// [Host] drives an item headlessly (tick, paint, optional PNG capture) and
// is what tests and the headless example use.
package softnode
