// Package ebitennode renders pixelnode items with Ebitengine.
//
// The node keeps an *ebiten.Image texture sized to the newest frame,
// rewrites it with WritePixels every paint and draws it as a four-vertex fan
// (two indexed triangles) through a small Kage shader with BlendCopy. [Game]
// adapts an item to ebiten.Game and [Run] opens a window for it.
//
// Importing the package registers the node for
// [pixelnode.GraphicsAPIEbitengine].
package ebitennode
