// Package pixelnode draws an animated, CPU-generated pixel buffer as a single
// textured quad, on whichever graphics backend the host happens to run.
//
// An [Item] owns two halves that meet at a [FrameExchange]:
//
//   - the control side, an [AnimationDriver] that on every tick cycles the
//     palette, pushes it to the render node, grows the buffer on schedule,
//     scrolls the green channel and publishes a frame;
//   - the render side, a [Bridge] that picks a [RenderNode] for the host's
//     [GraphicsAPI], keeps it across frames and replaces it when the backend
//     changes.
//
// # Quick start
//
// Backends live in subpackages and register themselves on import:
//
//	import (
//		"github.com/phanxgames/pixelnode"
//		"github.com/phanxgames/pixelnode/ebitennode"
//	)
//
//	it, err := pixelnode.NewItem(pixelnode.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	ebitennode.Run(it, ebitennode.RunConfig{Title: "pixels", Width: 640, Height: 480})
//
// Hosts that own their own loop call [Item.Tick] from the control goroutine
// (or run [AnimationDriver.Run]) and [Item.Paint] from the render goroutine
// once per frame:
//
//	err := it.Paint(gpuCtx, pixelnode.DefaultRenderState(gpuCtx))
//
// # Backends
//
//   - softnode: CPU rasterizer into an *image.RGBA; headless host and PNG capture
//   - glnode: OpenGL 3.3 core via go-gl, with a GLFW window host
//   - ebitennode: Ebitengine images and a Kage shader, with an ebiten.Game host
//
// A host whose [GraphicsAPI] has no registered node gets no node and no
// error; the item simply draws nothing.
//
// # GPU context
//
// Every node call happens inside [WithGPUContext], which acquires the
// host's [GPUContext] before and releases it after. Nodes check the context's
// concrete type and return [ErrIncompatibleContext] for one they do not
// understand.
//
// # Pixel format
//
// Texels are RGBA8 and are read as little-endian 32-bit words. A fresh buffer
// holds 0x00FF0000 | (outer & 0xFF) in every texel, where the outer index
// advances once per height texels, and each tick adds the green increment to
// bits 8-15 with wraparound. Growth reallocates and reseeds the buffer.
//
// # Configuration
//
// [Config] carries every constant (initial size, growth cadence, tick
// period, channel increments). [LoadConfig] reads it from TOML; zero fields
// take the defaults.
//
// # Logging
//
// Nothing is logged by default. Call [SetLogger] with a *slog.Logger to see
// lifecycle events at Info, recoverable failures at Warn and per-frame detail
// at Debug. [Item.SetDebugMode] adds per-paint timings.
//
// # Tweens
//
// [TweenSize] and [TweenOpacity] animate the item's geometry and opacity
// using [gween]. The pixel buffer is unaffected; the quad is stretched.
// The software and Ebitengine nodes blend the quad over the background by
// the item's opacity. The OpenGL node uploads it as a uniform but draws
// with blending disabled.
//
// [gween]: https://github.com/tanema/gween
package pixelnode
