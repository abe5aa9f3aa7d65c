package pixelnode

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Item is the scene-graph item that shows an animated pixel buffer. It owns
// the animation driver (control side) and the node bridge (render side) and
// connects them through a FrameExchange.
//
// Tick and the geometry setters may run on a control goroutine while Paint
// runs on the render goroutine.
type Item struct {
	mu      sync.Mutex
	width   float64
	height  float64
	opacity float64

	exchange *FrameExchange
	driver   *AnimationDriver
	debug    atomic.Bool

	// render goroutine only
	bridge *Bridge
	prev   RenderNode
}

// NewItem builds an item from cfg. Zero fields in cfg take their defaults.
func NewItem(cfg Config) (*Item, error) {
	cfg = cfg.WithDefaults()
	ex := &FrameExchange{}
	d, err := NewAnimationDriver(cfg, ex)
	if err != nil {
		return nil, fmt.Errorf("new item: %w", err)
	}
	it := &Item{
		width:    cfg.ItemWidth,
		height:   cfg.ItemHeight,
		opacity:  1,
		exchange: ex,
		driver:   d,
	}
	it.debug.Store(cfg.Debug)
	it.bridge = NewBridge(it, d)
	return it, nil
}

// Driver returns the item's animation driver.
func (it *Item) Driver() *AnimationDriver {
	return it.driver
}

// Bridge returns the item's node bridge.
func (it *Item) Bridge() *Bridge {
	return it.bridge
}

// Tick advances the animation by one step. Control goroutine only.
func (it *Item) Tick() {
	it.driver.Tick()
}

// SetSize sets the item's geometry in scene units. The quad is drawn at this
// size independently of the pixel buffer's dimensions.
func (it *Item) SetSize(w, h float64) {
	it.mu.Lock()
	it.width, it.height = w, h
	it.mu.Unlock()
}

// Size returns the item's geometry.
func (it *Item) Size() (w, h float64) {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.width, it.height
}

// Rect returns the item's bounds in item space.
func (it *Item) Rect() Rect {
	w, h := it.Size()
	return Rect{Width: w, Height: h}
}

// SetOpacity sets the item's own opacity, multiplied into the host's
// inherited opacity at paint time.
func (it *Item) SetOpacity(a float64) {
	it.mu.Lock()
	it.opacity = clamp01(a)
	it.mu.Unlock()
}

// Opacity returns the item's own opacity.
func (it *Item) Opacity() float64 {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.opacity
}

// AcquireFrame returns the newest published frame. Render goroutine only.
func (it *Item) AcquireFrame() *Frame {
	return it.exchange.Acquire()
}

// SetDebugMode enables per-paint timing logs at debug level. Safe to call
// from any goroutine.
func (it *Item) SetDebugMode(enabled bool) {
	it.debug.Store(enabled)
}

// DebugMode reports whether per-paint timing logs are enabled.
func (it *Item) DebugMode() bool {
	return it.debug.Load()
}

// Paint is the host's per-frame entry point. Inside ctx it asks the bridge
// for a node matching ctx.API(), marks it dirty and renders it. An
// unsupported backend yields no node and no error.
func (it *Item) Paint(ctx GPUContext, state RenderState) error {
	return WithGPUContext(ctx, func() error {
		debug := it.debug.Load()
		var t0 time.Time
		if debug {
			t0 = time.Now()
		}

		n := it.bridge.Update(it.prev, ctx.API())
		it.prev = n
		if n == nil {
			return nil
		}

		state.Context = ctx
		state.Opacity *= float32(it.Opacity())
		if err := n.Render(&state); err != nil {
			return fmt.Errorf("render %s node: %w", ctx.API(), err)
		}

		if debug {
			tw, th := n.TextureSize()
			it.debugLog(paintStats{
				backend:    n.Backend(),
				paintTime:  time.Since(t0),
				textureW:   tw,
				textureH:   th,
				frameSeq:   it.exchange.lastAcquired(),
				tickCount:  it.driver.Ticks(),
				nodesBuilt: it.bridge.created,
			})
		}
		return nil
	})
}

// Release tears down the item's GPU state inside ctx. Safe to call more than
// once.
func (it *Item) Release(ctx GPUContext) error {
	return WithGPUContext(ctx, func() error {
		it.bridge.Release()
		it.prev = nil
		return nil
	})
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
