package pixelnode

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// ColorSink receives the normalized palette after every tick. Render nodes
// implement it.
type ColorSink interface {
	SetColors(c PaletteFloats)
}

// AnimationDriver owns the pixel buffer and palette and advances them once
// per tick. Tick is intended for a single control goroutine; the render side
// only sees frames through the FrameExchange.
type AnimationDriver struct {
	buf     *PixelBuffer
	palette Palette
	ticks   atomic.Uint64

	cycle  PaletteCycle
	growth GrowthSchedule
	scroll GreenScroll

	exchange *FrameExchange
	interval time.Duration
	repaint  func()

	sinkMu sync.Mutex
	sink   ColorSink
}

// NewAnimationDriver allocates the initial buffer described by cfg and
// publishes it as the first frame on ex.
func NewAnimationDriver(cfg Config, ex *FrameExchange) (*AnimationDriver, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	buf := &PixelBuffer{maxBytes: cfg.MaxBufferBytes}
	if err := buf.Resize(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	if ex == nil {
		ex = &FrameExchange{}
	}
	d := &AnimationDriver{
		buf:      buf,
		palette:  DefaultPalette,
		cycle:    PaletteCycle{RedIncrement: cfg.RedIncrement},
		growth:   GrowthSchedule{Every: cfg.GrowEvery, Width: cfg.GrowWidth, Height: cfg.GrowHeight},
		scroll:   GreenScroll{Increment: cfg.GreenIncrement},
		exchange: ex,
		interval: cfg.TickInterval(),
	}
	if cfg.FreezePalette {
		d.cycle.RedIncrement = 0
	}
	if cfg.FreezeGreen {
		d.scroll.Increment = 0
	}
	if cfg.FreezeSize {
		d.growth.Every = 0
	}
	ex.Publish(buf.Read())
	return d, nil
}

// SetRepaintFunc sets the callback invoked at the end of every tick to ask
// the host for a new frame.
func (d *AnimationDriver) SetRepaintFunc(fn func()) {
	d.repaint = fn
}

// Attach sets the sink that receives palette floats. Safe to call from any
// goroutine.
func (d *AnimationDriver) Attach(s ColorSink) {
	d.sinkMu.Lock()
	d.sink = s
	d.sinkMu.Unlock()
}

// Detach removes the current sink.
func (d *AnimationDriver) Detach() {
	d.Attach(nil)
}

// Tick advances the animation by one step: palette cycle, color push,
// growth check, green scroll, frame publish, repaint request.
func (d *AnimationDriver) Tick() {
	tick := d.ticks.Add(1)
	st := AnimationState{Buffer: d.buf, Palette: &d.palette, Tick: tick}

	_ = d.cycle.Step(&st)
	d.pushColors()

	if err := d.growth.Step(&st); err != nil {
		Logger().Warn("pixelnode: buffer growth refused",
			"tick", tick, "width", d.buf.Width(), "height", d.buf.Height(), "err", err)
	} else if d.growth.Due(tick) {
		Logger().Debug("pixelnode: buffer grown",
			"tick", tick, "width", d.buf.Width(), "height", d.buf.Height())
	}

	_ = d.scroll.Step(&st)

	d.exchange.Publish(d.buf.Read())

	if d.repaint != nil {
		d.repaint()
	}
}

// pushColors hands the current palette to the attached sink. With no sink
// attached this is a no-op.
func (d *AnimationDriver) pushColors() {
	d.sinkMu.Lock()
	s := d.sink
	d.sinkMu.Unlock()
	if s == nil {
		return
	}
	s.SetColors(d.palette.Floats())
}

// Run calls Tick at the configured interval until ctx is cancelled.
func (d *AnimationDriver) Run(ctx context.Context) error {
	t := time.NewTicker(d.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			d.Tick()
		}
	}
}

// Interval returns the tick period.
func (d *AnimationDriver) Interval() time.Duration {
	return d.interval
}

// Ticks returns the number of ticks applied so far. Safe from any goroutine.
func (d *AnimationDriver) Ticks() uint64 {
	return d.ticks.Load()
}

// Palette returns a copy of the current palette.
func (d *AnimationDriver) Palette() Palette {
	return d.palette
}

// Buffer returns the driver's authoritative pixel buffer. It must only be
// read from the goroutine that calls Tick.
func (d *AnimationDriver) Buffer() *PixelBuffer {
	return d.buf
}

// Exchange returns the exchange frames are published on.
func (d *AnimationDriver) Exchange() *FrameExchange {
	return d.exchange
}
