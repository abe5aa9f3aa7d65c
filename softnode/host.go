package softnode

import (
	"context"
	"errors"
	"fmt"

	"github.com/phanxgames/pixelnode"
	"golang.org/x/sync/errgroup"
)

// Host drives an item without a window: the animation driver ticks on one
// goroutine and frames are painted into a Surface on another.
type Host struct {
	Item    *pixelnode.Item
	Surface *Surface

	// State is the render state passed to every Paint. NewHost sets it to
	// identity transforms, so item units are surface pixels.
	State pixelnode.RenderState

	// OnFrame, if set, is called on the paint goroutine after every
	// successful paint. Returning an error stops Run; ErrStop stops it
	// cleanly.
	OnFrame func(frame int, s *Surface) error

	frames  int
	repaint chan struct{}
}

// NewHost returns a host painting it into a fresh w×h surface.
func NewHost(it *pixelnode.Item, w, h int) *Host {
	s := NewSurface(w, h)
	return &Host{
		Item:    it,
		Surface: s,
		State:   pixelnode.DefaultRenderState(s),
		repaint: make(chan struct{}, 1),
	}
}

// Step ticks the animation once and paints the result synchronously.
func (h *Host) Step() error {
	h.Item.Tick()
	return h.Paint()
}

// Paint renders the newest published frame onto the surface.
func (h *Host) Paint() error {
	if err := h.Item.Paint(h.Surface, h.State); err != nil {
		return err
	}
	h.frames++
	if h.OnFrame != nil {
		return h.OnFrame(h.frames, h.Surface)
	}
	return nil
}

// Frames returns the number of successful paints.
func (h *Host) Frames() int {
	return h.frames
}

// Release frees the item's node on the host's surface. Run calls it on the
// way out; hosts driven by Step or a Script call it themselves.
func (h *Host) Release() error {
	return h.Item.Release(h.Surface)
}

// ErrStop is returned from OnFrame to end Run without an error.
var ErrStop = errors.New("softnode: stop")

// Run ticks the driver at its configured interval and paints once per
// repaint request until ctx is cancelled or OnFrame returns an error. The
// item's node is released before Run returns.
func (h *Host) Run(ctx context.Context) error {
	d := h.Item.Driver()
	d.SetRepaintFunc(h.requestRepaint)
	defer d.SetRepaintFunc(nil)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return d.Run(gctx)
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-h.repaint:
				if err := h.Paint(); err != nil {
					return err
				}
			}
		}
	})

	err := g.Wait()
	if rerr := h.Release(); rerr != nil {
		pixelnode.Logger().Warn("softnode: release failed", "err", rerr)
	}
	pixelnode.Logger().Info("softnode: host stopped",
		"frames", h.frames, "ticks", d.Ticks())

	switch {
	case errors.Is(err, ErrStop):
		return nil
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		return nil
	case err != nil:
		return fmt.Errorf("softnode: run: %w", err)
	}
	return nil
}

// requestRepaint coalesces repaint requests: at most one is pending.
func (h *Host) requestRepaint() {
	select {
	case h.repaint <- struct{}{}:
	default:
	}
}
