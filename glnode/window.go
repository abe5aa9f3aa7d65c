package glnode

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/pixelnode"
	"golang.org/x/sync/errgroup"
)

func init() {
	// GLFW event handling and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

// WindowConfig configures the GLFW host window.
type WindowConfig struct {
	Title         string
	Width, Height int
	// FitItem resizes the item to the window's size every frame.
	FitItem bool
	// WaitTimeout bounds how long the loop sleeps waiting for events, in
	// seconds.
	WaitTimeout float64
}

// DefaultWindowConfig returns a 640×480 window that the item fills.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Title:       "pixelnode",
		Width:       pixelnode.DefaultWidth,
		Height:      pixelnode.DefaultHeight,
		FitItem:     true,
		WaitTimeout: 0.1,
	}
}

// Run opens a window, ticks the item's driver on a background goroutine and
// paints on the calling goroutine, which must be the main one, until the
// window is closed or ctx is cancelled.
func Run(ctx context.Context, it *pixelnode.Item, cfg WindowConfig) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glnode: init glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("glnode: create window: %w", err)
	}
	defer win.Destroy()
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return fmt.Errorf("glnode: init gl: %w", err)
	}
	pixelnode.Logger().Info("glnode: context ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	gctx := NewContext(win)
	d := it.Driver()
	d.SetRepaintFunc(glfw.PostEmptyEvent)

	runCtx, cancel := context.WithCancel(ctx)
	g, tctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		return d.Run(tctx)
	})
	g.Go(func() error {
		<-tctx.Done()
		glfw.PostEmptyEvent()
		return nil
	})

	wait := cfg.WaitTimeout
	if wait <= 0 {
		wait = 0.1
	}
	for !win.ShouldClose() && tctx.Err() == nil {
		glfw.WaitEventsTimeout(wait)
		if err := paintWindow(win, gctx, it, cfg); err != nil {
			pixelnode.Logger().Warn("glnode: paint failed", "err", err)
		}
	}

	cancel()
	_ = g.Wait()
	d.SetRepaintFunc(nil)

	if err := it.Release(gctx); err != nil {
		return fmt.Errorf("glnode: release: %w", err)
	}
	return nil
}

// paintWindow clears the framebuffer, paints the item with a pixel-space
// orthographic projection and presents.
func paintWindow(win *glfw.Window, ctx *Context, it *pixelnode.Item, cfg WindowConfig) error {
	fbw, fbh := win.GetFramebufferSize()
	ww, wh := win.GetSize()
	if cfg.FitItem {
		it.SetSize(float64(ww), float64(wh))
	}

	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	state := pixelnode.DefaultRenderState(ctx)
	state.Projection = mgl32.Ortho2D(0, float32(ww), float32(wh), 0)
	err := it.Paint(ctx, state)

	win.SwapBuffers()
	return err
}
