package pixelnode

import "sync"

// Frame is a copy of the pixel buffer handed to the render side. The reader
// owns it until its next Acquire call.
type Frame struct {
	Pix           []byte
	Width, Height int
	// Seq increases by one with every published frame.
	Seq uint64
}

// FrameExchange hands pixel frames from one writer (the animation driver)
// to one reader (the render node) without either side ever touching a slab
// the other is using. It is a triple buffer: the writer fills its spare slab
// and swaps it into the ready slot; the reader swaps the ready slot into its
// front slot. Only the slot swaps are done under the mutex.
type FrameExchange struct {
	mu    sync.Mutex
	ready *Frame
	fresh bool

	// writer-owned
	spare *Frame
	seq   uint64

	// reader-owned
	front *Frame
}

// Publish copies v into the writer's spare slab and makes it the newest
// frame. Must only be called from the writer goroutine.
func (e *FrameExchange) Publish(v View) {
	f := e.spare
	if f == nil {
		f = &Frame{}
	}
	if cap(f.Pix) < len(v.Pix) {
		f.Pix = make([]byte, len(v.Pix))
	}
	f.Pix = f.Pix[:len(v.Pix)]
	copy(f.Pix, v.Pix)
	f.Width = v.Width
	f.Height = v.Height
	e.seq++
	f.Seq = e.seq

	e.mu.Lock()
	e.spare, e.ready = e.ready, f
	e.fresh = true
	e.mu.Unlock()
}

// Acquire returns the newest published frame, or nil if nothing has been
// published yet. The frame stays valid and unchanged until the next Acquire.
// Must only be called from the reader goroutine.
func (e *FrameExchange) Acquire() *Frame {
	e.mu.Lock()
	if e.fresh {
		e.front, e.ready = e.ready, e.front
		e.fresh = false
	}
	f := e.front
	e.mu.Unlock()
	return f
}

// Published returns the sequence number of the last published frame.
// Writer side only.
func (e *FrameExchange) Published() uint64 {
	return e.seq
}

// lastAcquired returns the sequence number of the reader's current frame.
// Reader side only.
func (e *FrameExchange) lastAcquired() uint64 {
	if e.front == nil {
		return 0
	}
	return e.front.Seq
}
