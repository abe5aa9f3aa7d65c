package pixelnode

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 3 item properties simultaneously. Create one via
// TweenSize or TweenOpacity and call Update(dt) from the control loop. Item
// geometry is independent of the pixel buffer, so size tweens stretch the
// quad without touching the texture.
//
// There is no global animation manager; callers drive Update themselves.
type TweenGroup struct {
	tweens [3]*gween.Tween
	apply  [3]func(float64)
	count  int
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the item.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.apply[i](float64(val))
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Reset rewinds every tween to its start.
func (g *TweenGroup) Reset() {
	for i := 0; i < g.count; i++ {
		g.tweens[i].Reset()
	}
	g.Done = false
}

// TweenSize animates the item's width and height to (toW, toH) over
// duration seconds using fn.
func TweenSize(it *Item, toW, toH float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	w, h := it.Size()
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(w), float32(toW), duration, fn)
	g.tweens[1] = gween.New(float32(h), float32(toH), duration, fn)
	g.apply[0] = func(v float64) {
		_, cur := it.Size()
		it.SetSize(v, cur)
	}
	g.apply[1] = func(v float64) {
		cur, _ := it.Size()
		it.SetSize(cur, v)
	}
	return g
}

// TweenOpacity animates the item's own opacity to the target value.
func TweenOpacity(it *Item, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(it.Opacity()), float32(to), duration, fn)
	g.apply[0] = it.SetOpacity
	return g
}
