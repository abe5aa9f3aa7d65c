package pixelnode

import (
	"time"
)

// paintStats holds per-paint timing and texture metrics. Only populated when
// the item is in debug mode.
type paintStats struct {
	backend    GraphicsAPI
	paintTime  time.Duration
	textureW   int
	textureH   int
	frameSeq   uint64
	tickCount  uint64
	nodesBuilt int
}

// debugLog reports paint stats at debug level.
func (it *Item) debugLog(stats paintStats) {
	if !it.debug.Load() {
		return
	}
	Logger().Debug("pixelnode: paint",
		"backend", stats.backend,
		"paint", stats.paintTime,
		"texture_w", stats.textureW,
		"texture_h", stats.textureH,
		"frame", stats.frameSeq,
		"ticks", stats.tickCount,
		"lag", lagFrames(stats.tickCount, stats.frameSeq),
		"nodes_built", stats.nodesBuilt,
	)
}

// lagFrames is how many published frames the painted frame trails the
// newest tick by. The driver publishes one initial frame before any tick, so
// frame N corresponds to tick N-1.
func lagFrames(ticks, frameSeq uint64) uint64 {
	if frameSeq == 0 || frameSeq-1 >= ticks {
		return 0
	}
	return ticks - (frameSeq - 1)
}
