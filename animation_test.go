package pixelnode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

func newTestItem(t *testing.T, cfg Config) *Item {
	t.Helper()
	it, err := NewItem(cfg)
	require.NoError(t, err)
	return it
}

func TestTweenSizeReachesTarget(t *testing.T) {
	it := newTestItem(t, Config{Width: 4, Height: 4, ItemWidth: 10, ItemHeight: 20})
	g := TweenSize(it, 110, 40, 1, ease.Linear)

	g.Update(0.5)
	w, h := it.Size()
	assert.InDelta(t, 60, w, 1e-3)
	assert.InDelta(t, 30, h, 1e-3)
	assert.False(t, g.Done)

	g.Update(0.6)
	w, h = it.Size()
	assert.InDelta(t, 110, w, 1e-3)
	assert.InDelta(t, 40, h, 1e-3)
	assert.True(t, g.Done)

	// The buffer is untouched by geometry tweens.
	assert.Equal(t, 4, it.Driver().Buffer().Width())
}

func TestTweenOpacity(t *testing.T) {
	it := newTestItem(t, Config{Width: 4, Height: 4})
	g := TweenOpacity(it, 0.2, 2, ease.Linear)
	g.Update(1)
	assert.InDelta(t, 0.6, it.Opacity(), 1e-6)
	g.Update(5)
	assert.InDelta(t, 0.2, it.Opacity(), 1e-6)
	assert.True(t, g.Done)
}

func TestTweenDoneIgnoresUpdates(t *testing.T) {
	it := newTestItem(t, Config{Width: 4, Height: 4})
	g := TweenOpacity(it, 0, 0.1, ease.Linear)
	g.Update(1)
	require.True(t, g.Done)

	it.SetOpacity(0.7)
	g.Update(1)
	assert.InDelta(t, 0.7, it.Opacity(), 1e-6)
}

func TestTweenReset(t *testing.T) {
	it := newTestItem(t, Config{Width: 4, Height: 4, ItemWidth: 0})
	g := TweenSize(it, 8, 8, 1, ease.Linear)
	g.Update(2)
	require.True(t, g.Done)

	g.Reset()
	assert.False(t, g.Done)
	g.Update(0)
	w, _ := it.Size()
	assert.InDelta(t, 4, w, 1e-3)
}
