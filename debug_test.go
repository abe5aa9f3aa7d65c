package pixelnode

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLagFrames(t *testing.T) {
	tests := []struct {
		ticks, seq, want uint64
	}{
		{0, 0, 0},
		{0, 1, 0},
		{5, 6, 0},
		{5, 4, 2},
		{10, 1, 10},
		{3, 9, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, lagFrames(tt.ticks, tt.seq), "lagFrames(%d, %d)", tt.ticks, tt.seq)
	}
}

func TestDebugModeLogsPaints(t *testing.T) {
	var logs bytes.Buffer
	prev := Logger()
	SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(prev) })

	it := newTestItem(t, Config{Width: 4, Height: 4})
	it.Bridge().SetFactoryLookup((&stubFactories{}).lookup)
	ctx := &stubContext{api: GraphicsAPISoftware}

	require.NoError(t, it.Paint(ctx, DefaultRenderState(ctx)))
	assert.NotContains(t, logs.String(), "pixelnode: paint")

	it.SetDebugMode(true)
	it.Tick()
	require.NoError(t, it.Paint(ctx, DefaultRenderState(ctx)))
	out := logs.String()
	assert.Contains(t, out, "pixelnode: paint")
	assert.Contains(t, out, "backend=software")
	assert.Contains(t, out, "frame=2")
	assert.Contains(t, out, "ticks=1")
}

func TestDebugModeFromConfig(t *testing.T) {
	it := newTestItem(t, Config{Width: 4, Height: 4, Debug: true})
	assert.True(t, it.DebugMode())
	it.SetDebugMode(false)
	assert.False(t, it.DebugMode())
}

func TestDebugModeToggleWhilePainting(t *testing.T) {
	it := newTestItem(t, Config{Width: 4, Height: 4})
	it.Bridge().SetFactoryLookup((&stubFactories{}).lookup)
	ctx := &stubContext{api: GraphicsAPISoftware}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 200 {
			it.SetDebugMode(i%2 == 0)
		}
	}()
	for range 200 {
		require.NoError(t, it.Paint(ctx, DefaultRenderState(ctx)))
	}
	wg.Wait()
}

func TestSetLoggerNilRestoresSilence(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	SetLogger(nil)
	assert.False(t, Logger().Enabled(t.Context(), slog.LevelError))
}
