package pixelnode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemDefaults(t *testing.T) {
	it := newTestItem(t, Config{})
	w, h := it.Size()
	assert.Equal(t, 640.0, w)
	assert.Equal(t, 480.0, h)
	assert.Equal(t, 1.0, it.Opacity())
	assert.Equal(t, Rect{Width: 640, Height: 480}, it.Rect())
	require.NotNil(t, it.AcquireFrame())
}

func TestNewItemRejectsBadConfig(t *testing.T) {
	_, err := NewItem(Config{Width: -2})
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestItemOpacityClamped(t *testing.T) {
	it := newTestItem(t, Config{Width: 2, Height: 2})
	it.SetOpacity(2)
	assert.Equal(t, 1.0, it.Opacity())
	it.SetOpacity(-1)
	assert.Equal(t, 0.0, it.Opacity())
}

func TestPaintRendersCurrentNode(t *testing.T) {
	it := newTestItem(t, Config{Width: 2, Height: 2})
	f := &stubFactories{}
	it.Bridge().SetFactoryLookup(f.lookup)
	ctx := &stubContext{api: GraphicsAPIOpenGL}

	require.NoError(t, it.Paint(ctx, DefaultRenderState(ctx)))
	require.NoError(t, it.Paint(ctx, DefaultRenderState(ctx)))

	require.Len(t, f.built, 1)
	assert.Equal(t, 2, f.built[0].renders)
	assert.Equal(t, 2, ctx.acquired)
	assert.Equal(t, 2, ctx.released)
}

func TestPaintUnsupportedBackendIsSilent(t *testing.T) {
	it := newTestItem(t, Config{Width: 2, Height: 2})
	it.Bridge().SetFactoryLookup((&stubFactories{}).lookup)
	ctx := &stubContext{api: GraphicsAPIDirect3D}
	assert.NoError(t, it.Paint(ctx, DefaultRenderState(ctx)))
	assert.Nil(t, it.Bridge().Node())
}

func TestPaintWrapsRenderErrors(t *testing.T) {
	it := newTestItem(t, Config{Width: 2, Height: 2})
	f := &stubFactories{}
	it.Bridge().SetFactoryLookup(f.lookup)
	ctx := &stubContext{api: GraphicsAPISoftware}
	require.NoError(t, it.Paint(ctx, DefaultRenderState(ctx)))

	f.built[0].err = ErrShaderCompile
	err := it.Paint(ctx, DefaultRenderState(ctx))
	assert.ErrorIs(t, err, ErrShaderCompile)
	assert.Contains(t, err.Error(), "render software node")
}

func TestPaintPassesContextAndOpacity(t *testing.T) {
	it := newTestItem(t, Config{Width: 2, Height: 2})
	var got RenderState
	it.Bridge().SetFactoryLookup(func(api GraphicsAPI) NodeFactory {
		return func(item NodeItem) RenderNode {
			return &capturingNode{stubNode: stubNode{api: api, item: item}, got: &got}
		}
	})
	it.SetOpacity(0.5)
	ctx := &stubContext{api: GraphicsAPISoftware}
	st := DefaultRenderState(nil)
	st.Opacity = 0.5

	require.NoError(t, it.Paint(ctx, st))
	assert.Same(t, ctx, got.Context)
	assert.InDelta(t, 0.25, got.Opacity, 1e-6)
}

type capturingNode struct {
	stubNode
	got *RenderState
}

func (n *capturingNode) Render(s *RenderState) error {
	*n.got = *s
	return nil
}

func TestPaintAcquireFailure(t *testing.T) {
	it := newTestItem(t, Config{Width: 2, Height: 2})
	ctx := &stubContext{api: GraphicsAPISoftware, acquireErr: errors.New("no context")}
	assert.Error(t, it.Paint(ctx, DefaultRenderState(ctx)))
}

func TestItemRelease(t *testing.T) {
	it := newTestItem(t, Config{Width: 2, Height: 2})
	f := &stubFactories{}
	it.Bridge().SetFactoryLookup(f.lookup)
	ctx := &stubContext{api: GraphicsAPISoftware}
	require.NoError(t, it.Paint(ctx, DefaultRenderState(ctx)))

	require.NoError(t, it.Release(ctx))
	require.NoError(t, it.Release(ctx))
	assert.Equal(t, 1, f.built[0].releases)

	// Painting again builds a fresh node.
	require.NoError(t, it.Paint(ctx, DefaultRenderState(ctx)))
	assert.Len(t, f.built, 2)
}
