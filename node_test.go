package pixelnode

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubContext counts Acquire/Release pairs.
type stubContext struct {
	api        GraphicsAPI
	acquireErr error
	acquired   int
	released   int
}

func (c *stubContext) API() GraphicsAPI { return c.api }
func (c *stubContext) Acquire() error {
	if c.acquireErr != nil {
		return c.acquireErr
	}
	c.acquired++
	return nil
}
func (c *stubContext) Release() { c.released++ }

func TestQuadCorners(t *testing.T) {
	pos, uv := QuadCorners(100, 50)
	assert.Equal(t, [4]mgl32.Vec2{{0, 0}, {0, 49}, {99, 49}, {99, 0}}, pos)
	assert.Equal(t, [4]mgl32.Vec2{{0, 0}, {0, 1}, {1, 1}, {1, 0}}, uv)
}

func TestFanIndicesCoverQuad(t *testing.T) {
	assert.Equal(t, [6]uint16{0, 1, 2, 0, 2, 3}, FanIndices)
}

func TestRenderStateTransform(t *testing.T) {
	st := DefaultRenderState(nil)
	assert.Equal(t, mgl32.Ident4(), st.Transform())
	assert.Equal(t, float32(1), st.Opacity)

	st.Projection = mgl32.Ortho2D(0, 640, 480, 0)
	st.Matrix = mgl32.Translate3D(320, 240, 0)
	p := mgl32.TransformCoordinate(mgl32.Vec3{0, 0, 0}, st.Transform())
	assert.InDelta(t, 0, p.X(), 1e-6)
	assert.InDelta(t, 0, p.Y(), 1e-6)
}

func TestWithGPUContextScopes(t *testing.T) {
	ctx := &stubContext{api: GraphicsAPIOpenGL}
	inside := false
	err := WithGPUContext(ctx, func() error {
		inside = ctx.acquired == 1 && ctx.released == 0
		return nil
	})
	require.NoError(t, err)
	assert.True(t, inside)
	assert.Equal(t, 1, ctx.released)
}

func TestWithGPUContextReleasesOnError(t *testing.T) {
	ctx := &stubContext{api: GraphicsAPIOpenGL}
	boom := errors.New("boom")
	assert.ErrorIs(t, WithGPUContext(ctx, func() error { return boom }), boom)
	assert.Equal(t, 1, ctx.released)

	assert.Panics(t, func() {
		_ = WithGPUContext(ctx, func() error { panic("gpu fault") })
	})
	assert.Equal(t, 2, ctx.released)
}

func TestWithGPUContextAcquireFailure(t *testing.T) {
	ctx := &stubContext{api: GraphicsAPIMetal, acquireErr: errors.New("lost device")}
	called := false
	err := WithGPUContext(ctx, func() error { called = true; return nil })
	assert.Error(t, err)
	assert.False(t, called)
	assert.Zero(t, ctx.released)

	assert.ErrorIs(t, WithGPUContext(nil, func() error { return nil }), ErrIncompatibleContext)
}

func TestGraphicsAPIString(t *testing.T) {
	assert.Equal(t, "opengl", GraphicsAPIOpenGL.String())
	assert.Equal(t, "ebitengine", GraphicsAPIEbitengine.String())
	assert.Equal(t, "GraphicsAPI(42)", GraphicsAPI(42).String())
}

func TestRegistry(t *testing.T) {
	api := GraphicsAPIVulkan
	require.Nil(t, NodeFactoryFor(api))

	f := func(item NodeItem) RenderNode { return &stubNode{api: api, item: item} }
	RegisterNodeFactory(api, f)
	t.Cleanup(func() { UnregisterNodeFactory(api) })

	assert.NotNil(t, NodeFactoryFor(api))
	assert.Contains(t, RegisteredBackends(), api)

	UnregisterNodeFactory(api)
	assert.Nil(t, NodeFactoryFor(api))
	assert.NotContains(t, RegisteredBackends(), api)

	assert.Panics(t, func() { RegisterNodeFactory(api, nil) })
}
