package pixelnode

import (
	"fmt"
	"slices"
	"sync"
)

// GraphicsAPI identifies the graphics backend a host is running.
type GraphicsAPI uint8

const (
	GraphicsAPIUnknown    GraphicsAPI = iota
	GraphicsAPISoftware               // CPU rasterizer
	GraphicsAPIOpenGL                 // OpenGL 3.3 core context
	GraphicsAPIDirect3D               // Direct3D 11/12
	GraphicsAPIMetal                  // Metal
	GraphicsAPIVulkan                 // Vulkan
	GraphicsAPIEbitengine             // Ebitengine image/shader API
)

var apiNames = [...]string{
	GraphicsAPIUnknown:    "unknown",
	GraphicsAPISoftware:   "software",
	GraphicsAPIOpenGL:     "opengl",
	GraphicsAPIDirect3D:   "direct3d",
	GraphicsAPIMetal:      "metal",
	GraphicsAPIVulkan:     "vulkan",
	GraphicsAPIEbitengine: "ebitengine",
}

func (a GraphicsAPI) String() string {
	if int(a) < len(apiNames) {
		return apiNames[a]
	}
	return fmt.Sprintf("GraphicsAPI(%d)", uint8(a))
}

// GPUContext is supplied by the host. Acquire makes the context current on
// the calling goroutine; Release ends that scope. Every node lifecycle call
// happens between the two, via WithGPUContext.
type GPUContext interface {
	API() GraphicsAPI
	Acquire() error
	Release()
}

// WithGPUContext runs fn with ctx acquired and releases it afterwards, even
// if fn panics.
func WithGPUContext(ctx GPUContext, fn func() error) error {
	if ctx == nil {
		return fmt.Errorf("with gpu context: %w", ErrIncompatibleContext)
	}
	if err := ctx.Acquire(); err != nil {
		return fmt.Errorf("acquire %s context: %w", ctx.API(), err)
	}
	defer ctx.Release()
	return fn()
}

// NodeFactory builds a render node for item. It is called inside
// WithGPUContext but must not issue GPU calls itself; nodes initialize lazily
// on their first Render.
type NodeFactory func(item NodeItem) RenderNode

var (
	registryMu sync.RWMutex
	factories  = make(map[GraphicsAPI]NodeFactory)
)

// RegisterNodeFactory registers the node implementation for api. Backend
// packages call this from init. A later registration for the same api
// replaces the earlier one.
func RegisterNodeFactory(api GraphicsAPI, f NodeFactory) {
	if f == nil {
		panic("pixelnode: nil NodeFactory for " + api.String())
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[api] = f
}

// UnregisterNodeFactory removes the factory for api. Mostly useful in tests.
func UnregisterNodeFactory(api GraphicsAPI) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, api)
}

// NodeFactoryFor returns the factory registered for api, or nil.
func NodeFactoryFor(api GraphicsAPI) NodeFactory {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return factories[api]
}

// RegisteredBackends lists the APIs with a registered factory, in enum order.
func RegisteredBackends() []GraphicsAPI {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]GraphicsAPI, 0, len(factories))
	for api := range factories {
		out = append(out, api)
	}
	slices.Sort(out)
	return out
}
