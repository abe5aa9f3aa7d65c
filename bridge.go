package pixelnode

// Bridge decides which render node an item uses and keeps it across frames.
// A node is reused while the host's backend stays the same; when the
// backend changes the old node is released and a new one is built. Bridge
// methods run on the render goroutine inside WithGPUContext.
type Bridge struct {
	item   NodeItem
	driver *AnimationDriver
	node   RenderNode
	lookup func(GraphicsAPI) NodeFactory

	created  int
	released int
}

// NewBridge returns a bridge for item. When driver is non-nil the current
// node is attached to it as the palette sink.
func NewBridge(item NodeItem, driver *AnimationDriver) *Bridge {
	if item == nil {
		panic("pixelnode: NewBridge with nil item")
	}
	return &Bridge{item: item, driver: driver, lookup: NodeFactoryFor}
}

// SetFactoryLookup overrides the registry lookup. Passing nil restores the
// global registry.
func (b *Bridge) SetFactoryLookup(fn func(GraphicsAPI) NodeFactory) {
	if fn == nil {
		fn = NodeFactoryFor
	}
	b.lookup = fn
}

// Update returns the node to render this frame for api, or nil when api has
// no node implementation. prev is the node the host got last frame; a prev
// the bridge did not issue is rejected and left alone.
func (b *Bridge) Update(prev RenderNode, api GraphicsAPI) RenderNode {
	if prev != nil && prev != b.node {
		Logger().Warn("pixelnode: rejecting foreign previous node",
			"prev_backend", prev.Backend(), "api", api)
	}

	if b.node != nil && b.node.Backend() != api {
		Logger().Info("pixelnode: backend changed, replacing node",
			"from", b.node.Backend(), "to", api)
		b.releaseNode()
	}

	if b.node == nil {
		factory := b.lookup(api)
		if factory == nil {
			return nil
		}
		n := factory(b.item)
		if n == nil {
			return nil
		}
		if n.Backend() != api {
			Logger().Warn("pixelnode: factory built node for wrong backend",
				"want", api, "got", n.Backend())
			n.ReleaseResources()
			return nil
		}
		b.node = n
		b.created++
		if b.driver != nil {
			b.driver.Attach(n)
		}
		Logger().Info("pixelnode: render node created", "backend", api)
	}

	b.node.MarkDirty(DirtyMaterial)
	return b.node
}

// Node returns the current node, or nil.
func (b *Bridge) Node() RenderNode {
	return b.node
}

// Release tears down the current node. Calling it again is a no-op.
func (b *Bridge) Release() {
	if b.node == nil {
		return
	}
	b.releaseNode()
}

func (b *Bridge) releaseNode() {
	if b.driver != nil {
		b.driver.Detach()
	}
	b.node.ReleaseResources()
	b.node = nil
	b.released++
}

// Counts returns how many nodes the bridge has created and released.
func (b *Bridge) Counts() (created, released int) {
	return b.created, b.released
}
