package pixelnode

import "errors"

var (
	// ErrInvalidSize is returned when a buffer dimension is not positive.
	ErrInvalidSize = errors.New("pixelnode: invalid buffer size")

	// ErrAllocation is returned when a buffer resize cannot obtain storage.
	// The previous buffer is left intact.
	ErrAllocation = errors.New("pixelnode: buffer allocation failed")

	// ErrShaderCompile is returned by a node whose program failed to build.
	// Such a node stays inert for the rest of its life.
	ErrShaderCompile = errors.New("pixelnode: shader program build failed")

	// ErrNodeReleased is returned when rendering a node after ReleaseResources.
	ErrNodeReleased = errors.New("pixelnode: render node released")

	// ErrIncompatibleContext is returned when a node receives a GPU context
	// that belongs to a different backend.
	ErrIncompatibleContext = errors.New("pixelnode: incompatible GPU context")
)
