package ebitennode

// textureShaderSrc samples the frame texture at the vertex's source
// position. Texels are treated as opaque and the result is scaled by
// Opacity, giving premultiplied output for source-over blending.
const textureShaderSrc = `//kage:unit pixels
package main

var Opacity float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0UnsafeAt(src)
	return vec4(c.rgb, 1) * Opacity
}
`
