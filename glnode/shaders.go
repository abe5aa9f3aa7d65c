package glnode

// Attribute locations. colAttr is declared by the vertex shader but never
// fed; the vertex buffer carries position and texture coordinate only.
const (
	posAttrLoc = 0
	colAttrLoc = 1
	texAttrLoc = 2
)

const vertexShaderSource = `#version 330 core
layout(location = 0) in vec2 posAttr;
layout(location = 1) in vec4 colAttr;
layout(location = 2) in vec2 textureCoordinate;

uniform mat4 matrix;

out vec2 texc;

void main() {
	texc = textureCoordinate;
	gl_Position = matrix * vec4(posAttr, 0.0, 1.0);
}
`

// The opacity uniform is set every frame but sampling ignores it.
const fragmentShaderSource = `#version 330 core
in vec2 texc;

uniform sampler2D s_texture;
uniform float opacity;

out vec4 fragColor;

void main() {
	fragColor = texture(s_texture, texc);
}
`
