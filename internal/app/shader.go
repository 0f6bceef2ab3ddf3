package app

import (
	"fmt"
	"strings"

	"github.com/philipparndt/govis/internal/render"
	"github.com/philipparndt/govis/internal/slice"
)

// vertexShader transforms with the structure's model-view matrix. matModel
// is set by raylib from the DrawMesh transform and places point glyphs.
const vertexShader = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;

uniform mat4 matModel;
uniform mat4 u_modelView;
uniform mat4 u_projMatrix;

out vec3 fragPosView;
out vec3 fragNormal;

void main() {
    mat4 modelView = u_modelView * matModel;
    vec4 posView = modelView * vec4(vertexPosition, 1.0);
    fragPosView = posView.xyz;
    fragNormal = mat3(modelView) * vertexNormal;
    gl_Position = u_projMatrix * posView;
}
`

// fragmentShaderTemplate gets one uniform pair and discard test per slice
// plane slot
const fragmentShaderTemplate = `#version 330
in vec3 fragPosView;
in vec3 fragNormal;

uniform vec3 u_baseColor;
uniform float u_transparency;
%s
out vec4 finalColor;

void main() {
%s
    vec3 n = normalize(fragNormal);
    float light = 0.3 + 0.7 * abs(n.z);
    finalColor = vec4(u_baseColor * light, u_transparency);
}
`

func fragmentShader() string {
	var uniforms, tests strings.Builder
	for i := 0; i < slice.MaxPlanes; i++ {
		normal := fmt.Sprintf("%s%d", render.UniformSlicePlaneNormal, i)
		center := fmt.Sprintf("%s%d", render.UniformSlicePlaneCenter, i)
		fmt.Fprintf(&uniforms, "uniform vec3 %s;\nuniform vec3 %s;\n", normal, center)
		fmt.Fprintf(&tests, "    if (dot(fragPosView - %s, %s) < 0.0) discard;\n", center, normal)
	}
	return fmt.Sprintf(fragmentShaderTemplate, uniforms.String(), tests.String())
}
