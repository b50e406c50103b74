package shader

// All stages are written against WebGL2 (GLSL ES 3.00) and translated to the
// desktop dialect by the GL device before compiling.

// ────────────────────────────────── Vertex ──────────────────────────────────

const vertexShaderSource = `#version 300 es
layout (location = 0) in vec3 in_pos;
layout (location = 1) in vec2 in_uv;
out vec2 frag_uv;
void main() {
    frag_uv = in_uv;
    gl_Position = vec4(in_pos, 1.0);
}
`

// ───────────────────────────────── Fragment ─────────────────────────────────

const passthroughFragmentShaderSource = `#version 300 es
precision mediump float;
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texture(u_texture, frag_uv); }
`

// BT.601 luma
const grayscaleFragmentShaderSource = `#version 300 es
precision mediump float;
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() {
    vec4 color = texture(u_texture, frag_uv);
    float gray = dot(color.rgb, vec3(0.299, 0.587, 0.114));
    fragColor = vec4(vec3(gray), color.a);
}
`

const hueShiftFragmentShaderSource = `#version 300 es
precision highp float;
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_texture;
uniform float hueShift; // [0, 1), one full turn of the color wheel

vec3 rgbToHsv(vec3 c)
{
    vec4 K = vec4(0.0, -1.0 / 3.0, 2.0 / 3.0, -1.0);
    vec4 p = mix(vec4(c.bg, K.wz), vec4(c.gb, K.xy), step(c.b, c.g));
    vec4 q = mix(vec4(p.xyw, c.r), vec4(c.r, p.yzx), step(p.x, c.r));

    float d = q.x - min(q.w, q.y);
    float e = 1.0e-10;
    return vec3(abs(q.z + (q.w - q.y) / (6.0 * d + e)), d / (q.x + e), q.x);
}

vec3 hsvToRgb(vec3 c)
{
    vec4 K = vec4(1.0, 2.0 / 3.0, 1.0 / 3.0, 3.0);
    vec3 p = abs(fract(c.xxx + K.xyz) * 6.0 - K.www);
    return c.z * mix(K.xxx, clamp(p - K.xxx, 0.0, 1.0), c.y);
}

void main()
{
    vec4 color = texture(u_texture, frag_uv);
    vec3 hsv = rgbToHsv(color.rgb);
    hsv.x = mod(hsv.x + hueShift, 1.0);
    fragColor = vec4(hsvToRgb(hsv), color.a);
}
`

// ────────────────────────────────── Public API ─────────────────────────────────

// Vertex attributes of the shared vertex stage and their fixed locations.
const (
	PositionAttribute = "in_pos"
	TexCoordAttribute = "in_uv"
	PositionLocation  = 0
	TexCoordLocation  = 1
)

const (
	// SamplerUniform is the input texture every fragment stage samples, bound
	// to texture unit 0.
	SamplerUniform = "u_texture"
	// HueShiftUniform is the hue rotation of the hue-shift effect.
	HueShiftUniform = "hueShift"
)

// FragmentFunc is the CPU rendition of a fragment stage. It maps one sampled
// color and the current uniform values to the output color.
type FragmentFunc func(c Color, uniforms map[string]float32) Color

// Source describes one effect: the stage sources, the scalar uniforms the
// fragment stage declares and an equivalent CPU function for devices without
// a shader compiler.
type Source struct {
	Name     string
	Vertex   string
	Fragment string
	Uniforms []string
	Shade    FragmentFunc
}

// Passthrough copies the sampled color unchanged.
func Passthrough() Source {
	return Source{
		Name:     "passthrough",
		Vertex:   vertexShaderSource,
		Fragment: passthroughFragmentShaderSource,
		Shade: func(c Color, _ map[string]float32) Color {
			return c
		},
	}
}

// Grayscale replaces the color channels with their BT.601 luminance.
func Grayscale() Source {
	return Source{
		Name:     "grayscale",
		Vertex:   vertexShaderSource,
		Fragment: grayscaleFragmentShaderSource,
		Shade: func(c Color, _ map[string]float32) Color {
			return GrayscaleColor(c)
		},
	}
}

// HueShift rotates the hue by the HueShiftUniform value.
func HueShift() Source {
	return Source{
		Name:     "hueshift",
		Vertex:   vertexShaderSource,
		Fragment: hueShiftFragmentShaderSource,
		Uniforms: []string{HueShiftUniform},
		Shade: func(c Color, uniforms map[string]float32) Color {
			return ShiftHue(c, uniforms[HueShiftUniform])
		},
	}
}
