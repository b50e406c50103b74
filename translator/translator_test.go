package translator

import (
	"strings"
	"testing"

	"github.com/richinsley/goimagefilter/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappedName(t *testing.T) {
	s := &Stage{Names: map[string]string{
		"u_texture": "_uu_texture",
		"hueShift":  "",
	}}
	assert.Equal(t, "_uu_texture", s.MappedName("u_texture"))
	assert.Equal(t, "hueShift", s.MappedName("hueShift"))
	assert.Equal(t, "in_pos", s.MappedName("in_pos"))
}

func TestToDesktopGLEffectSources(t *testing.T) {
	for _, src := range []shader.Source{shader.Passthrough(), shader.Grayscale(), shader.HueShift()} {
		t.Run(src.Name, func(t *testing.T) {
			vs, err := ToDesktopGL(src.Vertex, "vertex")
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(vs.Code, "#version 330"), vs.Code)
			assert.Equal(t, "_uin_pos", vs.MappedName(shader.PositionAttribute))
			assert.Equal(t, "_uin_uv", vs.MappedName(shader.TexCoordAttribute))
			assert.Contains(t, vs.Code, "_uin_pos")

			fs, err := ToDesktopGL(src.Fragment, "fragment")
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(fs.Code, "#version 330"), fs.Code)
			assert.Equal(t, "_uu_texture", fs.MappedName(shader.SamplerUniform))
			for _, name := range src.Uniforms {
				assert.Equal(t, "_u"+name, fs.MappedName(name))
				assert.Contains(t, fs.Code, "_u"+name)
			}
		})
	}
}

func TestToDesktopGLRejectsInvalidSource(t *testing.T) {
	_, err := ToDesktopGL("#version 300 es\nvoid main() { undeclared = 1.0; }\n", "fragment")
	assert.ErrorContains(t, err, "fragment shader translation failed")
}

func TestGetTranslatorIsShared(t *testing.T) {
	a, err := GetTranslator()
	require.NoError(t, err)
	b, err := GetTranslator()
	require.NoError(t, err)
	assert.Same(t, a, b)
}
