package headless

import (
	"testing"

	"github.com/richinsley/goimagefilter/graphics"
	"github.com/richinsley/goimagefilter/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fullQuad = []float32{
	-1, 1, 0, 0, 1,
	-1, -1, 0, 0, 0,
	1, 1, 0, 1, 1,
	1, -1, 0, 1, 0,
}

func TestFramebufferCompleteness(t *testing.T) {
	d := NewDevice(4, 4)
	a, err := d.NewTexture(3, 2, graphics.FormatRGB, nil)
	require.NoError(t, err)
	b, err := d.NewTexture(3, 2, graphics.FormatRGB, nil)
	require.NoError(t, err)
	small, err := d.NewTexture(1, 1, graphics.FormatRGB, nil)
	require.NoError(t, err)

	fbo, err := d.NewFramebuffer(a, b)
	require.NoError(t, err)
	assert.NotZero(t, fbo)

	_, err = d.NewFramebuffer()
	assert.ErrorContains(t, err, "not complete")
	_, err = d.NewFramebuffer(a, small)
	assert.ErrorContains(t, err, "not complete")
	_, err = d.NewFramebuffer(a, 999)
	assert.ErrorContains(t, err, "not complete")
}

func TestNewTextureValidatesData(t *testing.T) {
	d := NewDevice(1, 1)
	_, err := d.NewTexture(2, 2, graphics.FormatRGBA, make([]byte, 12))
	assert.Error(t, err)
	_, err = d.NewTexture(0, 2, graphics.FormatRGB, nil)
	assert.Error(t, err)
}

func TestNewProgramFailures(t *testing.T) {
	d := NewDevice(1, 1)

	src := shader.Passthrough()
	src.Vertex = ""
	_, err := d.NewProgram(src)
	assert.ErrorContains(t, err, "vertex shader")

	src = shader.Passthrough()
	src.Shade = nil
	_, err = d.NewProgram(src)
	assert.ErrorContains(t, err, "fragment shader")
}

func TestUndeclaredUniformIgnored(t *testing.T) {
	d := NewDevice(1, 1)
	p, err := d.NewProgram(shader.Grayscale())
	require.NoError(t, err)

	d.SetUniform1f(p, shader.HueShiftUniform, 0.25)
	_, ok := d.Uniform(p, shader.HueShiftUniform)
	assert.False(t, ok)

	h, err := d.NewProgram(shader.HueShift())
	require.NoError(t, err)
	d.SetUniform1f(h, shader.HueShiftUniform, 0.25)
	v, ok := d.Uniform(h, shader.HueShiftUniform)
	require.True(t, ok)
	assert.Equal(t, float32(0.25), v)
}

func TestClearAndDrawIntoAttachment(t *testing.T) {
	d := NewDevice(2, 2)
	src, err := d.NewTexture(1, 1, graphics.FormatRGB, []byte{255, 0, 0})
	require.NoError(t, err)
	a, err := d.NewTexture(2, 2, graphics.FormatRGB, nil)
	require.NoError(t, err)
	b, err := d.NewTexture(2, 2, graphics.FormatRGB, nil)
	require.NoError(t, err)
	fbo, err := d.NewFramebuffer(a, b)
	require.NoError(t, err)
	quad, err := d.NewQuad(fullQuad)
	require.NoError(t, err)
	prog, err := d.NewProgram(shader.Grayscale())
	require.NoError(t, err)

	d.BindFramebuffer(fbo, 1)
	d.Viewport(graphics.Rect{Width: 2, Height: 2})
	d.Clear([4]float32{0, 0, 0, 1})
	d.UseProgram(prog)
	d.BindTexture(src)
	d.DrawQuad(quad)
	d.BindFramebuffer(graphics.DefaultFramebuffer, 0)

	got, err := d.TexturePixel(b, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, [4]uint8{76, 76, 76, 255}, got)

	// the other attachment is untouched
	got, err = d.TexturePixel(a, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, [4]uint8{0, 0, 0, 255}, got)

	assert.Equal(t, [4]uint8{0, 0, 0, 0}, d.Pixel(0, 0))
	assert.Equal(t, 1, d.DrawCalls())
}

func TestDrawRespectsViewport(t *testing.T) {
	d := NewDevice(4, 2)
	src, err := d.NewTexture(1, 1, graphics.FormatRGBA, []byte{0, 0, 255, 255})
	require.NoError(t, err)
	quad, err := d.NewQuad(fullQuad)
	require.NoError(t, err)
	prog, err := d.NewProgram(shader.Passthrough())
	require.NoError(t, err)

	d.Clear([4]float32{1, 1, 1, 1})
	d.Viewport(graphics.Rect{X: 2, Width: 2, Height: 2})
	d.UseProgram(prog)
	d.BindTexture(src)
	d.DrawQuad(quad)

	assert.Equal(t, [4]uint8{255, 255, 255, 255}, d.Pixel(1, 1))
	assert.Equal(t, [4]uint8{0, 0, 255, 255}, d.Pixel(2, 0))
	assert.Equal(t, [4]uint8{0, 0, 255, 255}, d.Pixel(3, 1))
}

func TestBilinearSampling(t *testing.T) {
	d := NewDevice(1, 1)
	// a 2x1 black to white ramp, drawn into a 4x1 target
	src, err := d.NewTexture(2, 1, graphics.FormatRGB, []byte{0, 0, 0, 255, 255, 255})
	require.NoError(t, err)
	dst, err := d.NewTexture(4, 1, graphics.FormatRGB, nil)
	require.NoError(t, err)
	fbo, err := d.NewFramebuffer(dst)
	require.NoError(t, err)
	quad, err := d.NewQuad(fullQuad)
	require.NoError(t, err)
	prog, err := d.NewProgram(shader.Passthrough())
	require.NoError(t, err)

	d.BindFramebuffer(fbo, 0)
	d.Viewport(graphics.Rect{Width: 4, Height: 1})
	d.UseProgram(prog)
	d.BindTexture(src)
	d.DrawQuad(quad)

	want := []uint8{0, 64, 191, 255}
	for x, w := range want {
		got, err := d.TexturePixel(dst, x, 0)
		require.NoError(t, err)
		assert.Equal(t, w, got[0], "texel %d", x)
	}
}

func TestLiveCountsResources(t *testing.T) {
	d := NewDevice(1, 1)
	tex, err := d.NewTexture(1, 1, graphics.FormatRGB, nil)
	require.NoError(t, err)
	fbo, err := d.NewFramebuffer(tex)
	require.NoError(t, err)
	quad, err := d.NewQuad(fullQuad)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Live())

	d.DeleteQuad(quad)
	d.DeleteFramebuffer(fbo)
	d.DeleteTexture(tex)
	assert.Zero(t, d.Live())

	_, err = d.NewQuad(fullQuad[:10])
	assert.Error(t, err)
}
