package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-5

func TestGrayscaleColor(t *testing.T) {
	tests := []struct {
		name string
		in   Color
		want float32
	}{
		{"black", Color{0, 0, 0, 1}, 0},
		{"white", Color{1, 1, 1, 0.5}, 1},
		{"red", Color{1, 0, 0, 1}, 0.299},
		{"green", Color{0, 1, 0, 1}, 0.587},
		{"blue", Color{0, 0, 1, 1}, 0.114},
		{"mixed", Color{0.2, 0.4, 0.6, 0.25}, 0.299*0.2 + 0.587*0.4 + 0.114*0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GrayscaleColor(tt.in)
			assert.InDelta(t, tt.want, got[0], tolerance)
			assert.Equal(t, got[0], got[1])
			assert.Equal(t, got[0], got[2])
			assert.Equal(t, tt.in[3], got[3], "alpha must pass through")
		})
	}
}

func TestRGBToHSVPrimaries(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float32
		h, s, v float32
	}{
		{"red", 1, 0, 0, 0, 1, 1},
		{"yellow", 1, 1, 0, 1.0 / 6.0, 1, 1},
		{"green", 0, 1, 0, 1.0 / 3.0, 1, 1},
		{"cyan", 0, 1, 1, 0.5, 1, 1},
		{"blue", 0, 0, 1, 2.0 / 3.0, 1, 1},
		{"magenta", 1, 0, 1, 5.0 / 6.0, 1, 1},
		{"dark red", 0.5, 0, 0, 0, 1, 0.5},
		{"black", 0, 0, 0, 0, 0, 0},
		{"gray", 0.4, 0.4, 0.4, 0, 0, 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, v := RGBToHSV(tt.r, tt.g, tt.b)
			assert.InDelta(t, tt.h, h, tolerance, "hue")
			assert.InDelta(t, tt.s, s, tolerance, "saturation")
			assert.InDelta(t, tt.v, v, tolerance, "value")
		})
	}
}

func TestHSVRoundTrip(t *testing.T) {
	var steps = []float32{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1}
	for _, r := range steps {
		for _, g := range steps {
			for _, b := range steps {
				h, s, v := RGBToHSV(r, g, b)
				rr, gg, bb := HSVToRGB(h, s, v)
				assert.InDelta(t, r, rr, tolerance)
				assert.InDelta(t, g, gg, tolerance)
				assert.InDelta(t, b, bb, tolerance)

				if s > 0 {
					h2, s2, v2 := RGBToHSV(rr, gg, bb)
					// hue 0 and 1 are the same angle
					dh := h2 - h
					if dh > 0.5 {
						dh -= 1
					} else if dh < -0.5 {
						dh += 1
					}
					assert.InDelta(t, 0, dh, 1e-4)
					assert.InDelta(t, s, s2, tolerance)
					assert.InDelta(t, v, v2, tolerance)
				}
			}
		}
	}
}

func TestShiftHueFullTurnIsIdentity(t *testing.T) {
	colors := []Color{
		{1, 0, 0, 1},
		{0.3, 0.7, 0.2, 0.8},
		{0.9, 0.1, 0.6, 0},
		{0.5, 0.5, 0.5, 1},
		{0, 0, 0, 1},
	}
	for _, c := range colors {
		zero := ShiftHue(c, 0)
		full := ShiftHue(c, 1)
		for i := range zero {
			assert.InDelta(t, zero[i], full[i], 1e-4)
		}
	}
}

func TestShiftHueGraysUnchanged(t *testing.T) {
	for _, l := range []float32{0, 0.2, 0.5, 1} {
		c := Color{l, l, l, 1}
		for _, shift := range []float32{0, 0.3, 0.5, 0.99} {
			got := ShiftHue(c, shift)
			assert.InDelta(t, l, got[0], tolerance)
			assert.InDelta(t, l, got[1], tolerance)
			assert.InDelta(t, l, got[2], tolerance)
		}
	}
}

func TestShiftHueRedToCyan(t *testing.T) {
	got := ShiftHue(Color{1, 0, 0, 0.75}, 0.5)
	assert.InDelta(t, 0, got[0], tolerance)
	assert.InDelta(t, 1, got[1], tolerance)
	assert.InDelta(t, 1, got[2], tolerance)
	assert.Equal(t, float32(0.75), got[3])
}

func TestShiftHueStaysOnWheel(t *testing.T) {
	// red shifted by a third of a turn is green, by two thirds is blue
	green := ShiftHue(Color{1, 0, 0, 1}, 1.0/3.0)
	assert.InDelta(t, 0, green[0], tolerance)
	assert.InDelta(t, 1, green[1], tolerance)
	assert.InDelta(t, 0, green[2], tolerance)

	blue := ShiftHue(Color{1, 0, 0, 1}, 2.0/3.0)
	assert.InDelta(t, 0, blue[0], tolerance)
	assert.InDelta(t, 0, blue[1], tolerance)
	assert.InDelta(t, 1, blue[2], tolerance)
}

func TestSourcesShareVertexStage(t *testing.T) {
	sources := []Source{Passthrough(), Grayscale(), HueShift()}
	for _, src := range sources {
		assert.Equal(t, sources[0].Vertex, src.Vertex, src.Name)
		assert.Contains(t, src.Fragment, SamplerUniform, src.Name)
		assert.NotNil(t, src.Shade, src.Name)
	}
	assert.Equal(t, []string{HueShiftUniform}, HueShift().Uniforms)
	assert.Contains(t, HueShift().Fragment, "uniform float "+HueShiftUniform)

	c := Color{0.1, 0.2, 0.3, 0.4}
	assert.Equal(t, c, Passthrough().Shade(c, nil))
	assert.Equal(t, GrayscaleColor(c), Grayscale().Shade(c, nil))
	assert.Equal(t, ShiftHue(c, 0.25), HueShift().Shade(c, map[string]float32{HueShiftUniform: 0.25}))
}
