package shader

import (
	"github.com/chewxy/math32"
)

// Color is a normalized RGBA sample, each channel in [0, 1].
type Color [4]float32

// hsvEpsilon keeps the hue and saturation divisions finite for grays and black.
const hsvEpsilon = 1.0e-10

// Luminance returns the BT.601 luma of the color channels.
func Luminance(c Color) float32 {
	return 0.299*c[0] + 0.587*c[1] + 0.114*c[2]
}

func GrayscaleColor(c Color) Color {
	l := Luminance(c)
	return Color{l, l, l, c[3]}
}

// RGBToHSV converts to hue, saturation and value, each in [0, 1]. The hue of a
// gray is 0.
func RGBToHSV(r, g, b float32) (h, s, v float32) {
	// Order the channels so that q[0] is the maximum and the hue offset of
	// the dominant sextant lands in q[2].
	var p [4]float32
	if g >= b {
		p = [4]float32{g, b, 0, -1.0 / 3.0}
	} else {
		p = [4]float32{b, g, -1, 2.0 / 3.0}
	}
	var q [4]float32
	if r >= p[0] {
		q = [4]float32{r, p[1], p[2], p[0]}
	} else {
		q = [4]float32{p[0], p[1], p[3], r}
	}

	d := q[0] - math32.Min(q[3], q[1])
	h = math32.Abs(q[2] + (q[3]-q[1])/(6*d+hsvEpsilon))
	s = d / (q[0] + hsvEpsilon)
	v = q[0]
	return h, s, v
}

// HSVToRGB is the inverse of RGBToHSV. The hue wraps, so any real h is accepted.
func HSVToRGB(h, s, v float32) (r, g, b float32) {
	channel := func(offset float32) float32 {
		p := math32.Abs(fract(h+offset)*6 - 3)
		return v * mix(1, clamp01(p-1), s)
	}
	return channel(1), channel(2.0 / 3.0), channel(1.0 / 3.0)
}

// ShiftHue rotates the hue of c by shift turns, wrapping into [0, 1). Alpha is
// passed through.
func ShiftHue(c Color, shift float32) Color {
	h, s, v := RGBToHSV(c[0], c[1], c[2])
	h = mod1(h + shift)
	r, g, b := HSVToRGB(h, s, v)
	return Color{r, g, b, c[3]}
}

// mod1 matches GLSL mod(x, 1.0).
func mod1(x float32) float32 {
	return x - math32.Floor(x)
}

func fract(x float32) float32 {
	return x - math32.Floor(x)
}

func mix(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

func clamp01(x float32) float32 {
	return math32.Max(0, math32.Min(1, x))
}
