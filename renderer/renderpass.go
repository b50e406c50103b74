package renderer

import (
	"github.com/richinsley/goimagefilter/graphics"
	inputs "github.com/richinsley/goimagefilter/inputs"
	shader "github.com/richinsley/goimagefilter/shader"
)

// directPass marks a RenderPass that draws the source straight to the window.
const directPass = -1

// RenderPass is one viewport of the window. Filter passes first render the
// source through Effect into the offscreen attachment Slot, then copy that
// attachment into Region.
type RenderPass struct {
	Effect *Effect
	Slot   int
	Region graphics.Rect
}

// Direct reports whether the pass skips the offscreen target.
func (p *RenderPass) Direct() bool {
	return p.Slot == directPass
}

// filterPasses lists the filtered variants in viewport order after the
// unfiltered one.
var filterPasses = []struct {
	source   func() shader.Source
	uniforms UniformSetter
	slot     int
}{
	{shader.Grayscale, nil, inputs.GrayscaleSlot},
	{shader.HueShift, animateHueShift, inputs.ColorFilterSlot},
}
