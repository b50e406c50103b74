package renderer

import (
	"github.com/richinsley/goimagefilter/graphics"
	inputs "github.com/richinsley/goimagefilter/inputs"
)

var opaqueBlack = [4]float32{0, 0, 0, 1}

// renderInto draws input through effect into the offscreen attachment at slot,
// at the target's native resolution, and restores the visible surface as the
// draw destination afterwards. The attachment then holds the filtered image.
func (r *Renderer) renderInto(slot int, effect *Effect, input inputs.IChannel, elapsed float64) {
	s := r.scene
	s.Buffer.BindForWriting(slot)

	width, height := s.Buffer.Size()
	r.device.Viewport(graphics.Rect{Width: width, Height: height})
	r.device.Clear(opaqueBlack)

	effect.Use(elapsed)
	r.device.BindTexture(input.GetTextureID())
	r.device.DrawQuad(s.quad)

	s.Buffer.UnbindForWriting()
}
