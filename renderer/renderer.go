package renderer

import (
	"fmt"
	"log"

	"github.com/richinsley/goimagefilter/graphics"
	inputs "github.com/richinsley/goimagefilter/inputs"
	options "github.com/richinsley/goimagefilter/options"
)

// Renderer drives the frame loop. It is single-threaded: every method must be
// called from the goroutine that owns the graphics context.
type Renderer struct {
	context    graphics.Context
	device     graphics.Device
	clock      graphics.Clock
	scene      *Scene
	clearColor [4]float32
	width      int
	height     int
	frameCount int
}

// NewRenderer binds a renderer to a context and a device. The window layout
// is fixed from the framebuffer size at this point.
func NewRenderer(ctx graphics.Context, device graphics.Device, opts *options.Options) (*Renderer, error) {
	if ctx == nil || device == nil {
		return nil, fmt.Errorf("renderer needs a context and a device")
	}
	width, height := ctx.GetFramebufferSize()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid framebuffer size %dx%d", width, height)
	}
	return &Renderer{
		context:    ctx,
		device:     device,
		clock:      ctx,
		clearColor: opts.ClearColor,
		width:      width,
		height:     height,
	}, nil
}

// SetClock replaces the time source used to animate the effects.
func (r *Renderer) SetClock(clock graphics.Clock) {
	r.clock = clock
}

// Scene returns the loaded scene, or nil.
func (r *Renderer) Scene() *Scene {
	return r.scene
}

// Frames returns how many frames have been presented by Run.
func (r *Renderer) Frames() int {
	return r.frameCount
}

// RenderFrame draws one frame for elapsed seconds since the loop started:
// clear, the unfiltered image, then each filter into its offscreen attachment
// and from there into its viewport. It does not present.
func (r *Renderer) RenderFrame(elapsed float64) {
	s := r.scene
	if s == nil {
		return
	}

	r.device.BindFramebuffer(graphics.DefaultFramebuffer, 0)
	r.device.Viewport(graphics.Rect{Width: r.width, Height: r.height})
	r.device.Clear(r.clearColor)

	for _, pass := range s.Passes {
		var input inputs.IChannel = s.Source
		effect := pass.Effect
		if !pass.Direct() {
			r.renderInto(pass.Slot, pass.Effect, s.Source, elapsed)
			input = s.Buffer.Attachment(pass.Slot)
			effect = s.Blit
		}

		r.device.Viewport(pass.Region)
		effect.Use(elapsed)
		r.device.BindTexture(input.GetTextureID())
		r.device.DrawQuad(s.quad)
	}
}

// Run renders and presents frames until the context is asked to close. The
// close request is only checked between frames, so a frame in progress always
// completes.
func (r *Renderer) Run() {
	startTime := r.clock.Time()
	for !r.context.ShouldClose() {
		r.RenderFrame(r.clock.Time() - startTime)
		r.context.EndFrame()
		r.frameCount++
	}
	log.Printf("Render loop finished after %d frames", r.frameCount)
}

// Shutdown releases the scene. The context itself is shut down by its owner.
func (r *Renderer) Shutdown() {
	r.scene.Destroy()
	r.scene = nil
}
