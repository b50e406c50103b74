// In renderer/scene.go
package renderer

import (
	"fmt"
	"log"

	"github.com/richinsley/goimagefilter/graphics"
	"github.com/richinsley/goimagefilter/inputs"
	"github.com/richinsley/goimagefilter/shader"
)

// Scene owns every GPU resource of the viewer. All of it is created before the
// frame loop starts and released once after it ends.
type Scene struct {
	// The unfiltered image, uploaded once.
	Source *inputs.ImageChannel
	// The offscreen target holding one filtered variant per attachment.
	Buffer *inputs.Buffer
	// Copies a texture unchanged; draws the direct pass and every blit.
	Blit *Effect
	// One pass per viewport, left to right.
	Passes []*RenderPass

	effects []*Effect
	quad    uint32
	device  graphics.Device
}

// Destroy releases all resources in reverse creation order. It is safe on a
// partially built scene.
func (s *Scene) Destroy() {
	if s == nil {
		return
	}
	for i := len(s.effects) - 1; i >= 0; i-- {
		s.effects[i].Destroy()
	}
	s.effects = nil
	s.Passes = nil
	if s.Blit != nil {
		s.Blit.Destroy()
		s.Blit = nil
	}
	if s.Buffer != nil {
		s.Buffer.Destroy()
		s.Buffer = nil
	}
	if s.Source != nil {
		s.Source.Destroy()
		s.Source = nil
	}
	if s.quad != 0 {
		s.device.DeleteQuad(s.quad)
		s.quad = 0
	}
}

// LoadScene uploads img and builds the quad, the offscreen target sized to the
// image and the three effects. Any failure is fatal for the viewer; the
// resources created so far are released before returning.
func (r *Renderer) LoadScene(img *inputs.Image) (*Scene, error) {
	scene := &Scene{device: r.device}

	var err error
	scene.quad, err = r.device.NewQuad(QuadVertices())
	if err != nil {
		return nil, fmt.Errorf("failed to create quad: %w", err)
	}

	// 1. Source texture, then the render targets mirroring its size and format
	scene.Source, err = inputs.NewImageChannel(r.device, img)
	if err != nil {
		scene.Destroy()
		return nil, err
	}
	scene.Buffer, err = inputs.NewBuffer(r.device, img.Width, img.Height, scene.Source.Format())
	if err != nil {
		scene.Destroy()
		return nil, err
	}

	// 2. Effects and the passes that use them
	scene.Blit, err = NewEffect(r.device, shader.Passthrough(), nil)
	if err != nil {
		scene.Destroy()
		return nil, err
	}

	regions := Partition(r.width, r.height)
	scene.Passes = append(scene.Passes, &RenderPass{
		Effect: scene.Blit,
		Slot:   directPass,
		Region: regions[0],
	})
	for i, cfg := range filterPasses {
		effect, err := NewEffect(r.device, cfg.source(), cfg.uniforms)
		if err != nil {
			scene.Destroy()
			return nil, err
		}
		scene.effects = append(scene.effects, effect)
		scene.Passes = append(scene.Passes, &RenderPass{
			Effect: effect,
			Slot:   cfg.slot,
			Region: regions[i+1],
		})
	}

	r.scene = scene
	log.Printf("Scene ready: %dx%d %s source, %d passes", img.Width, img.Height, img.Format(), len(scene.Passes))
	return scene, nil
}
