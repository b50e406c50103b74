package headless

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/richinsley/goimagefilter/graphics"
	"github.com/richinsley/goimagefilter/shader"
)

const quadStride = 5 // x, y, z, u, v

type texture struct {
	width, height int
	format        graphics.PixelFormat
	pix           []byte
}

type program struct {
	shade    shader.FragmentFunc
	uniforms map[string]float32
}

// Device is a software rendition of graphics.Device. Fragment stages run as
// their shader.FragmentFunc, sampling with bilinear filtering and
// clamp-to-edge wrapping, and results are quantized to 8 bits per channel the
// way a fixed-point color attachment stores them.
//
// The visible surface is an RGBA texture of the size given to NewDevice.
type Device struct {
	screen       *texture
	textures     map[uint32]*texture
	framebuffers map[uint32][]uint32
	programs     map[uint32]*program
	quads        map[uint32][]float32
	nextID       uint32

	boundFBO  uint32
	boundSlot int
	program   uint32
	texture   uint32
	viewport  graphics.Rect
	drawCalls int
}

var _ graphics.Device = (*Device)(nil)

func NewDevice(width, height int) *Device {
	return &Device{
		screen: &texture{
			width:  width,
			height: height,
			format: graphics.FormatRGBA,
			pix:    make([]byte, width*height*4),
		},
		textures:     make(map[uint32]*texture),
		framebuffers: make(map[uint32][]uint32),
		programs:     make(map[uint32]*program),
		quads:        make(map[uint32][]float32),
		viewport:     graphics.Rect{Width: width, Height: height},
	}
}

func (d *Device) newID() uint32 {
	d.nextID++
	return d.nextID
}

func (d *Device) NewTexture(width, height int, format graphics.PixelFormat, pixels []byte) (uint32, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("invalid texture size %dx%d", width, height)
	}
	size := width * height * format.Channels()
	pix := make([]byte, size)
	if pixels != nil {
		if len(pixels) != size {
			return 0, fmt.Errorf("texture data has %d bytes, want %d", len(pixels), size)
		}
		copy(pix, pixels)
	}
	id := d.newID()
	d.textures[id] = &texture{width: width, height: height, format: format, pix: pix}
	return id, nil
}

func (d *Device) DeleteTexture(id uint32) {
	delete(d.textures, id)
}

func (d *Device) NewFramebuffer(attachments ...uint32) (uint32, error) {
	if len(attachments) == 0 {
		return 0, fmt.Errorf("framebuffer is not complete: no color attachments")
	}
	first, ok := d.textures[attachments[0]]
	if !ok {
		return 0, fmt.Errorf("framebuffer is not complete: attachment 0 is not a texture")
	}
	for i, id := range attachments {
		t, ok := d.textures[id]
		if !ok {
			return 0, fmt.Errorf("framebuffer is not complete: attachment %d is not a texture", i)
		}
		if t.width != first.width || t.height != first.height {
			return 0, fmt.Errorf("framebuffer is not complete: attachment %d is %dx%d, want %dx%d",
				i, t.width, t.height, first.width, first.height)
		}
	}
	id := d.newID()
	d.framebuffers[id] = append([]uint32(nil), attachments...)
	return id, nil
}

func (d *Device) DeleteFramebuffer(fbo uint32) {
	delete(d.framebuffers, fbo)
	if d.boundFBO == fbo {
		d.boundFBO = graphics.DefaultFramebuffer
	}
}

func (d *Device) BindFramebuffer(fbo uint32, attachment int) {
	d.boundFBO = fbo
	d.boundSlot = attachment
}

// NewProgram fails the way a driver rejects a stage: an empty source or a
// fragment stage without a CPU rendition cannot be run here.
func (d *Device) NewProgram(src shader.Source) (uint32, error) {
	if src.Vertex == "" {
		return 0, fmt.Errorf("failed to compile vertex shader: empty source")
	}
	if src.Fragment == "" || src.Shade == nil {
		return 0, fmt.Errorf("failed to compile fragment shader: no software rendition for %q", src.Name)
	}
	id := d.newID()
	p := &program{shade: src.Shade, uniforms: make(map[string]float32, len(src.Uniforms))}
	for _, name := range src.Uniforms {
		p.uniforms[name] = 0
	}
	d.programs[id] = p
	return id, nil
}

func (d *Device) DeleteProgram(id uint32) {
	delete(d.programs, id)
}

func (d *Device) UseProgram(id uint32) {
	d.program = id
}

func (d *Device) SetUniform1f(id uint32, name string, value float32) {
	p, ok := d.programs[id]
	if !ok {
		return
	}
	// Undeclared uniforms are ignored, like a location of -1.
	if _, declared := p.uniforms[name]; declared {
		p.uniforms[name] = value
	}
}

// Uniform reads back a uniform value for assertions.
func (d *Device) Uniform(id uint32, name string) (float32, bool) {
	p, ok := d.programs[id]
	if !ok {
		return 0, false
	}
	v, ok := p.uniforms[name]
	return v, ok
}

func (d *Device) NewQuad(vertices []float32) (uint32, error) {
	if len(vertices) != 4*quadStride {
		return 0, fmt.Errorf("quad needs 4 vertices of %d floats, got %d floats", quadStride, len(vertices))
	}
	id := d.newID()
	d.quads[id] = append([]float32(nil), vertices...)
	return id, nil
}

func (d *Device) DeleteQuad(id uint32) {
	delete(d.quads, id)
}

func (d *Device) BindTexture(id uint32) {
	d.texture = id
}

func (d *Device) Viewport(r graphics.Rect) {
	d.viewport = r
}

func (d *Device) destination() *texture {
	if d.boundFBO == graphics.DefaultFramebuffer {
		return d.screen
	}
	attachments, ok := d.framebuffers[d.boundFBO]
	if !ok || d.boundSlot < 0 || d.boundSlot >= len(attachments) {
		return nil
	}
	return d.textures[attachments[d.boundSlot]]
}

func (d *Device) Clear(color [4]float32) {
	dst := d.destination()
	if dst == nil {
		return
	}
	for y := 0; y < dst.height; y++ {
		for x := 0; x < dst.width; x++ {
			dst.store(x, y, shader.Color(color))
		}
	}
}

// DrawQuad rasterizes the quad across the current viewport. Each pixel
// center is mapped to the texture coordinate interpolated between the quad's
// bottom-left and top-right corners.
func (d *Device) DrawQuad(id uint32) {
	vertices, ok := d.quads[id]
	if !ok {
		return
	}
	p, ok := d.programs[d.program]
	if !ok {
		return
	}
	src, ok := d.textures[d.texture]
	if !ok {
		return
	}
	dst := d.destination()
	if dst == nil || d.viewport.Width <= 0 || d.viewport.Height <= 0 {
		return
	}
	d.drawCalls++

	x0, y0, u0, v0, x1, y1, u1, v1 := quadBounds(vertices)
	vp := d.viewport
	for py := max(vp.Y, 0); py < min(vp.Y+vp.Height, dst.height); py++ {
		// pixel center in normalized device coordinates
		ny := 2*(float32(py-vp.Y)+0.5)/float32(vp.Height) - 1
		if ny < y0 || ny > y1 {
			continue
		}
		v := v0 + (v1-v0)*(ny-y0)/(y1-y0)
		for px := max(vp.X, 0); px < min(vp.X+vp.Width, dst.width); px++ {
			nx := 2*(float32(px-vp.X)+0.5)/float32(vp.Width) - 1
			if nx < x0 || nx > x1 {
				continue
			}
			u := u0 + (u1-u0)*(nx-x0)/(x1-x0)
			dst.store(px, py, p.shade(src.sample(u, v), p.uniforms))
		}
	}
}

// DrawCalls reports how many draws produced fragments.
func (d *Device) DrawCalls() int {
	return d.drawCalls
}

// Pixel reads the visible surface at x, y (origin bottom-left).
func (d *Device) Pixel(x, y int) [4]uint8 {
	return d.screen.load(x, y)
}

// TexturePixel reads a texel; textures without alpha report 255.
func (d *Device) TexturePixel(id uint32, x, y int) ([4]uint8, error) {
	t, ok := d.textures[id]
	if !ok {
		return [4]uint8{}, fmt.Errorf("no texture %d", id)
	}
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return [4]uint8{}, fmt.Errorf("texel %d,%d outside %dx%d texture", x, y, t.width, t.height)
	}
	return t.load(x, y), nil
}

// Live reports how many textures, framebuffers, programs and quads exist.
func (d *Device) Live() int {
	return len(d.textures) + len(d.framebuffers) + len(d.programs) + len(d.quads)
}

func quadBounds(vertices []float32) (x0, y0, u0, v0, x1, y1, u1, v1 float32) {
	x0, y0 = math32.Inf(1), math32.Inf(1)
	x1, y1 = math32.Inf(-1), math32.Inf(-1)
	for i := 0; i < len(vertices); i += quadStride {
		x, y := vertices[i], vertices[i+1]
		u, v := vertices[i+3], vertices[i+4]
		if x <= x0 && y <= y0 {
			x0, y0, u0, v0 = x, y, u, v
		}
		if x >= x1 && y >= y1 {
			x1, y1, u1, v1 = x, y, u, v
		}
	}
	return
}

func (t *texture) load(x, y int) [4]uint8 {
	ch := t.format.Channels()
	i := (y*t.width + x) * ch
	out := [4]uint8{t.pix[i], t.pix[i+1], t.pix[i+2], 255}
	if ch == 4 {
		out[3] = t.pix[i+3]
	}
	return out
}

func (t *texture) store(x, y int, c shader.Color) {
	ch := t.format.Channels()
	i := (y*t.width + x) * ch
	for k := 0; k < ch; k++ {
		t.pix[i+k] = quantize(c[k])
	}
}

func (t *texture) texel(x, y int) shader.Color {
	x = min(max(x, 0), t.width-1)
	y = min(max(y, 0), t.height-1)
	p := t.load(x, y)
	return shader.Color{
		float32(p[0]) / 255,
		float32(p[1]) / 255,
		float32(p[2]) / 255,
		float32(p[3]) / 255,
	}
}

// sample filters bilinearly with clamp-to-edge wrapping.
func (t *texture) sample(u, v float32) shader.Color {
	fx := u*float32(t.width) - 0.5
	fy := v*float32(t.height) - 0.5
	x0 := int(math32.Floor(fx))
	y0 := int(math32.Floor(fy))
	ax := fx - float32(x0)
	ay := fy - float32(y0)

	c00 := t.texel(x0, y0)
	c10 := t.texel(x0+1, y0)
	c01 := t.texel(x0, y0+1)
	c11 := t.texel(x0+1, y0+1)

	var out shader.Color
	for k := range out {
		bottom := c00[k]*(1-ax) + c10[k]*ax
		top := c01[k]*(1-ax) + c11[k]*ax
		out[k] = bottom*(1-ay) + top*ay
	}
	return out
}

func quantize(v float32) uint8 {
	v = math32.Max(0, math32.Min(1, v))
	return uint8(math32.Round(v * 255))
}
