package graphics

import (
	"fmt"

	"github.com/richinsley/goimagefilter/shader"
)

// DefaultFramebuffer selects the visible surface in BindFramebuffer.
const DefaultFramebuffer uint32 = 0

// PixelFormat is the layout of an 8-bit-per-channel texture.
type PixelFormat int

const (
	FormatRGB PixelFormat = iota
	FormatRGBA
)

// FormatForChannels maps a decoder channel count to a texture format.
// Three channels is RGB, anything else is treated as RGBA.
func FormatForChannels(channels int) PixelFormat {
	if channels == 3 {
		return FormatRGB
	}
	return FormatRGBA
}

func (f PixelFormat) Channels() int {
	if f == FormatRGB {
		return 3
	}
	return 4
}

func (f PixelFormat) String() string {
	switch f {
	case FormatRGB:
		return "RGB"
	case FormatRGBA:
		return "RGBA"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}

// Rect is a region of a render target in pixels, origin bottom-left.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Device is the GPU binding layer. Handles are opaque uint32 values; zero is
// never a valid texture, program or quad.
//
// All calls must come from the goroutine that owns the graphics context.
type Device interface {
	// NewTexture allocates a 2D texture with linear filtering and
	// clamp-to-edge wrapping. A nil pixels slice leaves the contents undefined.
	NewTexture(width, height int, format PixelFormat, pixels []byte) (uint32, error)
	DeleteTexture(texture uint32)

	// NewFramebuffer binds each texture to the color attachment of the same
	// index and fails unless the framebuffer is complete.
	NewFramebuffer(attachments ...uint32) (uint32, error)
	DeleteFramebuffer(fbo uint32)
	// BindFramebuffer makes fbo the draw destination, routing output to the
	// given color attachment. DefaultFramebuffer ignores attachment.
	BindFramebuffer(fbo uint32, attachment int)

	// NewProgram compiles and links both stages of src.
	NewProgram(src shader.Source) (uint32, error)
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	// SetUniform1f sets a scalar uniform on the program in use.
	SetUniform1f(program uint32, name string, value float32)

	// NewQuad uploads interleaved {x, y, z, u, v} vertices drawn as a
	// triangle strip.
	NewQuad(vertices []float32) (uint32, error)
	DeleteQuad(quad uint32)

	BindTexture(texture uint32)
	Viewport(r Rect)
	// Clear fills the whole bound destination, regardless of the viewport.
	Clear(color [4]float32)
	DrawQuad(quad uint32)
}
