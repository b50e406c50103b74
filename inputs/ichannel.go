package inputs

import "github.com/richinsley/goimagefilter/graphics"

// IChannel is any texture an effect can sample: the source image or one of
// the offscreen attachments.
type IChannel interface {
	// GetTextureID returns the texture that should be bound.
	GetTextureID() uint32

	// Format returns the pixel layout of the texture.
	Format() graphics.PixelFormat
}

var (
	_ IChannel = (*ImageChannel)(nil)
	_ IChannel = (*attachment)(nil)
)
