package inputs

import (
	"fmt"

	"github.com/richinsley/goimagefilter/graphics"
)

// Attachment slots of the offscreen Buffer.
const (
	GrayscaleSlot   = 0
	ColorFilterSlot = 1
	numAttachments  = 2
)

// Buffer is an offscreen render target: one framebuffer with two color
// attachments that can be selected independently. Exactly one attachment
// receives output while the buffer is bound for writing.
type Buffer struct {
	device      graphics.Device
	fbo         uint32
	textureID   [numAttachments]uint32
	attachments [numAttachments]*attachment
	format      graphics.PixelFormat
	width       int
	height      int
}

// NewBuffer allocates the framebuffer and both attachment textures at the
// given size and format, and fails unless the framebuffer is complete.
func NewBuffer(device graphics.Device, width, height int, format graphics.PixelFormat) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid buffer size %dx%d", width, height)
	}
	b := &Buffer{
		device: device,
		format: format,
		width:  width,
		height: height,
	}

	for i := 0; i < numAttachments; i++ {
		texture, err := device.NewTexture(width, height, format, nil)
		if err != nil {
			b.Destroy()
			return nil, fmt.Errorf("failed to create attachment %d: %w", i, err)
		}
		b.textureID[i] = texture
		b.attachments[i] = &attachment{buffer: b, slot: i}
	}

	fbo, err := device.NewFramebuffer(b.textureID[:]...)
	if err != nil {
		b.Destroy()
		return nil, fmt.Errorf("offscreen framebuffer: %w", err)
	}
	b.fbo = fbo
	return b, nil
}

// BindForWriting routes subsequent draws to the attachment at slot.
func (b *Buffer) BindForWriting(slot int) {
	if slot < 0 || slot >= numAttachments {
		panic(fmt.Sprintf("inputs: attachment slot %d out of range", slot))
	}
	b.device.BindFramebuffer(b.fbo, slot)
}

// UnbindForWriting restores the visible surface as the draw destination.
func (b *Buffer) UnbindForWriting() {
	b.device.BindFramebuffer(graphics.DefaultFramebuffer, 0)
}

// Attachment returns the texture at slot as a sampling input.
func (b *Buffer) Attachment(slot int) IChannel {
	return b.attachments[slot]
}

// Size returns the native resolution of the attachments.
func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

func (b *Buffer) Format() graphics.PixelFormat {
	return b.format
}

func (b *Buffer) Destroy() {
	if b.fbo != 0 {
		b.device.DeleteFramebuffer(b.fbo)
		b.fbo = 0
	}
	for i, texture := range b.textureID {
		if texture != 0 {
			b.device.DeleteTexture(texture)
			b.textureID[i] = 0
		}
	}
}

// attachment exposes one slot of a Buffer. The Buffer owns the texture.
type attachment struct {
	buffer *Buffer
	slot   int
}

func (a *attachment) GetTextureID() uint32 {
	return a.buffer.textureID[a.slot]
}

func (a *attachment) Format() graphics.PixelFormat {
	return a.buffer.format
}
