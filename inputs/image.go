// inputs/image.go
package inputs

import (
	"fmt"
	"image"
	"log"
	"os"

	"github.com/richinsley/goimagefilter/graphics"
	"golang.org/x/image/draw"

	// Blank imports for image decoders so image.Decode can handle them.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is a decoded 8-bit pixel buffer. Pix is row-major in upload order:
// the first row lands at the bottom of the texture.
type Image struct {
	Width    int
	Height   int
	Channels int // 3 (RGB) or 4 (straight-alpha RGBA)
	Pix      []byte
}

// Format returns the texture format matching the channel count.
func (img *Image) Format() graphics.PixelFormat {
	return graphics.FormatForChannels(img.Channels)
}

// LoadImage decodes the image file at path. When flip is set the rows are
// reversed so that the top of the picture ends up at the top of the texture.
func LoadImage(path string, flip bool) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	img, err := FromImage(src, flip)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %s image %s: %dx%d, %d channels", format, path, img.Width, img.Height, img.Channels)
	return img, nil
}

// FromImage converts any image.Image to an Image. Fully opaque images drop
// their alpha channel.
func FromImage(src image.Image, flip bool) (*Image, error) {
	if src == nil {
		return nil, fmt.Errorf("input image is nil")
	}
	bounds := src.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("input image is empty")
	}

	// Convert to straight alpha so translucent pixels keep their color.
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), src, bounds.Min, draw.Src)
	if flip {
		nrgba = vflip(nrgba)
	}

	img := &Image{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Channels: 4,
	}
	if !nrgba.Opaque() {
		img.Pix = make([]byte, img.Width*img.Height*4)
		for y := 0; y < img.Height; y++ {
			copy(img.Pix[y*img.Width*4:], nrgba.Pix[y*nrgba.Stride:y*nrgba.Stride+img.Width*4])
		}
		return img, nil
	}

	img.Channels = 3
	img.Pix = make([]byte, 0, img.Width*img.Height*3)
	for y := 0; y < img.Height; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+img.Width*4]
		for x := 0; x < len(row); x += 4 {
			img.Pix = append(img.Pix, row[x], row[x+1], row[x+2])
		}
	}
	return img, nil
}

// vflip vertically flips the provided image.
func vflip(src *image.NRGBA) *image.NRGBA {
	bounds := src.Bounds()
	flipped := image.NewNRGBA(bounds)
	height := bounds.Dy()

	rowSize := bounds.Dx() * 4
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		dstRow := flipped.Pix[y*flipped.Stride:]
		copy(dstRow, srcRow[:rowSize])
	}
	return flipped
}

// ImageChannel is the read-only source texture.
type ImageChannel struct {
	textureID uint32
	format    graphics.PixelFormat
	device    graphics.Device
}

// NewImageChannel uploads img once. The caller may drop img afterwards.
func NewImageChannel(device graphics.Device, img *Image) (*ImageChannel, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}
	if want := img.Width * img.Height * img.Channels; len(img.Pix) != want {
		return nil, fmt.Errorf("image has %d bytes, want %d for %dx%dx%d", len(img.Pix), want, img.Width, img.Height, img.Channels)
	}

	textureID, err := device.NewTexture(img.Width, img.Height, img.Format(), img.Pix)
	if err != nil {
		return nil, fmt.Errorf("failed to create source texture: %w", err)
	}

	return &ImageChannel{
		textureID: textureID,
		format:    img.Format(),
		device:    device,
	}, nil
}

// --- IChannel Interface Implementation ---
func (c *ImageChannel) GetTextureID() uint32 {
	return c.textureID
}

func (c *ImageChannel) Format() graphics.PixelFormat {
	return c.format
}

func (c *ImageChannel) Destroy() {
	c.device.DeleteTexture(c.textureID)
}
