package options

import "fmt"

// Options holds everything the viewer needs to start. There are no flags or
// config files; Default returns the one configuration the program runs with.
type Options struct {
	ImagePath  string
	Width      int
	Height     int
	Title      string
	VSync      bool
	FlipImage  bool       // decoded rows are top-first, GL textures are bottom-first
	ClearColor [4]float32 // background behind the three viewports
}

func Default() *Options {
	return &Options{
		ImagePath:  "image.png",
		Width:      1200,
		Height:     600,
		Title:      "Image Processing",
		VSync:      true,
		FlipImage:  true,
		ClearColor: [4]float32{0.2, 0.3, 0.3, 1.0},
	}
}

// Validate reports the first field that cannot be used to start the viewer.
func (o *Options) Validate() error {
	if o.ImagePath == "" {
		return fmt.Errorf("image path is empty")
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", o.Width, o.Height)
	}
	return nil
}
