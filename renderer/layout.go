package renderer

import "github.com/richinsley/goimagefilter/graphics"

// Partition splits a width×height surface into the three full-height
// viewports: the left half for the unfiltered image, then two quarters for the
// grayscale and hue-shifted results. The regions are contiguous and together
// cover the whole width.
func Partition(width, height int) [3]graphics.Rect {
	half := width / 2
	quarter := width / 4
	return [3]graphics.Rect{
		{X: 0, Y: 0, Width: half, Height: height},
		{X: half, Y: 0, Width: quarter, Height: height},
		{X: half + quarter, Y: 0, Width: width - half - quarter, Height: height},
	}
}
