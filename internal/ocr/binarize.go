package ocr

import (
	"image"
	"image/color"
)

// binarizeThreshold is the fixed luminance cutoff tuned for typical UI
// text (dark-on-light or light-on-dark screenshots). Not user-exposed.
const binarizeThreshold = 140

var binaryPalette = color.Palette{color.Black, color.White}

// Binarize converts an image to single-channel luminance and thresholds
// each pixel to pure black or white. The transform is deterministic and
// idempotent; grayscale nuance is deliberately lost to maximize OCR
// accuracy on rendered text.
func Binarize(src image.Image) *image.Paletted {
	bounds := src.Bounds()
	dst := image.NewPaletted(bounds, binaryPalette)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if luminance(src.At(x, y)) < binarizeThreshold {
				dst.SetColorIndex(x, y, 0) // black
			} else {
				dst.SetColorIndex(x, y, 1) // white
			}
		}
	}
	return dst
}

// luminance returns the Rec. 601 luma of a color on a 0-255 scale
func luminance(c color.Color) uint8 {
	r, g, b, _ := c.RGBA()
	y := (299*r + 587*g + 114*b) / 1000
	return uint8(y >> 8)
}
