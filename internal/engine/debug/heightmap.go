package debug

import (
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/Faultbox/midgard-ocean/pkg/ocean"
)

// HeightImage maps a height field to 8-bit gray, lowest height black and
// highest white. A flat field renders mid-gray.
func HeightImage(h *ocean.HeightField) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, h.N, h.N))
	lo, hi := h.Range()
	span := hi - lo

	for y := 0; y < h.N; y++ {
		for x := 0; x < h.N; x++ {
			v := uint8(128)
			if span > 0 {
				v = uint8((h.At(x, y)-lo)/span*255 + 0.5)
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

// WriteHeightPNG writes HeightImage(h) to path, creating parent directories.
func WriteHeightPNG(path string, h *ocean.HeightField) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return writePNG(path, HeightImage(h))
}
