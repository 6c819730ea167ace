package site

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

const triggerSize = 11

// triggerPNG draws the section trigger: a triangle pointing down when open
// and right when closed.
func triggerPNG(open bool) ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, triggerSize, triggerSize))
	ink := color.NRGBA{R: 0x57, G: 0x60, B: 0x6a, A: 0xff}
	for y := 0; y < triggerSize; y++ {
		for x := 0; x < triggerSize; x++ {
			if inTriangle(x, y, open) {
				img.SetNRGBA(x, y, ink)
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func inTriangle(x, y int, down bool) bool {
	const lo, hi = 2, triggerSize - 3
	if down {
		// Apex at the bottom centre.
		row := y - lo
		return y >= lo && y <= hi-2 && x >= lo+row && x <= hi-row
	}
	col := x - lo
	return x >= lo && x <= hi-2 && y >= lo+col && y <= hi-col
}
