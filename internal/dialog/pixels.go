package dialog

import (
	"image"

	"golang.org/x/image/draw"
)

// iconPixels scales m to size×size and returns its pixels as top-down rows
// of 32-bit BGRA with straight alpha, the layout of a 32bpp DIB section.
func iconPixels(m image.Image, size int) []byte {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	if b := m.Bounds(); b.Dx() == size && b.Dy() == size {
		draw.Draw(dst, dst.Bounds(), m, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), m, b, draw.Src, nil)
	}

	pix := dst.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
	return pix
}
