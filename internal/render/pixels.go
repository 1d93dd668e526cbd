package render

import "image/color"

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Values past
// the end of the palette use its last color.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// fillMaskRGBA tints buf by intensity values in [0, 1]. Zero intensity leaves
// the pixel transparent. Output is premultiplied, as ebiten images expect.
func fillMaskRGBA(buf []byte, mask []float32, tint color.RGBA, maxAlpha float64) {
	for i, v := range mask {
		base := i * 4
		intensity := float64(v)
		if intensity <= 0 {
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
			continue
		}
		if intensity > 1 {
			intensity = 1
		}
		alpha := uint8(maxAlpha*intensity + 0.5)
		buf[base+0] = premultiply(tint.R, alpha)
		buf[base+1] = premultiply(tint.G, alpha)
		buf[base+2] = premultiply(tint.B, alpha)
		buf[base+3] = alpha
	}
}

func premultiply(c, alpha uint8) uint8 {
	return uint8(float64(c)*float64(alpha)/255 + 0.5)
}
