package render

import "image/color"

// fillSolidRGBA paints every pixel of buf with c.
func fillSolidRGBA(buf []byte, c color.RGBA) {
	for base := 0; base+3 < len(buf); base += 4 {
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = c.A
	}
}

// fillScalarRGBA converts scalar cell values into tinted RGBA pixels whose
// alpha follows value/peak. Values at or below zero come out transparent.
func fillScalarRGBA(buf []byte, values []float64, peak float64, tint color.RGBA) {
	for i, v := range values {
		base := i * 4
		a := 0.0
		if peak > 0 && v > 0 {
			a = v / peak
			if a > 1 {
				a = 1
			}
		}
		alpha := uint8(float64(tint.A)*a + 0.5)
		// image.RGBA stores premultiplied colour.
		buf[base+0] = uint8(uint16(tint.R) * uint16(alpha) / 255)
		buf[base+1] = uint8(uint16(tint.G) * uint16(alpha) / 255)
		buf[base+2] = uint8(uint16(tint.B) * uint16(alpha) / 255)
		buf[base+3] = alpha
	}
}
