// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package pix

// MergeChannels packs three single-purpose canvases into one RGBA
// canvas, taking the red channel of each input for the output R, G and
// B channels respectively. Alpha is opaque. The output size comes from
// the first canvas, inputs that fall short are read as zero.
func MergeChannels(r, s, m *Canvas) *Canvas {
	width, height := r.Size()
	out := NewCanvas(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			off := out.rgba.PixOffset(x, y)
			out.rgba.Pix[off+0] = redAt(r, x, y)
			out.rgba.Pix[off+1] = redAt(s, x, y)
			out.rgba.Pix[off+2] = redAt(m, x, y)
			out.rgba.Pix[off+3] = 0xff
		}
	}
	return out
}

func redAt(c *Canvas, x, y int) uint8 {
	bounds := c.rgba.Bounds()
	if x >= bounds.Dx() || y >= bounds.Dy() {
		return 0
	}
	return c.rgba.Pix[c.rgba.PixOffset(x, y)]
}
