// Package render converts cell states into RGBA pixels for the viewer.
package render

import "image/color"

// Palette maps cell states to colours. States past the end use the last
// colour.
type Palette []color.RGBA

// Binary is black for 0 and white for everything else.
var Binary = Palette{
	{A: 0xff},
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
}

// Brain colours dead, firing and refractory cells.
var Brain = Palette{
	{A: 0xff},
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	{R: 0x30, G: 0x60, B: 0xd0, A: 0xff},
}

// Sand runs from black through the toppling threshold to red for piles that
// are about to collapse.
var Sand = Palette{
	{A: 0xff},
	{R: 0x20, G: 0x40, B: 0x90, A: 0xff},
	{R: 0x30, G: 0x90, B: 0xc0, A: 0xff},
	{R: 0xf0, G: 0xd0, B: 0x40, A: 0xff},
	{R: 0xe0, G: 0x30, B: 0x20, A: 0xff},
}

// Gray spreads k states evenly between black and white.
func Gray(k int) Palette {
	if k < 2 {
		return Palette{{A: 0xff}}
	}
	p := make(Palette, k)
	for i := range p {
		v := uint8(i * 0xff / (k - 1))
		p[i] = color.RGBA{R: v, G: v, B: v, A: 0xff}
	}
	return p
}

// For picks a palette by simulation name.
func For(sim string) Palette {
	switch sim {
	case "briansbrain":
		return Brain
	case "sandpile":
		return Sand
	default:
		return Binary
	}
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette Palette) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := min(int(c), last)
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
