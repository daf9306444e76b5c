package render

import (
	"bufio"
	"io"
)

// Glyphs used by WriteText, indexed by state. States past the end use the
// last glyph.
const Glyphs = ".#o*@"

// WriteText writes cells as rows of width glyphs.
func WriteText(w io.Writer, cells []uint8, width int) error {
	if width <= 0 {
		return nil
	}
	bw := bufio.NewWriter(w)
	last := len(Glyphs) - 1
	for i, c := range cells {
		bw.WriteByte(Glyphs[min(int(c), last)])
		if (i+1)%width == 0 {
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}
