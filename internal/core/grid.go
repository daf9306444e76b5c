package core

// Spacetime is the render buffer of a 1-D automaton: the newest generation
// sits in row 0 and older ones scroll downwards, H rows deep.
type Spacetime struct {
	W, H int
	data []uint8
}

// NewSpacetime allocates a w×h buffer.
func NewSpacetime(w, h int) *Spacetime {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Spacetime{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice in row-major order.
func (s *Spacetime) Cells() []uint8 { return s.data }

// Row returns row y of the buffer. Row 0 is the newest generation.
func (s *Spacetime) Row(y int) []uint8 { return s.data[y*s.W : (y+1)*s.W] }

// Push scrolls the buffer down by one row and writes row at the top. Rows
// longer than W are truncated.
func (s *Spacetime) Push(row []uint8) {
	copy(s.data[s.W:], s.data[:s.W*(s.H-1)])
	n := copy(s.data[:s.W], row)
	clear(s.data[n:s.W])
}

// Clear fills the buffer with zeros.
func (s *Spacetime) Clear() { clear(s.data) }
