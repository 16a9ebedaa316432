package session

import "github.com/iburimskiy/magic-circle/internal/geometry"

// Pointer turns polled button state into Press, Drag and Release calls.
type Pointer struct {
	s    *Session
	down bool
	pos  geometry.Point
}

func NewPointer(s *Session) *Pointer { return &Pointer{s: s} }

// Update feeds the latest button state and cursor position. A drag is only
// reported when the cursor moved while the button stayed down.
func (p *Pointer) Update(down bool, pos geometry.Point) {
	switch {
	case down && !p.down:
		p.s.Press(pos)
	case down && pos != p.pos:
		p.s.Drag(pos)
	case !down && p.down:
		p.s.Release(pos)
	}
	p.down = down
	p.pos = pos
}
