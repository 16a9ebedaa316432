package session

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/iburimskiy/magic-circle/internal/geometry"
)

// recorder logs every Surface call and tracks what is visible.
type recorder struct {
	calls    []string
	marker   *geometry.Point
	polygons [][]geometry.Point
	circles  []float64
}

func (r *recorder) DrawDot(p geometry.Point) {
	r.calls = append(r.calls, fmt.Sprintf("dot(%g,%g)", p.X, p.Y))
	r.marker = &p
}

func (r *recorder) DrawPolygonOutline(pts []geometry.Point) {
	r.calls = append(r.calls, "poly")
	r.polygons = append(r.polygons, pts)
}

func (r *recorder) DrawCircleOutline(_ geometry.Point, radius float64) {
	r.calls = append(r.calls, fmt.Sprintf("circle(%g)", radius))
	r.circles = append(r.circles, radius)
}

func (r *recorder) ClearTransientShapes() {
	r.calls = append(r.calls, "clear")
	r.polygons, r.circles = nil, nil
}

func TestPressSeedsZeroRadius(t *testing.T) {
	rec := &recorder{}
	s := New(rec, Hooks{}, nil)
	s.Press(geometry.Pt(100, 100))

	if s.State() != Tracking {
		t.Fatalf("state = %v", s.State())
	}
	if got := strings.Join(rec.calls, " "); got != "clear dot(100,100) poly poly circle(0)" {
		t.Fatalf("calls = %q", got)
	}
	for _, v := range rec.polygons[0] {
		if v != geometry.Pt(100, 100) {
			t.Fatalf("seed vertex %v not at center", v)
		}
	}
}

func TestFullCycle(t *testing.T) {
	rec := &recorder{}
	var released geometry.Hexagram
	presses := 0
	s := New(rec, Hooks{
		OnPress:   func(geometry.Point) { presses++ },
		OnRelease: func(h geometry.Hexagram) { released = h },
	}, nil)

	s.Press(geometry.Pt(100, 100))
	s.Drag(geometry.Pt(150, 100))
	if len(rec.polygons) != 2 || len(rec.circles) != 1 || rec.circles[0] != 50 {
		t.Fatalf("after first drag: %d polygons, circles %v", len(rec.polygons), rec.circles)
	}
	s.Drag(geometry.Pt(200, 100))
	if len(rec.polygons) != 2 || len(rec.circles) != 1 || rec.circles[0] != 100 {
		t.Fatalf("shapes accumulated: %d polygons, circles %v", len(rec.polygons), rec.circles)
	}
	if got := rec.polygons[0][0]; math.Abs(got.X-200) > 1e-9 || math.Abs(got.Y-100) > 1e-9 {
		t.Fatalf("triangle corner %v does not follow cursor", got)
	}
	if h, ok := s.Current(); !ok || h.Radius != 100 {
		t.Fatalf("Current = %+v, %v", h, ok)
	}

	s.Release(geometry.Pt(200, 100))
	if s.State() != Idle {
		t.Fatalf("state = %v after release", s.State())
	}
	if len(rec.polygons) != 0 || len(rec.circles) != 0 {
		t.Fatalf("transients left after release: %v %v", rec.polygons, rec.circles)
	}
	if rec.marker == nil || *rec.marker != geometry.Pt(100, 100) {
		t.Fatalf("center marker = %v", rec.marker)
	}
	if presses != 1 || released.Radius != 100 {
		t.Fatalf("hooks: presses=%d released=%+v", presses, released)
	}
}

func TestEventsBeforePressAreIgnored(t *testing.T) {
	rec := &recorder{}
	s := New(rec, Hooks{OnRelease: func(geometry.Hexagram) { t.Fatal("release hook fired while idle") }}, nil)
	s.Drag(geometry.Pt(10, 10))
	s.Release(geometry.Pt(10, 10))
	if len(rec.calls) != 0 {
		t.Fatalf("surface touched while idle: %v", rec.calls)
	}
	if _, ok := s.Center(); ok {
		t.Fatalf("center reported while idle")
	}
}

func TestNewPressRestartsCycle(t *testing.T) {
	rec := &recorder{}
	s := New(rec, Hooks{}, nil)
	s.Press(geometry.Pt(10, 10))
	s.Drag(geometry.Pt(40, 10))
	s.Press(geometry.Pt(300, 200))

	c, ok := s.Center()
	if !ok || c != geometry.Pt(300, 200) {
		t.Fatalf("center = %v, %v", c, ok)
	}
	if len(rec.circles) != 1 || rec.circles[0] != 0 {
		t.Fatalf("old figure not replaced: circles %v", rec.circles)
	}
	if *rec.marker != geometry.Pt(300, 200) {
		t.Fatalf("marker = %v", *rec.marker)
	}
}

func TestPointerEdges(t *testing.T) {
	rec := &recorder{}
	s := New(rec, Hooks{}, nil)
	p := NewPointer(s)

	p.Update(false, geometry.Pt(5, 5)) // hover
	p.Update(true, geometry.Pt(100, 100))
	p.Update(true, geometry.Pt(100, 100)) // held still
	p.Update(true, geometry.Pt(150, 100))
	p.Update(false, geometry.Pt(150, 100))
	p.Update(false, geometry.Pt(160, 100))

	want := "clear dot(100,100) poly poly circle(0) clear poly poly circle(50) clear"
	if got := strings.Join(rec.calls, " "); got != want {
		t.Fatalf("calls = %q\nwant    %q", got, want)
	}
}

func TestStateString(t *testing.T) {
	if Idle.String() != "idle" || Tracking.String() != "tracking" || State(9).String() != "unknown" {
		t.Fatalf("unexpected State strings")
	}
}
