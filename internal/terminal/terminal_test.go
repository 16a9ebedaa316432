package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/magic-circle/internal/config"
	"github.com/iburimskiy/magic-circle/internal/geometry"
	"github.com/iburimskiy/magic-circle/internal/session"
	"github.com/iburimskiy/magic-circle/internal/shapes"
)

func newSim(t *testing.T) (tcell.SimulationScreen, *Terminal) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(80, 40)
	list := shapes.NewDisplayList()
	sess := session.New(list, session.Hooks{}, nil)
	return s, New(s, config.Defaults().Style, list, sess, nil)
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func mouse(x, y int, b tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, b, tcell.ModNone)
}

func TestMouseCycleDrawsAndClears(t *testing.T) {
	s, term := newSim(t)

	term.HandleEvent(mouse(40, 20, tcell.Button1))
	term.HandleEvent(mouse(60, 20, tcell.Button1))

	if got := runeAt(s, 40, 20); got != markerRune {
		t.Fatalf("center cell = %q, want marker", got)
	}
	if got := runeAt(s, 60, 20); got != polygonRune {
		t.Fatalf("cursor cell = %q, want triangle corner", got)
	}
	if got := runeAt(s, 20, 20); got != polygonRune {
		t.Fatalf("opposite cell = %q, want second triangle corner", got)
	}
	if got := runeAt(s, 40, 10); got != circleRune {
		t.Fatalf("top of circle = %q, want circle outline", got)
	}

	term.HandleEvent(mouse(60, 20, tcell.ButtonNone))
	if got := runeAt(s, 60, 20); got != ' ' {
		t.Fatalf("cursor cell after release = %q, want blank", got)
	}
	if got := runeAt(s, 40, 20); got != markerRune {
		t.Fatalf("marker gone after release: %q", got)
	}
}

func TestQuitKeys(t *testing.T) {
	_, term := newSim(t)
	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
	} {
		if !term.HandleEvent(ev) {
			t.Fatalf("%v did not quit", ev.Name())
		}
	}
	if term.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Fatalf("'x' should not quit")
	}
}

func TestRunStopsOnContext(t *testing.T) {
	_, term := newSim(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- term.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestCellMapping(t *testing.T) {
	p := CellToPoint(7, 3)
	if p != geometry.Pt(7, 6) {
		t.Fatalf("CellToPoint = %v", p)
	}
	if x, y := PointToCell(p); x != 7 || y != 3 {
		t.Fatalf("PointToCell = %d,%d", x, y)
	}
}

func TestRasterSegmentCoversEndpoints(t *testing.T) {
	seen := map[[2]int]bool{}
	rasterSegment(geometry.Pt(2, 2), geometry.Pt(12, 8), func(x, y int) { seen[[2]int{x, y}] = true })
	if !seen[[2]int{2, 1}] || !seen[[2]int{12, 4}] {
		t.Fatalf("endpoints missing: %v", seen)
	}
	if len(seen) < 10 {
		t.Fatalf("segment has gaps: %d cells", len(seen))
	}
}

func TestRasterCircleZeroRadius(t *testing.T) {
	seen := map[[2]int]bool{}
	rasterCircle(geometry.Pt(10, 10), 0, func(x, y int) { seen[[2]int{x, y}] = true })
	if len(seen) != 1 || !seen[[2]int{10, 5}] {
		t.Fatalf("zero circle cells = %v", seen)
	}
}

func TestWheelDuringDragKeepsCenter(t *testing.T) {
	s, term := newSim(t)

	term.HandleEvent(mouse(40, 20, tcell.Button1))
	term.HandleEvent(mouse(50, 20, tcell.Button1))
	term.HandleEvent(mouse(50, 20, tcell.WheelUp))
	term.HandleEvent(mouse(60, 20, tcell.Button1))

	if got := runeAt(s, 40, 20); got != markerRune {
		t.Fatalf("center cell = %q, want marker to stay at (40,20)", got)
	}
	if got := runeAt(s, 60, 20); got != polygonRune {
		t.Fatalf("cursor cell = %q, want the drag to continue", got)
	}
	if got := runeAt(s, 40, 10); got != circleRune {
		t.Fatalf("top of circle = %q, want radius-20 outline", got)
	}
}
