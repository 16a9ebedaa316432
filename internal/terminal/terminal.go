// Package terminal draws the magic circle in a text terminal with mouse
// support, using tcell.
package terminal

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/magic-circle/internal/config"
	"github.com/iburimskiy/magic-circle/internal/geometry"
	"github.com/iburimskiy/magic-circle/internal/session"
	"github.com/iburimskiy/magic-circle/internal/shapes"
)

// Cells are roughly twice as tall as they are wide, so one row spans two
// units of point space to keep circles round.
const rowScale = 2

const wheelMask = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

const (
	polygonRune = '*'
	circleRune  = '.'
	markerRune  = '●'
)

type Terminal struct {
	screen  tcell.Screen
	list    *shapes.DisplayList
	pointer *session.Pointer
	log     *slog.Logger

	background, stroke, marker tcell.Style
}

// Open creates and initializes the real terminal screen.
func Open() (tcell.Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("new screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return s, nil
}

// New prepares screen for drawing; the caller keeps ownership and calls Fini.
func New(screen tcell.Screen, style config.StyleConfig, list *shapes.DisplayList, sess *session.Session, logger *slog.Logger) *Terminal {
	if logger == nil {
		logger = slog.Default()
	}
	p := style.Palette()
	bg := tcell.StyleDefault.Background(tcellColor(p.Background))
	screen.EnableMouse()
	screen.SetStyle(bg)
	return &Terminal{
		screen:     screen,
		list:       list,
		pointer:    session.NewPointer(sess),
		log:        logger,
		background: bg,
		stroke:     bg.Foreground(tcellColor(p.Stroke)),
		marker:     bg.Foreground(tcellColor(p.Marker)),
	}
}

// Run processes events until the user quits or ctx is done.
func (t *Terminal) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	t.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if t.HandleEvent(ev) {
				return nil
			}
		}
	}
}

// HandleEvent applies one tcell event and redraws. It reports whether the
// user asked to quit.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			return true
		}
	case *tcell.EventMouse:
		// Wheel ticks carry no button state; treating them as button-up
		// would end the drag.
		if ev.Buttons()&wheelMask != 0 {
			break
		}
		x, y := ev.Position()
		t.pointer.Update(ev.Buttons()&tcell.Button1 != 0, CellToPoint(x, y))
	case *tcell.EventResize:
		w, h := ev.Size()
		t.log.Debug("resize", "cols", w, "rows", h)
		t.screen.Sync()
	}
	t.Draw()
	return false
}

// Draw renders the current display list.
func (t *Terminal) Draw() {
	t.screen.Clear()
	f := t.list.Snapshot()
	w, h := t.screen.Size()
	plot := func(style tcell.Style, r rune) func(x, y int) {
		return func(x, y int) {
			if x >= 0 && y >= 0 && x < w && y < h {
				t.screen.SetContent(x, y, r, nil, style)
			}
		}
	}

	for _, c := range f.Circles {
		rasterCircle(c.Center, c.Radius, plot(t.stroke, circleRune))
	}
	for _, poly := range f.Polygons {
		for _, e := range shapes.Edges(poly) {
			rasterSegment(e[0], e[1], plot(t.stroke, polygonRune))
		}
	}
	if f.HasMarker {
		x, y := PointToCell(f.Marker)
		plot(t.marker, markerRune)(x, y)
	}
	t.screen.Show()
}

// CellToPoint maps a cell to point space.
func CellToPoint(x, y int) geometry.Point {
	return geometry.Pt(float64(x), float64(y*rowScale))
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
