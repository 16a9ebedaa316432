// Package game is the desktop window front end, built on ebiten.
package game

import (
	"errors"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/magic-circle/internal/config"
	"github.com/iburimskiy/magic-circle/internal/geometry"
	"github.com/iburimskiy/magic-circle/internal/session"
	"github.com/iburimskiy/magic-circle/internal/shapes"
)

const hint = "Click and drag to cast a magic circle - Esc/Q: quit"

type Game struct {
	width, height int
	palette       config.Palette
	strokeWidth   float32
	markerRadius  float32
	antialias     bool

	list    *shapes.DisplayList
	pointer *session.Pointer
	log     *slog.Logger

	// hint stays up until the first press
	touched bool
}

// New wires a session onto list and returns the ebiten game that feeds it.
func New(cfg config.AppConfig, list *shapes.DisplayList, sess *session.Session, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	return &Game{
		width:        cfg.Window.Width,
		height:       cfg.Window.Height,
		palette:      cfg.Style.Palette(),
		strokeWidth:  float32(cfg.Style.StrokeWidth),
		markerRadius: float32(cfg.Style.MarkerRadius),
		antialias:    cfg.Style.AntialiasEnabled(),
		list:         list,
		pointer:      session.NewPointer(sess),
		log:          logger,
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if down {
		g.touched = true
	}
	g.pointer.Update(down, geometry.Pt(float64(x), float64(y)))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.palette.Background)
	g.paint(imagePainter{dst: screen, antialias: g.antialias}, g.list.Snapshot())

	if !g.touched {
		ebitenutil.DebugPrintAt(screen, hint, 12, 12)
	}
}

// painter is the subset of vector drawing the figure needs.
type painter interface {
	fillCircle(c geometry.Point, r float32, clr color.Color)
	strokeCircle(c geometry.Point, r, width float32, clr color.Color)
	strokeLine(a, b geometry.Point, width float32, clr color.Color)
}

// paint draws f bottom to top: the center marker sits under the outlines.
func (g *Game) paint(p painter, f shapes.Frame) {
	if f.HasMarker {
		p.fillCircle(f.Marker, g.markerRadius, g.palette.Marker)
	}
	for _, poly := range f.Polygons {
		g.strokePolygon(p, poly, g.palette.Stroke)
	}
	for _, c := range f.Circles {
		p.strokeCircle(c.Center, float32(c.Radius), g.strokeWidth, g.palette.Stroke)
	}
}

// strokePolygon draws a closed outline. Corners get a round cap so the thick
// segments meet without notches.
func (g *Game) strokePolygon(p painter, poly []geometry.Point, clr color.Color) {
	for _, e := range shapes.Edges(poly) {
		p.strokeLine(e[0], e[1], g.strokeWidth, clr)
	}
	for _, v := range poly {
		p.fillCircle(v, g.strokeWidth/2, clr)
	}
}

type imagePainter struct {
	dst       *ebiten.Image
	antialias bool
}

func (p imagePainter) fillCircle(c geometry.Point, r float32, clr color.Color) {
	vector.DrawFilledCircle(p.dst, float32(c.X), float32(c.Y), r, clr, p.antialias)
}

func (p imagePainter) strokeCircle(c geometry.Point, r, width float32, clr color.Color) {
	vector.StrokeCircle(p.dst, float32(c.X), float32(c.Y), r, width, clr, p.antialias)
}

func (p imagePainter) strokeLine(a, b geometry.Point, width float32, clr color.Color) {
	vector.StrokeLine(p.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, clr, p.antialias)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run opens the window and blocks until it is closed. Quitting with Esc/Q is
// not an error.
func Run(cfg config.AppConfig, g *Game) error {
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	g.log.Info("window open", "width", cfg.Window.Width, "height", cfg.Window.Height)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	g.log.Info("window closed")
	return nil
}
