// Package session drives one press-drag-release cycle of the magic circle.
package session

import (
	"log/slog"

	"github.com/iburimskiy/magic-circle/internal/geometry"
)

// Surface is what a front end must provide to show the figure.
type Surface interface {
	// DrawDot moves the single center marker to p.
	DrawDot(p geometry.Point)
	DrawPolygonOutline(pts []geometry.Point)
	DrawCircleOutline(center geometry.Point, r float64)
	// ClearTransientShapes removes every polygon and circle, keeping the marker.
	ClearTransientShapes()
}

type State int

const (
	Idle State = iota
	Tracking
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Tracking:
		return "tracking"
	default:
		return "unknown"
	}
}

// Hooks are optional callbacks fired on cycle boundaries.
type Hooks struct {
	OnPress   func(center geometry.Point)
	OnRelease func(h geometry.Hexagram)
}

// Session owns the center point and renders onto a Surface. It is not safe
// for concurrent use; front ends call it from their event loop only.
type Session struct {
	surface Surface
	hooks   Hooks
	log     *slog.Logger

	state  State
	center geometry.Point
	last   geometry.Hexagram
}

func New(surface Surface, hooks Hooks, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{surface: surface, hooks: hooks, log: logger}
}

func (s *Session) State() State { return s.state }

// Center reports the current center and whether a cycle is in progress.
func (s *Session) Center() (geometry.Point, bool) {
	return s.center, s.state == Tracking
}

// Current is the most recently drawn hexagram of the active cycle.
func (s *Session) Current() (geometry.Hexagram, bool) {
	return s.last, s.state == Tracking
}

// Press starts a new cycle at p, abandoning any cycle still in progress.
func (s *Session) Press(p geometry.Point) {
	if s.state == Tracking {
		s.log.Debug("press while tracking, restarting", "x", p.X, "y", p.Y)
	}
	s.surface.ClearTransientShapes()
	s.state = Tracking
	s.center = p
	s.surface.DrawDot(p)
	s.render(p)
	s.log.Debug("press", "x", p.X, "y", p.Y)
	if s.hooks.OnPress != nil {
		s.hooks.OnPress(p)
	}
}

// Drag redraws the figure for cursor p. Ignored outside a cycle.
func (s *Session) Drag(p geometry.Point) {
	if s.state != Tracking {
		return
	}
	s.surface.ClearTransientShapes()
	s.render(p)
}

// Release ends the cycle and removes everything except the center marker.
// Ignored outside a cycle.
func (s *Session) Release(p geometry.Point) {
	if s.state != Tracking {
		return
	}
	s.surface.ClearTransientShapes()
	s.state = Idle
	h := s.last
	s.last = geometry.Hexagram{}
	s.log.Debug("release", "x", p.X, "y", p.Y, "radius", h.Radius)
	if s.hooks.OnRelease != nil {
		s.hooks.OnRelease(h)
	}
}

func (s *Session) render(cursor geometry.Point) {
	h := geometry.NewHexagram(s.center, cursor)
	s.surface.DrawPolygonOutline(h.A[:])
	s.surface.DrawPolygonOutline(h.B[:])
	s.surface.DrawCircleOutline(h.Center, h.Radius)
	s.last = h
}
