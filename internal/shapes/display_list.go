// Package shapes keeps the flat list of shapes currently on screen.
package shapes

import (
	"sync"

	"github.com/iburimskiy/magic-circle/internal/geometry"
)

// Circle is a stroked circle outline.
type Circle struct {
	Center geometry.Point
	Radius float64
}

// Frame is an immutable copy of the display list.
type Frame struct {
	Marker    geometry.Point
	HasMarker bool
	Polygons  [][]geometry.Point
	Circles   []Circle
}

// DisplayList holds one center marker plus transient outlines. It satisfies
// session.Surface. The terminal front end reads it from a different goroutine
// than the one feeding events, so access is guarded.
type DisplayList struct {
	mu        sync.Mutex
	marker    geometry.Point
	hasMarker bool
	polygons  [][]geometry.Point
	circles   []Circle
	version   uint64
}

func NewDisplayList() *DisplayList { return &DisplayList{} }

// DrawDot moves the center marker to p.
func (d *DisplayList) DrawDot(p geometry.Point) {
	d.mu.Lock()
	d.marker, d.hasMarker = p, true
	d.version++
	d.mu.Unlock()
}

func (d *DisplayList) DrawPolygonOutline(pts []geometry.Point) {
	cp := append([]geometry.Point(nil), pts...)
	d.mu.Lock()
	d.polygons = append(d.polygons, cp)
	d.version++
	d.mu.Unlock()
}

func (d *DisplayList) DrawCircleOutline(center geometry.Point, r float64) {
	d.mu.Lock()
	d.circles = append(d.circles, Circle{Center: center, Radius: r})
	d.version++
	d.mu.Unlock()
}

// ClearTransientShapes drops every polygon and circle, keeping the marker.
func (d *DisplayList) ClearTransientShapes() {
	d.mu.Lock()
	d.polygons = d.polygons[:0]
	d.circles = d.circles[:0]
	d.version++
	d.mu.Unlock()
}

// Snapshot copies the current contents.
func (d *DisplayList) Snapshot() Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	f := Frame{
		Marker:    d.marker,
		HasMarker: d.hasMarker,
		Polygons:  make([][]geometry.Point, len(d.polygons)),
		Circles:   append([]Circle(nil), d.circles...),
	}
	for i, p := range d.polygons {
		f.Polygons[i] = append([]geometry.Point(nil), p...)
	}
	return f
}

// Version increases on every mutation; renderers use it to skip redundant
// redraws.
func (d *DisplayList) Version() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.version
}

// Edges returns the closed outline of poly as consecutive segments.
func Edges(poly []geometry.Point) [][2]geometry.Point {
	if len(poly) < 2 {
		return nil
	}
	out := make([][2]geometry.Point, len(poly))
	for i, p := range poly {
		out[i] = [2]geometry.Point{p, poly[(i+1)%len(poly)]}
	}
	return out
}
