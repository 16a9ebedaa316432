// Package geometry computes the hexagram drawn around a press point.
package geometry

import "math"

// StarOffset is the rotation between the two triangles of a hexagram.
const StarOffset = math.Pi / 3

// vertexOffsets are the angular positions of an equilateral triangle's
// corners relative to its first vertex.
var vertexOffsets = [3]float64{0, 2 * math.Pi / 3, -2 * math.Pi / 3}

// Point is a position in window space.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Len is the Euclidean norm of p.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Dist is the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return p.Sub(q).Len() }

// Rotate turns p by theta radians around about.
func (p Point) Rotate(about Point, theta float64) Point {
	d := p.Sub(about)
	s, c := math.Sincos(theta)
	return Point{
		X: about.X + d.X*c - d.Y*s,
		Y: about.Y + d.X*s + d.Y*c,
	}
}

// TriangleVertices returns the corners of the equilateral triangle centered on
// center whose circumradius is the distance to cursor. The first corner sits at
// the cursor's polar angle plus phase, so with phase 0 it is the cursor itself.
func TriangleVertices(cursor, center Point, phase float64) [3]Point {
	d := cursor.Sub(center)
	r := d.Len()
	alpha := math.Atan2(d.Y, d.X)

	var out [3]Point
	for k, off := range vertexOffsets {
		s, c := math.Sincos(alpha + phase + off)
		out[k] = Point{X: center.X + r*c, Y: center.Y + r*s}
	}
	return out
}

// Radius is the distance from center to cursor.
func Radius(cursor, center Point) float64 {
	return cursor.Dist(center)
}

// Hexagram is the full figure for one cursor position.
type Hexagram struct {
	Center Point
	Radius float64
	A, B   [3]Point
}

// NewHexagram builds both triangles and the bounding radius. Triangle A follows
// the cursor; triangle B is A turned by StarOffset.
func NewHexagram(center, cursor Point) Hexagram {
	return Hexagram{
		Center: center,
		Radius: Radius(cursor, center),
		A:      TriangleVertices(cursor, center, 0),
		B:      TriangleVertices(cursor, center, StarOffset),
	}
}
