package terminal

import (
	"github.com/chewxy/math32"

	"github.com/iburimskiy/magic-circle/internal/geometry"
)

// PointToCell maps a point to the nearest cell.
func PointToCell(p geometry.Point) (int, int) {
	return int(math32.Round(float32(p.X))), int(math32.Round(float32(p.Y) / rowScale))
}

// rasterSegment visits the cells covered by the segment a-b.
func rasterSegment(a, b geometry.Point, plot func(x, y int)) {
	ax, ay := float32(a.X), float32(a.Y)/rowScale
	dx, dy := float32(b.X)-ax, float32(b.Y)/rowScale-ay
	steps := int(math32.Ceil(math32.Max(math32.Abs(dx), math32.Abs(dy))))
	if steps == 0 {
		plot(int(math32.Round(ax)), int(math32.Round(ay)))
		return
	}
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		plot(int(math32.Round(ax+dx*t)), int(math32.Round(ay+dy*t)))
	}
}

// rasterCircle visits cells along the circle outline.
func rasterCircle(c geometry.Point, r float64, plot func(x, y int)) {
	cx, cy, rr := float32(c.X), float32(c.Y), float32(r)
	n := int(math32.Ceil(2 * math32.Pi * rr))
	if n < 8 {
		n = 8
	}
	for i := 0; i < n; i++ {
		s, co := math32.Sincos(2 * math32.Pi * float32(i) / float32(n))
		plot(int(math32.Round(cx+rr*co)), int(math32.Round((cy+rr*s)/rowScale)))
	}
}
