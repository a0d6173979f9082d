// Package geom provides the 2-D primitives shared by the layout engine,
// the connection factory and the render model.
package geom

import "math"

// Point is a coordinate in diagram space. Y grows downward, matching the
// screen coordinates used by the rendering layer.
type Point struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Scale returns p multiplied by k.
func (p Point) Scale(k float64) Point { return Point{X: p.X * k, Y: p.Y * k} }

// Len returns the euclidean norm of p.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return p.Sub(q).Len() }

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Centroid returns the arithmetic mean of pts, or the origin for an empty slice.
func Centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var c Point
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(pts)))
}
