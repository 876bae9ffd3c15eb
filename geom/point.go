// Package geom provides the fixed-dimension geometry kernel shared by
// every partitioner: points, vector arithmetic, norms, an oriented
// minimum bounding rectangle, an axis-aligned bounding box, and
// quadrant/octant classification.
//
// Point arithmetic follows the value-receiver style of
// gonum.org/v1/gonum/spatial/r2 and spatial/r3: operations return a new
// Point rather than mutating the receiver.
package geom

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Point is a D-component floating-point vector, D in {2, 3, N}. It is a
// pure value; hashing is not required or supported.
type Point []float64

// Pt2 builds a 2D point.
func Pt2(x, y float64) Point { return Point{x, y} }

// Pt3 builds a 3D point.
func Pt3(x, y, z float64) Point { return Point{x, y, z} }

// Dim returns the number of components of p.
func (p Point) Dim() int { return len(p) }

// Clone returns an independent copy of p.
func (p Point) Clone() Point {
	q := make(Point, len(p))
	copy(q, p)
	return q
}

// Add returns p+q component-wise. Panics if q has fewer components than p.
func (p Point) Add(q Point) Point {
	r := make(Point, len(p))
	for i := range p {
		r[i] = p[i] + q[i]
	}
	return r
}

// Sub returns p-q component-wise. Panics if q has fewer components than p.
func (p Point) Sub(q Point) Point {
	r := make(Point, len(p))
	for i := range p {
		r[i] = p[i] - q[i]
	}
	return r
}

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point {
	r := make(Point, len(p))
	for i := range p {
		r[i] = p[i] * f
	}
	return r
}

// Dot returns the dot product p.q.
func (p Point) Dot(q Point) float64 {
	var s float64
	for i := range p {
		s += p[i] * q[i]
	}
	return s
}

// Norm returns the Euclidean (L2) norm of p.
func (p Point) Norm() float64 {
	return math.Sqrt(p.Dot(p))
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Norm()
}

// Center returns the arithmetic mean of points. Returns nil for an
// empty slice.
func Center(points []Point) Point {
	if len(points) == 0 {
		return nil
	}
	d := points[0].Dim()
	c := make(Point, d)
	column := make([]float64, len(points))
	for j := 0; j < d; j++ {
		for i, p := range points {
			column[i] = p[j]
		}
		c[j] = stat.Mean(column, nil)
	}
	return c
}

// WeightedCenter returns the weight-weighted mean of points. NaN weights
// are treated as 0 per the geometry kernel's numerical policy: a caller
// computing centroids must not let a single malformed weight corrupt an
// otherwise-valid cluster.
func WeightedCenter(points []Point, weights []float64) Point {
	if len(points) == 0 {
		return nil
	}
	cleaned := make([]float64, len(weights))
	var total float64
	for i, w := range weights {
		if math.IsNaN(w) || w < 0 {
			w = 0
		}
		cleaned[i] = w
		total += w
	}
	if total == 0 {
		return Center(points)
	}
	d := points[0].Dim()
	c := make(Point, d)
	column := make([]float64, len(points))
	for j := 0; j < d; j++ {
		for i, p := range points {
			column[i] = p[j]
		}
		c[j] = stat.Mean(column, cleaned)
	}
	return c
}

// LessFloat implements the module-wide stable float comparison policy:
// NaN never compares Less and every number compares Less than NaN, so
// that sort keys built from (possibly NaN) weights never panic and still
// produce a total, stable order with NaN last.
func LessFloat(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a < b
}
