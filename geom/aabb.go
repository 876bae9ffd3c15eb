package geom

import "math"

// AABB is an axis-aligned bounding box in some (possibly rotated) frame.
type AABB struct {
	Min, Max Point
}

// BoundingBox returns the axis-aligned bounding box of points in their
// current frame. Returns the zero AABB for an empty slice.
func BoundingBox(points []Point) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	d := points[0].Dim()
	min := make(Point, d)
	max := make(Point, d)
	copy(min, points[0])
	copy(max, points[0])
	for _, p := range points[1:] {
		for i := 0; i < d; i++ {
			if p[i] < min[i] {
				min[i] = p[i]
			}
			if p[i] > max[i] {
				max[i] = p[i]
			}
		}
	}
	return AABB{Min: min, Max: max}
}

// Contains reports whether p lies within the box, inclusive of its
// faces.
func (b AABB) Contains(p Point) bool {
	for i := range p {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Center returns the midpoint of the box.
func (b AABB) Center() Point {
	return b.Min.Add(b.Max).Scale(0.5)
}

// DistanceToPoint returns 0 if p is inside b, else the minimum Euclidean
// distance from p to the nearest face of b.
func (b AABB) DistanceToPoint(p Point) float64 {
	var sumSq float64
	for i := range p {
		var d float64
		switch {
		case p[i] < b.Min[i]:
			d = b.Min[i] - p[i]
		case p[i] > b.Max[i]:
			d = p[i] - b.Max[i]
		}
		sumSq += d * d
	}
	return math.Sqrt(sumSq)
}
