package geom

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// MBR is an oriented minimum bounding rectangle: a rotation derived from
// principal-axis (covariance eigen-decomposition) analysis, plus an
// axis-aligned box expressed in that rotated frame.
type MBR struct {
	rotation *mat.Dense // D x D, columns are eigenvectors, descending eigenvalue
	mean     Point
	box      AABB
	dim      int
}

// FromPoints builds the oriented MBR of points. The principal eigenvector
// of the points' covariance matrix becomes the first axis of the rotated
// frame, matching the reference construction used by the space-filling
// curve linearizers (curve.Hilbert, curve.ZOrder) and the RIB bisector.
func FromPoints(points []Point) MBR {
	if len(points) == 0 {
		return MBR{}
	}
	d := points[0].Dim()
	mean := Center(points)

	cov := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			var s float64
			for _, p := range points {
				s += (p[i] - mean[i]) * (p[j] - mean[j])
			}
			if len(points) > 0 {
				s /= float64(len(points))
			}
			cov.SetSym(i, j, s)
		}
	}

	rotation := mat.NewDense(d, d, nil)
	var eig mat.EigenSym
	if eig.Factorize(cov, true) {
		values := eig.Values(nil)
		var vectors mat.Dense
		vectors.EigenvectorsSym(&eig)

		order := make([]int, d)
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool {
			return values[order[a]] > values[order[b]]
		})
		for col, src := range order {
			for row := 0; row < d; row++ {
				rotation.Set(row, col, vectors.At(row, src))
			}
		}
	} else {
		for i := 0; i < d; i++ {
			rotation.Set(i, i, 1)
		}
	}

	m := MBR{rotation: rotation, mean: mean, dim: d}
	local := make([]Point, len(points))
	for i, p := range points {
		local[i] = m.ToLocal(p)
	}
	m.box = BoundingBox(local)
	return m
}

// ToLocal projects p into the MBR's rotated, mean-centered frame.
func (m MBR) ToLocal(p Point) Point {
	centered := p.Sub(m.mean)
	local := make(Point, m.dim)
	for col := 0; col < m.dim; col++ {
		var s float64
		for row := 0; row < m.dim; row++ {
			s += m.rotation.At(row, col) * centered[row]
		}
		local[col] = s
	}
	return local
}

// AABB returns the axis-aligned box in the MBR's rotated frame.
func (m MBR) AABB() AABB { return m.box }

// Rotation returns the D x D rotation matrix (columns are the principal
// axes, descending eigenvalue / inertia).
func (m MBR) Rotation() *mat.Dense { return m.rotation }

// Mean returns the center the rotation is taken about.
func (m MBR) Mean() Point { return m.mean }

// Quadrant classifies p into one of 2^D sub-regions of the MBR: bit i of
// the returned code is set iff p's local coordinate on axis i is on the
// "high" side of the box's center. In 2D this yields the spec's
// BottomLeft=0b00, BottomRight=0b01, TopLeft=0b10, TopRight=0b11
// encoding; in 3D the analogous octant code.
func (m MBR) Quadrant(p Point) int {
	local := m.ToLocal(p)
	center := m.box.Center()
	code := 0
	for i := range local {
		if local[i] >= center[i] {
			code |= 1 << uint(i)
		}
	}
	return code
}

// SubMBR returns the MBR of the sub-region designated by code (as
// returned by Quadrant), keeping the same rotation and mean.
func (m MBR) SubMBR(code int) MBR {
	min := make(Point, m.dim)
	max := make(Point, m.dim)
	center := m.box.Center()
	for i := 0; i < m.dim; i++ {
		if code&(1<<uint(i)) != 0 {
			min[i], max[i] = center[i], m.box.Max[i]
		} else {
			min[i], max[i] = m.box.Min[i], center[i]
		}
	}
	return MBR{rotation: m.rotation, mean: m.mean, dim: m.dim, box: AABB{Min: min, Max: max}}
}

// DistanceToPoint returns 0 if p (given in the original, un-rotated
// frame) lies inside the MBR, else the minimum Euclidean distance to its
// nearest face.
func (m MBR) DistanceToPoint(p Point) float64 {
	return m.box.DistanceToPoint(m.ToLocal(p))
}

// AspectRatio is the ratio of the box's longest to shortest axis extent.
// Returns 1 for a degenerate (zero-extent) box.
func (m MBR) AspectRatio() float64 {
	if m.dim == 0 {
		return 1
	}
	var longest, shortest float64
	shortest = math.Inf(1)
	for i := 0; i < m.dim; i++ {
		extent := m.box.Max[i] - m.box.Min[i]
		if extent > longest {
			longest = extent
		}
		if extent < shortest {
			shortest = extent
		}
	}
	if shortest <= 0 {
		if longest <= 0 {
			return 1
		}
		return math.Inf(1)
	}
	return longest / shortest
}
