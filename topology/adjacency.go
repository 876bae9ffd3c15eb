// Package topology provides the sparse adjacency matrix over mesh
// elements: construction from a mesh connectivity matrix, cut-size
// computation, and neighbor enumeration.
//
// Adjacency generalizes the teacher's int32 CSR Graph
// (Xadj/Adjncy/Adjwgt) to float64 edge weights over element indices;
// CutSize compares the opaque PIDs a Partition carries instead of
// METIS's bare integer labels.
package topology

import (
	"sort"

	"github.com/meshpart/partition"
)

// ElementType names the mesh element kind a connectivity matrix holds,
// so that Build never has to guess which submatrix of a mixed-element
// mesh to read (the ambiguity the reference implementation's "WTH is
// this?" comment flags around triangle connectivity).
type ElementType int

const (
	Vertex ElementType = iota
	Edge
	Triangle
	Quadrangle
	Tetrahedron
	Hexahedron
)

// NodesPerElement is the fixed node count Build requires every row of a
// connectivity matrix to have for the given ElementType.
func NodesPerElement(t ElementType) int {
	switch t {
	case Vertex:
		return 1
	case Edge:
		return 2
	case Triangle:
		return 3
	case Quadrangle:
		return 4
	case Tetrahedron:
		return 4
	case Hexahedron:
		return 8
	default:
		return 0
	}
}

// Adjacency is a symmetric CSR sparse matrix over non-negative edge
// weights: Xadj is the row index array (length n+1), Adjncy the
// concatenated neighbor lists, Weight the parallel edge-weight array.
type Adjacency struct {
	Xadj   []int
	Adjncy []int
	Weight []float64
}

// NumVertices returns the number of elements in the adjacency.
func (a *Adjacency) NumVertices() int {
	if len(a.Xadj) == 0 {
		return 0
	}
	return len(a.Xadj) - 1
}

// Neighbors returns the neighbor indices of element v.
func (a *Adjacency) Neighbors(v int) []int {
	return a.Adjncy[a.Xadj[v]:a.Xadj[v+1]]
}

// NeighborWeights returns the edge weights parallel to Neighbors(v).
func (a *Adjacency) NeighborWeights(v int) []float64 {
	return a.Weight[a.Xadj[v]:a.Xadj[v+1]]
}

// Build constructs the symmetric element-element adjacency from a mesh
// connectivity matrix conn (one row of node indices per element, all
// rows of length NodesPerElement(elemType)) by forming M.M^T over the
// node-incidence matrix and pruning the diagonal: two elements are
// adjacent iff they share >= nodeThreshold nodes. nodeThreshold
// defaults to 2 for 2D element types and 3 for 3D ones when <= 0 is
// passed.
func Build(conn [][]int, elemType ElementType, nodeThreshold int) (*Adjacency, error) {
	expected := NodesPerElement(elemType)
	if expected == 0 {
		return nil, partition.NewError("topology.Build", partition.InvalidInput, nil)
	}
	for _, row := range conn {
		if len(row) != expected {
			return nil, partition.NewError("topology.Build", partition.UnsupportedCombination, nil)
		}
	}
	if nodeThreshold <= 0 {
		nodeThreshold = defaultThreshold(elemType)
	}

	// node -> elements incident to it
	nodeElems := make(map[int][]int)
	for e, row := range conn {
		for _, n := range row {
			nodeElems[n] = append(nodeElems[n], e)
		}
	}

	shared := make([]map[int]int, len(conn))
	for i := range shared {
		shared[i] = make(map[int]int)
	}
	for _, elems := range nodeElems {
		for _, e1 := range elems {
			for _, e2 := range elems {
				if e1 != e2 {
					shared[e1][e2]++
				}
			}
		}
	}

	xadj := make([]int, len(conn)+1)
	var adjncy []int
	var weight []float64
	for e := range conn {
		neighbors := make([]int, 0, len(shared[e]))
		for n, count := range shared[e] {
			if count >= nodeThreshold {
				neighbors = append(neighbors, n)
			}
		}
		sort.Ints(neighbors)
		for _, n := range neighbors {
			adjncy = append(adjncy, n)
			weight = append(weight, 1)
		}
		xadj[e+1] = len(adjncy)
	}

	return &Adjacency{Xadj: xadj, Adjncy: adjncy, Weight: weight}, nil
}

func defaultThreshold(t ElementType) int {
	switch t {
	case Tetrahedron, Hexahedron:
		return 3
	default:
		return 2
	}
}

// CutSize returns the sum, over every edge (u,v) with u<v, of w(u,v) for
// edges whose endpoints fall in different parts of ids.
func CutSize(a *Adjacency, ids []partition.PID) float64 {
	var cut float64
	for u := 0; u < a.NumVertices(); u++ {
		for i, v := range a.Neighbors(u) {
			if v <= u {
				continue // count each undirected edge once
			}
			if ids[u] != ids[v] {
				cut += a.NeighborWeights(u)[i]
			}
		}
	}
	return cut
}
