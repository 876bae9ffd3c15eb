/*
Package partition provides composable, multithreaded algorithms for
partitioning a finite set of weighted points, and optionally a companion
adjacency graph over those points, into a requested number of balanced
parts.

It targets mesh-partitioning workloads: each point represents a mesh
element or node, weights represent computational cost, and the resulting
partition drives parallel solver placement.

# Overview

The package provides:
  - Recursive geometric bisection: axis-aligned (RCB, package bisect) and
    inertial (RIB, package bisect).
  - The multi-jagged multi-way spatial splitter (package mjagged).
  - Two space-filling-curve linearizers, Z-order and Hilbert (package
    curve).
  - A balanced k-means refiner with influence-adjusted Voronoi assignment
    (package kmeans).
  - Two local-search graph refiners, Kernighan-Lin and
    Fiduccia-Mattheyses (package refine).
  - A composition layer that fuses an initial partitioner with an
    improver into a single callable (this package, Compose).

# Basic usage

	points := []geom.Point{
		geom.Pt2(1, 1), geom.Pt2(-1, 1), geom.Pt2(1, -1), geom.Pt2(-1, -1),
	}
	weights := []float64{1, 1, 1, 1}

	rcb := bisect.RCB{NumIter: 2}
	p, err := rcb.Partition(points, weights)
	if err != nil {
		log.Fatal(err)
	}
	// p.Ids now holds 4 distinct PIDs, one per point.

# Data model

A Partition owns a read-only point slice, a read-only weight slice, and a
mutable slice of PIDs, one per point: len(Ids) == len(Points) ==
len(Weights). PIDs are opaque, process-wide unique tokens minted by
NewPID; they carry no ordering meaning beyond identity and are
materialized to contiguous 0..k integer labels only at the external
boundary, via Partition.Labels.

# Composition

Every geometric or curve-based partitioner implements InitialPartition;
every refiner in package refine and the k-means improver in package
kmeans implement ImprovePartition. Compose fuses two stages into one
value: Compose(initial, improver) yields a new InitialPartition that runs
the improver on the initial partitioner's output, and
ComposeImprove(improverA, improverB) yields a new ImprovePartition that
runs both in sequence.

# Error handling

Algorithms return a *Partition or an *Error. Error wraps one of five
kinds: InvalidInput, UnsupportedCombination, NotConverged,
ExternalFailure, or Internal. NotConverged is a soft failure: it is
returned as the error value alongside a valid, usable Partition, and
IsWarning reports it as non-fatal. kmeans.BalancedKMeans.Run moves it
into the Warning field of kmeans.Result instead.

# Concurrency

Divide-and-conquer passes (RCB/RIB recursion, multi-jagged sibling
slabs, Z-order quadrant recursion, k-means's per-point assignment sweep)
are dispatched through internal/parallel, a bounded fan-out over a fixed
worker pool built on golang.org/x/sync/errgroup. The only process-lifetime shared
state is the atomic PID counter; every other pass operates on disjoint
index ranges or read-only inputs.

# Non-goals

Distributed (multi-host) partitioning, dynamic re-partitioning, and
partition persistence are out of scope. Mesh file readers, the plotting
utility, CLI front-ends, and external solver bridges are collaborators
of this package, not part of it.
*/
package partition
