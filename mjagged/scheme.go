// Package mjagged implements the multi-jagged spatial partitioner: a
// generalization of recursive bisection that splits each slab into more
// than two weight-balanced children per level, following "Multi-Jagged:
// A Scalable Parallel Spatial Partitioning Algorithm" (Deveci et al.).
package mjagged

import "sort"

// Scheme computes the partition scheme for numParts: the ascending prime
// factorization of numParts, folded down to at most maxIter entries
// (largest-first bucket-fill) when the factorization is longer than
// that. Entry i of the returned scheme is the number of slabs each
// sub-slab is split into at recursion level i.
func Scheme(numParts, maxIter int) []int {
	factors := primeFactors(numParts)
	if maxIter > 0 && len(factors) > maxIter {
		factors = foldFactors(factors, maxIter)
	}
	return factors
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for i := 2; i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// primeFactors returns the ascending prime factorization of n. n <= 1
// yields []int{1} (a single, unsplit slab).
func primeFactors(n int) []int {
	if n <= 1 {
		return []int{1}
	}
	var factors []int
	for p := 2; n > 1; p++ {
		if !isPrime(p) {
			continue
		}
		for n%p == 0 {
			factors = append(factors, p)
			n /= p
		}
	}
	return factors
}

// foldFactors greedily bin-packs factors (largest first) into maxIter
// buckets, each bucket's value being the product of the factors assigned
// to it, always adding the next factor to the currently smallest bucket.
// This is the classic longest-processing-time-first scheduling heuristic,
// which keeps the resulting per-level split counts as balanced as a
// greedy packing can make them.
func foldFactors(factors []int, maxIter int) []int {
	sorted := append([]int(nil), factors...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	buckets := make([]int, maxIter)
	for i := range buckets {
		buckets[i] = 1
	}
	for _, f := range sorted {
		min := 0
		for i := 1; i < maxIter; i++ {
			if buckets[i] < buckets[min] {
				min = i
			}
		}
		buckets[min] *= f
	}
	sort.Ints(buckets)
	return buckets
}
