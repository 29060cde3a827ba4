package splitcode

import (
	"github.com/FitrahHaque/splitpack/compressor/bitseq"
)

// bucket is the half-open index range [lo, hi) of a run of symbols in
// frequency order whose codes end in the same bit.
type bucket struct {
	lo, hi int
}

// Assign derives a prefix-free code table from symbol frequencies.
//
// Symbols are walked in Frequencies.Sorted order and grow one bit per
// depth. At every depth the list is partitioned into buckets; inside a
// bucket the first symbol takes 0 and the rest take 0 until the running
// frequency sum reaches half the bucket weight, then 1. A symbol whose
// code already differs from both neighbours keeps it. Assignment ends
// on the first depth that appends nothing.
func Assign(freq Frequencies) (*CodeTable, error) {
	sorted := freq.Sorted()
	codes := make([]bitseq.Symbol, len(sorted))
	weights := make([]int, len(sorted))
	for i, sc := range sorted {
		weights[i] = sc.Count
	}

	converged := false
	for depth := 1; depth <= bitseq.MaxSymbolBits; depth++ {
		bits := splitBits(codes, weights, bucketsOf(codes))
		grown := 0
		for i := range codes {
			if distinct(codes, i) {
				continue
			}
			grown++
		}
		if grown == 0 {
			converged = true
			break
		}
		// Neighbour checks above read the previous depth, so appending
		// happens in a second sweep.
		next := make([]bitseq.Symbol, len(codes))
		copy(next, codes)
		for i := range codes {
			if distinct(codes, i) {
				continue
			}
			if err := next[i].Add(bits[i]); err != nil {
				return nil, &CapacityError{Depth: depth, Unresolved: grown}
			}
		}
		codes = next
	}
	if !converged {
		if n := undistinguished(codes); n > 0 {
			return nil, &CapacityError{Depth: bitseq.MaxSymbolBits, Unresolved: n}
		}
	}

	entries := make([]Entry, len(sorted))
	for i, sc := range sorted {
		entries[i] = Entry{Symbol: sc.Symbol, Code: codes[i]}
	}
	return NewCodeTable(entries), nil
}

// bucketsOf splits the symbol list into maximal runs of equal last bit.
// The first symbol always opens a bucket. Undistinguished symbols hold
// equal codes, so a run never cuts through such a group, but it may
// join it with already separated neighbours ending in the same bit.
func bucketsOf(codes []bitseq.Symbol) []bucket {
	var buckets []bucket
	for i := range codes {
		if i == 0 || codes[i].LSB() != codes[i-1].LSB() {
			buckets = append(buckets, bucket{lo: i, hi: i + 1})
			continue
		}
		buckets[len(buckets)-1].hi = i + 1
	}
	return buckets
}

// splitBits computes the candidate next bit of every symbol.
func splitBits(codes []bitseq.Symbol, weights []int, buckets []bucket) []bool {
	bits := make([]bool, len(codes))
	for _, b := range buckets {
		total := 0
		for _, w := range weights[b.lo:b.hi] {
			total += w
		}
		half := total / 2
		if weights[b.lo] >= half {
			half = weights[b.lo]
		}

		running := weights[b.lo]
		one := false
		for i := b.lo + 1; i < b.hi; i++ {
			running += weights[i]
			if running >= half {
				one = true
			}
			bits[i] = one
		}
	}
	return bits
}

// distinct reports whether the code at i differs from both neighbours
// over its own length.
func distinct(codes []bitseq.Symbol, i int) bool {
	n := codes[i].Len()
	if i > 0 && codes[i].EqualN(codes[i-1], n) {
		return false
	}
	if i < len(codes)-1 && codes[i].EqualN(codes[i+1], n) {
		return false
	}
	return true
}

func undistinguished(codes []bitseq.Symbol) int {
	n := 0
	for i := range codes {
		if !distinct(codes, i) {
			n++
		}
	}
	return n
}
