package splitcode

import "slices"

// Frequencies counts occurrences of every byte value in one input.
type Frequencies [256]int

// SymbolCount pairs a byte value with its number of occurrences.
type SymbolCount struct {
	Symbol byte
	Count  int
}

func CountFrequencies(data []byte) Frequencies {
	var freq Frequencies
	for _, b := range data {
		freq[b]++
	}
	return freq
}

// AlphabetSize is the number of distinct byte values present.
func (f *Frequencies) AlphabetSize() int {
	n := 0
	for _, c := range f {
		if c > 0 {
			n++
		}
	}
	return n
}

// Sorted lists the present symbols by descending count. Equal counts
// keep ascending byte order; that order decides bucket membership during
// code assignment, so it must never change.
func (f *Frequencies) Sorted() []SymbolCount {
	sorted := make([]SymbolCount, 0, 256)
	for b, c := range f {
		if c > 0 {
			sorted = append(sorted, SymbolCount{Symbol: byte(b), Count: c})
		}
	}
	slices.SortStableFunc(sorted, func(a, b SymbolCount) int {
		return b.Count - a.Count
	})
	return sorted
}
