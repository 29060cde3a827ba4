package splitcode

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/FitrahHaque/splitpack/compressor/bitseq"
)

// Entry maps one byte value to its code.
type Entry struct {
	Symbol byte
	Code   bitseq.Symbol
}

// CodeTable is the immutable symbol to code mapping of one input. Its
// entries are kept in bitseq.Symbol order, which is also the order they
// are written to an archive and tried by the linear decoder.
type CodeTable struct {
	entries []Entry
	index   [256]int16
}

// NewCodeTable copies entries into a table. When a byte value appears
// more than once the first entry in code order wins lookups.
func NewCodeTable(entries []Entry) *CodeTable {
	t := &CodeTable{entries: slices.Clone(entries)}
	slices.SortStableFunc(t.entries, func(a, b Entry) int {
		switch {
		case a.Code.Less(b.Code):
			return -1
		case b.Code.Less(a.Code):
			return 1
		default:
			return 0
		}
	})
	for i := range t.index {
		t.index[i] = -1
	}
	for i, e := range t.entries {
		if t.index[e.Symbol] < 0 {
			t.index[e.Symbol] = int16(i)
		}
	}
	return t
}

func (t *CodeTable) Len() int {
	return len(t.entries)
}

func (t *CodeTable) Lookup(b byte) (bitseq.Symbol, bool) {
	i := t.index[b]
	if i < 0 {
		return bitseq.Symbol{}, false
	}
	return t.entries[i].Code, true
}

// Entries returns a copy of the entries in code order.
func (t *CodeTable) Entries() []Entry {
	return slices.Clone(t.entries)
}

func (t *CodeTable) All() iter.Seq2[byte, bitseq.Symbol] {
	return func(yield func(byte, bitseq.Symbol) bool) {
		for _, e := range t.entries {
			if !yield(e.Symbol, e.Code) {
				return
			}
		}
	}
}

// IsPrefixFree reports whether no code is a prefix of another one.
// Entries are sorted by raw pattern, so a code and any extension of it
// are adjacent unless another extension sits between them; comparing
// each code with every later one sharing its leading bits is enough.
func (t *CodeTable) IsPrefixFree() bool {
	for i, a := range t.entries {
		for _, b := range t.entries[i+1:] {
			if b.Code.HasPrefix(a.Code) || a.Code.HasPrefix(b.Code) {
				return false
			}
			if !b.Code.EqualN(a.Code, a.Code.Len()) {
				break
			}
		}
	}
	return true
}

func (t *CodeTable) String() string {
	var b strings.Builder
	for i, e := range t.entries {
		fmt.Fprintf(&b, "%3d | 0x%02x %q -> %s\n", i, e.Symbol, rune(e.Symbol), e.Code)
	}
	return b.String()
}
