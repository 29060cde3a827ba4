package splitcode

import (
	"github.com/FitrahHaque/splitpack/compressor/bitseq"
)

// decoder finds the code starting at a bit position. Prefix-free tables
// get a binary trie; anything else falls back to trying every entry in
// table order and taking the first match, which is what an ill-formed
// table has always meant.
type decoder struct {
	table *CodeTable
	nodes []trieNode
}

type trieNode struct {
	child [2]int32 // 0 means absent; the root is never a child
	entry int32    // index into table entries, -1 for inner nodes
}

func newDecoder(table *CodeTable) *decoder {
	d := &decoder{table: table}
	if !table.IsPrefixFree() {
		return d
	}
	d.nodes = []trieNode{{entry: -1}}
	for i, e := range table.entries {
		if e.Code.Len() == 0 {
			continue
		}
		cur := int32(0)
		for bit := range e.Code.Bits() {
			b := 0
			if bit {
				b = 1
			}
			next := d.nodes[cur].child[b]
			if next == 0 {
				d.nodes = append(d.nodes, trieNode{entry: -1})
				next = int32(len(d.nodes) - 1)
				d.nodes[cur].child[b] = next
			}
			cur = next
		}
		d.nodes[cur].entry = int32(i)
	}
	return d
}

// matchResult says how a lookup at a bit position ended.
type matchResult int

const (
	matched matchResult = iota
	// mismatch: the bits at the position start no code.
	mismatch
	// truncated: the stream ends partway through at least one code.
	truncated
)

// match returns the decoded byte and the number of bits consumed.
// Empty codes never match since they would not advance the position.
func (d *decoder) match(stream *bitseq.Stream, pos int) (byte, int, matchResult) {
	if d.nodes == nil {
		return d.matchLinear(stream, pos)
	}
	end := stream.Len()
	cur := int32(0)
	for i := pos; i < end; i++ {
		b := 0
		if stream.SubBit(i) {
			b = 1
		}
		cur = d.nodes[cur].child[b]
		if cur == 0 {
			return 0, 0, mismatch
		}
		if e := d.nodes[cur].entry; e >= 0 {
			return d.table.entries[e].Symbol, i - pos + 1, matched
		}
	}
	return 0, 0, truncated
}

func (d *decoder) matchLinear(stream *bitseq.Stream, pos int) (byte, int, matchResult) {
	remaining := stream.Len() - pos
	result := mismatch
	for _, e := range d.table.entries {
		n := e.Code.Len()
		if n == 0 {
			continue
		}
		if n > remaining {
			if e.Code.EqualN(stream.SubBits(pos, remaining), remaining) {
				result = truncated
			}
			continue
		}
		if stream.SubBits(pos, n) == e.Code {
			return e.Symbol, n, matched
		}
	}
	return 0, 0, result
}

// trailingPad reports whether the bits from pos to the end of the stream
// can only be the 1-padding of its final byte.
func trailingPad(stream *bitseq.Stream, pos int) bool {
	remaining := stream.Len() - pos
	if remaining <= 0 || remaining >= 8 {
		return false
	}
	for i := pos; i < stream.Len(); i++ {
		if !stream.SubBit(i) {
			return false
		}
	}
	return true
}
