// Package bitseq holds the two bit-level containers the split coder is
// built on: Symbol, a code of at most 64 bits, and Stream, a growable
// byte-backed bit sequence. Bits are always ordered most significant
// first.
package bitseq

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// MaxSymbolBits is the widest code a Symbol can hold.
const MaxSymbolBits = 64

// ErrSymbolFull is returned by Add on a Symbol that already holds
// MaxSymbolBits bits.
var ErrSymbolFull = errors.New("bitseq: symbol already holds 64 bits")

// Symbol is a bit string of 0 to 64 bits stored high-bit-first in a
// single word. Bits past Len are always zero, so two Symbols are equal
// under == exactly when their lengths and defined bits match.
type Symbol struct {
	data   uint64
	length uint8
}

// Add appends bit after the current last bit.
func (s *Symbol) Add(bit bool) error {
	if s.length >= MaxSymbolBits {
		return ErrSymbolFull
	}
	if bit {
		s.data |= uint64(1) << (63 - s.length)
	}
	s.length++
	return nil
}

func (s Symbol) Len() int {
	return int(s.length)
}

// Bit reports the bit at index i, or false when i is outside [0, Len).
func (s Symbol) Bit(i int) bool {
	if i < 0 || i >= int(s.length) {
		return false
	}
	return s.data&(uint64(1)<<(63-i)) != 0
}

// LSB returns the most recently appended bit.
func (s Symbol) LSB() bool {
	if s.length == 0 {
		return false
	}
	return s.data&(uint64(1)<<(64-uint(s.length))) != 0
}

// EqualN compares the leading n bits of s and other without looking at
// either stored length. A shorter operand reads as zero-extended.
func (s Symbol) EqualN(other Symbol, n int) bool {
	mask := leadingMask(n)
	return s.data&mask == other.data&mask
}

// Equal reports whether both lengths and all bits match.
func (s Symbol) Equal(other Symbol) bool {
	return s == other
}

// HasPrefix reports whether prefix is a (possibly equal) leading part of s.
func (s Symbol) HasPrefix(prefix Symbol) bool {
	return prefix.length <= s.length && s.EqualN(prefix, int(prefix.length))
}

// Less orders by raw bit pattern, then by length. The order only exists
// to make code table iteration deterministic.
func (s Symbol) Less(other Symbol) bool {
	if s.data != other.data {
		return s.data < other.data
	}
	return s.length < other.length
}

// Bits yields the defined bits in order.
func (s Symbol) Bits() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for i := 0; i < int(s.length); i++ {
			if !yield(s.Bit(i)) {
				return
			}
		}
	}
}

// Value returns the defined bits right-aligned.
func (s Symbol) Value() uint64 {
	if s.length == 0 {
		return 0
	}
	return s.data >> (64 - uint(s.length))
}

// FromValue builds a Symbol from the low n bits of v.
func FromValue(v uint64, n int) (Symbol, error) {
	if n < 0 || n > MaxSymbolBits {
		return Symbol{}, fmt.Errorf("bitseq: symbol length %d out of range", n)
	}
	if n == 0 {
		return Symbol{}, nil
	}
	return Symbol{data: v << (64 - uint(n)), length: uint8(n)}, nil
}

func (s Symbol) String() string {
	var b strings.Builder
	b.Grow(int(s.length))
	for bit := range s.Bits() {
		if bit {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// ParseSymbol reads a string of '0' and '1' characters.
func ParseSymbol(text string) (Symbol, error) {
	var s Symbol
	for i, c := range text {
		if c != '0' && c != '1' {
			return Symbol{}, fmt.Errorf("bitseq: invalid bit %q at offset %d", c, i)
		}
		if err := s.Add(c == '1'); err != nil {
			return Symbol{}, err
		}
	}
	return s, nil
}

func leadingMask(n int) uint64 {
	switch {
	case n <= 0:
		return 0
	case n >= 64:
		return ^uint64(0)
	default:
		return ^uint64(0) << (64 - uint(n))
	}
}
