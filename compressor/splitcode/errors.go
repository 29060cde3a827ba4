package splitcode

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat matches every *FormatError.
	ErrFormat = errors.New("splitcode: invalid archive format")
	// ErrSymbolNotFound matches every *SymbolNotFoundError.
	ErrSymbolNotFound = errors.New("splitcode: symbol not found")
	// ErrCapacity matches every *CapacityError.
	ErrCapacity = errors.New("splitcode: code depth exceeds 64 bits")
)

// FormatError reports an archive that cannot be parsed: short header,
// wrong magic, unsupported version or a truncated code table.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "splitcode: invalid archive format: " + e.Reason
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// SymbolNotFoundError reports a byte without a code while encoding, or a
// bit position where no code matches while decoding. Either means the
// table and the data do not belong together.
type SymbolNotFoundError struct {
	Op       string // "encode" or "decode"
	Symbol   byte   // encode only
	Position int    // byte offset for encode, bit offset for decode
}

func (e *SymbolNotFoundError) Error() string {
	if e.Op == "encode" {
		return fmt.Sprintf("splitcode: encode: no code for byte 0x%02x at offset %d", e.Symbol, e.Position)
	}
	return fmt.Sprintf("splitcode: decode: no code matches at bit %d", e.Position)
}

func (e *SymbolNotFoundError) Is(target error) bool {
	return target == ErrSymbolNotFound
}

// CapacityError reports a frequency distribution whose codes could not
// be separated within 64 bits.
type CapacityError struct {
	Depth      int
	Unresolved int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("splitcode: %d symbols still share a code after %d bits", e.Unresolved, e.Depth)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacity
}
