package splitcode

import "fmt"

// The archive stores two counts in fields one step too narrow for their
// maximum, and spends the value 0 on that maximum:
//
//	table size  8 bits   1..255 literal, 0 means 256
//	code length 6 bits   1..63 literal, 0 means 64
//
// Two cases fall outside that rule. An empty input has an empty table,
// written as 0 with nothing after the header; a 256-entry table can never
// be that short, so the reader tells them apart by the body length. A
// single-symbol input has one code of length 0, also written as 0; a
// lone table entry never needs 64 bits, so the reader maps 0 back to 0
// when the table has exactly one entry.

const (
	tableSizeBits  = 8
	codeLengthBits = 6
	maxTableSize   = 256
)

func encodeTableSize(n int) (byte, error) {
	if n < 0 || n > maxTableSize {
		return 0, fmt.Errorf("splitcode: table of %d entries does not fit the archive", n)
	}
	return byte(n), nil // 256 wraps to 0
}

func decodeTableSize(field byte, bodyLen int) int {
	if field == 0 && bodyLen == 0 {
		return 0
	}
	if field == 0 {
		return maxTableSize
	}
	return int(field)
}

func encodeCodeLength(n, tableSize int) (uint64, error) {
	switch {
	case n == 0 && tableSize == 1:
		return 0, nil
	case n >= 1 && n < 64:
		return uint64(n), nil
	case n == 64:
		return 0, nil
	default:
		return 0, fmt.Errorf("splitcode: code length %d cannot be stored in a %d-entry table", n, tableSize)
	}
}

func decodeCodeLength(field uint64, tableSize int) int {
	if field == 0 && tableSize == 1 {
		return 0
	}
	if field == 0 {
		return 64
	}
	return int(field)
}
