// Package splitcode implements a static prefix-code compressor for byte
// streams.
//
// Codes are chosen by a deterministic splitting heuristic rather than a
// Huffman tree. Symbols are ordered by descending frequency, and every
// round appends one bit to each symbol not yet told apart from its
// neighbours. The bit is 0 up to the point where the running frequency
// of the symbol's bucket reaches half of the bucket's weight, and 1
// after it. The result is prefix-free and puts shorter codes on more
// frequent symbols. It is not optimal.
//
// The pipeline is
//
//	CountFrequencies -> Assign -> Encode -> Serialize
//	Deserialize -> Decode
//
// with Compress and Decompress as shortcuts. An archive starts with the
// bytes AD BD 01, followed by the table size, the bit-packed code table
// and the encoded data.
//
// An archive does not record how many symbols it holds. Two things
// follow from that. A single-symbol input has an empty code and encodes
// to no bits at all, so its length is only recoverable with
// WithOutputLength. And the final byte's 1-padding can read as extra
// copies of the symbol whose code is all ones.
package splitcode
