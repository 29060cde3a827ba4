package splitcode

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"

	"github.com/FitrahHaque/splitpack/compressor/bitseq"
)

const (
	magic1        = 0xAD
	magic2        = 0xBD
	formatVersion = 0x01
	headerLen     = 4
)

// Archive layout (version 1):
//
//	AD BD 01 N
//	N times: symbol (8 bits) | code length (6 bits) | code (length bits)
//	1 bits up to the next byte boundary
//	encoded data, 1-padded at its own end
//
// See wire.go for how N and the code length encode their maximum.

// Header describes an archive without decoding its data.
type Header struct {
	Version    byte
	Entries    int
	TableBytes int
	DataBytes  int
}

// Serialize writes the header, the bit-packed code table and the data
// bytes of stream. The stream is finalized on a copy; the caller's
// stream is not modified.
func Serialize(stream *bitseq.Stream, table *CodeTable) ([]byte, error) {
	size, err := encodeTableSize(table.Len())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write([]byte{magic1, magic2, formatVersion, size})

	w := bitio.NewWriter(&buf)
	written := 0
	for _, e := range table.entries {
		length, err := encodeCodeLength(e.Code.Len(), table.Len())
		if err != nil {
			return nil, err
		}
		if err := w.WriteBits(uint64(e.Symbol), tableSizeBits); err != nil {
			return nil, err
		}
		if err := w.WriteBits(length, codeLengthBits); err != nil {
			return nil, err
		}
		written += tableSizeBits + codeLengthBits
		if n := e.Code.Len(); n > 0 {
			if err := w.WriteBits(e.Code.Value(), uint8(n)); err != nil {
				return nil, err
			}
			written += n
		}
	}
	if pad := (8 - written%8) % 8; pad > 0 {
		if err := w.WriteBits(uint64(1)<<pad-1, uint8(pad)); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	data := stream.Clone()
	data.Finalize()
	buf.Write(data.Bytes())
	return buf.Bytes(), nil
}

// Deserialize parses an archive into its data stream and code table.
func Deserialize(archive []byte) (*bitseq.Stream, *CodeTable, error) {
	table, tableBytes, err := parseTable(archive)
	if err != nil {
		return nil, nil, err
	}
	return bitseq.StreamFromBytes(archive[headerLen+tableBytes:]), table, nil
}

// Inspect reads the header and code table and reports section sizes.
func Inspect(archive []byte) (Header, error) {
	table, tableBytes, err := parseTable(archive)
	if err != nil {
		return Header{}, err
	}
	return Header{
		Version:    archive[2],
		Entries:    table.Len(),
		TableBytes: tableBytes,
		DataBytes:  len(archive) - headerLen - tableBytes,
	}, nil
}

func parseTable(archive []byte) (*CodeTable, int, error) {
	if len(archive) < headerLen {
		return nil, 0, &FormatError{Reason: fmt.Sprintf("archive is %d bytes, header needs %d", len(archive), headerLen)}
	}
	if archive[0] != magic1 || archive[1] != magic2 {
		return nil, 0, &FormatError{Reason: fmt.Sprintf("bad magic %02x %02x", archive[0], archive[1])}
	}
	if archive[2] != formatVersion {
		return nil, 0, &FormatError{Reason: fmt.Sprintf("unsupported version %d", archive[2])}
	}

	body := archive[headerLen:]
	size := decodeTableSize(archive[3], len(body))
	r := bitio.NewReader(bytes.NewReader(body))
	read := 0
	entries := make([]Entry, 0, size)
	for i := 0; i < size; i++ {
		symbol, err := r.ReadBits(tableSizeBits)
		if err != nil {
			return nil, 0, truncatedTableErr(i, err)
		}
		field, err := r.ReadBits(codeLengthBits)
		if err != nil {
			return nil, 0, truncatedTableErr(i, err)
		}
		read += tableSizeBits + codeLengthBits

		var code bitseq.Symbol
		if n := decodeCodeLength(field, size); n > 0 {
			value, err := r.ReadBits(uint8(n))
			if err != nil {
				return nil, 0, truncatedTableErr(i, err)
			}
			read += n
			if code, err = bitseq.FromValue(value, n); err != nil {
				return nil, 0, err
			}
		}
		entries = append(entries, Entry{Symbol: byte(symbol), Code: code})
	}
	return NewCodeTable(entries), (read + 7) / 8, nil
}

func truncatedTableErr(entry int, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &FormatError{Reason: fmt.Sprintf("code table truncated at entry %d", entry)}
	}
	return err
}

// Compress runs the whole pipeline: count, assign, encode, serialize.
func Compress(data []byte, opts ...Option) ([]byte, error) {
	table, err := Assign(CountFrequencies(data))
	if err != nil {
		return nil, err
	}
	stream, err := Encode(data, table, opts...)
	if err != nil {
		return nil, err
	}
	return Serialize(stream, table)
}

// Decompress inverts Compress. Without WithOutputLength, trailing pad
// bits may decode as extra copies of the symbol whose code is all ones.
func Decompress(archive []byte, opts ...Option) ([]byte, error) {
	stream, table, err := Deserialize(archive)
	if err != nil {
		return nil, err
	}
	return Decode(stream, table, opts...)
}
