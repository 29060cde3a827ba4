package splitcode

import (
	"github.com/FitrahHaque/splitpack/compressor/bitseq"
)

// Encode replaces every byte of data with its code and returns the
// finalized (1-padded) bit stream.
func Encode(data []byte, table *CodeTable, opts ...Option) (*bitseq.Stream, error) {
	o := buildOptions(opts)
	stream := bitseq.NewStream()
	for i, b := range data {
		code, ok := table.Lookup(b)
		if !ok {
			return nil, &SymbolNotFoundError{Op: "encode", Symbol: b, Position: i}
		}
		stream.AddSymbol(code)
		if (i+1)%progressInterval == 0 {
			o.report(i+1, len(data))
		}
	}
	stream.Finalize()
	o.report(len(data), len(data))
	return stream, nil
}

// Decode turns a bit stream back into bytes using table alone.
//
// Decoding stops at stream.DataLen, so pad bits of a stream finalized in
// this process never produce symbols. A stream rebuilt from archive bytes
// does not know its padding: decoding ends cleanly when fewer than eight
// 1 bits remain and they cut a code short, but pad bits that spell a
// whole code decode as that symbol. Pass WithOutputLength to cut exactly.
func Decode(stream *bitseq.Stream, table *CodeTable, opts ...Option) ([]byte, error) {
	o := buildOptions(opts)
	if out, ok := decodeRepeated(table, o.outputLength); ok {
		o.report(stream.Len(), stream.Len())
		return out, nil
	}

	d := newDecoder(table)
	limit := stream.DataLen()
	var out []byte
	pos, steps := 0, 0
	for pos < limit {
		if o.outputLength >= 0 && len(out) >= o.outputLength {
			break
		}
		symbol, n, res := d.match(stream, pos)
		if res == truncated && trailingPad(stream, pos) {
			break
		}
		if res != matched {
			return nil, &SymbolNotFoundError{Op: "decode", Position: pos}
		}
		out = append(out, symbol)
		pos += n
		steps++
		if steps%progressInterval == 0 {
			o.report(pos, limit)
		}
	}
	o.report(min(pos, limit), limit)
	return out, nil
}

// decodeRepeated handles the single-symbol alphabet whose only code is
// empty. Such a stream carries no bits, so the symbol count has to come
// from the caller.
func decodeRepeated(table *CodeTable, n int) ([]byte, bool) {
	if table.Len() != 1 || n <= 0 {
		return nil, false
	}
	e := table.entries[0]
	if e.Code.Len() != 0 {
		return nil, false
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = e.Symbol
	}
	return out, true
}
