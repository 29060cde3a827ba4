package bitseq

// Stream is an append-only sequence of bits packed eight per byte,
// most significant bit first. The in-progress byte is held apart from
// the completed ones until it fills up or Finalize pads it.
type Stream struct {
	bytes   []byte
	pending byte
	cursor  uint8
	padding uint8
}

// NewStream returns an empty stream with no padding.
func NewStream() *Stream {
	return &Stream{}
}

// StreamFromBytes wraps already packed bytes. The padding of such a
// stream is unknown, so DataLen equals Len.
func StreamFromBytes(b []byte) *Stream {
	return &Stream{bytes: append([]byte(nil), b...)}
}

// Add appends one bit.
func (s *Stream) Add(bit bool) {
	if bit {
		s.pending |= 0x80 >> s.cursor
	}
	s.cursor++
	if s.cursor == 8 {
		s.bytes = append(s.bytes, s.pending)
		s.pending = 0
		s.cursor = 0
	}
}

// AddSymbol appends the bits of sym, first bit first.
func (s *Stream) AddSymbol(sym Symbol) {
	for bit := range sym.Bits() {
		s.Add(bit)
	}
}

// AddByte appends the eight bits of b at any alignment.
func (s *Stream) AddByte(b byte) {
	if s.cursor == 0 {
		s.bytes = append(s.bytes, b)
		return
	}
	for i := 0; i < 8; i++ {
		s.Add(b&(0x80>>i) != 0)
	}
}

// Finalize pads the trailing partial byte with 1 bits. It does nothing
// on a byte-aligned stream.
func (s *Stream) Finalize() {
	for s.cursor != 0 {
		s.Add(true)
		s.padding++
	}
}

// Len is the number of bits held, counting the partial trailing byte.
func (s *Stream) Len() int {
	return len(s.bytes)*8 + int(s.cursor)
}

// DataLen is Len without the pad bits added by Finalize.
func (s *Stream) DataLen() int {
	return s.Len() - int(s.padding)
}

// Padding is the number of pad bits Finalize appended.
func (s *Stream) Padding() int {
	return int(s.padding)
}

// Bytes returns the completed bytes. A partial trailing byte is only
// included after Finalize.
func (s *Stream) Bytes() []byte {
	return s.bytes
}

// SubBits extracts bits [start, start+length). Bits past the end of the
// stream are not reported: the result is shorter than requested.
func (s *Stream) SubBits(start, length int) Symbol {
	var sym Symbol
	if start < 0 || length <= 0 {
		return sym
	}
	end := min(start+min(length, MaxSymbolBits), s.Len())
	for i := start; i < end; i++ {
		_ = sym.Add(s.SubBit(i))
	}
	return sym
}

// SubBit returns the bit at index, or false when index is out of range.
func (s *Stream) SubBit(index int) bool {
	if index < 0 {
		return false
	}
	byteNum, bitNum := index/8, uint(index%8)
	switch {
	case byteNum < len(s.bytes):
		return s.bytes[byteNum]&(0x80>>bitNum) != 0
	case byteNum == len(s.bytes) && bitNum < uint(s.cursor):
		return s.pending&(0x80>>bitNum) != 0
	default:
		return false
	}
}

// Clone returns an independent copy.
func (s *Stream) Clone() *Stream {
	c := *s
	c.bytes = append([]byte(nil), s.bytes...)
	return &c
}
