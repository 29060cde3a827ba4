package bitseq

import (
	"bytes"
	"testing"
)

func addBits(s *Stream, text string) {
	for _, c := range text {
		s.Add(c == '1')
	}
}

func TestStreamPacksMSBFirst(t *testing.T) {
	s := NewStream()
	addBits(s, "01010101")
	addBits(s, "101")
	if s.Len() != 11 {
		t.Fatalf("Len = %d, want 11", s.Len())
	}
	if !bytes.Equal(s.Bytes(), []byte{0x55}) {
		t.Fatalf("Bytes = %x, want 55", s.Bytes())
	}
	if !s.SubBit(8) || s.SubBit(9) || !s.SubBit(10) {
		t.Error("pending bits not readable")
	}
}

func TestStreamFinalize(t *testing.T) {
	s := NewStream()
	addBits(s, "000")
	s.Finalize()
	if !bytes.Equal(s.Bytes(), []byte{0x1F}) {
		t.Fatalf("Bytes = %x, want 1f", s.Bytes())
	}
	if s.Len() != 8 || s.DataLen() != 3 || s.Padding() != 5 {
		t.Errorf("Len/DataLen/Padding = %d/%d/%d, want 8/3/5", s.Len(), s.DataLen(), s.Padding())
	}

	s.Finalize()
	if s.Len() != 8 || s.Padding() != 5 {
		t.Error("second Finalize must be a no-op")
	}

	aligned := NewStream()
	addBits(aligned, "10101010")
	aligned.Finalize()
	if aligned.Len() != 8 || aligned.Padding() != 0 {
		t.Error("Finalize padded an aligned stream")
	}
}

func TestStreamSubBits(t *testing.T) {
	s := StreamFromBytes([]byte{0xA5, 0x0F}) // 10100101 00001111
	tests := []struct {
		start, length int
		want          string
	}{
		{0, 4, "1010"},
		{4, 8, "01010000"},
		{12, 4, "1111"},
		{14, 6, "11"},
		{16, 3, ""},
		{3, 0, ""},
	}
	for _, tt := range tests {
		got := s.SubBits(tt.start, tt.length)
		if got.String() != tt.want {
			t.Errorf("SubBits(%d, %d) = %q, want %q", tt.start, tt.length, got.String(), tt.want)
		}
	}
	if s.SubBit(16) || s.SubBit(-1) {
		t.Error("out of range SubBit must be false")
	}
	if s.DataLen() != 16 {
		t.Errorf("DataLen = %d for a stream built from bytes", s.DataLen())
	}
}

func TestStreamAddByteUnaligned(t *testing.T) {
	s := NewStream()
	s.Add(true)
	s.AddByte(0x00)
	s.AddByte(0xFF)
	s.Finalize()
	// 1 00000000 11111111 + 7 pad bits
	want := []byte{0x80, 0x7F, 0xFF}
	if !bytes.Equal(s.Bytes(), want) {
		t.Fatalf("Bytes = %x, want %x", s.Bytes(), want)
	}
}

func TestStreamAddSymbolAndClone(t *testing.T) {
	sym, err := ParseSymbol("110")
	if err != nil {
		t.Fatal(err)
	}
	s := NewStream()
	s.AddSymbol(sym)
	s.AddSymbol(sym)
	c := s.Clone()
	c.Finalize()
	if s.Len() != 6 {
		t.Errorf("Clone finalize leaked into original: Len = %d", s.Len())
	}
	if !bytes.Equal(c.Bytes(), []byte{0xDB}) {
		t.Errorf("clone bytes = %x, want db", c.Bytes())
	}
}
