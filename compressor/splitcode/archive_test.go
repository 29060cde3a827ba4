package splitcode

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/FitrahHaque/splitpack/compressor/bitseq"
)

func mustCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	archive, err := Compress(data)
	if err != nil {
		t.Fatalf("Compress(%q): %v", data, err)
	}
	return archive
}

func TestSerializeLayout(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []byte
	}{
		{
			// a: 01100001 000001 0, b: 01100010 000001 1, pad 11, data 01010101
			name:  "alternating",
			input: "abababab",
			want:  []byte{0xAD, 0xBD, 0x01, 0x02, 0x61, 0x04, 0xC4, 0x0F, 0x55},
		},
		{
			name:  "single symbol",
			input: "aaaa",
			want:  []byte{0xAD, 0xBD, 0x01, 0x01, 0x61, 0x03},
		},
		{
			name:  "three symbols",
			input: "abcab",
			want:  []byte{0xAD, 0xBD, 0x01, 0x03, 0x61, 0x04, 0xC4, 0x14, 0xC6, 0x17, 0x5A},
		},
		{
			name:  "empty",
			input: "",
			want:  []byte{0xAD, 0xBD, 0x01, 0x00},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustCompress(t, []byte(tt.input))
			if !bytes.Equal(got, tt.want) {
				t.Errorf("archive = % x\n want % x", got, tt.want)
			}
		})
	}
}

func TestSerializeLeavesStreamUntouched(t *testing.T) {
	table := assignBytes(t, "abc")
	stream := bitseq.NewStream()
	stream.Add(false)
	if _, err := Serialize(stream, table); err != nil {
		t.Fatal(err)
	}
	if stream.Len() != 1 {
		t.Errorf("Serialize finalized the caller's stream: Len = %d", stream.Len())
	}
}

func TestArchiveRoundTripAligned(t *testing.T) {
	for _, input := range []string{"abababab", "abcab", ""} {
		got, err := Decompress(mustCompress(t, []byte(input)))
		if err != nil {
			t.Fatalf("Decompress(%q): %v", input, err)
		}
		if string(got) != input {
			t.Errorf("round trip %q -> %q", input, got)
		}
	}
}

func TestArchivePaddingDecodesAsAllOnesSymbol(t *testing.T) {
	// 30 data bits, then "11" pad which is also the code of 'c'.
	input := strings.Repeat("a", 10) + strings.Repeat("b", 5) + strings.Repeat("c", 5)
	archive := mustCompress(t, []byte(input))

	got, err := Decompress(archive)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != input+"c" {
		t.Errorf("Decompress = %q, want input plus one pad symbol", got)
	}

	got, err = Decompress(archive, WithOutputLength(len(input)))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != input {
		t.Errorf("Decompress with length = %q", got)
	}
}

func TestArchiveRoundTripWithLength(t *testing.T) {
	inputs := []string{
		"mississippi",
		"aaaa",
		"x",
		strings.Repeat("compression ", 100),
		string(allBytes()),
	}
	for _, input := range inputs {
		got, err := Decompress(mustCompress(t, []byte(input)), WithOutputLength(len(input)))
		if err != nil {
			t.Fatalf("Decompress: %v", err)
		}
		if string(got) != input {
			t.Errorf("round trip of %d bytes returned %d bytes", len(input), len(got))
		}
	}
}

func allBytes() []byte {
	b := make([]byte, 0, 512)
	for i := 0; i < 256; i++ {
		b = append(b, byte(i), byte(i))
	}
	return b
}

func TestArchiveFullAlphabet(t *testing.T) {
	archive := mustCompress(t, allBytes())
	if archive[3] != 0 {
		t.Fatalf("table size byte = %d, want 0 for 256 entries", archive[3])
	}
	_, table, err := Deserialize(archive)
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 256 {
		t.Errorf("table has %d entries, want 256", table.Len())
	}
}

func TestArchiveSixtyFourBitCode(t *testing.T) {
	table, err := Assign(fibonacciFrequencies(65))
	if err != nil {
		t.Fatal(err)
	}
	archive, err := Serialize(bitseq.NewStream(), table)
	if err != nil {
		t.Fatal(err)
	}
	_, got, err := Deserialize(archive)
	if err != nil {
		t.Fatal(err)
	}
	want := table.Entries()
	have := got.Entries()
	if len(have) != len(want) {
		t.Fatalf("%d entries, want %d", len(have), len(want))
	}
	for i := range want {
		if have[i] != want[i] {
			t.Errorf("entry %d = %v/%s, want %v/%s", i, have[i].Symbol, have[i].Code, want[i].Symbol, want[i].Code)
		}
	}
}

func TestSerializeRejectsEmptyCodeInLargerTable(t *testing.T) {
	one, _ := bitseq.ParseSymbol("1")
	table := NewCodeTable([]Entry{{Symbol: 'a'}, {Symbol: 'b', Code: one}})
	if _, err := Serialize(bitseq.NewStream(), table); err == nil {
		t.Fatal("zero-length code in a two-entry table was serialized")
	}
}

func TestDeserializeRejectsBadHeaders(t *testing.T) {
	tests := []struct {
		name    string
		archive []byte
	}{
		{"empty", nil},
		{"three bytes", []byte{0xAD, 0xBD, 0x01}},
		{"bad first magic", []byte{0xAE, 0xBD, 0x01, 0x00}},
		{"bad second magic", []byte{0xAD, 0xBC, 0x01, 0x02, 0x61, 0x04, 0xC4, 0x0F, 0x55}},
		{"version two", []byte{0xAD, 0xBD, 0x02, 0x02, 0x61, 0x04, 0xC4, 0x0F, 0x55}},
		{"version zero", []byte{0xAD, 0xBD, 0x00, 0x00}},
		{"long garbage", bytes.Repeat([]byte{0x42}, 1024)},
		{"truncated table", []byte{0xAD, 0xBD, 0x01, 0x02, 0x61}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Deserialize(tt.archive)
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("err = %v, want ErrFormat", err)
			}
			var formatErr *FormatError
			if !errors.As(err, &formatErr) || formatErr.Reason == "" {
				t.Errorf("missing FormatError reason: %v", err)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	header, err := Inspect(mustCompress(t, []byte("abababab")))
	if err != nil {
		t.Fatal(err)
	}
	want := Header{Version: 1, Entries: 2, TableBytes: 4, DataBytes: 1}
	if header != want {
		t.Errorf("Inspect = %+v, want %+v", header, want)
	}
}

func TestStreamAdapters(t *testing.T) {
	input := strings.Repeat("stream adapters buffer everything until close. ", 20)
	var archive bytes.Buffer
	w := NewWriter(&archive)
	for _, chunk := range strings.SplitAfter(input, ". ") {
		if _, err := io.WriteString(w, chunk); err != nil {
			t.Fatal(err)
		}
	}
	if archive.Len() != 0 {
		t.Fatal("archive written before Close")
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("late")); err == nil {
		t.Error("Write after Close succeeded")
	}

	r := NewReader(&archive, WithOutputLength(len(input)))
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if string(got) != input {
		t.Errorf("adapter round trip returned %d bytes, want %d", len(got), len(input))
	}
}

func TestDecompressWithoutLength(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		// a=0 b=10 c=110 d=111; the "11" pad cuts d short.
		{"aaaabbcd", "aaaabbcd"},
		{"abcab", "abcab"},
		{"hello, world", "hello, world"},
		{"abababab", "abababab"},
		// m=111 and the pad is "111": one extra m.
		{"mississippi", "mississippim"},
		{"aaaaaaaaaabbbbbccccc", "aaaaaaaaaabbbbbcccccc"},
	}
	for _, tt := range tests {
		got, err := Decompress(mustCompress(t, []byte(tt.input)))
		if err != nil {
			t.Errorf("Decompress(Compress(%q)): %v", tt.input, err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("Decompress(Compress(%q)) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStreamAdapterErrorIsSticky(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xAD, 0xBD, 0x02, 0x00}))
	buf := make([]byte, 8)
	_, first := r.Read(buf)
	if !errors.Is(first, ErrFormat) {
		t.Fatalf("first Read error = %v, want ErrFormat", first)
	}
	if _, second := r.Read(buf); second != first {
		t.Errorf("second Read error = %v, want %v", second, first)
	}
}

func allOnes(code bitseq.Symbol) bool {
	for bit := range code.Bits() {
		if !bit {
			return false
		}
	}
	return code.Len() > 0
}

func FuzzDecompressWithoutLength(f *testing.F) {
	f.Add([]byte("aaaabbcd"))
	f.Add([]byte("mississippi"))
	f.Add([]byte("aaaa"))
	f.Add([]byte{})
	f.Add([]byte{0x00, 0xFF, 0x00, 0x80, 0x80})
	f.Fuzz(func(t *testing.T, data []byte) {
		archive, err := Compress(data)
		if errors.Is(err, ErrCapacity) {
			t.Skip("distribution needs codes longer than 64 bits")
		}
		if err != nil {
			t.Fatal(err)
		}
		got, err := Decompress(archive)
		if err != nil {
			t.Fatalf("Decompress(%x): %v", data, err)
		}
		freq := CountFrequencies(data)
		if freq.AlphabetSize() <= 1 {
			if len(got) != 0 {
				t.Fatalf("single symbol archive decoded to %x", got)
			}
			return
		}
		if !bytes.HasPrefix(got, data) {
			t.Fatalf("%x decoded to %x", data, got)
		}
		_, table, err := Deserialize(archive)
		if err != nil {
			t.Fatal(err)
		}
		for _, b := range got[len(data):] {
			code, _ := table.Lookup(b)
			if !allOnes(code) {
				t.Fatalf("surplus symbol %q has code %s", b, code)
			}
		}
	})
}

func FuzzArchiveRoundTrip(f *testing.F) {
	f.Add([]byte("abababab"))
	f.Add([]byte("mississippi"))
	f.Add([]byte("aaaa"))
	f.Add([]byte{})
	f.Add([]byte{0x00, 0xFF, 0x00, 0x80})
	f.Fuzz(func(t *testing.T, data []byte) {
		archive, err := Compress(data)
		if errors.Is(err, ErrCapacity) {
			t.Skip("distribution needs codes longer than 64 bits")
		}
		if err != nil {
			t.Fatal(err)
		}
		got, err := Decompress(archive, WithOutputLength(len(data)))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, data) {
			t.Fatalf("round trip mismatch: %x -> %x", data, got)
		}
	})
}

func FuzzDeserialize(f *testing.F) {
	f.Add([]byte{0xAD, 0xBD, 0x01, 0x02, 0x61, 0x04, 0xC4, 0x0F, 0x55})
	f.Add([]byte{0xAD, 0xBD, 0x01, 0x00, 0xFF})
	f.Fuzz(func(t *testing.T, archive []byte) {
		stream, table, err := Deserialize(archive)
		if err != nil {
			return
		}
		// Any parsed archive must decode or fail cleanly.
		_, _ = Decode(stream, table)
	})
}
