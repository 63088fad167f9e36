package registry

import (
	"bytes"
	"slices"
	"testing"

	"github.com/simonhull/imagemeta/internal/binary"
	"github.com/simonhull/imagemeta/internal/types"
)

// stubDecode returns an empty set tagged with format.
func stubDecode(format types.Format) DecodeFunc {
	return func(*binary.Cursor, types.ImageHandle, types.Inspector) (*types.Metadata, error) {
		return types.NewMetadata(format), nil
	}
}

func newTestRegistry() *Registry {
	return New(
		Entry{Format: types.FormatGeneric, Decode: stubDecode(types.FormatGeneric)},
		Entry{Format: types.FormatBMP, Match: Prefix(types.FormatBMP.Signature()), Decode: stubDecode(types.FormatBMP)},
	)
}

func cursorFor(data []byte) *binary.Cursor {
	return binary.NewCursor(binary.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test"))
}

func TestSelect(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		name string
		data []byte
		want types.Format
	}{
		{name: "bitmap", data: []byte("BM\x00\x00\x00\x00"), want: types.FormatBMP},
		{name: "exactly signature", data: []byte("BM"), want: types.FormatBMP},
		{name: "png", data: []byte("\x89PNG\r\n\x1a\n"), want: types.FormatGeneric},
		{name: "jpeg", data: []byte{0xFF, 0xD8, 0xFF, 0xE0}, want: types.FormatGeneric},
		{name: "lowercase bm", data: []byte("bm\x00\x00"), want: types.FormatGeneric},
		{name: "reversed", data: []byte("MB\x00\x00"), want: types.FormatGeneric},
		{name: "one byte", data: []byte("B"), want: types.FormatGeneric},
		{name: "empty", data: nil, want: types.FormatGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Select(cursorFor(tt.data)).Format; got != tt.want {
				t.Errorf("Select() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelect_AllTwoByteSignatures(t *testing.T) {
	r := newTestRegistry()

	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			want := types.FormatGeneric
			if a == 'B' && b == 'M' {
				want = types.FormatBMP
			}
			got := r.SelectSignature([]byte{byte(a), byte(b)}).Format
			if got != want {
				t.Fatalf("SelectSignature(%#x %#x) = %v, want %v", a, b, got, want)
			}
		}
	}
}

func TestSelect_AdvancesCursor(t *testing.T) {
	r := newTestRegistry()
	cur := cursorFor([]byte("BM\x01\x02\x03\x04"))
	_ = cur.Seek(4)

	r.Select(cur)

	if cur.Offset() != SignatureLen {
		t.Errorf("Offset() = %d after Select, want %d", cur.Offset(), SignatureLen)
	}
}

func TestSelect_ReturnsDecoder(t *testing.T) {
	r := newTestRegistry()
	entry := r.Select(cursorFor([]byte("BM")))

	md, err := entry.Decode(nil, nil, nil)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if md.Format() != types.FormatBMP {
		t.Errorf("decoded Format = %v, want FormatBMP", md.Format())
	}
}

func TestNew_PriorityOrder(t *testing.T) {
	// Two formats claim the same signature; the higher priority wins
	// regardless of argument order.
	low := Entry{Format: types.Format(10), Priority: 1, Match: Prefix([]byte("B"))}
	high := Entry{Format: types.Format(11), Priority: 5, Match: Prefix([]byte("BM"))}

	r := New(Entry{Format: types.FormatGeneric}, low, high)

	if got := r.SelectSignature([]byte("BM")).Format; got != types.Format(11) {
		t.Errorf("SelectSignature(BM) = %v, want high-priority format", got)
	}
	if got := r.SelectSignature([]byte("BA")).Format; got != types.Format(10) {
		t.Errorf("SelectSignature(BA) = %v, want low-priority format", got)
	}
}

func TestNew_StableForEqualPriority(t *testing.T) {
	first := Entry{Format: types.Format(20), Match: Prefix([]byte("X"))}
	second := Entry{Format: types.Format(21), Match: Prefix([]byte("X"))}

	r := New(Entry{Format: types.FormatGeneric}, first, second)
	if got := r.SelectSignature([]byte("XY")).Format; got != types.Format(20) {
		t.Errorf("SelectSignature(XY) = %v, want first registered format", got)
	}
}

func TestNew_DoesNotAliasArguments(t *testing.T) {
	entries := []Entry{
		{Format: types.Format(30), Priority: 1, Match: Prefix([]byte("A"))},
		{Format: types.Format(31), Priority: 2, Match: Prefix([]byte("B"))},
	}
	New(Entry{Format: types.FormatGeneric}, entries...)

	if entries[0].Format != types.Format(30) {
		t.Error("New() reordered the caller's slice")
	}
}

func TestFormats(t *testing.T) {
	r := newTestRegistry()
	want := []types.Format{types.FormatBMP, types.FormatGeneric}
	if got := r.Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}
