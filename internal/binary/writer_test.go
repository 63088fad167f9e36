package binary

import (
	"bytes"
	"testing"
)

func TestSafeWriter_WriteUint32LE(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	if err := WriteLE[uint32](sw, 0x12345678); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []byte{0x78, 0x56, 0x34, 0x12}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("expected %v, got %v", expected, buf.Bytes())
	}
}

func TestSafeWriter_Offset(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	if sw.Offset() != 0 {
		t.Errorf("expected initial offset 0, got %d", sw.Offset())
	}

	steps := []struct {
		write func() error
		name  string
		want  int64
	}{
		{name: "uint8", want: 1, write: func() error { return WriteLE[uint8](sw, 0x01) }},
		{name: "uint16", want: 3, write: func() error { return WriteLE[uint16](sw, 0x0203) }},
		{name: "uint32", want: 7, write: func() error { return WriteLE[uint32](sw, 0x04050607) }},
		{name: "uint64", want: 15, write: func() error { return WriteLE[uint64](sw, 0x08090A0B0C0D0E0F) }},
		{name: "padding", want: 19, write: func() error { return sw.Pad(4) }},
	}

	for _, step := range steps {
		if err := step.write(); err != nil {
			t.Fatalf("%s: unexpected error: %v", step.name, err)
		}
		if sw.Offset() != step.want {
			t.Errorf("expected offset %d after writing %s, got %d", step.want, step.name, sw.Offset())
		}
	}
}

func TestSafeWriter_WriteString(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	if err := sw.WriteString("BM"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if buf.String() != "BM" {
		t.Errorf("expected \"BM\", got %q", buf.String())
	}
	if sw.Offset() != 2 {
		t.Errorf("expected offset 2, got %d", sw.Offset())
	}
}

func TestSafeWriter_RoundTripThroughCursor(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)
	_ = sw.WriteString("BM")
	_ = WriteLE[uint32](sw, 1000)

	data := buf.Bytes()
	c := NewCursor(NewSafeReader(bytes.NewReader(data), int64(len(data)), "rt.bmp"))
	if err := c.Seek(2); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	got, err := c.ReadU32LE()
	if err != nil {
		t.Fatalf("ReadU32LE failed: %v", err)
	}
	if got != 1000 {
		t.Errorf("ReadU32LE() = %d, want 1000", got)
	}
}
