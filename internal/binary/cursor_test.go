package binary

import (
	"errors"
	"testing"
)

func newTestCursor(data []byte) *Cursor {
	return NewCursor(NewSafeReader(&mockReader{data: data}, int64(len(data)), "test.bmp"))
}

func TestCursor_Sequential(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	c := newTestCursor(data)

	b, err := c.ReadU8()
	if err != nil {
		t.Fatalf("ReadU8 failed: %v", err)
	}
	if b != 0x01 {
		t.Errorf("ReadU8() = 0x%02x, want 0x01", b)
	}

	w, err := c.ReadU16LE()
	if err != nil {
		t.Fatalf("ReadU16LE failed: %v", err)
	}
	if w != 0x0302 {
		t.Errorf("ReadU16LE() = 0x%04x, want 0x0302", w)
	}

	d, err := c.ReadU32LE()
	if err != nil {
		t.Fatalf("ReadU32LE failed: %v", err)
	}
	if d != 0x07060504 {
		t.Errorf("ReadU32LE() = 0x%08x, want 0x07060504", d)
	}

	if c.Offset() != 7 {
		t.Errorf("Offset() = %d, want 7", c.Offset())
	}
}

func TestCursor_Seek(t *testing.T) {
	data := make([]byte, 54)
	data[18] = 100
	c := newTestCursor(data)

	if err := c.Seek(18); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	got, err := c.ReadU32LE()
	if err != nil {
		t.Fatalf("ReadU32LE failed: %v", err)
	}
	if got != 100 {
		t.Errorf("ReadU32LE() = %d, want 100", got)
	}
	if c.Offset() != 22 {
		t.Errorf("Offset() = %d, want 22", c.Offset())
	}
}

func TestCursor_SeekOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		offset int64
	}{
		{name: "at length", offset: 4},
		{name: "past length", offset: 100},
		{name: "negative", offset: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCursor([]byte{1, 2, 3, 4})
			_ = c.Seek(1)

			err := c.Seek(tt.offset)
			var rangeErr *OutOfRangeError
			if !errors.As(err, &rangeErr) {
				t.Fatalf("Seek(%d) error = %v, want *OutOfRangeError", tt.offset, err)
			}
			if c.Offset() != 1 {
				t.Errorf("cursor moved on failed seek: offset = %d, want 1", c.Offset())
			}
		})
	}
}

func TestCursor_UnexpectedEnd(t *testing.T) {
	c := newTestCursor([]byte{1, 2, 3, 4, 5})
	if err := c.Seek(2); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}

	_, err := c.ReadU32LE()
	var endErr *UnexpectedEndError
	if !errors.As(err, &endErr) {
		t.Fatalf("ReadU32LE error = %v, want *UnexpectedEndError", err)
	}
	if endErr.Length != 4 || endErr.Offset != 2 {
		t.Errorf("UnexpectedEndError = %+v, want length 4 offset 2", endErr)
	}
	if c.Offset() != 2 {
		t.Errorf("cursor moved on failed read: offset = %d, want 2", c.Offset())
	}

	// Three bytes remain, a uint16 still fits.
	if _, err := c.ReadU16LE(); err != nil {
		t.Fatalf("ReadU16LE failed: %v", err)
	}
}

func TestCursor_ReadAtExactEnd(t *testing.T) {
	c := newTestCursor([]byte{1, 2})
	if _, err := c.ReadU16LE(); err != nil {
		t.Fatalf("ReadU16LE failed: %v", err)
	}

	_, err := c.ReadU8()
	var endErr *UnexpectedEndError
	if !errors.As(err, &endErr) {
		t.Fatalf("ReadU8 at end error = %v, want *UnexpectedEndError", err)
	}
}

func TestCursor_ReadString(t *testing.T) {
	c := newTestCursor([]byte("BM\x00\x00"))

	str, err := c.ReadString(2, "signature")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if str != "BM" {
		t.Errorf("expected \"BM\", got %q", str)
	}
	if c.Offset() != 2 {
		t.Errorf("expected offset 2, got %d", c.Offset())
	}
}

func TestChainReader_Success(t *testing.T) {
	data := []byte{'B', 'M', 0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00}
	cr := NewChainReader(newTestCursor(data))

	sig := cr.String(2, "signature")
	v1 := cr.U32("first")
	cr.Seek(6)
	v2 := cr.U32("second")

	if err := cr.Error(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig != "BM" || v1 != 1 || v2 != 2 {
		t.Errorf("unexpected values: %q %d %d", sig, v1, v2)
	}
}

func TestChainReader_ErrorAccumulation(t *testing.T) {
	data := []byte{0x01, 0x00, 0x00, 0x00, 0x02}
	cr := NewChainReader(newTestCursor(data))

	_ = cr.U32("first")  // OK
	_ = cr.U32("second") // Error - only one byte left

	var endErr *UnexpectedEndError
	if !errors.As(cr.Error(), &endErr) {
		t.Fatalf("expected *UnexpectedEndError, got %v", cr.Error())
	}

	// Once error occurs, subsequent operations should not execute
	cr.Seek(100)
	if got := cr.U32("third"); got != 0 {
		t.Errorf("read after error = %d, want 0", got)
	}
	if !errors.As(cr.Error(), &endErr) || endErr.What != "second" {
		t.Errorf("first error should persist, got %v", cr.Error())
	}
}

func BenchmarkCursor_Sequential(b *testing.B) {
	data := make([]byte, 1024*1024) // 1MB
	sr := NewSafeReader(&mockReader{data: data}, int64(len(data)), "bench.bmp")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := NewCursor(sr)
		for j := 0; j < 1000; j++ {
			_, _ = c.ReadU32LE()
		}
	}
}
