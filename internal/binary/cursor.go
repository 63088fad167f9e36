package binary

// Cursor provides absolute seeking and sequential little-endian reads over a SafeReader.
//
// The cursor only moves on success: a failed Seek or read leaves the
// offset where it was. Callers must Seek explicitly to jump to a field.
type Cursor struct {
	sr     *SafeReader
	offset int64
}

// NewCursor creates a Cursor positioned at the start of the stream.
func NewCursor(sr *SafeReader) *Cursor {
	return &Cursor{sr: sr}
}

// Seek moves the cursor to an absolute offset from the start of the stream.
// Offsets at or beyond the stream length fail with *OutOfRangeError.
func (c *Cursor) Seek(offset int64) error {
	if offset < 0 || offset >= c.sr.size {
		return &OutOfRangeError{Path: c.sr.path, What: "seek", Offset: offset, Size: c.sr.size}
	}
	c.offset = offset
	return nil
}

// Offset returns the current cursor position.
func (c *Cursor) Offset() int64 {
	return c.offset
}

// Size returns the total stream length in bytes.
func (c *Cursor) Size() int64 {
	return c.sr.size
}

// Path returns the name associated with the underlying reader.
func (c *Cursor) Path() string {
	return c.sr.path
}

// Remaining returns the number of bytes between the cursor and the end of the stream.
func (c *Cursor) Remaining() int64 {
	return c.sr.size - c.offset
}

// ReadU8 reads one byte and advances the cursor.
func (c *Cursor) ReadU8() (uint8, error) {
	return readNext[uint8](c, "uint8")
}

// ReadU16LE reads a little-endian uint16 and advances the cursor.
func (c *Cursor) ReadU16LE() (uint16, error) {
	return readNext[uint16](c, "uint16")
}

// ReadU32LE reads a little-endian uint32 and advances the cursor.
func (c *Cursor) ReadU32LE() (uint32, error) {
	return readNext[uint32](c, "uint32")
}

// ReadBytes reads n bytes and advances the cursor.
func (c *Cursor) ReadBytes(n int, what string) ([]byte, error) {
	if err := c.ensure(n, what); err != nil {
		return nil, err
	}

	buf := make([]byte, n)
	if err := c.sr.ReadAt(buf, c.offset, what); err != nil {
		return nil, err
	}

	c.offset += int64(n)
	return buf, nil
}

// ReadString reads n bytes as a string and advances the cursor.
func (c *Cursor) ReadString(n int, what string) (string, error) {
	buf, err := c.ReadBytes(n, what)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// ensure reports *UnexpectedEndError when fewer than n bytes remain.
//
// Checked here rather than in SafeReader so a cursor sitting exactly at the
// end reports a short read, not an out-of-range offset.
func (c *Cursor) ensure(n int, what string) error {
	if int64(n) > c.Remaining() {
		return &UnexpectedEndError{
			Path:   c.sr.path,
			What:   what,
			Offset: c.offset,
			Length: n,
			Size:   c.sr.size,
		}
	}
	return nil
}

func readNext[T uint8 | uint16 | uint32 | uint64](c *Cursor, what string) (T, error) {
	var zero T
	n := sizeOf[T]()
	if err := c.ensure(n, what); err != nil {
		return zero, err
	}

	val, err := ReadLE[T](c.sr, c.offset, what)
	if err != nil {
		return zero, err
	}

	c.offset += int64(n)
	return val, nil
}

// ChainReader allows chaining multiple cursor reads with deferred error checking.
// This avoids repetitive "if err != nil" checks across a run of header fields.
type ChainReader struct {
	*Cursor
	err error
}

// NewChainReader creates a new ChainReader.
func NewChainReader(c *Cursor) *ChainReader {
	return &ChainReader{Cursor: c}
}

// Seek moves the cursor unless a previous operation failed.
func (cr *ChainReader) Seek(offset int64) {
	if cr.err != nil {
		return
	}
	cr.err = cr.Cursor.Seek(offset)
}

// U32 reads a little-endian uint32, accumulating any error.
func (cr *ChainReader) U32(what string) uint32 {
	if cr.err != nil {
		return 0
	}

	val, err := readNext[uint32](cr.Cursor, what)
	if err != nil {
		cr.err = err
		return 0
	}
	return val
}

// String reads a string, accumulating any error.
func (cr *ChainReader) String(length int, what string) string {
	if cr.err != nil {
		return ""
	}

	val, err := cr.Cursor.ReadString(length, what)
	if err != nil {
		cr.err = err
		return ""
	}
	return val
}

// Error returns the accumulated error, if any.
func (cr *ChainReader) Error() error {
	return cr.err
}
