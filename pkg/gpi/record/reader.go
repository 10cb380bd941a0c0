package record

import (
	"io"
)

// Reader wraps a byte stream with a monotone position counter. The position
// is used only for diagnostics; the stream itself is consumed strictly in
// order, with a relative skip as the single forward-only exception.
type Reader struct {
	r   io.Reader
	pos int64
}

// NewReader wraps a byte stream for record decoding.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Pos returns the number of bytes consumed so far.
func (r *Reader) Pos() int64 {
	return r.pos
}

// ReadFull reads exactly n bytes. A stream that ends mid-read yields
// io.ErrUnexpectedEOF; a stream that ends before the first byte yields
// io.EOF, letting callers distinguish a clean boundary from a truncation.
func (r *Reader) ReadFull(n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(r.r, buf)
	r.pos += int64(read)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Skip advances past n bytes without retaining them.
func (r *Reader) Skip(n int64) error {
	skipped, err := io.CopyN(io.Discard, r.r, n)
	r.pos += skipped
	if err == io.EOF && skipped < n {
		return io.ErrUnexpectedEOF
	}
	return err
}
