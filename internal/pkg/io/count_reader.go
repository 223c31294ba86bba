package io

import (
	"io"
	"sync/atomic"
)

// CountReader is a wrapper that counts the bytes read from the underlying io.Reader.
// Count may be called from another goroutine while reads are in progress.
type CountReader struct {
	r     io.Reader
	count atomic.Int64
}

// NewCountReader creates a new CountReader from the given io.Reader
func NewCountReader(r io.Reader) *CountReader {
	return &CountReader{r: r}
}

func (cr *CountReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.count.Add(int64(n))
	return n, err
}

// Count returns the number of bytes read so far
func (cr *CountReader) Count() int64 {
	return cr.count.Load()
}
