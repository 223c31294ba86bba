//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package source

import (
	"bytes"
	"fmt"
	"os"
)

// mapFile reads the whole file where mmap is not available
func mapFile(f *os.File, size int64) ([]byte, func() error, error) {
	buf := bytes.NewBuffer(make([]byte, 0, size))
	if _, err := buf.ReadFrom(f); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	return buf.Bytes(), func() error { return nil }, nil
}
