package source

import (
	"errors"
	"fmt"
	"os"

	"github.com/mazrean/json2jsonl/sequence"
)

var _ Source = (*FileSource)(nil)

// FileSource is a memory-mapped input file.
// Strings decoded from it may reference the mapping, so records must not be used after Close.
type FileSource struct {
	name    string
	data    []byte
	parser  *sequence.BufferParser
	release func() error
}

// OpenFile maps the file at path read-only
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Name: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &OpenError{Name: path, Err: err}
	}
	if info.IsDir() {
		return nil, &OpenError{Name: path, Err: errors.New("is a directory")}
	}

	data, release, err := mapFile(f, info.Size())
	if err != nil {
		return nil, &OpenError{Name: path, Err: err}
	}

	return &FileSource{
		name:    path,
		data:    data,
		parser:  sequence.NewBufferParser(data),
		release: release,
	}, nil
}

func (s *FileSource) Name() string {
	return s.name
}

func (s *FileSource) Parser() sequence.Parser {
	return s.parser
}

func (s *FileSource) Size() int64 {
	return int64(len(s.data))
}

func (s *FileSource) Consumed() int64 {
	return s.parser.Offset()
}

// Close releases the mapping. Calling Close more than once is a no-op.
func (s *FileSource) Close() error {
	if s.release == nil {
		return nil
	}

	release := s.release
	s.release = nil
	s.data = nil
	if err := release(); err != nil {
		return fmt.Errorf("release %s: %w", s.name, err)
	}

	return nil
}
