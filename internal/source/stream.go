package source

import (
	"fmt"
	"io"

	myio "github.com/mazrean/json2jsonl/internal/pkg/io"
	"github.com/mazrean/json2jsonl/sequence"
)

var _ Source = (*StreamSource)(nil)

// StreamSource is an input read as it is parsed
type StreamSource struct {
	name    string
	body    io.ReadCloser
	counter *myio.CountReader
	parser  *sequence.StreamParser
	size    int64
}

// OpenStream wraps r. size is UnknownSize when the length of r is not known.
// Closing the source closes r.
func OpenStream(name string, r io.ReadCloser, size int64) *StreamSource {
	counter := myio.NewCountReader(r)

	return &StreamSource{
		name:    name,
		body:    r,
		counter: counter,
		parser:  sequence.NewStreamParser(counter),
		size:    size,
	}
}

func (s *StreamSource) Name() string {
	return s.name
}

func (s *StreamSource) Parser() sequence.Parser {
	return s.parser
}

func (s *StreamSource) Size() int64 {
	return s.size
}

func (s *StreamSource) Consumed() int64 {
	return s.counter.Count()
}

func (s *StreamSource) Close() error {
	if err := s.body.Close(); err != nil {
		return fmt.Errorf("close %s: %w", s.name, err)
	}

	return nil
}
