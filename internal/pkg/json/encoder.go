package json

import (
	"fmt"
	"io"
)

// Encoder writes one compact JSON value per line
type Encoder struct {
	writer io.Writer
	buf    []byte
}

// NewEncoder creates a new JSON encoder that wraps the provided io.Writer
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		writer: w,
	}
}

// Encode encodes the provided interface into JSON format
// It appends a newline after each encoding so the output is line-delimited JSON,
// and issues a single Write for the whole line.
func (e *Encoder) Encode(v any) error {
	b, err := Marshal(v)
	if err != nil {
		return &MarshalError{Err: err}
	}

	e.buf = append(e.buf[:0], b...)
	e.buf = append(e.buf, '\n')
	if _, err := e.writer.Write(e.buf); err != nil {
		return err
	}

	return nil
}

// MarshalError reports that a value could not be serialized
type MarshalError struct {
	Err error
}

func (e *MarshalError) Error() string {
	return fmt.Sprintf("marshal: %v", e.Err)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}
