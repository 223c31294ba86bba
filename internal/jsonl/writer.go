// Package jsonl writes values as JSON Lines
package jsonl

import (
	"errors"
	"fmt"
	"io"

	"github.com/mazrean/json2jsonl/internal/pkg/json"
)

// Writer writes one compact JSON value per line.
// Each line reaches the underlying writer in a single Write call.
type Writer struct {
	encoder *json.Encoder
	lines   int
}

// NewWriter creates a new Writer on w
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		encoder: json.NewEncoder(w),
	}
}

// Write serializes v and writes it followed by a newline
func (w *Writer) Write(v any) error {
	err := w.encoder.Encode(v)
	if err != nil {
		var marshalErr *json.MarshalError
		if errors.As(err, &marshalErr) {
			return &EncodeError{Line: w.lines + 1, Err: marshalErr.Err}
		}
		return &WriteError{Line: w.lines + 1, Err: err}
	}
	w.lines++

	return nil
}

// Lines returns the number of lines written
func (w *Writer) Lines() int {
	return w.lines
}

// EncodeError reports that a value could not be serialized
type EncodeError struct {
	Line int
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode line %d: %v", e.Line, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// WriteError reports that the output stream rejected a line
type WriteError struct {
	Line int
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write line %d: %v", e.Line, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
