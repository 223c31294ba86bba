package sequence

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/mazrean/json2jsonl/internal/pkg/json"
)

var _ Parser = (*StreamParser)(nil)

const streamBufferSize = 64 << 10

// StreamParser is a Parser over a live byte stream.
//
// Each element is read into a scratch buffer, validated with the same strict
// scan as BufferParser and decoded from there, so only one element is held
// in memory at a time. Decoded strings are copied out of the scratch buffer.
type StreamParser struct {
	r      *bufio.Reader
	offset int64
	// needComma is set after an element has been decoded
	needComma bool
	elem      []byte
}

// NewStreamParser creates a StreamParser reading from r
func NewStreamParser(r io.Reader) *StreamParser {
	return &StreamParser{
		r: bufio.NewReaderSize(r, streamBufferSize),
	}
}

// Offset returns the number of bytes consumed so far
func (p *StreamParser) Offset() int64 {
	return p.offset
}

func (p *StreamParser) Open() (Kind, error) {
	c, err := p.peekNonSpace()
	if err != nil {
		return KindInvalid, endOfInput(err)
	}

	kind := byteKind(c)
	switch kind {
	case KindInvalid:
		return kind, p.syntaxError("invalid character %q looking for beginning of value", c)
	case KindArray:
		p.discard(1)
	}

	return kind, nil
}

func (p *StreamParser) More() (bool, error) {
	c, err := p.peekNonSpace()
	if err != nil {
		return false, endOfInput(err)
	}

	if c == ']' {
		return false, nil
	}
	if !p.needComma {
		return true, nil
	}
	if c != ',' {
		return false, p.syntaxError("invalid character %q after array element", c)
	}

	p.discard(1)
	p.needComma = false
	c, err = p.peekNonSpace()
	if err != nil {
		return false, endOfInput(err)
	}
	if c == ']' {
		return false, p.syntaxError("invalid character ']' after ','")
	}

	return true, nil
}

func (p *StreamParser) Decode(v any) error {
	if _, err := p.peekNonSpace(); err != nil {
		return endOfInput(err)
	}

	start := p.offset
	if err := p.readElement(); err != nil {
		return err
	}

	s := &scanner{buf: p.elem, base: start}
	end, err := s.value(0, 0)
	switch {
	case errors.Is(err, ErrUnexpectedEnd):
		// the element was cut short by a delimiter, not by the end of the input
		if _, peekErr := p.r.Peek(1); peekErr == nil {
			return p.syntaxError("unexpected end of array element")
		}
		return err
	case err != nil:
		return err
	case end < len(p.elem):
		return s.errorf(end, "invalid character %q after array element", p.elem[end])
	}

	if next, err := p.r.Peek(1); err == nil && !endsElement(next[0]) {
		return p.syntaxError("invalid character %q after array element", next[0])
	}

	p.needComma = true

	return json.Unmarshal(p.elem, v)
}

func (p *StreamParser) Close() error {
	c, err := p.peekNonSpace()
	if err != nil {
		return endOfInput(err)
	}
	if c != ']' {
		return p.syntaxError("invalid character %q at end of array", c)
	}
	p.discard(1)

	c, err = p.peekNonSpace()
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return fmt.Errorf("read input: %w", err)
	default:
		return fmt.Errorf("%w: offset %d, found %q", ErrTrailingData, p.offset, c)
	}
}

// readElement reads the bytes of the next element into p.elem.
// Composite values and strings end at their closing byte; anything else ends
// at whitespace, a comma or a closing bracket.
func (p *StreamParser) readElement() error {
	p.elem = p.elem[:0]

	c, err := p.readByte()
	if err != nil {
		return endOfInput(err)
	}
	p.elem = append(p.elem, c)

	switch c {
	case '"':
		return p.readString()
	case '[', '{':
		depth := 1
		for depth > 0 {
			c, err := p.readByte()
			if err != nil {
				return endOfInput(err)
			}
			p.elem = append(p.elem, c)

			switch c {
			case '"':
				if err := p.readString(); err != nil {
					return err
				}
			case '[', '{':
				depth++
			case ']', '}':
				depth--
			}
		}
		return nil
	default:
		for {
			next, err := p.r.Peek(1)
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			if endsElement(next[0]) || next[0] == '}' {
				return nil
			}

			c, _ := p.readByte()
			p.elem = append(p.elem, c)
		}
	}
}

// readString appends the rest of a string whose opening quote is already in p.elem
func (p *StreamParser) readString() error {
	for {
		chunk, err := p.r.ReadSlice('"')
		p.offset += int64(len(chunk))
		p.elem = append(p.elem, chunk...)

		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case err != nil:
			return endOfInput(err)
		}

		// an odd run of backslashes before the quote escapes it
		body := p.elem[:len(p.elem)-1]
		escapes := len(body) - len(bytes.TrimRight(body, `\`))
		if escapes%2 == 0 {
			return nil
		}
	}
}

// peekNonSpace skips whitespace and returns the next byte without consuming it
func (p *StreamParser) peekNonSpace() (byte, error) {
	for {
		b, err := p.r.Peek(1)
		if err != nil {
			return 0, err
		}
		if !isSpace(b[0]) {
			return b[0], nil
		}
		p.discard(1)
	}
}

func (p *StreamParser) readByte() (byte, error) {
	c, err := p.r.ReadByte()
	if err != nil {
		return 0, err
	}
	p.offset++

	return c, nil
}

func (p *StreamParser) discard(n int) {
	discarded, _ := p.r.Discard(n)
	p.offset += int64(discarded)
}

func (p *StreamParser) syntaxError(format string, args ...any) error {
	return &SyntaxError{Offset: p.offset, Msg: fmt.Sprintf(format, args...)}
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return ErrUnexpectedEnd
	}

	return fmt.Errorf("read input: %w", err)
}
