package sequence

import (
	"fmt"

	"github.com/mazrean/json2jsonl/internal/pkg/json"
)

var _ Parser = (*BufferParser)(nil)

// BufferParser is a Parser over an immutable in-memory input such as a memory-mapped file.
//
// Each element is validated by a strict scan and then decoded in place, so
// strings decoded without escapes may reference buf. buf must not be modified
// or released while decoded elements are in use.
type BufferParser struct {
	buf []byte
	pos int
	// needComma is set after an element has been decoded
	needComma bool
}

// NewBufferParser creates a BufferParser over buf
func NewBufferParser(buf []byte) *BufferParser {
	return &BufferParser{buf: buf}
}

// Offset returns the number of bytes consumed so far
func (p *BufferParser) Offset() int64 {
	return int64(p.pos)
}

func (p *BufferParser) Open() (Kind, error) {
	p.skipSpace()
	if p.pos >= len(p.buf) {
		return KindInvalid, ErrUnexpectedEnd
	}

	kind := byteKind(p.buf[p.pos])
	switch kind {
	case KindInvalid:
		return kind, p.syntaxError("invalid character %q looking for beginning of value", p.buf[p.pos])
	case KindArray:
		p.pos++
	}

	return kind, nil
}

func (p *BufferParser) More() (bool, error) {
	p.skipSpace()
	if p.pos >= len(p.buf) {
		return false, ErrUnexpectedEnd
	}

	c := p.buf[p.pos]
	if c == ']' {
		return false, nil
	}
	if !p.needComma {
		return true, nil
	}
	if c != ',' {
		return false, p.syntaxError("invalid character %q after array element", c)
	}

	p.pos++
	p.needComma = false
	p.skipSpace()
	if p.pos >= len(p.buf) {
		return false, ErrUnexpectedEnd
	}
	if p.buf[p.pos] == ']' {
		return false, p.syntaxError("invalid character ']' after ','")
	}

	return true, nil
}

func (p *BufferParser) Decode(v any) error {
	p.skipSpace()
	start := p.pos

	s := &scanner{buf: p.buf}
	end, err := s.value(start, 0)
	if err != nil {
		return err
	}
	if end < len(p.buf) && !endsElement(p.buf[end]) {
		return s.errorf(end, "invalid character %q after array element", p.buf[end])
	}

	p.pos = end
	p.needComma = true

	return json.UnmarshalNoCopy(p.buf[start:end], v)
}

func (p *BufferParser) Close() error {
	p.skipSpace()
	if p.pos >= len(p.buf) {
		return ErrUnexpectedEnd
	}
	if p.buf[p.pos] != ']' {
		return p.syntaxError("invalid character %q at end of array", p.buf[p.pos])
	}
	p.pos++

	p.skipSpace()
	if p.pos < len(p.buf) {
		return fmt.Errorf("%w: offset %d", ErrTrailingData, p.pos)
	}

	return nil
}

func (p *BufferParser) skipSpace() {
	for p.pos < len(p.buf) && isSpace(p.buf[p.pos]) {
		p.pos++
	}
}

func (p *BufferParser) syntaxError(format string, args ...any) error {
	return &SyntaxError{Offset: int64(p.pos), Msg: fmt.Sprintf(format, args...)}
}
