package sequence

import (
	"fmt"
)

// maxDepth bounds the nesting of arrays and objects inside one element
const maxDepth = 10000

// scanner validates JSON values held in buf against the RFC 8259 grammar.
// It only checks syntax; decoding is left to the JSON facade.
type scanner struct {
	buf []byte
	// base is the input offset of buf[0], used in SyntaxError
	base int64
}

// Valid reports whether data holds exactly one JSON value, optionally surrounded by whitespace.
// It returns a *SyntaxError or ErrUnexpectedEnd otherwise.
func Valid(data []byte) error {
	s := &scanner{buf: data}
	end, err := s.value(s.skipSpace(0), 0)
	if err != nil {
		return err
	}

	end = s.skipSpace(end)
	if end < len(data) {
		return s.errorf(end, "invalid character %q after top-level value", data[end])
	}

	return nil
}

func (s *scanner) errorf(i int, format string, args ...any) error {
	return &SyntaxError{Offset: s.base + int64(i), Msg: fmt.Sprintf(format, args...)}
}

func (s *scanner) skipSpace(i int) int {
	for i < len(s.buf) && isSpace(s.buf[i]) {
		i++
	}
	return i
}

// value returns the offset just past the value starting at i
func (s *scanner) value(i, depth int) (int, error) {
	if i >= len(s.buf) {
		return 0, ErrUnexpectedEnd
	}

	switch c := s.buf[i]; {
	case c == '{':
		return s.object(i, depth+1)
	case c == '[':
		return s.array(i, depth+1)
	case c == '"':
		return s.string(i)
	case c == 't':
		return s.literal(i, "true")
	case c == 'f':
		return s.literal(i, "false")
	case c == 'n':
		return s.literal(i, "null")
	case c == '-' || isDigit(c):
		return s.number(i)
	default:
		return 0, s.errorf(i, "invalid character %q looking for beginning of value", c)
	}
}

func (s *scanner) object(i, depth int) (int, error) {
	if depth > maxDepth {
		return 0, s.errorf(i, "exceeded max depth")
	}

	i = s.skipSpace(i + 1)
	if i >= len(s.buf) {
		return 0, ErrUnexpectedEnd
	}
	if s.buf[i] == '}' {
		return i + 1, nil
	}

	for {
		if s.buf[i] != '"' {
			return 0, s.errorf(i, "invalid character %q looking for beginning of object key string", s.buf[i])
		}
		end, err := s.string(i)
		if err != nil {
			return 0, err
		}

		i = s.skipSpace(end)
		if i >= len(s.buf) {
			return 0, ErrUnexpectedEnd
		}
		if s.buf[i] != ':' {
			return 0, s.errorf(i, "invalid character %q after object key", s.buf[i])
		}

		end, err = s.value(s.skipSpace(i+1), depth)
		if err != nil {
			return 0, err
		}

		i = s.skipSpace(end)
		if i >= len(s.buf) {
			return 0, ErrUnexpectedEnd
		}
		switch s.buf[i] {
		case '}':
			return i + 1, nil
		case ',':
			i = s.skipSpace(i + 1)
			if i >= len(s.buf) {
				return 0, ErrUnexpectedEnd
			}
		default:
			return 0, s.errorf(i, "invalid character %q after object key:value pair", s.buf[i])
		}
	}
}

func (s *scanner) array(i, depth int) (int, error) {
	if depth > maxDepth {
		return 0, s.errorf(i, "exceeded max depth")
	}

	i = s.skipSpace(i + 1)
	if i >= len(s.buf) {
		return 0, ErrUnexpectedEnd
	}
	if s.buf[i] == ']' {
		return i + 1, nil
	}

	for {
		end, err := s.value(i, depth)
		if err != nil {
			return 0, err
		}

		i = s.skipSpace(end)
		if i >= len(s.buf) {
			return 0, ErrUnexpectedEnd
		}
		switch s.buf[i] {
		case ']':
			return i + 1, nil
		case ',':
			i = s.skipSpace(i + 1)
		default:
			return 0, s.errorf(i, "invalid character %q after array element", s.buf[i])
		}
	}
}

// string returns the offset just past the string starting at the quote at i
func (s *scanner) string(i int) (int, error) {
	for i++; i < len(s.buf); i++ {
		switch c := s.buf[i]; {
		case c == '"':
			return i + 1, nil
		case c < 0x20:
			return 0, s.errorf(i, "invalid character %q in string literal", c)
		case c == '\\':
			i++
			if i >= len(s.buf) {
				return 0, ErrUnexpectedEnd
			}
			switch s.buf[i] {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
			case 'u':
				for range 4 {
					i++
					if i >= len(s.buf) {
						return 0, ErrUnexpectedEnd
					}
					if !isHex(s.buf[i]) {
						return 0, s.errorf(i, "invalid character %q in \\u hexadecimal character escape", s.buf[i])
					}
				}
			default:
				return 0, s.errorf(i, "invalid character %q in string escape code", s.buf[i])
			}
		}
	}

	return 0, ErrUnexpectedEnd
}

// number returns the offset just past the number starting at i.
// A digit directly after a leading zero is left for the caller to reject.
func (s *scanner) number(i int) (int, error) {
	if s.buf[i] == '-' {
		i++
		if i >= len(s.buf) {
			return 0, ErrUnexpectedEnd
		}
	}

	switch c := s.buf[i]; {
	case c == '0':
		i++
	case '1' <= c && c <= '9':
		i = s.digits(i + 1)
	default:
		return 0, s.errorf(i, "invalid character %q in numeric literal", c)
	}

	if i < len(s.buf) && s.buf[i] == '.' {
		i++
		if i >= len(s.buf) {
			return 0, ErrUnexpectedEnd
		}
		if !isDigit(s.buf[i]) {
			return 0, s.errorf(i, "invalid character %q after decimal point in numeric literal", s.buf[i])
		}
		i = s.digits(i)
	}

	if i < len(s.buf) && (s.buf[i] == 'e' || s.buf[i] == 'E') {
		i++
		if i < len(s.buf) && (s.buf[i] == '+' || s.buf[i] == '-') {
			i++
		}
		if i >= len(s.buf) {
			return 0, ErrUnexpectedEnd
		}
		if !isDigit(s.buf[i]) {
			return 0, s.errorf(i, "invalid character %q in exponent of numeric literal", s.buf[i])
		}
		i = s.digits(i)
	}

	return i, nil
}

func (s *scanner) digits(i int) int {
	for i < len(s.buf) && isDigit(s.buf[i]) {
		i++
	}
	return i
}

func (s *scanner) literal(i int, lit string) (int, error) {
	for k := range len(lit) {
		if i+k >= len(s.buf) {
			return 0, ErrUnexpectedEnd
		}
		if s.buf[i+k] != lit[k] {
			return 0, s.errorf(i+k, "invalid character %q in literal %s (expecting %q)", s.buf[i+k], lit, lit[k])
		}
	}

	return i + len(lit), nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHex(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// endsElement reports whether c may directly follow an element of the top-level array
func endsElement(c byte) bool {
	return isSpace(c) || c == ',' || c == ']'
}

func byteKind(c byte) Kind {
	switch {
	case c == '[':
		return KindArray
	case c == '{':
		return KindObject
	case c == '"':
		return KindString
	case c == 't' || c == 'f':
		return KindBool
	case c == 'n':
		return KindNull
	case c == '-' || isDigit(c):
		return KindNumber
	default:
		return KindInvalid
	}
}
