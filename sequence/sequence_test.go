package sequence

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var parserFactories = []struct {
	name string
	new  func(input string) Parser
}{
	{
		name: "stream",
		new: func(input string) Parser {
			return NewStreamParser(strings.NewReader(input))
		},
	},
	{
		name: "buffer",
		new: func(input string) Parser {
			return NewBufferParser([]byte(input))
		},
	},
}

func TestForEach(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		want     []any
		wantErr  func(t *testing.T, err error)
		wantDone int
	}{
		{
			name:  "empty array",
			input: `[]`,
			want:  nil,
		},
		{
			name:  "empty array with whitespace",
			input: " \n\t[ \r\n ]\n",
			want:  nil,
		},
		{
			name:     "scalars",
			input:    `[1, "a", null, true, false, -2.5e3]`,
			want:     []any{float64(1), "a", nil, true, false, float64(-2500)},
			wantDone: 6,
		},
		{
			name:     "nested values",
			input:    `[{"k":[1,{"x":[]}]}, [[], {}]]`,
			want:     []any{map[string]any{"k": []any{float64(1), map[string]any{"x": []any{}}}}, []any{[]any{}, map[string]any{}}},
			wantDone: 2,
		},
		{
			name:     "strings containing structural characters",
			input:    `["]", "[{,}", "quote \" inside", "back\\slash\\"]`,
			want:     []any{"]", "[{,}", `quote " inside`, `back\slash\`},
			wantDone: 4,
		},
		{
			name:  "top-level object",
			input: `{}`,
			wantErr: func(t *testing.T, err error) {
				assertTypeMismatch(t, err, KindObject)
			},
		},
		{
			name:  "top-level string",
			input: `"x"`,
			wantErr: func(t *testing.T, err error) {
				assertTypeMismatch(t, err, KindString)
			},
		},
		{
			name:  "top-level number",
			input: `42`,
			wantErr: func(t *testing.T, err error) {
				assertTypeMismatch(t, err, KindNumber)
			},
		},
		{
			name:  "top-level null",
			input: `null`,
			wantErr: func(t *testing.T, err error) {
				assertTypeMismatch(t, err, KindNull)
			},
		},
		{
			name:  "empty input",
			input: "  \n",
			wantErr: func(t *testing.T, err error) {
				if !errors.Is(err, ErrUnexpectedEnd) {
					t.Errorf("expected ErrUnexpectedEnd, got %v", err)
				}
			},
		},
		{
			name:  "invalid first character",
			input: `x[]`,
			wantErr: func(t *testing.T, err error) {
				var mismatch *TypeMismatchError
				if err == nil || errors.As(err, &mismatch) {
					t.Errorf("expected syntax error, got %v", err)
				}
			},
		},
		{
			name:  "truncated array",
			input: `[1, 2`,
			want:  []any{float64(1), float64(2)},
			wantErr: func(t *testing.T, err error) {
				if !errors.Is(err, ErrUnexpectedEnd) {
					t.Errorf("expected ErrUnexpectedEnd, got %v", err)
				}
			},
			wantDone: 2,
		},
		{
			name:  "malformed element stops the run",
			input: `[1, 2, {"a":}, 4]`,
			want:  []any{float64(1), float64(2)},
			wantErr: func(t *testing.T, err error) {
				var decodeErr *DecodeError
				if !errors.As(err, &decodeErr) {
					t.Fatalf("expected DecodeError, got %v", err)
				}
				if decodeErr.Index != 2 {
					t.Errorf("decode error index = %d, want 2", decodeErr.Index)
				}
			},
			wantDone: 2,
		},
		{
			name:  "trailing data",
			input: `[1] 2`,
			want:  []any{float64(1)},
			wantErr: func(t *testing.T, err error) {
				if !errors.Is(err, ErrTrailingData) {
					t.Errorf("expected ErrTrailingData, got %v", err)
				}
			},
			wantDone: 1,
		},
	}

	for _, factory := range parserFactories {
		for _, tt := range tests {
			t.Run(factory.name+"/"+tt.name, func(t *testing.T) {
				t.Parallel()

				var got []any
				n, err := ForEach(factory.new(tt.input), func(v any) error {
					got = append(got, v)
					return nil
				})

				if tt.wantErr != nil {
					if err == nil {
						t.Fatal("expected error but got nil")
					}
					tt.wantErr(t, err)
				} else if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				if n != tt.wantDone {
					t.Errorf("handled count = %d, want %d", n, tt.wantDone)
				}
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("elements mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func assertTypeMismatch(t *testing.T, err error, found Kind) {
	t.Helper()

	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError, got %v", err)
	}
	if mismatch.Found != found {
		t.Errorf("found kind = %s, want %s", mismatch.Found, found)
	}
	if !strings.Contains(err.Error(), "expected a nonempty sequence") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestForEach_handlerError(t *testing.T) {
	t.Parallel()

	for _, factory := range parserFactories {
		t.Run(factory.name, func(t *testing.T) {
			t.Parallel()

			handlerErr := errors.New("write failed")
			var got []float64
			n, err := ForEach(factory.new(`[1, 2, 3, {"a":}]`), func(v float64) error {
				if v == 2 {
					return handlerErr
				}
				got = append(got, v)
				return nil
			})

			var he *HandlerError
			if !errors.As(err, &he) {
				t.Fatalf("expected HandlerError, got %v", err)
			}
			if he.Index != 1 {
				t.Errorf("handler error index = %d, want 1", he.Index)
			}
			if !errors.Is(err, handlerErr) {
				t.Errorf("handler error is not wrapped: %v", err)
			}
			if n != 1 {
				t.Errorf("handled count = %d, want 1", n)
			}
			if diff := cmp.Diff([]float64{1}, got); diff != "" {
				t.Errorf("elements mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

type person struct {
	Name *string `json:"name"`
	Age  *int    `json:"age"`
}

func TestIterator_freshValuePerElement(t *testing.T) {
	t.Parallel()

	for _, factory := range parserFactories {
		t.Run(factory.name, func(t *testing.T) {
			t.Parallel()

			it := New[person](factory.new(`[{"name":"a","age":3}, {"name":"b"}, {}]`))

			var got []person
			for it.Next() {
				got = append(got, it.Value())
			}
			if err := it.Err(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := []person{
				{Name: ptr("a"), Age: ptr(3)},
				{Name: ptr("b")},
				{},
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("elements mismatch (-want +got):\n%s", diff)
			}
			if it.Count() != 3 {
				t.Errorf("count = %d, want 3", it.Count())
			}

			if it.Next() {
				t.Error("Next returned true after the end of the array")
			}
			if diff := cmp.Diff(person{}, it.Value()); diff != "" {
				t.Errorf("value after end is not zero (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIterator_All(t *testing.T) {
	t.Parallel()

	for _, factory := range parserFactories {
		t.Run(factory.name, func(t *testing.T) {
			t.Parallel()

			it := New[int](factory.new(`[10, 20, 30, 40]`))

			var indexes, values []int
			for i, v := range it.All() {
				indexes = append(indexes, i)
				values = append(values, v)
				if v == 30 {
					break
				}
			}

			if diff := cmp.Diff([]int{0, 1, 2}, indexes); diff != "" {
				t.Errorf("indexes mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]int{10, 20, 30}, values); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}

			// the iterator resumes where the loop stopped
			if !it.Next() || it.Value() != 40 {
				t.Errorf("expected to resume at 40, got %d", it.Value())
			}
			if it.Next() {
				t.Error("expected end of array")
			}
			if err := it.Err(); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestIterator_lazyOpen(t *testing.T) {
	t.Parallel()

	p := &countingParser{Parser: NewBufferParser([]byte(`[1]`))}
	it := New[int](p)
	if p.opens != 0 {
		t.Fatal("New must not read from the parser")
	}

	for it.Next() {
	}
	it.Next()
	if p.opens != 1 {
		t.Errorf("Open called %d times, want 1", p.opens)
	}
	if p.decodes != 1 {
		t.Errorf("Decode called %d times, want 1", p.decodes)
	}
}

type countingParser struct {
	Parser
	opens   int
	decodes int
}

func (p *countingParser) Open() (Kind, error) {
	p.opens++
	return p.Parser.Open()
}

func (p *countingParser) Decode(v any) error {
	p.decodes++
	return p.Parser.Decode(v)
}

func TestWithExpecting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		expecting string
		want      string
	}{
		{
			name: "default",
			want: "invalid type: object, expected a nonempty sequence",
		},
		{
			name:      "custom",
			expecting: "a nonempty sequence of Deaths records",
			want:      "invalid type: object, expected a nonempty sequence of Deaths records",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ForEach(NewStreamParser(bytes.NewBufferString(`{"a":1}`)), func(any) error {
				t.Error("handler must not be called")
				return nil
			}, WithExpecting(tt.expecting))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	want := map[Kind]string{
		KindInvalid: "invalid",
		KindArray:   "array",
		KindObject:  "object",
		KindString:  "string",
		KindNumber:  "number",
		KindBool:    "boolean",
		KindNull:    "null",
	}
	for kind, name := range want {
		if kind.String() != name {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, kind.String(), name)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
