package sequence

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestForEach_syntaxErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		wantValues []int
		wantOffset int64
	}{
		{
			name:       "missing comma",
			input:      `[1 2]`,
			wantValues: []int{1},
			wantOffset: 3,
		},
		{
			name:       "trailing comma",
			input:      `[1,]`,
			wantValues: []int{1},
			wantOffset: 3,
		},
		{
			name:       "leading comma",
			input:      `[,1]`,
			wantOffset: 1,
		},
		{
			name:       "double comma",
			input:      `[1,,2]`,
			wantValues: []int{1},
			wantOffset: 3,
		},
		{
			name:       "adjacent objects",
			input:      `[{"a":1}{"b":2}]`,
			wantOffset: 8,
		},
		{
			name:       "garbage after number",
			input:      `[1x]`,
			wantOffset: 2,
		},
		{
			name:       "leading zero",
			input:      `[01]`,
			wantOffset: 2,
		},
		{
			name:       "leading zero after valid elements",
			input:      `[1, 2, 007]`,
			wantValues: []int{1, 2},
			wantOffset: 8,
		},
		{
			name:       "bare minus",
			input:      `[-]`,
			wantOffset: 2,
		},
		{
			name:       "quote after number",
			input:      `[1"a"]`,
			wantOffset: 2,
		},
		{
			name:       "truncated literal",
			input:      `[tr]`,
			wantOffset: 3,
		},
		{
			name:       "closing bracket at top level",
			input:      `]`,
			wantOffset: 0,
		},
	}

	for _, factory := range parserFactories {
		for _, tt := range tests {
			t.Run(factory.name+"/"+tt.name, func(t *testing.T) {
				t.Parallel()

				var got []int
				_, err := ForEach(factory.new(tt.input), func(v int) error {
					got = append(got, v)
					return nil
				})

				var syntaxErr *SyntaxError
				if !errors.As(err, &syntaxErr) {
					t.Fatalf("expected SyntaxError, got %v", err)
				}
				if syntaxErr.Offset != tt.wantOffset {
					t.Errorf("offset = %d, want %d (%v)", syntaxErr.Offset, tt.wantOffset, err)
				}
				if diff := cmp.Diff(tt.wantValues, got); diff != "" {
					t.Errorf("values mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestForEach_unterminated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "unterminated string", input: `["abc`},
		{name: "unterminated escape", input: `["abc\`},
		{name: "unterminated object", input: `[{"a":[1,2]`},
		{name: "unterminated literal", input: `[nul`},
		{name: "unterminated exponent", input: `[1e`},
	}

	for _, factory := range parserFactories {
		for _, tt := range tests {
			t.Run(factory.name+"/"+tt.name, func(t *testing.T) {
				t.Parallel()

				_, err := ForEach(factory.new(tt.input), func(any) error {
					t.Error("handler must not be called")
					return nil
				})
				if !errors.Is(err, ErrUnexpectedEnd) {
					t.Errorf("expected ErrUnexpectedEnd, got %v", err)
				}
			})
		}
	}
}

func TestValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		wantErr bool
	}{
		{input: `0`},
		{input: `-0.5e-3`},
		{input: `1E+9`},
		{input: ` {"a":[true,false,null],"b":{"c":"é\n"}} `},
		{input: `[]`},
		{input: `""`},
		{input: `01`, wantErr: true},
		{input: `1.`, wantErr: true},
		{input: `.5`, wantErr: true},
		{input: `+1`, wantErr: true},
		{input: `1e`, wantErr: true},
		{input: `NaN`, wantErr: true},
		{input: `tru`, wantErr: true},
		{input: `"a\x"`, wantErr: true},
		{input: `"\u12G4"`, wantErr: true},
		{input: "\"tab\there\"", wantErr: true},
		{input: `{"a" 1}`, wantErr: true},
		{input: `{"a":1,}`, wantErr: true},
		{input: `{1:1}`, wantErr: true},
		{input: `[1,]`, wantErr: true},
		{input: `1 2`, wantErr: true},
		{input: ``, wantErr: true},
		{input: strings.Repeat("[", maxDepth+1) + strings.Repeat("]", maxDepth+1), wantErr: true},
	}

	for _, tt := range tests {
		name := tt.input
		if len(name) > 32 {
			name = name[:32]
		}
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := Valid([]byte(tt.input))
			if tt.wantErr && err == nil {
				t.Error("expected error but got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestStreamParser_longString(t *testing.T) {
	t.Parallel()

	// longer than the read buffer, with an escaped quote across the refill
	long := strings.Repeat("x", streamBufferSize+10) + `\"` + strings.Repeat("y", streamBufferSize)
	input := `["` + long + `", "short"]`

	p := NewStreamParser(strings.NewReader(input))
	var got []string
	_, err := ForEach(p, func(v string) error {
		got = append(got, v)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{strings.ReplaceAll(long, `\"`, `"`), "short"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if p.Offset() != int64(len(input)) {
		t.Errorf("offset = %d, want %d", p.Offset(), len(input))
	}
}
