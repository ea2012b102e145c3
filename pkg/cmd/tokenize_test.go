package cmd

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"spaces only", "   \t ", []string{}},
		{"plain words", "foo bar  baz", []string{"foo", "bar", "baz"}},
		{"quoted span", `foo "bar baz" qux`, []string{"foo", "bar baz", "qux"}},
		{"empty quotes", `say ""`, []string{"say", ""}},
		{"quote glued to word", `ab"cd ef"`, []string{"ab", "cd ef"}},
		{"unterminated quote", `say "hello world`, []string{"say", `"hello`, "world"}},
		{"unicode whitespace", "a\u00a0b", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texts(Tokenize(tt.input))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTokenizeOffsets(t *testing.T) {
	input := `echo  "a b"  c`
	tokens := Tokenize(input)

	want := []Token{
		{Text: "echo", Index: 0, Length: 4},
		{Text: "a b", Index: 6, Length: 5, Quoted: true},
		{Text: "c", Index: 13, Length: 1},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	for _, tok := range tokens {
		raw := input[tok.Index : tok.Index+tok.Length]
		if tok.Quoted {
			assert.Equal(t, `"`+tok.Text+`"`, raw)
		} else {
			assert.Equal(t, tok.Text, raw)
		}
	}
}
