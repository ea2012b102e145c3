package cmd

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is one unit of a message. Index and Length locate the raw match,
// quotes included, in the tokenized string.
type Token struct {
	Text   string
	Index  int
	Length int
	Quoted bool
}

// Tokenize splits s on whitespace, keeping double-quoted spans together.
// There are no escape sequences; a quote without a closing partner is kept
// as an ordinary character.
func Tokenize(s string) []Token {
	var tokens []Token
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == '"':
			if end := strings.IndexByte(s[i+1:], '"'); end >= 0 {
				tokens = append(tokens, Token{
					Text:   s[i+1 : i+1+end],
					Index:  i,
					Length: end + 2,
					Quoted: true,
				})
				i += end + 2
				continue
			}
			j := scanWord(s, i+1)
			tokens = append(tokens, Token{Text: s[i:j], Index: i, Length: j - i})
			i = j
		default:
			j := scanWord(s, i)
			tokens = append(tokens, Token{Text: s[i:j], Index: i, Length: j - i})
			i = j
		}
	}
	return tokens
}

// scanWord returns the end of the run of non-space, non-quote runes starting at i.
func scanWord(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) || r == '"' {
			break
		}
		i += size
	}
	return i
}
