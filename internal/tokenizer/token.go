package tokenizer

import "strings"

// Token is a maximal run of non-whitespace characters plus the
// whitespace that follows it. Concatenating String() over a split
// reproduces the input byte for byte, which is what lets extracted
// object bodies keep their exact dump formatting.
type Token struct {
	// Text is the non-whitespace run. Empty only for the first token
	// of an input that starts with whitespace.
	Text string

	// Trailing is the whitespace run following Text, possibly empty
	// for the final token.
	Trailing string

	// Line is the 1-based line number where Text starts.
	Line int
}

// String returns the token's exact contribution to the original input.
func (t Token) String() string {
	return t.Text + t.Trailing
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// Split breaks input into tokens. The concatenation of all tokens'
// String() values equals input exactly.
func Split(input string) []Token {
	var tokens []Token
	line := 1
	i := 0

	// Leading whitespace is carried by a synthetic empty-text token so
	// the round-trip property holds.
	if i < len(input) && isSpace(input[i]) {
		start := i
		for i < len(input) && isSpace(input[i]) {
			i++
		}
		tokens = append(tokens, Token{Trailing: input[start:i], Line: line})
		line += strings.Count(input[start:i], "\n")
	}

	for i < len(input) {
		textStart := i
		for i < len(input) && !isSpace(input[i]) {
			i++
		}
		text := input[textStart:i]
		tokenLine := line

		spaceStart := i
		for i < len(input) && isSpace(input[i]) {
			i++
		}
		trailing := input[spaceStart:i]

		tokens = append(tokens, Token{Text: text, Trailing: trailing, Line: tokenLine})
		line += strings.Count(trailing, "\n")
	}
	return tokens
}
