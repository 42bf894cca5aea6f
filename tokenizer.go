package calchub

import (
	"io"
	"strconv"
	"unicode/utf8"
)

// Tokenizer scans an expression string one token at a time. It is a
// single-pass scanner: Next returns io.EOF once the input is exhausted,
// and after any scan error every later call returns that same error.
type Tokenizer struct {
	input string
	pos   int
	err   error
}

// NewTokenizer returns a tokenizer over input.
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// Next scans and returns the next token. Only the space character
// separates tokens; any other unrecognized character is an error.
// io.EOF signals clean exhaustion.
func (t *Tokenizer) Next() (Token, error) {
	if t.err != nil {
		return Token{}, t.err
	}

	for t.pos < len(t.input) && t.input[t.pos] == ' ' {
		t.pos++
	}
	if t.pos >= len(t.input) {
		return Token{}, io.EOF
	}

	ch := t.input[t.pos]
	switch ch {
	case '+':
		return t.operator(TokenPlus), nil
	case '-':
		return t.operator(TokenMinus), nil
	case '*':
		return t.operator(TokenStar), nil
	case '/':
		return t.operator(TokenSlash), nil
	case '(':
		return t.operator(TokenLeftParen), nil
	case ')':
		return t.operator(TokenRightParen), nil
	}

	if isDigit(ch) {
		return t.scanNumber()
	}

	r, _ := utf8.DecodeRuneInString(t.input[t.pos:])
	t.err = &InvalidCharacterError{Char: r}
	return Token{}, t.err
}

func (t *Tokenizer) operator(kind TokenKind) Token {
	tok := Token{Kind: kind, Text: t.input[t.pos : t.pos+1]}
	t.pos++
	return tok
}

// scanNumber greedily consumes digits and dots into one candidate literal
// and lets the float parse decide validity. "1.324.3" is therefore a
// single invalid literal, not a number followed by garbage.
func (t *Tokenizer) scanNumber() (Token, error) {
	start := t.pos
	t.pos++
	for t.pos < len(t.input) && (isDigit(t.input[t.pos]) || t.input[t.pos] == '.') {
		t.pos++
	}
	lit := t.input[start:t.pos]

	value, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		t.err = &InvalidNumberError{Literal: lit}
		return Token{}, t.err
	}
	return Token{Kind: TokenNumber, Value: value, Text: lit}, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
