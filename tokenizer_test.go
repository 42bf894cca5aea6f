package calchub

import (
	"errors"
	"io"
	"testing"
)

func scanAll(t *testing.T, input string) []Token {
	t.Helper()
	tz := NewTokenizer(input)
	var tokens []Token
	for {
		tok, err := tz.Next()
		if errors.Is(err, io.EOF) {
			return tokens
		}
		if err != nil {
			t.Fatalf("Next() on %q: %v", input, err)
		}
		tokens = append(tokens, tok)
	}
}

func TestTokenizerScansOperators(t *testing.T) {
	tokens := scanAll(t, "+ - * / ( )")
	want := []TokenKind{TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenLeftParen, TokenRightParen}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, kind := range want {
		if tokens[i].Kind != kind {
			t.Errorf("token %d = %v, want %v", i, tokens[i].Kind, kind)
		}
	}
}

func TestTokenizerScansNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"0", 0},
		{"7", 7},
		{"42", 42},
		{"12.34", 12.34},
		{"3.0", 3},
		{"0.25", 0.25},
	}

	for _, tt := range tests {
		tokens := scanAll(t, tt.input)
		if len(tokens) != 1 {
			t.Fatalf("scan %q: got %d tokens, want 1", tt.input, len(tokens))
		}
		tok := tokens[0]
		if tok.Kind != TokenNumber || tok.Value != tt.want {
			t.Errorf("scan %q = %v (value %v), want number %v", tt.input, tok.Kind, tok.Value, tt.want)
		}
		if tok.Text != tt.input {
			t.Errorf("scan %q kept text %q", tt.input, tok.Text)
		}
	}
}

func TestTokenizerSkipsOnlySpaces(t *testing.T) {
	tokens := scanAll(t, "  1   +  2 ")
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3", len(tokens))
	}

	// Tab is not a separator; it is an invalid character like any other.
	tz := NewTokenizer("1\t2")
	if _, err := tz.Next(); err != nil {
		t.Fatalf("first token: %v", err)
	}
	_, err := tz.Next()
	var invalid *InvalidCharacterError
	if !errors.As(err, &invalid) {
		t.Fatalf("scan tab: got %v, want InvalidCharacterError", err)
	}
	if invalid.Char != '\t' {
		t.Errorf("invalid char = %q, want tab", invalid.Char)
	}
}

func TestTokenizerEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   "} {
		tz := NewTokenizer(input)
		if _, err := tz.Next(); !errors.Is(err, io.EOF) {
			t.Errorf("Next() on %q = %v, want io.EOF", input, err)
		}
	}
}

func TestTokenizerInvalidCharacter(t *testing.T) {
	tests := []struct {
		input string
		want  rune
	}{
		{"#", '#'},
		{"a", 'a'},
		{".5", '.'},
		{"%", '%'},
	}

	for _, tt := range tests {
		tz := NewTokenizer(tt.input)
		_, err := tz.Next()
		var invalid *InvalidCharacterError
		if !errors.As(err, &invalid) {
			t.Fatalf("scan %q: got %v, want InvalidCharacterError", tt.input, err)
		}
		if invalid.Char != tt.want {
			t.Errorf("scan %q reported %q, want %q", tt.input, invalid.Char, tt.want)
		}
		if got := err.Error(); got != "Unexpected token '"+string(tt.want)+"'" {
			t.Errorf("scan %q message %q", tt.input, got)
		}
	}
}

func TestTokenizerInvalidNumber(t *testing.T) {
	tests := []struct {
		input   string
		literal string
	}{
		{"1....", "1...."},
		{"1.324.3", "1.324.3"},
		{"1..", "1.."},
		{"5.5.5", "5.5.5"},
	}

	for _, tt := range tests {
		tz := NewTokenizer(tt.input)
		_, err := tz.Next()
		var invalid *InvalidNumberError
		if !errors.As(err, &invalid) {
			t.Fatalf("scan %q: got %v, want InvalidNumberError", tt.input, err)
		}
		if invalid.Literal != tt.literal {
			t.Errorf("scan %q accumulated %q, want %q", tt.input, invalid.Literal, tt.literal)
		}
		if err.Error() != "Invalid number format" {
			t.Errorf("scan %q message %q", tt.input, err.Error())
		}
	}
}

func TestTokenizerErrorIsSticky(t *testing.T) {
	tz := NewTokenizer("# 1 + 2")
	_, first := tz.Next()
	if first == nil {
		t.Fatal("expected scan error")
	}
	_, second := tz.Next()
	if second != first {
		t.Errorf("second Next() = %v, want the first error again", second)
	}
}

func TestTokenizerFullExpression(t *testing.T) {
	tokens := scanAll(t, "(1 + 2) * (10 / 5)")
	want := []TokenKind{
		TokenLeftParen, TokenNumber, TokenPlus, TokenNumber, TokenRightParen,
		TokenStar,
		TokenLeftParen, TokenNumber, TokenSlash, TokenNumber, TokenRightParen,
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, kind := range want {
		if tokens[i].Kind != kind {
			t.Errorf("token %d = %v, want %v", i, tokens[i].Kind, kind)
		}
	}
}
