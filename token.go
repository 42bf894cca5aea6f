package calchub

import "fmt"

// TokenKind identifies the kind of a scanned token.
type TokenKind int

const (
	TokenNumber TokenKind = iota
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenLeftParen
	TokenRightParen
)

func (k TokenKind) String() string {
	switch k {
	case TokenNumber:
		return "number"
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenLeftParen:
		return "("
	case TokenRightParen:
		return ")"
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a single scanned token. Value is set only for TokenNumber;
// Text is the source text the token was scanned from.
type Token struct {
	Kind  TokenKind
	Value float64
	Text  string
}

func (t Token) String() string {
	if t.Kind == TokenNumber {
		return fmt.Sprintf("number(%s)", t.Text)
	}
	return t.Kind.String()
}

// TokenizingError is the error family produced while scanning. The two
// implementations are InvalidCharacterError and InvalidNumberError.
type TokenizingError interface {
	error
	tokenizingError()
}

// InvalidCharacterError reports a character the scanner has no rule for.
type InvalidCharacterError struct {
	Char rune
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("Unexpected token '%c'", e.Char)
}

func (e *InvalidCharacterError) tokenizingError() {}

// InvalidNumberError reports a number literal that failed to parse.
// Literal carries the rejected text for diagnostics; the message is fixed.
type InvalidNumberError struct {
	Literal string
}

func (e *InvalidNumberError) Error() string {
	return "Invalid number format"
}

func (e *InvalidNumberError) tokenizingError() {}

var (
	_ TokenizingError = (*InvalidCharacterError)(nil)
	_ TokenizingError = (*InvalidNumberError)(nil)
)
