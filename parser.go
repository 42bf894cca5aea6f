package calchub

import (
	"errors"
	"io"
)

// SyntaxError is a grammar violation found while parsing.
type SyntaxError struct {
	Message string
}

func (e *SyntaxError) Error() string {
	return "Syntax error: " + e.Message
}

// UnexpectedTokenError wraps a scan failure surfaced at parser
// construction. It renders with the same prefix as SyntaxError, so the
// two are told apart by type, not by message.
type UnexpectedTokenError struct {
	Cause TokenizingError
}

func (e *UnexpectedTokenError) Error() string {
	return "Syntax error: " + e.Cause.Error()
}

func (e *UnexpectedTokenError) Unwrap() error {
	return e.Cause
}

// Parser builds an Expression tree from an input string by recursive
// descent over this grammar, with left-associative binary operators:
//
//	expression = term
//	term       = factor ( ("+" | "-") factor )*
//	factor     = unary  ( ("*" | "/") unary  )*
//	unary      = "-" unary | primary
//	primary    = NUMBER | "(" expression ")"
//
// A parser is single use: construction tokenizes the whole input, Parse
// scans the token slice once and the cursor never moves backward.
type Parser struct {
	tokens   []Token
	pos      int
	brackets int
}

// NewParser tokenizes expression eagerly. The first scan error aborts
// construction, wrapped as *UnexpectedTokenError, so Parse never sees a
// bad token stream.
func NewParser(expression string) (*Parser, error) {
	tz := NewTokenizer(expression)
	var tokens []Token
	for {
		tok, err := tz.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var terr TokenizingError
			if errors.As(err, &terr) {
				return nil, &UnexpectedTokenError{Cause: terr}
			}
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return &Parser{tokens: tokens}, nil
}

// Parse returns the expression tree for the input.
func (p *Parser) Parse() (Expression, error) {
	return p.expression()
}

func (p *Parser) expression() (Expression, error) {
	return p.term()
}

func (p *Parser) term() (Expression, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.peek()
		if !ok {
			break
		}
		switch {
		case tok.Kind == TokenPlus:
			p.consume()
			right, err := p.factor()
			if err != nil {
				return nil, err
			}
			expr = Add{Left: expr, Right: right}
		case tok.Kind == TokenMinus:
			p.consume()
			right, err := p.factor()
			if err != nil {
				return nil, err
			}
			expr = Subtract{Left: expr, Right: right}
		case tok.Kind == TokenRightParen && p.brackets == 0:
			return nil, &SyntaxError{Message: "Too many ')'."}
		case tok.Kind == TokenLeftParen && p.brackets == 0:
			// An opening bracket right after a complete operand, as in
			// "2(3". Adjacency is not implicit multiplication here.
			return nil, &SyntaxError{Message: "Unexpected '('."}
		default:
			return expr, nil
		}
	}
	return expr, nil
}

func (p *Parser) factor() (Expression, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.peek()
		if !ok {
			break
		}
		switch {
		case tok.Kind == TokenStar:
			p.consume()
			right, err := p.unary()
			if err != nil {
				return nil, err
			}
			expr = Multiply{Left: expr, Right: right}
		case tok.Kind == TokenSlash:
			p.consume()
			right, err := p.unary()
			if err != nil {
				return nil, err
			}
			expr = Divide{Left: expr, Right: right}
		case tok.Kind == TokenRightParen && p.brackets == 0:
			return nil, &SyntaxError{Message: "Too many ')'."}
		default:
			return expr, nil
		}
	}
	return expr, nil
}

func (p *Parser) unary() (Expression, error) {
	if tok, ok := p.peek(); ok && tok.Kind == TokenMinus {
		p.consume()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return Negate{Operand: operand}, nil
	}
	return p.primary()
}

func (p *Parser) primary() (Expression, error) {
	tok, ok := p.next()
	if !ok {
		return nil, &SyntaxError{Message: "Expected number or '('."}
	}
	switch tok.Kind {
	case TokenNumber:
		return Number{Value: tok.Value}, nil
	case TokenLeftParen:
		p.brackets++
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.consumeRightParen(); err != nil {
			return nil, err
		}
		return Grouping{Operand: inner}, nil
	default:
		return nil, &SyntaxError{Message: "Expected number or '('."}
	}
}

func (p *Parser) consumeRightParen() error {
	if tok, ok := p.next(); ok && tok.Kind == TokenRightParen {
		p.brackets--
		return nil
	}
	return &SyntaxError{Message: "Expect ')' after expression."}
}

func (p *Parser) isAtEnd() bool {
	return p.pos >= len(p.tokens)
}

// peek returns the current token without consuming it.
func (p *Parser) peek() (Token, bool) {
	if p.isAtEnd() {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

// next returns the current token and advances past it.
func (p *Parser) next() (Token, bool) {
	tok, ok := p.peek()
	p.pos++
	return tok, ok
}

func (p *Parser) consume() {
	if !p.isAtEnd() {
		p.pos++
	}
}
