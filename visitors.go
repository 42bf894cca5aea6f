package calchub

import (
	"fmt"
	"strconv"
)

// ExpressionVisitor computes a value of type T over an expression tree.
// Implementing this interface is how new operations over trees are added;
// VisitExpression performs the dispatch.
type ExpressionVisitor[T any] interface {
	VisitNumber(value float64) (T, error)
	VisitAdd(left, right Expression) (T, error)
	VisitSubtract(left, right Expression) (T, error)
	VisitMultiply(left, right Expression) (T, error)
	VisitDivide(left, right Expression) (T, error)
	VisitNegate(operand Expression) (T, error)
	VisitGrouping(operand Expression) (T, error)
}

// VisitExpression dispatches expr to the matching visitor method.
func VisitExpression[T any](v ExpressionVisitor[T], expr Expression) (T, error) {
	switch e := expr.(type) {
	case Number:
		return v.VisitNumber(e.Value)
	case Add:
		return v.VisitAdd(e.Left, e.Right)
	case Subtract:
		return v.VisitSubtract(e.Left, e.Right)
	case Multiply:
		return v.VisitMultiply(e.Left, e.Right)
	case Divide:
		return v.VisitDivide(e.Left, e.Right)
	case Negate:
		return v.VisitNegate(e.Operand)
	case Grouping:
		return v.VisitGrouping(e.Operand)
	}
	panic(fmt.Sprintf("calchub: unhandled expression type %T", expr))
}

// EvaluatorError is an arithmetic failure during evaluation. Division by
// zero is the only one this package produces.
type EvaluatorError struct {
	Message string
}

func (e *EvaluatorError) Error() string {
	return e.Message
}

// Evaluator computes the numeric value of an expression tree in float64
// arithmetic.
type Evaluator struct{}

func (v *Evaluator) VisitNumber(value float64) (float64, error) {
	return value, nil
}

func (v *Evaluator) VisitAdd(left, right Expression) (float64, error) {
	l, r, err := v.operands(left, right)
	if err != nil {
		return 0, err
	}
	return l + r, nil
}

func (v *Evaluator) VisitSubtract(left, right Expression) (float64, error) {
	l, r, err := v.operands(left, right)
	if err != nil {
		return 0, err
	}
	return l - r, nil
}

func (v *Evaluator) VisitMultiply(left, right Expression) (float64, error) {
	l, r, err := v.operands(left, right)
	if err != nil {
		return 0, err
	}
	return l * r, nil
}

// VisitDivide checks the divisor before touching the dividend, so "1/0"
// reports division by zero even when the dividend would itself fail.
// Each operand is evaluated at most once.
func (v *Evaluator) VisitDivide(left, right Expression) (float64, error) {
	r, err := VisitExpression[float64](v, right)
	if err != nil {
		return 0, err
	}
	if r == 0.0 {
		return 0, &EvaluatorError{Message: "Division by zero"}
	}
	l, err := VisitExpression[float64](v, left)
	if err != nil {
		return 0, err
	}
	return l / r, nil
}

func (v *Evaluator) VisitNegate(operand Expression) (float64, error) {
	val, err := VisitExpression[float64](v, operand)
	if err != nil {
		return 0, err
	}
	return -val, nil
}

func (v *Evaluator) VisitGrouping(operand Expression) (float64, error) {
	return VisitExpression[float64](v, operand)
}

// operands evaluates left then right, propagating the first error.
func (v *Evaluator) operands(left, right Expression) (float64, float64, error) {
	l, err := VisitExpression[float64](v, left)
	if err != nil {
		return 0, 0, err
	}
	r, err := VisitExpression[float64](v, right)
	if err != nil {
		return 0, 0, err
	}
	return l, r, nil
}

// PrettyPrinter renders an expression tree back to infix text. Binary
// operators are spaced, negation is not, and grouping restores its
// parentheses, so a tree parsed from single-spaced input prints back to
// the original string. It never returns an error.
type PrettyPrinter struct{}

func (v *PrettyPrinter) VisitNumber(value float64) (string, error) {
	return formatNumber(value), nil
}

func (v *PrettyPrinter) VisitAdd(left, right Expression) (string, error) {
	return v.binary(left, "+", right)
}

func (v *PrettyPrinter) VisitSubtract(left, right Expression) (string, error) {
	return v.binary(left, "-", right)
}

func (v *PrettyPrinter) VisitMultiply(left, right Expression) (string, error) {
	return v.binary(left, "*", right)
}

func (v *PrettyPrinter) VisitDivide(left, right Expression) (string, error) {
	return v.binary(left, "/", right)
}

func (v *PrettyPrinter) VisitNegate(operand Expression) (string, error) {
	s, err := VisitExpression[string](v, operand)
	if err != nil {
		return "", err
	}
	return "-" + s, nil
}

func (v *PrettyPrinter) VisitGrouping(operand Expression) (string, error) {
	s, err := VisitExpression[string](v, operand)
	if err != nil {
		return "", err
	}
	return "(" + s + ")", nil
}

func (v *PrettyPrinter) binary(left Expression, op string, right Expression) (string, error) {
	l, err := VisitExpression[string](v, left)
	if err != nil {
		return "", err
	}
	r, err := VisitExpression[string](v, right)
	if err != nil {
		return "", err
	}
	return l + " " + op + " " + r, nil
}

// Evaluate computes the numeric value of expr.
func Evaluate(expr Expression) (float64, error) {
	return VisitExpression[float64](&Evaluator{}, expr)
}

// Render returns the infix text form of expr.
func Render(expr Expression) string {
	s, _ := VisitExpression[string](&PrettyPrinter{}, expr)
	return s
}

// formatNumber renders a float64 the way results are shown everywhere:
// shortest decimal form that round-trips, never exponent notation, and
// integral values without a trailing ".0".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var (
	_ ExpressionVisitor[float64] = (*Evaluator)(nil)
	_ ExpressionVisitor[string]  = (*PrettyPrinter)(nil)
)
