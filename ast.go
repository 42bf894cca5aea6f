package calchub

// Expression is a node in a parsed arithmetic expression tree. The seven
// variants below are the only implementations; operations over trees are
// written as ExpressionVisitor implementations rather than methods here.
type Expression interface {
	isExpression()
}

// Number is a literal value.
type Number struct {
	Value float64
}

// Add is the sum of two subexpressions.
type Add struct {
	Left  Expression
	Right Expression
}

// Subtract is the difference of two subexpressions.
type Subtract struct {
	Left  Expression
	Right Expression
}

// Multiply is the product of two subexpressions.
type Multiply struct {
	Left  Expression
	Right Expression
}

// Divide is the quotient of two subexpressions.
type Divide struct {
	Left  Expression
	Right Expression
}

// Negate is unary minus applied to a subexpression.
type Negate struct {
	Operand Expression
}

// Grouping is a parenthesized subexpression. It changes how a tree prints
// and parses but evaluates to its operand unchanged.
type Grouping struct {
	Operand Expression
}

func (Number) isExpression()   {}
func (Add) isExpression()      {}
func (Subtract) isExpression() {}
func (Multiply) isExpression() {}
func (Divide) isExpression()   {}
func (Negate) isExpression()   {}
func (Grouping) isExpression() {}
