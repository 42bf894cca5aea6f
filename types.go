package calchub

// EvaluateRequest is the body of POST /api/v1/evaluate.
type EvaluateRequest struct {
	Expression string `json:"expression"`
}

// RenderRequest is the body of POST /api/v1/render.
type RenderRequest struct {
	Expression string `json:"expression"`
}

// RenderResponse is the reply to a render request. Rendered is set on
// success, Error on a tokenize or parse failure.
type RenderResponse struct {
	Expression string `json:"expression"`
	Rendered   string `json:"rendered,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SuiteRunRequest is the body of POST /api/v1/suites/run. Suite carries
// the raw YAML suite document.
type SuiteRunRequest struct {
	Suite string `json:"suite"`
}

// ExpressionList is the reply to GET /api/v1/expressions.
type ExpressionList struct {
	Expressions []*Evaluation `json:"expressions"`
	Total       int           `json:"total"`
}
