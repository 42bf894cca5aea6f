package calchub

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Suite is a named batch of expression cases, usually loaded from YAML:
//
//	name: smoke
//	cases:
//	  - name: precedence
//	    expression: "2 * 4 + 6 / 2"
//	    want: "10"
//	  - expression: "(1"
//	    want_error: "Syntax error: Expect ')' after expression."
type Suite struct {
	Name  string      `yaml:"name" json:"name"`
	Cases []SuiteCase `yaml:"cases" json:"cases"`
}

// SuiteCase is one expression with an optional expectation. Want matches
// a result line, WantError an error line; with neither set the case
// passes on any output.
type SuiteCase struct {
	Name       string `yaml:"name" json:"name,omitempty"`
	Expression string `yaml:"expression" json:"expression"`
	Want       string `yaml:"want" json:"want,omitempty"`
	WantError  string `yaml:"want_error" json:"want_error,omitempty"`
}

// ParseSuite unmarshals and validates a YAML suite document.
func ParseSuite(data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse suite: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSuite reads and parses the suite file at path.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite: %w", err)
	}
	return ParseSuite(data)
}

// Validate rejects suites that could not run meaningfully.
func (s *Suite) Validate() error {
	if len(s.Cases) == 0 {
		return fmt.Errorf("suite %q has no cases", s.Name)
	}
	for i, c := range s.Cases {
		if c.Expression == "" {
			return fmt.Errorf("case %d: expression is required", i)
		}
		if c.Want != "" && c.WantError != "" {
			return fmt.Errorf("case %d: want and want_error are mutually exclusive", i)
		}
	}
	return nil
}

// CaseResult is the outcome of one suite case.
type CaseResult struct {
	Name       string `json:"name,omitempty"`
	Expression string `json:"expression"`
	Got        string `json:"got"`
	Want       string `json:"want,omitempty"`
	Passed     bool   `json:"passed"`
}

// SuiteReport summarizes one suite run.
type SuiteReport struct {
	Name    string       `json:"name"`
	Total   int          `json:"total"`
	Passed  int          `json:"passed"`
	Failed  int          `json:"failed"`
	Results []CaseResult `json:"results"`
}

// Run evaluates every case with eval (normally EvaluateLine) and compares
// output lines against expectations.
func (s *Suite) Run(eval func(string) string) *SuiteReport {
	report := &SuiteReport{Name: s.Name, Total: len(s.Cases)}
	for _, c := range s.Cases {
		got := eval(c.Expression)
		want := c.Want
		if c.WantError != "" {
			want = c.WantError
		}
		passed := want == "" || got == want
		if passed {
			report.Passed++
		} else {
			report.Failed++
		}
		report.Results = append(report.Results, CaseResult{
			Name:       c.Name,
			Expression: c.Expression,
			Got:        got,
			Want:       want,
			Passed:     passed,
		})
	}
	return report
}
