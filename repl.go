package calchub

import (
	"strings"

	"github.com/rs/zerolog"
)

// Banner is printed once when an interactive session starts.
const Banner = "### Calculator ver. 1.0 ###"

// Prompt precedes every line read in an interactive session.
const Prompt = ">>> "

// runPipeline tokenizes, parses and evaluates one expression.
func runPipeline(input string) (float64, error) {
	parser, err := NewParser(input)
	if err != nil {
		return 0, err
	}
	ast, err := parser.Parse()
	if err != nil {
		return 0, err
	}
	return Evaluate(ast)
}

// EvaluateLine runs one expression through the whole pipeline and returns
// the single output line: the formatted result on success, the error text
// on failure. This is the contract every surface (terminal, HTTP, GraphQL,
// WebSocket, suites) answers with.
func EvaluateLine(input string) string {
	result, err := runPipeline(input)
	if err != nil {
		return err.Error()
	}
	return formatNumber(result)
}

// Console is the I/O seam for interactive sessions. ReadLine shows the
// prompt and blocks for one line; the error return ends the session
// (io.EOF for a closed input). WriteLine emits one output line.
type Console interface {
	ReadLine(prompt string) (string, error)
	WriteLine(s string)
}

// Calculator drives a read-evaluate-print loop over a Console.
type Calculator struct {
	console Console
	logger  zerolog.Logger
}

// NewCalculator returns a calculator over console.
func NewCalculator(console Console, logger zerolog.Logger) *Calculator {
	return &Calculator{console: console, logger: logger}
}

// Run loops until the console input ends or the user types "exit" in any
// casing. Every other line, blank ones included, is evaluated and the
// output line written back.
func (c *Calculator) Run() {
	c.console.WriteLine(Banner)

	for {
		input, err := c.console.ReadLine(Prompt)
		if err != nil {
			c.logger.Debug().Err(err).Msg("console input ended")
			return
		}
		input = strings.TrimSpace(input)
		if strings.EqualFold(input, "exit") {
			return
		}

		output := EvaluateLine(input)
		c.logger.Debug().Str("input", input).Str("output", output).Msg("evaluated")
		c.console.WriteLine(output)
	}
}
