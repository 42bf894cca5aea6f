package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/calchub/calchub"
)

var (
	version = "dev"
	commit  = "none"
)

// terminal implements calchub.Console over stdin and stdout.
type terminal struct {
	in *bufio.Reader
}

func newTerminal() *terminal {
	return &terminal{in: bufio.NewReader(os.Stdin)}
}

func (t *terminal) ReadLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := t.in.ReadString('\n')
	if err != nil {
		// A final line without a newline still counts.
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		return "", err
	}
	return line, nil
}

func (t *terminal) WriteLine(s string) {
	fmt.Println(s)
}

func main() {
	addr := flag.String("addr", "", "listen address (overrides config)")
	configPath := flag.String("config", "", "path to TOML config file")
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error)")
	repl := flag.Bool("repl", false, "run an interactive calculator instead of the server")
	suitePath := flag.String("suite", "", "run the YAML expression suite at this path and exit")
	flag.Parse()

	cfg, err := calchub.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Str("service", "calchub").Logger().
		Level(level)

	switch {
	case *repl:
		calchub.NewCalculator(newTerminal(), logger).Run()

	case *suitePath != "":
		suite, err := calchub.LoadSuite(*suitePath)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load suite")
		}
		report := suite.Run(calchub.EvaluateLine)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(report)

		if report.Failed > 0 {
			os.Exit(1)
		}

	default:
		logger.Info().Str("version", version).Str("commit", commit).Msg("starting")

		shutdown, err := calchub.InitTracer("calchub")
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init tracer")
		}
		defer shutdown(context.Background())

		srv := calchub.NewServer(cfg, logger)
		if err := srv.ListenAndServe(); err != nil {
			logger.Fatal().Err(err).Msg("server exited")
		}
	}
}
