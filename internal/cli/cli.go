package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"azdo-actions-converter/internal/mapping"
)

const programName = "azdo-actions-converter"

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Config is the parsed command line.
type Config struct {
	InputPath         string
	OutputPath        string
	RunsOn            string
	DefaultName       string
	AllowJobOverwrite bool
	LogLevel          string
	LogFormat         string
}

// ExitError is a usage error with the exit code to terminate with.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns the Config, a boolean
// telling the caller to exit cleanly (help was printed), or an *ExitError.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	flagSet := pflag.NewFlagSet(programName, pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.SortFlags = false

	flagSet.Usage = func() {
		fmt.Fprintf(output, `Convert an Azure DevOps pipeline to a GitHub Actions workflow.

Usage:
  %s -i <pipeline.json|.yaml|.yml> -o <workflow.yml> [options]

Options:
%s`, programName, flagSet.FlagUsages())
	}

	cfg := &Config{}

	flagSet.StringVarP(&cfg.InputPath, "input", "i", "", "Azure DevOps pipeline file in JSON or YAML format (required)")
	flagSet.StringVarP(&cfg.OutputPath, "output", "o", "", "GitHub Actions workflow file to write (required)")
	flagSet.StringVar(&cfg.RunsOn, "runs-on", mapping.DefaultRunsOn, "Runner label for every job")
	flagSet.StringVar(&cfg.DefaultName, "default-name", mapping.DefaultWorkflowName, "Workflow name used when the pipeline has none")
	flagSet.BoolVar(&cfg.AllowJobOverwrite, "allow-job-overwrite", false, "Let a later job replace an earlier job with the same name")
	flagSet.StringVar(&cfg.LogLevel, "log-level", "warn", "Logging level: debug, info, warn or error")
	flagSet.StringVar(&cfg.LogFormat, "log-format", "text", "Log output format: text or json")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, true, nil
		}

		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{
			Code:    ExitUsage,
			Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(flagSet.Args(), " ")),
		}
	}

	if cfg.InputPath == "" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "required flag --input is missing"}
	}

	if cfg.OutputPath == "" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "required flag --output is missing"}
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if _, ok := parseLevel(cfg.LogLevel); !ok {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	if strings.TrimSpace(cfg.RunsOn) == "" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid runs-on: must not be empty"}
	}

	return cfg, false, nil
}
