package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"azdo-actions-converter/internal/azdo"
	"azdo-actions-converter/internal/diagnostic"
	"azdo-actions-converter/internal/mapping"
	"azdo-actions-converter/internal/workflow"
)

// Run executes one conversion for args and returns the process exit code.
// Results go to stdout; usage, logs and errors go to stderr.
func Run(args []string, stdout, stderr io.Writer) int {
	cfg, shouldExit, err := Parse(args, stderr)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintf(stderr, "error: %s\nRun '%s --help' for usage.\n", exitErr.Message, programName)
			return exitErr.Code
		}

		fmt.Fprintln(stderr, "error:", err)

		return ExitUsage
	}

	if shouldExit {
		return ExitOK
	}

	logger := NewLogger(cfg.LogLevel, cfg.LogFormat, stderr)

	if err := Convert(cfg, logger); err != nil {
		for _, e := range diagnostic.Flatten(err) {
			fmt.Fprintf(stderr, "error: %v\n", e)
		}

		return ExitFailure
	}

	fmt.Fprintf(stdout, "GitHub Actions workflow file %s is created successfully.\n", cfg.OutputPath)

	return ExitOK
}

// Convert loads cfg.InputPath, maps it and writes cfg.OutputPath. Nothing is
// written unless the whole conversion succeeds.
func Convert(cfg *Config, logger *slog.Logger) error {
	logger = logger.With("input", cfg.InputPath)

	doc, err := azdo.LoadFile(cfg.InputPath)
	if err != nil {
		return err
	}

	m := mapping.New(mapping.Options{
		DefaultName:       cfg.DefaultName,
		RunsOn:            cfg.RunsOn,
		AllowJobOverwrite: cfg.AllowJobOverwrite,
	}, logger)

	w, err := m.Map(doc)
	if err != nil {
		return diagnostic.WithPath(err, cfg.InputPath)
	}

	if err := workflow.WriteFile(w, cfg.OutputPath); err != nil {
		return err
	}

	logger.Debug("workflow written", "output", cfg.OutputPath)

	return nil
}
