// Package main provides the CLI entrypoint for azdo-actions-converter.
//
// azdo-actions-converter translates an Azure DevOps pipeline definition
// (JSON or YAML) into a GitHub Actions workflow:
//
//	azdo-actions-converter -i azure-pipelines.yml -o .github/workflows/ci.yml
//
// Run with --help for all options.
package main

import (
	"os"

	"azdo-actions-converter/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
