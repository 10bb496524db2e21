// Package cli parses command-line flags, builds the logger, runs a single
// conversion and maps failures to process exit codes.
package cli
