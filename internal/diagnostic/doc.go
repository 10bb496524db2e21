// Package diagnostic provides the error taxonomy for pipeline conversion.
//
// Every failure is a *Error carrying a Kind:
//   - FileNotFound: the input path does not exist
//   - UnsupportedFormat: the input extension is not .json, .yaml or .yml
//   - ParseError: the input is not valid JSON/YAML or does not fit the schema
//   - MissingJobDefinition: none of phases, jobs or stages is present
//   - MalformedStep: a step, job, phase or stage misses a required field
//   - WriteError: the workflow cannot be persisted
//   - ReadError: the input exists but cannot be read
//
// Kind implements error, so callers match with errors.Is(err, diagnostic.MalformedStep)
// through any amount of wrapping or errors.Join.
package diagnostic
