// Package azdo loads Azure DevOps pipeline definitions and decodes them into
// an explicit schema.
//
// Loading is format-by-extension: ".json" files are read as JSON (comments
// and trailing commas are tolerated), ".yaml" and ".yml" files as YAML.
// Both formats produce the same generic tree, a *yaml.Node document, so
// every later diagnostic can point at a line.
//
// # Schema Overview
//
//	name: CI
//	trigger:
//	  branches: [main, release/*]   # or {include: [...]}, or trigger: [main]
//	pr:                             # or pr: none (keeps the default)
//	  branches: [main]
//	variables:                      # mapping, or a sequence of {name, value}
//	  GOFLAGS: -mod=mod
//	variableGroups:
//	  - name: shared
//	    variables:
//	      - name: REGION
//	        value: eu-west-1
//	resources:
//	  repositories:
//	    - repository: tools
//	      type: github
//	      ref: refs/heads/main
//	phases:                         # or jobs: [{job, steps}], or stages: [{jobs}]
//	  - name: build
//	    steps:
//	      - displayName: Build
//	        script: make build
//
// # Job Shapes
//
// A pipeline declares its work in exactly one of three shapes, modelled by
// the JobSource sum type (Phases, Jobs, Stages). When more than one key is
// present the precedence is phases, then jobs, then stages; the losers are
// listed in Pipeline.IgnoredShapes.
//
// Required fields (a step's displayName and script, a job's name and steps)
// are decoded as optional so that the mapper can report every missing one
// at once. Keys the schema does not know are kept as UnknownKey values.
//
// Variable values are kept as the scalar nodes that were read, so they can
// be written back without reformatting.
package azdo
