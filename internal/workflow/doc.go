// Package workflow models the subset of the GitHub Actions workflow schema the
// converter produces, and writes it as block-style YAML.
//
//	name: CI
//	"on":
//	  push:
//	    branches: [main]
//	  pull_request:
//	    branches: [main]
//	env:
//	  GOFLAGS: -mod=mod
//	resources:
//	  repositories:
//	    - repository: tools
//	      type: github
//	      ref: refs/heads/main
//	jobs:
//	  build:
//	    runs-on: ubuntu-latest
//	    steps:
//	      - name: Build
//	        run: make build
//
// The env and jobs mappings keep insertion order. The "on" key is quoted by
// the YAML encoder because YAML 1.1 readers would take a bare on as a boolean.
package workflow
