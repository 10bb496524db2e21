package azdo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"azdo-actions-converter/internal/diagnostic"
)

func decodeYAML(t *testing.T, src string) *Pipeline {
	t.Helper()

	doc, err := Parse([]byte(src), FormatYAML)
	require.NoError(t, err)

	p, err := Decode(doc)
	require.NoError(t, err)

	return p
}

func strPtr(s string) *string { return &s }

func assertScalar(t *testing.T, tag, value string, node *yaml.Node) {
	t.Helper()

	require.NotNil(t, node)
	assert.Equal(t, yaml.ScalarNode, node.Kind)
	assert.Equal(t, tag, node.Tag)
	assert.Equal(t, value, node.Value)
}

func TestDecode_Full(t *testing.T) {
	p := decodeYAML(t, `
name: CI
trigger:
  branches: [main, release/*]
pr:
  branches: [main]
variables:
  GOFLAGS: -mod=mod
  RETRIES: 3
  VERBOSE: true
variableGroups:
  - name: shared
    variables:
      - name: REGION
        value: eu-west-1
resources:
  repositories:
    - repository: tools
      type: github
      ref: refs/heads/main
phases:
  - name: build
    steps:
      - displayName: Build
        script: make build
`)

	assert.Equal(t, strPtr("CI"), p.Name)
	require.NotNil(t, p.Trigger)
	assert.Equal(t, []string{"main", "release/*"}, p.Trigger.Branches)
	require.NotNil(t, p.PR)
	assert.Equal(t, []string{"main"}, p.PR.Branches)

	require.Len(t, p.Variables, 3)
	assert.Equal(t, "GOFLAGS", *p.Variables[0].Name)
	assertScalar(t, "!!str", "-mod=mod", p.Variables[0].Value)
	assertScalar(t, "!!int", "3", p.Variables[1].Value)
	assertScalar(t, "!!bool", "true", p.Variables[2].Value)

	require.Len(t, p.VariableGroups, 1)
	assert.Equal(t, "shared", p.VariableGroups[0].Name)
	require.Len(t, p.VariableGroups[0].Variables, 1)
	assert.Equal(t, strPtr("REGION"), p.VariableGroups[0].Variables[0].Name)
	assertScalar(t, "!!str", "eu-west-1", p.VariableGroups[0].Variables[0].Value)

	require.NotNil(t, p.Resources)
	require.Len(t, p.Resources.Repositories, 1)
	repo := p.Resources.Repositories[0]
	assert.Equal(t, "tools", repo.Repository)
	assert.Equal(t, "github", repo.Type)
	assert.Equal(t, "refs/heads/main", repo.Ref)

	phases, ok := p.Work.(Phases)
	require.True(t, ok)
	require.Len(t, phases, 1)
	assert.Equal(t, strPtr("build"), phases[0].Name)
	require.Len(t, phases[0].Steps, 1)
	assert.Equal(t, strPtr("Build"), phases[0].Steps[0].DisplayName)
	assert.Equal(t, strPtr("make build"), phases[0].Steps[0].Script)

	assert.Empty(t, p.IgnoredShapes)
	assert.Empty(t, p.Unknown)
}

func TestDecode_ShapePrecedence(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		shape   string
		ignored []string
	}{
		{
			name:  "phases only",
			yaml:  "phases: [{name: a, steps: []}]",
			shape: "phases",
		},
		{
			name:    "jobs and stages",
			yaml:    "stages: [{jobs: []}]\njobs: [{job: a, steps: []}]",
			shape:   "jobs",
			ignored: []string{"stages"},
		},
		{
			name:    "all three",
			yaml:    "stages: []\njobs: []\nphases: []",
			shape:   "phases",
			ignored: []string{"jobs", "stages"},
		},
		{
			name:  "null phases is absent",
			yaml:  "phases: null\nstages: [{stage: s, jobs: []}]",
			shape: "stages",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := decodeYAML(t, tt.yaml)
			require.NotNil(t, p.Work)
			assert.Equal(t, tt.shape, p.Work.Shape())
			assert.Equal(t, tt.ignored, p.IgnoredShapes)
		})
	}
}

func TestDecode_NoShape(t *testing.T) {
	p := decodeYAML(t, "name: CI\n")
	assert.Nil(t, p.Work)
}

func TestDecode_BranchForms(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		expected []string
		unknown  []string
	}{
		{"sequence shorthand", "trigger: [main, dev]", []string{"main", "dev"}, nil},
		{"branches sequence", "trigger: {branches: [dev]}", []string{"dev"}, nil},
		{"branches include", "trigger: {branches: {include: [dev]}}", []string{"dev"}, nil},
		{"include with exclude", "trigger: {branches: {include: [dev], exclude: [old]}}", []string{"dev"}, []string{"exclude"}},
		{"empty branches", "trigger: {branches: []}", []string{}, nil},
		{"no branches key", "trigger: {batch: true}", nil, []string{"batch"}},
		{"exclude only", "trigger: {branches: {exclude: [old]}}", nil, []string{"exclude"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := decodeYAML(t, tt.yaml)
			require.NotNil(t, p.Trigger)
			assert.Equal(t, tt.expected, p.Trigger.Branches)

			var keys []string
			for _, u := range p.Trigger.Unknown {
				keys = append(keys, u.Key)
			}

			assert.Equal(t, tt.unknown, keys)
		})
	}
}

func TestDecode_TriggerNone(t *testing.T) {
	p := decodeYAML(t, "trigger: none\npr: none\n")

	require.NotNil(t, p.Trigger)
	assert.True(t, p.Trigger.None)
	assert.Nil(t, p.Trigger.Branches)

	require.NotNil(t, p.PR)
	assert.True(t, p.PR.None)
}

func TestDecode_Name(t *testing.T) {
	assert.Nil(t, decodeYAML(t, "jobs: []\n").Name)
	assert.Nil(t, decodeYAML(t, "name:\njobs: []\n").Name)
	assert.Equal(t, strPtr(""), decodeYAML(t, "name: \"\"\njobs: []\n").Name)
}

func TestDecode_VariableValuesAsWritten(t *testing.T) {
	p := decodeYAML(t, `
variables:
  PY: 3.10
  ONE: 1.0
  HEX: 0x1F
  QUOTED: "3.10"
  EMPTY:
variableGroups:
  - name: g
    variables:
      - name: VERSION
        value: 2.50
`)

	require.Len(t, p.Variables, 5)
	assertScalar(t, "!!float", "3.10", p.Variables[0].Value)
	assertScalar(t, "!!float", "1.0", p.Variables[1].Value)
	assertScalar(t, "!!int", "0x1F", p.Variables[2].Value)
	assertScalar(t, "!!str", "3.10", p.Variables[3].Value)
	assert.Equal(t, yaml.DoubleQuotedStyle, p.Variables[3].Value.Style)
	assertScalar(t, "!!null", "", p.Variables[4].Value)

	// position and comments are not carried over
	assert.Zero(t, p.Variables[0].Value.Line)

	assertScalar(t, "!!float", "2.50", p.VariableGroups[0].Variables[0].Value)
}

func TestDecode_VariableSequenceForm(t *testing.T) {
	p := decodeYAML(t, `
variables:
  - name: A
    value: "1"
  - name: B
  - group: library-group
`)

	require.Len(t, p.Variables, 3)
	assert.Equal(t, strPtr("A"), p.Variables[0].Name)
	assertScalar(t, "!!str", "1", p.Variables[0].Value)
	assert.Equal(t, strPtr("B"), p.Variables[1].Name)
	assert.Nil(t, p.Variables[1].Value)
	assert.Nil(t, p.Variables[2].Name)
	require.Len(t, p.Variables[2].Unknown, 1)
	assert.Equal(t, "group", p.Variables[2].Unknown[0].Key)
}

func TestDecode_StepsPresence(t *testing.T) {
	p := decodeYAML(t, `
jobs:
  - job: missing
  - job: empty
    steps: []
  - job: null-steps
    steps:
`)

	jobs := p.Work.(Jobs)
	require.Len(t, jobs, 3)
	assert.Nil(t, jobs[0].Steps)
	assert.NotNil(t, jobs[1].Steps)
	assert.Empty(t, jobs[1].Steps)
	assert.Nil(t, jobs[2].Steps)
}

func TestDecode_OptionalStepFields(t *testing.T) {
	p := decodeYAML(t, `
jobs:
  - job: build
    steps:
      - script: make
      - displayName: Only name
      - displayName: Number script
        script: 42
`)

	steps := p.Work.(Jobs)[0].Steps
	require.Len(t, steps, 3)
	assert.Nil(t, steps[0].DisplayName)
	assert.Equal(t, strPtr("make"), steps[0].Script)
	assert.Nil(t, steps[1].Script)
	assert.Equal(t, strPtr("42"), steps[2].Script)
	assert.Equal(t, 5, steps[0].Line)
}

func TestDecode_UnknownKeys(t *testing.T) {
	p := decodeYAML(t, `
name: CI
pool:
  vmImage: ubuntu-latest
variableGroup: []
stages:
  - stage: build
    displayName: Build
    jobs:
      - job: compile
        steps:
          - displayname: Compile
            script: make
`)

	require.Len(t, p.Unknown, 2)
	assert.Equal(t, UnknownKey{Key: "pool", Line: 3}, p.Unknown[0])
	assert.Equal(t, UnknownKey{Key: "variableGroup", Line: 5, Suggestion: "variableGroups"}, p.Unknown[1])

	stages := p.Work.(Stages)
	require.Len(t, stages, 1)
	assert.Equal(t, "build", stages[0].Stage)
	require.Len(t, stages[0].Unknown, 1)
	assert.Equal(t, "displayName", stages[0].Unknown[0].Key)

	step := stages[0].Jobs[0].Steps[0]
	assert.Nil(t, step.DisplayName)
	require.Len(t, step.Unknown, 1)
	assert.Equal(t, "displayname", step.Unknown[0].Key)
	assert.Equal(t, "displayName", step.Unknown[0].Suggestion)
}

func TestDecode_TypeErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		message string
	}{
		{"top level sequence", "- a\n- b\n", "pipeline must be a mapping"},
		{"name is a sequence", "name: [a, b]\n", "cannot unmarshal"},
		{"scalar trigger", "trigger: main\n", `expected a branch list, a mapping with "branches" or "none", got "main"`},
		{"non-scalar variable", "variables:\n  A: [1, 2]\n", `variable "A" must be a scalar`},
		{"scalar variables", "variables: x\n", "variables must be a mapping or a sequence"},
		{"step is a string", "jobs:\n  - job: a\n    steps:\n      - make\n", "step must be a mapping"},
		{"nested branch list", "pr:\n  branches: [[main]]\n", "branch name must be a scalar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.yaml), FormatYAML)
			require.NoError(t, err)

			_, err = Decode(doc)
			require.ErrorIs(t, err, diagnostic.ParseError)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestDecode_EmptyDocument(t *testing.T) {
	_, err := Decode(nil)
	require.ErrorIs(t, err, diagnostic.ParseError)
}
