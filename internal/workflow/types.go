package workflow

import (
	"gopkg.in/yaml.v3"

	"azdo-actions-converter/internal/common"
)

// Workflow is a GitHub Actions workflow. Field order is serialization order.
type Workflow struct {
	Name string   `yaml:"name"`
	On   Triggers `yaml:"on"`
	// Env values are scalar nodes emitted as written.
	Env       common.OrderedMap[*yaml.Node] `yaml:"env,omitempty"`
	Resources *Resources                    `yaml:"resources,omitempty"`
	Jobs      common.OrderedMap[Job]        `yaml:"jobs"`
}

// Triggers is the on section.
type Triggers struct {
	Push        BranchFilter `yaml:"push"`
	PullRequest BranchFilter `yaml:"pull_request"`
}

// BranchFilter lists the branches an event fires for.
type BranchFilter struct {
	Branches []string `yaml:"branches"`
}

// Resources carries repository resources over from the source pipeline.
type Resources struct {
	Repositories []Repository `yaml:"repositories"`
}

// Repository is a repository resource.
type Repository struct {
	Repository string `yaml:"repository,omitempty"`
	Type       string `yaml:"type,omitempty"`
	Ref        string `yaml:"ref,omitempty"`
}

// Job is a workflow job.
type Job struct {
	RunsOn string `yaml:"runs-on"`
	Steps  []Step `yaml:"steps"`
}

// Step is a run step.
type Step struct {
	Name string `yaml:"name"`
	Run  string `yaml:"run"`
}
