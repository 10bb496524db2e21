package azdo

import "gopkg.in/yaml.v3"

// Pipeline is a decoded Azure DevOps pipeline.
type Pipeline struct {
	// Name is the pipeline name; nil when absent.
	Name *string
	// Trigger holds the CI trigger branches; nil when absent.
	Trigger *BranchFilter
	// PR holds the pull request trigger branches; nil when absent.
	PR *BranchFilter
	// Variables are the flat pipeline variables in declaration order.
	Variables []Variable
	// VariableGroups are inline variable groups in declaration order.
	VariableGroups []VariableGroup
	// Resources holds repository resources; nil when absent.
	Resources *Resources
	// Work is the selected job shape; nil when none of phases, jobs or stages is present.
	Work JobSource
	// IgnoredShapes lists job shapes that were present but lost on precedence.
	IgnoredShapes []string
	// Unknown lists top-level keys the schema does not know.
	Unknown []UnknownKey
}

// BranchFilter is a trigger or pr section.
type BranchFilter struct {
	// None is set by the `none` form, which disables the trigger.
	None bool
	// Branches is nil when the section has no branches key.
	Branches []string
	Line     int
	Unknown  []UnknownKey
}

// Variable is one name/value pair.
type Variable struct {
	// Name is nil when a {name, value} entry has no name.
	Name *string
	// Value is the scalar as written, tag and quoting included; nil when absent.
	Value   *yaml.Node
	Line    int
	Unknown []UnknownKey
}

// VariableGroup is an inline group of variables.
type VariableGroup struct {
	Name      string
	Variables []Variable
	Line      int
	Unknown   []UnknownKey
}

// Resources is the resources section.
type Resources struct {
	Repositories []Repository
	Unknown      []UnknownKey
}

// Repository is a repository resource.
type Repository struct {
	Repository string
	Type       string
	Ref        string
	Line       int
	Unknown    []UnknownKey
}

// Step is a single script step. Missing fields are nil.
type Step struct {
	DisplayName *string
	Script      *string
	Line        int
	Unknown     []UnknownKey
}

// Phase is an entry of the legacy phases list.
type Phase struct {
	Name *string
	// Steps is nil when the key is absent and non-nil (possibly empty) when present.
	Steps   []Step
	Line    int
	Unknown []UnknownKey
}

// Job is an entry of a jobs list.
type Job struct {
	Job *string
	// Steps is nil when the key is absent and non-nil (possibly empty) when present.
	Steps   []Step
	Line    int
	Unknown []UnknownKey
}

// Stage is an entry of the stages list.
type Stage struct {
	// Stage is the stage name, used only in diagnostics.
	Stage string
	// Jobs is nil when the key is absent.
	Jobs    []Job
	Line    int
	Unknown []UnknownKey
}

// UnknownKey is a key the schema ignores.
type UnknownKey struct {
	Key  string
	Line int
	// Suggestion is the closest known key, if any is close enough.
	Suggestion string
}

// JobSource is one of Phases, Jobs or Stages.
type JobSource interface {
	// Shape returns the source key: "phases", "jobs" or "stages".
	Shape() string
	// Len returns the number of top-level entries.
	Len() int

	isJobSource()
}

// Phases is the legacy phases shape.
type Phases []Phase

// Jobs is the single-stage jobs shape.
type Jobs []Job

// Stages is the multi-stage shape.
type Stages []Stage

func (Phases) Shape() string { return keyPhases }
func (Jobs) Shape() string   { return keyJobs }
func (Stages) Shape() string { return keyStages }

func (p Phases) Len() int { return len(p) }
func (j Jobs) Len() int   { return len(j) }
func (s Stages) Len() int { return len(s) }

func (Phases) isJobSource() {}
func (Jobs) isJobSource()   {}
func (Stages) isJobSource() {}
