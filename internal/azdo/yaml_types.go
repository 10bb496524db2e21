package azdo

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"azdo-actions-converter/internal/common"
	"azdo-actions-converter/internal/match"
)

const (
	keyName           = "name"
	keyTrigger        = "trigger"
	keyPR             = "pr"
	keyVariables      = "variables"
	keyVariableGroups = "variableGroups"
	keyResources      = "resources"
	keyPhases         = "phases"
	keyJobs           = "jobs"
	keyStages         = "stages"
	keyBranches       = "branches"
	keyInclude        = "include"
	keyValue          = "value"
	keyRepositories   = "repositories"
	keyRepository     = "repository"
	keyType           = "type"
	keyRef            = "ref"
	keyDisplayName    = "displayName"
	keyScript         = "script"
	keyJob            = "job"
	keyStage          = "stage"
	keySteps          = "steps"

	valueNone = "none"
)

var (
	pipelineKeys = []string{
		keyName, keyTrigger, keyPR, keyVariables, keyVariableGroups,
		keyResources, keyPhases, keyJobs, keyStages,
	}
	branchFilterKeys  = []string{keyBranches}
	branchListKeys    = []string{keyInclude}
	variableKeys      = []string{keyName, keyValue}
	variableGroupKeys = []string{keyName, keyVariables}
	resourcesKeys     = []string{keyRepositories}
	repositoryKeys    = []string{keyRepository, keyType, keyRef}
	stepKeys          = []string{keyDisplayName, keyScript}
	phaseKeys         = []string{keyName, keySteps}
	jobKeys           = []string{keyJob, keySteps}
	stageKeys         = []string{keyStage, keyJobs}
)

// --- Pipeline ---

// UnmarshalYAML decodes the top level and selects the job shape by
// precedence: phases, then jobs, then stages.
func (p *Pipeline) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Name           *string         `yaml:"name"`
		Trigger        *BranchFilter   `yaml:"trigger"`
		PR             *BranchFilter   `yaml:"pr"`
		Variables      variableList    `yaml:"variables"`
		VariableGroups []VariableGroup `yaml:"variableGroups"`
		Resources      *Resources      `yaml:"resources"`
		Phases         *Phases         `yaml:"phases"`
		Jobs           *Jobs           `yaml:"jobs"`
		Stages         *Stages         `yaml:"stages"`
	}

	unknown, err := decodeObject(node, "pipeline", &raw, pipelineKeys)
	if err != nil {
		return err
	}

	*p = Pipeline{
		Name:           raw.Name,
		Trigger:        raw.Trigger,
		PR:             raw.PR,
		Variables:      raw.Variables,
		VariableGroups: raw.VariableGroups,
		Resources:      raw.Resources,
		Unknown:        unknown,
	}

	var shapes []JobSource

	if raw.Phases != nil {
		shapes = append(shapes, *raw.Phases)
	}

	if raw.Jobs != nil {
		shapes = append(shapes, *raw.Jobs)
	}

	if raw.Stages != nil {
		shapes = append(shapes, *raw.Stages)
	}

	if len(shapes) > 0 {
		p.Work = shapes[0]

		for _, s := range shapes[1:] {
			p.IgnoredShapes = append(p.IgnoredShapes, s.Shape())
		}
	}

	return nil
}

// --- BranchFilter ---

// UnmarshalYAML accepts a sequence of branch names, a mapping with a
// branches key, or the scalar none.
func (b *BranchFilter) UnmarshalYAML(node *yaml.Node) error {
	*b = BranchFilter{Line: node.Line}

	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value != valueNone {
			return fmt.Errorf("line %d: expected a branch list, a mapping with %q or %q, got %q",
				node.Line, keyBranches, valueNone, node.Value)
		}

		b.None = true

		return nil

	case yaml.SequenceNode:
		names, err := decodeNames(node)
		if err != nil {
			return err
		}

		b.Branches = names

		return nil

	case yaml.MappingNode:
		var raw struct {
			Branches *branchList `yaml:"branches"`
		}

		unknown, err := decodeObject(node, "branch filter", &raw, branchFilterKeys)
		if err != nil {
			return err
		}

		b.Unknown = unknown

		if raw.Branches != nil {
			b.Branches = raw.Branches.names
			b.Unknown = append(b.Unknown, raw.Branches.unknown...)
		}

		return nil

	default:
		return fmt.Errorf("line %d: expected a branch list, a mapping with %q or %q, got %s",
			node.Line, keyBranches, valueNone, common.KindName(node.Kind))
	}
}

// branchList is a branches value: a sequence of names or {include: [...]}.
type branchList struct {
	names   []string
	unknown []UnknownKey
}

func (l *branchList) UnmarshalYAML(node *yaml.Node) error {
	*l = branchList{}

	switch node.Kind {
	case yaml.SequenceNode:
		names, err := decodeNames(node)
		if err != nil {
			return err
		}

		l.names = names

		return nil

	case yaml.MappingNode:
		var raw struct {
			Include yaml.Node `yaml:"include"`
		}

		unknown, err := decodeObject(node, keyBranches, &raw, branchListKeys)
		if err != nil {
			return err
		}

		l.unknown = unknown

		if raw.Include.Kind != 0 {
			names, err := decodeNames(&raw.Include)
			if err != nil {
				return err
			}

			l.names = names
		}

		return nil

	default:
		return fmt.Errorf("line %d: %s must be a sequence or a mapping with %q, got %s",
			node.Line, keyBranches, keyInclude, common.KindName(node.Kind))
	}
}

// decodeNames decodes a sequence of strings; the result is never nil.
func decodeNames(node *yaml.Node) ([]string, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: expected a sequence of names, got %s",
			node.Line, common.KindName(node.Kind))
	}

	names := make([]string, 0, len(node.Content))

	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: branch name must be a scalar, got %s",
				item.Line, common.KindName(item.Kind))
		}

		names = append(names, item.Value)
	}

	return names, nil
}

// --- Variables ---

// variableList accepts a flat mapping or a sequence of {name, value}.
type variableList []Variable

func (l *variableList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		vars := make(variableList, 0, len(node.Content)/2)

		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valueNode := node.Content[i], node.Content[i+1]

			value, err := scalarValue(valueNode, keyNode.Value)
			if err != nil {
				return err
			}

			name := keyNode.Value
			vars = append(vars, Variable{Name: &name, Value: value, Line: keyNode.Line})
		}

		*l = vars

		return nil

	case yaml.SequenceNode:
		var vars []Variable

		err := node.Decode(&vars)
		if err != nil {
			return err
		}

		*l = vars

		return nil

	default:
		return fmt.Errorf("line %d: %s must be a mapping or a sequence, got %s",
			node.Line, keyVariables, common.KindName(node.Kind))
	}
}

// UnmarshalYAML decodes a {name, value} entry.
func (v *Variable) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Name  *string   `yaml:"name"`
		Value yaml.Node `yaml:"value"`
	}

	unknown, err := decodeObject(node, "variable", &raw, variableKeys)
	if err != nil {
		return err
	}

	*v = Variable{Name: raw.Name, Line: node.Line, Unknown: unknown}

	if raw.Value.Kind != 0 {
		label := keyValue
		if raw.Name != nil {
			label = *raw.Name
		}

		v.Value, err = scalarValue(&raw.Value, label)
		if err != nil {
			return err
		}
	}

	return nil
}

// scalarValue copies a variable's scalar node, keeping tag, text and style
// but not position or comments.
func scalarValue(node *yaml.Node, label string) (*yaml.Node, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("line %d: variable %q must be a scalar, got %s",
			node.Line, label, common.KindName(node.Kind))
	}

	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Style: node.Style,
		Tag:   node.Tag,
		Value: node.Value,
	}, nil
}

// UnmarshalYAML decodes an inline variable group.
func (g *VariableGroup) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Name      string     `yaml:"name"`
		Variables []Variable `yaml:"variables"`
	}

	unknown, err := decodeObject(node, "variable group", &raw, variableGroupKeys)
	if err != nil {
		return err
	}

	*g = VariableGroup{
		Name:      raw.Name,
		Variables: raw.Variables,
		Line:      node.Line,
		Unknown:   unknown,
	}

	return nil
}

// --- Resources ---

// UnmarshalYAML decodes the resources section.
func (r *Resources) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Repositories []Repository `yaml:"repositories"`
	}

	unknown, err := decodeObject(node, keyResources, &raw, resourcesKeys)
	if err != nil {
		return err
	}

	*r = Resources{Repositories: raw.Repositories, Unknown: unknown}

	return nil
}

// UnmarshalYAML decodes a repository resource.
func (r *Repository) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Repository string `yaml:"repository"`
		Type       string `yaml:"type"`
		Ref        string `yaml:"ref"`
	}

	unknown, err := decodeObject(node, keyRepository, &raw, repositoryKeys)
	if err != nil {
		return err
	}

	*r = Repository{
		Repository: raw.Repository,
		Type:       raw.Type,
		Ref:        raw.Ref,
		Line:       node.Line,
		Unknown:    unknown,
	}

	return nil
}

// --- Work ---

// UnmarshalYAML decodes a step.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		DisplayName *string `yaml:"displayName"`
		Script      *string `yaml:"script"`
	}

	unknown, err := decodeObject(node, "step", &raw, stepKeys)
	if err != nil {
		return err
	}

	*s = Step{
		DisplayName: raw.DisplayName,
		Script:      raw.Script,
		Line:        node.Line,
		Unknown:     unknown,
	}

	return nil
}

// UnmarshalYAML decodes a phase.
func (p *Phase) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Name  *string `yaml:"name"`
		Steps *[]Step `yaml:"steps"`
	}

	unknown, err := decodeObject(node, "phase", &raw, phaseKeys)
	if err != nil {
		return err
	}

	*p = Phase{
		Name:    raw.Name,
		Steps:   presentSteps(raw.Steps),
		Line:    node.Line,
		Unknown: unknown,
	}

	return nil
}

// UnmarshalYAML decodes a job.
func (j *Job) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Job   *string `yaml:"job"`
		Steps *[]Step `yaml:"steps"`
	}

	unknown, err := decodeObject(node, keyJob, &raw, jobKeys)
	if err != nil {
		return err
	}

	*j = Job{
		Job:     raw.Job,
		Steps:   presentSteps(raw.Steps),
		Line:    node.Line,
		Unknown: unknown,
	}

	return nil
}

// UnmarshalYAML decodes a stage.
func (s *Stage) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Stage string `yaml:"stage"`
		Jobs  *[]Job `yaml:"jobs"`
	}

	unknown, err := decodeObject(node, keyStage, &raw, stageKeys)
	if err != nil {
		return err
	}

	*s = Stage{
		Stage:   raw.Stage,
		Line:    node.Line,
		Unknown: unknown,
	}

	if raw.Jobs != nil {
		s.Jobs = *raw.Jobs
		if s.Jobs == nil {
			s.Jobs = []Job{}
		}
	}

	return nil
}

// presentSteps turns a decoded optional list into nil (absent) or a non-nil slice.
func presentSteps(steps *[]Step) []Step {
	if steps == nil {
		return nil
	}

	if *steps == nil {
		return []Step{}
	}

	return *steps
}

// --- helpers ---

// decodeObject decodes a mapping node into raw and reports the keys that
// are not in known.
func decodeObject(node *yaml.Node, what string, raw any, known []string) ([]UnknownKey, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: %s must be a mapping, got %s",
			node.Line, what, common.KindName(node.Kind))
	}

	err := node.Decode(raw)
	if err != nil {
		return nil, err
	}

	return unknownKeys(node, known), nil
}

func unknownKeys(node *yaml.Node, known []string) []UnknownKey {
	var unknown []UnknownKey

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if slices.Contains(known, key.Value) {
			continue
		}

		u := UnknownKey{Key: key.Value, Line: key.Line}
		if s, ok := match.Suggest(key.Value, known); ok {
			u.Suggestion = s
		}

		unknown = append(unknown, u)
	}

	return unknown
}
