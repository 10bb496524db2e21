package mapping

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"

	"azdo-actions-converter/internal/azdo"
	"azdo-actions-converter/internal/common"
	"azdo-actions-converter/internal/diagnostic"
	"azdo-actions-converter/internal/workflow"
)

// Mapper converts pipelines to workflows. It holds no state between calls.
type Mapper struct {
	opts Options
	log  *slog.Logger
}

// New creates a Mapper. A nil logger discards all output.
func New(opts Options, logger *slog.Logger) *Mapper {
	applyDefaults(&opts)

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Mapper{opts: opts, log: logger}
}

// Map decodes a generic pipeline tree and converts it.
func (m *Mapper) Map(doc *yaml.Node) (*workflow.Workflow, error) {
	p, err := azdo.Decode(doc)
	if err != nil {
		return nil, err
	}

	return m.MapPipeline(p)
}

// MapPipeline converts a decoded pipeline.
func (m *Mapper) MapPipeline(p *azdo.Pipeline) (*workflow.Workflow, error) {
	if m.log.Enabled(context.Background(), slog.LevelDebug) {
		m.log.Debug("decoded pipeline", "pipeline", spew.Sdump(p))
	}

	m.warnUnknown("", p.Unknown)

	var errs diagnostic.List

	w := &workflow.Workflow{
		Name: m.opts.DefaultName,
		On: workflow.Triggers{
			Push:        workflow.BranchFilter{Branches: []string{DefaultBranch}},
			PullRequest: workflow.BranchFilter{Branches: []string{DefaultBranch}},
		},
	}

	if p.Name != nil {
		w.Name = *p.Name
	}

	m.mapBranches(&w.On.Push, "trigger", p.Trigger)
	m.mapBranches(&w.On.PullRequest, "pr", p.PR)

	m.mapVariables(&w.Env, "variables", p.Variables, &errs)

	for i, g := range p.VariableGroups {
		field := fmt.Sprintf("variableGroups[%d]", i)
		m.warnUnknown(field, g.Unknown)
		m.mapVariables(&w.Env, field+".variables", g.Variables, &errs)
	}

	if p.Resources != nil {
		w.Resources = m.mapResources(p.Resources)
	}

	for _, shape := range p.IgnoredShapes {
		m.log.Warn("ignoring job shape", "shape", shape, "selected", p.Work.Shape())
	}

	m.mapJobs(&w.Jobs, p.Work, &errs)

	if err := errs.Err(); err != nil {
		return nil, err
	}

	m.log.Info("mapped pipeline",
		"name", w.Name,
		"shape", p.Work.Shape(),
		"jobs", w.Jobs.Len(),
		"env", w.Env.Len(),
	)

	return w, nil
}

// mapBranches replaces the default branches of dst with those of src, if any.
func (m *Mapper) mapBranches(dst *workflow.BranchFilter, field string, src *azdo.BranchFilter) {
	if src == nil {
		return
	}

	m.warnUnknown(field, src.Unknown)

	if src.None {
		m.log.Warn("trigger disabled in source, keeping default branches",
			"key", field, "line", src.Line, "branches", dst.Branches)

		return
	}

	if src.Branches != nil {
		dst.Branches = slices.Clone(src.Branches)
	}
}

func (m *Mapper) mapVariables(env *common.OrderedMap[*yaml.Node], field string, vars []azdo.Variable, errs *diagnostic.List) {
	for i, v := range vars {
		entry := fmt.Sprintf("%s[%d]", field, i)
		m.warnUnknown(entry, v.Unknown)

		if v.Name == nil || *v.Name == "" {
			errs.Add(diagnostic.MalformedStep, entry, "missing %q%s", "name", at(v.Line))
			continue
		}

		if env.Set(*v.Name, v.Value) {
			m.log.Debug("variable overridden", "name", *v.Name, "by", entry)
		}
	}
}

func (m *Mapper) mapResources(src *azdo.Resources) *workflow.Resources {
	m.warnUnknown("resources", src.Unknown)

	if len(src.Repositories) == 0 {
		return nil
	}

	res := &workflow.Resources{
		Repositories: make([]workflow.Repository, 0, len(src.Repositories)),
	}

	for i, r := range src.Repositories {
		m.warnUnknown(fmt.Sprintf("resources.repositories[%d]", i), r.Unknown)

		res.Repositories = append(res.Repositories, workflow.Repository{
			Repository: r.Repository,
			Type:       r.Type,
			Ref:        r.Ref,
		})
	}

	return res
}

func (m *Mapper) mapJobs(jobs *common.OrderedMap[workflow.Job], src azdo.JobSource, errs *diagnostic.List) {
	if src == nil {
		errs.Add(diagnostic.MissingJobDefinition, "", "none of phases, jobs or stages is defined")
		return
	}

	if src.Len() == 0 {
		m.log.Warn("job shape is empty, workflow has no jobs", "shape", src.Shape())
		return
	}

	b := &jobBuilder{mapper: m, jobs: jobs, errs: errs, origin: map[string]string{}}

	switch s := src.(type) {
	case azdo.Phases:
		for i, ph := range s {
			field := fmt.Sprintf("phases[%d]", i)
			m.warnUnknown(field, ph.Unknown)
			b.add(field, "name", ph.Name, ph.Steps, ph.Line)
		}

	case azdo.Jobs:
		for i, j := range s {
			field := fmt.Sprintf("jobs[%d]", i)
			m.warnUnknown(field, j.Unknown)
			b.add(field, "job", j.Job, j.Steps, j.Line)
		}

	case azdo.Stages:
		for i, st := range s {
			field := fmt.Sprintf("stages[%d]", i)
			m.warnUnknown(field, st.Unknown)

			if st.Jobs == nil {
				errs.Add(diagnostic.MalformedStep, field, "missing %q%s", "jobs", at(st.Line))
				continue
			}

			for k, j := range st.Jobs {
				jobField := fmt.Sprintf("%s.jobs[%d]", field, k)
				m.warnUnknown(jobField, j.Unknown)
				b.add(jobField, "job", j.Job, j.Steps, j.Line)
			}
		}

	default:
		errs.Add(diagnostic.MissingJobDefinition, "", "unsupported job shape %T", src)
	}
}

// jobBuilder adds derived jobs and enforces the name collision policy.
type jobBuilder struct {
	mapper *Mapper
	jobs   *common.OrderedMap[workflow.Job]
	errs   *diagnostic.List
	// origin maps a job name to the field it was first derived from.
	origin map[string]string
}

func (b *jobBuilder) add(field, nameKey string, name *string, steps []azdo.Step, line int) {
	ok := true

	if name == nil || *name == "" {
		b.errs.Add(diagnostic.MalformedStep, field, "missing %q%s", nameKey, at(line))
		ok = false
	}

	if steps == nil {
		b.errs.Add(diagnostic.MalformedStep, field, "missing %q%s", "steps", at(line))
		ok = false
	}

	mapped := make([]workflow.Step, 0, len(steps))

	for i, s := range steps {
		stepField := fmt.Sprintf("%s.steps[%d]", field, i)
		b.mapper.warnUnknown(stepField, s.Unknown)

		if s.DisplayName == nil {
			b.errs.Add(diagnostic.MalformedStep, stepField, "missing %q%s", "displayName", at(s.Line))
			ok = false
		}

		if s.Script == nil {
			b.errs.Add(diagnostic.MalformedStep, stepField, "missing %q%s", "script", at(s.Line))
			ok = false
		}

		if ok {
			mapped = append(mapped, workflow.Step{Name: *s.DisplayName, Run: *s.Script})
		}
	}

	if !ok {
		return
	}

	if first, seen := b.origin[*name]; seen {
		if !b.mapper.opts.AllowJobOverwrite {
			b.errs.Add(diagnostic.MalformedStep, field, "job %q is already defined by %s", *name, first)
			return
		}

		b.mapper.log.Warn("job overwritten", "job", *name, "first", first, "by", field)
	} else {
		b.origin[*name] = field
	}

	b.jobs.Set(*name, workflow.Job{RunsOn: b.mapper.opts.RunsOn, Steps: mapped})
}

// warnUnknown logs every ignored key under prefix.
func (m *Mapper) warnUnknown(prefix string, keys []azdo.UnknownKey) {
	for _, u := range keys {
		key := u.Key
		if prefix != "" {
			key = prefix + "." + u.Key
		}

		attrs := []any{"key", key}
		if u.Line > 0 {
			attrs = append(attrs, "line", u.Line)
		}

		if u.Suggestion != "" {
			attrs = append(attrs, "did_you_mean", u.Suggestion)
		}

		m.log.Warn("ignoring unsupported key", attrs...)
	}
}

// at formats a source line for messages; unknown lines are omitted.
func at(line int) string {
	if line <= 0 {
		return ""
	}

	return fmt.Sprintf(" (line %d)", line)
}
