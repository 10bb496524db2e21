package mapping

// Defaults applied by applyDefaults.
const (
	DefaultWorkflowName = "Azure Pipeline"
	DefaultRunsOn       = "ubuntu-latest"
	DefaultBranch       = "main"
)

// Options tunes the conversion.
type Options struct {
	// DefaultName is the workflow name used when the pipeline has none.
	DefaultName string
	// RunsOn is the runner label given to every job.
	RunsOn string
	// AllowJobOverwrite lets a later job replace an earlier job of the same name
	// instead of failing the conversion.
	AllowJobOverwrite bool
}

// applyDefaults fills in default values for empty options.
func applyDefaults(o *Options) {
	if o.DefaultName == "" {
		o.DefaultName = DefaultWorkflowName
	}

	if o.RunsOn == "" {
		o.RunsOn = DefaultRunsOn
	}
}
