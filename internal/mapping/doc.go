// Package mapping converts a decoded Azure DevOps pipeline into a GitHub
// Actions workflow.
//
// The transform is a single deterministic pass with a fixed order:
//
//  1. name: the pipeline name when the key is present (even if empty),
//     otherwise Options.DefaultName
//  2. on.push.branches and on.pull_request.branches start as [main]
//  3. trigger branches replace on.push.branches
//  4. pr branches replace on.pull_request.branches; trigger: none and
//     pr: none keep the defaults and log a warning
//  5. variables are copied into env as written (3.10 stays 3.10)
//  6. variableGroups are flattened into env; the last write of a name wins
//  7. resources.repositories are copied entry by entry
//  8. jobs are derived from the selected job shape (phases, jobs or stages);
//     every job runs on Options.RunsOn
//
// Steps map displayName to name and script to run; the script text is never
// altered.
//
// # Failures
//
// A step without displayName or script, a phase or job without its name or
// steps, a stage without jobs, and a variable entry without a name are
// MalformedStep errors. No job shape at all is MissingJobDefinition; a
// shape that is present but empty yields a workflow without jobs. All problems are collected and returned together;
// a failed conversion never yields a partial workflow.
//
// # Job name collisions
//
// Two derived jobs with the same name (for example the same job name in two
// stages, whose grouping is flattened away) are a MalformedStep error unless
// Options.AllowJobOverwrite is set, in which case the later job replaces the
// earlier one in place and a warning is logged.
package mapping
