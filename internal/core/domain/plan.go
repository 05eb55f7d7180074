package domain

// StepKind names the action a plan step performs.
type StepKind string

const (
	// StepRun executes a command.
	StepRun StepKind = "run"
	// StepRead reads a file.
	StepRead StepKind = "read"
	// StepExists checks that a path exists.
	StepExists StepKind = "exists"
	// StepFresh checks path freshness against upstream.
	StepFresh StepKind = "fresh"
	// StepDiffIndex checks for differences against a base commit.
	StepDiffIndex StepKind = "diff_index"
)

// Step is one independent unit of work in a plan.
type Step struct {
	Name    string
	Kind    StepKind
	Command Command
	Stdout  OutputMode
	Stderr  OutputMode
	// Path is the target of read and exists steps.
	Path string
	// Root is the source root of fresh steps and the directory of diff_index steps.
	Root     string
	Patterns []string
	// Base is the commit diff_index steps compare against.
	Base string
}

// Plan is an ordered list of independent steps.
type Plan struct {
	Steps []Step
}

// Settings is the resolved configuration of an invocation.
type Settings struct {
	Flags Flags
	Jobs  int
	Git   GitConfig
	// Root is the directory containing the configuration file, or the working
	// directory when none was found.
	Root string
}

// ConfigFileName is the name of the configuration file searched for from the
// working directory upwards.
const ConfigFileName = "kiln.yaml"
