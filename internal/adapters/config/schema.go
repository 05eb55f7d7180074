package config

// Kilnfile represents the structure of the kiln.yaml configuration file.
type Kilnfile struct {
	Build BuildDTO `yaml:"build"`
	Git   GitDTO   `yaml:"git"`
}

// BuildDTO holds the default execution flags.
type BuildDTO struct {
	DryRun   bool `yaml:"dry_run"`
	Verbose  int  `yaml:"verbose"`
	FailFast bool `yaml:"fail_fast"`
	Jobs     int  `yaml:"jobs"`
}

// GitDTO holds the repository conventions used by freshness checks.
type GitDTO struct {
	NightlyBranch    string `yaml:"nightly_branch"`
	MergeCommitEmail string `yaml:"merge_commit_email"`
	Repository       string `yaml:"repository"`
}

// Planfile represents the structure of a plan file.
type Planfile struct {
	Steps []StepDTO `yaml:"steps"`
}

// StepDTO represents one plan step. Exactly one of Run, Read, Exists, Fresh
// and DiffIndex must be set.
type StepDTO struct {
	Name      string        `yaml:"name"`
	Run       []string      `yaml:"run"`
	Dir       string        `yaml:"dir"`
	OnFailure string        `yaml:"on_failure"`
	Always    bool          `yaml:"always"`
	Stdout    string        `yaml:"stdout"`
	Stderr    string        `yaml:"stderr"`
	Read      string        `yaml:"read"`
	Exists    string        `yaml:"exists"`
	Fresh     *FreshDTO     `yaml:"fresh"`
	DiffIndex *DiffIndexDTO `yaml:"diff_index"`
}

// FreshDTO describes a freshness check.
type FreshDTO struct {
	Root  string   `yaml:"root"`
	Paths []string `yaml:"paths"`
}

// DiffIndexDTO describes a diff-index check.
type DiffIndexDTO struct {
	Base  string   `yaml:"base"`
	Dir   string   `yaml:"dir"`
	Paths []string `yaml:"paths"`
}
