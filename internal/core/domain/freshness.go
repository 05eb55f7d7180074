package domain

// FreshnessState is the verdict of a path freshness check.
type FreshnessState uint8

const (
	// MissingUpstream means no upstream reference commit could be found.
	MissingUpstream FreshnessState = iota
	// LastModifiedUpstream means the paths are unchanged since Upstream.
	LastModifiedUpstream
	// HasLocalModifications means the paths changed after Upstream.
	HasLocalModifications
)

// String returns a short verdict description.
func (s FreshnessState) String() string {
	switch s {
	case LastModifiedUpstream:
		return "unchanged"
	case HasLocalModifications:
		return "changed"
	default:
		return "indeterminate"
	}
}

// Freshness answers whether a set of source paths changed relative to upstream.
type Freshness struct {
	State FreshnessState
	// Upstream is the reference commit. For LastModifiedUpstream it is the last
	// upstream commit that touched the paths. Empty for MissingUpstream.
	Upstream string
}

// GitConfig holds the repository conventions needed to locate upstream commits.
type GitConfig struct {
	NightlyBranch    string
	MergeCommitEmail string
	Repository       string
}

// CIEnv identifies the continuous integration environment, if any.
type CIEnv uint8

const (
	// CINone is a local, non-CI run.
	CINone CIEnv = iota
	// CIGitHubActions is a GitHub Actions run.
	CIGitHubActions
)

// String returns the environment name.
func (c CIEnv) String() string {
	if c == CIGitHubActions {
		return "github-actions"
	}
	return "none"
}

// Flags are the global execution switches of one build invocation.
// They are set once and never change for the lifetime of a context.
type Flags struct {
	DryRun   bool
	Verbose  int
	FailFast bool
}
