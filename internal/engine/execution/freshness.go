package execution

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
)

// CheckPathModifications returns the freshness verdict for patterns under
// srcRoot, querying the oracle at most once per (srcRoot, patterns) pair.
//
// Pattern order is part of the key. cfg is not, since it is fixed for an
// invocation. Oracle failures are fatal.
func (c *Context) CheckPathModifications(
	ctx context.Context,
	srcRoot string,
	cfg domain.GitConfig,
	patterns []string,
) domain.Freshness {
	key := freshnessKey{root: srcRoot, patterns: domain.InternJoined(patterns, ",")}

	verdict, hit, err := c.freshness.Do(key, func() (domain.Freshness, error) {
		ctx, span := c.startSpan(ctx, "check path modifications")
		defer span.End()
		span.SetAttribute("kiln.root", srcRoot)
		span.SetAttribute("kiln.patterns", strings.Join(patterns, ","))

		c.VerbosePrint(fmt.Sprintf("checking path modifications in %s for %v", srcRoot, patterns))
		verdict, err := c.oracle.CheckPathModifications(ctx, srcRoot, cfg, patterns, c.ci)
		if err != nil {
			span.RecordError(err)
			return verdict, err
		}
		span.SetAttribute("kiln.freshness", verdict.State.String())
		return verdict, nil
	})
	if hit {
		c.VerbosePrint(fmt.Sprintf("(cached) checking path modifications in %s for %v", srcRoot, patterns))
	}
	if err != nil {
		c.Fatal(fmt.Sprintf("failed to check path modifications in %s: %v", srcRoot, err))
		return domain.Freshness{}
	}
	return verdict
}
