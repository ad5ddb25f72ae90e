package enhance

import (
	"context"

	"golang.org/x/sync/errgroup"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/bundlegraph/cli/internal/identity"
	"github.com/bundlegraph/cli/internal/output"
)

// EnhanceAll enhances targets concurrently with at most workers running at
// once. Every target runs to completion regardless of the others; bundles
// are returned in target order with nil entries for failures, and the
// failures are returned as one aggregate error.
func (e *Enhancer) EnhanceAll(ctx context.Context, targets []identity.Identity, workers int) ([]*Bundle, error) {
	if workers < 1 {
		workers = 1
	}

	bundles := make([]*Bundle, len(targets))
	errs := make([]error, len(targets))

	var g errgroup.Group
	g.SetLimit(workers)

	output.Debug("enhancing targets", "count", len(targets), "workers", workers)
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			bundles[i], errs[i] = e.Enhance(target)
			return nil
		})
	}
	_ = g.Wait()

	var failed []error
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	output.Debug("enhancement complete", "bundles", len(targets)-len(failed), "errors", len(failed))
	return bundles, utilerrors.NewAggregate(failed)
}
