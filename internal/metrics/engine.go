package metrics

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sells-group/outbound-metrics/internal/model"
)

// Engine computes all reports for an index. The bucket tables and ranker
// thresholds are fixed at construction; the engine itself holds no dataset
// state and is safe for concurrent use.
type Engine struct {
	buckets    Tables
	thresholds Thresholds
}

// NewEngine builds an engine from immutable bucket tables and thresholds.
func NewEngine(buckets Tables, thresholds Thresholds) *Engine {
	return &Engine{buckets: buckets, thresholds: thresholds}
}

// EmployeeBucketLabels returns the employee band labels in band order.
func (e *Engine) EmployeeBucketLabels() []string {
	return e.buckets.Employee.Labels()
}

// Bundle computes every report from one index. The reports are independent
// reads of the same immutable index, so they run concurrently.
func (e *Engine) Bundle(ctx context.Context, idx *Index) (*model.MetricsBundle, error) {
	var bundle model.MetricsBundle

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { bundle.Coverage = e.Coverage(idx); return nil })
	g.Go(func() error { bundle.Engagement = e.EngagementCoverage(idx); return nil })
	g.Go(func() error { bundle.EmployeeARR = e.EmployeeBucketARR(idx); return nil })
	g.Go(func() error { bundle.TouchTiming = e.TouchTiming(idx); return nil })
	g.Go(func() error { bundle.Industry = e.Industry(idx, IndustryFilter{}); return nil })
	g.Go(func() error { bundle.ARRBands = e.ARRDistribution(idx); return nil })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &bundle, nil
}
