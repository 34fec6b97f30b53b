package nlq

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/teranos/contractq/errors"
	"github.com/teranos/contractq/logger"
	"github.com/teranos/contractq/nlq/types"
)

// DefaultBatchConcurrency bounds ClassifyBatch when concurrency <= 0
const DefaultBatchConcurrency = 8

// ClassifyBatch classifies queries concurrently and returns results in
// input order. A failing query only affects its own slot. Queries not yet
// started when ctx is cancelled come back as PROCESSING_ERROR results and
// ctx.Err() is returned.
func (c *Classifier) ClassifyBatch(ctx context.Context, queries []string, concurrency int) ([]types.Result, error) {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}
	results := make([]types.Result, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, q := range queries {
		if gctx.Err() != nil {
			results[i] = errorResult(q, types.CodeProcessingError, errors.Wrap(gctx.Err(), "batch cancelled").Error())
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = errorResult(q, types.CodeProcessingError, errors.Wrap(err, "batch cancelled").Error())
				return nil
			}
			results[i] = c.Classify(q)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		logger.FromContext(ctx, c.logger).Warnw("Batch cancelled",
			logger.FieldBatchSize, len(queries),
			logger.FieldError, err,
		)
		return results, errors.Wrap(err, "classify batch")
	}
	return results, nil
}
