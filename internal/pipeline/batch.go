package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/manojvishalkijo/xevedoc/constants"
	"github.com/manojvishalkijo/xevedoc/internal/entity"
)

// ProcessBatch runs every path through the pipeline with bounded concurrency
// and returns one record per input, index-aligned with the input slice. A
// single document's failure never aborts the batch, and cancellation marks
// not-yet-started documents failed while in-flight ones finish or time out.
func (p *Processor) ProcessBatch(ctx context.Context, paths []string) []*entity.ProcessedDocument {
	start := time.Now()
	results := make([]*entity.ProcessedDocument, len(paths))

	g := new(errgroup.Group)
	g.SetLimit(p.workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				doc := p.failedDocument(path, fmt.Errorf("processing cancelled: %w", err))
				results[i] = doc
				p.events.DocumentFailed(doc)
				return nil
			}
			results[i] = p.ProcessDocument(ctx, path)
			return nil
		})
	}
	_ = g.Wait()

	var completed, failed int
	for _, doc := range results {
		if doc.Status == constants.StatusCompleted {
			completed++
		} else {
			failed++
		}
	}
	p.logger.Info("pipeline.batch.done",
		"total", len(results),
		"completed", completed,
		"failed", failed,
		"workers", p.workers,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return results
}
