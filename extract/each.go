package extract

import (
	"context"

	"github.com/lmmx/bisque"
	"golang.org/x/sync/errgroup"
)

// Each runs one schema over many parsed documents concurrently, returning
// results in input order. The schema and its compiled selectors are shared
// read-only across goroutines; each goroutine works on its own tree, so no
// synchronization beyond the errgroup is needed. A concurrency below 1 is
// treated as 1.
func Each(ctx context.Context, extractor bisque.Extractor, schema *bisque.Record, docs []*bisque.Node, concurrency int) ([]*bisque.Result, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make([]*bisque.Result, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := extractor.Extract(schema, doc)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
