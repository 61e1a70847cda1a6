package rossum

import "context"

// ExtractAll runs Extract for every document over the default runner and
// returns results positionally aligned with docs. Each document still goes
// through its own independent submit, poll and fetch cycle; the first failure
// cancels the remaining work.
func (c *Client) ExtractAll(ctx context.Context, docs []Document, optFns ...ExtractOption) ([]*ExtractionResult, error) {
	return c.ExtractAllWith(ctx, DefaultRunner(ctx), docs, optFns...)
}

// ExtractAllWith is ExtractAll with a caller-supplied Runner, e.g. one from
// NewLimitedRunner to bound how many jobs are in flight at once.
func (c *Client) ExtractAllWith(ctx context.Context, r Runner, docs []Document, optFns ...ExtractOption) ([]*ExtractionResult, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	// Use the derived ctx if we're on the default runner; otherwise fall back.
	runCtx := ctx
	if d, ok := r.(*errGroupRunner); ok {
		runCtx = d.ctx
	}

	results := make([]*ExtractionResult, len(docs))
	for i, doc := range docs {
		i, doc := i, doc // loop capture
		r.Go(func() error {
			res, err := c.Extract(runCtx, doc, optFns...)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := r.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
