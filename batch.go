package xl2pdf

import (
	"context"
	"time"
)

// Run processes requests strictly in input order in a single pass, then
// retries the failed ones for up to retryCount additional passes. A single
// file's failure never aborts the batch.
//
// Before each retry pass, stray renderer processes are killed system-wide
// and the driver pauses briefly so file locks can clear. The kill is not
// scoped to this process's sessions; it also hits unrelated instances of
// the application.
func (s *Service) Run(ctx context.Context, requests []Request, retryCount int) Summary {
	results := make([]Result, len(requests))
	var failed []int

	for i, req := range requests {
		results[i] = s.Convert(ctx, req)
		if results[i].Err != nil {
			failed = append(failed, i)
		}
	}

	recovered := 0
	for pass := 0; pass < retryCount && len(failed) > 0; pass++ {
		if ctx.Err() != nil {
			break
		}
		s.reclaimRenderer(ctx)

		var still []int
		for _, i := range failed {
			r := s.Convert(ctx, requests[i])
			results[i] = r
			if r.Err != nil {
				still = append(still, i)
			} else {
				recovered++
			}
		}
		failed = still
	}

	sum := Summary{Total: len(requests), Recovered: recovered, Results: results}
	for _, r := range results {
		if r.Err != nil {
			sum.Failed++
		} else {
			sum.Succeeded++
		}
	}
	return sum
}

// reclaimRenderer kills lingering renderer processes and waits for locks to
// clear. Blunt, but the only recovery for a response-less instance.
func (s *Service) reclaimRenderer(ctx context.Context) {
	s.killStray()
	select {
	case <-time.After(s.cfg.retryPause):
	case <-ctx.Done():
	}
}
