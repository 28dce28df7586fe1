package convert

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ConvertBatch runs ConvertOne for every request. The result slice has the
// same length and order as reqs; a failing item never affects another.
func (s *Service) ConvertBatch(reqs []ConversionRequest) []ConversionResult {
	results := make([]ConversionResult, len(reqs))
	s.fanOut(len(reqs), func(i int) {
		results[i] = s.ConvertOne(reqs[i])
	})
	s.logger.Debug("conversion batch finished", "items", len(reqs), "failed", countFailed(results, func(r ConversionResult) bool { return r.Success }))
	return results
}

// ParseBatch runs ParseOne for every request, preserving order.
func (s *Service) ParseBatch(reqs []ParseRequest) []ParseResult {
	results := make([]ParseResult, len(reqs))
	s.fanOut(len(reqs), func(i int) {
		results[i] = s.ParseOne(reqs[i])
	})
	s.logger.Debug("parse batch finished", "items", len(reqs), "failed", countFailed(results, func(r ParseResult) bool { return r.Success }))
	return results
}

// Workers returns the effective batch concurrency.
func (s *Service) Workers() int {
	if s.workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return s.workers
}

// fanOut calls fn(i) for i in [0, n) on at most Workers goroutines. Each
// call writes only its own index, so no locking is needed.
func (s *Service) fanOut(n int, fn func(i int)) {
	if n == 0 {
		return
	}
	workers := min(s.Workers(), n)
	if workers == 1 {
		for i := range n {
			fn(i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range n {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

func countFailed[T any](results []T, ok func(T) bool) int {
	n := 0
	for _, r := range results {
		if !ok(r) {
			n++
		}
	}
	return n
}
