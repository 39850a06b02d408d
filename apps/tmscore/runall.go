package tmscore

import (
	"context"
	"runtime"
	"sync"
)

// Pair is one comparison for RunAll: X is superimposed onto Y.
type Pair struct {
	X, Y Structure
}

// RunAll compares every pair in parallel. The order of execution is
// unspecified, but the order and length of BOTH return values match pairs:
// for every i, exactly one of comparisons[i] and errs[i] is non-nil.
//
// A failed comparison does not stop the others. Verbose output is turned off
// since the comparisons would interleave. At most conf.Workers comparisons
// (GOMAXPROCS if zero) run at once.
func (conf Config) RunAll(ctx context.Context, pairs []Pair) ([]*Comparison, []error) {
	conf.Verbose = false
	workers := conf.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	jobs := make(chan int)
	comparisons := make([]*Comparison, len(pairs))
	errs := make([]error, len(pairs))
	wg := new(sync.WaitGroup)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for job := range jobs {
				if err := ctx.Err(); err != nil {
					errs[job] = err
					continue
				}
				cmp, err := conf.Compare(ctx, pairs[job].X, pairs[job].Y)
				if err != nil {
					errs[job] = err
				} else {
					comparisons[job] = cmp
				}
			}
		}()
	}
	for i := range pairs {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return comparisons, errs
}
