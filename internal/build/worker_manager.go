package build

import (
	"bytes"
	"context"
	"sync"
)

// job is one output file. Exactly one of static or render is set.
type job struct {
	name   string
	static []byte
	render func(ctx context.Context, buf *bytes.Buffer) error
}

type jobResult struct {
	name    string
	digest  string
	written bool
	err     error
}

// runJobs processes jobs on a fixed pool of workers and returns the results
// in job order. Jobs not yet started when ctx is cancelled are skipped and
// report the context error.
func runJobs(ctx context.Context, workers int, jobs []job, process func(context.Context, job) jobResult) []jobResult {
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]jobResult, len(jobs))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				if err := ctx.Err(); err != nil {
					results[i] = jobResult{name: jobs[i].name, err: err}
					continue
				}
				results[i] = process(ctx, jobs[i])
			}
		}()
	}

	for i := range jobs {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results
}
