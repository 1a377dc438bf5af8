// Package scan classifies batches of URLs in parallel.
package scan

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/guiyumin/linkparse/internal/linkparser"
	"github.com/rs/zerolog"
)

// Result is the classification of one input URL
type Result struct {
	Index int
	URL   string
	Link  linkparser.Link
	OK    bool
}

// ProgressFunc is called after each URL with the number done so far
type ProgressFunc func(done, total int)

// Options configures a Scanner
type Options struct {
	Workers int // Number of parallel workers (default 8)
	Logger  zerolog.Logger
}

// Scanner fans URLs out to workers sharing a single parser
type Scanner struct {
	parser  *linkparser.Parser
	workers int
	logger  zerolog.Logger
}

// New creates a Scanner
func New(parser *linkparser.Parser, opts Options) *Scanner {
	if opts.Workers <= 0 {
		opts.Workers = 8
	}
	return &Scanner{
		parser:  parser,
		workers: opts.Workers,
		logger:  opts.Logger,
	}
}

// job is one URL and its position in the input
type job struct {
	index int
	url   string
}

// Scan classifies urls and returns results in input order.
// progress may be nil. On cancellation the partial results are discarded.
func (s *Scanner) Scan(ctx context.Context, urls []string, progress ProgressFunc) ([]Result, error) {
	results := make([]Result, len(urls))
	if len(urls) == 0 {
		return results, nil
	}

	jobs := make(chan job)
	var done atomic.Int64
	var wg sync.WaitGroup

	workers := min(s.workers, len(urls))
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				link, ok := s.parser.Resolve(j.url)
				// Each index is written by exactly one worker
				results[j.index] = Result{Index: j.index, URL: j.url, Link: link, OK: ok}

				if ok {
					s.logger.Debug().Str("url", j.url).Str("service", link.Service).Str("id", link.ID).Msg("recognized")
				} else {
					s.logger.Debug().Str("url", j.url).Msg("unrecognized")
				}

				n := done.Add(1)
				if progress != nil {
					progress(int(n), len(urls))
				}
			}
		}()
	}

feed:
	for i, u := range urls {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{index: i, url: u}:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
