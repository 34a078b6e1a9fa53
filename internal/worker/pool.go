// Package worker bounds parallelism for multi-deck batch runs. Claims
// inside one deck are always verified sequentially; only whole decks fan
// out across workers, each carrying its own rate-limit backoff.
package worker

import (
	"context"
	"sync"

	"github.com/sagolabs/sago/internal/model"
)

// Analyzer runs the full analysis for one deck file. Implemented by the
// pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, deckPath string) (*model.DeckAnalysis, error)
}

// DeckResult is the outcome of one deck in a batch run
type DeckResult struct {
	Path     string
	Analysis *model.DeckAnalysis
	Err      error
}

// Pool fans a list of deck files out to a bounded set of workers
type Pool struct {
	analyzer Analyzer
	workers  int
}

// NewPool creates a pool. Fewer than one worker means one.
func NewPool(analyzer Analyzer, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{analyzer: analyzer, workers: workers}
}

// Run analyzes all decks and returns results in input order, one per
// path. A failed deck carries its error; it never aborts the others.
func (p *Pool) Run(ctx context.Context, paths []string) []DeckResult {
	results := make([]DeckResult, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				analysis, err := p.analyzer.Analyze(ctx, paths[i])
				results[i] = DeckResult{Path: paths[i], Analysis: analysis, Err: err}
			}
		}()
	}

	fed := 0
feed:
	for ; fed < len(paths); fed++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- fed:
		}
	}
	close(jobs)
	wg.Wait()

	// Decks never handed to a worker report the cancellation
	for i := fed; i < len(paths); i++ {
		if results[i].Path == "" {
			results[i] = DeckResult{Path: paths[i], Err: ctx.Err()}
		}
	}

	return results
}
