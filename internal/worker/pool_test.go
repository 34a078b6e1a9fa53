package worker

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/sagolabs/sago/internal/model"
)

// fakeAnalyzer records calls and fails on marked paths
type fakeAnalyzer struct {
	calls int32
}

func (f *fakeAnalyzer) Analyze(_ context.Context, deckPath string) (*model.DeckAnalysis, error) {
	atomic.AddInt32(&f.calls, 1)
	if strings.Contains(deckPath, "broken") {
		return nil, fmt.Errorf("load deck: no such file")
	}
	return &model.DeckAnalysis{DeckFile: deckPath, CompanyName: "Acme"}, nil
}

func TestNewPool_DefaultsToOneWorker(t *testing.T) {
	if p := NewPool(&fakeAnalyzer{}, 0); p.workers != 1 {
		t.Errorf("Expected 1 worker for 0 input, got %d", p.workers)
	}
	if p := NewPool(&fakeAnalyzer{}, -3); p.workers != 1 {
		t.Errorf("Expected 1 worker for negative input, got %d", p.workers)
	}
}

func TestPool_Run_OrderPreserved(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	pool := NewPool(analyzer, 3)

	paths := []string{"a.txt", "b.txt", "c.txt", "d.txt", "e.txt"}
	results := pool.Run(context.Background(), paths)

	if len(results) != len(paths) {
		t.Fatalf("Expected %d results, got %d", len(paths), len(results))
	}
	for i, result := range results {
		if result.Path != paths[i] {
			t.Errorf("Result %d: expected path %s, got %s", i, paths[i], result.Path)
		}
		if result.Err != nil {
			t.Errorf("Result %d: unexpected error %v", i, result.Err)
		}
		if result.Analysis == nil || result.Analysis.DeckFile != paths[i] {
			t.Errorf("Result %d: analysis missing or mismatched", i)
		}
	}
	if got := atomic.LoadInt32(&analyzer.calls); got != int32(len(paths)) {
		t.Errorf("Expected %d analyze calls, got %d", len(paths), got)
	}
}

func TestPool_Run_FailedDeckDoesNotAbortOthers(t *testing.T) {
	pool := NewPool(&fakeAnalyzer{}, 2)

	results := pool.Run(context.Background(), []string{"good.txt", "broken.txt", "other.txt"})

	if results[1].Err == nil {
		t.Error("Expected error for broken deck")
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("Expected surrounding decks to succeed, got %v and %v", results[0].Err, results[2].Err)
	}
}

func TestPool_Run_Empty(t *testing.T) {
	pool := NewPool(&fakeAnalyzer{}, 2)
	if results := pool.Run(context.Background(), nil); len(results) != 0 {
		t.Errorf("Expected no results for empty input, got %d", len(results))
	}
}

func TestPool_Run_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool(&fakeAnalyzer{}, 1)
	results := pool.Run(ctx, []string{"a.txt", "b.txt"})

	if len(results) != 2 {
		t.Fatalf("Expected a result per path even when cancelled, got %d", len(results))
	}
	for i, result := range results {
		if result.Path == "" {
			t.Errorf("Result %d: missing path", i)
		}
	}
}
