package correction

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Strategy selects how a batch is dispatched.
type Strategy string

const (
	StrategySequential Strategy = "sequential"
	StrategyConcurrent Strategy = "concurrent"
)

// Dispatcher fans batches of correction items out to the service, isolating
// per-item failures so one bad value never aborts the batch.
type Dispatcher struct {
	service    *Service
	maxWorkers int
}

// NewDispatcher builds a dispatcher. maxWorkers caps the concurrent
// strategy's parallelism; each batch uses at most min(maxWorkers,
// len(items)) workers.
func NewDispatcher(service *Service, maxWorkers int) *Dispatcher {
	return &Dispatcher{service: service, maxWorkers: maxWorkers}
}

// Dispatch runs the batch with the requested strategy and assembles the
// aggregate result. Results come back in input order regardless of
// completion order, and ProcessingTime covers the whole batch in seconds.
func (d *Dispatcher) Dispatch(ctx context.Context, companyID string, items []BatchItem, strategy Strategy) BatchResult {
	start := time.Now()
	batchID := uuid.NewString()
	log.Printf("batch dispatch id=%s company=%s items=%d strategy=%s", batchID, companyID, len(items), strategy)

	var results []CorrectionVerdict
	if strategy == StrategyConcurrent {
		results = d.runConcurrent(ctx, items)
	} else {
		results = d.runSequential(ctx, items)
	}

	made := 0
	for _, verdict := range results {
		if verdict.CorrectionNeeded {
			made++
		}
	}

	elapsed := time.Since(start)
	log.Printf("batch done id=%s items=%d corrections=%d duration=%s", batchID, len(items), made, elapsed.Round(time.Millisecond))

	return BatchResult{
		TotalItems:      len(items),
		CorrectionsMade: made,
		Results:         results,
		ProcessingTime:  elapsed.Seconds(),
		CompanyID:       companyID,
	}
}

func (d *Dispatcher) runSequential(ctx context.Context, items []BatchItem) []CorrectionVerdict {
	results := make([]CorrectionVerdict, len(items))
	for i, item := range items {
		results[i] = d.correctItem(ctx, item)
	}
	return results
}

func (d *Dispatcher) runConcurrent(ctx context.Context, items []BatchItem) []CorrectionVerdict {
	workers := d.maxWorkers
	if workers > len(items) {
		workers = len(items)
	}
	if workers < 1 {
		log.Printf("batch concurrent unavailable workers=%d, running sequentially", workers)
		return d.runSequential(ctx, items)
	}

	// Each worker writes only its own pre-assigned slot, keeping results
	// in input order without a collector.
	results := make([]CorrectionVerdict, len(items))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, item := range items {
		g.Go(func() error {
			results[i] = d.correctItem(ctx, item)
			return nil
		})
	}
	// Item failures degrade into verdicts, never into worker errors.
	_ = g.Wait()
	return results
}

// correctItem never fails: gateway errors, parse errors and panics all
// degrade into a verdict whose Reasoning records what went wrong.
func (d *Dispatcher) correctItem(ctx context.Context, item BatchItem) (verdict CorrectionVerdict) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("batch item panic field=%s: %v", item.FieldName, r)
			verdict = degradedVerdict(item, fmt.Errorf("panic: %v", r))
		}
	}()

	verdict, err := d.service.Correct(ctx, item.FieldName, item.CurrentValue, item.SpecificGuidance)
	if err != nil {
		return degradedVerdict(item, err)
	}
	return verdict
}

func degradedVerdict(item BatchItem, err error) CorrectionVerdict {
	return CorrectionVerdict{
		FieldName:        item.FieldName,
		OriginalValue:    item.CurrentValue,
		CorrectionNeeded: false,
		CorrectedValue:   nil,
		CorrectionType:   CorrectionNone,
		Confidence:       0,
		Reasoning:        fmt.Sprintf("Error: %v", err),
	}
}
