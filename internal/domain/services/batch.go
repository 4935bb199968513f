// Package services contains domain business logic.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ersonp/bioid/internal/domain/entities"
	"github.com/ersonp/bioid/internal/domain/ports"
)

// DefaultRequestDelay is the pause between two consecutive provider requests.
const DefaultRequestDelay = 1500 * time.Millisecond

// Log lines shared by both analysis phases.
const (
	msgStoppedByUser = "Analysis stopped by user."
	msgNotResolved   = "Not Resolved"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// sleep waits for d, returning early with the context error when ctx is done.
var sleep = func(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// BatchObserver receives incremental updates while a batch runs.
type BatchObserver interface {
	// Log records one user-visible log line.
	Log(message string)
	// Progress publishes the cumulative results after entity number done.
	Progress(done, total int, results []entities.EntityResult)
}

// BatchRequest describes one pass over a list of entities.
type BatchRequest struct {
	Entities   []string
	Options    entities.SearchOptions
	DeepSearch bool
	// Existing is the collection deep search replaces results into.
	// Ignored for an initial pass.
	Existing []entities.EntityResult
}

// PhaseMetrics summarizes one pass.
type PhaseMetrics struct {
	Processed   int
	Resolved    int
	SuccessRate float64 // percent of processed entities without issues
	AverageTime float64 // seconds per processed entity
}

// BatchOutcome is the result of a pass.
type BatchOutcome struct {
	Results []entities.EntityResult
	Metrics PhaseMetrics
	Stopped bool
}

// BatchRunner drives an EntityResolver over an ordered list of entities,
// one request at a time, with a fixed delay between requests.
type BatchRunner struct {
	resolver ports.EntityResolver
	delay    time.Duration
}

// NewBatchRunner creates a runner using resolver and the given request delay.
func NewBatchRunner(resolver ports.EntityResolver, delay time.Duration) *BatchRunner {
	return &BatchRunner{
		resolver: resolver,
		delay:    delay,
	}
}

// Run processes req.Entities in order. Cancelling ctx stops the pass at the
// next iteration boundary; a request already in flight is allowed to finish.
func (r *BatchRunner) Run(ctx context.Context, req BatchRequest, obs BatchObserver) *BatchOutcome {
	if obs == nil {
		obs = nopObserver{}
	}

	var results []entities.EntityResult
	if req.DeepSearch {
		results = entities.CloneResults(req.Existing)
	} else {
		results = make([]entities.EntityResult, 0, len(req.Entities))
	}

	verb := "Processing"
	if req.DeepSearch {
		verb = "Deep searching"
	}

	out := &BatchOutcome{}
	total := len(req.Entities)
	processed, resolved := 0, 0
	var totalTime float64

	// Provider calls in a loop are intentional: requests are rate limited and
	// must complete one by one.
	for i, name := range req.Entities {
		if ctx.Err() != nil {
			obs.Log(msgStoppedByUser)
			out.Stopped = true
			break
		}

		obs.Log(fmt.Sprintf("%s (%d/%d): %s", verb, i+1, total, name))

		if i > 0 {
			if err := sleep(ctx, r.delay); err != nil {
				obs.Log(msgStoppedByUser)
				out.Stopped = true
				break
			}
		}

		result, err := r.process(context.WithoutCancel(ctx), name, req)
		processed++
		if err != nil {
			obs.Log(fmt.Sprintf("Error processing '%s': %s", name, err))
			if !req.DeepSearch {
				results = append(results, entities.FailedResult(name, err))
			}
		} else {
			totalTime += result.ProcessingTime
			if !result.Failed() {
				resolved++
			}

			if req.DeepSearch {
				if idx := entities.IndexOf(results, name); idx != -1 {
					results[idx] = result
				}
			} else {
				results = append(results, result)
			}

			resolvedName := result.ResolvedName
			if resolvedName == "" {
				resolvedName = msgNotResolved
			}
			obs.Log(fmt.Sprintf("Processed: %s -> %s", name, resolvedName))
		}

		obs.Progress(i+1, total, entities.CloneResults(results))
	}

	out.Results = results
	out.Metrics = computeMetrics(processed, resolved, totalTime)
	logMetrics(obs, out.Metrics)

	return out
}

// process resolves one entity and times the round-trip.
func (r *BatchRunner) process(ctx context.Context, name string, req BatchRequest) (entities.EntityResult, error) {
	start := timeNow()
	res, err := r.resolver.Resolve(ctx, ports.ResolveRequest{
		EntityName: name,
		Options:    req.Options,
		DeepSearch: req.DeepSearch,
	})
	if err != nil {
		return entities.EntityResult{}, err
	}
	if res == nil {
		return entities.EntityResult{}, errors.New("empty response from provider")
	}

	elapsed := timeNow().Sub(start).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	return entities.NewEntityResult(name, res, elapsed), nil
}

func computeMetrics(processed, resolved int, totalTime float64) PhaseMetrics {
	m := PhaseMetrics{Processed: processed, Resolved: resolved}
	if processed > 0 {
		m.SuccessRate = float64(resolved) / float64(processed) * 100
		m.AverageTime = totalTime / float64(processed)
	}
	return m
}

func logMetrics(obs BatchObserver, m PhaseMetrics) {
	obs.Log("--- Run Phase Complete ---")
	obs.Log(fmt.Sprintf("Total Processed: %d", m.Processed))
	obs.Log(fmt.Sprintf("Successfully Resolved: %d (%.1f%%)", m.Resolved, m.SuccessRate))
	obs.Log(fmt.Sprintf("Average Time/Entity: %.2fs", m.AverageTime))
}

type nopObserver struct{}

func (nopObserver) Log(string)                                {}
func (nopObserver) Progress(int, int, []entities.EntityResult) {}
