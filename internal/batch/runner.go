// Package batch prepares many hits concurrently.
//
// Each hit is decoded independently, so records fan out over a bounded
// errgroup. Results land in per-index slots; skipped records are collected
// under a mutex and reported in input order.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aria-lang/hspflow/internal/alignment"
	"github.com/aria-lang/hspflow/internal/hit"
	"github.com/aria-lang/hspflow/internal/metrics"
	"github.com/aria-lang/hspflow/internal/stats"
)

// Policy decides what a failing record does to the batch.
type Policy string

const (
	// PolicySkip drops failing records and keeps going
	PolicySkip Policy = "skip"
	// PolicyAbort stops the batch at the first failing record
	PolicyAbort Policy = "abort"
)

// Options configures a Runner.
type Options struct {
	Workers     int
	Policy      Policy
	Multipliers hit.Multipliers
}

// Skipped describes a record left out of the report.
type Skipped struct {
	Index    int    `json:"index"`
	QueryID  string `json:"query_id"`
	TargetID string `json:"target_id"`
	Reason   string `json:"reason"`
	Err      error  `json:"-"`
}

// Report is the outcome of one batch run.
type Report struct {
	RunID     uuid.UUID         `json:"run_id"`
	Summaries []*hit.Summary    `json:"summaries"`
	Skipped   []Skipped         `json:"skipped,omitempty"`
	Stats     *stats.BatchStats `json:"stats,omitempty"`
	Elapsed   time.Duration     `json:"elapsed_ns"`
}

// Runner prepares batches of hits.
type Runner struct {
	opts   Options
	logger *slog.Logger
}

// NewRunner creates a runner. Workers defaults to the CPU count and Policy
// to PolicySkip.
func NewRunner(opts Options, logger *slog.Logger) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Policy == "" {
		opts.Policy = PolicySkip
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{opts: opts, logger: logger}
}

// Run prepares every hit. With PolicyAbort the first failing record cancels
// the remaining work and its error is returned.
func (r *Runner) Run(ctx context.Context, hits []*hit.Hit) (*Report, error) {
	started := time.Now()
	report := &Report{RunID: uuid.New()}
	logger := r.logger.With(slog.String("run_id", report.RunID.String()))

	logger.Info("batch started",
		slog.Int("records", len(hits)),
		slog.Int("workers", r.opts.Workers),
		slog.String("policy", string(r.opts.Policy)),
	)

	results := make([]*hit.Summary, len(hits))
	var (
		mu      sync.Mutex
		skipped []Skipped
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for i, h := range hits {
		if gctx.Err() != nil {
			break
		}
		i, h := i, h
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if h == nil {
				return r.fail(logger, i, &hit.Hit{}, fmt.Errorf("record is null"), &mu, &skipped)
			}

			t0 := time.Now()
			sum, err := hit.Prepare(h, r.opts.Multipliers)
			metrics.ObserveHit(len(h.HSPs), time.Since(t0), err)
			if err != nil {
				return r.fail(logger, i, h, err, &mu, &skipped)
			}
			results[i] = sum
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		metrics.ObserveBatch(true)
		logger.Error("batch aborted", slog.String("error", err.Error()))
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		metrics.ObserveBatch(true)
		return nil, err
	}

	report.Summaries = make([]*hit.Summary, 0, len(hits))
	for _, sum := range results {
		if sum != nil {
			report.Summaries = append(report.Summaries, sum)
		}
	}
	slices.SortFunc(skipped, func(a, b Skipped) int { return a.Index - b.Index })
	report.Skipped = skipped

	if len(report.Summaries) > 0 {
		bs, err := stats.FromSummaries(report.Summaries)
		if err != nil {
			return nil, err
		}
		report.Stats = bs
	}
	report.Elapsed = time.Since(started)
	metrics.ObserveBatch(false)

	logger.Info("batch finished",
		slog.Int("prepared", len(report.Summaries)),
		slog.Int("skipped", len(report.Skipped)),
		slog.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}

// fail logs a failing record and either records it as skipped or returns
// the error that aborts the batch.
func (r *Runner) fail(logger *slog.Logger, index int, h *hit.Hit, err error, mu *sync.Mutex, skipped *[]Skipped) error {
	attrs := []any{
		slog.Int("index", index),
		slog.String("query_id", h.QueryID),
		slog.String("target_id", h.TargetID),
		slog.String("error", err.Error()),
	}

	var (
		empty *alignment.EmptyAlignmentError
		shape *alignment.ShapeMismatchError
	)
	switch {
	case errors.As(err, &empty):
		logger.Warn("skipping empty alignment", append(attrs,
			slog.String("query", empty.Query),
			slog.String("hit", empty.Hit),
			slog.String("similarity", empty.Similarity),
		)...)
	case errors.As(err, &shape):
		logger.Error("coordinate metadata disagrees with alignment", attrs...)
	default:
		logger.Error("record failed", attrs...)
	}

	if r.opts.Policy == PolicyAbort {
		return fmt.Errorf("record %d (%s vs %s): %w", index, h.QueryID, h.TargetID, err)
	}

	mu.Lock()
	*skipped = append(*skipped, Skipped{
		Index:    index,
		QueryID:  h.QueryID,
		TargetID: h.TargetID,
		Reason:   metrics.ResultLabel(err),
		Err:      err,
	})
	mu.Unlock()
	return nil
}
