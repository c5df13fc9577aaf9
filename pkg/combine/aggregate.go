// File: pkg/combine/aggregate.go
package combine

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Progress receives per-file progress from the Aggregator.
type Progress interface {
	Start(total int)
	Increment()
	Finish(message string)
}

type nopProgress struct{}

func (nopProgress) Start(int)     {}
func (nopProgress) Increment()    {}
func (nopProgress) Finish(string) {}

// Aggregator streams accepted candidates into a single output writer.
type Aggregator struct {
	selector *Selector
	logger   *zap.Logger
	preamble bool
	workers  int
	progress Progress
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithPreamble controls whether the self-identifying header is written.
func WithPreamble(enabled bool) AggregatorOption {
	return func(a *Aggregator) { a.preamble = enabled }
}

// WithWorkers sets the number of concurrent readers. Values below 2 read sequentially.
func WithWorkers(n int) AggregatorOption {
	return func(a *Aggregator) { a.workers = n }
}

// WithProgress attaches a progress reporter.
func WithProgress(p Progress) AggregatorOption {
	return func(a *Aggregator) {
		if p != nil {
			a.progress = p
		}
	}
}

// NewAggregator creates an Aggregator. The preamble is written by default.
func NewAggregator(selector *Selector, logger *zap.Logger, opts ...AggregatorOption) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if selector == nil {
		selector = NewSelector(nil, nil, nil)
	}
	a := &Aggregator{
		selector: selector,
		logger:   logger,
		preamble: true,
		workers:  1,
		progress: nopProgress{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// pendingRead is a candidate that passed path evaluation and must be read.
type pendingRead struct {
	candidate Candidate
	verdict   Verdict
}

// Write aggregates candidates into w in the order given. Per-file failures are
// logged and counted; only write failures and cancellation return an error.
// When ctx is cancelled no further file is read, the entry in progress is
// completed, and ctx.Err() is returned with the partial Result.
func (a *Aggregator) Write(ctx context.Context, w io.Writer, candidates []Candidate) (Result, error) {
	var res Result

	if a.preamble {
		if err := writePreamble(w); err != nil {
			return res, fmt.Errorf("failed to write preamble: %w", err)
		}
	}

	reads := make([]pendingRead, 0, len(candidates))
	for _, c := range candidates {
		if c.IsDir {
			continue
		}
		verdict := a.selector.Evaluate(c.Rel)
		if verdict == Reject {
			res.Filtered++
			continue
		}
		reads = append(reads, pendingRead{candidate: c, verdict: verdict})
	}

	a.progress.Start(len(reads))

	emit := func(r pendingRead, fc FileContent) error {
		defer a.progress.Increment()

		if fc.Err != nil {
			a.logger.Warn("Skipping file", zap.String("file", r.candidate.Rel), zap.Error(fc.Err))
			res.Skipped++
			return nil
		}
		if r.verdict == Pending && !a.selector.MatchContent(fc.Content) {
			a.logger.Debug("File content matches no content filter", zap.String("file", r.candidate.Rel))
			res.Filtered++
			return nil
		}
		if err := writeEntry(w, fc); err != nil {
			return fmt.Errorf("failed to write %s: %w", fc.Path, err)
		}
		res.Processed++
		res.Included = append(res.Included, fc.Path)
		return nil
	}

	var err error
	if a.workers > 1 && len(reads) > 1 {
		err = a.readConcurrently(ctx, reads, emit)
	} else {
		err = a.readSequentially(ctx, reads, emit)
	}

	if err != nil {
		a.progress.Finish("Directory processing interrupted")
		return res, err
	}
	a.progress.Finish("Directory processing complete")
	return res, nil
}

func (a *Aggregator) readSequentially(ctx context.Context, reads []pendingRead, emit func(pendingRead, FileContent) error) error {
	for _, r := range reads {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := emit(r, ProcessSingleFile(r.candidate, a.logger)); err != nil {
			return err
		}
	}
	return nil
}
