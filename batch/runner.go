package batch

import (
	"context"
	"fmt"
	"io/fs"
	"sync/atomic"

	"github.com/fwojciec/figreact"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of modules converted at once.
const DefaultConcurrency = 4

// Runner converts a set of modules read from FS and stores the results.
type Runner struct {
	FS          fs.FS
	Converter   *Converter
	Store       figreact.OutputStore
	Runs        figreact.RunService // optional
	Concurrency int
}

// Result holds the outcome of a batch.
type Result struct {
	Converted   int
	Changed     int
	Failed      int
	Unrecorded  int // converted but missing from run history
	Components  int
	Diagnostics int
	BytesIn     int
	BytesOut    int
	TokensIn    int
	TokensOut   int
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type        ProgressType
	Completed   int
	Total       int
	Path        string
	Components  int
	Diagnostics []figreact.Diagnostic
	Error       error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

type fileResult struct {
	position int
	conv     *Conversion
}

// Run converts every path, writes all outputs to the store and commits it.
// A module that fails to convert is copied unchanged and counted as failed.
// The store is aborted when ctx is canceled.
func (r *Runner) Run(ctx context.Context, paths []string, progress ProgressFunc) (*Result, error) {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan fileResult, len(paths))
	var completed atomic.Int64
	total := len(paths)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, path := range paths {
			g.Go(func() error {
				resultCh <- fileResult{position: i, conv: r.convert(gctx, path)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in order.
	results := make([]*Conversion, len(paths))
	for res := range resultCh {
		completed.Add(1)
		results[res.position] = res.conv

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:        ProgressCompleted,
			Completed:   int(completed.Load()),
			Total:       total,
			Path:        res.conv.Path,
			Diagnostics: res.conv.Diagnostics,
		}
		if res.conv.Output != nil {
			event.Components = len(res.conv.Output.Components)
		}
		if res.conv.Err != nil {
			event.Type = ProgressFailed
			event.Error = res.conv.Err
		}
		progress(event)
	}

	if err := ctx.Err(); err != nil {
		_ = r.Store.Abort()
		return nil, err
	}

	var result Result
	for _, conv := range results {
		if conv.Err != nil {
			result.Failed++
		}
		if conv.Output == nil {
			continue
		}

		if err := r.Store.Save(ctx, conv.Output); err != nil {
			_ = r.Store.Abort()
			return nil, fmt.Errorf("save %s: %w", conv.Output.Path, err)
		}
		if conv.Err != nil {
			continue
		}
		if r.Runs != nil {
			if err := r.Runs.CreateRun(ctx, conv.Run); err != nil {
				result.Unrecorded++
			}
		}

		result.Converted++
		if conv.Run.Changed {
			result.Changed++
		}
		result.Components += conv.Run.Components
		result.Diagnostics += conv.Run.Diagnostics
		result.BytesIn += conv.Run.BytesIn
		result.BytesOut += conv.Run.BytesOut
		result.TokensIn += conv.Run.TokensIn
		result.TokensOut += conv.Run.TokensOut
	}

	if err := r.Store.Commit(); err != nil {
		return nil, fmt.Errorf("commit output: %w", err)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return &result, nil
}

func (r *Runner) convert(ctx context.Context, path string) *Conversion {
	if err := ctx.Err(); err != nil {
		return &Conversion{
			Path: path,
			Run:  &figreact.Run{InputPath: path},
			Err:  err,
		}
	}
	data, err := fs.ReadFile(r.FS, path)
	if err != nil {
		return &Conversion{
			Path: path,
			Run:  &figreact.Run{InputPath: path},
			Err:  fmt.Errorf("read %s: %w", path, err),
		}
	}
	return r.Converter.Convert(ctx, path, string(data))
}
