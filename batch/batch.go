// Package batch converts many modules at once. It coordinates discovery,
// extraction, the optional relabeling stage, output storage and run
// history.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/figreact"
)

// Converter runs the per-module pipeline: extract, then optionally relabel.
type Converter struct {
	Extractor figreact.Extractor
	Options   figreact.Options

	// Relabeler and RelabelTarget enable the relabeling stage when both are
	// set. Validator checks that a relabeled module still parses.
	Relabeler     figreact.Relabeler
	RelabelTarget string
	Validator     figreact.Parser
	Limiter       Limiter
	RetryDelays   []time.Duration

	// TokenCounter is optional. Counting errors are ignored.
	TokenCounter figreact.TokenCounter
}

// Conversion is the outcome of converting one module.
type Conversion struct {
	Path string

	// Output carries the converted code, or the original code when Err is
	// set. It is nil when the module could not be read.
	Output      *figreact.Output
	Run         *figreact.Run
	Diagnostics []figreact.Diagnostic
	Err         error
}

// Convert converts source, read from path.
func (c *Converter) Convert(ctx context.Context, path, source string) *Conversion {
	conv := &Conversion{
		Path:   path,
		Output: &figreact.Output{Path: path, Code: source},
		Run: &figreact.Run{
			InputPath: path,
			InputHash: ComputeHash(source),
			BytesIn:   len(source),
		},
	}

	result, err := c.Extractor.Extract(source, c.Options)
	if err != nil {
		conv.Err = err
		c.finish(ctx, conv, source)
		return conv
	}
	conv.Diagnostics = append(conv.Diagnostics, result.Diagnostics...)
	conv.Output.Code = result.Code
	conv.Output.Components = result.Components
	conv.Run.Components = len(result.Components)
	conv.Run.Reports = result.Components

	if c.Relabeler != nil && c.RelabelTarget != "" {
		code, diag := c.relabel(ctx, result.Code)
		if diag != nil {
			conv.Diagnostics = append(conv.Diagnostics, *diag)
		} else {
			conv.Output.Code = code
			conv.Run.Relabeled = true
		}
	}

	c.finish(ctx, conv, source)
	return conv
}

// relabel returns the relabeled code, or a diagnostic explaining why the
// extracted code is kept.
func (c *Converter) relabel(ctx context.Context, code string) (string, *figreact.Diagnostic) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return "", &figreact.Diagnostic{Code: figreact.EINTERNAL, Message: fmt.Sprintf("relabel skipped: %v", err)}
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	relabelFn := func(ctx context.Context, code string) (string, error) {
		return c.Relabeler.Relabel(ctx, code, c.RelabelTarget)
	}
	out, err := WithRetryDelays(ctx, code, relabelFn, nil, delays)
	if err != nil {
		return "", &figreact.Diagnostic{
			Code:    figreact.ErrorCode(err),
			Message: "relabel failed, keeping extracted code: " + errorText(err),
		}
	}

	if c.Validator != nil {
		if err := c.Validator.Validate([]byte(out)); err != nil {
			return "", &figreact.Diagnostic{
				Code:    figreact.EPARSE,
				Message: "relabeled module does not parse, keeping extracted code: " + errorText(err),
			}
		}
	}
	return out, nil
}

func (c *Converter) finish(ctx context.Context, conv *Conversion, source string) {
	code := conv.Output.Code
	conv.Run.OutputHash = ComputeHash(code)
	conv.Run.BytesOut = len(code)
	conv.Run.Changed = code != source
	conv.Run.Diagnostics = len(conv.Diagnostics)

	if c.TokenCounter == nil {
		return
	}
	if tokens, err := c.TokenCounter.CountTokens(ctx, source); err == nil {
		conv.Run.TokensIn = tokens
	}
	if tokens, err := c.TokenCounter.CountTokens(ctx, code); err == nil {
		conv.Run.TokensOut = tokens
	}
}

// errorText returns the message of an application error, or the error
// string of any other error.
func errorText(err error) string {
	if figreact.ErrorCode(err) == figreact.EINTERNAL {
		return err.Error()
	}
	return figreact.ErrorMessage(err)
}
