package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/figreact"
	"github.com/fwojciec/figreact/batch"
	figfs "github.com/fwojciec/figreact/fs"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	var base figreact.Options
	if deps.Config != nil {
		base = deps.Config.Options()
	}
	opts := c.options(base)
	if err := opts.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", figreact.ErrorMessage(err))
		return err
	}

	info, err := os.Stat(c.Dir)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(deps.Stderr, "error: %q is not a directory\n", c.Dir)
		return figreact.Errorf(figreact.EINVALID, "%q is not a directory", c.Dir)
	}

	src, err := filepath.Abs(c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	out, err := filepath.Abs(c.Out)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	// The output directory is replaced on commit.
	if within(src, out) {
		fmt.Fprintf(deps.Stderr, "error: output directory %q must not contain the input directory %q\n", c.Out, c.Dir)
		return figreact.Errorf(figreact.EINVALID, "output directory %q must not contain the input directory %q", c.Out, c.Dir)
	}

	fsys := os.DirFS(src)
	paths, err := batch.Discover(fsys, c.Pattern)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", figreact.ErrorMessage(err))
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintf(deps.Stdout, "No modules matching %q in %s\n", c.Pattern, c.Dir)
		return nil
	}

	runner := &batch.Runner{
		FS:          fsys,
		Converter:   deps.converter(opts),
		Store:       figfs.NewFileStore(filepath.Dir(out), filepath.Base(out)),
		Runs:        deps.Runs,
		Concurrency: c.Concurrency,
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d modules\n", event.Total)
		case batch.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s (%d components)\n",
				event.Completed, event.Total, batch.TruncatePath(event.Path, 60), event.Components)
			for _, d := range event.Diagnostics {
				fmt.Fprintf(deps.Stderr, "  warning: %s: %s\n", event.Path, d.Message)
			}
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.Path, failureText(event.Error))
		}
	}

	result, err := runner.Run(deps.Ctx, paths, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Converted %d modules (%d changed, %d failed): %d components, %s -> %s\n",
		result.Converted, result.Changed, result.Failed, result.Components,
		batch.FormatBytes(result.BytesIn), batch.FormatBytes(result.BytesOut))
	if result.Unrecorded > 0 {
		fmt.Fprintf(deps.Stderr, "warning: %d runs could not be recorded in history\n", result.Unrecorded)
	}
	if deps.TokenCounter != nil {
		fmt.Fprintf(deps.Stdout, "Tokens: %s -> %s\n",
			batch.FormatTokens(result.TokensIn), batch.FormatTokens(result.TokensOut))
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", out)
	return nil
}

// within reports whether path is dir or sits below it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// failureText returns the message of an application error, or the error
// string of any other error.
func failureText(err error) string {
	if figreact.ErrorCode(err) == figreact.EINTERNAL {
		return err.Error()
	}
	return figreact.ErrorMessage(err)
}
