package main

import (
	"fmt"

	"github.com/fwojciec/figreact"
)

const timeFormat = "2006-01-02 15:04"

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := figreact.RunFilter{Limit: c.Limit}
	if c.Path != "" {
		filter.InputPath = &c.Path
	}
	if c.Changed {
		changed := true
		filter.Changed = &changed
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", figreact.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'figreact batch' to convert a directory.")
		return nil
	}

	for _, r := range runs {
		mark := " "
		if r.Changed {
			mark = "*"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s %s %s  %d components\n",
			r.ID, r.CreatedAt.Local().Format(timeFormat), mark, r.InputPath, r.Components)
	}
	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", figreact.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Run:         %s\n", run.ID)
	fmt.Fprintf(deps.Stdout, "Input:       %s\n", run.InputPath)
	fmt.Fprintf(deps.Stdout, "Created:     %s\n", run.CreatedAt.Local().Format(timeFormat))
	fmt.Fprintf(deps.Stdout, "Changed:     %t\n", run.Changed)
	fmt.Fprintf(deps.Stdout, "Relabeled:   %t\n", run.Relabeled)
	fmt.Fprintf(deps.Stdout, "Size:        %d -> %d bytes\n", run.BytesIn, run.BytesOut)
	if run.TokensIn > 0 || run.TokensOut > 0 {
		fmt.Fprintf(deps.Stdout, "Tokens:      %d -> %d\n", run.TokensIn, run.TokensOut)
	}
	fmt.Fprintf(deps.Stdout, "Diagnostics: %d\n", run.Diagnostics)
	fmt.Fprintf(deps.Stdout, "Components:  %d\n", run.Components)
	for _, r := range run.Reports {
		fmt.Fprintf(deps.Stdout, "  %s  x%d  %s\n", r.Name, r.OccurrenceCount, r.Fingerprint)
	}
	return nil
}
