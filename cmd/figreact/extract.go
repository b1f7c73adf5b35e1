package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/figreact"
	"github.com/fwojciec/figreact/batch"
)

// extractReport is the JSON report of the extract command.
type extractReport struct {
	Path        string                     `json:"path"`
	Changed     bool                       `json:"changed"`
	Relabeled   bool                       `json:"relabeled"`
	BytesIn     int                        `json:"bytesIn"`
	BytesOut    int                        `json:"bytesOut"`
	Components  []figreact.ComponentReport `json:"components"`
	Diagnostics []figreact.Diagnostic      `json:"diagnostics"`
}

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	path := c.File
	var source []byte
	var err error
	if path == "" || path == "-" {
		path = "<stdin>"
		source, err = io.ReadAll(deps.Stdin)
	} else {
		source, err = os.ReadFile(path)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	var base figreact.Options
	if deps.Config != nil {
		base = deps.Config.Options()
	}
	opts := c.options(base)
	if err := opts.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", figreact.ErrorMessage(err))
		return err
	}

	conv := deps.converter(opts).Convert(deps.Ctx, path, string(source))
	if conv.Err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", figreact.ErrorMessage(conv.Err))
		return conv.Err
	}

	if c.Output != "" {
		if err := os.WriteFile(c.Output, []byte(conv.Output.Code), 0644); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
	} else {
		fmt.Fprint(deps.Stdout, conv.Output.Code)
	}

	switch c.Report {
	case "json":
		report := extractReport{
			Path:        path,
			Changed:     conv.Run.Changed,
			Relabeled:   conv.Run.Relabeled,
			BytesIn:     conv.Run.BytesIn,
			BytesOut:    conv.Run.BytesOut,
			Components:  conv.Output.Components,
			Diagnostics: conv.Diagnostics,
		}
		if report.Components == nil {
			report.Components = []figreact.ComponentReport{}
		}
		if report.Diagnostics == nil {
			report.Diagnostics = []figreact.Diagnostic{}
		}
		enc := json.NewEncoder(deps.Stderr)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "text":
		writeTextReport(deps.Stderr, conv)
	}
	return nil
}

func writeTextReport(w io.Writer, conv *batch.Conversion) {
	for _, d := range conv.Diagnostics {
		fmt.Fprintf(w, "warning: %s\n", d.Message)
	}
	if len(conv.Output.Components) == 0 {
		fmt.Fprintln(w, "No repeated fragments found.")
		return
	}
	fmt.Fprintf(w, "Extracted %d components (%s -> %s)\n",
		len(conv.Output.Components), batch.FormatBytes(conv.Run.BytesIn), batch.FormatBytes(conv.Run.BytesOut))
	for _, comp := range conv.Output.Components {
		fmt.Fprintf(w, "  %s  x%d\n", comp.Name, comp.OccurrenceCount)
	}
}
