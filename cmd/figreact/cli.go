package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/figreact"
	"github.com/fwojciec/figreact/batch"
	"github.com/fwojciec/figreact/koanf"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Config *koanf.Config
	Logger *slog.Logger

	Extractor     figreact.Extractor
	Validator     figreact.Parser
	Relabeler     figreact.Relabeler
	RelabelTarget string
	Limiter       batch.Limiter
	TokenCounter  figreact.TokenCounter
	Runs          figreact.RunService
}

// converter returns a Converter using the wired services and opts.
func (d *Dependencies) converter(opts figreact.Options) *batch.Converter {
	return &batch.Converter{
		Extractor:     d.Extractor,
		Options:       opts,
		Relabeler:     d.Relabeler,
		RelabelTarget: d.RelabelTarget,
		Validator:     d.Validator,
		Limiter:       d.Limiter,
		TokenCounter:  d.TokenCounter,
	}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"C" help:"Config file (default .figreact.yaml if present)"`
	Verbose bool   `short:"v" help:"Log every pipeline stage"`

	Extract ExtractCmd `cmd:"" help:"Extract repeated fragments from one module"`
	Batch   BatchCmd   `cmd:"" help:"Extract repeated fragments from every module in a directory"`
	History HistoryCmd `cmd:"" help:"List recorded batch runs"`
	Show    ShowCmd    `cmd:"" help:"Show a recorded run and its components"`
}

// ExtractFlags are the extraction settings shared by extract and batch.
// Unset flags fall back to the config file.
type ExtractFlags struct {
	MinRepeats int      `name:"min-repeats" short:"m" help:"Minimum occurrences of a fragment before it is extracted"`
	NameBase   string   `name:"name-base" short:"n" help:"Base name for extracted components"`
	SkipTags   []string `name:"skip-tag" help:"Additional tag that is never extracted (repeatable)"`
	Deep       bool     `help:"Include child structure in fingerprints"`
	Relabel    string   `short:"r" placeholder:"TARGET" help:"Relabel output for a UI framework, e.g. tailwind (requires GEMINI_API_KEY)"`
}

// options merges the flags over base.
func (f ExtractFlags) options(base figreact.Options) figreact.Options {
	opts := base.WithDefaults()
	if f.MinRepeats != 0 {
		opts.MinRepeats = f.MinRepeats
	}
	if f.NameBase != "" {
		opts.ComponentNameBase = f.NameBase
	}
	if len(f.SkipTags) > 0 {
		opts.SkipTags = append(append([]string(nil), opts.SkipTags...), f.SkipTags...)
	}
	if f.Deep {
		opts.Fingerprint.Deep = true
	}
	return opts
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File   string `arg:"" optional:"" help:"Module to read (default stdin)"`
	Output string `short:"o" help:"Write the module to a file instead of stdout"`
	Report string `enum:"text,json,none" default:"text" help:"Report format written to stderr (text, json, none)"`

	ExtractFlags `embed:""`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	Dir         string `arg:"" help:"Directory to scan"`
	Out         string `arg:"" help:"Output directory, replaced on success"`
	Pattern     string `short:"p" default:"**/*.tsx" help:"Glob selecting modules, relative to the directory"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent conversion limit"`
	Tokens      bool   `help:"Count tokens before and after conversion"`

	ExtractFlags `embed:""`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Path    string `arg:"" optional:"" help:"Only show runs for this input path"`
	Changed bool   `help:"Only show runs that changed their module"`
	Limit   int    `short:"l" default:"20" help:"Maximum number of runs"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Run ID"`
}
