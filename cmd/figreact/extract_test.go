package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/figreact"
	main "github.com/fwojciec/figreact/cmd/figreact"
	"github.com/fwojciec/figreact/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedExtractor returns code with a single component named after the
// requested base.
func fixedExtractor(code string) (*mock.Extractor, *figreact.Options) {
	var got figreact.Options
	return &mock.Extractor{
		ExtractFn: func(source string, opts figreact.Options) (*figreact.Result, error) {
			got = opts
			return &figreact.Result{
				Code:    code,
				Changed: true,
				Components: []figreact.ComponentReport{
					{Name: opts.ComponentNameBase + "1", OccurrenceCount: 3, Fingerprint: "div|1|row|0"},
				},
			}, nil
		},
	}, &got
}

func newDeps(stdin string) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdin:  strings.NewReader(stdin),
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reads stdin and writes code to stdout", func(t *testing.T) {
		t.Parallel()

		extractor, got := fixedExtractor("const Extracted1 = () => <div />;\n")
		deps, stdout, stderr := newDeps("<div/>")
		deps.Extractor = extractor

		cmd := &main.ExtractCmd{Report: "text"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "const Extracted1 = () => <div />;\n", stdout.String())
		assert.Contains(t, stderr.String(), "Extracted 1 components")
		assert.Contains(t, stderr.String(), "Extracted1  x3")
		assert.Equal(t, figreact.DefaultMinRepeats, got.MinRepeats)
		assert.Equal(t, figreact.DefaultSkipTags(), got.SkipTags)
	})

	t.Run("flags override defaults", func(t *testing.T) {
		t.Parallel()

		extractor, got := fixedExtractor("x")
		deps, _, _ := newDeps("<div/>")
		deps.Extractor = extractor

		cmd := &main.ExtractCmd{Report: "none"}
		cmd.MinRepeats = 4
		cmd.NameBase = "Card"
		cmd.SkipTags = []string{"li"}
		cmd.Deep = true

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 4, got.MinRepeats)
		assert.Equal(t, "Card", got.ComponentNameBase)
		assert.Contains(t, got.SkipTags, "li")
		assert.Contains(t, got.SkipTags, "svg")
		assert.True(t, got.Fingerprint.Deep)
	})

	t.Run("rejects invalid options before extracting", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps("<div/>")
		deps.Extractor = &mock.Extractor{
			ExtractFn: func(string, figreact.Options) (*figreact.Result, error) {
				t.Fatal("extractor should not be called")
				return nil, nil
			},
		}

		cmd := &main.ExtractCmd{Report: "text"}
		cmd.NameBase = "lower"
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, figreact.EINVALID, figreact.ErrorCode(err))
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "error: component name base")
	})

	t.Run("reports extraction errors and writes nothing", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps("<div")
		deps.Extractor = &mock.Extractor{
			ExtractFn: func(source string, _ figreact.Options) (*figreact.Result, error) {
				return figreact.Unchanged(source), figreact.Errorf(figreact.EPARSE, "syntax error at 1:5")
			},
		}

		cmd := &main.ExtractCmd{Report: "text"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, figreact.EPARSE, figreact.ErrorCode(err))
		assert.Empty(t, stdout.String())
		assert.Equal(t, "error: syntax error at 1:5\n", stderr.String())
	})

	t.Run("writes json report", func(t *testing.T) {
		t.Parallel()

		extractor, _ := fixedExtractor("out")
		deps, _, stderr := newDeps("input")
		deps.Extractor = extractor

		cmd := &main.ExtractCmd{Report: "json"}
		err := cmd.Run(deps)
		require.NoError(t, err)

		var report struct {
			Path        string                     `json:"path"`
			Changed     bool                       `json:"changed"`
			BytesIn     int                        `json:"bytesIn"`
			BytesOut    int                        `json:"bytesOut"`
			Components  []figreact.ComponentReport `json:"components"`
			Diagnostics []figreact.Diagnostic      `json:"diagnostics"`
		}
		require.NoError(t, json.Unmarshal(stderr.Bytes(), &report))
		assert.Equal(t, "<stdin>", report.Path)
		assert.True(t, report.Changed)
		assert.Equal(t, 5, report.BytesIn)
		assert.Equal(t, 3, report.BytesOut)
		require.Len(t, report.Components, 1)
		assert.Equal(t, "Extracted1", report.Components[0].Name)
		assert.NotNil(t, report.Diagnostics)
	})

	t.Run("reads file and writes output file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "App.tsx")
		out := filepath.Join(dir, "App.out.tsx")
		require.NoError(t, os.WriteFile(in, []byte("<div/>"), 0644))

		var gotSource string
		deps, stdout, _ := newDeps("")
		deps.Extractor = &mock.Extractor{
			ExtractFn: func(source string, _ figreact.Options) (*figreact.Result, error) {
				gotSource = source
				return figreact.Unchanged(source), nil
			},
		}

		cmd := &main.ExtractCmd{File: in, Output: out, Report: "text"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "<div/>", gotSource)
		assert.Empty(t, stdout.String())
		written, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "<div/>", string(written))
	})

	t.Run("reports missing file", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps("")
		cmd := &main.ExtractCmd{File: filepath.Join(t.TempDir(), "missing.tsx"), Report: "text"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("keeps extracted code when relabeling fails", func(t *testing.T) {
		t.Parallel()

		extractor, _ := fixedExtractor("extracted")
		deps, stdout, stderr := newDeps("input")
		deps.Extractor = extractor
		deps.Relabeler = &mock.Relabeler{
			RelabelFn: func(context.Context, string, string) (string, error) {
				return "", figreact.Errorf(figreact.EINVALID, "unsupported target")
			},
		}
		deps.RelabelTarget = "tailwind"

		cmd := &main.ExtractCmd{Report: "text"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "extracted", stdout.String())
		assert.Contains(t, stderr.String(), "warning: relabel failed, keeping extracted code: unsupported target")
	})
}
