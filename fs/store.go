// Package fs provides file-based storage for converted modules.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/fwojciec/figreact"
)

// ReportName is the file, written at the output root, that lists the
// components extracted from every saved module.
const ReportName = "components.json"

// Ensure FileStore implements figreact.OutputStore at compile time.
var _ figreact.OutputStore = (*FileStore)(nil)

// FileStore implements figreact.OutputStore with atomic update semantics.
// Outputs are saved to a temporary directory, then moved atomically on Commit.
// Save is safe for concurrent use.
type FileStore struct {
	baseDir string
	name    string

	mu     sync.Mutex
	report []ReportEntry
}

// ReportEntry is one module's entry in the components report.
type ReportEntry struct {
	Path       string                     `json:"path"`
	Components []figreact.ComponentReport `json:"components"`
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes out.Code under the temporary directory at out.Path.
func (s *FileStore) Save(ctx context.Context, out *figreact.Output) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := CleanPath(out.Path)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(fullPath, []byte(out.Code), 0644); err != nil {
		return err
	}

	if len(out.Components) > 0 {
		s.mu.Lock()
		s.report = append(s.report, ReportEntry{
			Path:       filepath.ToSlash(relPath),
			Components: out.Components,
		})
		s.mu.Unlock()
	}
	return nil
}

// Commit writes the components report and replaces the output directory
// with the temporary one.
func (s *FileStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := s.writeReport(); err != nil {
		return err
	}

	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort removes the temporary directory and forgets pending report entries.
func (s *FileStore) Abort() error {
	s.mu.Lock()
	s.report = nil
	s.mu.Unlock()
	return os.RemoveAll(s.tempDir())
}

func (s *FileStore) writeReport() error {
	s.mu.Lock()
	entries := slices.Clone(s.report)
	s.mu.Unlock()

	// Saves finish in any order.
	slices.SortFunc(entries, func(a, b ReportEntry) int {
		return strings.Compare(a.Path, b.Path)
	})
	if entries == nil {
		entries = []ReportEntry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return os.WriteFile(filepath.Join(s.tempDir(), ReportName), append(data, '\n'), 0644)
}

// CleanPath normalizes a relative output path and rejects paths that would
// escape the output directory.
func CleanPath(path string) (string, error) {
	if path == "" {
		return "", figreact.Errorf(figreact.EINVALID, "output path required")
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return "", figreact.Errorf(figreact.EINVALID, "output path must be relative: %s", path)
	}
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", figreact.Errorf(figreact.EINVALID, "path traversal in output path: %s", path)
	}
	if clean == "." || clean == ReportName {
		return "", figreact.Errorf(figreact.EINVALID, "invalid output path: %s", path)
	}
	return clean, nil
}
