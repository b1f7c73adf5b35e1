package figreact

import (
	"context"
	"time"
)

// Run records the conversion of one input file.
type Run struct {
	ID          string    `json:"id"`
	InputPath   string    `json:"inputPath"`
	InputHash   string    `json:"inputHash"`
	OutputHash  string    `json:"outputHash"`
	Changed     bool      `json:"changed"`
	Relabeled   bool      `json:"relabeled"`
	Components  int       `json:"components"`
	BytesIn     int       `json:"bytesIn"`
	BytesOut    int       `json:"bytesOut"`
	TokensIn    int       `json:"tokensIn"`
	TokensOut   int       `json:"tokensOut"`
	Diagnostics int       `json:"diagnostics"`
	CreatedAt   time.Time `json:"createdAt"`

	// Reports lists the extracted components. Only FindRunByID loads it.
	Reports []ComponentReport `json:"reports,omitempty"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.InputPath == "" {
		return Errorf(EINVALID, "run input path required")
	}
	if r.InputHash == "" {
		return Errorf(EINVALID, "run input hash required")
	}
	if r.Components < len(r.Reports) {
		return Errorf(EINVALID, "run lists %d components but reports %d", r.Components, len(r.Reports))
	}
	return nil
}

// RunService represents a service for recording conversion runs.
type RunService interface {
	// CreateRun records a new run.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	InputPath *string `json:"inputPath"`
	Changed   *bool   `json:"changed"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
