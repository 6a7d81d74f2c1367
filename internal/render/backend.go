// Package render defines the contract between the engine and whatever
// actually produces pixels. The engine hands over an assembled plan and
// its boundary instructions and makes no assumptions about decoding or
// encoding; a real backend lives outside this repository.
package render

import (
	"context"
	"log/slog"

	"github.com/montage/montage-engine/internal/compose"
)

// Job is everything a backend needs to render or export a composition.
type Job struct {
	Plan         *compose.Plan              `json:"plan"`
	Instructions []compose.LayerInstruction `json:"instructions"`
	OutputPath   string                     `json:"output_path,omitempty"`
}

type Backend interface {
	Render(ctx context.Context, job Job) error
}

// StubBackend accepts every job and logs it. It stands in wherever no
// real backend is wired up.
type StubBackend struct {
	logger *slog.Logger
}

func NewStubBackend(logger *slog.Logger) *StubBackend {
	return &StubBackend{logger: logger}
}

func (b *StubBackend) Render(ctx context.Context, job Job) error {
	segments := 0
	for _, tp := range job.Plan.Tracks {
		segments += len(tp.Segments)
	}
	b.logger.Info("render stub: job accepted",
		"project_id", job.Plan.ProjectID,
		"duration_s", job.Plan.Duration,
		"segments", segments,
		"instructions", len(job.Instructions),
	)
	return nil
}
