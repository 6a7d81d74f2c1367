package api

import (
	"github.com/montage/montage-engine/internal/compose"
	"github.com/montage/montage-engine/internal/store"
	"github.com/montage/montage-engine/internal/timeline"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type CreateProjectRequest struct {
	Name      string  `json:"name"`
	Width     int     `json:"width,omitempty"`
	Height    int     `json:"height,omitempty"`
	FrameRate float64 `json:"frame_rate,omitempty"`
}

type ProjectsResponse struct {
	Projects []store.ProjectSummary `json:"projects"`
}

type AddTrackRequest struct {
	Kind timeline.TrackKind `json:"kind"`
}

type AddClipRequest struct {
	Kind     timeline.ClipKind `json:"kind"`
	Source   string            `json:"source,omitempty"`
	Text     string            `json:"text,omitempty"`
	Start    float64           `json:"start"`
	Duration float64           `json:"duration"`
}

type TrimRequest struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

type SplitRequest struct {
	Offset float64 `json:"offset"`
}

type GroupRequest struct {
	ClipIDs []string `json:"clip_ids"`
}

type UngroupRequest struct {
	ClipID string `json:"clip_id"`
}

type AddTransitionRequest struct {
	Type       timeline.TransitionType `json:"type"`
	Duration   float64                 `json:"duration"`
	FromClipID string                  `json:"from_clip_id"`
	ToClipID   string                  `json:"to_clip_id"`
	Params     map[string]any          `json:"params,omitempty"`
}

type ImportCaptionsRequest struct {
	SRT string `json:"srt"`
}

type PlanResponse struct {
	Plan         *compose.Plan              `json:"plan"`
	Instructions []compose.LayerInstruction `json:"instructions,omitempty"`
}

type RenderRequest struct {
	OutputPath string `json:"output_path,omitempty"`
}

type RenderResponse struct {
	Status string `json:"status"`
}
