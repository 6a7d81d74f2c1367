// Package compose turns a project snapshot into a flat render plan:
// absolute placement windows for every clip plus per-boundary transition
// instructions. Assembly never mutates the project; the plan is a
// derived, disposable value the render backend consumes.
package compose

import (
	"github.com/montage/montage-engine/internal/timeline"
)

// Segment is one clip placed on the global timeline. Window is the
// absolute [start, end) placement; SourceRange is the clip's own trim
// range into its source media. A compound clip's expansion is carried in
// Children, whose windows are absolute as well.
type Segment struct {
	ClipID      string             `json:"clip_id"`
	Kind        timeline.ClipKind  `json:"kind"`
	Source      string             `json:"source,omitempty"`
	Text        string             `json:"text,omitempty"`
	Window      timeline.TimeRange `json:"window"`
	SourceRange timeline.TimeRange `json:"source_range"`
	Transform   timeline.Transform `json:"transform"`
	Opacity     float64            `json:"opacity"`
	Volume      float64            `json:"volume"`
	Muted       bool               `json:"muted,omitempty"`
	Effects     []timeline.Effect  `json:"effects,omitempty"`
	Children    []Segment          `json:"children,omitempty"`
}

// Boundary is a reserved overlap window between two adjacent segments
// during which both stay active so the transition can blend them.
type Boundary struct {
	Window     timeline.TimeRange  `json:"window"`
	Transition timeline.Transition `json:"transition"`
	FromClipID string              `json:"from_clip_id"`
	ToClipID   string              `json:"to_clip_id"`
}

// TrackPlan carries one track's segments and transition boundaries, both
// in time order.
type TrackPlan struct {
	TrackID    string             `json:"track_id"`
	Kind       timeline.TrackKind `json:"kind"`
	Muted      bool               `json:"muted,omitempty"`
	Segments   []Segment          `json:"segments"`
	Boundaries []Boundary         `json:"boundaries,omitempty"`
}

// Span is the end of the last segment's window, zero for an empty track.
func (tp TrackPlan) Span() float64 {
	if len(tp.Segments) == 0 {
		return 0
	}
	return tp.Segments[len(tp.Segments)-1].Window.End()
}

// Plan is the complete assembled composition for one project snapshot.
type Plan struct {
	ProjectID string      `json:"project_id"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	FrameRate float64     `json:"frame_rate"`
	Duration  float64     `json:"duration"`
	Tracks    []TrackPlan `json:"tracks"`
}

// Boundaries returns every track's boundaries in one slice.
func (p *Plan) Boundaries() []Boundary {
	var all []Boundary
	for _, tp := range p.Tracks {
		all = append(all, tp.Boundaries...)
	}
	return all
}
