package timeline

import (
	"github.com/google/uuid"
)

type ClipKind string

const (
	ClipVideo    ClipKind = "video"
	ClipAudio    ClipKind = "audio"
	ClipImage    ClipKind = "image"
	ClipText     ClipKind = "text"
	ClipCompound ClipKind = "compound"
)

// TimeRange is a half-open interval [Start, Start+Duration) in seconds.
type TimeRange struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

func (r TimeRange) End() float64 {
	return r.Start + r.Duration
}

func (r TimeRange) Contains(t float64) bool {
	return t >= r.Start && t < r.End()
}

// Transform is a clip's 2D placement: uniform scale, rotation in degrees,
// and position offset from canvas center in pixels.
type Transform struct {
	Scale    float64 `json:"scale"`
	Rotation float64 `json:"rotation"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

func IdentityTransform() Transform {
	return Transform{Scale: 1.0}
}

// Effect is an opaque parameter bag passed through to the render backend.
// The engine never interprets effect parameters.
type Effect struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Params  map[string]any `json:"params,omitempty"`
	Enabled bool           `json:"enabled"`
}

// Clip is a placed piece of media on a track. A clip of kind "compound"
// carries a SubTimeline of nested tracks and is a self-contained
// sub-composition; for every other kind SubTimeline must be empty.
// Build compound clips through MakeCompound or Track.GroupClips so that
// invariant holds by construction.
type Clip struct {
	ID          string    `json:"id"`
	Kind        ClipKind  `json:"kind"`
	Range       TimeRange `json:"range"`
	Source      string    `json:"source,omitempty"`
	Text        string    `json:"text,omitempty"`
	Transform   Transform `json:"transform"`
	Opacity     float64   `json:"opacity"`
	Volume      float64   `json:"volume"`
	Effects     []Effect  `json:"effects,omitempty"`
	Muted       bool      `json:"muted,omitempty"`
	SubTimeline []Track   `json:"sub_timeline,omitempty"`
}

// NewClip creates a clip with identity transform, full opacity and volume.
func NewClip(kind ClipKind, source string, start, duration float64) Clip {
	return Clip{
		ID:        NewID(),
		Kind:      kind,
		Range:     TimeRange{Start: start, Duration: duration},
		Source:    source,
		Transform: IdentityTransform(),
		Opacity:   1.0,
		Volume:    1.0,
	}
}

// Clone returns a deep copy sharing no slices or maps with the original.
func (c Clip) Clone() Clip {
	out := c
	if c.Effects != nil {
		out.Effects = make([]Effect, len(c.Effects))
		for i, e := range c.Effects {
			out.Effects[i] = e.Clone()
		}
	}
	if c.SubTimeline != nil {
		out.SubTimeline = make([]Track, len(c.SubTimeline))
		for i, t := range c.SubTimeline {
			out.SubTimeline[i] = t.Clone()
		}
	}
	return out
}

func (e Effect) Clone() Effect {
	out := e
	if e.Params != nil {
		out.Params = make(map[string]any, len(e.Params))
		for k, v := range e.Params {
			out.Params[k] = v
		}
	}
	return out
}

// NewID returns a fresh entity id.
func NewID() string {
	return uuid.NewString()
}
