// Package timeline holds the editing data model: projects, tracks, clips,
// transitions and effects, plus the structural edit operations on them.
// Everything is plain value types; Clone gives callers an isolated snapshot
// so assembly can run concurrently with further edits.
package timeline

import "time"

type TrackKind string

const (
	TrackVideo   TrackKind = "video"
	TrackAudio   TrackKind = "audio"
	TrackOverlay TrackKind = "overlay"
)

// Track owns an ordered sequence of clips. Clip order is the sole source
// of adjacency on the track: clips are placed back to back in sequence
// order, and a transition is only meaningful between consecutive clips.
type Track struct {
	ID     string    `json:"id"`
	Kind   TrackKind `json:"kind"`
	Clips  []Clip    `json:"clips"`
	Muted  bool      `json:"muted,omitempty"`
	Locked bool      `json:"locked,omitempty"`
}

func NewTrack(kind TrackKind) Track {
	return Track{ID: NewID(), Kind: kind}
}

// TotalDuration is the sum of clip durations, matching the contiguous
// placement model: transition overlap is an assembly concern, not a
// model concern.
func (t Track) TotalDuration() float64 {
	var total float64
	for _, c := range t.Clips {
		total += c.Range.Duration
	}
	return total
}

// ClipAt returns the clip active at the given track-local time, walking
// clips as if placed contiguously from zero.
func (t Track) ClipAt(at float64) (Clip, bool) {
	if at < 0 {
		return Clip{}, false
	}
	var cursor float64
	for _, c := range t.Clips {
		if at < cursor+c.Range.Duration {
			return c, true
		}
		cursor += c.Range.Duration
	}
	return Clip{}, false
}

func (t Track) clipIndex(id string) int {
	for i, c := range t.Clips {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (t Track) Clone() Track {
	out := t
	if t.Clips != nil {
		out.Clips = make([]Clip, len(t.Clips))
		for i, c := range t.Clips {
			out.Clips[i] = c.Clone()
		}
	}
	return out
}

// Project is the root of the model tree. It owns its tracks exclusively;
// transitions live at the project level and refer to clips by id.
type Project struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	FrameRate   float64      `json:"frame_rate"`
	SampleRate  int          `json:"sample_rate"`
	Tracks      []Track      `json:"tracks"`
	Transitions []Transition `json:"transitions,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	ModifiedAt  time.Time    `json:"modified_at"`
}

const DefaultSampleRate = 48000

func NewProject(name string, width, height int, frameRate float64) *Project {
	now := time.Now().UTC().Truncate(time.Second)
	return &Project{
		ID:         NewID(),
		Name:       name,
		Width:      width,
		Height:     height,
		FrameRate:  frameRate,
		SampleRate: DefaultSampleRate,
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// TotalDuration is the longest track's duration.
func (p *Project) TotalDuration() float64 {
	var max float64
	for _, t := range p.Tracks {
		if d := t.TotalDuration(); d > max {
			max = d
		}
	}
	return max
}

// Touch records a mutation of the project or any of its children.
func (p *Project) Touch() {
	p.ModifiedAt = time.Now().UTC().Truncate(time.Second)
}

// Track returns a pointer into the project's track slice, or nil.
func (p *Project) Track(id string) *Track {
	for i := range p.Tracks {
		if p.Tracks[i].ID == id {
			return &p.Tracks[i]
		}
	}
	return nil
}

// FindClip locates a top-level clip by id and the track that holds it.
// It does not descend into compound sub-timelines.
func (p *Project) FindClip(id string) (*Clip, *Track) {
	for i := range p.Tracks {
		if j := p.Tracks[i].clipIndex(id); j >= 0 {
			return &p.Tracks[i].Clips[j], &p.Tracks[i]
		}
	}
	return nil, nil
}

// Clone returns a deep copy of the whole project tree. Snapshot consumers
// (assembly, export, rendering) work on clones so the editing session can
// keep mutating the live value.
func (p *Project) Clone() *Project {
	out := *p
	if p.Tracks != nil {
		out.Tracks = make([]Track, len(p.Tracks))
		for i, t := range p.Tracks {
			out.Tracks[i] = t.Clone()
		}
	}
	if p.Transitions != nil {
		out.Transitions = make([]Transition, len(p.Transitions))
		for i, tr := range p.Transitions {
			out.Transitions[i] = tr.Clone()
		}
	}
	return &out
}
