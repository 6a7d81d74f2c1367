package compose

import (
	"github.com/montage/montage-engine/internal/timeline"
)

type boundaryKey struct {
	from string
	to   string
}

// Assemble places every track's clips on the global timeline. Clips sit
// back to back except where a transition joins two consecutive clips: the
// incoming clip's window is shifted backward by the transition duration,
// reserving an overlap in which both clips stay active, and every
// downstream clip shifts with it. Transitions whose ids do not resolve to
// adjacent clips are silently skipped; durations longer than the shorter
// neighbor are clamped so the overlap window is never degenerate.
func Assemble(p *timeline.Project) *Plan {
	index := make(map[boundaryKey]timeline.Transition, len(p.Transitions))
	for _, tr := range p.Transitions {
		index[boundaryKey{from: tr.FromClipID, to: tr.ToClipID}] = tr
	}

	plan := &Plan{
		ProjectID: p.ID,
		Width:     p.Width,
		Height:    p.Height,
		FrameRate: p.FrameRate,
		Tracks:    make([]TrackPlan, 0, len(p.Tracks)),
	}

	for _, track := range p.Tracks {
		tp := assembleTrack(track, index)
		if span := tp.Span(); span > plan.Duration {
			plan.Duration = span
		}
		plan.Tracks = append(plan.Tracks, tp)
	}
	return plan
}

func assembleTrack(track timeline.Track, index map[boundaryKey]timeline.Transition) TrackPlan {
	tp := TrackPlan{
		TrackID:  track.ID,
		Kind:     track.Kind,
		Muted:    track.Muted,
		Segments: make([]Segment, 0, len(track.Clips)),
	}

	var cursor float64
	for i, clip := range track.Clips {
		start := cursor
		if i > 0 {
			prev := track.Clips[i-1]
			if tr, ok := index[boundaryKey{from: prev.ID, to: clip.ID}]; ok {
				overlap := clampOverlap(tr.Duration, prev.Range.Duration, clip.Range.Duration)
				if overlap > 0 {
					start = cursor - overlap
					tp.Boundaries = append(tp.Boundaries, Boundary{
						Window:     timeline.TimeRange{Start: start, Duration: overlap},
						Transition: tr,
						FromClipID: prev.ID,
						ToClipID:   clip.ID,
					})
				}
			}
		}

		tp.Segments = append(tp.Segments, placeClip(clip, start))
		cursor = start + clip.Range.Duration
	}
	return tp
}

func placeClip(clip timeline.Clip, start float64) Segment {
	seg := Segment{
		ClipID:      clip.ID,
		Kind:        clip.Kind,
		Source:      clip.Source,
		Text:        clip.Text,
		Window:      timeline.TimeRange{Start: start, Duration: clip.Range.Duration},
		SourceRange: clip.Range,
		Transform:   clip.Transform,
		Opacity:     clip.Opacity,
		Volume:      clip.Volume,
		Muted:       clip.Muted,
		Effects:     clip.Effects,
	}

	if clip.Kind == timeline.ClipCompound {
		seg.Children = expandCompound(clip, start)
	}
	return seg
}

// expandCompound walks a compound clip's sub-timeline tracks with a plain
// contiguous cursor, offset so child windows are absolute. Transitions
// reference top-level clips only, so sub-compositions have none.
func expandCompound(clip timeline.Clip, start float64) []Segment {
	var children []Segment
	for _, sub := range clip.SubTimeline {
		cursor := start
		for _, inner := range sub.Clips {
			children = append(children, placeClip(inner, cursor))
			cursor += inner.Range.Duration
		}
	}
	return children
}

func clampOverlap(duration, fromDur, toDur float64) float64 {
	if duration <= 0 {
		return 0
	}
	shorter := fromDur
	if toDur < shorter {
		shorter = toDur
	}
	if duration > shorter {
		return shorter
	}
	return duration
}
