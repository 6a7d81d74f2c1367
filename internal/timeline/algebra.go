package timeline

// Trim replaces the clip's time range unconditionally. It does not check
// siblings; callers that care about overlap must validate afterwards.
func (c *Clip) Trim(start, duration float64) {
	c.Range = TimeRange{Start: start, Duration: duration}
}

// Split cuts the clip at the given offset into its range and returns two
// fresh-id clips that exactly partition the original: the first keeps the
// original start with the offset as its duration, the second covers the
// remainder. An offset outside (0, duration) is a normal no-op and
// returns ok=false.
func (c Clip) Split(offset float64) (Clip, Clip, bool) {
	if offset <= 0 || offset >= c.Range.Duration {
		return Clip{}, Clip{}, false
	}

	first := c.Clone()
	first.ID = NewID()
	first.Range = TimeRange{Start: c.Range.Start, Duration: offset}

	second := c.Clone()
	second.ID = NewID()
	second.Range = TimeRange{
		Start:    c.Range.Start + offset,
		Duration: c.Range.Duration - offset,
	}

	return first, second, true
}

// MakeCompound wraps the given clips, in the order supplied, into one new
// compound clip whose sub-timeline is a single track of the given kind.
// The compound's duration is the sum of the wrapped clips' durations and
// its start is the first clip's start. An empty list returns ok=false.
func MakeCompound(clips []Clip, kind TrackKind) (Clip, bool) {
	if len(clips) == 0 {
		return Clip{}, false
	}

	inner := NewTrack(kind)
	inner.Clips = make([]Clip, len(clips))
	var total float64
	for i, c := range clips {
		inner.Clips[i] = c
		total += c.Range.Duration
	}

	compound := Clip{
		ID:          NewID(),
		Kind:        ClipCompound,
		Range:       TimeRange{Start: clips[0].Range.Start, Duration: total},
		Transform:   IdentityTransform(),
		Opacity:     1.0,
		Volume:      1.0,
		SubTimeline: []Track{inner},
	}
	return compound, true
}

// GroupClips replaces the track's clips matching the given id set with a
// single compound clip inserted at the earliest matched position. Matches
// are taken in track order regardless of the order of ids. Fewer than two
// matches leaves the track untouched and returns ok=false.
func (t *Track) GroupClips(ids []string) (Clip, bool) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var matched []Clip
	insertAt := -1
	rest := make([]Clip, 0, len(t.Clips))
	for _, c := range t.Clips {
		if wanted[c.ID] {
			if insertAt == -1 {
				insertAt = len(rest)
			}
			matched = append(matched, c)
			continue
		}
		rest = append(rest, c)
	}

	if len(matched) < 2 {
		return Clip{}, false
	}

	compound, ok := MakeCompound(matched, t.Kind)
	if !ok {
		return Clip{}, false
	}

	clips := make([]Clip, 0, len(rest)+1)
	clips = append(clips, rest[:insertAt]...)
	clips = append(clips, compound)
	clips = append(clips, rest[insertAt:]...)
	t.Clips = clips
	return compound, true
}

// UngroupCompoundClip replaces the identified compound clip with the
// flattened clips of its sub-timeline tracks, in order, at its position.
// The inner clips come back with their ids and time ranges intact, so
// grouping followed by ungrouping restores the track exactly. A missing
// id or a non-compound target returns ok=false without mutation.
func (t *Track) UngroupCompoundClip(id string) ([]Clip, bool) {
	i := t.clipIndex(id)
	if i < 0 {
		return nil, false
	}
	target := t.Clips[i]
	if target.Kind != ClipCompound || len(target.SubTimeline) == 0 {
		return nil, false
	}

	var inner []Clip
	for _, sub := range target.SubTimeline {
		inner = append(inner, sub.Clips...)
	}
	if len(inner) == 0 {
		return nil, false
	}

	clips := make([]Clip, 0, len(t.Clips)-1+len(inner))
	clips = append(clips, t.Clips[:i]...)
	clips = append(clips, inner...)
	clips = append(clips, t.Clips[i+1:]...)
	t.Clips = clips
	return inner, true
}
