package timeline

import (
	"math"
	"testing"
)

func TestSplit_PartitionsRange(t *testing.T) {
	c := NewClip(ClipVideo, "/media/a.mp4", 2.0, 10.0)

	first, second, ok := c.Split(4.0)
	if !ok {
		t.Fatal("Split(4.0) returned ok=false")
	}

	if first.Range.Start != 2.0 || first.Range.Duration != 4.0 {
		t.Errorf("first range = %+v, want {2 4}", first.Range)
	}
	if second.Range.Start != 6.0 || second.Range.Duration != 6.0 {
		t.Errorf("second range = %+v, want {6 6}", second.Range)
	}
	if got := first.Range.Duration + second.Range.Duration; got != c.Range.Duration {
		t.Errorf("durations sum to %v, want %v", got, c.Range.Duration)
	}

	if first.ID == c.ID || second.ID == c.ID || first.ID == second.ID {
		t.Error("split must produce two fresh ids")
	}
	if first.Source != c.Source || second.Source != c.Source {
		t.Error("split must keep the source reference")
	}
}

func TestSplit_OutOfRangeIsNoOp(t *testing.T) {
	c := NewClip(ClipVideo, "", 0, 5.0)

	tests := []struct {
		name   string
		offset float64
	}{
		{name: "zero", offset: 0},
		{name: "negative", offset: -1},
		{name: "at duration", offset: 5.0},
		{name: "past duration", offset: 7.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, ok := c.Split(tc.offset); ok {
				t.Fatalf("Split(%v) ok = true, want false", tc.offset)
			}
		})
	}
}

func TestTrim_ReplacesRange(t *testing.T) {
	c := NewClip(ClipAudio, "", 1.0, 8.0)
	c.Trim(3.5, 2.0)

	if c.Range.Start != 3.5 || c.Range.Duration != 2.0 {
		t.Fatalf("range after trim = %+v, want {3.5 2}", c.Range)
	}
}

func TestMakeCompound(t *testing.T) {
	a := NewClip(ClipVideo, "/a.mp4", 1.0, 3.0)
	b := NewClip(ClipVideo, "/b.mp4", 4.0, 5.0)

	compound, ok := MakeCompound([]Clip{a, b}, TrackVideo)
	if !ok {
		t.Fatal("MakeCompound returned ok=false")
	}
	if compound.Kind != ClipCompound {
		t.Errorf("kind = %s, want compound", compound.Kind)
	}
	if compound.Range.Duration != 8.0 {
		t.Errorf("duration = %v, want sum 8", compound.Range.Duration)
	}
	if len(compound.SubTimeline) != 1 {
		t.Fatalf("sub-timeline tracks = %d, want 1", len(compound.SubTimeline))
	}
	inner := compound.SubTimeline[0]
	if inner.Kind != TrackVideo {
		t.Errorf("inner track kind = %s, want video", inner.Kind)
	}
	if len(inner.Clips) != 2 || inner.Clips[0].ID != a.ID || inner.Clips[1].ID != b.ID {
		t.Errorf("inner clips out of order: %+v", inner.Clips)
	}
}

func TestMakeCompound_EmptyIsNoOp(t *testing.T) {
	if _, ok := MakeCompound(nil, TrackVideo); ok {
		t.Fatal("MakeCompound(nil) ok = true, want false")
	}
}

func TestGroupClips_NonAdjacentKeepsTrackOrder(t *testing.T) {
	track := NewTrack(TrackVideo)
	a := NewClip(ClipVideo, "/a.mp4", 0, 2)
	b := NewClip(ClipVideo, "/b.mp4", 2, 3)
	c := NewClip(ClipVideo, "/c.mp4", 5, 4)
	track.Clips = []Clip{a, b, c}

	// Caller supplies ids out of track order; matches follow track order.
	compound, ok := track.GroupClips([]string{c.ID, a.ID})
	if !ok {
		t.Fatal("GroupClips returned ok=false")
	}

	if len(track.Clips) != 2 {
		t.Fatalf("track has %d clips, want 2", len(track.Clips))
	}
	if track.Clips[0].ID != compound.ID {
		t.Error("compound not inserted at earliest matched position")
	}
	if track.Clips[1].ID != b.ID {
		t.Error("unmatched clip lost or moved")
	}

	inner := compound.SubTimeline[0].Clips
	if len(inner) != 2 || inner[0].ID != a.ID || inner[1].ID != c.ID {
		t.Errorf("compound inner order = %v, want track order [a c]", []string{inner[0].ID, inner[1].ID})
	}
}

func TestGroupClips_FewerThanTwoMatchesIsNoOp(t *testing.T) {
	track := NewTrack(TrackVideo)
	a := NewClip(ClipVideo, "", 0, 2)
	track.Clips = []Clip{a}

	if _, ok := track.GroupClips([]string{a.ID, "missing"}); ok {
		t.Fatal("GroupClips with one match ok = true, want false")
	}
	if len(track.Clips) != 1 || track.Clips[0].ID != a.ID {
		t.Fatal("no-op group must leave the track untouched")
	}
}

func TestUngroupCompoundClip_RoundTrip(t *testing.T) {
	track := NewTrack(TrackVideo)
	a := NewClip(ClipVideo, "/a.mp4", 0, 2)
	b := NewClip(ClipVideo, "/b.mp4", 2, 3)
	c := NewClip(ClipVideo, "/c.mp4", 5, 4)
	track.Clips = []Clip{a, b, c}

	before := track.Clone()

	compound, ok := track.GroupClips([]string{a.ID, b.ID, c.ID})
	if !ok {
		t.Fatal("GroupClips returned ok=false")
	}

	restored, ok := track.UngroupCompoundClip(compound.ID)
	if !ok {
		t.Fatal("UngroupCompoundClip returned ok=false")
	}
	if len(restored) != 3 {
		t.Fatalf("restored %d clips, want 3", len(restored))
	}

	if len(track.Clips) != len(before.Clips) {
		t.Fatalf("track has %d clips after round trip, want %d", len(track.Clips), len(before.Clips))
	}
	for i := range before.Clips {
		got, want := track.Clips[i], before.Clips[i]
		if got.ID != want.ID {
			t.Errorf("clip %d id = %s, want %s", i, got.ID, want.ID)
		}
		if math.Abs(got.Range.Start-want.Range.Start) > 1e-9 || math.Abs(got.Range.Duration-want.Range.Duration) > 1e-9 {
			t.Errorf("clip %d range = %+v, want %+v", i, got.Range, want.Range)
		}
	}
}

func TestUngroupCompoundClip_NoOpCases(t *testing.T) {
	track := NewTrack(TrackVideo)
	plain := NewClip(ClipVideo, "", 0, 2)
	track.Clips = []Clip{plain}

	if _, ok := track.UngroupCompoundClip("missing"); ok {
		t.Error("ungroup of missing id ok = true, want false")
	}
	if _, ok := track.UngroupCompoundClip(plain.ID); ok {
		t.Error("ungroup of non-compound clip ok = true, want false")
	}
	if len(track.Clips) != 1 {
		t.Fatal("no-op ungroup must leave the track untouched")
	}
}
