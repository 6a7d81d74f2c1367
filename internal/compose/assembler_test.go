package compose

import (
	"math"
	"testing"

	"github.com/montage/montage-engine/internal/timeline"
)

func twoClipProject(transition *timeline.Transition) (*timeline.Project, timeline.Clip, timeline.Clip) {
	p := timeline.NewProject("Assembly", 1920, 1080, 30)
	track := timeline.NewTrack(timeline.TrackVideo)
	x := timeline.NewClip(timeline.ClipVideo, "/x.mp4", 0, 10)
	y := timeline.NewClip(timeline.ClipVideo, "/y.mp4", 10, 8)
	track.Clips = []timeline.Clip{x, y}
	p.Tracks = []timeline.Track{track}

	if transition != nil {
		tr := *transition
		tr.FromClipID = x.ID
		tr.ToClipID = y.ID
		p.Transitions = []timeline.Transition{tr}
	}
	return p, x, y
}

func approx(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func TestAssemble_BackToBackWithoutTransition(t *testing.T) {
	p, x, y := twoClipProject(nil)

	plan := Assemble(p)
	if len(plan.Tracks) != 1 {
		t.Fatalf("tracks = %d, want 1", len(plan.Tracks))
	}
	tp := plan.Tracks[0]
	if len(tp.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(tp.Segments))
	}

	if !approx(tp.Segments[0].Window.Start, 0) || !approx(tp.Segments[0].Window.End(), 10) {
		t.Errorf("segment X window = %+v, want [0,10)", tp.Segments[0].Window)
	}
	if !approx(tp.Segments[1].Window.Start, 10) || !approx(tp.Segments[1].Window.End(), 18) {
		t.Errorf("segment Y window = %+v, want [10,18)", tp.Segments[1].Window)
	}
	if len(tp.Boundaries) != 0 {
		t.Errorf("boundaries = %d, want 0", len(tp.Boundaries))
	}
	if !approx(plan.Duration, 18) {
		t.Errorf("plan duration = %v, want 18", plan.Duration)
	}

	if tp.Segments[0].ClipID != x.ID || tp.Segments[1].ClipID != y.ID {
		t.Error("segments out of clip order")
	}
}

func TestAssemble_TransitionReservesOverlap(t *testing.T) {
	tr := timeline.NewTransition(timeline.TransitionCrossDissolve, 1, "", "")
	p, x, y := twoClipProject(&tr)

	plan := Assemble(p)
	tp := plan.Tracks[0]

	if !approx(tp.Segments[1].Window.Start, 9) {
		t.Errorf("incoming start = %v, want 9", tp.Segments[1].Window.Start)
	}
	if !approx(tp.Segments[1].Window.End(), 17) {
		t.Errorf("incoming end = %v, want 17", tp.Segments[1].Window.End())
	}
	if !approx(plan.Duration, 17) {
		t.Errorf("plan duration = %v, want 17 not 18", plan.Duration)
	}

	if len(tp.Boundaries) != 1 {
		t.Fatalf("boundaries = %d, want 1", len(tp.Boundaries))
	}
	b := tp.Boundaries[0]
	if !approx(b.Window.Start, 9) || !approx(b.Window.Duration, 1) {
		t.Errorf("boundary window = %+v, want [9,10)", b.Window)
	}
	if b.FromClipID != x.ID || b.ToClipID != y.ID {
		t.Error("boundary clip ids wrong")
	}
}

func TestAssemble_NonAdjacentTransitionSkipped(t *testing.T) {
	p, x, y := twoClipProject(nil)
	// Reversed ids never match a walk boundary.
	p.Transitions = []timeline.Transition{
		timeline.NewTransition(timeline.TransitionFade, 1, y.ID, x.ID),
	}

	plan := Assemble(p)
	tp := plan.Tracks[0]
	if len(tp.Boundaries) != 0 {
		t.Fatalf("boundaries = %d, want 0 for non-adjacent transition", len(tp.Boundaries))
	}
	if !approx(plan.Duration, 18) {
		t.Errorf("plan duration = %v, want 18", plan.Duration)
	}
}

func TestAssemble_OversizedTransitionClamped(t *testing.T) {
	tr := timeline.NewTransition(timeline.TransitionCrossDissolve, 30, "", "")
	p, _, _ := twoClipProject(&tr)

	plan := Assemble(p)
	tp := plan.Tracks[0]
	if len(tp.Boundaries) != 1 {
		t.Fatalf("boundaries = %d, want 1", len(tp.Boundaries))
	}
	// Clamped to the shorter neighbor (8), never negative.
	if !approx(tp.Boundaries[0].Window.Duration, 8) {
		t.Errorf("overlap = %v, want clamp to 8", tp.Boundaries[0].Window.Duration)
	}
	if !approx(tp.Segments[1].Window.Start, 2) {
		t.Errorf("incoming start = %v, want 2", tp.Segments[1].Window.Start)
	}
}

func TestAssemble_UpstreamOverlapShiftsDownstream(t *testing.T) {
	p := timeline.NewProject("Chain", 1920, 1080, 30)
	track := timeline.NewTrack(timeline.TrackVideo)
	a := timeline.NewClip(timeline.ClipVideo, "", 0, 5)
	b := timeline.NewClip(timeline.ClipVideo, "", 5, 5)
	c := timeline.NewClip(timeline.ClipVideo, "", 10, 5)
	track.Clips = []timeline.Clip{a, b, c}
	p.Tracks = []timeline.Track{track}
	p.Transitions = []timeline.Transition{
		timeline.NewTransition(timeline.TransitionCrossDissolve, 2, a.ID, b.ID),
	}

	plan := Assemble(p)
	tp := plan.Tracks[0]

	if !approx(tp.Segments[1].Window.Start, 3) {
		t.Errorf("b start = %v, want 3", tp.Segments[1].Window.Start)
	}
	// c follows b's shifted window, not the raw duration sum.
	if !approx(tp.Segments[2].Window.Start, 8) {
		t.Errorf("c start = %v, want 8", tp.Segments[2].Window.Start)
	}
	if !approx(plan.Duration, 13) {
		t.Errorf("plan duration = %v, want 13", plan.Duration)
	}
}

func TestAssemble_TracksAreIndependent(t *testing.T) {
	p := timeline.NewProject("Multi", 1920, 1080, 30)

	video := timeline.NewTrack(timeline.TrackVideo)
	v1 := timeline.NewClip(timeline.ClipVideo, "", 0, 10)
	v2 := timeline.NewClip(timeline.ClipVideo, "", 10, 10)
	video.Clips = []timeline.Clip{v1, v2}

	audio := timeline.NewTrack(timeline.TrackAudio)
	audio.Clips = []timeline.Clip{timeline.NewClip(timeline.ClipAudio, "", 0, 6)}

	p.Tracks = []timeline.Track{video, audio}
	p.Transitions = []timeline.Transition{
		timeline.NewTransition(timeline.TransitionFade, 2, v1.ID, v2.ID),
	}

	plan := Assemble(p)
	if !approx(plan.Tracks[0].Span(), 18) {
		t.Errorf("video span = %v, want 18", plan.Tracks[0].Span())
	}
	if !approx(plan.Tracks[1].Span(), 6) {
		t.Errorf("audio span = %v, want 6", plan.Tracks[1].Span())
	}
	if !approx(plan.Duration, 18) {
		t.Errorf("plan duration = %v, want 18", plan.Duration)
	}
}

func TestAssemble_CompoundExpandsChildren(t *testing.T) {
	p := timeline.NewProject("Compound", 1920, 1080, 30)
	track := timeline.NewTrack(timeline.TrackVideo)
	lead := timeline.NewClip(timeline.ClipVideo, "", 0, 4)
	a := timeline.NewClip(timeline.ClipVideo, "/a.mp4", 0, 3)
	b := timeline.NewClip(timeline.ClipVideo, "/b.mp4", 3, 2)
	compound, ok := timeline.MakeCompound([]timeline.Clip{a, b}, timeline.TrackVideo)
	if !ok {
		t.Fatal("MakeCompound failed")
	}
	track.Clips = []timeline.Clip{lead, compound}
	p.Tracks = []timeline.Track{track}

	plan := Assemble(p)
	segs := plan.Tracks[0].Segments
	if len(segs) != 2 {
		t.Fatalf("segments = %d, want 2", len(segs))
	}

	comp := segs[1]
	if !approx(comp.Window.Start, 4) || !approx(comp.Window.End(), 9) {
		t.Errorf("compound window = %+v, want [4,9)", comp.Window)
	}
	if len(comp.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(comp.Children))
	}
	if !approx(comp.Children[0].Window.Start, 4) || !approx(comp.Children[0].Window.End(), 7) {
		t.Errorf("child a window = %+v, want [4,7)", comp.Children[0].Window)
	}
	if !approx(comp.Children[1].Window.Start, 7) || !approx(comp.Children[1].Window.End(), 9) {
		t.Errorf("child b window = %+v, want [7,9)", comp.Children[1].Window)
	}
}

func TestAssemble_DoesNotMutateProject(t *testing.T) {
	tr := timeline.NewTransition(timeline.TransitionCrossDissolve, 1, "", "")
	p, _, _ := twoClipProject(&tr)
	before, err := timeline.EncodeProject(p)
	if err != nil {
		t.Fatal(err)
	}

	Assemble(p)

	after, err := timeline.EncodeProject(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Fatal("Assemble mutated the project")
	}
}
