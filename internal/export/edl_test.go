package export

import (
	"strings"
	"testing"

	"github.com/montage/montage-engine/internal/compose"
	"github.com/montage/montage-engine/internal/timeline"
)

func assembledPlan(t *testing.T, frameRate float64, withDissolve bool) *compose.Plan {
	t.Helper()
	p := timeline.NewProject("EDL", 1920, 1080, frameRate)
	track := timeline.NewTrack(timeline.TrackVideo)
	a := timeline.NewClip(timeline.ClipVideo, "/media/intro.mp4", 0, 2)
	b := timeline.NewClip(timeline.ClipVideo, "/media/body.mp4", 2, 3)
	track.Clips = []timeline.Clip{a, b}
	p.Tracks = []timeline.Track{track}
	if withDissolve {
		p.Transitions = []timeline.Transition{
			timeline.NewTransition(timeline.TransitionCrossDissolve, 1, a.ID, b.ID),
		}
	}
	return compose.Assemble(p)
}

func TestGenerateEDL_Cuts(t *testing.T) {
	edl := GenerateEDL(assembledPlan(t, 30, false), "Project One")

	if !strings.Contains(edl, "TITLE: Project One") {
		t.Fatalf("missing title in EDL: %q", edl)
	}
	if !strings.Contains(edl, "FCM: NON-DROP FRAME") {
		t.Fatalf("missing non-drop-frame FCM: %q", edl)
	}
	if !strings.Contains(edl, "001  AX       V     C        00:00:00:00 00:00:02:00 00:00:00:00 00:00:02:00") {
		t.Fatalf("missing first event line: %q", edl)
	}
	if !strings.Contains(edl, "002  AX       V     C        00:00:02:00 00:00:05:00 00:00:02:00 00:00:05:00") {
		t.Fatalf("missing second event line: %q", edl)
	}
	if !strings.Contains(edl, "* FROM CLIP NAME:  intro.mp4") {
		t.Fatalf("missing clip name comment: %q", edl)
	}
	if !strings.Contains(edl, "* MEDIA PATH:  /media/body.mp4") {
		t.Fatalf("missing media path comment: %q", edl)
	}
}

func TestGenerateEDL_DissolveEvent(t *testing.T) {
	edl := GenerateEDL(assembledPlan(t, 30, true), "Dissolves")

	// One second of overlap at 30 fps is a 030-frame dissolve, and the
	// incoming clip's record-in shifts back by that second.
	if !strings.Contains(edl, "002  AX       V     D 030    00:00:02:00 00:00:05:00 00:00:01:00 00:00:04:00") {
		t.Fatalf("missing dissolve event line: %q", edl)
	}
}

func TestGenerateEDL_DropFrame(t *testing.T) {
	edl := GenerateEDL(assembledPlan(t, 29.97, false), "Drop")

	if !strings.Contains(edl, "FCM: DROP FRAME") {
		t.Fatalf("expected drop frame FCM, got: %q", edl)
	}
}

func TestGenerateEDL_NoVideoTrack(t *testing.T) {
	p := timeline.NewProject("Audio Only", 1920, 1080, 30)
	track := timeline.NewTrack(timeline.TrackAudio)
	track.Clips = []timeline.Clip{timeline.NewClip(timeline.ClipAudio, "/a.wav", 0, 5)}
	p.Tracks = []timeline.Track{track}

	edl := GenerateEDL(compose.Assemble(p), "Audio Only")
	if strings.Contains(edl, "001") {
		t.Fatalf("audio-only plan produced video events: %q", edl)
	}
	if !strings.Contains(edl, "TITLE: Audio Only") {
		t.Fatalf("missing title: %q", edl)
	}
}

func TestSecToTimecode(t *testing.T) {
	tests := []struct {
		name string
		sec  float64
		fps  int
		want string
	}{
		{name: "zero", sec: 0, fps: 30, want: "00:00:00:00"},
		{name: "one second", sec: 1, fps: 30, want: "00:00:01:00"},
		{name: "half second", sec: 0.5, fps: 30, want: "00:00:00:15"},
		{name: "one minute", sec: 60, fps: 30, want: "00:01:00:00"},
		{name: "one hour", sec: 3600, fps: 30, want: "01:00:00:00"},
		{name: "24fps frame", sec: 0.25, fps: 24, want: "00:00:00:06"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := secToTimecode(tc.sec, tc.fps)
			if got != tc.want {
				t.Fatalf("secToTimecode(%v, %d) = %q, want %q", tc.sec, tc.fps, got, tc.want)
			}
		})
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{name: "clean", input: "My Project", max: 0, want: "My Project"},
		{name: "slashes", input: "a/b\\c", max: 0, want: "a_b_c"},
		{name: "control chars dropped", input: "a\x00b\nc", max: 0, want: "abc"},
		{name: "truncated", input: "abcdefgh", max: 3, want: "abc"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeName(tc.input, tc.max); got != tc.want {
				t.Fatalf("SanitizeName(%q, %d) = %q, want %q", tc.input, tc.max, got, tc.want)
			}
		})
	}
}
