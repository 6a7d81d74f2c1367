// Package export renders an assembled plan as a CMX3600-style EDL so a
// cut can move into external editors.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/montage/montage-engine/internal/compose"
	"github.com/montage/montage-engine/internal/timeline"
)

// GenerateEDL writes the plan's first video track as an edit decision
// list. Cuts come out as C events; a transition boundary turns the
// incoming clip's event into a D event carrying the overlap length in
// frames. Source timecodes come from each clip's trim range, record
// timecodes from its placement window.
func GenerateEDL(plan *compose.Plan, title string) string {
	fps := int(math.Round(plan.FrameRate))
	if fps <= 0 {
		fps = 30
	}

	isDropFrame := math.Abs(plan.FrameRate-29.97) < 0.01 || math.Abs(plan.FrameRate-59.94) < 0.01

	lines := []string{fmt.Sprintf("TITLE: %s", SanitizeName(title, 120))}
	if isDropFrame {
		lines = append(lines, "FCM: DROP FRAME")
	} else {
		lines = append(lines, "FCM: NON-DROP FRAME")
	}
	lines = append(lines, "")

	track := videoTrack(plan)
	if track == nil {
		lines = append(lines, "")
		return strings.Join(lines, "\n")
	}

	dissolveFrames := make(map[string]int)
	for _, b := range track.Boundaries {
		dissolveFrames[b.ToClipID] = int(math.Round(b.Window.Duration * float64(fps)))
	}

	for i, seg := range track.Segments {
		srcIn := secToTimecode(seg.SourceRange.Start, fps)
		srcOut := secToTimecode(seg.SourceRange.End(), fps)
		recIn := secToTimecode(seg.Window.Start, fps)
		recOut := secToTimecode(seg.Window.End(), fps)

		event := "C       "
		if frames, ok := dissolveFrames[seg.ClipID]; ok && frames > 0 {
			event = fmt.Sprintf("D %03d   ", frames)
		}

		lines = append(lines,
			fmt.Sprintf("%03d  %-8s %-5s %s %s %s %s %s", i+1, "AX", "V", event, srcIn, srcOut, recIn, recOut),
			fmt.Sprintf("* FROM CLIP NAME:  %s", clipName(seg)),
		)
		if seg.Source != "" {
			lines = append(lines, fmt.Sprintf("* MEDIA PATH:  %s", seg.Source))
		}
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func videoTrack(plan *compose.Plan) *compose.TrackPlan {
	for i := range plan.Tracks {
		if plan.Tracks[i].Kind == timeline.TrackVideo {
			return &plan.Tracks[i]
		}
	}
	return nil
}

func clipName(seg compose.Segment) string {
	if seg.Source != "" {
		parts := strings.Split(seg.Source, "/")
		return parts[len(parts)-1]
	}
	return seg.ClipID
}

func secToTimecode(sec float64, fps int) string {
	totalFrames := int(math.Round(sec * float64(fps)))
	frames := totalFrames % fps
	totalSeconds := totalFrames / fps
	seconds := totalSeconds % 60
	totalMinutes := totalSeconds / 60
	minutes := totalMinutes % 60
	hours := totalMinutes / 60
	return fmt.Sprintf("%02d:%02d:%02d:%02d", hours, minutes, seconds, frames)
}
