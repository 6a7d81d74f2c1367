// Package subtitle translates between the timeline and the SRT caption
// format. Export walks the plan's text segments; import produces text
// clips ready to append to an overlay track. It is a plain translation
// at the boundary, nothing here interprets styling.
package subtitle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/montage/montage-engine/internal/compose"
	"github.com/montage/montage-engine/internal/timeline"
)

var ErrInvalidSRT = errors.New("invalid srt document")

// Cue is one numbered SRT block.
type Cue struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// FromPlan collects the plan's text segments, across overlay tracks, as
// cues in time order within each track.
func FromPlan(plan *compose.Plan) []Cue {
	var cues []Cue
	for _, tp := range plan.Tracks {
		for _, seg := range tp.Segments {
			if seg.Kind != timeline.ClipText || seg.Text == "" {
				continue
			}
			cues = append(cues, Cue{
				Index: len(cues) + 1,
				Start: seg.Window.Start,
				End:   seg.Window.End(),
				Text:  seg.Text,
			})
		}
	}
	return cues
}

// Format renders cues as an SRT document.
func Format(cues []Cue) string {
	var b strings.Builder
	for i, cue := range cues {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", formatTimestamp(cue.Start), formatTimestamp(cue.End))
		b.WriteString(strings.TrimSpace(cue.Text))
		b.WriteString("\n")
	}
	return b.String()
}

// Parse reads an SRT document into cues. Malformed blocks surface
// ErrInvalidSRT with the offending block number.
func Parse(data string) ([]Cue, error) {
	normalized := strings.ReplaceAll(data, "\r\n", "\n")
	blocks := strings.Split(strings.TrimSpace(normalized), "\n\n")

	var cues []Cue
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		if len(lines) < 2 {
			return nil, fmt.Errorf("%w: block %d has no timing line", ErrInvalidSRT, len(cues)+1)
		}

		index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: block %d has bad index %q", ErrInvalidSRT, len(cues)+1, lines[0])
		}

		start, end, err := parseTimingLine(lines[1])
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %v", ErrInvalidSRT, index, err)
		}

		cues = append(cues, Cue{
			Index: index,
			Start: start,
			End:   end,
			Text:  strings.Join(lines[2:], "\n"),
		})
	}
	return cues, nil
}

// ToClips turns cues into text clips for an overlay track. Each clip's
// range is the cue's window; gaps between cues are not represented, so
// contiguous re-assembly only matches when cues are back to back.
func ToClips(cues []Cue) []timeline.Clip {
	clips := make([]timeline.Clip, 0, len(cues))
	for _, cue := range cues {
		clip := timeline.NewClip(timeline.ClipText, "", cue.Start, cue.End-cue.Start)
		clip.Text = cue.Text
		clips = append(clips, clip)
	}
	return clips
}

func parseTimingLine(line string) (float64, float64, error) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("bad timing line %q", line)
	}
	start, err := parseTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	end, err := parseTimestamp(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	if end <= start {
		return 0, 0, fmt.Errorf("end %v not after start %v", end, start)
	}
	return start, end, nil
}

// parseTimestamp reads "HH:MM:SS,mmm".
func parseTimestamp(s string) (float64, error) {
	var h, m, sec, ms int
	if _, err := fmt.Sscanf(s, "%d:%d:%d,%d", &h, &m, &sec, &ms); err != nil {
		return 0, fmt.Errorf("bad timestamp %q", s)
	}
	if m > 59 || sec > 59 || ms > 999 {
		return 0, fmt.Errorf("bad timestamp %q", s)
	}
	return float64(h)*3600 + float64(m)*60 + float64(sec) + float64(ms)/1000, nil
}

func formatTimestamp(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	totalMs := int(sec*1000 + 0.5)
	ms := totalMs % 1000
	totalSec := totalMs / 1000
	s := totalSec % 60
	totalMin := totalSec / 60
	m := totalMin % 60
	h := totalMin / 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
