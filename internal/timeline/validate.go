package timeline

import "fmt"

// Validate checks the project's structural invariants: positive clip
// durations, compound clips carrying a non-empty sub-timeline (and only
// compound clips carrying one), and every transition resolving to two
// consecutive clips of one track with a positive duration no longer than
// the shorter of the two. The assembler tolerates an unvalidated model by
// skipping and clamping, but edits should be rejected here first.
func (p *Project) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d is not positive", p.Width, p.Height)
	}
	if p.FrameRate <= 0 {
		return fmt.Errorf("frame rate %v is not positive", p.FrameRate)
	}

	for i := range p.Tracks {
		if err := validateTrack(&p.Tracks[i]); err != nil {
			return fmt.Errorf("track %s: %w", p.Tracks[i].ID, err)
		}
	}

	for _, tr := range p.Transitions {
		if err := p.validateTransition(tr); err != nil {
			return fmt.Errorf("transition %s: %w", tr.ID, err)
		}
	}
	return nil
}

func validateTrack(t *Track) error {
	switch t.Kind {
	case TrackVideo, TrackAudio, TrackOverlay:
	default:
		return fmt.Errorf("unknown track kind %q", t.Kind)
	}

	for i := range t.Clips {
		if err := validateClip(&t.Clips[i]); err != nil {
			return fmt.Errorf("clip %s: %w", t.Clips[i].ID, err)
		}
	}
	return nil
}

func validateClip(c *Clip) error {
	if c.Range.Duration <= 0 {
		return fmt.Errorf("duration %v is not positive", c.Range.Duration)
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		return fmt.Errorf("opacity %v outside [0,1]", c.Opacity)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("volume %v outside [0,1]", c.Volume)
	}

	if c.Kind == ClipCompound {
		if len(c.SubTimeline) == 0 {
			return fmt.Errorf("compound clip has empty sub-timeline")
		}
		for i := range c.SubTimeline {
			if err := validateTrack(&c.SubTimeline[i]); err != nil {
				return fmt.Errorf("sub-timeline track %s: %w", c.SubTimeline[i].ID, err)
			}
		}
	} else if len(c.SubTimeline) > 0 {
		return fmt.Errorf("%s clip carries a sub-timeline", c.Kind)
	}
	return nil
}

func (p *Project) validateTransition(tr Transition) error {
	if tr.Duration <= 0 {
		return fmt.Errorf("duration %v is not positive", tr.Duration)
	}

	from, to, ok := p.adjacentPair(tr.FromClipID, tr.ToClipID)
	if !ok {
		return fmt.Errorf("clips %s and %s are not adjacent on any track", tr.FromClipID, tr.ToClipID)
	}

	shorter := from.Range.Duration
	if to.Range.Duration < shorter {
		shorter = to.Range.Duration
	}
	if tr.Duration > shorter {
		return fmt.Errorf("duration %v exceeds shorter adjacent clip duration %v", tr.Duration, shorter)
	}
	return nil
}

// PruneTransitions drops transitions invalidated by a structural edit:
// any whose clip ids no longer name an adjacent pair, or whose duration
// no longer fits the shorter neighbor. Returns how many were removed.
func (p *Project) PruneTransitions() int {
	kept := p.Transitions[:0]
	removed := 0
	for _, tr := range p.Transitions {
		if p.validateTransition(tr) != nil {
			removed++
			continue
		}
		kept = append(kept, tr)
	}
	p.Transitions = kept
	if len(p.Transitions) == 0 {
		p.Transitions = nil
	}
	return removed
}

// adjacentPair reports whether fromID and toID name consecutive clips of
// one track, in that order, and returns the two clips.
func (p *Project) adjacentPair(fromID, toID string) (Clip, Clip, bool) {
	for _, t := range p.Tracks {
		for i := 0; i+1 < len(t.Clips); i++ {
			if t.Clips[i].ID == fromID && t.Clips[i+1].ID == toID {
				return t.Clips[i], t.Clips[i+1], true
			}
		}
	}
	return Clip{}, Clip{}, false
}
