package timeline

type TransitionType string

const (
	TransitionCrossDissolve TransitionType = "cross_dissolve"
	TransitionFade          TransitionType = "fade"
	TransitionDissolve      TransitionType = "dissolve"
	TransitionSlideLeft     TransitionType = "slide_left"
	TransitionSlideRight    TransitionType = "slide_right"
	TransitionSlideUp       TransitionType = "slide_up"
	TransitionSlideDown     TransitionType = "slide_down"
	TransitionWipeLeft      TransitionType = "wipe_left"
	TransitionWipeRight     TransitionType = "wipe_right"
	TransitionWipeUp        TransitionType = "wipe_up"
	TransitionWipeDown      TransitionType = "wipe_down"
	TransitionZoom          TransitionType = "zoom"
	TransitionBlur          TransitionType = "blur"
	TransitionNone          TransitionType = "none"
)

// Transition blends two clips across an overlap window. FromClipID and
// ToClipID are references, not ownership: the transition only takes effect
// while both ids resolve to consecutive clips of the same track.
type Transition struct {
	ID         string         `json:"id"`
	Type       TransitionType `json:"type"`
	Duration   float64        `json:"duration"`
	Params     map[string]any `json:"params,omitempty"`
	FromClipID string         `json:"from_clip_id"`
	ToClipID   string         `json:"to_clip_id"`
}

// NewTransition creates a transition between two clips.
func NewTransition(typ TransitionType, duration float64, fromClipID, toClipID string) Transition {
	return Transition{
		ID:         NewID(),
		Type:       typ,
		Duration:   duration,
		FromClipID: fromClipID,
		ToClipID:   toClipID,
	}
}

func (t Transition) Clone() Transition {
	out := t
	if t.Params != nil {
		out.Params = make(map[string]any, len(t.Params))
		for k, v := range t.Params {
			out.Params[k] = v
		}
	}
	return out
}
