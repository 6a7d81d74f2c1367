package compose

import (
	"github.com/montage/montage-engine/internal/timeline"
)

type Layer string

const (
	LayerOutgoing Layer = "outgoing"
	LayerIncoming Layer = "incoming"
)

// Ramp linearly interpolates a scalar across a boundary window.
type Ramp struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

func (r Ramp) At(f float64) float64 {
	return r.From + (r.To-r.From)*clamp01(f)
}

// Rect is an axis-aligned crop rectangle in canvas pixels.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// RectRamp interpolates each rectangle component independently.
type RectRamp struct {
	From Rect `json:"from"`
	To   Rect `json:"to"`
}

func (r RectRamp) At(f float64) Rect {
	f = clamp01(f)
	return Rect{
		X: lerp(r.From.X, r.To.X, f),
		Y: lerp(r.From.Y, r.To.Y, f),
		W: lerp(r.From.W, r.To.W, f),
		H: lerp(r.From.H, r.To.H, f),
	}
}

// TransformRamp interpolates scale, rotation and position.
type TransformRamp struct {
	From timeline.Transform `json:"from"`
	To   timeline.Transform `json:"to"`
}

func (r TransformRamp) At(f float64) timeline.Transform {
	f = clamp01(f)
	return timeline.Transform{
		Scale:    lerp(r.From.Scale, r.To.Scale, f),
		Rotation: lerp(r.From.Rotation, r.To.Rotation, f),
		X:        lerp(r.From.X, r.To.X, f),
		Y:        lerp(r.From.Y, r.To.Y, f),
	}
}

// LayerInstruction tells the render backend how one of a boundary's two
// layers must ramp across the boundary window. Absent ramps leave the
// layer's corresponding parameter untouched.
type LayerInstruction struct {
	Layer     Layer              `json:"layer"`
	ClipID    string             `json:"clip_id"`
	Window    timeline.TimeRange `json:"window"`
	Opacity   *Ramp              `json:"opacity,omitempty"`
	Crop      *RectRamp          `json:"crop,omitempty"`
	Transform *TransformRamp     `json:"transform,omitempty"`
}

// Fraction is the clamped elapsed fraction of the window at the given
// absolute time. Every ramp is linear in this fraction.
func (li LayerInstruction) Fraction(now float64) float64 {
	if li.Window.Duration <= 0 {
		return 0
	}
	return clamp01((now - li.Window.Start) / li.Window.Duration)
}

// BoundaryInstructions computes the pair of layer instructions for one
// transition boundary. It is a pure function of the boundary and the
// canvas size. Type "none" (and anything unrecognized) emits nothing;
// blur falls back to the cross-dissolve ramp until a real blur transition
// exists.
func BoundaryInstructions(b Boundary, width, height int) []LayerInstruction {
	w := float64(width)
	h := float64(height)
	out := LayerInstruction{Layer: LayerOutgoing, ClipID: b.FromClipID, Window: b.Window}
	in := LayerInstruction{Layer: LayerIncoming, ClipID: b.ToClipID, Window: b.Window}

	switch b.Transition.Type {
	case timeline.TransitionCrossDissolve, timeline.TransitionFade, timeline.TransitionDissolve, timeline.TransitionBlur:
		out.Opacity = &Ramp{From: 1, To: 0}
		in.Opacity = &Ramp{From: 0, To: 1}

	case timeline.TransitionWipeLeft:
		out.Crop = &RectRamp{From: fullFrame(w, h), To: Rect{X: 0, Y: 0, W: 0, H: h}}
		return []LayerInstruction{out}
	case timeline.TransitionWipeRight:
		out.Crop = &RectRamp{From: fullFrame(w, h), To: Rect{X: w, Y: 0, W: 0, H: h}}
		return []LayerInstruction{out}
	case timeline.TransitionWipeUp:
		out.Crop = &RectRamp{From: fullFrame(w, h), To: Rect{X: 0, Y: 0, W: w, H: 0}}
		return []LayerInstruction{out}
	case timeline.TransitionWipeDown:
		out.Crop = &RectRamp{From: fullFrame(w, h), To: Rect{X: 0, Y: h, W: w, H: 0}}
		return []LayerInstruction{out}

	case timeline.TransitionSlideLeft:
		out.Transform = slideRamp(0, 0, -w, 0)
		in.Transform = slideRamp(w, 0, 0, 0)
	case timeline.TransitionSlideRight:
		out.Transform = slideRamp(0, 0, w, 0)
		in.Transform = slideRamp(-w, 0, 0, 0)
	case timeline.TransitionSlideUp:
		out.Transform = slideRamp(0, 0, 0, -h)
		in.Transform = slideRamp(0, h, 0, 0)
	case timeline.TransitionSlideDown:
		out.Transform = slideRamp(0, 0, 0, h)
		in.Transform = slideRamp(0, -h, 0, 0)

	case timeline.TransitionZoom:
		out.Opacity = &Ramp{From: 1, To: 0}
		out.Transform = &TransformRamp{
			From: timeline.Transform{Scale: 1.0},
			To:   timeline.Transform{Scale: 2.0},
		}
		in.Opacity = &Ramp{From: 0, To: 1}
		in.Transform = &TransformRamp{
			From: timeline.Transform{Scale: 0.5},
			To:   timeline.Transform{Scale: 1.0},
		}

	default:
		return nil
	}

	return []LayerInstruction{out, in}
}

// PlanInstructions annotates every boundary in the plan.
func PlanInstructions(p *Plan) []LayerInstruction {
	var all []LayerInstruction
	for _, b := range p.Boundaries() {
		all = append(all, BoundaryInstructions(b, p.Width, p.Height)...)
	}
	return all
}

func slideRamp(fromX, fromY, toX, toY float64) *TransformRamp {
	return &TransformRamp{
		From: timeline.Transform{Scale: 1.0, X: fromX, Y: fromY},
		To:   timeline.Transform{Scale: 1.0, X: toX, Y: toY},
	}
}

func fullFrame(w, h float64) Rect {
	return Rect{X: 0, Y: 0, W: w, H: h}
}

func lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
