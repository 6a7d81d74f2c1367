// Package editor is the editing session layer: it loads a project,
// applies one structural edit, revalidates, and persists the new value.
// A mutex serializes writers so each project has a single logical writer;
// readers work on snapshots and never contend.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/montage/montage-engine/internal/compose"
	"github.com/montage/montage-engine/internal/store"
	"github.com/montage/montage-engine/internal/timeline"
)

var (
	// ErrNotFound means the project, track or clip id did not resolve.
	ErrNotFound = errors.New("not found")
	// ErrNoOp marks an edit that legitimately changed nothing: a split
	// outside the clip's range, a group with fewer than two matches, an
	// ungroup of a non-compound clip.
	ErrNoOp = errors.New("operation had no effect")
	// ErrLocked means the target track is locked against edits.
	ErrLocked = errors.New("track is locked")
	// ErrInvalidEdit means the edit would violate a structural invariant
	// and was rejected before saving.
	ErrInvalidEdit = errors.New("invalid edit")
)

type EditorService interface {
	CreateProject(ctx context.Context, name string, width, height int, frameRate float64) (*timeline.Project, error)
	GetProject(ctx context.Context, id string) (*timeline.Project, error)
	ListProjects(ctx context.Context) ([]store.ProjectSummary, error)
	DeleteProject(ctx context.Context, id string) error

	AddTrack(ctx context.Context, projectID string, kind timeline.TrackKind) (*timeline.Project, error)
	AddClip(ctx context.Context, projectID, trackID string, clip timeline.Clip) (*timeline.Project, error)
	RemoveClip(ctx context.Context, projectID, clipID string) (*timeline.Project, error)
	TrimClip(ctx context.Context, projectID, clipID string, start, duration float64) (*timeline.Project, error)
	SplitClip(ctx context.Context, projectID, clipID string, offset float64) (*timeline.Project, error)
	GroupClips(ctx context.Context, projectID, trackID string, clipIDs []string) (*timeline.Project, error)
	UngroupClip(ctx context.Context, projectID, trackID, clipID string) (*timeline.Project, error)
	AddTransition(ctx context.Context, projectID string, tr timeline.Transition) (*timeline.Project, error)
	ImportCaptions(ctx context.Context, projectID string, clips []timeline.Clip) (*timeline.Project, error)

	AssemblePlan(ctx context.Context, projectID string) (*compose.Plan, []compose.LayerInstruction, error)
}

type Service struct {
	repo   store.Repository
	logger *slog.Logger

	mu sync.Mutex // serializes the edit-load-save cycle
}

func NewService(repo store.Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) CreateProject(ctx context.Context, name string, width, height int, frameRate float64) (*timeline.Project, error) {
	if name == "" {
		name = "Untitled Project"
	}
	p := timeline.NewProject(name, width, height, frameRate)
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEdit, err)
	}
	if err := s.repo.SaveProject(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("project created", "project_id", p.ID, "name", p.Name)
	return p, nil
}

func (s *Service) GetProject(ctx context.Context, id string) (*timeline.Project, error) {
	p, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Service) ListProjects(ctx context.Context) ([]store.ProjectSummary, error) {
	return s.repo.ListProjects(ctx)
}

func (s *Service) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrNotFound
	}
	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.logger.Info("project deleted", "project_id", id)
	return nil
}

// edit runs one load-mutate-validate-save cycle under the writer lock.
func (s *Service) edit(ctx context.Context, projectID string, apply func(p *timeline.Project) error) (*timeline.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}

	if err := apply(p); err != nil {
		return nil, err
	}

	p.Touch()
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEdit, err)
	}
	if err := s.repo.SaveProject(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) AddTrack(ctx context.Context, projectID string, kind timeline.TrackKind) (*timeline.Project, error) {
	return s.edit(ctx, projectID, func(p *timeline.Project) error {
		p.Tracks = append(p.Tracks, timeline.NewTrack(kind))
		return nil
	})
}

func (s *Service) AddClip(ctx context.Context, projectID, trackID string, clip timeline.Clip) (*timeline.Project, error) {
	return s.edit(ctx, projectID, func(p *timeline.Project) error {
		track := p.Track(trackID)
		if track == nil {
			return fmt.Errorf("track %s: %w", trackID, ErrNotFound)
		}
		if track.Locked {
			return ErrLocked
		}
		if clip.ID == "" {
			clip.ID = timeline.NewID()
		}
		track.Clips = append(track.Clips, clip)
		return nil
	})
}

// RemoveClip deletes a top-level clip; transitions that referenced it are
// pruned rather than left dangling.
func (s *Service) RemoveClip(ctx context.Context, projectID, clipID string) (*timeline.Project, error) {
	return s.edit(ctx, projectID, func(p *timeline.Project) error {
		for i := range p.Tracks {
			track := &p.Tracks[i]
			for j := range track.Clips {
				if track.Clips[j].ID != clipID {
					continue
				}
				if track.Locked {
					return ErrLocked
				}
				track.Clips = append(track.Clips[:j], track.Clips[j+1:]...)
				p.PruneTransitions()
				return nil
			}
		}
		return fmt.Errorf("clip %s: %w", clipID, ErrNotFound)
	})
}

func (s *Service) TrimClip(ctx context.Context, projectID, clipID string, start, duration float64) (*timeline.Project, error) {
	return s.edit(ctx, projectID, func(p *timeline.Project) error {
		clip, track := p.FindClip(clipID)
		if clip == nil {
			return fmt.Errorf("clip %s: %w", clipID, ErrNotFound)
		}
		if track.Locked {
			return ErrLocked
		}
		clip.Trim(start, duration)
		p.PruneTransitions()
		return nil
	})
}

func (s *Service) SplitClip(ctx context.Context, projectID, clipID string, offset float64) (*timeline.Project, error) {
	return s.edit(ctx, projectID, func(p *timeline.Project) error {
		clip, track := p.FindClip(clipID)
		if clip == nil {
			return fmt.Errorf("clip %s: %w", clipID, ErrNotFound)
		}
		if track.Locked {
			return ErrLocked
		}
		first, second, ok := clip.Split(offset)
		if !ok {
			return fmt.Errorf("split at %v: %w", offset, ErrNoOp)
		}
		for j := range track.Clips {
			if track.Clips[j].ID == clipID {
				replaced := append(track.Clips[:j:j], first, second)
				track.Clips = append(replaced, track.Clips[j+1:]...)
				break
			}
		}
		p.PruneTransitions()
		return nil
	})
}

func (s *Service) GroupClips(ctx context.Context, projectID, trackID string, clipIDs []string) (*timeline.Project, error) {
	return s.edit(ctx, projectID, func(p *timeline.Project) error {
		track := p.Track(trackID)
		if track == nil {
			return fmt.Errorf("track %s: %w", trackID, ErrNotFound)
		}
		if track.Locked {
			return ErrLocked
		}
		if _, ok := track.GroupClips(clipIDs); !ok {
			return fmt.Errorf("group needs at least two matching clips: %w", ErrNoOp)
		}
		p.PruneTransitions()
		return nil
	})
}

func (s *Service) UngroupClip(ctx context.Context, projectID, trackID, clipID string) (*timeline.Project, error) {
	return s.edit(ctx, projectID, func(p *timeline.Project) error {
		track := p.Track(trackID)
		if track == nil {
			return fmt.Errorf("track %s: %w", trackID, ErrNotFound)
		}
		if track.Locked {
			return ErrLocked
		}
		if _, ok := track.UngroupCompoundClip(clipID); !ok {
			return fmt.Errorf("ungroup %s: %w", clipID, ErrNoOp)
		}
		p.PruneTransitions()
		return nil
	})
}

// AddTransition rejects at creation: the validation pass fails the edit
// when the ids are not adjacent or the duration exceeds either neighbor.
func (s *Service) AddTransition(ctx context.Context, projectID string, tr timeline.Transition) (*timeline.Project, error) {
	return s.edit(ctx, projectID, func(p *timeline.Project) error {
		if tr.ID == "" {
			tr.ID = timeline.NewID()
		}
		p.Transitions = append(p.Transitions, tr)
		return nil
	})
}

// ImportCaptions adds the given text clips on a fresh overlay track.
func (s *Service) ImportCaptions(ctx context.Context, projectID string, clips []timeline.Clip) (*timeline.Project, error) {
	return s.edit(ctx, projectID, func(p *timeline.Project) error {
		if len(clips) == 0 {
			return fmt.Errorf("no caption clips: %w", ErrNoOp)
		}
		track := timeline.NewTrack(timeline.TrackOverlay)
		track.Clips = clips
		p.Tracks = append(p.Tracks, track)
		return nil
	})
}

// AssemblePlan assembles a snapshot of the project and generates the
// boundary instructions. Pure reads; safe to call concurrently with edits.
func (s *Service) AssemblePlan(ctx context.Context, projectID string) (*compose.Plan, []compose.LayerInstruction, error) {
	p, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	plan := compose.Assemble(p.Clone())
	return plan, compose.PlanInstructions(plan), nil
}
