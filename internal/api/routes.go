package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/montage/montage-engine/internal/config"
	"github.com/montage/montage-engine/internal/editor"
	"github.com/montage/montage-engine/internal/export"
	"github.com/montage/montage-engine/internal/render"
	"github.com/montage/montage-engine/internal/store"
	"github.com/montage/montage-engine/internal/subtitle"
	"github.com/montage/montage-engine/internal/timeline"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Repository, cfg.Logger))

		r.Get("/projects", listProjectsHandler(cfg))
		r.Post("/projects", createProjectHandler(cfg))
		r.Get("/projects/{id}", getProjectHandler(cfg))
		r.Delete("/projects/{id}", deleteProjectHandler(cfg))

		r.Post("/projects/{id}/tracks", addTrackHandler(cfg))
		r.Post("/projects/{id}/tracks/{trackID}/clips", addClipHandler(cfg))
		r.Post("/projects/{id}/tracks/{trackID}/group", groupClipsHandler(cfg))
		r.Post("/projects/{id}/tracks/{trackID}/ungroup", ungroupClipHandler(cfg))
		r.Post("/projects/{id}/clips/{clipID}/split", splitClipHandler(cfg))
		r.Post("/projects/{id}/clips/{clipID}/trim", trimClipHandler(cfg))
		r.Delete("/projects/{id}/clips/{clipID}", removeClipHandler(cfg))
		r.Post("/projects/{id}/transitions", addTransitionHandler(cfg))
		r.Post("/projects/{id}/captions", importCaptionsHandler(cfg))

		r.Get("/projects/{id}/plan", planHandler(cfg))
		r.Get("/projects/{id}/export/edl", exportEDLHandler(cfg))
		r.Get("/projects/{id}/export/srt", exportSRTHandler(cfg))
		r.Post("/projects/{id}/render", renderHandler(cfg))
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := int64(time.Since(cfg.StartTime).Seconds())
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: config.Version,
			UptimeS: uptime,
		})
	}
}

// writeEditError maps service errors onto the API error envelope.
func writeEditError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, editor.ErrNotFound):
		WriteError(w, http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, editor.ErrNoOp):
		WriteError(w, http.StatusUnprocessableEntity, err.Error(), "NO_OP")
	case errors.Is(err, editor.ErrLocked):
		WriteError(w, http.StatusConflict, err.Error(), "LOCKED")
	case errors.Is(err, editor.ErrInvalidEdit):
		WriteError(w, http.StatusUnprocessableEntity, err.Error(), "INVALID_EDIT")
	case errors.Is(err, timeline.ErrInvalidDocument):
		WriteError(w, http.StatusUnprocessableEntity, err.Error(), "INVALID_DOCUMENT")
	default:
		WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
	}
}

func listProjectsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := cfg.Editor.ListProjects(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list projects", "INTERNAL_ERROR")
			return
		}
		if projects == nil {
			projects = []store.ProjectSummary{}
		}
		WriteJSON(w, http.StatusOK, ProjectsResponse{Projects: projects})
	}
}

func createProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		width, height := req.Width, req.Height
		if width <= 0 || height <= 0 {
			width, height = cfg.DefaultWidth, cfg.DefaultHeight
		}
		frameRate := req.FrameRate
		if frameRate <= 0 {
			frameRate = cfg.DefaultFrameRate
		}

		p, err := cfg.Editor.CreateProject(r.Context(), req.Name, width, height, frameRate)
		if err != nil {
			writeEditError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, p)
	}
}

func getProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := cfg.Editor.GetProject(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeEditError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, p)
	}
}

func deleteProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := cfg.Editor.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeEditError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func addTrackHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddTrackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		p, err := cfg.Editor.AddTrack(r.Context(), chi.URLParam(r, "id"), req.Kind)
		if err != nil {
			writeEditError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, p)
	}
}

func addClipHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddClipRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.Duration <= 0 {
			WriteError(w, http.StatusBadRequest, "duration must be positive", "BAD_REQUEST")
			return
		}

		clip := timeline.NewClip(req.Kind, req.Source, req.Start, req.Duration)
		clip.Text = req.Text

		p, err := cfg.Editor.AddClip(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "trackID"), clip)
		if err != nil {
			writeEditError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, p)
	}
}

func groupClipsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GroupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if len(req.ClipIDs) < 2 {
			WriteError(w, http.StatusBadRequest, "at least two clip_ids are required", "BAD_REQUEST")
			return
		}

		p, err := cfg.Editor.GroupClips(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "trackID"), req.ClipIDs)
		if err != nil {
			writeEditError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, p)
	}
}

func ungroupClipHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UngroupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.ClipID == "" {
			WriteError(w, http.StatusBadRequest, "clip_id is required", "BAD_REQUEST")
			return
		}

		p, err := cfg.Editor.UngroupClip(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "trackID"), req.ClipID)
		if err != nil {
			writeEditError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, p)
	}
}

func splitClipHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SplitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		p, err := cfg.Editor.SplitClip(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "clipID"), req.Offset)
		if err != nil {
			writeEditError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, p)
	}
}

func trimClipHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TrimRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.Duration <= 0 {
			WriteError(w, http.StatusBadRequest, "duration must be positive", "BAD_REQUEST")
			return
		}

		p, err := cfg.Editor.TrimClip(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "clipID"), req.Start, req.Duration)
		if err != nil {
			writeEditError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, p)
	}
}

func removeClipHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := cfg.Editor.RemoveClip(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "clipID"))
		if err != nil {
			writeEditError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, p)
	}
}

func addTransitionHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddTransitionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.FromClipID == "" || req.ToClipID == "" {
			WriteError(w, http.StatusBadRequest, "from_clip_id and to_clip_id are required", "BAD_REQUEST")
			return
		}

		tr := timeline.NewTransition(req.Type, req.Duration, req.FromClipID, req.ToClipID)
		tr.Params = req.Params

		p, err := cfg.Editor.AddTransition(r.Context(), chi.URLParam(r, "id"), tr)
		if err != nil {
			writeEditError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, p)
	}
}

func importCaptionsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ImportCaptionsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		cues, err := subtitle.Parse(req.SRT)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		p, err := cfg.Editor.ImportCaptions(r.Context(), chi.URLParam(r, "id"), subtitle.ToClips(cues))
		if err != nil {
			writeEditError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, p)
	}
}

func planHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plan, instructions, err := cfg.Editor.AssemblePlan(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeEditError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, PlanResponse{Plan: plan, Instructions: instructions})
	}
}

func exportEDLHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		p, err := cfg.Editor.GetProject(r.Context(), id)
		if err != nil {
			writeEditError(w, err)
			return
		}
		plan, _, err := cfg.Editor.AssemblePlan(r.Context(), id)
		if err != nil {
			writeEditError(w, err)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(export.GenerateEDL(plan, p.Name)))
	}
}

func exportSRTHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plan, _, err := cfg.Editor.AssemblePlan(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeEditError(w, err)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(subtitle.Format(subtitle.FromPlan(plan))))
	}
}

func renderHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RenderRequest
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
				return
			}
		}

		plan, instructions, err := cfg.Editor.AssemblePlan(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeEditError(w, err)
			return
		}

		job := render.Job{Plan: plan, Instructions: instructions, OutputPath: req.OutputPath}
		if err := cfg.Renderer.Render(r.Context(), job); err != nil {
			WriteError(w, http.StatusBadGateway, err.Error(), "RENDER_FAILED")
			return
		}
		WriteJSON(w, http.StatusAccepted, RenderResponse{Status: "accepted"})
	}
}
