package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lessonlab/vizboard/pkg/errors"
	"github.com/lessonlab/vizboard/pkg/render"
	"github.com/lessonlab/vizboard/pkg/scene"
)

// processRequest is the body of POST /api/v1/visualizations.
type processRequest struct {
	Scenes        []map[string]any `json:"scenes"`
	Fallback      bool             `json:"fallback"`
	FallbackTitle string           `json:"fallback_title"`
	Refresh       bool             `json:"refresh"`
	Persist       bool             `json:"persist"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	opts := s.opts
	opts.Fallback = req.Fallback || opts.Fallback
	if req.FallbackTitle != "" {
		opts.FallbackTitle = req.FallbackTitle
	}
	opts.Refresh = req.Refresh

	viz, cacheHit, err := s.runner.ProcessWithCacheInfo(r.Context(), req.Scenes, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if cacheHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}

	if req.Persist {
		id, err := s.store.Save(r.Context(), viz)
		if err != nil {
			s.writeError(w, err)
			return
		}
		viz.ID = id
	}

	writeJSON(w, http.StatusOK, viz)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	viz, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viz)
}

func (s *Server) handleCommands(w http.ResponseWriter, r *http.Request) {
	viz, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viz.Commands())
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	viz, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	sceneID := chi.URLParam(r, "sceneID")
	var target *scene.Scene
	for i := range viz.Scenes {
		if viz.Scenes[i].ID == sceneID {
			target = &viz.Scenes[i]
			break
		}
	}
	if target == nil {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "scene %q not found", sceneID))
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write(render.RenderSceneSVG(viz.Canvas, *target, render.WithZoneGrid()))
}

// writeError maps error codes to HTTP statuses. Validation problems are the
// caller's fault; everything else is ours.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidScene,
		errors.ErrCodeInvalidShape, errors.ErrCodeInvalidZone:
		status = http.StatusBadRequest
	case errors.ErrCodeNoValidScenes:
		status = http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeVisualizationNotFound:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Code: string(code), Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
