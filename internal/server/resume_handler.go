package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-studio/internal/resume"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/server/middleware"
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/types"
)

// handleListResumes returns the authenticated user's saved résumés, most
// recently updated first.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	recs, err := s.store.ListResumes(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list resumes")
		return
	}
	if recs == nil {
		recs = []store.ResumeRecord{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"resumes": recs})
}

// handleCreateResume saves a new résumé.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req types.SaveResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Template == "" || len(req.Data) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "template and data are required")
		return
	}
	if err := schemas.ValidateDocument(req.Data); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	title := req.Title
	if title == "" {
		title = deriveTitle(req.Data, req.Template)
	}

	rec := &store.ResumeRecord{
		UserID:    userID,
		Template:  req.Template,
		Title:     title,
		Data:      req.Data,
		Thumbnail: req.Thumbnail,
	}
	if err := s.store.CreateResume(r.Context(), rec); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to save resume")
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]any{"resume": rec})
}

// handleGetResume returns one saved résumé.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid resume id")
		return
	}

	rec, err := s.store.GetResume(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "failed to get resume")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"resume": rec})
}

// handleUpdateResume partially updates a saved résumé. Absent fields keep
// their stored values.
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid resume id")
		return
	}

	rec, err := s.store.GetResume(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "failed to get resume")
		return
	}

	var req types.UpdateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Data != nil {
		if err := schemas.ValidateDocument(*req.Data); err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		rec.Data = *req.Data
	}
	if req.Template != nil {
		rec.Template = *req.Template
	}
	if req.Title != nil {
		rec.Title = *req.Title
	}
	if req.Thumbnail != nil {
		rec.Thumbnail = *req.Thumbnail
	}

	if err := s.store.UpdateResume(r.Context(), rec); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "failed to update resume")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"resume": rec})
}

// handleDeleteResume removes a saved résumé.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid resume id")
		return
	}

	if err := s.store.DeleteResume(r.Context(), userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete resume")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true})
}

// deriveTitle computes a display title from the document payload when the
// client sends none.
func deriveTitle(data json.RawMessage, template string) string {
	doc, err := resume.Decode(data)
	if err != nil {
		return "Untitled Resume"
	}
	return doc.DeriveTitle("", template)
}
