package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jonathan/resume-studio/internal/enhance"
)

// handleEnhance rewrites one field of résumé text with the AI service.
func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	var req enhance.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := enhance.ValidateText(req.Text); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.enhancer == nil {
		s.errorResponse(w, http.StatusInternalServerError, enhance.ErrNotConfigured.Error())
		return
	}

	enhanced, err := s.enhancer.Enhance(r.Context(), req)
	if err != nil {
		if errors.Is(err, enhance.ErrTextTooShort) {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("enhance failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to enhance text, please try again")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"enhanced": enhanced})
}
