package server

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/resume-studio/internal/server/middleware"
)

// MaxProfilePicBytes caps uploaded profile pictures at 2MB.
const MaxProfilePicBytes = 2 * 1024 * 1024

// handleUploadProfilePic accepts a multipart image upload and stores it as
// a data URI on the account.
func (s *Server) handleUploadProfilePic(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxProfilePicBytes+4096)
	if err := r.ParseMultipartForm(MaxProfilePicBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "image must be less than 2MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		s.errorResponse(w, http.StatusBadRequest, "file must be an image")
		return
	}
	if header.Size > MaxProfilePicBytes {
		s.errorResponse(w, http.StatusBadRequest, "image must be less than 2MB")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, MaxProfilePicBytes+1))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to read file")
		return
	}
	if len(data) > MaxProfilePicBytes {
		s.errorResponse(w, http.StatusBadRequest, "image must be less than 2MB")
		return
	}

	dataURI := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
	user, err := s.userService.SetProfilePic(r.Context(), userID, dataURI)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"message": "Profile picture updated",
		"user":    user,
	})
}

// handleDeleteProfilePic clears the account's profile picture.
func (s *Server) handleDeleteProfilePic(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if _, err := s.userService.SetProfilePic(r.Context(), userID, ""); err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Profile picture removed"})
}
