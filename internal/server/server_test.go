package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/enhance"
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/types"
)

type stubEnhancer struct {
	result string
	err    error
}

func (s *stubEnhancer) Enhance(_ context.Context, _ enhance.Request) (string, error) {
	return s.result, s.err
}

func newTestServer(t *testing.T, enhancer TextEnhancer) *Server {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "1")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := &config.ServerConfig{Port: 8080, DatabaseURL: "unused", CORSOrigin: "*"}
	s, err := New(cfg, store.NewMemory(), enhancer)
	require.NoError(t, err)
	return s
}

func doJSON(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func registerUser(t *testing.T, s *Server, email string) (token string) {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/auth/register", "", types.CreateUserRequest{
		Name:     "Jane Doe",
		Email:    email,
		Password: "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doJSON(t, s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t, nil)
	registerUser(t, s, "jane@example.com")

	rec := doJSON(t, s, http.MethodPost, "/auth/login", "", types.LoginRequest{
		Email:    "jane@example.com",
		Password: "hunter22",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	s := newTestServer(t, nil)
	registerUser(t, s, "jane@example.com")

	rec := doJSON(t, s, http.MethodPost, "/auth/register", "", types.CreateUserRequest{
		Name:     "Other Jane",
		Email:    "jane@example.com",
		Password: "different",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginWrongPasswordIsGenericUnauthorized(t *testing.T) {
	s := newTestServer(t, nil)
	registerUser(t, s, "jane@example.com")

	wrongPassword := doJSON(t, s, http.MethodPost, "/auth/login", "", types.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong",
	})
	unknownEmail := doJSON(t, s, http.MethodPost, "/auth/login", "", types.LoginRequest{
		Email:    "nobody@example.com",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/auth/register", "", types.CreateUserRequest{
		Name:     "Jane",
		Email:    "not-an-email",
		Password: "hunter22",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/auth/register", "", types.CreateUserRequest{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, nil)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/resumes"},
		{http.MethodPost, "/resumes"},
		{http.MethodPost, "/enhance"},
		{http.MethodPut, "/auth/password"},
	} {
		rec := doJSON(t, s, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}

	rec := doJSON(t, s, http.MethodGet, "/resumes", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestResumeCRUD(t *testing.T) {
	s := newTestServer(t, nil)
	token := registerUser(t, s, "jane@example.com")

	create := doJSON(t, s, http.MethodPost, "/resumes", token, map[string]any{
		"template": "modern",
		"data":     map[string]any{"name": "Jane Doe", "title": "Engineer"},
	})
	require.Equal(t, http.StatusCreated, create.Code, create.Body.String())

	var created struct {
		Resume store.ResumeRecord `json:"resume"`
	}
	require.NoError(t, json.Unmarshal(create.Body.Bytes(), &created))
	assert.Equal(t, "Jane Doe — Engineer", created.Resume.Title)

	list := doJSON(t, s, http.MethodGet, "/resumes", token, nil)
	assert.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), created.Resume.ID.String())

	update := doJSON(t, s, http.MethodPut, "/resumes/"+created.Resume.ID.String(), token, map[string]any{
		"title": "Big Co Draft",
	})
	require.Equal(t, http.StatusOK, update.Code, update.Body.String())
	assert.Contains(t, update.Body.String(), "Big Co Draft")

	get := doJSON(t, s, http.MethodGet, "/resumes/"+created.Resume.ID.String(), token, nil)
	assert.Equal(t, http.StatusOK, get.Code)
	assert.Contains(t, get.Body.String(), "Big Co Draft")
	// Fields absent from the update keep their values.
	assert.Contains(t, get.Body.String(), "modern")

	del := doJSON(t, s, http.MethodDelete, "/resumes/"+created.Resume.ID.String(), token, nil)
	assert.Equal(t, http.StatusOK, del.Code)

	get = doJSON(t, s, http.MethodGet, "/resumes/"+created.Resume.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, get.Code)
}

func TestResumeCreateRequiresTemplateAndData(t *testing.T) {
	s := newTestServer(t, nil)
	token := registerUser(t, s, "jane@example.com")

	rec := doJSON(t, s, http.MethodPost, "/resumes", token, map[string]any{"template": "modern"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/resumes", token, map[string]any{
		"data": map[string]any{"name": "Jane"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResumeCreateRejectsMalformedDocument(t *testing.T) {
	s := newTestServer(t, nil)
	token := registerUser(t, s, "jane@example.com")

	rec := doJSON(t, s, http.MethodPost, "/resumes", token, map[string]any{
		"template": "modern",
		"data":     map[string]any{"skills": "Go"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "skills")
}

func TestResumeUntitledFallback(t *testing.T) {
	s := newTestServer(t, nil)
	token := registerUser(t, s, "jane@example.com")

	rec := doJSON(t, s, http.MethodPost, "/resumes", token, map[string]any{
		"template": "classic",
		"data":     map[string]any{},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Untitled Resume")
}

func TestResumeIsolationBetweenUsers(t *testing.T) {
	s := newTestServer(t, nil)
	owner := registerUser(t, s, "owner@example.com")
	intruder := registerUser(t, s, "intruder@example.com")

	create := doJSON(t, s, http.MethodPost, "/resumes", owner, map[string]any{
		"template": "modern",
		"data":     map[string]any{"name": "Jane Doe"},
	})
	require.Equal(t, http.StatusCreated, create.Code)

	var created struct {
		Resume store.ResumeRecord `json:"resume"`
	}
	require.NoError(t, json.Unmarshal(create.Body.Bytes(), &created))
	id := created.Resume.ID.String()

	assert.Equal(t, http.StatusNotFound, doJSON(t, s, http.MethodGet, "/resumes/"+id, intruder, nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, s, http.MethodPut, "/resumes/"+id, intruder, map[string]any{"title": "mine now"}).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, s, http.MethodDelete, "/resumes/"+id, intruder, nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, s, http.MethodGet, "/resumes/"+id, owner, nil).Code)
}

func TestUpdatePasswordFlow(t *testing.T) {
	s := newTestServer(t, nil)
	token := registerUser(t, s, "jane@example.com")

	wrong := doJSON(t, s, http.MethodPut, "/auth/password", token, types.UpdatePasswordRequest{
		CurrentPassword: "nope",
		NewPassword:     "betterpass",
	})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)

	ok := doJSON(t, s, http.MethodPut, "/auth/password", token, types.UpdatePasswordRequest{
		CurrentPassword: "hunter22",
		NewPassword:     "betterpass",
	})
	assert.Equal(t, http.StatusOK, ok.Code)

	login := doJSON(t, s, http.MethodPost, "/auth/login", "", types.LoginRequest{
		Email:    "jane@example.com",
		Password: "betterpass",
	})
	assert.Equal(t, http.StatusOK, login.Code)
}

func TestEnhanceEndpoint(t *testing.T) {
	s := newTestServer(t, &stubEnhancer{result: "Polished summary."})
	token := registerUser(t, s, "jane@example.com")

	rec := doJSON(t, s, http.MethodPost, "/enhance", token, enhance.Request{
		Text: "i am a engineer who did code",
		Kind: enhance.KindSummary,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"enhanced":"Polished summary."}`, rec.Body.String())
}

func TestEnhanceRejectsShortText(t *testing.T) {
	s := newTestServer(t, &stubEnhancer{result: "unused"})
	token := registerUser(t, s, "jane@example.com")

	rec := doJSON(t, s, http.MethodPost, "/enhance", token, enhance.Request{Text: "short"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least 10 characters")
}

func TestEnhanceUnconfiguredService(t *testing.T) {
	s := newTestServer(t, nil)
	token := registerUser(t, s, "jane@example.com")

	rec := doJSON(t, s, http.MethodPost, "/enhance", token, enhance.Request{
		Text: "long enough text to enhance",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "not configured")
}

func TestEnhanceBackendFailure(t *testing.T) {
	s := newTestServer(t, &stubEnhancer{err: errors.New("model unavailable")})
	token := registerUser(t, s, "jane@example.com")

	rec := doJSON(t, s, http.MethodPost, "/enhance", token, enhance.Request{
		Text: "long enough text to enhance",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "try again")
}

func uploadPic(t *testing.T, s *Server, token, contentType string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{`form-data; name="file"; filename="photo.png"`}
	hdr["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/auth/profile-pic", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestUploadProfilePic(t *testing.T) {
	s := newTestServer(t, nil)
	token := registerUser(t, s, "jane@example.com")

	rec := uploadPic(t, s, token, "image/png", []byte("fakepngbytes"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "data:image/png;base64,")

	del := doJSON(t, s, http.MethodDelete, "/auth/profile-pic", token, nil)
	assert.Equal(t, http.StatusOK, del.Code)
	assert.Contains(t, del.Body.String(), "removed")
}

func TestUploadProfilePicRejectsNonImage(t *testing.T) {
	s := newTestServer(t, nil)
	token := registerUser(t, s, "jane@example.com")

	rec := uploadPic(t, s, token, "application/pdf", []byte("%PDF-1.4"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "must be an image")
}

func TestUploadProfilePicRejectsOversized(t *testing.T) {
	s := newTestServer(t, nil)
	token := registerUser(t, s, "jane@example.com")

	rec := uploadPic(t, s, token, "image/png", bytes.Repeat([]byte("x"), MaxProfilePicBytes+1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/resumes", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusConflict, HTTPStatus(&ErrEmailAlreadyExists{Email: "a@b.c"}))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(&ErrInvalidCredentials{}))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(&ErrPasswordMismatch{}))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&ErrValidation{Field: "email", Message: "bad"}))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("wrapped: %w", store.ErrNotFound)))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(enhance.ErrTextTooShort))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestJWTRoundTrip(t *testing.T) {
	s := newTestServer(t, nil)
	token := registerUser(t, s, "jane@example.com")

	claims, err := s.jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.NotEqual(t, "", claims.UserID.String())

	_, err = s.jwtService.ValidateToken("not.a.token")
	assert.Error(t, err)
	_, err = s.jwtService.ValidateToken("")
	assert.Error(t, err)
}
