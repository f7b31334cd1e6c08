// Package store provides persistence for user accounts and saved résumés.
// A PostgreSQL implementation backs the server; an in-memory implementation
// backs tests and the standalone CLI.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a record does not exist or belongs to a
// different user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("record not found")

// User is a registered account.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	ProfilePic   string    `json:"profilePic,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ResumeRecord is one saved résumé: the full document as JSON plus the
// metadata the dashboard lists it by.
type ResumeRecord struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Template  string          `json:"template"`
	Title     string          `json:"title"`
	Data      json.RawMessage `json:"data"`
	Thumbnail string          `json:"thumbnail,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RecordStore is the persistence gateway. Every résumé operation is scoped
// to a user; records owned by someone else behave exactly like missing ones.
type RecordStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateProfilePic(ctx context.Context, id uuid.UUID, dataURI string) error

	CreateResume(ctx context.Context, rec *ResumeRecord) error
	UpdateResume(ctx context.Context, rec *ResumeRecord) error
	GetResume(ctx context.Context, userID, id uuid.UUID) (*ResumeRecord, error)
	ListResumes(ctx context.Context, userID uuid.UUID) ([]ResumeRecord, error)
	DeleteResume(ctx context.Context, userID, id uuid.UUID) error
}
