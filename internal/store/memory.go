package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-memory RecordStore for tests and the standalone CLI.
type Memory struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]*User
	resumes map[uuid.UUID]*ResumeRecord

	// now is swappable in tests that care about ordering.
	now func() time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:   make(map[uuid.UUID]*User),
		resumes: make(map[uuid.UUID]*ResumeRecord),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (m *Memory) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	u := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.users[u.ID] = u
	return u.ID, nil
}

func (m *Memory) GetUser(_ context.Context, id uuid.UUID) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Memory) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := m.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (m *Memory) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = m.now()
	return nil
}

func (m *Memory) UpdateProfilePic(_ context.Context, id uuid.UUID, dataURI string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.ProfilePic = dataURI
	u.UpdatedAt = m.now()
	return nil
}

func (m *Memory) CreateResume(_ context.Context, rec *ResumeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	rec.ID = uuid.New()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	cp := *rec
	m.resumes[rec.ID] = &cp
	return nil
}

func (m *Memory) UpdateResume(_ context.Context, rec *ResumeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.resumes[rec.ID]
	if !ok || existing.UserID != rec.UserID {
		return ErrNotFound
	}
	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = m.now()
	cp := *rec
	m.resumes[rec.ID] = &cp
	return nil
}

func (m *Memory) GetResume(_ context.Context, userID, id uuid.UUID) (*ResumeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.resumes[id]
	if !ok || rec.UserID != userID {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *Memory) ListResumes(_ context.Context, userID uuid.UUID) ([]ResumeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var recs []ResumeRecord
	for _, rec := range m.resumes {
		if rec.UserID == userID {
			recs = append(recs, *rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].UpdatedAt.After(recs[j].UpdatedAt)
	})
	return recs, nil
}

func (m *Memory) DeleteResume(_ context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.resumes[id]
	if !ok || rec.UserID != userID {
		return ErrNotFound
	}
	delete(m.resumes, id)
	return nil
}

var _ RecordStore = (*Memory)(nil)
