package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres is the PostgreSQL-backed RecordStore.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// CreateUser inserts a new account and returns its ID.
func (p *Postgres) CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := p.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		name, email, passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by ID. Missing users return (nil, nil).
func (p *Postgres) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := p.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, COALESCE(profile_pic, ''), created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.ProfilePic, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// GetUserByEmail retrieves a user by email. Missing users return (nil, nil).
func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := p.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, COALESCE(profile_pic, ''), created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.ProfilePic, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &u, nil
}

// CheckEmailExists reports whether an account already uses the email.
func (p *Postgres) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := p.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// UpdatePassword replaces a user's password hash.
func (p *Postgres) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result, err := p.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateProfilePic replaces a user's profile picture data URI. An empty URI
// clears it.
func (p *Postgres) UpdateProfilePic(ctx context.Context, id uuid.UUID, dataURI string) error {
	result, err := p.pool.Exec(ctx,
		`UPDATE users SET profile_pic = NULLIF($1, ''), updated_at = NOW() WHERE id = $2`,
		dataURI, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile picture: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateResume inserts a new résumé record, filling in ID and timestamps.
func (p *Postgres) CreateResume(ctx context.Context, rec *ResumeRecord) error {
	err := p.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, template, title, data, thumbnail)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		 RETURNING id, created_at, updated_at`,
		rec.UserID, rec.Template, rec.Title, []byte(rec.Data), rec.Thumbnail,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

// UpdateResume overwrites an existing record owned by rec.UserID.
func (p *Postgres) UpdateResume(ctx context.Context, rec *ResumeRecord) error {
	err := p.pool.QueryRow(ctx,
		`UPDATE resumes
		 SET template = $1, title = $2, data = $3, thumbnail = NULLIF($4, ''), updated_at = NOW()
		 WHERE id = $5 AND user_id = $6
		 RETURNING updated_at`,
		rec.Template, rec.Title, []byte(rec.Data), rec.Thumbnail, rec.ID, rec.UserID,
	).Scan(&rec.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update resume: %w", err)
	}
	return nil
}

// GetResume retrieves one record scoped to the user.
func (p *Postgres) GetResume(ctx context.Context, userID, id uuid.UUID) (*ResumeRecord, error) {
	var rec ResumeRecord
	err := p.pool.QueryRow(ctx,
		`SELECT id, user_id, template, title, data, COALESCE(thumbnail, ''), created_at, updated_at
		 FROM resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&rec.ID, &rec.UserID, &rec.Template, &rec.Title, &rec.Data, &rec.Thumbnail, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &rec, nil
}

// ListResumes retrieves all of a user's records, most recently updated first.
func (p *Postgres) ListResumes(ctx context.Context, userID uuid.UUID) ([]ResumeRecord, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, user_id, template, title, data, COALESCE(thumbnail, ''), created_at, updated_at
		 FROM resumes WHERE user_id = $1 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var recs []ResumeRecord
	for rows.Next() {
		var rec ResumeRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Template, &rec.Title, &rec.Data, &rec.Thumbnail, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// DeleteResume removes one record scoped to the user.
func (p *Postgres) DeleteResume(ctx context.Context, userID, id uuid.UUID) error {
	result, err := p.pool.Exec(ctx,
		`DELETE FROM resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ RecordStore = (*Postgres)(nil)
