package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"soccer-coach/internal/domain"
	"soccer-coach/internal/repository"
)

const createProfilesTable = `
CREATE TABLE IF NOT EXISTS profiles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL UNIQUE,
	name TEXT,
	age INTEGER,
	weight REAL,
	height REAL,
	strengths TEXT,
	weaknesses TEXT,
	expertise TEXT,
	time INTEGER,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id)
);
`

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createProfilesTable); err != nil {
		return fmt.Errorf("create profiles table: %w", err)
	}
	return nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, name, age, weight, height, strengths, weaknesses, expertise, time, created_at, updated_at
FROM profiles
WHERE user_id = ?`,
		userID,
	)

	var p domain.Profile
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Age,
		&p.Weight,
		&p.Height,
		&p.Strengths,
		&p.Weaknesses,
		&p.Expertise,
		&p.Time,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	now := time.Now().UTC()
	profile.UpdatedAt = now
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO profiles (user_id, name, age, weight, height, strengths, weaknesses, expertise, time, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
	name = excluded.name,
	age = excluded.age,
	weight = excluded.weight,
	height = excluded.height,
	strengths = excluded.strengths,
	weaknesses = excluded.weaknesses,
	expertise = excluded.expertise,
	time = excluded.time,
	updated_at = excluded.updated_at`,
		profile.UserID,
		profile.Name,
		profile.Age,
		profile.Weight,
		profile.Height,
		profile.Strengths,
		profile.Weaknesses,
		profile.Expertise,
		profile.Time,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil && profile.ID == 0 {
		profile.ID = id
	}
	return nil
}
