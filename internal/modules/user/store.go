// README: User store backed by PostgreSQL; settings live in JSONB.
package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tripmaster/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, u *User) error {
	settings, err := json.Marshal(u.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO users (id, email, name, password_hash, settings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(u.ID), u.Email, u.Name, u.PasswordHash, settings, u.CreatedAt, u.UpdatedAt,
	)
	return err
}

func (s *Store) GetByID(ctx context.Context, id types.ID) (*User, error) {
	return s.get(ctx, `WHERE id = $1`, string(id))
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.get(ctx, `WHERE email = $1`, email)
}

func (s *Store) get(ctx context.Context, where string, arg any) (*User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, email, name, password_hash, settings, created_at, updated_at
		FROM users `+where, arg,
	)

	var (
		u           User
		id          string
		settingsRaw []byte
	)
	err := row.Scan(&id, &u.Email, &u.Name, &u.PasswordHash, &settingsRaw, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	u.ID = types.ID(id)
	if len(settingsRaw) > 0 {
		if err := json.Unmarshal(settingsRaw, &u.Settings); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	}
	return &u, nil
}

func (s *Store) SaveSettings(ctx context.Context, id types.ID, settings Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE users SET settings = $1, updated_at = $2 WHERE id = $3`,
		raw, time.Now().UTC(), string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
