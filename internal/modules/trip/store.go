// README: Trip store backed by PostgreSQL; itinerary and collaborators live in JSONB.
package trip

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

func (s *Store) Create(ctx context.Context, t *Trip) error {
	days, collaborators, err := marshalDocs(t)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO trips (
			id, title, destination, start_date, end_date, timezone,
			owner_user_id, collaborators, days, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		string(t.ID), t.Title, t.Destination, t.StartDate, t.EndDate, t.Timezone,
		string(t.OwnerUserID), collaborators, days, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Trip, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, title, destination, start_date, end_date, timezone,
		       owner_user_id, collaborators, days, created_at, updated_at
		FROM trips
		WHERE id = $1`, string(id),
	)
	return scanTrip(row)
}

// ListForUser returns trips where the user is the owner or a collaborator,
// most recently updated first.
func (s *Store) ListForUser(ctx context.Context, userID types.ID) ([]*Trip, error) {
	member, err := json.Marshal([]map[string]string{{"userId": string(userID)}})
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, title, destination, start_date, end_date, timezone,
		       owner_user_id, collaborators, days, created_at, updated_at
		FROM trips
		WHERE owner_user_id = $1 OR collaborators @> $2
		ORDER BY updated_at DESC`, string(userID), member,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

// Save persists the full trip document and bumps updated_at.
func (s *Store) Save(ctx context.Context, t *Trip) error {
	days, collaborators, err := marshalDocs(t)
	if err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()

	tag, err := s.db.Exec(ctx, `
		UPDATE trips
		SET title = $1, destination = $2, start_date = $3, end_date = $4,
		    timezone = $5, collaborators = $6, days = $7, updated_at = $8
		WHERE id = $9`,
		t.Title, t.Destination, t.StartDate, t.EndDate,
		t.Timezone, collaborators, days, t.UpdatedAt, string(t.ID),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM trips WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalDocs(t *Trip) (days, collaborators []byte, err error) {
	if t.Days == nil {
		t.Days = []Day{}
	}
	if t.Collaborators == nil {
		t.Collaborators = []Collaborator{}
	}
	days, err = json.Marshal(t.Days)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal days: %w", err)
	}
	collaborators, err = json.Marshal(t.Collaborators)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal collaborators: %w", err)
	}
	return days, collaborators, nil
}

func scanTrip(row pgx.Row) (*Trip, error) {
	var (
		t             Trip
		id, owner     string
		daysRaw       []byte
		collabRaw     []byte
	)
	err := row.Scan(
		&id, &t.Title, &t.Destination, &t.StartDate, &t.EndDate, &t.Timezone,
		&owner, &collabRaw, &daysRaw, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	t.ID = types.ID(id)
	t.OwnerUserID = types.ID(owner)
	if err := json.Unmarshal(daysRaw, &t.Days); err != nil {
		return nil, fmt.Errorf("unmarshal days: %w", err)
	}
	if err := json.Unmarshal(collabRaw, &t.Collaborators); err != nil {
		return nil, fmt.Errorf("unmarshal collaborators: %w", err)
	}
	return &t, nil
}
