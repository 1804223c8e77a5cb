// README: Trip service — CRUD, collaborators, and the generate/enrich/route operations.
package trip

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripmaster/internal/types"
)

// GenerateRequest is everything the generation orchestrator needs for one
// itinerary run.
type GenerateRequest struct {
	Provider    string
	Model       string
	Prompt      string
	DayCount    int
	StartDate   *time.Time
	Destination string
	APIKey      string
}

// Generator runs schema-validated itinerary generation with bounded retry.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest, maxRetries int) ([]Day, error)
}

// GenerationSettings is a user's stored provider preference with the
// credential already decrypted.
type GenerationSettings struct {
	Provider string
	Model    string
	APIKey   string
}

// SettingsResolver supplies a user's generation preferences.
type SettingsResolver interface {
	GenerationSettings(ctx context.Context, userID types.ID) (GenerationSettings, error)
}

// UserDirectory resolves accounts for collaborator invites. found is false
// when no account exists for the email.
type UserDirectory interface {
	LookupByEmail(ctx context.Context, email string) (id types.ID, canonicalEmail string, found bool, err error)
}

type Deps struct {
	Generator  Generator
	Settings   SettingsResolver
	Users      UserDirectory
	Places     PlaceFinder
	Directions DirectionsFinder
	// OfflineGeneration forces the mock provider regardless of user settings.
	OfflineGeneration bool
	MaxRetries        int
	Log               *zap.Logger
}

type Service struct {
	store *Store
	deps  Deps
}

func NewService(store *Store, deps Deps) *Service {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &Service{store: store, deps: deps}
}

type CreateCommand struct {
	OwnerUserID types.ID
	Title       string
	Destination string
	StartDate   *time.Time
	EndDate     *time.Time
	Timezone    string
	Days        []Day
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Trip, error) {
	if strings.TrimSpace(cmd.Title) == "" || strings.TrimSpace(cmd.Destination) == "" {
		return nil, ErrBadRequest
	}

	now := time.Now().UTC()
	t := &Trip{
		ID:            types.NewID(),
		Title:         cmd.Title,
		Destination:   cmd.Destination,
		StartDate:     cmd.StartDate,
		EndDate:       cmd.EndDate,
		Timezone:      cmd.Timezone,
		OwnerUserID:   cmd.OwnerUserID,
		Collaborators: []Collaborator{},
		Days:          NormalizeDays(cmd.Days),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, userID types.ID) ([]*Trip, error) {
	trips, err := s.store.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if trips == nil {
		trips = []*Trip{}
	}
	return trips, nil
}

func (s *Service) Get(ctx context.Context, tripID, userID types.ID) (*Trip, error) {
	t, err := s.store.Get(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if _, ok := t.RoleOf(userID); !ok {
		return nil, ErrForbidden
	}
	return t, nil
}

type UpdateCommand struct {
	TripID      types.ID
	UserID      types.ID
	Title       *string
	Destination *string
	StartDate   *time.Time
	EndDate     *time.Time
	Timezone    *string
	// Days, when non-nil, replaces the full day sequence.
	Days []Day
}

func (s *Service) Update(ctx context.Context, cmd UpdateCommand) (*Trip, error) {
	t, err := s.editableTrip(ctx, cmd.TripID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if cmd.Title != nil {
		t.Title = *cmd.Title
	}
	if cmd.Destination != nil {
		t.Destination = *cmd.Destination
	}
	if cmd.StartDate != nil {
		t.StartDate = cmd.StartDate
	}
	if cmd.EndDate != nil {
		t.EndDate = cmd.EndDate
	}
	if cmd.Timezone != nil {
		t.Timezone = *cmd.Timezone
	}
	if cmd.Days != nil {
		t.Days = NormalizeDays(cmd.Days)
	}

	if err := s.store.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, tripID, userID types.ID) error {
	t, err := s.store.Get(ctx, tripID)
	if err != nil {
		return err
	}
	if t.OwnerUserID != userID {
		return ErrForbidden
	}
	return s.store.Delete(ctx, tripID)
}

func (s *Service) AddCollaborator(ctx context.Context, tripID, userID types.ID, email string, role Role) (*Trip, error) {
	if role != RoleEditor && role != RoleViewer {
		return nil, ErrBadRequest
	}

	t, err := s.store.Get(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if t.OwnerUserID != userID {
		return nil, ErrForbidden
	}

	collabID, canonicalEmail, found, err := s.deps.Users.LookupByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrUserNotFound
	}
	if collabID == t.OwnerUserID {
		return nil, ErrOwnerCollaborator
	}
	for _, c := range t.Collaborators {
		if c.UserID == collabID {
			return nil, ErrDuplicateCollaborator
		}
	}

	now := time.Now().UTC()
	t.Collaborators = append(t.Collaborators, Collaborator{
		UserID:     collabID,
		Email:      canonicalEmail,
		Role:       role,
		InvitedAt:  now,
		AcceptedAt: &now,
	})

	if err := s.store.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) UpdateCollaborator(ctx context.Context, tripID, userID, collabID types.ID, role Role) (*Trip, error) {
	if role != RoleEditor && role != RoleViewer {
		return nil, ErrBadRequest
	}

	t, err := s.store.Get(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if t.OwnerUserID != userID {
		return nil, ErrForbidden
	}

	for i := range t.Collaborators {
		if t.Collaborators[i].UserID == collabID {
			t.Collaborators[i].Role = role
			if err := s.store.Save(ctx, t); err != nil {
				return nil, err
			}
			return t, nil
		}
	}
	return nil, ErrCollaboratorNotFound
}

func (s *Service) RemoveCollaborator(ctx context.Context, tripID, userID, collabID types.ID) error {
	t, err := s.store.Get(ctx, tripID)
	if err != nil {
		return err
	}
	if t.OwnerUserID != userID {
		return ErrForbidden
	}

	kept := t.Collaborators[:0]
	for _, c := range t.Collaborators {
		if c.UserID != collabID {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(t.Collaborators) {
		return ErrCollaboratorNotFound
	}
	t.Collaborators = kept

	return s.store.Save(ctx, t)
}

// GenerateItinerary resolves the caller's provider settings, derives the day
// count from the trip dates, and replaces the full day sequence with the
// generated one.
func (s *Service) GenerateItinerary(ctx context.Context, tripID, userID types.ID, prompt string) (*Trip, error) {
	t, err := s.editableTrip(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}

	settings, err := s.deps.Settings.GenerationSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.deps.OfflineGeneration {
		settings = GenerationSettings{Provider: "mock"}
	}
	if settings.Provider == "" {
		settings.Provider = "mock"
	}

	req := GenerateRequest{
		Provider:    settings.Provider,
		Model:       settings.Model,
		Prompt:      prompt,
		DayCount:    s.dayCount(t),
		StartDate:   t.StartDate,
		Destination: t.Destination,
		APIKey:      settings.APIKey,
	}

	days, err := s.deps.Generator.Generate(ctx, req, s.deps.MaxRetries)
	if err != nil {
		s.deps.Log.Warn("itinerary generation failed",
			zap.String("trip_id", string(tripID)),
			zap.String("provider", settings.Provider),
			zap.Error(err))
		return nil, err
	}

	t.Days = NormalizeDays(days)
	if err := s.store.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// EnrichPlaces fills missing item locations on the selected days and saves the
// trip only when something changed. A lookup failure leaves the stored trip
// untouched.
func (s *Service) EnrichPlaces(ctx context.Context, tripID, userID types.ID, dayIndex *int) (*Trip, EnrichResult, error) {
	if s.deps.Places == nil {
		return nil, EnrichResult{}, fmt.Errorf("%w: place lookup is not configured", ErrBadRequest)
	}

	t, err := s.editableTrip(ctx, tripID, userID)
	if err != nil {
		return nil, EnrichResult{}, err
	}

	res, err := EnrichPlaces(ctx, t, s.deps.Places, dayIndex)
	if err != nil {
		return nil, res, err
	}
	if res.Updated {
		if err := s.store.Save(ctx, t); err != nil {
			return nil, res, err
		}
	}
	return t, res, nil
}

// ComputeRoutes attaches aggregate route metrics to the selected days and
// saves the trip only when something changed.
func (s *Service) ComputeRoutes(ctx context.Context, tripID, userID types.ID, dayIndex *int, mode TravelMode) (*Trip, RouteResult, error) {
	if mode == "" {
		mode = ModeDriving
	}
	if !mode.Valid() {
		return nil, RouteResult{}, fmt.Errorf("%w: unsupported travel mode %q", ErrBadRequest, mode)
	}
	if s.deps.Directions == nil {
		return nil, RouteResult{}, fmt.Errorf("%w: route lookup is not configured", ErrBadRequest)
	}

	t, err := s.editableTrip(ctx, tripID, userID)
	if err != nil {
		return nil, RouteResult{}, err
	}

	res, err := ComputeRoutes(ctx, t, s.deps.Directions, RouteOptions{DayIndex: dayIndex, Mode: mode})
	if err != nil {
		return nil, res, err
	}
	if res.Updated {
		if err := s.store.Save(ctx, t); err != nil {
			return nil, res, err
		}
	}
	return t, res, nil
}

func (s *Service) editableTrip(ctx context.Context, tripID, userID types.ID) (*Trip, error) {
	t, err := s.store.Get(ctx, tripID)
	if err != nil {
		return nil, err
	}
	role, ok := t.RoleOf(userID)
	if !ok || !role.CanEdit() {
		return nil, ErrForbidden
	}
	return t, nil
}

// dayCount derives the generation length: inclusive span of the trip dates
// when both are set, otherwise the larger of the current day count and 3.
func (s *Service) dayCount(t *Trip) int {
	if t.StartDate != nil && t.EndDate != nil {
		span := t.EndDate.Sub(*t.StartDate)
		count := int(math.Ceil(span.Hours()/24)) + 1
		if count < 1 {
			count = 1
		}
		return count
	}
	if len(t.Days) > 3 {
		return len(t.Days)
	}
	return 3
}
