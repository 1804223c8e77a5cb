// README: User service — registration, login, and generation settings.
package user

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tripmaster/internal/modules/trip"
	"tripmaster/internal/secrets"
	"tripmaster/internal/types"
)

const defaultProvider = "mock"

type Service struct {
	store *Store
	box   *secrets.Box
	log   *zap.Logger
}

func NewService(store *Store, box *secrets.Box, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, box: box, log: log}
}

func (s *Service) Register(ctx context.Context, email, password, name string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || name == "" || len(password) < 8 {
		return nil, ErrBadRequest
	}

	if _, err := s.store.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if err != ErrNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &User{
		ID:           types.NewID(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Settings:     Settings{Provider: defaultProvider},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.store.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err == ErrNotFound {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id types.ID) (*User, error) {
	return s.store.GetByID(ctx, id)
}

// UpdateSettings changes the provider/model preference and, when apiKey is
// non-nil, stores the key encrypted under the selected provider.
func (s *Service) UpdateSettings(ctx context.Context, id types.ID, provider, model *string, apiKey *string) (Settings, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return Settings{}, err
	}

	settings := u.Settings
	if settings.Provider == "" {
		settings.Provider = defaultProvider
	}
	if provider != nil && *provider != "" {
		settings.Provider = *provider
	}
	if model != nil {
		settings.Model = *model
	}

	if apiKey != nil && *apiKey != "" {
		encrypted, err := s.box.Encrypt(*apiKey)
		if err != nil {
			return Settings{}, err
		}
		if settings.EncryptedAPIKeys == nil {
			settings.EncryptedAPIKeys = map[string]string{}
		}
		settings.EncryptedAPIKeys[settings.Provider] = encrypted
	}

	if err := s.store.SaveSettings(ctx, id, settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (s *Service) Settings(ctx context.Context, id types.ID) (Settings, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return Settings{}, err
	}
	if u.Settings.Provider == "" {
		u.Settings.Provider = defaultProvider
	}
	return u.Settings, nil
}

// GenerationSettings implements trip.SettingsResolver: it returns the user's
// provider preference with the stored credential decrypted. A key that fails
// to decrypt is treated as absent so the credential gate reports it cleanly.
func (s *Service) GenerationSettings(ctx context.Context, userID types.ID) (trip.GenerationSettings, error) {
	u, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return trip.GenerationSettings{}, err
	}

	provider := u.Settings.Provider
	if provider == "" {
		provider = defaultProvider
	}

	out := trip.GenerationSettings{Provider: provider, Model: u.Settings.Model}
	if encrypted, ok := u.Settings.EncryptedAPIKeys[provider]; ok && encrypted != "" {
		key, err := s.box.Decrypt(encrypted)
		if err != nil {
			s.log.Warn("failed to decrypt stored api key",
				zap.String("provider", provider),
				zap.Error(err))
		} else {
			out.APIKey = key
		}
	}
	return out, nil
}

// LookupByEmail implements trip.UserDirectory for collaborator invites.
func (s *Service) LookupByEmail(ctx context.Context, email string) (types.ID, string, bool, error) {
	u, err := s.store.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err == ErrNotFound {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, err
	}
	return u.ID, u.Email, true, nil
}
