// README: User account and generation settings.
package user

import (
	"errors"
	"time"

	"tripmaster/internal/types"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBadRequest         = errors.New("bad request")
)

// Settings holds a user's generation preferences. API keys are stored
// AES-GCM encrypted, keyed by provider; plaintext never reaches the database.
type Settings struct {
	Provider         string            `json:"llmProvider"`
	Model            string            `json:"llmModel,omitempty"`
	EncryptedAPIKeys map[string]string `json:"encryptedApiKeys,omitempty"`
}

type User struct {
	ID           types.ID  `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Settings     Settings  `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
