// README: Settings handlers. Stored API keys are write-only; responses list
// only which providers have a key configured.
package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"tripmaster/internal/http/middleware"
	"tripmaster/internal/modules/user"
)

type SettingsHandler struct {
	users *user.Service
}

func NewSettingsHandler(users *user.Service) *SettingsHandler {
	return &SettingsHandler{users: users}
}

type settingsView struct {
	Provider            string   `json:"llmProvider"`
	Model               string   `json:"llmModel,omitempty"`
	ConfiguredProviders []string `json:"configuredProviders"`
}

func settingsViewOf(s user.Settings) settingsView {
	configured := make([]string, 0, len(s.EncryptedAPIKeys))
	for provider, key := range s.EncryptedAPIKeys {
		if key != "" {
			configured = append(configured, provider)
		}
	}
	sort.Strings(configured)
	return settingsView{Provider: s.Provider, Model: s.Model, ConfiguredProviders: configured}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.users.Settings(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeUserError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, settingsViewOf(s))
}

type updateSettingsReq struct {
	Provider *string `json:"llmProvider"`
	Model    *string `json:"llmModel"`
	APIKey   *string `json:"apiKey"`
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req updateSettingsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	s, err := h.users.UpdateSettings(c.Request.Context(), middleware.CallerUID(c), req.Provider, req.Model, req.APIKey)
	if err != nil {
		writeUserError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, settingsViewOf(s))
}
