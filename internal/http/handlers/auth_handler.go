// README: Auth handlers — register, login, refresh rotation, logout, me.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripmaster/internal/auth"
	"tripmaster/internal/http/middleware"
	"tripmaster/internal/modules/user"
	"tripmaster/internal/types"
)

const refreshCookie = "refreshToken"

type AuthHandler struct {
	users        *user.Service
	tokens       *auth.Tokens
	sessions     *auth.SessionStore
	cookieSecure bool
	log          *zap.Logger
}

func NewAuthHandler(users *user.Service, tokens *auth.Tokens, sessions *auth.SessionStore, cookieSecure bool, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{
		users:        users,
		tokens:       tokens,
		sessions:     sessions,
		cookieSecure: cookieSecure,
		log:          log,
	}
}

type userView struct {
	ID    types.ID `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
}

func viewOf(u *user.User) userView {
	return userView{ID: u.ID, Email: u.Email, Name: u.Name}
}

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	u, err := h.users.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeUserError(c, err)
		return
	}

	if err := h.issueSession(c, u); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"user": viewOf(u)})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	u, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeUserError(c, err)
		return
	}

	if err := h.issueSession(c, u); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"user": viewOf(u)})
}

// Refresh rotates the token pair: the presented refresh token must still be
// allow-listed, and is revoked before the replacement is issued.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, err := c.Cookie(refreshCookie)
	if err != nil || token == "" {
		writeError(c, http.StatusUnauthorized, "missing refresh token")
		return
	}

	claims, err := h.tokens.VerifyRefresh(token)
	if err != nil {
		writeError(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	ctx := c.Request.Context()
	ok, err := h.sessions.Validate(ctx, types.ID(claims.UserID), token)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if !ok {
		writeError(c, http.StatusUnauthorized, "session revoked")
		return
	}

	u, err := h.users.GetByID(ctx, types.ID(claims.UserID))
	if err != nil {
		writeUserError(c, err)
		return
	}

	if err := h.sessions.Revoke(ctx, token); err != nil {
		h.log.Warn("failed to revoke rotated refresh token", zap.Error(err))
	}
	if err := h.issueSession(c, u); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"user": viewOf(u)})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(refreshCookie); err == nil && token != "" {
		if err := h.sessions.Revoke(c.Request.Context(), token); err != nil {
			h.log.Warn("failed to revoke refresh token on logout", zap.Error(err))
		}
	}
	h.clearCookies(c)
	writeJSON(c, http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.users.GetByID(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeUserError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"user": viewOf(u)})
}

// issueSession signs a fresh token pair, allow-lists the refresh token, and
// sets both cookies.
func (h *AuthHandler) issueSession(c *gin.Context, u *user.User) error {
	access, err := h.tokens.SignAccess(u.ID, u.Email)
	if err != nil {
		return err
	}
	refresh, err := h.tokens.SignRefresh(u.ID, u.Email)
	if err != nil {
		return err
	}
	if err := h.sessions.Save(c.Request.Context(), u.ID, refresh); err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessCookie, access, int(auth.AccessTokenTTL.Seconds()), "/", "", h.cookieSecure, true)
	c.SetCookie(refreshCookie, refresh, int(auth.RefreshTokenTTL.Seconds()), "/", "", h.cookieSecure, true)
	return nil
}

func (h *AuthHandler) clearCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessCookie, "", -1, "/", "", h.cookieSecure, true)
	c.SetCookie(refreshCookie, "", -1, "/", "", h.cookieSecure, true)
}
