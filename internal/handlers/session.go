package handlers

import (
	"fmt"
	"net/http"

	"github.com/fullstack/taskboard/internal/config"
	"github.com/fullstack/taskboard/internal/constants"
	"github.com/fullstack/taskboard/internal/dto"
	apierrors "github.com/fullstack/taskboard/internal/errors"
	"github.com/fullstack/taskboard/internal/middleware"
	"github.com/fullstack/taskboard/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

// NewSessionStore builds the session backend selected by cfg.SessionStore.
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case "redis":
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(
			10,                        // Redis pool size
			"tcp",                     // network type
			redisAddr,                 // Redis address from config
			"",                        // password (empty = no password)
			[]byte(cfg.SessionSecret), // authentication key
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = rs
	default:
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(), // HTTPS only in release mode
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// SessionHandler exposes the user remembered by the last successful credential check.
type SessionHandler struct {
	users *services.UserService
}

func NewSessionHandler(users *services.UserService) *SessionHandler {
	return &SessionHandler{users: users}
}

// GetSession returns the remembered user.
func (h *SessionHandler) GetSession(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "An error occurred while retrieving the session")
		return
	}
	if user == nil || !user.IsActive {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteSession forgets the remembered user.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if err := middleware.ForgetUser(c); err != nil {
		middleware.Logger(c).WithError(err).Error("Failed to clear session")
		apierrors.InternalError(c, "Failed to clear session")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Session cleared"})
}
