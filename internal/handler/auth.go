package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"crmsales/internal/config"
	"crmsales/internal/model"
	"crmsales/internal/repository"
	"crmsales/internal/utils"
)

// UserStore is the user lookup the login endpoint needs.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (model.User, error)
}

// TokenStore persists issued tokens.
type TokenStore interface {
	Store(ctx context.Context, userID uint64, token string, exp time.Time) error
}

// AuthHandler bundles dependencies for the login endpoint.
type AuthHandler struct {
	Cfg    config.Config
	Users  UserStore
	Tokens TokenStore
}

func NewAuthHandler(cfg config.Config, u UserStore, t TokenStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies a username/password pair, mints an expiring bearer
// token bound to the username and persists it. Every successful login
// inserts a fresh token row; earlier tokens stay valid until they
// expire, so one account can hold several live sessions.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil || req.Username == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, reasonUnexpected)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fail(c, http.StatusUnauthorized, "User not found.")
		}
		return fail(c, http.StatusInternalServerError, reasonStorage)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return fail(c, http.StatusUnauthorized, "Wrong password.")
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.Username, h.Cfg.AccessTTLMin)
	if err != nil {
		return fail(c, http.StatusInternalServerError, reasonStorage)
	}
	if err := h.Tokens.Store(ctx, u.ID, access.Token, access.Exp); err != nil {
		return fail(c, http.StatusInternalServerError, reasonStorage)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"access_token": access.Token,
	})
}
