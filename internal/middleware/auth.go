package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"crmsales/internal/model"
	"crmsales/internal/repository"
	"crmsales/internal/utils"
)

// TokenLookup is the slice of the token repository the session gate
// needs. Declared here so the middleware can be tested without a database.
type TokenLookup interface {
	Lookup(ctx context.Context, token string) (model.Token, error)
}

// SessionAuth returns an Echo middleware that gates every protected
// route. A request passes only when it carries a Bearer token that
// (1) verifies against the signing secret, (2) contains a subject claim,
// (3) matches a row in the tokens table and (4) has not expired. Each
// rejection reports its own reason so clients can tell a stale session
// from a forged or never-issued token. On success the subject username
// is stored in the context under "username".
func SessionAuth(secret string, tokens TokenLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return reject(c, "Not authenticated.")
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			sub, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				// Covers bad signatures, garbage tokens and missing
				// subject claims alike.
				return reject(c, "Invalid token.")
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			row, err := tokens.Lookup(ctx, raw)
			if err != nil {
				if errors.Is(err, repository.ErrTokenNotFound) {
					return reject(c, "Token not found.")
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"success": false, "unsuccess_reason": "Something went wrong.",
				})
			}
			// The stored row is authoritative for expiry; the boundary
			// now == expires_at counts as expired.
			if !time.Now().UTC().Before(row.ExpiresAt) {
				return reject(c, "Token has expired.")
			}

			c.Set("username", sub)
			return next(c)
		}
	}
}

func reject(c echo.Context, reason string) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"success": false, "unsuccess_reason": reason,
	})
}
