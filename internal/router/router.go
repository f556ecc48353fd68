// Package router wires HTTP routes to their handlers and owns the
// service-wide error envelope for requests that never reach a handler.
package router

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"crmsales/internal/handler"
	"crmsales/internal/middleware"
)

// RegisterRoutes registers all endpoints on the provided Echo instance.
// Only login and the health check are reachable without a bearer token;
// every other route runs through the session gate. loginLimiter is the
// rate-limit middleware applied to login alone (it may be a pass-through
// when Redis is unavailable).
func RegisterRoutes(e *echo.Echo, a *handler.AuthHandler, ch *handler.CustomerHandler,
	ph *handler.PurchaseHandler, jwtSecret string, tokens middleware.TokenLookup,
	loginLimiter echo.MiddlewareFunc) {

	e.HTTPErrorHandler = httpErrorHandler

	e.GET("/healthz", handler.Health)
	e.POST("/user_login/", a.Login, loginLimiter)

	g := e.Group("")
	g.Use(middleware.SessionAuth(jwtSecret, tokens))
	g.POST("/create_customer/", ch.Create)
	g.PUT("/update_customer/:id", ch.Update)
	g.POST("/create_purchase/", ph.Create)
	g.POST("/purchase_summary/", ph.Summary)
}

// httpErrorHandler shapes router-level failures (unknown paths, wrong
// verbs on known paths, oversized bodies) into the shared envelope.
// Handler-level errors never reach here; handlers write their own
// responses.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	reason := "Something went wrong."
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch code {
		case http.StatusMethodNotAllowed:
			reason = "Method not allowed."
		case http.StatusNotFound:
			reason = "Not found."
		case http.StatusBadRequest:
			reason = "Unexpected request!"
		case http.StatusUnauthorized:
			reason = "Not authenticated."
		}
	}
	_ = c.JSON(code, echo.Map{"success": false, "unsuccess_reason": reason})
}
