package handler

import "github.com/labstack/echo/v4"

// Every error leaves the service in the same envelope so clients can
// always read success/unsuccess_reason regardless of which layer failed.
func fail(c echo.Context, status int, reason string) error {
	return c.JSON(status, echo.Map{"success": false, "unsuccess_reason": reason})
}

// reasonUnexpected is the flattened message for any malformed request
// body. Field-level validation detail is deliberately not leaked.
const reasonUnexpected = "Unexpected request!"

// reasonStorage is the generic message for unexpected persistence
// failures; driver detail never reaches the client.
const reasonStorage = "Something went wrong."

// dateLayout is the wire format for purchase dates, report ranges and
// customer birthdays.
const dateLayout = "2006-01-02"
