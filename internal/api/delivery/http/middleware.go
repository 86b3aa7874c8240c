package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const userIDContextKey = "user_id"

// UserIDHeader carries the acting user's ID. It is set by the authenticating
// proxy in front of this service.
const UserIDHeader = "X-User-ID"

// UserScoped resolves the acting user from the request header and rejects
// requests without one.
func UserScoped(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.Request().Header.Get(UserIDHeader)
		if userID == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Missing user identity"})
		}
		c.Set(userIDContextKey, userID)
		return next(c)
	}
}

func userID(c echo.Context) string {
	id, _ := c.Get(userIDContextKey).(string)
	return id
}
