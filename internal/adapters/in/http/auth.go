package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Role is the access level granted to an API token.
type Role string

const (
	// RoleAdmin may mutate orders and trigger jobs.
	RoleAdmin Role = "admin"

	// RoleViewer may only read.
	RoleViewer Role = "viewer"
)

const roleContextKey = "auth.role"

// TokenAuth authenticates requests with a bearer token and stores the
// resolved role in the request context. Requests without a token, or with a
// token not present in the map, are rejected with 401.
func TokenAuth(tokens map[string]Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Missing or malformed API token",
				})
			}

			role, ok := tokens[token]
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Unknown API token",
				})
			}

			ctx.Set(roleContextKey, role)
			return next(ctx)
		}
	}
}

// RequireAdmin rejects authenticated requests whose token does not carry
// the admin role.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			role, _ := ctx.Get(roleContextKey).(Role)
			if role != RoleAdmin {
				return ctx.JSON(http.StatusForbidden, ErrorResponse{
					Code:    http.StatusForbidden,
					Message: "Admin access required",
				})
			}
			return next(ctx)
		}
	}
}
