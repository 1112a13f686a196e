package middleware

import (
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Abh1nav7/AgenticSprint/internal/core/domain"
	"github.com/Abh1nav7/AgenticSprint/internal/core/ports"
)

// UserKey is the echo context key holding the authenticated *domain.User.
const UserKey = "user"

// Auth validates the bearer token, loads its subject from the store and
// injects the user into the context. Failures are returned as domain errors
// so the central error handler picks the status and challenge header.
func Auth(tokens ports.TokenVerifier, users ports.UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return domain.Unauthenticated("Authorization header missing", nil)
			}

			scheme, token, _ := strings.Cut(authHeader, " ")
			if !strings.EqualFold(scheme, "bearer") {
				return domain.Unauthenticated("Invalid authentication scheme", nil)
			}
			token = strings.TrimSpace(token)
			if token == "" {
				return domain.Unauthenticated("Token missing", nil)
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					return domain.Unauthenticated("Token expired", err)
				}
				return domain.Unauthenticated("Could not validate token", err)
			}

			id, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil {
				return domain.Unauthenticated("Could not validate token", err)
			}

			user, err := users.FindByID(c.Request().Context(), id)
			if err != nil {
				return err
			}

			c.Set(UserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user injected by Auth, or nil outside protected routes.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(UserKey).(*domain.User)
	return user
}
