package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Abh1nav7/AgenticSprint/internal/api/middleware"
	"github.com/Abh1nav7/AgenticSprint/internal/core/domain"
)

// ctxUser returns the user injected by the Auth middleware. A missing user
// means the route was mounted without Auth; treat it as unauthenticated.
func ctxUser(c echo.Context) (*domain.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, domain.Unauthenticated("Could not validate credentials", nil)
	}
	return user, nil
}
