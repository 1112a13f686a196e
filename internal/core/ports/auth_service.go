package ports

import (
	"context"

	"github.com/Abh1nav7/AgenticSprint/internal/core/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
