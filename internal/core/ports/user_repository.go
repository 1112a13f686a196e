package ports

import (
	"context"
	"time"

	"github.com/Abh1nav7/AgenticSprint/internal/core/domain"
)

// UserRepository is the credential store. Implementations enforce email
// uniqueness themselves and report a clash as domain.ErrUserExists.
type UserRepository interface {
	// Create assigns the user an id and persists it. When confirm is non-nil it
	// runs after the id is known but before the write is final; an error from
	// confirm aborts the creation and nothing is kept.
	Create(ctx context.Context, user *domain.User, confirm func(*domain.User) error) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// UpdateProfile writes only the fields present in changes and stamps lastUpdated.
	UpdateProfile(ctx context.Context, id int64, changes domain.ProfileChanges, updatedAt time.Time) (*domain.User, error)
	// SetAvatar points the user at avatarURL and returns the URL it replaced,
	// nil when there was none. The read and the write are one atomic step.
	SetAvatar(ctx context.Context, id int64, avatarURL string, updatedAt time.Time) (previous *string, err error)
}

// UserFinder is the read side used by the auth middleware.
type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
