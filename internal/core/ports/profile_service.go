package ports

import (
	"context"
	"io"

	"github.com/Abh1nav7/AgenticSprint/internal/core/domain"
)

// AvatarUpload is an image received from the client.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type ProfileService interface {
	GetProfile(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User, changes domain.ProfileChanges) (*domain.User, error)
	UploadAvatar(ctx context.Context, user *domain.User, upload AvatarUpload) (string, error)
}
