package service

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Abh1nav7/AgenticSprint/internal/core/domain"
	"github.com/Abh1nav7/AgenticSprint/internal/core/ports"
)

var safeExtension = regexp.MustCompile(`^\.[A-Za-z0-9]{1,10}$`)

// ProfileService reads and edits the caller's own profile. The user always
// comes from the validated token, never from the request body.
type ProfileService struct {
	repo  ports.UserRepository
	blobs ports.BlobStore
	log   zerolog.Logger
	now   func() time.Time
}

func NewProfileService(repo ports.UserRepository, blobs ports.BlobStore, log zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, blobs: blobs, log: log, now: time.Now}
}

// GetProfile returns the snapshot loaded by the auth middleware for this request.
func (s *ProfileService) GetProfile(_ context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

// UpdateProfile applies a sparse update; fields absent from changes are kept.
func (s *ProfileService) UpdateProfile(ctx context.Context, user *domain.User, changes domain.ProfileChanges) (*domain.User, error) {
	if changes.Has(domain.FieldName) && changes[domain.FieldName] == nil {
		return nil, domain.Invalid("name cannot be null")
	}

	updated, err := s.repo.UpdateProfile(ctx, user.ID, changes, s.stamp(user))
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return updated, nil
}

// UploadAvatar stores the image, points the profile at it and then removes
// the avatar the store reports as replaced. Cleanup failures are logged and otherwise ignored.
func (s *ProfileService) UploadAvatar(ctx context.Context, user *domain.User, upload ports.AvatarUpload) (string, error) {
	if !strings.HasPrefix(strings.ToLower(upload.ContentType), "image/") {
		return "", domain.Invalid("File must be an image")
	}

	at := s.stamp(user)
	name := avatarName(user.ID, at, upload.Filename)

	url, err := s.blobs.Put(ctx, name, upload.Body, upload.ContentType)
	if err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}

	previous, err := s.repo.SetAvatar(ctx, user.ID, url, at)
	if err != nil {
		if delErr := s.blobs.Delete(ctx, url); delErr != nil {
			s.log.Warn().Err(delErr).Str("url", url).Msg("failed to remove orphaned avatar")
		}
		return "", fmt.Errorf("save avatar: %w", err)
	}

	if previous != nil && *previous != "" && *previous != url {
		if err := s.blobs.Delete(ctx, *previous); err != nil {
			s.log.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to remove previous avatar")
		}
	}

	s.log.Info().Int64("user_id", user.ID).Str("url", url).Msg("avatar updated")
	return url, nil
}

// stamp returns the lastUpdated value for a write, never earlier than the
// current one even if the wall clock stepped back.
func (s *ProfileService) stamp(user *domain.User) time.Time {
	now := s.now().UTC()
	if user.LastUpdated != nil && now.Before(*user.LastUpdated) {
		return *user.LastUpdated
	}
	return now
}

func avatarName(userID int64, at time.Time, filename string) string {
	ext := filepath.Ext(filename)
	if !safeExtension.MatchString(ext) {
		ext = ""
	}
	return fmt.Sprintf("avatar_%d_%d%s", userID, at.UnixNano(), ext)
}
