package service

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Abh1nav7/AgenticSprint/internal/core/domain"
	"github.com/Abh1nav7/AgenticSprint/internal/core/ports"
)

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64

	createErr error
	setErr    error
	lastStamp time.Time
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User, confirm func(*domain.User) error) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = r.nextID
	if confirm != nil {
		if err := confirm(created); err != nil {
			return nil, err
		}
	}
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id int64, changes domain.ProfileChanges, updatedAt time.Time) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	changes.Apply(u)
	u.LastUpdated = &updatedAt
	r.lastStamp = updatedAt
	return cloneUser(u), nil
}

func (r *stubUserRepo) SetAvatar(_ context.Context, id int64, avatarURL string, updatedAt time.Time) (*string, error) {
	if r.setErr != nil {
		return nil, r.setErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	previous := u.AvatarURL
	u.AvatarURL = &avatarURL
	u.LastUpdated = &updatedAt
	r.lastStamp = updatedAt
	return previous, nil
}

// stubHasher "hashes" by prefixing, which is enough to tell hashed from plain.
type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (stubHasher) Verify(password, hash string) bool { return hash == "hashed:"+password }

type stubTokens struct {
	err    error
	issued []ports.TokenClaims
}

func (s *stubTokens) Issue(claims ports.TokenClaims) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.issued = append(s.issued, claims)
	return "token-" + claims.Subject, nil
}

type stubBlobs struct {
	objects map[string]string
	putErr  error
	delErr  error
	deleted []string
}

func newStubBlobs() *stubBlobs {
	return &stubBlobs{objects: make(map[string]string)}
}

func (b *stubBlobs) Put(_ context.Context, name string, r io.Reader, _ string) (string, error) {
	if b.putErr != nil {
		return "", b.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	url := "/static/uploads/" + name
	b.objects[url] = string(data)
	return url, nil
}

func (b *stubBlobs) Delete(_ context.Context, url string) error {
	b.deleted = append(b.deleted, url)
	if b.delErr != nil {
		return b.delErr
	}
	delete(b.objects, url)
	return nil
}

type stubCompletion struct {
	content  string
	err      error
	probe    *domain.ProbeResult
	probeErr error
	requests []domain.CompletionRequest
}

func (c *stubCompletion) Complete(_ context.Context, req domain.CompletionRequest) (string, error) {
	c.requests = append(c.requests, req)
	return c.content, c.err
}

func (c *stubCompletion) Probe(_ context.Context, req domain.CompletionRequest) (*domain.ProbeResult, error) {
	c.requests = append(c.requests, req)
	return c.probe, c.probeErr
}

func strPtr(s string) *string { return &s }

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func isDetail(err error, kind error, detail string) bool {
	var de *domain.DetailError
	return errors.As(err, &de) && errors.Is(err, kind) && strings.Contains(de.Detail, detail)
}

func idString(id int64) string { return strconv.FormatInt(id, 10) }
