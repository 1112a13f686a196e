package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Abh1nav7/AgenticSprint/internal/core/domain"
)

const uniqueViolation = "23505"

const userColumns = `id, name, email, password_hash, created_at, avatar_url, title, company, bio, phone, location, timezone, last_updated`

// UserRepository stores users in the relational users table.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user inside a transaction so that a failing confirm
// leaves no row behind.
func (r *UserRepository) Create(ctx context.Context, user *domain.User, confirm func(*domain.User) error) (*domain.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	created := *user
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		user.Name, user.Email, user.PasswordHash, user.CreatedAt,
	).Scan(&created.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if confirm != nil {
		if err := confirm(&created); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// UpdateProfile sets only the columns named in changes.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, changes domain.ProfileChanges, updatedAt time.Time) (*domain.User, error) {
	sets := make([]string, 0, len(changes)+1)
	args := make([]any, 0, len(changes)+2)
	for _, field := range domain.ProfileFields {
		value, ok := changes[field]
		if !ok {
			continue
		}
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", field, len(args)))
	}
	args = append(args, updatedAt)
	sets = append(sets, fmt.Sprintf("last_updated = $%d", len(args)))
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING `+userColumns,
		strings.Join(sets, ", "), len(args))

	return scanUser(r.db.QueryRowContext(ctx, query, args...))
}

// SetAvatar locks the row while reading the current avatar, so concurrent
// uploads for one user each get back the URL they actually replaced.
func (r *UserRepository) SetAvatar(ctx context.Context, id int64, avatarURL string, updatedAt time.Time) (*string, error) {
	var previous sql.NullString
	err := r.db.QueryRowContext(ctx, `
		WITH prev AS (SELECT id, avatar_url FROM users WHERE id = $3 FOR UPDATE)
		UPDATE users SET avatar_url = $1, last_updated = $2
		FROM prev WHERE users.id = prev.id
		RETURNING prev.avatar_url`,
		avatarURL, updatedAt, id).Scan(&previous)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return nullableString(previous), nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var (
		u           domain.User
		avatarURL   sql.NullString
		title       sql.NullString
		company     sql.NullString
		bio         sql.NullString
		phone       sql.NullString
		location    sql.NullString
		timezone    sql.NullString
		lastUpdated sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt,
		&avatarURL, &title, &company, &bio, &phone, &location, &timezone, &lastUpdated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	u.CreatedAt = u.CreatedAt.UTC()
	u.AvatarURL = nullableString(avatarURL)
	u.Title = nullableString(title)
	u.Company = nullableString(company)
	u.Bio = nullableString(bio)
	u.Phone = nullableString(phone)
	u.Location = nullableString(location)
	u.Timezone = nullableString(timezone)
	if lastUpdated.Valid {
		t := lastUpdated.Time.UTC()
		u.LastUpdated = &t
	}
	return &u, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
