package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Abh1nav7/AgenticSprint/internal/core/domain"
)

const (
	usersCollection    = "users"
	countersCollection = "counters"
	userSequence       = "users"
)

// UserRepository stores users as documents. Integer ids come from a
// monotonically increasing counter document, so ids are never reused.
type UserRepository struct {
	users    *mongo.Collection
	counters *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		users:    db.Collection(usersCollection),
		counters: db.Collection(countersCollection),
	}
}

type userDocument struct {
	ID           int64      `bson:"_id"`
	Name         string     `bson:"name"`
	Email        string     `bson:"email"`
	PasswordHash string     `bson:"password_hash"`
	CreatedAt    time.Time  `bson:"created_at"`
	AvatarURL    *string    `bson:"avatar_url"`
	Title        *string    `bson:"title"`
	Company      *string    `bson:"company"`
	Bio          *string    `bson:"bio"`
	Phone        *string    `bson:"phone"`
	Location     *string    `bson:"location"`
	Timezone     *string    `bson:"timezone"`
	LastUpdated  *time.Time `bson:"last_updated"`
}

type counterDocument struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

// EnsureIndexes creates the unique email index that backs signup conflicts.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_key"),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

// Create inserts the user. Standalone deployments have no multi-document
// transactions, so a failing confirm is undone by deleting the new document.
func (r *UserRepository) Create(ctx context.Context, user *domain.User, confirm func(*domain.User) error) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.nextID(ctx)
	if err != nil {
		return nil, err
	}

	created := *user
	created.ID = id
	if _, err := r.users.InsertOne(ctx, toDocument(&created)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if confirm != nil {
		if err := confirm(&created); err != nil {
			if _, delErr := r.users.DeleteOne(ctx, bson.M{"_id": id}); delErr != nil {
				return nil, errors.Join(err, fmt.Errorf("undo insert: %w", delErr))
			}
			return nil, err
		}
	}
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, changes domain.ProfileChanges, updatedAt time.Time) (*domain.User, error) {
	set := bson.M{"last_updated": updatedAt}
	for field, value := range changes {
		set[string(field)] = value
	}
	return r.updateOne(ctx, id, set)
}

// SetAvatar returns the pre-image's avatar_url from the same findAndModify.
func (r *UserRepository) SetAvatar(ctx context.Context, id int64, avatarURL string, updatedAt time.Time) (*string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var before struct {
		AvatarURL *string `bson:"avatar_url"`
	}
	err := r.users.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"avatar_url": avatarURL, "last_updated": updatedAt}},
		options.FindOneAndUpdate().
			SetReturnDocument(options.Before).
			SetProjection(bson.M{"avatar_url": 1}),
	).Decode(&before)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return before.AvatarURL, nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return r.users.Database().Client().Ping(ctx, nil)
}

func (r *UserRepository) nextID(ctx context.Context) (int64, error) {
	var c counterDocument
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": userSequence},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("next user id: %w", err)
	}
	return c.Seq, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) updateOne(ctx context.Context, id int64, set bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	err := r.users.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return doc.toDomain(), nil
}

func toDocument(u *domain.User) userDocument {
	return userDocument{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		AvatarURL:    u.AvatarURL,
		Title:        u.Title,
		Company:      u.Company,
		Bio:          u.Bio,
		Phone:        u.Phone,
		Location:     u.Location,
		Timezone:     u.Timezone,
		LastUpdated:  u.LastUpdated,
	}
}

func (d userDocument) toDomain() *domain.User {
	u := &domain.User{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt.UTC(),
		AvatarURL:    d.AvatarURL,
		Title:        d.Title,
		Company:      d.Company,
		Bio:          d.Bio,
		Phone:        d.Phone,
		Location:     d.Location,
		Timezone:     d.Timezone,
	}
	if d.LastUpdated != nil {
		t := d.LastUpdated.UTC()
		u.LastUpdated = &t
	}
	return u
}
