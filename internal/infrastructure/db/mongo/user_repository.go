package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spar-shoe/storefront-api/internal/core/domain"
)

const usersCollection = "users"

// UserRepository persists accounts in MongoDB. Token consumption happens in
// single FindOneAndUpdate calls, so the check-and-clear contract holds under
// concurrent requests without any application-level locking.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	IsVerified   bool               `bson:"is_verified"`

	VerificationToken        string    `bson:"verification_token,omitempty"`
	VerificationTokenExpires time.Time `bson:"verification_token_expires,omitempty"`

	ResetToken        string    `bson:"reset_token,omitempty"`
	ResetTokenExpires time.Time `bson:"reset_token_expires,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:                       mu.ID.Hex(),
		Name:                     mu.Name,
		Email:                    mu.Email,
		PasswordHash:             mu.PasswordHash,
		Role:                     mu.Role,
		IsVerified:               mu.IsVerified,
		VerificationToken:        mu.VerificationToken,
		VerificationTokenExpires: mu.VerificationTokenExpires,
		ResetToken:               mu.ResetToken,
		ResetTokenExpires:        mu.ResetTokenExpires,
		CreatedAt:                mu.CreatedAt,
		UpdatedAt:                mu.UpdatedAt,
	}
}

// Create inserts a new account. The unique index on email turns a duplicate
// registration into domain.ErrEmailTaken without touching the existing record.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		Name:                     user.Name,
		Email:                    user.Email,
		PasswordHash:             user.PasswordHash,
		Role:                     user.Role,
		IsVerified:               user.IsVerified,
		VerificationToken:        user.VerificationToken,
		VerificationTokenExpires: user.VerificationTokenExpires,
		CreatedAt:                user.CreatedAt,
		UpdatedAt:                user.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return mu.toDomain(), nil
}

// SetResetToken overwrites any pending reset token, invalidating previously
// mailed reset links.
func (r *UserRepository) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"reset_token":         token,
		"reset_token_expires": expires,
		"updated_at":          time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ConsumeVerificationToken flips the matching account to verified and clears
// the token pair in one conditional update. The $gt filter makes the expiry
// boundary exclusive: a token presented at exactly its expiry instant is
// already dead.
func (r *UserRepository) ConsumeVerificationToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"verification_token":         token,
		"verification_token_expires": bson.M{"$gt": now},
	}
	update := bson.M{
		"$set":   bson.M{"is_verified": true, "updated_at": now},
		"$unset": bson.M{"verification_token": "", "verification_token_expires": ""},
	}

	var mu mongoUser
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("consume verification token: %w", err)
	}
	return mu.toDomain(), nil
}

// ConsumeResetToken installs the new password hash and clears the reset
// token pair in the same conditional update as the validity check.
func (r *UserRepository) ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"reset_token":         token,
		"reset_token_expires": bson.M{"$gt": now},
	}
	update := bson.M{
		"$set":   bson.M{"password_hash": passwordHash, "updated_at": now},
		"$unset": bson.M{"reset_token": "", "reset_token_expires": ""},
	}

	var mu mongoUser
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("consume reset token: %w", err)
	}
	return mu.toDomain(), nil
}

// EnsureIndexes creates the unique email index and token lookup indexes.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "verification_token", Value: 1}}},
		{Keys: bson.D{{Key: "reset_token", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
