package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mamadbah2/farmreg/internal/domain/models"
)

// UserStore is the persistence surface the auth service depends on.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByResetToken(ctx context.Context, token string) (models.User, error)
	Insert(ctx context.Context, user models.User) (string, error)
	UpdateMerge(ctx context.Context, id string, fields map[string]any) error
}

// UserRepository implements UserStore over the users collection.
type UserRepository struct {
	coll *mongo.Collection
}

var _ UserStore = (*UserRepository)(nil)

// FindByEmail looks up a staff account by email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, fmt.Errorf("user %s: %w", email, models.ErrNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user %s: %w", email, err)
	}
	return user, nil
}

// FindByResetToken looks up the account holding a pending reset token.
func (r *UserRepository) FindByResetToken(ctx context.Context, token string) (models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"resetToken": token}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, fmt.Errorf("reset token: %w", models.ErrNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find reset token: %w", err)
	}
	return user, nil
}

// Insert stores a new staff account and returns the assigned identifier.
func (r *UserRepository) Insert(ctx context.Context, user models.User) (string, error) {
	user.ID = primitive.NewObjectID().Hex()

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return "", fmt.Errorf("%w: insert user: %v", models.ErrPersistence, err)
	}
	return user.ID, nil
}

// UpdateMerge overwrites only the named keys on a staff account.
func (r *UserRepository) UpdateMerge(ctx context.Context, id string, fields map[string]any) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("%w: merge user %s: %v", models.ErrPersistence, id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", id, models.ErrNotFound)
	}
	return nil
}
