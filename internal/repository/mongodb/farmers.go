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

// FarmerRepository implements CollectionClient over the farmers collection.
//
// Identifiers are ObjectID hex strings assigned at creation and stored as
// the document _id, so decoded documents carry them directly.
type FarmerRepository struct {
	coll *mongo.Collection
}

var _ CollectionClient = (*FarmerRepository)(nil)

// Subscribe watches the collection's change stream and emits a full snapshot
// for the initial state and after every change, mirroring a snapshot
// listener rather than a delta feed. Cancel via Subscription.Close or the
// parent context.
func (r *FarmerRepository) Subscribe(ctx context.Context, filter Filter) (*Subscription, error) {
	streamCtx, cancel := context.WithCancel(ctx)

	stream, err := r.coll.Watch(streamCtx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: watch farmers: %v", models.ErrSubscription, err)
	}

	sub := NewSubscription(cancel)

	go func() {
		defer sub.Finish()
		defer func() { _ = stream.Close(context.Background()) }()

		snapshot, err := r.GetOnce(streamCtx, filter)
		if err != nil {
			if streamCtx.Err() == nil {
				sub.Fail(fmt.Errorf("%w: initial snapshot: %v", models.ErrSubscription, err))
			}
			return
		}
		sub.Push(snapshot)

		for stream.Next(streamCtx) {
			snapshot, err := r.GetOnce(streamCtx, filter)
			if err != nil {
				if streamCtx.Err() == nil {
					sub.Fail(fmt.Errorf("%w: refresh snapshot: %v", models.ErrSubscription, err))
				}
				return
			}
			sub.Push(snapshot)
		}

		if err := stream.Err(); err != nil && streamCtx.Err() == nil {
			sub.Fail(fmt.Errorf("%w: change stream: %v", models.ErrSubscription, err))
		}
	}()

	return sub, nil
}

// GetOnce reads the full (optionally filtered) collection without an ongoing
// subscription.
func (r *FarmerRepository) GetOnce(ctx context.Context, filter Filter) ([]models.Farmer, error) {
	query := bson.M{}
	if !filter.IsZero() {
		query[filter.Key] = filter.Value
	}

	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find farmers: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var farmers []models.Farmer
	if err := cursor.All(ctx, &farmers); err != nil {
		return nil, fmt.Errorf("decode farmers: %w", err)
	}
	return farmers, nil
}

// GetByID fetches a single farmer document.
func (r *FarmerRepository) GetByID(ctx context.Context, id string) (models.Farmer, error) {
	var farmer models.Farmer
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&farmer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Farmer{}, fmt.Errorf("farmer %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Farmer{}, fmt.Errorf("find farmer %s: %w", id, err)
	}
	return farmer, nil
}

// Create inserts a new farmer document and returns the assigned identifier.
func (r *FarmerRepository) Create(ctx context.Context, farmer models.Farmer) (string, error) {
	farmer.ID = primitive.NewObjectID().Hex()

	if _, err := r.coll.InsertOne(ctx, farmer); err != nil {
		return "", fmt.Errorf("%w: insert farmer: %v", models.ErrPersistence, err)
	}
	return farmer.ID, nil
}

// UpdateMerge overwrites only the named top-level keys, leaving every other
// field untouched.
func (r *FarmerRepository) UpdateMerge(ctx context.Context, id string, fields map[string]any) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("%w: merge farmer %s: %v", models.ErrPersistence, id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("farmer %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// Replace overwrites the whole document. Fields absent from the payload are
// discarded, so callers must fetch the current document first.
func (r *FarmerRepository) Replace(ctx context.Context, id string, farmer models.Farmer) error {
	farmer.ID = id
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, farmer)
	if err != nil {
		return fmt.Errorf("%w: replace farmer %s: %v", models.ErrPersistence, id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("farmer %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// Delete removes the document. Reports ErrNotFound when it is already
// absent; the backend makes no idempotency promise.
func (r *FarmerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%w: delete farmer %s: %v", models.ErrPersistence, id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("farmer %s: %w", id, models.ErrNotFound)
	}
	return nil
}
