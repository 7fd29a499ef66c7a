package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mamadbah2/farmreg/internal/domain/models"
)

// SummaryStore persists scheduled registration summaries.
type SummaryStore interface {
	SaveRegistrationSummary(ctx context.Context, summary models.RegistrationSummary) error
}

// SummaryRepository implements SummaryStore over the registration_summaries
// collection.
type SummaryRepository struct {
	coll *mongo.Collection
}

var _ SummaryStore = (*SummaryRepository)(nil)

// SaveRegistrationSummary stores one daily registration summary.
func (r *SummaryRepository) SaveRegistrationSummary(ctx context.Context, summary models.RegistrationSummary) error {
	if _, err := r.coll.InsertOne(ctx, summary); err != nil {
		return fmt.Errorf("%w: insert registration summary: %v", models.ErrPersistence, err)
	}
	return nil
}
