package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmreg/internal/domain/models"
	"github.com/mamadbah2/farmreg/internal/repository/mongodb"
)

// Service coordinates mutations against the farmers collection and composes
// the derived read views. No mutation is retried and none is applied
// optimistically: the in-memory view only moves when the backend confirms.
//
// Writes carry no version token, so concurrent edits from two clients follow
// last-writer-wins at the merged-field or whole-document level. That is the
// backend's default behavior, inherited knowingly.
type Service struct {
	client   mongodb.CollectionClient
	idPrefix string
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new registry service. idPrefix is the human-readable
// farmer code prefix, e.g. "CCSA".
func NewService(client mongodb.CollectionClient, idPrefix string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if idPrefix == "" {
		idPrefix = "CCSA"
	}
	return &Service{
		client:   client,
		idPrefix: idPrefix,
		logger:   logger,
		now:      time.Now,
	}
}

// Register validates the submitted record, stamps the client-generated
// farmer code and creation time, and creates the document. The farmer code
// is generated exactly once here and never recomputed.
func (s *Service) Register(ctx context.Context, input models.Farmer) (models.Farmer, error) {
	if err := validateRegistration(input); err != nil {
		return models.Farmer{}, err
	}

	input.ID = ""
	input.FarmerID = s.generateFarmerID()
	input.CreatedAt = s.now().UTC()

	id, err := s.client.Create(ctx, input)
	if err != nil {
		return models.Farmer{}, fmt.Errorf("register farmer: %w", err)
	}

	input.ID = id
	s.logger.Info("farmer registered", zap.String("id", id), zap.String("farmerID", input.FarmerID))
	return input, nil
}

// Get fetches one farmer by identifier.
func (s *Service) Get(ctx context.Context, id string) (models.Farmer, error) {
	return s.client.GetByID(ctx, id)
}

// List reads the collection once, optionally constrained server-side.
func (s *Service) List(ctx context.Context, filter mongodb.Filter) ([]models.Farmer, error) {
	return s.client.GetOnce(ctx, filter)
}

// Watch opens a live snapshot subscription. The caller owns the
// subscription and must Close it on every exit path.
func (s *Service) Watch(ctx context.Context, filter mongodb.Filter) (*mongodb.Subscription, error) {
	return s.client.Subscribe(ctx, filter)
}

// SearchResult is one page of a filtered listing.
type SearchResult struct {
	Farmers    []models.Farmer `json:"farmers"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
}

// Search reads the collection once, applies the criteria in memory, and
// returns the requested page.
func (s *Service) Search(ctx context.Context, criteria Criteria, pageSize, page int) (SearchResult, error) {
	snapshot, err := s.client.GetOnce(ctx, mongodb.Filter{})
	if err != nil {
		return SearchResult{}, fmt.Errorf("search farmers: %w", err)
	}

	matched := criteria.Apply(snapshot)
	return SearchResult{
		Farmers:    Page(matched, pageSize, page),
		Total:      len(matched),
		Page:       page,
		TotalPages: TotalPages(len(matched), pageSize),
	}, nil
}

// Edit merges the set fields into the document, leaving everything else
// untouched.
func (s *Service) Edit(ctx context.Context, id string, edit models.FarmerEdit) error {
	if err := validateEdit(edit); err != nil {
		return err
	}

	fields := edit.Fields()
	if len(fields) == 0 {
		return nil
	}

	if err := s.client.UpdateMerge(ctx, id, fields); err != nil {
		return fmt.Errorf("edit farmer %s: %w", id, err)
	}
	s.logger.Info("farmer updated", zap.String("id", id), zap.Int("fields", len(fields)))
	return nil
}

// UpdateSoil writes the soil profile by fetching the full record and
// replacing it with the profile set. The fetch-modify-replace window can
// clobber a concurrent edit to a sibling field; see the service doc.
func (s *Service) UpdateSoil(ctx context.Context, id string, profile models.SoilProfile) error {
	farmer, err := s.client.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("update soil for %s: %w", id, err)
	}

	farmer.Soil = &profile
	if err := s.client.Replace(ctx, id, farmer); err != nil {
		return fmt.Errorf("update soil for %s: %w", id, err)
	}
	return nil
}

// UpdateSoilChemistry merges only the soilChemistry key.
func (s *Service) UpdateSoilChemistry(ctx context.Context, id string, chemistry models.SoilChemistry) error {
	return s.mergeProfile(ctx, id, "soilChemistry", chemistry)
}

// UpdateWaterDetails merges only the waterDetails key.
func (s *Service) UpdateWaterDetails(ctx context.Context, id string, water models.WaterProfile) error {
	return s.mergeProfile(ctx, id, "waterDetails", water)
}

// UpdateFarmDetails merges only the farmDetails key.
func (s *Service) UpdateFarmDetails(ctx context.Context, id string, details models.FarmDetails) error {
	return s.mergeProfile(ctx, id, "farmDetails", details)
}

// Delete removes the document. A record already absent is treated as
// success: the backend does not promise idempotent deletes, so absence on
// delete is tolerated here instead of surfacing.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.client.Delete(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		s.logger.Debug("delete of absent farmer treated as success", zap.String("id", id))
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete farmer %s: %w", id, err)
	}
	s.logger.Info("farmer deleted", zap.String("id", id))
	return nil
}

func (s *Service) mergeProfile(ctx context.Context, id, key string, profile any) error {
	if err := s.client.UpdateMerge(ctx, id, map[string]any{key: profile}); err != nil {
		return fmt.Errorf("update %s for %s: %w", key, id, err)
	}
	s.logger.Info("profile updated", zap.String("id", id), zap.String("profile", key))
	return nil
}

// generateFarmerID renders the human-readable farmer code as
// <prefix>-<UTC timestamp with punctuation stripped>, millisecond
// resolution.
func (s *Service) generateFarmerID() string {
	now := s.now().UTC()
	stamp := now.Format("20060102150405.000")
	return s.idPrefix + "-" + strings.ReplaceAll(stamp, ".", "")
}
