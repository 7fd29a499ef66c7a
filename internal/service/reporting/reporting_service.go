package reporting

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmreg/internal/domain/models"
	"github.com/mamadbah2/farmreg/internal/repository/mongodb"
	"github.com/mamadbah2/farmreg/internal/repository/sheets"
	"github.com/mamadbah2/farmreg/internal/service/registry"
	"github.com/mamadbah2/farmreg/pkg/clients/qrserver"
)

const qrImageSize = 150

// Service produces farmer certificates and roster exports, and computes the
// scheduled registration summaries.
type Service struct {
	farmers   mongodb.CollectionClient
	summaries mongodb.SummaryStore
	exporter  sheets.Exporter
	qr        qrserver.Client
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a new reporting service instance. exporter may be nil
// when Google Sheets export is not configured.
func NewService(farmers mongodb.CollectionClient, summaries mongodb.SummaryStore, exporter sheets.Exporter, qr qrserver.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		farmers:   farmers,
		summaries: summaries,
		exporter:  exporter,
		qr:        qr,
		logger:    logger,
		now:       time.Now,
	}
}

// QRCode fetches the QR image encoding the farmer's registered code.
func (s *Service) QRCode(ctx context.Context, id string) ([]byte, error) {
	farmer, err := s.farmers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("qr code for %s: %w", id, err)
	}
	return s.qr.GenerateQRCode(ctx, farmer.FarmerID, qrImageSize)
}

// ExportXLSX renders the full roster as a spreadsheet download.
func (s *Service) ExportXLSX(ctx context.Context) ([]byte, error) {
	farmers, err := s.farmers.GetOnce(ctx, mongodb.Filter{})
	if err != nil {
		return nil, fmt.Errorf("export roster: %w", err)
	}

	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	const sheet = "Farmers"
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{
		"Farmer ID", "Last Name", "First Name", "Middle Name", "Gender",
		"Phone", "Email", "State", "Local Government", "Primary Crop",
		"Farm Ownership", "Farming Season", "Registered",
	}
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, f := range farmers {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row coordinates: %w", err)
		}
		row := []any{
			f.FarmerID, f.Lastname, f.Firstname, f.Middlename, f.Gender,
			f.Phone, f.Email, f.State, f.LocalGovernment, f.PrimaryCrop,
			f.FarmOwnership, f.FarmingSeason, f.CreatedAt.Format("2006-01-02"),
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}

	s.logger.Info("roster exported", zap.Int("farmers", len(farmers)))
	return buf.Bytes(), nil
}

// ExportToSheets pushes the full roster to the configured shared
// spreadsheet.
func (s *Service) ExportToSheets(ctx context.Context) error {
	if s.exporter == nil {
		return fmt.Errorf("google sheets export is not configured")
	}

	farmers, err := s.farmers.GetOnce(ctx, mongodb.Filter{})
	if err != nil {
		return fmt.Errorf("export roster to sheets: %w", err)
	}

	if err := s.exporter.AppendFarmers(ctx, farmers); err != nil {
		return fmt.Errorf("export roster to sheets: %w", err)
	}

	s.logger.Info("roster pushed to sheets", zap.Int("farmers", len(farmers)))
	return nil
}

// DailySummary computes and persists the registration summary for the day
// containing at.
func (s *Service) DailySummary(ctx context.Context, at time.Time) (models.RegistrationSummary, error) {
	farmers, err := s.farmers.GetOnce(ctx, mongodb.Filter{})
	if err != nil {
		return models.RegistrationSummary{}, fmt.Errorf("load farmers for summary: %w", err)
	}

	day := at.UTC().Truncate(24 * time.Hour)
	registeredToday := 0
	for _, f := range farmers {
		if f.CreatedAt.UTC().Truncate(24 * time.Hour).Equal(day) {
			registeredToday++
		}
	}

	summary := models.RegistrationSummary{
		Date:            day,
		TotalFarmers:    len(farmers),
		RegisteredToday: registeredToday,
		FarmersByState:  registry.GroupCount(farmers, registry.GroupByState),
		FarmersByCrop:   registry.GroupCount(farmers, registry.GroupByPrimaryCrop),
		FarmersByGender: registry.GroupCount(farmers, registry.GroupByGender),
		CreatedAt:       s.now().UTC(),
	}

	if err := s.summaries.SaveRegistrationSummary(ctx, summary); err != nil {
		return models.RegistrationSummary{}, fmt.Errorf("save summary: %w", err)
	}

	s.logger.Info("registration summary saved",
		zap.Time("date", summary.Date),
		zap.Int("total", summary.TotalFarmers),
		zap.Int("today", summary.RegisteredToday))
	return summary, nil
}

// fetchQR returns the QR image for the certificate, or nil when the image
// service is unreachable; the certificate is still issued without it.
func (s *Service) fetchQR(ctx context.Context, farmerID string) []byte {
	if s.qr == nil {
		return nil
	}
	png, err := s.qr.GenerateQRCode(ctx, farmerID, qrImageSize)
	if err != nil {
		s.logger.Warn("qr image unavailable, issuing certificate without it", zap.Error(err))
		return nil
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		s.logger.Warn("qr service returned a non-png payload, skipping image")
		return nil
	}
	return png
}
