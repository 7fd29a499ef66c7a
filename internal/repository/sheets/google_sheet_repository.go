package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/farmreg/internal/config"
	"github.com/mamadbah2/farmreg/internal/domain/models"
)

const rosterRange = "Farmers!A:L"

// Exporter pushes farmer roster rows to a shared spreadsheet.
type Exporter interface {
	AppendFarmers(ctx context.Context, farmers []models.Farmer) error
}

// GoogleSheetExporter implements Exporter using the official Google Sheets
// API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendFarmers appends one row per farmer to the roster sheet.
func (e *GoogleSheetExporter) AppendFarmers(ctx context.Context, farmers []models.Farmer) error {
	if len(farmers) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(farmers))
	for _, f := range farmers {
		rows = append(rows, []interface{}{
			f.FarmerID,
			f.Lastname,
			f.Firstname,
			f.Middlename,
			f.Gender,
			f.Phone,
			f.Email,
			f.State,
			f.LocalGovernment,
			f.PrimaryCrop,
			f.FarmOwnership,
			f.FarmingSeason,
		})
	}

	payload := &sheetsapi.ValueRange{Values: rows}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, rosterRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append roster rows: %w", err)
	}

	e.logger.Debug("roster rows appended", zap.Int("rows", len(rows)))
	return nil
}
