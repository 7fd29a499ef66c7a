package registry

import "github.com/mamadbah2/farmreg/internal/domain/models"

// Page slices the 1-based page out of the sequence. Out-of-range page
// numbers yield an empty slice; nothing is clamped.
func Page(farmers []models.Farmer, pageSize, page int) []models.Farmer {
	if pageSize <= 0 || page < 1 {
		return nil
	}

	start := (page - 1) * pageSize
	if start >= len(farmers) {
		return nil
	}

	end := start + pageSize
	if end > len(farmers) {
		end = len(farmers)
	}
	return farmers[start:end]
}

// TotalPages computes ceil(n / pageSize); zero records means zero pages.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 || n <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}
