package registry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/farmreg/internal/domain/models"
)

func makeFarmers(n int) []models.Farmer {
	farmers := make([]models.Farmer, n)
	for i := range farmers {
		farmers[i] = models.Farmer{ID: fmt.Sprintf("f-%d", i)}
	}
	return farmers
}

func TestPage_ConcatenatingAllPagesReconstructsSequence(t *testing.T) {
	farmers := makeFarmers(23)
	const pageSize = 10

	total := TotalPages(len(farmers), pageSize)
	require.Equal(t, 3, total)

	var rebuilt []models.Farmer
	for page := 1; page <= total; page++ {
		p := Page(farmers, pageSize, page)
		assert.LessOrEqual(t, len(p), pageSize)
		rebuilt = append(rebuilt, p...)
	}

	assert.Equal(t, farmers, rebuilt)
}

func TestPage_OutOfRangePageIsEmptyNotError(t *testing.T) {
	farmers := makeFarmers(5)

	assert.Empty(t, Page(farmers, 10, 2))
	assert.Empty(t, Page(farmers, 10, 0))
	assert.Empty(t, Page(farmers, 10, -1))
	assert.Empty(t, Page(nil, 10, 1))
}

func TestPage_LastPageIsPartial(t *testing.T) {
	farmers := makeFarmers(12)

	last := Page(farmers, 5, 3)
	require.Len(t, last, 2)
	assert.Equal(t, "f-10", last[0].ID)
	assert.Equal(t, "f-11", last[1].ID)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}
