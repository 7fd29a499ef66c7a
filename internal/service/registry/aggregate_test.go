package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/farmreg/internal/domain/models"
)

func TestGroupCount_SumEqualsSnapshotSize(t *testing.T) {
	snapshot := []models.Farmer{
		{State: "Kaduna"},
		{State: "Kaduna"},
		{State: "Abuja"},
		{State: ""},
		{State: "Jigawa"},
	}

	for _, key := range []GroupKey{GroupByState, GroupByGender, GroupByPrimaryCrop} {
		counts := GroupCount(snapshot, key)
		sum := 0
		for _, n := range counts {
			sum += n
		}
		assert.Equal(t, len(snapshot), sum,
			"group %q counts must cover every record", key)
	}
}

// Records with no value for the grouping key are counted under the literal
// "undefined" bucket so they stay visible in chart totals.
func TestGroupCount_MissingValuesLandInUndefinedBucket(t *testing.T) {
	snapshot := []models.Farmer{
		{Gender: "Female"},
		{Gender: ""},
		{Gender: ""},
	}

	counts := GroupCount(snapshot, GroupByGender)

	assert.Equal(t, 1, counts["Female"])
	assert.Equal(t, 2, counts["undefined"])
}

func TestGroupCount_UnknownKeyYieldsEmpty(t *testing.T) {
	counts := GroupCount([]models.Farmer{{State: "Kano"}}, GroupKey("nope"))
	assert.Empty(t, counts)
}

func TestStats_ComposesAllDashboardGroups(t *testing.T) {
	snapshot := []models.Farmer{
		{State: "Kaduna", PrimaryCrop: "Maize", Gender: "Male", FarmOwnership: "Owned", FarmingSeason: "Wet Season"},
		{State: "Kaduna", PrimaryCrop: "Rice", Gender: "Female", FarmOwnership: "Rent", FarmingSeason: "Dry Season"},
	}

	stats := Stats(snapshot)

	require.Equal(t, 2, stats.TotalFarmers)
	assert.Equal(t, 2, stats.FarmersByState["Kaduna"])
	assert.Equal(t, 1, stats.FarmersByCrop["Maize"])
	assert.Equal(t, 1, stats.FarmersByGender["Female"])
	assert.Equal(t, 1, stats.FarmersByFarmOwnership["Owned"])
	assert.Equal(t, 1, stats.FarmersByFarmingSeason["Dry Season"])
}
