package registry

import "github.com/mamadbah2/farmreg/internal/domain/models"

// GroupKey names an attribute the dashboard groups counts by.
type GroupKey string

const (
	GroupByState         GroupKey = "state"
	GroupByPrimaryCrop   GroupKey = "primaryCrop"
	GroupByGender        GroupKey = "gender"
	GroupByFarmOwnership GroupKey = "farmOwnership"
	GroupByFarmingSeason GroupKey = "farmingSeason"
)

// undefinedBucket collects records with no value for the grouping key. The
// literal key matches what the dashboard has always rendered for such
// records, so they stay visible instead of silently dropping out of totals.
const undefinedBucket = "undefined"

var groupAccessors = map[GroupKey]func(models.Farmer) string{
	GroupByState:         func(f models.Farmer) string { return f.State },
	GroupByPrimaryCrop:   func(f models.Farmer) string { return f.PrimaryCrop },
	GroupByGender:        func(f models.Farmer) string { return f.Gender },
	GroupByFarmOwnership: func(f models.Farmer) string { return f.FarmOwnership },
	GroupByFarmingSeason: func(f models.Farmer) string { return f.FarmingSeason },
}

// GroupCount tallies records by the observed value of the grouping key.
// Key order in the result is unspecified; consumers needing deterministic
// chart ordering must sort.
func GroupCount(snapshot []models.Farmer, key GroupKey) map[string]int {
	accessor, ok := groupAccessors[key]
	if !ok {
		return map[string]int{}
	}

	counts := make(map[string]int)
	for _, farmer := range snapshot {
		value := accessor(farmer)
		if value == "" {
			value = undefinedBucket
		}
		counts[value]++
	}
	return counts
}

// Stats derives the full dashboard aggregate view from one snapshot.
func Stats(snapshot []models.Farmer) models.DashboardStats {
	return models.DashboardStats{
		TotalFarmers:           len(snapshot),
		FarmersByState:         GroupCount(snapshot, GroupByState),
		FarmersByCrop:          GroupCount(snapshot, GroupByPrimaryCrop),
		FarmersByGender:        GroupCount(snapshot, GroupByGender),
		FarmersByFarmOwnership: GroupCount(snapshot, GroupByFarmOwnership),
		FarmersByFarmingSeason: GroupCount(snapshot, GroupByFarmingSeason),
	}
}
