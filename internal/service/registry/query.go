package registry

import (
	"strconv"
	"strings"

	"github.com/mamadbah2/farmreg/internal/domain/models"
)

// FilterKey names an attribute that supports exact-match filtering. Keys are
// enumerated rather than free-form so filters cannot reference fields that
// do not exist.
type FilterKey string

const (
	FilterState         FilterKey = "state"
	FilterGender        FilterKey = "gender"
	FilterPrimaryCrop   FilterKey = "primaryCrop"
	FilterSecondaryCrop FilterKey = "secondaryCrop"
	FilterFarmingSeason FilterKey = "farmingSeason"
	FilterFarmOwnership FilterKey = "farmOwnership"
)

var filterAccessors = map[FilterKey]func(models.Farmer) string{
	FilterState:         func(f models.Farmer) string { return f.State },
	FilterGender:        func(f models.Farmer) string { return f.Gender },
	FilterPrimaryCrop:   func(f models.Farmer) string { return f.PrimaryCrop },
	FilterSecondaryCrop: func(f models.Farmer) string { return f.SecondaryCrop },
	FilterFarmingSeason: func(f models.Farmer) string { return f.FarmingSeason },
	FilterFarmOwnership: func(f models.Farmer) string { return f.FarmOwnership },
}

// searchAccessors lists the fields free-text search runs over.
var searchAccessors = []func(models.Farmer) string{
	func(f models.Farmer) string { return f.Firstname },
	func(f models.Farmer) string { return f.Middlename },
	func(f models.Farmer) string { return f.Lastname },
	func(f models.Farmer) string { return f.Phone },
	func(f models.Farmer) string { return f.NIN },
	func(f models.Farmer) string { return f.FarmerID },
	func(f models.Farmer) string { return f.Email },
}

// Criteria is the user-selected search and filter state. An empty search
// string and empty filter values mean "no constraint"; unknown filter keys
// are ignored.
type Criteria struct {
	Search  string
	Filters map[FilterKey]string

	// AgeMin and AgeMax are inclusive bounds parsed from string input.
	// Unparsable bounds are treated as unconstrained.
	AgeMin string
	AgeMax string
}

// Predicate compiles the criteria into a match function. A record matches
// when any searchable field contains the search term (case-insensitive) AND
// every active field filter matches exactly AND the age falls within the
// active bounds. With no active constraints every record matches.
func (c Criteria) Predicate() func(models.Farmer) bool {
	search := strings.ToLower(strings.TrimSpace(c.Search))
	ageMin, hasMin := parseBound(c.AgeMin)
	ageMax, hasMax := parseBound(c.AgeMax)

	return func(f models.Farmer) bool {
		if search != "" && !matchesSearch(f, search) {
			return false
		}

		for key, want := range c.Filters {
			if want == "" {
				continue
			}
			accessor, ok := filterAccessors[key]
			if !ok {
				continue
			}
			if accessor(f) != want {
				return false
			}
		}

		if hasMin || hasMax {
			age, err := strconv.Atoi(strings.TrimSpace(f.Age))
			if err != nil {
				return false
			}
			if hasMin && age < ageMin {
				return false
			}
			if hasMax && age > ageMax {
				return false
			}
		}

		return true
	}
}

// Apply filters the snapshot with the compiled predicate, preserving order.
func (c Criteria) Apply(snapshot []models.Farmer) []models.Farmer {
	predicate := c.Predicate()
	matched := make([]models.Farmer, 0, len(snapshot))
	for _, farmer := range snapshot {
		if predicate(farmer) {
			matched = append(matched, farmer)
		}
	}
	return matched
}

func matchesSearch(f models.Farmer, term string) bool {
	for _, accessor := range searchAccessors {
		if value := accessor(f); value != "" && strings.Contains(strings.ToLower(value), term) {
			return true
		}
	}
	return false
}

func parseBound(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	bound, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return bound, true
}
