package models

import "time"

// RegistrationSummary is the aggregated daily registration data persisted to
// the registration_summaries collection by the scheduler.
type RegistrationSummary struct {
	Date            time.Time      `bson:"date" json:"date"`
	TotalFarmers    int            `bson:"total_farmers" json:"total_farmers"`
	RegisteredToday int            `bson:"registered_today" json:"registered_today"`
	FarmersByState  map[string]int `bson:"farmers_by_state" json:"farmers_by_state"`
	FarmersByCrop   map[string]int `bson:"farmers_by_crop" json:"farmers_by_crop"`
	FarmersByGender map[string]int `bson:"farmers_by_gender" json:"farmers_by_gender"`
	CreatedAt       time.Time      `bson:"created_at" json:"created_at"`
}

// DashboardStats is the live aggregate view backing the dashboard charts.
type DashboardStats struct {
	TotalFarmers           int            `json:"totalFarmers"`
	FarmersByState         map[string]int `json:"farmersByState"`
	FarmersByCrop          map[string]int `json:"farmersByCrop"`
	FarmersByGender        map[string]int `json:"farmersByGender"`
	FarmersByFarmOwnership map[string]int `json:"farmersByFarmOwnership"`
	FarmersByFarmingSeason map[string]int `json:"farmersByFarmingSeason"`
}
