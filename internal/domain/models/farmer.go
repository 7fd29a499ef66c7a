package models

import "time"

// Farmer is a registered farmer document as stored in the farmers collection.
// Only the identity and name fields are required; everything else is captured
// opportunistically during or after registration.
type Farmer struct {
	ID       string `bson:"_id,omitempty" json:"id"`
	FarmerID string `bson:"farmerID,omitempty" json:"farmerID"`

	Firstname            string `bson:"firstname,omitempty" json:"firstname"`
	Middlename           string `bson:"middlename,omitempty" json:"middlename"`
	Lastname             string `bson:"lastname,omitempty" json:"lastname"`
	Gender               string `bson:"gender,omitempty" json:"gender"`
	DateOfBirth          string `bson:"dateOfBirth,omitempty" json:"dateOfBirth"`
	Age                  string `bson:"age,omitempty" json:"age"`
	MaritalStatus        string `bson:"maritalStatus,omitempty" json:"maritalStatus"`
	HighestQualification string `bson:"highestQualification,omitempty" json:"highestQualification"`
	Phone                string `bson:"phone,omitempty" json:"phone"`
	WhatsappNumber       string `bson:"whatsappNumber,omitempty" json:"whatsappNumber"`
	Email                string `bson:"email,omitempty" json:"email"`
	Address              string `bson:"address,omitempty" json:"address"`
	NIN                  string `bson:"nin,omitempty" json:"nin"`

	State           string `bson:"state,omitempty" json:"state"`
	LocalGovernment string `bson:"localGovernment,omitempty" json:"localGovernment"`
	Ward            string `bson:"ward,omitempty" json:"ward"`
	PollingUnit     string `bson:"pollingUnit,omitempty" json:"pollingUnit"`
	Latitude        string `bson:"latitude,omitempty" json:"latitude"`
	Longitude       string `bson:"longitude,omitempty" json:"longitude"`

	PrimaryCrop   string `bson:"primaryCrop,omitempty" json:"primaryCrop"`
	SecondaryCrop string `bson:"secondaryCrop,omitempty" json:"secondaryCrop"`
	FarmSize      string `bson:"farmSize,omitempty" json:"farmSize"`
	FarmingSeason string `bson:"farmingSeason,omitempty" json:"farmingSeason"`
	FarmOwnership string `bson:"farmOwnership,omitempty" json:"farmOwnership"`

	BankName      string `bson:"bankname,omitempty" json:"bankname"`
	AccountName   string `bson:"accountname,omitempty" json:"accountname"`
	AccountNumber string `bson:"accountnumber,omitempty" json:"accountnumber"`
	BVN           string `bson:"bvn,omitempty" json:"bvn"`

	// Agronomy sub-profiles are recorded after registration. A nil pointer
	// means "not yet recorded", which is distinct from an empty profile.
	Soil          *SoilProfile   `bson:"soil,omitempty" json:"soil,omitempty"`
	SoilChemistry *SoilChemistry `bson:"soilChemistry,omitempty" json:"soilChemistry,omitempty"`
	WaterDetails  *WaterProfile  `bson:"waterDetails,omitempty" json:"waterDetails,omitempty"`
	FarmDetails   *FarmDetails   `bson:"farmDetails,omitempty" json:"farmDetails,omitempty"`

	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt"`
}

// SoilProfile captures the field officer's soil assessment.
type SoilProfile struct {
	MoistureLevel string `bson:"moistureLevel,omitempty" json:"moistureLevel"`
	Fertility     string `bson:"fertility,omitempty" json:"fertility"`
	Health        string `bson:"health,omitempty" json:"health"`
}

// SoilChemistry captures laboratory soil chemistry measurements.
type SoilChemistry struct {
	Nitrogen   string `bson:"nitrogen,omitempty" json:"nitrogen"`
	Phosphorus string `bson:"phosphorus,omitempty" json:"phosphorus"`
	Potassium  string `bson:"potassium,omitempty" json:"potassium"`
	Carbon     string `bson:"carbon,omitempty" json:"carbon"`
	Atmosphere string `bson:"atmosphere,omitempty" json:"atmosphere"`
}

// WaterProfile captures the water quality assessment for the farm.
type WaterProfile struct {
	PH          string `bson:"ph,omitempty" json:"ph"`
	Salinity    string `bson:"salinity,omitempty" json:"salinity"`
	IonToxicity string `bson:"ionToxicity,omitempty" json:"ionToxicity"`
}

// FarmDetails captures land classification measurements.
type FarmDetails struct {
	LowLand string `bson:"lowLand,omitempty" json:"lowLand"`
	UpLand  string `bson:"upLand,omitempty" json:"upLand"`
}

// FullName renders the display name used on certificates and listings.
func (f Farmer) FullName() string {
	name := f.Lastname + ", " + f.Firstname
	if f.Middlename != "" {
		name += " " + f.Middlename
	}
	return name
}
