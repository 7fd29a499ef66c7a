package models

// FarmerEdit is a partial update to a farmer record. Nil fields are left
// untouched by the merge; only set fields are written. Keys are enumerated
// here rather than accepted as free-form maps so an edit can never touch an
// unknown or nested field.
type FarmerEdit struct {
	Firstname       *string `json:"firstname,omitempty"`
	Middlename      *string `json:"middlename,omitempty"`
	Lastname        *string `json:"lastname,omitempty"`
	FarmerID        *string `json:"farmerID,omitempty"`
	Gender          *string `json:"gender,omitempty"`
	DateOfBirth     *string `json:"dateOfBirth,omitempty"`
	Age             *string `json:"age,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	WhatsappNumber  *string `json:"whatsappNumber,omitempty"`
	Email           *string `json:"email,omitempty"`
	State           *string `json:"state,omitempty"`
	LocalGovernment *string `json:"localGovernment,omitempty"`
	Address         *string `json:"address,omitempty"`
	PrimaryCrop     *string `json:"primaryCrop,omitempty"`
	SecondaryCrop   *string `json:"secondaryCrop,omitempty"`
	FarmOwnership   *string `json:"farmOwnership,omitempty"`
	FarmingSeason   *string `json:"farmingSeason,omitempty"`
	FarmSize        *string `json:"farmSize,omitempty"`
}

// Fields renders the set fields as a merge payload keyed by document field
// name.
func (e FarmerEdit) Fields() map[string]any {
	fields := make(map[string]any)
	set := func(key string, value *string) {
		if value != nil {
			fields[key] = *value
		}
	}

	set("firstname", e.Firstname)
	set("middlename", e.Middlename)
	set("lastname", e.Lastname)
	set("farmerID", e.FarmerID)
	set("gender", e.Gender)
	set("dateOfBirth", e.DateOfBirth)
	set("age", e.Age)
	set("phone", e.Phone)
	set("whatsappNumber", e.WhatsappNumber)
	set("email", e.Email)
	set("state", e.State)
	set("localGovernment", e.LocalGovernment)
	set("address", e.Address)
	set("primaryCrop", e.PrimaryCrop)
	set("secondaryCrop", e.SecondaryCrop)
	set("farmOwnership", e.FarmOwnership)
	set("farmingSeason", e.FarmingSeason)
	set("farmSize", e.FarmSize)
	return fields
}
