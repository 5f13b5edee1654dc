package domain

type CreateCountryRequest struct {
	CountryName string `json:"country_name" validate:"required,min=2,max=100"`
	ISOCode     string `json:"iso_code" validate:"required,len=2,alpha"`
	PhoneCode   string `json:"phone_code,omitempty" validate:"omitempty,max=6"`
}

type UpdateCountryRequest struct {
	CountryName *string `json:"country_name,omitempty" validate:"omitempty,min=2,max=100"`
	ISOCode     *string `json:"iso_code,omitempty" validate:"omitempty,len=2,alpha"`
	PhoneCode   *string `json:"phone_code,omitempty" validate:"omitempty,max=6"`
}

type CreateStateRequest struct {
	StateName string `json:"state_name" validate:"required,min=2,max=100"`
	CountryID int64  `json:"country_id" validate:"required,min=1"`
}

type UpdateStateRequest struct {
	StateName *string `json:"state_name,omitempty" validate:"omitempty,min=2,max=100"`
	CountryID *int64  `json:"country_id,omitempty" validate:"omitempty,min=1"`
}

type CreateCityRequest struct {
	CityName  string `json:"city_name" validate:"required,min=2,max=100"`
	StateID   int64  `json:"state_id" validate:"required,min=1"`
	CountryID int64  `json:"country_id" validate:"required,min=1"`
}

type UpdateCityRequest struct {
	CityName  *string `json:"city_name,omitempty" validate:"omitempty,min=2,max=100"`
	StateID   *int64  `json:"state_id,omitempty" validate:"omitempty,min=1"`
	CountryID *int64  `json:"country_id,omitempty" validate:"omitempty,min=1"`
}

type CreateVenueRequest struct {
	VenueName string `json:"venue_name" validate:"required,min=2,max=150"`
	Address   string `json:"address" validate:"required,min=5,max=300"`
	CityID    int64  `json:"city_id" validate:"required,min=1"`
	Capacity  int    `json:"capacity" validate:"required,min=1"`
}

type UpdateVenueRequest struct {
	VenueName *string `json:"venue_name,omitempty" validate:"omitempty,min=2,max=150"`
	Address   *string `json:"address,omitempty" validate:"omitempty,min=5,max=300"`
	CityID    *int64  `json:"city_id,omitempty" validate:"omitempty,min=1"`
	Capacity  *int    `json:"capacity,omitempty" validate:"omitempty,min=1"`
}
