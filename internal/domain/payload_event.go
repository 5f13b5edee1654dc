package domain

import "time"

type CreateEventRequest struct {
	EventName   string    `json:"event_name" validate:"required,min=3,max=200"`
	Description string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	CategoryID  int64     `json:"category_id" validate:"required,min=1"`
	EventTypeID int64     `json:"event_type_id,omitempty" validate:"omitempty,min=1"`
	CityID      int64     `json:"city_id" validate:"required,min=1"`
	VenueID     int64     `json:"venue_id,omitempty" validate:"omitempty,min=1"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
	Capacity    int       `json:"capacity" validate:"required,min=1"`
	BannerImage string    `json:"banner_image,omitempty" validate:"omitempty,url"`
}

type UpdateEventRequest struct {
	EventName   *string    `json:"event_name,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	CategoryID  *int64     `json:"category_id,omitempty" validate:"omitempty,min=1"`
	EventTypeID *int64     `json:"event_type_id,omitempty" validate:"omitempty,min=1"`
	CityID      *int64     `json:"city_id,omitempty" validate:"omitempty,min=1"`
	VenueID     *int64     `json:"venue_id,omitempty" validate:"omitempty,min=1"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Capacity    *int       `json:"capacity,omitempty" validate:"omitempty,min=1"`
	BannerImage *string    `json:"banner_image,omitempty" validate:"omitempty,url"`
}

type CreateEventAmenityRequest struct {
	EventID     int64  `json:"event_id" validate:"required,min=1"`
	AmenityName string `json:"amenity_name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
	Icon        string `json:"icon,omitempty" validate:"omitempty,max=100"`
}

type UpdateEventAmenityRequest struct {
	EventID     *int64  `json:"event_id,omitempty" validate:"omitempty,min=1"`
	AmenityName *string `json:"amenity_name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Icon        *string `json:"icon,omitempty" validate:"omitempty,max=100"`
}

type CreateEventEntryTicketRequest struct {
	EventID    int64    `json:"event_id" validate:"required,min=1"`
	TicketName string   `json:"ticket_name" validate:"required,min=2,max=100"`
	Price      Money    `json:"price" validate:"money"`
	Quantity   int      `json:"quantity" validate:"required,min=1"`
	Benefits   []string `json:"benefits,omitempty" validate:"omitempty,max=20,dive,min=1,max=200"`
}

type UpdateEventEntryTicketRequest struct {
	EventID    *int64   `json:"event_id,omitempty" validate:"omitempty,min=1"`
	TicketName *string  `json:"ticket_name,omitempty" validate:"omitempty,min=2,max=100"`
	Price      *Money   `json:"price,omitempty" validate:"omitempty,money"`
	Quantity   *int     `json:"quantity,omitempty" validate:"omitempty,min=1"`
	Benefits   []string `json:"benefits,omitempty" validate:"omitempty,max=20,dive,min=1,max=200"`
}

// SetupItem is one line of an event setup requirement.
type SetupItem struct {
	ItemID   int64  `json:"item_id" validate:"required,min=1"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Note     string `json:"note,omitempty" validate:"omitempty,max=200"`
}

type CreateEventSetupRequirementRequest struct {
	EventID     int64       `json:"event_id" validate:"required,min=1"`
	Requirement string      `json:"requirement" validate:"required,min=2,max=200"`
	Items       []SetupItem `json:"items" validate:"required,min=1,dive"`
}

type UpdateEventSetupRequirementRequest struct {
	EventID     *int64      `json:"event_id,omitempty" validate:"omitempty,min=1"`
	Requirement *string     `json:"requirement,omitempty" validate:"omitempty,min=2,max=200"`
	Items       []SetupItem `json:"items,omitempty" validate:"omitempty,dive"`
}

type CreateTicketRequest struct {
	EventID             int64  `json:"event_id" validate:"required,min=1"`
	EventEntryTicketsID int64  `json:"event_entry_tickets_id" validate:"required,min=1"`
	Quantity            int    `json:"quantity" validate:"required,min=1,max=50"`
	TotalAmount         Money  `json:"total_amount" validate:"money"`
	AttendeeName        string `json:"attendee_name" validate:"required,min=2,max=100"`
	AttendeeEmail       string `json:"attendee_email" validate:"required,email"`
}

type UpdateTicketRequest struct {
	Quantity      *int    `json:"quantity,omitempty" validate:"omitempty,min=1,max=50"`
	TotalAmount   *Money  `json:"total_amount,omitempty" validate:"omitempty,money"`
	AttendeeName  *string `json:"attendee_name,omitempty" validate:"omitempty,min=2,max=100"`
	AttendeeEmail *string `json:"attendee_email,omitempty" validate:"omitempty,email"`
}

type CreateReviewRequest struct {
	EventID int64  `json:"event_id" validate:"required,min=1"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}
