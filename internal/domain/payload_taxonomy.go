package domain

type CreateCategoryRequest struct {
	CategoryName string `json:"category_name" validate:"required,min=2,max=100"`
	Description  string `json:"description,omitempty" validate:"omitempty,max=500"`
	Image        string `json:"image,omitempty" validate:"omitempty,url"`
}

type UpdateCategoryRequest struct {
	CategoryName *string `json:"category_name,omitempty" validate:"omitempty,min=2,max=100"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Image        *string `json:"image,omitempty" validate:"omitempty,url"`
}

type CreateSubCategoryRequest struct {
	SubCategoryName string `json:"sub_category_name" validate:"required,min=2,max=100"`
	CategoryID      int64  `json:"category_id" validate:"required,min=1"`
	Description     string `json:"description,omitempty" validate:"omitempty,max=500"`
}

type UpdateSubCategoryRequest struct {
	SubCategoryName *string `json:"sub_category_name,omitempty" validate:"omitempty,min=2,max=100"`
	CategoryID      *int64  `json:"category_id,omitempty" validate:"omitempty,min=1"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

type CreateEventTypeRequest struct {
	EventTypeName string `json:"event_type_name" validate:"required,min=2,max=100"`
	Description   string `json:"description,omitempty" validate:"omitempty,max=500"`
}

type UpdateEventTypeRequest struct {
	EventTypeName *string `json:"event_type_name,omitempty" validate:"omitempty,min=2,max=100"`
	Description   *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

type CreateFAQRequest struct {
	Question string `json:"question" validate:"required,min=5,max=300"`
	Answer   string `json:"answer" validate:"required,min=2,max=2000"`
	Position int    `json:"position" validate:"min=0"`
}

type UpdateFAQRequest struct {
	Question *string `json:"question,omitempty" validate:"omitempty,min=5,max=300"`
	Answer   *string `json:"answer,omitempty" validate:"omitempty,min=2,max=2000"`
	Position *int    `json:"position,omitempty" validate:"omitempty,min=0"`
}

// CreateGlobalSearchRequest indexes an entity for the global search box.
type CreateGlobalSearchRequest struct {
	Keyword     string `json:"keyword" validate:"required,min=1,max=100"`
	Title       string `json:"title" validate:"required,min=1,max=200"`
	EntityType  string `json:"entity_type" validate:"required,oneof=event venue item design category"`
	EntityRefID int64  `json:"entity_ref_id" validate:"required,min=1"`
	URL         string `json:"url,omitempty" validate:"omitempty,max=500"`
}

type UpdateGlobalSearchRequest struct {
	Keyword     *string `json:"keyword,omitempty" validate:"omitempty,min=1,max=100"`
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	EntityType  *string `json:"entity_type,omitempty" validate:"omitempty,oneof=event venue item design category"`
	EntityRefID *int64  `json:"entity_ref_id,omitempty" validate:"omitempty,min=1"`
	URL         *string `json:"url,omitempty" validate:"omitempty,max=500"`
}
