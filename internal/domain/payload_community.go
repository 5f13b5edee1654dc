package domain

type CreateCommunityDesignRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=150"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	ImageURL    string   `json:"image_url" validate:"required,url"`
	Tags        []string `json:"tags,omitempty" validate:"omitempty,max=10,dive,min=1,max=30"`
}

type UpdateCommunityDesignRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=3,max=150"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	ImageURL    *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	Tags        []string `json:"tags,omitempty" validate:"omitempty,max=10,dive,min=1,max=30"`
}

type CreateCommunityDesignLikeRequest struct {
	CommunityDesignsID int64 `json:"community_designs_id" validate:"required,min=1"`
}

// UpdateCommunityDesignLikeRequest is empty: a like is only ever created or
// removed, together with the design's counter.
type UpdateCommunityDesignLikeRequest struct{}

type CreateContactEnquiryRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,e164"`
	Subject string `json:"subject" validate:"required,min=2,max=200"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

type UpdateContactEnquiryRequest struct {
	Subject  *string `json:"subject,omitempty" validate:"omitempty,min=2,max=200"`
	Message  *string `json:"message,omitempty" validate:"omitempty,min=10,max=5000"`
	Resolved *bool   `json:"resolved,omitempty"`
}
