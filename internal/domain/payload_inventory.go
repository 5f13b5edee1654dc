package domain

type CreateItemCategoryRequest struct {
	CategoryTxt string `json:"categorytxt" validate:"required,min=2,max=100"`
}

type UpdateItemCategoryRequest struct {
	CategoryTxt *string `json:"categorytxt,omitempty" validate:"omitempty,min=2,max=100"`
}

type CreateItemRequest struct {
	ItemName       string `json:"item_name" validate:"required,min=2,max=150"`
	ItemCategoryID int64  `json:"item_category_id" validate:"required,min=1"`
	Price          Money  `json:"price" validate:"money"`
	Quantity       int    `json:"quantity" validate:"min=0"`
	Unit           string `json:"unit,omitempty" validate:"omitempty,max=20"`
}

type UpdateItemRequest struct {
	ItemName       *string `json:"item_name,omitempty" validate:"omitempty,min=2,max=150"`
	ItemCategoryID *int64  `json:"item_category_id,omitempty" validate:"omitempty,min=1"`
	Price          *Money  `json:"price,omitempty" validate:"omitempty,money"`
	Quantity       *int    `json:"quantity,omitempty" validate:"omitempty,min=0"`
	Unit           *string `json:"unit,omitempty" validate:"omitempty,max=20"`
}
