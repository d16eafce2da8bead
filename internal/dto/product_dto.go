package dto

import "github.com/shopspring/decimal"

// CreateProductRequest uses pointers so the service can distinguish missing
// fields from zero values when validating (same messages as the admin UI shows).
type CreateProductRequest struct {
	Category    string           `json:"category"`
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	MinStock    *int             `json:"minStock"`
	MaxStock    *int             `json:"maxStock"`
	Image       string           `json:"image"`
}

type UpdateProductRequest struct {
	Category    *string          `json:"category"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	MinStock    *int             `json:"minStock"`
	MaxStock    *int             `json:"maxStock"`
	Image       *string          `json:"image"`
}

type ProductResponse struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"minStock"`
	MaxStock    int             `json:"maxStock"`
	Image       string          `json:"image,omitempty"`
	CreatedAt   string          `json:"createdAt"`
}

// UploadImageResponse is returned by POST /api/products/upload.
type UploadImageResponse struct {
	URL     string `json:"url"`
	Mensaje string `json:"mensaje"`
}
