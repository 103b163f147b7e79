package request

// CreateCatalogItemRequest covers both categories and genres
type CreateCatalogItemRequest struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}
