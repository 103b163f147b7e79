package response

import (
	"yamdb-api/internal/data/entity"
)

// CatalogItemResponse covers both categories and genres
type CatalogItemResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func CategoryToResponse(category *entity.Category) CatalogItemResponse {
	return CatalogItemResponse{
		Name: category.Name,
		Slug: category.Slug,
	}
}

func GenreToResponse(genre *entity.Genre) CatalogItemResponse {
	return CatalogItemResponse{
		Name: genre.Name,
		Slug: genre.Slug,
	}
}
