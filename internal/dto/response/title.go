package response

import (
	"yamdb-api/internal/data/entity"
	"yamdb-api/internal/rating"
)

type TitleResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Year        int                   `json:"year"`
	Description *string               `json:"description,omitempty"`
	Category    *CatalogItemResponse  `json:"category"`
	Genres      []CatalogItemResponse `json:"genre"`
	// Rating is null until the title has at least one review
	Rating *int `json:"rating"`
}

// Helper converter; category may be nil, genres may be empty
func TitleToResponse(title *entity.Title, category *entity.Category, genres []*entity.Genre) TitleResponse {
	resp := TitleResponse{
		ID:          title.ID.String(),
		Name:        title.Name,
		Year:        title.Year,
		Description: title.Description,
		Genres:      make([]CatalogItemResponse, 0, len(genres)),
		Rating:      rating.FromAverage(title.Rating),
	}

	if category != nil {
		c := CategoryToResponse(category)
		resp.Category = &c
	}

	for _, genre := range genres {
		resp.Genres = append(resp.Genres, GenreToResponse(genre))
	}

	return resp
}
