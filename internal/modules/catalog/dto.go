package catalog

import "plushhub/internal/domain"

type CreateToyRequest struct {
	Name        string  `json:"name" binding:"required"`
	Brand       string  `json:"brand" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"gte=0"`
	Image       string  `json:"image"`
}

type UpdateToyRequest struct {
	Name        string  `json:"name" binding:"required"`
	Brand       string  `json:"brand" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"gte=0"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment" binding:"required"`
}

// ListQuery carries the filter/sort/pagination knobs shared by the full
// listing and the available-toys view.
type ListQuery struct {
	Category string
	Brand    string
	SortBy   string
	Order    string
	Page     int
	PageSize int
}

type ToyPage struct {
	Items      []domain.Toy `json:"items"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
}

type LikeResult struct {
	Toy     *domain.Toy `json:"toy"`
	IsLiked bool        `json:"is_liked"`
}
