package photo

import "plushhub/internal/domain"

type PhotoPage struct {
	Items      []domain.Photo `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
}

type LikeResult struct {
	IsLiked    bool `json:"is_liked"`
	LikesCount int  `json:"likes_count"`
}
