package profile

import "plushhub/internal/domain"

// PopulatedList is a custom list with its toy ids dereferenced into full
// toy records.
type PopulatedList struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	IsPublic  bool         `json:"is_public"`
	CreatedAt string       `json:"created_at"`
	Toys      []domain.Toy `json:"toys"`
}

type Profile struct {
	User       *domain.User    `json:"user"`
	Owned      []domain.Toy    `json:"owned_collection"`
	Wishlist   []domain.Toy    `json:"wishlist"`
	Favorites  []domain.Toy    `json:"favorites"`
	Lists      []PopulatedList `json:"custom_lists"`
	Followers  int64           `json:"followers_count"`
	Following  int64           `json:"following_count"`
}
