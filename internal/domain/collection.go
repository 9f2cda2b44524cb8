package domain

import "time"

type ContainerKind string

const (
	ContainerOwned     ContainerKind = "owned"
	ContainerWishlist  ContainerKind = "wishlist"
	ContainerFavorites ContainerKind = "favorites"
)

func ValidContainerKind(k ContainerKind) bool {
	switch k {
	case ContainerOwned, ContainerWishlist, ContainerFavorites:
		return true
	}
	return false
}

// CollectionItem is one membership row: user X keeps toy Y in container Z.
// The unique index enforces at-most-once membership per container.
// ToyID carries no foreign key on purpose: wishlist/favorites entries may
// reference toys that no longer exist, and reads skip such rows.
type CollectionItem struct {
	ID        int64         `json:"id" gorm:"primaryKey"`
	UserID    int64         `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_toy_kind"`
	ToyID     int64         `json:"toy_id" gorm:"not null;index;uniqueIndex:idx_user_toy_kind"`
	Kind      ContainerKind `json:"kind" gorm:"not null;uniqueIndex:idx_user_toy_kind"`
	CreatedAt time.Time     `json:"created_at"`
}

func (CollectionItem) TableName() string { return "collection_items" }

// CustomList is a user-defined named container. Name is unique per user
// (case-sensitive), not across users.
type CustomList struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_list_name"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex:idx_user_list_name"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`

	Items []CustomListItem `json:"items,omitempty" gorm:"foreignKey:ListID"`
}

func (CustomList) TableName() string { return "custom_lists" }

type CustomListItem struct {
	ID        int64     `json:"-" gorm:"primaryKey"`
	ListID    int64     `json:"-" gorm:"not null;index;uniqueIndex:idx_list_toy"`
	ToyID     int64     `json:"toy_id" gorm:"not null;uniqueIndex:idx_list_toy"`
	CreatedAt time.Time `json:"-"`
}

func (CustomListItem) TableName() string { return "custom_list_items" }
