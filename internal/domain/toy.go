package domain

import "time"

type ToyCategory string

const (
	CategoryHelloKitty ToyCategory = "Hello Kitty"
	CategorySanrio     ToyCategory = "Sanrio"
	CategoryDisney     ToyCategory = "Disney"
	CategoryPokemon    ToyCategory = "Pokemon"
	CategoryOther      ToyCategory = "Other"
)

// ValidCategory reports whether c is one of the fixed catalog categories.
func ValidCategory(c ToyCategory) bool {
	switch c {
	case CategoryHelloKitty, CategorySanrio, CategoryDisney, CategoryPokemon, CategoryOther:
		return true
	}
	return false
}

// Toy is a catalog record for one plush/figurine product. Rating is
// denormalized: it is recomputed inside the same transaction as any review
// write and always equals the mean of Reviews[].Rating (0 when empty).
type Toy struct {
	ID          int64       `json:"id" gorm:"primaryKey"`
	Name        string      `json:"name" gorm:"not null"`
	Brand       string      `json:"brand" gorm:"not null;index"`
	Category    ToyCategory `json:"category" gorm:"not null;index"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Rating      float64     `json:"rating"`
	ImageURL    string      `json:"image"`
	CreatorID   int64       `json:"creator_id" gorm:"not null;index"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Creator *UserRef    `json:"creator,omitempty" gorm:"-"`
	Likes   []ToyLike   `json:"likes,omitempty" gorm:"foreignKey:ToyID"`
	Reviews []ToyReview `json:"reviews,omitempty" gorm:"foreignKey:ToyID"`
}

func (Toy) TableName() string { return "toys" }

type ToyLike struct {
	ID        int64     `json:"-" gorm:"primaryKey"`
	ToyID     int64     `json:"-" gorm:"not null;index;uniqueIndex:idx_toy_like"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex:idx_toy_like"`
	CreatedAt time.Time `json:"-"`
}

func (ToyLike) TableName() string { return "toy_likes" }

// ToyReview holds one user's review of a toy. The unique index enforces
// at most one review per user per toy; a later submission replaces it.
type ToyReview struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	ToyID     int64     `json:"toy_id" gorm:"not null;index;uniqueIndex:idx_toy_review"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex:idx_toy_review"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *UserRef `json:"user,omitempty" gorm:"-"`
}

func (ToyReview) TableName() string { return "toy_reviews" }
