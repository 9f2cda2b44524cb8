package domain

import "time"

// Photo is a user-contributed picture of a toy they own. Deletable by the
// uploader or an admin; deletion also releases the stored image.
type Photo struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	ToyID       int64     `json:"toy_id" gorm:"not null;index"`
	UploaderID  int64     `json:"uploader_id" gorm:"not null;index"`
	ImageURL    string    `json:"image" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	Uploader *UserRef    `json:"uploader,omitempty" gorm:"-"`
	Likes    []PhotoLike `json:"likes,omitempty" gorm:"foreignKey:PhotoID"`
}

func (Photo) TableName() string { return "photos" }

type PhotoLike struct {
	ID        int64     `json:"-" gorm:"primaryKey"`
	PhotoID   int64     `json:"-" gorm:"not null;index;uniqueIndex:idx_photo_like"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex:idx_photo_like"`
	CreatedAt time.Time `json:"-"`
}

func (PhotoLike) TableName() string { return "photo_likes" }
