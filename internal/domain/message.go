package domain

import "time"

// Message is immutable after send except for the IsRead flag; only the
// sender may delete it.
type Message struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	SenderID    int64     `json:"sender_id" gorm:"not null;index"`
	RecipientID int64     `json:"recipient_id" gorm:"not null;index"`
	Content     string    `json:"content" gorm:"not null"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`

	Sender    *UserRef `json:"sender,omitempty" gorm:"-"`
	Recipient *UserRef `json:"recipient,omitempty" gorm:"-"`
}

func (Message) TableName() string { return "messages" }
