package domain

import "time"

// Follow is a single directed edge: follower follows followee. Storing the
// edge once keeps the followers/following views of both users consistent
// without a cross-document write pair.
type Follow struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	FollowerID int64     `json:"follower_id" gorm:"not null;index;uniqueIndex:idx_follow_edge"`
	FolloweeID int64     `json:"followee_id" gorm:"not null;index;uniqueIndex:idx_follow_edge"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Follow) TableName() string { return "follows" }
