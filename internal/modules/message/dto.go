package message

type SendRequest struct {
	RecipientID int64  `json:"recipient_id" binding:"required,gt=0"`
	Content     string `json:"content" binding:"required,min=1,max=1000"`
}
