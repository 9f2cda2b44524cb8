package collection

type AddItemRequest struct {
	ToyID int64 `json:"toy_id" binding:"required,gt=0"`
}

type CreateListRequest struct {
	Name     string `json:"name" binding:"required"`
	ToyID    int64  `json:"toy_id,omitempty"`
	IsPublic bool   `json:"is_public,omitempty"`
}
