package community

type CreatePostRequest struct {
	Title      string   `json:"title" binding:"required,max=200"`
	Content    string   `json:"content" binding:"required"`
	CategoryID *int64   `json:"category_id"`
	IsDraft    bool     `json:"is_draft"`
	Images     []string `json:"images" binding:"omitempty,max=10,dive,required"`
}

type UpdatePostRequest struct {
	Title      *string  `json:"title" binding:"omitempty,max=200"`
	Content    *string  `json:"content"`
	CategoryID *int64   `json:"category_id"`
	IsDraft    *bool    `json:"is_draft"`
	Images     []string `json:"images" binding:"omitempty,max=10,dive,required"`
}

type CreateCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID *int64 `json:"parent_id"`
}
