package dto

// CommentCreateDTO 评论表单，author/content 的必填校验在 service 中完成
type CommentCreateDTO struct {
	PostID  uint64 `form:"post_id"`
	Slug    string `form:"slug" binding:"required"`
	Author  string `form:"author" binding:"max=100"`
	Content string `form:"content" binding:"max=5000"`
}

// CounterDTO 点赞/分享接口返回
type CounterDTO struct {
	Likes  *int64 `json:"likes,omitempty"`
	Shares *int64 `json:"shares,omitempty"`
}
