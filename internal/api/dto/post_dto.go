package dto

import "html/template"

// PostItemDTO 列表页中的一条文章
type PostItemDTO struct {
	ID        uint64
	Title     string
	Slug      string
	Summary   string
	Views     int64
	CreatedAt int64
	UpdatedAt *int64
}

// PostDetailDTO 文章详情页
type PostDetailDTO struct {
	ID          uint64
	Title       string
	Slug        string
	Description string
	Views       int64
	Likes       int64
	Shares      int64
	CreatedAt   int64
	HTML        template.HTML
}

// CommentDTO 评论展示
type CommentDTO struct {
	ID        uint64
	Author    string
	Content   string
	CreatedAt int64
}

// HomeView 首页
type HomeView struct {
	Posts []*PostItemDTO
	Total int
}

// PostView 详情页：文章 + 评论
type PostView struct {
	Post     *PostDetailDTO
	Comments []*CommentDTO
}

// PostFormView 后台新建/编辑表单
type PostFormView struct {
	ID      uint64
	Title   string
	Slug    string
	Summary string
	Content string
}

// IsEdit 是否为编辑已有文章
func (v *PostFormView) IsEdit() bool {
	return v != nil && v.ID > 0
}

// PostSaveDTO 后台保存表单
type PostSaveDTO struct {
	ID      uint64 `form:"id"`
	Title   string `form:"title" binding:"required,max=255"`
	Slug    string `form:"slug" binding:"required,max=191,slug"`
	Excerpt string `form:"excerpt" binding:"max=1000"`
	Content string `form:"content" binding:"required"`
}
