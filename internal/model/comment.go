package model

// Comment 文章评论，删除文章时不级联删除
type Comment struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	PostID    uint64 `gorm:"not null;index:idx_post_id" json:"post_id"`
	Author    string `gorm:"type:varchar(100);not null" json:"author"`
	Content   string `gorm:"type:text;not null" json:"content"`
	CreatedAt int64  `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}
