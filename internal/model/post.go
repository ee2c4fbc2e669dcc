package model

type Post struct {
	ID        uint64  `gorm:"primaryKey" json:"id"`
	Title     string  `gorm:"type:varchar(255);not null" json:"title"`
	Slug      string  `gorm:"type:varchar(191);not null;uniqueIndex:uk_slug" json:"slug"`
	Excerpt   *string `gorm:"type:text" json:"excerpt"`
	Content   string  `gorm:"not null" json:"content"`
	Views     int64   `gorm:"not null;default:0" json:"views"`
	Likes     int64   `gorm:"not null;default:0" json:"likes"`
	Shares    int64   `gorm:"not null;default:0" json:"shares"`
	CreatedAt int64   `gorm:"not null;autoCreateTime;index:idx_created_at" json:"created_at"`
	UpdatedAt *int64  `gorm:"autoUpdateTime:false" json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}

// 计数器字段，仅允许自增
const (
	CounterViews  = "views"
	CounterLikes  = "likes"
	CounterShares = "shares"
)

// IsCounter 校验计数器列名
func IsCounter(column string) bool {
	switch column {
	case CounterViews, CounterLikes, CounterShares:
		return true
	}
	return false
}
