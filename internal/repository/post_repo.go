package repository

import (
	"Darugi/internal/model"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type PostRepo interface {
	ListPosts(ctx context.Context) ([]*model.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*model.Post, error)
	GetPostByID(ctx context.Context, id uint64) (*model.Post, error)
	CreatePost(ctx context.Context, post *model.Post) error
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id uint64) error
	IncrementCounter(ctx context.Context, id uint64, column string) (int64, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

// ListPosts 全量文章，按创建时间倒序
func (s *PostRepoImpl) ListPosts(ctx context.Context) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error
	return posts, err
}

func (s *PostRepoImpl) GetPostBySlug(ctx context.Context, slug string) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) GetPostByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	post.Views, post.Likes, post.Shares = 0, 0, 0
	post.UpdatedAt = nil
	return s.db.WithContext(ctx).Create(post).Error
}

// UpdatePost 全量覆盖标题、slug、摘要与正文，并刷新 updated_at
func (s *PostRepoImpl) UpdatePost(ctx context.Context, post *model.Post) error {
	now := time.Now().Unix()
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"title":      post.Title,
			"slug":       post.Slug,
			"excerpt":    post.Excerpt,
			"content":    post.Content,
			"updated_at": now,
		}).Error
	if err != nil {
		return err
	}
	post.UpdatedAt = &now
	return nil
}

// DeletePost 物理删除，评论保留
func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}

// IncrementCounter 单条 UPDATE 自增后回读最新值
func (s *PostRepoImpl) IncrementCounter(ctx context.Context, id uint64, column string) (int64, error) {
	if !model.IsCounter(column) {
		return 0, fmt.Errorf("unknown counter column %q", column)
	}

	res := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var counts []int64
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		Pluck(column, &counts).Error
	if err != nil {
		return 0, err
	}
	if len(counts) == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return counts[0], nil
}
