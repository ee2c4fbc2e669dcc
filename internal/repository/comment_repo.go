package repository

import (
	"Darugi/internal/model"
	"context"

	"gorm.io/gorm"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	ListCommentsByPostID(ctx context.Context, postID uint64) ([]*model.Comment, error)
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db}
}

func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

// ListCommentsByPostID 文章下全部评论，最新的在前
func (s *CommentRepoImpl) ListCommentsByPostID(ctx context.Context, postID uint64) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	return comments, err
}
