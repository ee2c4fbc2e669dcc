package service

import (
	"Darugi/internal/api/dto"
	"Darugi/internal/model"
	"Darugi/internal/pkg/util"
	"Darugi/internal/repository"
	"context"
	log "log/slog"
	"strings"
)

type PostActionService interface {
	LikePost(ctx context.Context, postID uint64) (int64, error)
	SharePost(ctx context.Context, postID uint64) (int64, error)
	CreateComment(ctx context.Context, req *dto.CommentCreateDTO) (string, error)
}

type postActionServiceImpl struct {
	postRepo    repository.PostRepo
	commentRepo repository.CommentRepo
}

func NewPostActionService(postRepo repository.PostRepo, commentRepo repository.CommentRepo) PostActionService {
	return &postActionServiceImpl{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// LikePost 点赞数 +1，返回最新值
func (s *postActionServiceImpl) LikePost(ctx context.Context, postID uint64) (int64, error) {
	return s.increment(ctx, postID, model.CounterLikes)
}

// SharePost 分享数 +1，返回最新值
func (s *postActionServiceImpl) SharePost(ctx context.Context, postID uint64) (int64, error) {
	return s.increment(ctx, postID, model.CounterShares)
}

func (s *postActionServiceImpl) increment(ctx context.Context, postID uint64, column string) (int64, error) {
	if postID == 0 {
		return 0, ErrParamInvalid
	}
	n, err := s.postRepo.IncrementCounter(ctx, postID, column)
	if err != nil {
		return 0, notFoundOr(err)
	}
	return n, nil
}

// CreateComment 校验后写入评论，返回文章 slug 供跳转
// 以表单中的 slug 为准定位文章，post_id 仅作兼容
func (s *postActionServiceImpl) CreateComment(ctx context.Context, req *dto.CommentCreateDTO) (string, error) {
	author := strings.TrimSpace(req.Author)
	content := strings.TrimSpace(req.Content)
	if author == "" || content == "" {
		return "", ErrCommentRequired
	}

	post, err := s.postRepo.GetPostBySlug(ctx, util.NormalizeSlug(req.Slug))
	if err != nil {
		return "", notFoundOr(err)
	}
	if req.PostID != 0 && req.PostID != post.ID {
		log.WarnContext(ctx, "comment post_id does not match slug", "post_id", req.PostID, "slug", post.Slug)
	}

	comment := &model.Comment{
		PostID:  post.ID,
		Author:  author,
		Content: content,
	}
	if err = s.commentRepo.CreateComment(ctx, comment); err != nil {
		return "", err
	}
	return post.Slug, nil
}
