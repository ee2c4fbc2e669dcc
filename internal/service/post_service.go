package service

import (
	"Darugi/internal/api/dto"
	"Darugi/internal/model"
	"Darugi/internal/pkg/markdown"
	"Darugi/internal/pkg/util"
	"Darugi/internal/repository"
	"context"
	"errors"
	"fmt"
	"html/template"
	log "log/slog"
	"strings"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type PostService interface {
	ListPosts(ctx context.Context) ([]*dto.PostItemDTO, error)
	ViewPost(ctx context.Context, slug string) (*dto.PostView, error)
	GetPostForm(ctx context.Context, postID uint64) (*dto.PostFormView, error)
	SavePost(ctx context.Context, req *dto.PostSaveDTO) error
	DeletePost(ctx context.Context, postID uint64) error
}

type postServiceImpl struct {
	postDBRepo    repository.PostRepo
	commentDBRepo repository.CommentRepo
	md            markdown.Renderer
}

func NewPostService(postDBRepo repository.PostRepo, commentDBRepo repository.CommentRepo, md markdown.Renderer) PostService {
	return &postServiceImpl{
		postDBRepo:    postDBRepo,
		commentDBRepo: commentDBRepo,
		md:            md,
	}
}

// ListPosts 首页/站点地图使用的文章列表，最新的在前
func (s *postServiceImpl) ListPosts(ctx context.Context) ([]*dto.PostItemDTO, error) {
	posts, err := s.postDBRepo.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PostItemDTO, 0, len(posts))
	for _, post := range posts {
		item := &dto.PostItemDTO{}
		_ = copier.Copy(item, post)
		item.Summary = markdown.Excerpt(post.Excerpt, post.Content, markdown.DefaultExcerptLength)
		items = append(items, item)
	}
	return items, nil
}

// ViewPost 文章详情：浏览数 +1 后重新读取，保证页面展示的是自增后的值
func (s *postServiceImpl) ViewPost(ctx context.Context, slug string) (*dto.PostView, error) {
	post, err := s.postDBRepo.GetPostBySlug(ctx, util.NormalizeSlug(slug))
	if err != nil {
		return nil, notFoundOr(err)
	}

	if _, err = s.postDBRepo.IncrementCounter(ctx, post.ID, model.CounterViews); err != nil {
		return nil, notFoundOr(err)
	}
	post, err = s.postDBRepo.GetPostByID(ctx, post.ID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	body, err := s.md.Render(post.Content)
	if err != nil {
		log.ErrorContext(ctx, "render markdown error", "post_id", post.ID, "err", err)
		return nil, UnExpectedError
	}

	detail := &dto.PostDetailDTO{}
	_ = copier.Copy(detail, post)
	detail.Description = markdown.Excerpt(post.Excerpt, post.Content, markdown.DefaultExcerptLength)
	detail.HTML = template.HTML(body)

	comments, err := s.commentDBRepo.ListCommentsByPostID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	commentDTOs := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		item := &dto.CommentDTO{}
		_ = copier.Copy(item, comment)
		commentDTOs = append(commentDTOs, item)
	}

	return &dto.PostView{
		Post:     detail,
		Comments: commentDTOs,
	}, nil
}

// GetPostForm 编辑表单回填
func (s *postServiceImpl) GetPostForm(ctx context.Context, postID uint64) (*dto.PostFormView, error) {
	post, err := s.postDBRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	form := &dto.PostFormView{}
	_ = copier.Copy(form, post)
	if post.Excerpt != nil {
		form.Summary = *post.Excerpt
	}
	return form, nil
}

// SavePost 有 id 时更新，否则新建
func (s *postServiceImpl) SavePost(ctx context.Context, req *dto.PostSaveDTO) error {
	post := &model.Post{
		ID:      req.ID,
		Title:   strings.TrimSpace(req.Title),
		Slug:    util.NormalizeSlug(req.Slug),
		Excerpt: util.PtrString(req.Excerpt),
		Content: req.Content,
	}
	if post.Title == "" || post.Slug == "" || strings.TrimSpace(post.Content) == "" {
		return ErrParamInvalid
	}

	var err error
	if post.ID > 0 {
		err = s.postDBRepo.UpdatePost(ctx, post)
	} else {
		err = s.postDBRepo.CreatePost(ctx, post)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlugExists
	}
	if err != nil {
		return fmt.Errorf("save post %q: %w", post.Slug, err)
	}

	log.InfoContext(ctx, "post saved", "post_id", post.ID, "slug", post.Slug)
	return nil
}

// DeletePost 删除文章，评论不级联
func (s *postServiceImpl) DeletePost(ctx context.Context, postID uint64) error {
	if err := s.postDBRepo.DeletePost(ctx, postID); err != nil {
		return err
	}
	log.InfoContext(ctx, "post deleted", "post_id", postID)
	return nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPostNotFound
	}
	return err
}
