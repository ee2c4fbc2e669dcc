package memory

import (
	"Darugi/internal/model"
	"Darugi/internal/repository"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// Store 内存版存储，实现 PostRepo 与 CommentRepo，用于开发模式与测试。
// 错误语义与 gorm 实现保持一致（ErrRecordNotFound / ErrDuplicatedKey）。
type Store struct {
	mu            sync.RWMutex
	posts         map[uint64]*model.Post
	comments      map[uint64]*model.Comment
	nextPostID    uint64
	nextCommentID uint64
	now           func() time.Time
}

var (
	_ repository.PostRepo    = (*Store)(nil)
	_ repository.CommentRepo = (*Store)(nil)
)

// New 创建内存存储
func New() *Store {
	return &Store{
		posts:    make(map[uint64]*model.Post),
		comments: make(map[uint64]*model.Comment),
		now:      time.Now,
	}
}

// WithClock 替换时间源
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// === Post ===

func (s *Store) ListPosts(ctx context.Context) ([]*model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]*model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, clonePost(p))
	}
	repository.SortPosts(posts)
	return posts, nil
}

func (s *Store) GetPostBySlug(ctx context.Context, slug string) (*model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.posts {
		if p.Slug == slug {
			return clonePost(p), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *Store) GetPostByID(ctx context.Context, id uint64) (*model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return clonePost(p), nil
}

func (s *Store) CreatePost(ctx context.Context, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slugTaken(post.Slug, 0) {
		return fmt.Errorf("slug %q: %w", post.Slug, gorm.ErrDuplicatedKey)
	}

	s.nextPostID++
	post.ID = s.nextPostID
	post.Views, post.Likes, post.Shares = 0, 0, 0
	post.UpdatedAt = nil
	if post.CreatedAt == 0 {
		post.CreatedAt = s.now().Unix()
	}
	s.posts[post.ID] = clonePost(post)
	return nil
}

func (s *Store) UpdatePost(ctx context.Context, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.posts[post.ID]
	if !ok {
		// 与 UPDATE ... WHERE id = ? 一致：不存在时静默无操作
		return nil
	}
	if s.slugTaken(post.Slug, post.ID) {
		return fmt.Errorf("slug %q: %w", post.Slug, gorm.ErrDuplicatedKey)
	}

	now := s.now().Unix()
	existing.Title = post.Title
	existing.Slug = post.Slug
	existing.Excerpt = copyString(post.Excerpt)
	existing.Content = post.Content
	existing.UpdatedAt = &now
	post.UpdatedAt = &now
	return nil
}

func (s *Store) DeletePost(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.posts, id)
	return nil
}

func (s *Store) IncrementCounter(ctx context.Context, id uint64, column string) (int64, error) {
	if !model.IsCounter(column) {
		return 0, fmt.Errorf("unknown counter column %q", column)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	switch column {
	case model.CounterViews:
		p.Views++
		return p.Views, nil
	case model.CounterLikes:
		p.Likes++
		return p.Likes, nil
	default:
		p.Shares++
		return p.Shares, nil
	}
}

// === Comment ===

func (s *Store) CreateComment(ctx context.Context, comment *model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCommentID++
	comment.ID = s.nextCommentID
	if comment.CreatedAt == 0 {
		comment.CreatedAt = s.now().Unix()
	}
	c := *comment
	s.comments[c.ID] = &c
	return nil
}

func (s *Store) ListCommentsByPostID(ctx context.Context, postID uint64) ([]*model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := make([]*model.Comment, 0)
	for _, c := range s.comments {
		if c.PostID == postID {
			cc := *c
			comments = append(comments, &cc)
		}
	}
	repository.SortComments(comments)
	return comments, nil
}

// CommentCount 评论总数（包含已删除文章的孤儿评论）
func (s *Store) CommentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.comments)
}

func (s *Store) slugTaken(slug string, exceptID uint64) bool {
	for id, p := range s.posts {
		if id != exceptID && p.Slug == slug {
			return true
		}
	}
	return false
}

func clonePost(p *model.Post) *model.Post {
	out := &model.Post{}
	_ = copier.CopyWithOption(out, p, copier.Option{DeepCopy: true})
	return out
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
