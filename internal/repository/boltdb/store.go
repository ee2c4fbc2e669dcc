// Package boltdb 基于 bbolt 的单文件存储，记录以 msgpack 编码。
//
// 桶布局：
//
//	posts    id(8B) -> postRecord
//	slugs    slug   -> id(8B)
//	comments postID(8B)|commentID(8B) -> commentRecord
//
// 评论键以文章 id 为前缀，按文章读取时只需前缀扫描。
package boltdb

import (
	"Darugi/internal/model"
	"Darugi/internal/repository"
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	bolt "go.etcd.io/bbolt"
	"gorm.io/gorm"
)

const (
	BucketPosts    = "posts"
	BucketSlugs    = "slugs"
	BucketComments = "comments"
)

func allBuckets() []string {
	return []string{BucketPosts, BucketSlugs, BucketComments}
}

type postRecord struct {
	ID        uint64  `msgpack:"id"`
	Title     string  `msgpack:"title"`
	Slug      string  `msgpack:"slug"`
	Excerpt   *string `msgpack:"excerpt,omitempty"`
	Content   string  `msgpack:"content"`
	Views     int64   `msgpack:"views"`
	Likes     int64   `msgpack:"likes"`
	Shares    int64   `msgpack:"shares"`
	CreatedAt int64   `msgpack:"created_at"`
	UpdatedAt *int64  `msgpack:"updated_at,omitempty"`
}

type commentRecord struct {
	ID        uint64 `msgpack:"id"`
	PostID    uint64 `msgpack:"post_id"`
	Author    string `msgpack:"author"`
	Content   string `msgpack:"content"`
	CreatedAt int64  `msgpack:"created_at"`
}

// Store 实现 PostRepo 与 CommentRepo，错误语义与 gorm 实现一致
type Store struct {
	db  *bolt.DB
	now func() time.Time
}

var (
	_ repository.PostRepo    = (*Store)(nil)
	_ repository.CommentRepo = (*Store)(nil)
)

// Open 打开或创建数据文件并初始化桶
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("bolt store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout:      5 * time.Second,
		FreelistType: bolt.FreelistArrayType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open BoltDB: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err = s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// WithClock 替换时间源
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Close 关闭数据文件
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range allBuckets() {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
}

// === Post ===

func (s *Store) ListPosts(ctx context.Context) ([]*model.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var posts []*model.Post
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketPosts)).ForEach(func(_, v []byte) error {
			var rec postRecord
			if err := msgpack.Unmarshal(v, &rec); err != nil {
				return err
			}
			posts = append(posts, rec.toModel())
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	repository.SortPosts(posts)
	return posts, nil
}

func (s *Store) GetPostBySlug(ctx context.Context, slug string) (*model.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var post *model.Post
	err := s.db.View(func(tx *bolt.Tx) error {
		id := tx.Bucket([]byte(BucketSlugs)).Get([]byte(slug))
		if id == nil {
			return gorm.ErrRecordNotFound
		}
		rec, err := getPost(tx, id)
		if err != nil {
			return err
		}
		post = rec.toModel()
		return nil
	})
	return post, err
}

func (s *Store) GetPostByID(ctx context.Context, id uint64) (*model.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var post *model.Post
	err := s.db.View(func(tx *bolt.Tx) error {
		rec, err := getPost(tx, itob(id))
		if err != nil {
			return err
		}
		post = rec.toModel()
		return nil
	})
	return post, err
}

func (s *Store) CreatePost(ctx context.Context, post *model.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		slugs := tx.Bucket([]byte(BucketSlugs))
		if slugs.Get([]byte(post.Slug)) != nil {
			return fmt.Errorf("slug %q: %w", post.Slug, gorm.ErrDuplicatedKey)
		}

		posts := tx.Bucket([]byte(BucketPosts))
		id, err := posts.NextSequence()
		if err != nil {
			return err
		}
		rec := postRecord{
			ID:        id,
			Title:     post.Title,
			Slug:      post.Slug,
			Excerpt:   post.Excerpt,
			Content:   post.Content,
			CreatedAt: post.CreatedAt,
		}
		if rec.CreatedAt == 0 {
			rec.CreatedAt = s.now().Unix()
		}
		if err = putPost(tx, &rec); err != nil {
			return err
		}
		if err = slugs.Put([]byte(rec.Slug), itob(id)); err != nil {
			return err
		}

		post.ID = id
		post.CreatedAt = rec.CreatedAt
		post.Views, post.Likes, post.Shares = 0, 0, 0
		post.UpdatedAt = nil
		return nil
	})
}

func (s *Store) UpdatePost(ctx context.Context, post *model.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		key := itob(post.ID)
		rec, err := getPost(tx, key)
		if err != nil {
			// 与 UPDATE ... WHERE id = ? 一致：不存在时静默无操作
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		slugs := tx.Bucket([]byte(BucketSlugs))
		if owner := slugs.Get([]byte(post.Slug)); owner != nil && !bytes.Equal(owner, key) {
			return fmt.Errorf("slug %q: %w", post.Slug, gorm.ErrDuplicatedKey)
		}
		if rec.Slug != post.Slug {
			if err = slugs.Delete([]byte(rec.Slug)); err != nil {
				return err
			}
			if err = slugs.Put([]byte(post.Slug), key); err != nil {
				return err
			}
		}

		now := s.now().Unix()
		rec.Title = post.Title
		rec.Slug = post.Slug
		rec.Excerpt = post.Excerpt
		rec.Content = post.Content
		rec.UpdatedAt = &now
		if err = putPost(tx, rec); err != nil {
			return err
		}
		post.UpdatedAt = &now
		return nil
	})
}

func (s *Store) DeletePost(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		key := itob(id)
		rec, err := getPost(tx, key)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err = tx.Bucket([]byte(BucketSlugs)).Delete([]byte(rec.Slug)); err != nil {
			return err
		}
		return tx.Bucket([]byte(BucketPosts)).Delete(key)
	})
}

func (s *Store) IncrementCounter(ctx context.Context, id uint64, column string) (int64, error) {
	if !model.IsCounter(column) {
		return 0, fmt.Errorf("unknown counter column %q", column)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var n int64
	err := s.db.Update(func(tx *bolt.Tx) error {
		rec, err := getPost(tx, itob(id))
		if err != nil {
			return err
		}
		switch column {
		case model.CounterViews:
			rec.Views++
			n = rec.Views
		case model.CounterLikes:
			rec.Likes++
			n = rec.Likes
		default:
			rec.Shares++
			n = rec.Shares
		}
		return putPost(tx, rec)
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// === Comment ===

func (s *Store) CreateComment(ctx context.Context, comment *model.Comment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(BucketComments))
		id, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		rec := commentRecord{
			ID:        id,
			PostID:    comment.PostID,
			Author:    comment.Author,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		}
		if rec.CreatedAt == 0 {
			rec.CreatedAt = s.now().Unix()
		}
		data, err := msgpack.Marshal(&rec)
		if err != nil {
			return err
		}
		if err = bucket.Put(commentKey(rec.PostID, rec.ID), data); err != nil {
			return err
		}
		comment.ID = rec.ID
		comment.CreatedAt = rec.CreatedAt
		return nil
	})
}

func (s *Store) ListCommentsByPostID(ctx context.Context, postID uint64) ([]*model.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	comments := make([]*model.Comment, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		prefix := itob(postID)
		c := tx.Bucket([]byte(BucketComments)).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var rec commentRecord
			if err := msgpack.Unmarshal(v, &rec); err != nil {
				return err
			}
			comments = append(comments, &model.Comment{
				ID:        rec.ID,
				PostID:    rec.PostID,
				Author:    rec.Author,
				Content:   rec.Content,
				CreatedAt: rec.CreatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	repository.SortComments(comments)
	return comments, nil
}

// CommentCount 评论总数（包含已删除文章的孤儿评论）
func (s *Store) CommentCount() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(BucketComments)).Stats().KeyN
		return nil
	})
	return n, err
}

func getPost(tx *bolt.Tx, key []byte) (*postRecord, error) {
	data := tx.Bucket([]byte(BucketPosts)).Get(key)
	if data == nil {
		return nil, gorm.ErrRecordNotFound
	}
	var rec postRecord
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode post: %w", err)
	}
	return &rec, nil
}

func putPost(tx *bolt.Tx, rec *postRecord) error {
	data, err := msgpack.Marshal(rec)
	if err != nil {
		return err
	}
	return tx.Bucket([]byte(BucketPosts)).Put(itob(rec.ID), data)
}

func (r *postRecord) toModel() *model.Post {
	return &model.Post{
		ID:        r.ID,
		Title:     r.Title,
		Slug:      r.Slug,
		Excerpt:   r.Excerpt,
		Content:   r.Content,
		Views:     r.Views,
		Likes:     r.Likes,
		Shares:    r.Shares,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// itob 大端编码，保证键按 id 有序
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func commentKey(postID, commentID uint64) []byte {
	return append(itob(postID), itob(commentID)...)
}
