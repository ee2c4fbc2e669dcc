package boltdb

import (
	"Darugi/internal/model"
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.WithClock(func() time.Time { return time.Unix(100, 0) })
}

func newTestStore(t *testing.T) (*Store, *model.Post) {
	t.Helper()
	store := openTestStore(t, filepath.Join(t.TempDir(), "data", "darugi.db"))
	post := &model.Post{Title: "A", Slug: "a", Content: "# Hello"}
	require.NoError(t, store.CreatePost(context.Background(), post))
	return store, post
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestStore_CreateAndGetPost(t *testing.T) {
	store, post := newTestStore(t)
	ctx := context.Background()

	assert.Equal(t, uint64(1), post.ID)
	assert.Equal(t, int64(100), post.CreatedAt)
	assert.Nil(t, post.UpdatedAt)

	bySlug, err := store.GetPostBySlug(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, post.ID, bySlug.ID)
	assert.Equal(t, "# Hello", bySlug.Content)
	assert.Nil(t, bySlug.Excerpt)

	_, err = store.GetPostBySlug(ctx, "b")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = store.GetPostByID(ctx, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStore_CreatePost_DuplicateSlug(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	err := store.CreatePost(ctx, &model.Post{Title: "Other", Slug: "a", Content: "x"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	posts, err := store.ListPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestStore_ListPosts_NewestFirst(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreatePost(ctx, &model.Post{Title: "Later", Slug: "later", Content: "x", CreatedAt: 300}))
	require.NoError(t, store.CreatePost(ctx, &model.Post{Title: "Same", Slug: "same", Content: "x", CreatedAt: 100}))

	posts, err := store.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, []string{"later", "same", "a"}, []string{posts[0].Slug, posts[1].Slug, posts[2].Slug})
}

func TestStore_UpdatePost(t *testing.T) {
	store, post := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreatePost(ctx, &model.Post{Title: "B", Slug: "b", Content: "x"}))

	excerpt := "short"
	require.NoError(t, store.UpdatePost(ctx, &model.Post{ID: post.ID, Title: "A2", Slug: "a2", Excerpt: &excerpt, Content: "new"}))

	got, err := store.GetPostBySlug(ctx, "a2")
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Title)
	require.NotNil(t, got.Excerpt)
	assert.Equal(t, "short", *got.Excerpt)
	require.NotNil(t, got.UpdatedAt)
	assert.Equal(t, int64(100), got.CreatedAt)

	// 旧 slug 释放后可被新文章使用
	_, err = store.GetPostBySlug(ctx, "a")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, store.CreatePost(ctx, &model.Post{Title: "A again", Slug: "a", Content: "x"}))

	err = store.UpdatePost(ctx, &model.Post{ID: post.ID, Title: "A3", Slug: "b", Content: "x"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// 保持原 slug 不算冲突
	require.NoError(t, store.UpdatePost(ctx, &model.Post{ID: post.ID, Title: "A4", Slug: "a2", Content: "x"}))

	// 不存在的 id 静默忽略
	require.NoError(t, store.UpdatePost(ctx, &model.Post{ID: 999, Title: "x", Slug: "zzz", Content: "x"}))
	_, err = store.GetPostBySlug(ctx, "zzz")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStore_IncrementCounter(t *testing.T) {
	store, post := newTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		n, err := store.IncrementCounter(ctx, post.ID, model.CounterViews)
		require.NoError(t, err)
		assert.Equal(t, int64(i), n)
	}
	n, err := store.IncrementCounter(ctx, post.ID, model.CounterShares)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = store.IncrementCounter(ctx, 999, model.CounterLikes)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = store.IncrementCounter(ctx, post.ID, "title")
	assert.Error(t, err)
}

func TestStore_IncrementCounter_Concurrent(t *testing.T) {
	store, post := newTestStore(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.IncrementCounter(ctx, post.ID, model.CounterLikes)
		}()
	}
	wg.Wait()

	got, err := store.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), got.Likes)
}

func TestStore_Comments(t *testing.T) {
	store, post := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateComment(ctx, &model.Comment{PostID: post.ID, Author: "kim", Content: "first", CreatedAt: 10}))
	require.NoError(t, store.CreateComment(ctx, &model.Comment{PostID: post.ID, Author: "lee", Content: "second", CreatedAt: 20}))
	other := &model.Comment{PostID: post.ID + 1, Author: "park", Content: "elsewhere"}
	require.NoError(t, store.CreateComment(ctx, other))
	assert.Equal(t, uint64(3), other.ID)
	assert.Equal(t, int64(100), other.CreatedAt)

	comments, err := store.ListCommentsByPostID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Content)
	assert.Equal(t, "first", comments[1].Content)

	none, err := store.ListCommentsByPostID(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_DeletePost_KeepsComments(t *testing.T) {
	store, post := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateComment(ctx, &model.Comment{PostID: post.ID, Author: "kim", Content: "hi"}))

	require.NoError(t, store.DeletePost(ctx, post.ID))
	require.NoError(t, store.DeletePost(ctx, post.ID))

	_, err := store.GetPostByID(ctx, post.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = store.GetPostBySlug(ctx, "a")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	count, err := store.CommentCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "darugi.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	post := &model.Post{Title: "A", Slug: "a", Content: "x"}
	require.NoError(t, store.CreatePost(ctx, post))
	_, err = store.IncrementCounter(ctx, post.ID, model.CounterLikes)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened := openTestStore(t, path)
	got, err := reopened.GetPostBySlug(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Likes)

	// 序列号延续，id 不复用
	next := &model.Post{Title: "B", Slug: "b", Content: "x"}
	require.NoError(t, reopened.CreatePost(ctx, next))
	assert.Equal(t, post.ID+1, next.ID)
}

func TestStore_CanceledContext(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.ListPosts(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
