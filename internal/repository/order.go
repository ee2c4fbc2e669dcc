package repository

import (
	"Darugi/internal/model"
	"sort"
)

// SortPosts 按 created_at DESC, id DESC 排序，与 SQL 实现的 ORDER BY 一致
func SortPosts(posts []*model.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt == posts[j].CreatedAt {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt > posts[j].CreatedAt
	})
}

// SortComments 同 SortPosts
func SortComments(comments []*model.Comment) {
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt == comments[j].CreatedAt {
			return comments[i].ID > comments[j].ID
		}
		return comments[i].CreatedAt > comments[j].CreatedAt
	})
}
