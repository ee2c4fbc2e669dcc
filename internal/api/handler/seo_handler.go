package handler

import (
	"Darugi/internal/api/config"
	"Darugi/internal/pkg/response"
	"Darugi/internal/pkg/seo"
	"Darugi/internal/service"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zeebo/blake3"
)

type SeoHandler struct {
	postSvc service.PostService
	site    config.SiteConfig
}

func NewSeoHandler(postSvc service.PostService, site config.SiteConfig) *SeoHandler {
	return &SeoHandler{
		postSvc: postSvc,
		site:    site,
	}
}

func (s *SeoHandler) entries(c *gin.Context) ([]seo.Entry, error) {
	posts, err := s.postSvc.ListPosts(c.Request.Context())
	if err != nil {
		return nil, err
	}
	entries := make([]seo.Entry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, seo.Entry{
			Title:       p.Title,
			Slug:        p.Slug,
			Description: p.Summary,
			CreatedAt:   p.CreatedAt,
		})
	}
	return entries, nil
}

// Sitemap /sitemap.xml
func (s *SeoHandler) Sitemap(c *gin.Context) {
	entries, err := s.entries(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	body, err := seo.Sitemap(s.site.BaseURL, entries)
	if err != nil {
		response.Error(c, err)
		return
	}
	writeTagged(c, "application/xml; charset=utf-8", body)
}

// Robots /robots.txt
func (s *SeoHandler) Robots(c *gin.Context) {
	writeTagged(c, "text/plain; charset=utf-8", seo.Robots(s.site.BaseURL))
}

// Feed /rss.xml
func (s *SeoHandler) Feed(c *gin.Context) {
	entries, err := s.entries(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	body, err := seo.Feed(s.site.BaseURL, s.site.Name, s.site.Description, s.site.Locale, entries)
	if err != nil {
		response.Error(c, err)
		return
	}
	writeTagged(c, "application/rss+xml; charset=utf-8", body)
}

// ContentETag 内容的弱 ETag（BLAKE3 前 16 字节），gzip 与原文两种编码共用同一个标签
func ContentETag(body []byte) string {
	sum := blake3.Sum256(body)
	return `W/"` + hex.EncodeToString(sum[:16]) + `"`
}

// writeTagged 带 ETag 写出，If-None-Match 命中时返回 304
func writeTagged(c *gin.Context, contentType string, body []byte) {
	etag := ContentETag(body)
	c.Header("ETag", etag)
	c.Header("Cache-Control", "public, max-age=0, must-revalidate")
	if etagMatches(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, contentType, body)
}

// etagMatches If-None-Match 使用弱比较
func etagMatches(header, etag string) bool {
	etag = strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}
