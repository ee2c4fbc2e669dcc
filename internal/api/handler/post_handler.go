package handler

import (
	"Darugi/internal/api/dto"
	"Darugi/internal/pkg/response"
	"Darugi/internal/pkg/util"
	"Darugi/internal/pkg/view"
	"Darugi/internal/service"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
	view    *view.Renderer
}

func NewPostHandler(postSvc service.PostService, view *view.Renderer) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
		view:    view,
	}
}

// Home 首页文章列表
func (s *PostHandler) Home(c *gin.Context) {
	posts, err := s.postSvc.ListPosts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	render(c, s.view, view.PageHome, view.Page{
		Title: "Home",
		Path:  "/",
		Data: &dto.HomeView{Posts: posts, Total: len(posts)},
	})
}

// GetPost 文章详情，不存在时以 200 渲染 Not Found 页面
func (s *PostHandler) GetPost(c *gin.Context) {
	slug := c.Param("slug")

	post, err := s.postSvc.ViewPost(c.Request.Context(), slug)
	if errors.Is(err, service.ErrPostNotFound) {
		render(c, s.view, view.PageNotFound, view.Page{Title: "Not Found"})
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	render(c, s.view, view.PagePost, view.Page{
		Title:       post.Post.Title,
		Description: post.Post.Description,
		Path:        "/post/" + url.PathEscape(post.Post.Slug),
		Data:        post,
	})
}

// Policy 隐私政策
func (s *PostHandler) Policy(c *gin.Context) {
	render(c, s.view, view.PagePolicy, view.Page{
		Title: "Privacy Policy",
		Path:  "/policy",
		Data:  util.FormatDate(time.Now().Unix()),
	})
}

// NotFound 未匹配的路由
func (s *PostHandler) NotFound(c *gin.Context) {
	body, err := s.view.Render(view.PageNotFound, view.Page{Title: "Not Found"})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.HTML(c, http.StatusNotFound, body)
}
