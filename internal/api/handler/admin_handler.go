package handler

import (
	"Darugi/internal/api/dto"
	"Darugi/internal/pkg/response"
	"Darugi/internal/pkg/util"
	"Darugi/internal/pkg/view"
	"Darugi/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const adminPath = "/admin"

type AdminHandler struct {
	postSvc service.PostService
	view    *view.Renderer
}

func NewAdminHandler(postSvc service.PostService, view *view.Renderer) *AdminHandler {
	return &AdminHandler{
		postSvc: postSvc,
		view:    view,
	}
}

// Dashboard 后台文章列表
func (s *AdminHandler) Dashboard(c *gin.Context) {
	posts, err := s.postSvc.ListPosts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	render(c, s.view, view.PageAdminDashboard, view.Page{
		Title: "Admin Dashboard",
		Path:  adminPath,
		Data:  &dto.HomeView{Posts: posts, Total: len(posts)},
	})
}

// NewPost 空白表单
func (s *AdminHandler) NewPost(c *gin.Context) {
	render(c, s.view, view.PageAdminForm, view.Page{
		Title: "New Post",
		Path:  adminPath + "/new",
		Data:  &dto.PostFormView{},
	})
}

// EditPost 回填表单，文章不存在时回到后台首页
func (s *AdminHandler) EditPost(c *gin.Context) {
	postID, ok := util.ParseID(c.Param("id"))
	if !ok {
		c.Redirect(http.StatusFound, adminPath)
		return
	}

	form, err := s.postSvc.GetPostForm(c.Request.Context(), postID)
	if errors.Is(err, service.ErrPostNotFound) {
		c.Redirect(http.StatusFound, adminPath)
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	render(c, s.view, view.PageAdminForm, view.Page{
		Title: "Edit Post",
		Path:  c.Request.URL.Path,
		Data:  form,
	})
}

// SavePost 新建或更新
func (s *AdminHandler) SavePost(c *gin.Context) {
	var req dto.PostSaveDTO
	if err := c.ShouldBind(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if err := s.postSvc.SavePost(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusFound, adminPath)
}

// DeletePost 删除后回到后台首页
func (s *AdminHandler) DeletePost(c *gin.Context) {
	postID, ok := util.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.postSvc.DeletePost(c.Request.Context(), postID); err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusFound, adminPath)
}
