package handler

import (
	"Darugi/internal/api/dto"
	"Darugi/internal/pkg/response"
	"Darugi/internal/pkg/util"
	"Darugi/internal/service"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

type PostActionHandler struct {
	actionSvc service.PostActionService
}

func NewPostActionHandler(actionSvc service.PostActionService) *PostActionHandler {
	return &PostActionHandler{
		actionSvc: actionSvc,
	}
}

// LikePost 点赞，返回 {"likes": n}
func (s *PostActionHandler) LikePost(c *gin.Context) {
	postID, ok := util.ParseID(c.Param("id"))
	if !ok {
		response.JSONError(c, service.ErrParamInvalid)
		return
	}

	likes, err := s.actionSvc.LikePost(c.Request.Context(), postID)
	if err != nil {
		response.JSONError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.CounterDTO{Likes: &likes})
}

// SharePost 分享，返回 {"shares": n}
func (s *PostActionHandler) SharePost(c *gin.Context) {
	postID, ok := util.ParseID(c.Param("id"))
	if !ok {
		response.JSONError(c, service.ErrParamInvalid)
		return
	}

	shares, err := s.actionSvc.SharePost(c.Request.Context(), postID)
	if err != nil {
		response.JSONError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.CounterDTO{Shares: &shares})
}

// CreateComment 表单提交评论，成功后跳回文章评论区
func (s *PostActionHandler) CreateComment(c *gin.Context) {
	var req dto.CommentCreateDTO
	if err := c.ShouldBind(&req); err != nil {
		response.BindError(c, err)
		return
	}

	slug, err := s.actionSvc.CreateComment(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/post/"+url.PathEscape(slug)+"#comments")
}
