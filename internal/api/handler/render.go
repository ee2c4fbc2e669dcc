package handler

import (
	"Darugi/internal/pkg/response"
	"Darugi/internal/pkg/view"
	"net/http"

	"github.com/gin-gonic/gin"
)

// render 渲染页面并写出，模板错误按 500 处理
func render(c *gin.Context, v *view.Renderer, name string, page view.Page) {
	body, err := v.Render(name, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.HTML(c, http.StatusOK, body)
}
