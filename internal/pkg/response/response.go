package response

import (
	"Darugi/internal/pkg/util"
	"Darugi/internal/service"
	"errors"
	log "log/slog"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

const (
	Ok                  = 200
	BadRequest          = 400
	NotFound            = 404
	InternalServerError = 500
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
)

// HTML 写出渲染好的页面
func HTML(c *gin.Context, code int, body []byte) {
	c.Data(code, contentTypeHTML, body)
}

// Text 纯文本
func Text(c *gin.Context, code int, message string) {
	c.Data(code, contentTypeText, []byte(message))
}

// JSON 使用 go-json 编码
func JSON(c *gin.Context, code int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "encode json error", "err", err)
		Text(c, InternalServerError, service.UnExpectedError.Error())
		return
	}
	c.Data(code, contentTypeJSON, body)
}

// Error 页面与表单接口的错误，纯文本返回
func Error(c *gin.Context, err error) {
	code, message := classify(c, err)
	Text(c, code, message)
}

// BindError 表单绑定失败，一律按 400 处理
func BindError(c *gin.Context, err error) {
	if message, ok := util.ValidationMessage(err); ok {
		Text(c, BadRequest, message)
		return
	}
	log.WarnContext(c.Request.Context(), "bind form error", "err", err)
	Text(c, BadRequest, service.ErrParamInvalid.Error())
}

// JSONError 计数接口的错误，返回 {"error": "..."}
func JSONError(c *gin.Context, err error) {
	code, message := classify(c, err)
	JSON(c, code, gin.H{"error": message})
}

func classify(c *gin.Context, err error) (int, string) {
	if message, ok := util.ValidationMessage(err); ok {
		return BadRequest, message
	}

	code, ok := service.StatusOf(err)
	if !ok {
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
		return InternalServerError, service.UnExpectedError.Error()
	}
	for sentinel := range service.ErrorMap {
		if errors.Is(err, sentinel) {
			return code, sentinel.Error()
		}
	}
	return code, err.Error()
}
