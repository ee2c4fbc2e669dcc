package middleware

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const maxAuditBody = 16384

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	if r.body.Len() < maxAuditBody {
		r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseBodyWriter) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// replayBody 拼回已预读的前缀，Close 交给原始 body
type replayBody struct {
	io.Reader
	io.Closer
}

func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var reqBody []byte
		if c.Request.Body != nil {
			// 只预读审计所需的前缀，其余部分原样留给 handler
			body := c.Request.Body
			reqBody, _ = io.ReadAll(io.LimitReader(body, maxAuditBody+1))
			c.Request.Body = &replayBody{
				Reader: io.MultiReader(bytes.NewReader(reqBody), body),
				Closer: body,
			}
		}

		rawQuery := c.Request.URL.RawQuery
		decodedQuery, err := url.QueryUnescape(rawQuery)
		if err != nil {
			decodedQuery = rawQuery
		}

		log.InfoContext(ctx, "Recv Request",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.String("query", decodedQuery),
			log.String("req_body", auditRequestBody(reqBody)),
		)

		w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w
		startTime := time.Now()

		c.Next()

		log.InfoContext(ctx, "Send Response",
			log.Int("status", c.Writer.Status()),
			log.Duration("latency", time.Since(startTime)),
			log.Int("size", c.Writer.Size()),
			log.String("res_body", auditResponseBody(c.Writer.Header().Get("Content-Type"), w.body)),
		)
	}
}

// auditRequestBody 含密码字段的表单不记录
func auditRequestBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if form, err := url.ParseQuery(string(body)); err == nil {
		for key := range form {
			if strings.Contains(strings.ToLower(key), "password") {
				return "[redacted]"
			}
		}
	}
	if len(body) > maxAuditBody {
		body = body[:maxAuditBody]
	}
	return string(body)
}

// auditResponseBody 页面与 XML 只记录大小，JSON/纯文本记录内容
func auditResponseBody(contentType string, body *bytes.Buffer) string {
	if strings.HasPrefix(contentType, "application/json") || strings.HasPrefix(contentType, "text/plain") {
		return body.String()
	}
	return ""
}
