package util

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

// slug 允许字母（含韩文等）、数字、- 与 _
var slugPattern = regexp.MustCompile(`^[\p{L}\p{N}_-]+$`)

var registerOnce sync.Once

// RegisterValidators 在 gin 的校验引擎上注册自定义规则
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("slug", validateSlug)
		}
	})
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(NormalizeSlug(fl.Field().String()))
}

// NormalizeSlug 去掉首尾空白并统一为 NFC，避免组合/分解形式的韩文 slug 不相等
func NormalizeSlug(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// IsSlug 校验 slug 格式
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// ValidationMessage 取第一个字段错误生成提示
func ValidationMessage(err error) (string, bool) {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return "", false
	}
	firstError := vErrs[0]
	return fmt.Sprintf("Invalid field [%s], rule [%s]", firstError.Field(), firstError.Tag()), true
}
