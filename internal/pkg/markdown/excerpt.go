package markdown

import "strings"

// DefaultExcerptLength 摘要回退时截取的字符数
const DefaultExcerptLength = 150

var excerptStripper = strings.NewReplacer("#", "", "*", "", "`", "")

// Excerpt 有摘要时直接返回，否则截取正文前 limit 个字符并去掉 markdown 标记
func Excerpt(excerpt *string, content string, limit int) string {
	if excerpt != nil && strings.TrimSpace(*excerpt) != "" {
		return *excerpt
	}
	runes := []rune(content)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return excerptStripper.Replace(string(runes)) + "..."
}
