// Package markdown 将文章正文的 markdown 渲染为可直接嵌入页面的 HTML
package markdown

import (
	"bytes"
	"fmt"
	"sync"

	chroma_html "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Renderer markdown -> HTML，无副作用
type Renderer interface {
	Render(source string) (string, error)
}

// Options goldmark 渲染选项
type Options struct {
	Style      string // chroma 主题
	UnsafeHTML bool   // 是否保留正文中的原始 HTML
}

// Goldmark 基于 goldmark 的默认实现
type Goldmark struct {
	md    goldmark.Markdown
	style string

	cssOnce sync.Once
	css     string
}

// New 创建渲染器
func New(opts Options) *Goldmark {
	if opts.Style == "" {
		opts.Style = "github"
	}

	rendererOpts := []goldmark.Option{}
	if opts.UnsafeHTML {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}

	md := goldmark.New(append([]goldmark.Option{
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			highlighting.NewHighlighting(
				highlighting.WithStyle(opts.Style),
				highlighting.WithFormatOptions(
					chroma_html.WithClasses(true),
				),
				highlighting.WithWrapperRenderer(codeBlockWrapper),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	}, rendererOpts...)...)

	return &Goldmark{md: md, style: opts.Style}
}

func (g *Goldmark) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// HighlightCSS 代码高亮所需的样式表
func (g *Goldmark) HighlightCSS() string {
	g.cssOnce.Do(func() {
		var buf bytes.Buffer
		formatter := chroma_html.New(chroma_html.WithClasses(true))
		if err := formatter.WriteCSS(&buf, styles.Get(g.style)); err == nil {
			g.css = buf.String()
		}
	})
	return g.css
}

func codeBlockWrapper(w util.BufWriter, c highlighting.CodeBlockContext, entering bool) {
	if entering {
		langBytes, _ := c.Language()
		lang := string(langBytes)
		if lang == "" {
			lang = "text"
		}
		_, _ = w.WriteString(`<div class="code-wrapper" data-lang="` + lang + `">`)
	} else {
		_, _ = w.WriteString(`</div>`)
	}
}
