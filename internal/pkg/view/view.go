// Package view 将页面数据渲染为完整 HTML 文档。
// 所有页面共用 layout.html 外壳，页面模板只定义 "content" 块。
package view

import (
	"Darugi/internal/pkg/util"
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"regexp"
	"time"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

//go:embed templates/*.html
var templateFS embed.FS

// 页面模板名
const (
	PageHome           = "home"
	PagePost           = "post"
	PageNotFound       = "not_found"
	PagePolicy         = "policy"
	PageAdminDashboard = "admin_dashboard"
	PageAdminForm      = "admin_form"
)

var pageNames = []string{PageHome, PagePost, PageNotFound, PagePolicy, PageAdminDashboard, PageAdminForm}

// Site 站点级元信息
type Site struct {
	Name         string
	BaseURL      string
	Description  string
	DefaultImage string
	Locale       string
}

// Page 单个页面的元信息与内容数据
type Page struct {
	Title       string
	Description string
	Image       string
	Path        string
	Data        any
}

// shell layout.html 使用的数据
type shell struct {
	Site         Site
	Title        string
	Description  string
	Image        string
	URL          string
	Year         int
	HighlightCSS template.CSS
	Data         any
}

// Renderer 页面渲染器，并发安全
type Renderer struct {
	site         Site
	pages        map[string]*template.Template
	minifier     *minify.M
	highlightCSS template.CSS
	now          func() time.Time
}

// Options 渲染器选项
type Options struct {
	Minify       bool
	HighlightCSS string
}

// New 解析内嵌模板
func New(site Site, opts Options) (*Renderer, error) {
	funcMap := template.FuncMap{
		"date":     util.FormatDate,
		"datetime": util.FormatDateTime,
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").Funcs(funcMap).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	r := &Renderer{
		site:         site,
		pages:        pages,
		highlightCSS: template.CSS(opts.HighlightCSS),
		now:          time.Now,
	}
	if opts.Minify {
		m := minify.New()
		m.AddFunc("text/html", html.Minify)
		m.AddFunc("text/css", css.Minify)
		m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
		r.minifier = m
	}
	return r, nil
}

// Render 渲染指定页面为完整文档
func (r *Renderer) Render(name string, page Page) ([]byte, error) {
	tmpl, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r.shell(page)); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}

	if r.minifier == nil {
		return buf.Bytes(), nil
	}
	out, err := r.minifier.Bytes("text/html", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to minify %s: %w", name, err)
	}
	return out, nil
}

func (r *Renderer) shell(page Page) shell {
	title := r.site.Name
	if page.Title != "" {
		title = page.Title + " - " + r.site.Name
	}
	description := page.Description
	if description == "" {
		description = r.site.Description
	}
	image := page.Image
	if image == "" {
		image = r.site.DefaultImage
	}
	url := r.site.BaseURL
	if page.Path != "" {
		url = r.site.BaseURL + page.Path
	}

	return shell{
		Site:         r.site,
		Title:        title,
		Description:  description,
		Image:        image,
		URL:          url,
		Year:         r.now().In(util.DisplayZone).Year(),
		HighlightCSS: r.highlightCSS,
		Data:         page.Data,
	}
}
