// Package seo 生成 sitemap.xml、robots.txt 与 RSS 2.0
package seo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/url"
	"time"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Entry 一篇文章在 SEO 输出中需要的字段
type Entry struct {
	Title       string
	Slug        string
	Description string
	CreatedAt   int64
}

type UrlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	Urls    []Url    `xml:"url"`
}

type Url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type Rss struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel Channel  `xml:"channel"`
}

type Channel struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Language    string `xml:"language,omitempty"`
	Items       []Item `xml:"item"`
}

type Item struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	Guid        string `xml:"guid"`
}

// PostURL 文章的绝对地址
func PostURL(baseURL, slug string) string {
	return baseURL + "/post/" + url.PathEscape(slug)
}

// Sitemap 首页、隐私政策页，以及每篇文章一条
func Sitemap(baseURL string, posts []Entry) ([]byte, error) {
	urls := make([]Url, 0, len(posts)+2)
	urls = append(urls,
		Url{Loc: baseURL + "/", ChangeFreq: "daily", Priority: "1.0"},
		Url{Loc: baseURL + "/policy", ChangeFreq: "monthly", Priority: "0.5"},
	)
	for _, p := range posts {
		urls = append(urls, Url{
			Loc:        PostURL(baseURL, p.Slug),
			LastMod:    time.Unix(p.CreatedAt, 0).UTC().Format("2006-01-02T15:04:05.000Z"),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}
	return marshal(UrlSet{Xmlns: sitemapNS, Urls: urls})
}

// Robots 允许全部抓取并指向 sitemap
func Robots(baseURL string) []byte {
	return []byte(fmt.Sprintf("User-agent: *\nAllow: /\nSitemap: %s/sitemap.xml", baseURL))
}

// Feed RSS 2.0
func Feed(baseURL, title, description, language string, posts []Entry) ([]byte, error) {
	items := make([]Item, 0, len(posts))
	for _, p := range posts {
		link := PostURL(baseURL, p.Slug)
		items = append(items, Item{
			Title:       p.Title,
			Link:        link,
			Description: p.Description,
			PubDate:     time.Unix(p.CreatedAt, 0).UTC().Format(time.RFC1123Z),
			Guid:        link,
		})
	}
	return marshal(Rss{
		Version: "2.0",
		Channel: Channel{
			Title:       title,
			Link:        baseURL,
			Description: description,
			Language:    language,
			Items:       items,
		},
	})
}

func marshal(v any) ([]byte, error) {
	output, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode xml: %w", err)
	}
	var buf bytes.Buffer
	buf.Grow(len(xml.Header) + len(output))
	buf.WriteString(xml.Header)
	buf.Write(output)
	return buf.Bytes(), nil
}
