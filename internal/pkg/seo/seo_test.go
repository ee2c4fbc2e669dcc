package seo

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPosts = []Entry{
	{Title: "Second", Slug: "second", Description: "two", CreatedAt: time.Date(2024, 3, 5, 1, 2, 3, 0, time.UTC).Unix()},
	{Title: "First & foremost", Slug: "first", Description: "one", CreatedAt: 0},
}

func TestSitemap(t *testing.T) {
	out, err := Sitemap("https://example.com", testPosts)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, xml.Header))
	assert.Equal(t, 4, strings.Count(s, "<url>"))
	assert.Contains(t, s, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, s, "<loc>https://example.com/</loc>")
	assert.Contains(t, s, "<loc>https://example.com/policy</loc>")
	assert.Contains(t, s, "<loc>https://example.com/post/second</loc>")
	assert.Contains(t, s, "<lastmod>2024-03-05T01:02:03.000Z</lastmod>")

	var parsed UrlSet
	require.NoError(t, xml.Unmarshal(out, &parsed))
	require.Len(t, parsed.Urls, 4)
	assert.Equal(t, "daily", parsed.Urls[0].ChangeFreq)
	assert.Equal(t, "1.0", parsed.Urls[0].Priority)
	assert.Equal(t, "monthly", parsed.Urls[1].ChangeFreq)
	assert.Equal(t, "0.5", parsed.Urls[1].Priority)
	assert.Equal(t, "weekly", parsed.Urls[2].ChangeFreq)
	assert.Equal(t, "0.8", parsed.Urls[2].Priority)
}

func TestSitemap_NoPosts(t *testing.T) {
	out, err := Sitemap("https://example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(out), "<url>"))
}

func TestRobots(t *testing.T) {
	assert.Equal(t,
		"User-agent: *\nAllow: /\nSitemap: https://example.com/sitemap.xml",
		string(Robots("https://example.com")))
}

func TestFeed(t *testing.T) {
	out, err := Feed("https://example.com", "Site", "desc", "ko", testPosts)
	require.NoError(t, err)

	var parsed Rss
	require.NoError(t, xml.Unmarshal(out, &parsed))
	assert.Equal(t, "2.0", parsed.Version)
	assert.Equal(t, "Site", parsed.Channel.Title)
	require.Len(t, parsed.Channel.Items, 2)
	assert.Equal(t, "First & foremost", parsed.Channel.Items[1].Title)
	assert.Equal(t, "https://example.com/post/first", parsed.Channel.Items[1].Guid)
	assert.Contains(t, string(out), "First &amp; foremost")
}
