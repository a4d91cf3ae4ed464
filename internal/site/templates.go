package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"path"
	"strings"
	"time"

	"github.com/goliatone/go-blog/document"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// SiteMetadata carries site-wide values exposed to every template.
type SiteMetadata struct {
	Title       string
	Description string
	BaseURL     string
	GeneratedAt time.Time
}

// PostView is the per-post rendering context.
type PostView struct {
	Title   string
	Slug    string
	Route   string
	URL     string
	Date    time.Time
	Spoiler string
	Tags    []string
	HTML    template.HTML
}

type indexContext struct {
	Site  SiteMetadata
	Posts []PostView
}

type postContext struct {
	Site SiteMetadata
	Post PostView
}

type templateSet struct {
	index *template.Template
	post  *template.Template
}

var templateFuncs = template.FuncMap{
	"formatDate": func(ts time.Time) string {
		return ts.Format("January 2, 2006")
	},
}

func defaultTemplates() *templateSet {
	return &templateSet{
		index: template.Must(template.New("index.html.tmpl").
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/index.html.tmpl")),
		post: template.Must(template.New("post.html.tmpl").
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/post.html.tmpl")),
	}
}

func (t *templateSet) renderIndex(meta SiteMetadata, posts []PostView) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.index.Execute(&buf, indexContext{Site: meta, Posts: posts}); err != nil {
		return nil, fmt.Errorf("site: render index: %w", err)
	}
	return buf.Bytes(), nil
}

func (t *templateSet) renderPost(meta SiteMetadata, post PostView) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.post.Execute(&buf, postContext{Site: meta, Post: post}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func postViews(meta SiteMetadata, records []*document.Document) []PostView {
	views := make([]PostView, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		route := "/" + strings.Trim(rec.Slug, "/") + "/"
		views = append(views, PostView{
			Title:   rec.Title,
			Slug:    rec.Slug,
			Route:   route,
			URL:     absoluteURL(meta.BaseURL, route),
			Date:    rec.Date,
			Spoiler: rec.Spoiler,
			Tags:    append([]string(nil), rec.Tags...),
			HTML:    template.HTML(rec.BodyHTML),
		})
	}
	return views
}

func absoluteURL(base, route string) string {
	targetBase := baseURLWithFallback(base)
	normalized := strings.TrimSpace(route)
	if normalized == "" {
		return targetBase
	}
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	return targetBase + path.Clean(normalized) + trailingSlash(normalized)
}

func trailingSlash(route string) string {
	if strings.HasSuffix(route, "/") && route != "/" {
		return "/"
	}
	return ""
}

func baseURLWithFallback(base string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(base), "/")
	if trimmed == "" {
		return "http://localhost"
	}
	return trimmed
}
