package site

import (
	"fmt"
	"html"
	"strings"
	"time"
)

const maxFeedItems = 100

func feedItems(posts []PostView) []PostView {
	if len(posts) > maxFeedItems {
		return posts[:maxFeedItems]
	}
	return posts
}

func buildRSSFeed(meta SiteMetadata, posts []PostView, generatedAt time.Time) string {
	baseLink := baseURLWithFallback(meta.BaseURL)

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<rss version="2.0">` + "\n")
	builder.WriteString("  <channel>\n")
	builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(meta.Title)))
	builder.WriteString(fmt.Sprintf("    <link>%s</link>\n", escapeXML(baseLink)))
	builder.WriteString(fmt.Sprintf("    <description>%s</description>\n", escapeXML(feedDescription(meta))))
	builder.WriteString(fmt.Sprintf("    <lastBuildDate>%s</lastBuildDate>\n", generatedAt.UTC().Format(time.RFC1123Z)))
	for _, post := range feedItems(posts) {
		pub := post.Date
		if pub.IsZero() {
			pub = generatedAt
		}
		builder.WriteString("    <item>\n")
		builder.WriteString(fmt.Sprintf("      <title>%s</title>\n", escapeXML(post.Title)))
		builder.WriteString(fmt.Sprintf("      <link>%s</link>\n", escapeXML(post.URL)))
		builder.WriteString(fmt.Sprintf("      <guid>%s</guid>\n", escapeXML(post.URL)))
		builder.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", pub.UTC().Format(time.RFC1123Z)))
		if post.Spoiler != "" {
			builder.WriteString(fmt.Sprintf("      <description>%s</description>\n", escapeXML(post.Spoiler)))
		}
		builder.WriteString("    </item>\n")
	}
	builder.WriteString("  </channel>\n")
	builder.WriteString(`</rss>` + "\n")
	return builder.String()
}

func buildAtomFeed(meta SiteMetadata, posts []PostView, generatedAt time.Time) string {
	baseLink := baseURLWithFallback(meta.BaseURL)
	feedID := baseLink + "/feed.atom.xml"

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<feed xmlns="http://www.w3.org/2005/Atom">` + "\n")
	builder.WriteString(fmt.Sprintf("  <id>%s</id>\n", escapeXML(feedID)))
	builder.WriteString(fmt.Sprintf("  <title>%s</title>\n", escapeXML(meta.Title)))
	builder.WriteString(fmt.Sprintf("  <updated>%s</updated>\n", generatedAt.UTC().Format(time.RFC3339)))
	builder.WriteString(fmt.Sprintf(`  <link rel="alternate" href="%s" />`+"\n", escapeXML(baseLink)))
	builder.WriteString(fmt.Sprintf(`  <link rel="self" href="%s" />`+"\n", escapeXML(feedID)))
	for _, post := range feedItems(posts) {
		updated := post.Date
		if updated.IsZero() {
			updated = generatedAt
		}
		builder.WriteString("  <entry>\n")
		builder.WriteString(fmt.Sprintf("    <id>%s</id>\n", escapeXML(post.URL)))
		builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(post.Title)))
		builder.WriteString(fmt.Sprintf(`    <link href="%s" />`+"\n", escapeXML(post.URL)))
		builder.WriteString(fmt.Sprintf("    <updated>%s</updated>\n", updated.UTC().Format(time.RFC3339)))
		if post.Spoiler != "" {
			builder.WriteString(fmt.Sprintf("    <summary>%s</summary>\n", escapeXML(post.Spoiler)))
		}
		builder.WriteString("  </entry>\n")
	}
	builder.WriteString(`</feed>` + "\n")
	return builder.String()
}

func feedDescription(meta SiteMetadata) string {
	if desc := strings.TrimSpace(meta.Description); desc != "" {
		return desc
	}
	return "Latest posts"
}

func escapeXML(value string) string {
	return html.EscapeString(value)
}
