package blog

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/jpmhone/folio/pkg/sanitizer"
)

const descriptionLength = 160

const pageStyle = `body{font-family:Arial,sans-serif;max-width:800px;margin:0 auto;padding:20px}h1{color:#333}.content{line-height:1.6}`

// Meta holds the values shared by the head tags and the structured data.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Image       string
	Author      string
}

// NewMeta derives page metadata from a post. The description falls back to
// the first runes of the tag-stripped body when the post has no excerpt.
func NewMeta(p Post, siteURL, author string) Meta {
	desc := sanitizer.SingleLine(p.Excerpt)
	if desc == "" {
		desc = sanitizer.Excerpt(sanitizer.StripScriptTags(p.Content), descriptionLength)
	}
	return Meta{
		Title:       p.Title,
		Description: desc,
		Canonical:   PostURL(siteURL, p.Slug),
		Image:       p.FeaturedImage,
		Author:      author,
	}
}

// PostURL is the public URL of a post on the site.
func PostURL(siteURL, slug string) string {
	return strings.TrimRight(siteURL, "/") + "/blog/" + slug
}

type jsonLDPerson struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type jsonLDPosting struct {
	Context          string       `json:"@context"`
	Type             string       `json:"@type"`
	Headline         string       `json:"headline"`
	Description      string       `json:"description"`
	Image            string       `json:"image,omitempty"`
	URL              string       `json:"url"`
	Author           jsonLDPerson `json:"author"`
	DatePublished    string       `json:"datePublished"`
	DateModified     string       `json:"dateModified"`
	MainEntityOfPage string       `json:"mainEntityOfPage"`
}

// StructuredData returns the schema.org BlogPosting document for p.
// json.Marshal escapes <, > and &, so the result is safe inside a script tag.
func StructuredData(p Post, m Meta) ([]byte, error) {
	return json.Marshal(jsonLDPosting{
		Context:          "https://schema.org",
		Type:             "BlogPosting",
		Headline:         m.Title,
		Description:      m.Description,
		Image:            m.Image,
		URL:              m.Canonical,
		Author:           jsonLDPerson{Type: "Person", Name: m.Author},
		DatePublished:    p.CreatedAt.UTC().Format(time.RFC3339),
		DateModified:     p.UpdatedAt.UTC().Format(time.RFC3339),
		MainEntityOfPage: m.Canonical,
	})
}

func metaTag(attr, key, value string) string {
	return `<meta ` + attr + `="` + key + `" content="` + templ.EscapeString(value) + `">`
}

// Page renders a crawler-friendly document for a single post.
func Page(p Post, m Meta) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		ld, err := StructuredData(p, m)
		if err != nil {
			return err
		}

		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
		b.WriteString(`<title>` + templ.EscapeString(m.Title+" - "+m.Author) + `</title>`)
		b.WriteString(metaTag("name", "description", m.Description))
		b.WriteString(metaTag("name", "author", m.Author))
		b.WriteString(`<meta name="robots" content="index, follow">`)
		b.WriteString(`<link rel="canonical" href="` + templ.EscapeString(m.Canonical) + `">`)
		b.WriteString(metaTag("property", "og:title", m.Title))
		b.WriteString(metaTag("property", "og:description", m.Description))
		b.WriteString(metaTag("property", "og:url", m.Canonical))
		b.WriteString(metaTag("property", "og:type", "article"))
		if m.Image != "" {
			b.WriteString(metaTag("property", "og:image", m.Image))
			b.WriteString(metaTag("name", "twitter:image", m.Image))
		}
		b.WriteString(metaTag("name", "twitter:card", "summary_large_image"))
		b.WriteString(metaTag("name", "twitter:title", m.Title))
		b.WriteString(metaTag("name", "twitter:description", m.Description))
		b.WriteString(metaTag("property", "article:published_time", p.CreatedAt.UTC().Format(time.RFC3339)))
		b.WriteString(metaTag("property", "article:modified_time", p.UpdatedAt.UTC().Format(time.RFC3339)))
		b.WriteString(`<script type="application/ld+json">`)
		b.Write(ld)
		b.WriteString(`</script><style>` + pageStyle + `</style></head><body><article>`)
		b.WriteString(`<h1>` + templ.EscapeString(p.Title) + `</h1>`)
		b.WriteString(`<div class="content">` + sanitizer.TrustedHTML(p.Content) + `</div>`)
		b.WriteString(`</article></body></html>`)

		_, err = io.WriteString(w, b.String())
		return err
	})
}

func simplePage(title, heading string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8">`+
			`<meta name="robots" content="noindex"><title>`+templ.EscapeString(title)+`</title></head>`+
			`<body><h1>`+templ.EscapeString(heading)+`</h1></body></html>`)
		return err
	})
}

func NotFoundPage() templ.Component {
	return simplePage("Post Not Found", "Post not found")
}

func ErrorPage() templ.Component {
	return simplePage("Error", "Something went wrong, please try again later.")
}
