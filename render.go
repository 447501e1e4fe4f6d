package main

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

const (
	layoutTemplate = "global.html"
	postTemplate   = "post.html"
	indexTemplate  = "index.html"

	// Defined in global.html, wraps the page specific blocks.
	pageBlock = "page"

	maxIndexTags = 3
)

// siteParam is the chrome shared by every page.
type siteParam struct {
	SiteTitle    string
	Tagline      string
	HomeUrl      string
	LogoName     string
	HasLogo      bool
	FeedName     string
	FrequentTags []string
}

type postPageParam struct {
	Site           siteParam
	Title          string
	DisplayDate    string
	ISODate        string
	Author         string
	Tags           []string
	Pinned         bool
	Featured       bool
	ReadingTime    int
	Body           template.HTML
	Description    string
	CanonicalUrl   string
	StructuredData map[string]any
}

type indexCard struct {
	Title       string
	Href        string
	DisplayDate string
	Excerpt     string
	Tags        []string
	ReadingTime int
	Hero        bool
	Pinned      bool
	Featured    bool
}

type indexPageParam struct {
	Site         siteParam
	Cards        []indexCard
	CanonicalUrl string
}

// pageTemplates is the immutable set of named page templates, parsed once.
type pageTemplates struct {
	post  *template.Template
	index *template.Template
}

// loadPageTemplates parses the built-in templates, or the ones in dir when
// dir is set. A custom dir has to provide all three files.
func loadPageTemplates(dir string) (*pageTemplates, error) {
	var fsys fs.FS
	if dir != "" {
		fsys = os.DirFS(dir)
	} else {
		sub, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, err
		}
		fsys = sub
	}

	parse := func(page string) (*template.Template, error) {
		t, err := template.ParseFS(fsys, layoutTemplate, page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		return t, nil
	}

	post, err := parse(postTemplate)
	if err != nil {
		return nil, err
	}
	index, err := parse(indexTemplate)
	if err != nil {
		return nil, err
	}
	return &pageTemplates{post: post, index: index}, nil
}

type templateEngine struct {
	toHtml    renderer
	templates *pageTemplates
}

func newTemplateEngine(conf *SiteConf) (*templateEngine, error) {
	r, err := newMarkdownRenderer(conf.MarkdownEngine)
	if err != nil {
		return nil, err
	}
	templates, err := loadPageTemplates(conf.TemplateDir)
	if err != nil {
		return nil, err
	}
	return &templateEngine{toHtml: r, templates: templates}, nil
}

func (te *templateEngine) renderPost(p postPageParam, w io.Writer) error {
	return te.templates.post.ExecuteTemplate(w, pageBlock, p)
}

func (te *templateEngine) renderIndex(p indexPageParam, w io.Writer) error {
	return te.templates.index.ExecuteTemplate(w, pageBlock, p)
}

func newPostPageParam(site siteParam, p *post, baseUrl string) postPageParam {
	param := postPageParam{
		Site:        site,
		Title:       p.Title,
		DisplayDate: p.DisplayDate,
		ISODate:     p.ISODate(),
		Author:      p.Author,
		Tags:        p.Tags,
		Pinned:      p.Pinned,
		Featured:    p.Featured,
		ReadingTime: p.ReadingTime,
		Body:        p.RenderedHTML,
		Description: p.Excerpt,
	}
	if baseUrl != "" {
		param.CanonicalUrl = baseUrl + p.FileName()
		param.StructuredData = structuredData(site, p, param.CanonicalUrl)
	}
	return param
}

// structuredData is the schema.org BlogPosting description of a post.
func structuredData(site siteParam, p *post, url string) map[string]any {
	data := map[string]any{
		"@context":         "https://schema.org",
		"@type":            "BlogPosting",
		"headline":         p.Title,
		"description":      p.Excerpt,
		"author":           map[string]any{"@type": "Person", "name": p.Author},
		"publisher":        map[string]any{"@type": "Organization", "name": site.SiteTitle},
		"mainEntityOfPage": map[string]any{"@type": "WebPage", "@id": url},
		"url":              url,
	}
	if iso := p.ISODate(); iso != "" {
		data["datePublished"] = iso
	}
	if len(p.Tags) > 0 {
		data["keywords"] = p.Tags
	}
	return data
}

func newIndexPageParam(site siteParam, entries []indexEntry, baseUrl string) indexPageParam {
	cards := make([]indexCard, 0, len(entries))
	for _, e := range entries {
		tags := e.Tags
		if len(tags) > maxIndexTags {
			tags = tags[:maxIndexTags]
		}
		cards = append(cards, indexCard{
			Title:       e.Title,
			Href:        e.FileName(),
			DisplayDate: e.DisplayDate,
			Excerpt:     e.Excerpt,
			Tags:        tags,
			ReadingTime: e.ReadingTime,
			Hero:        e.Hero,
			Pinned:      e.Pinned,
			Featured:    e.Featured,
		})
	}
	return indexPageParam{Site: site, Cards: cards, CanonicalUrl: baseUrl}
}
