package main

import (
	"fmt"

	atom "github.com/thomas11/atomgenerator"
)

const feedFileName = "index.xml"

// RenderAtom writes an Atom feed of all dated posts, newest first.
func (s *Site) RenderAtom() error {
	atomXml, err := s.renderFeed(s.conf.SiteTitle, s.feedPosts())
	if err != nil {
		return err
	}
	if err := s.out.Write(feedFileName, atomXml); err != nil {
		return err
	}
	s.renderLog.Info("generated feed", "file", feedFileName)
	return nil
}

func (s *Site) feedPosts() posts {
	entries := orderForIndex(s.posts)
	dated := make(posts, 0, len(entries))
	for _, e := range entries {
		if e.Date.IsZero() {
			s.renderLog.Debug("leaving undated post out of the feed", "slug", e.Slug)
			continue
		}
		dated = append(dated, e.post)
	}
	return dated
}

func (s *Site) renderFeed(title string, ps posts) ([]byte, error) {
	feed := atom.Feed{
		Title:   title,
		Link:    s.conf.BaseUrl,
		PubDate: s.now,
	}
	if latest := ps.latestDate(); !latest.IsZero() {
		feed.PubDate = latest
	}
	feed.AddAuthor(atom.Author{
		Name: s.conf.DefaultAuthor,
		Uri:  s.conf.AuthorUri,
	})

	for _, p := range ps {
		feed.AddEntry(s.entryForPost(p))
	}

	if errs := feed.Validate(); len(errs) > 0 {
		for _, e := range errs {
			s.renderLog.Error("invalid atom feed", "error", e)
		}
		return nil, fmt.Errorf("atom feed: %w", errs[0])
	}

	return feed.GenXml()
}

func (s *Site) entryForPost(p *post) *atom.Entry {
	e := &atom.Entry{
		Title:       p.Title,
		Description: p.Excerpt,
		Link:        s.conf.BaseUrl + p.FileName(),
		PubDate:     p.Date,
		Content:     string(p.RenderedHTML),
	}
	for _, tag := range p.Tags {
		e.AddCategory(atom.Category{Term: tag})
	}
	return e
}
