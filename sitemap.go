package main

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	sitemapFileName = "sitemap.xml"
	sitemapXmlns    = "http://www.sitemaps.org/schemas/sitemap/0.9"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (s *Site) RenderSitemap() error {
	content, err := buildSitemap(s.conf.BaseUrl, s.posts)
	if err != nil {
		return err
	}
	if err := s.out.Write(sitemapFileName, content); err != nil {
		return err
	}
	s.renderLog.Info("generated sitemap", "file", sitemapFileName, "urls", len(s.posts)+1)
	return nil
}

// buildSitemap lists the index followed by every post page sorted by
// location. Undated posts carry no lastmod.
func buildSitemap(baseUrl string, ps posts) ([]byte, error) {
	base := strings.TrimRight(strings.TrimSpace(baseUrl), "/") + "/"

	urls := make([]sitemapURL, 0, len(ps))
	for _, p := range ps {
		u := sitemapURL{Loc: base + p.FileName()}
		if !p.Date.IsZero() {
			u.LastMod = p.Date.UTC().Format(time.DateOnly)
		}
		urls = append(urls, u)
	}
	slices.SortFunc(urls, func(a, b sitemapURL) int {
		return strings.Compare(a.Loc, b.Loc)
	})

	index := sitemapURL{Loc: base}
	if latest := ps.latestDate(); !latest.IsZero() {
		index.LastMod = latest.UTC().Format(time.DateOnly)
	}

	set := sitemapURLSet{
		XMLNS: sitemapXmlns,
		URLs:  append([]sitemapURL{index}, urls...),
	}

	var b bytes.Buffer
	b.WriteString(xml.Header)
	enc := xml.NewEncoder(&b)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	b.WriteString("\n")
	return b.Bytes(), nil
}
