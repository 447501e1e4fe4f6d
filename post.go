package main

import (
	"cmp"
	"html/template"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/net/html"
)

type post struct {
	Title       string
	DisplayDate string
	Date        time.Time
	Excerpt     string
	Author      string
	Tags        []string
	Slug        string
	Pinned      bool
	Featured    bool
	Draft       bool
	Body        string
	SourcePath  string

	// Set once the body has been converted.
	RenderedHTML template.HTML
	ReadingTime  int
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Validate checks the invariants every normalised post has to satisfy before
// it is rendered.
func (p *post) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Slug, validation.Required, validation.Match(slugPattern)),
		validation.Field(&p.DisplayDate, validation.Required),
	)
}

func (p *post) FileName() string {
	return p.Slug + ".html"
}

// ISODate is empty for posts whose date could not be parsed.
func (p *post) ISODate() string {
	if p.Date.IsZero() {
		return ""
	}
	return p.Date.Format("2006-01-02")
}

// Highlighted reports whether the post gets a badge or hero treatment.
func (p *post) Highlighted() bool {
	return p.Pinned || p.Featured
}

type posts []*post

func (ps posts) latestDate() time.Time {
	var t time.Time
	for _, p := range ps {
		if p.Date.After(t) {
			t = p.Date
		}
	}
	return t
}

// assignUniqueSlugs suffixes colliding slugs with -2, -3, ... in slice order.
func (ps posts) assignUniqueSlugs(log Logger) {
	taken := make(map[string]bool, len(ps))
	for _, p := range ps {
		base := p.Slug
		candidate := base
		for n := 2; taken[candidate]; n++ {
			candidate = base + "-" + strconv.Itoa(n)
		}
		if candidate != base {
			log.Warn("duplicate slug, renaming output", "slug", base, "renamed", candidate, "path", p.SourcePath)
			p.Slug = candidate
		}
		taken[candidate] = true
	}
}

type indexEntry struct {
	*post
	Hero bool
}

// orderForIndex returns the posts in index order: pinned first, then
// featured, then newest first. Ties fall back to the source path so the
// order does not depend on directory listing order.
func orderForIndex(ps posts) []indexEntry {
	sorted := slices.Clone(ps)
	slices.SortStableFunc(sorted, compareForIndex)

	entries := make([]indexEntry, len(sorted))
	for i, p := range sorted {
		entries[i] = indexEntry{post: p}
	}
	if len(entries) > 0 && entries[0].Highlighted() {
		entries[0].Hero = true
	}
	return entries
}

func compareForIndex(a, b *post) int {
	if c := compareFlag(a.Pinned, b.Pinned); c != 0 {
		return c
	}
	if c := compareFlag(a.Featured, b.Featured); c != 0 {
		return c
	}
	// Newer comes first
	if c := b.Date.Compare(a.Date); c != 0 {
		return c
	}
	if c := cmp.Compare(a.SourcePath, b.SourcePath); c != 0 {
		return c
	}
	return cmp.Compare(a.Slug, b.Slug)
}

// compareFlag orders true before false.
func compareFlag(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	default:
		return 1
	}
}

// readingTime estimates minutes of reading for rendered HTML, rounded up,
// never less than one.
func readingTime(renderedHTML string, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = 200
	}
	minutes := (countWords(renderedHTML) + wordsPerMinute - 1) / wordsPerMinute
	return max(1, minutes)
}

func countWords(fragment string) int {
	words := 0
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return words
		case html.TextToken:
			words += len(strings.Fields(string(z.Text())))
		}
	}
}
