package main

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	goerrors "github.com/goliatone/go-errors"
)

var testNow = time.Date(2024, time.June, 15, 9, 30, 0, 0, time.UTC)

func testPostOptions() postOptions {
	return postOptions{
		DefaultAuthor: "Editorial Team",
		ExcerptLength: 300,
		Now:           testNow,
	}
}

func mustNewPost(t *testing.T, raw string) (*post, *recordingLogger) {
	t.Helper()
	log := &recordingLogger{}
	p, err := newPost(raw, "post.md", testPostOptions(), log)
	if err != nil {
		t.Fatalf("newPost: %v", err)
	}
	return p, log
}

func TestNewPostTitleFromHeading(t *testing.T) {
	p, _ := mustNewPost(t, "# Hello\nWorld")

	if p.Title != "Hello" {
		t.Fatalf("title = %q, want Hello", p.Title)
	}
	if p.Slug != "hello" {
		t.Fatalf("slug = %q, want hello", p.Slug)
	}
	if p.Body != "World" {
		t.Fatalf("body = %q, want World", p.Body)
	}
	if p.Excerpt != "World" {
		t.Fatalf("excerpt = %q, want World", p.Excerpt)
	}
}

func TestNewPostDefaults(t *testing.T) {
	p, log := mustNewPost(t, "Just some words without any heading.")

	if p.Title != defaultTitle {
		t.Fatalf("title = %q, want %q", p.Title, defaultTitle)
	}
	if p.Slug != "blog-post" {
		t.Fatalf("slug = %q, want blog-post", p.Slug)
	}
	if p.Author != "Editorial Team" {
		t.Fatalf("author = %q", p.Author)
	}
	if p.DisplayDate != "June 15, 2024" {
		t.Fatalf("display date = %q", p.DisplayDate)
	}
	if !p.Date.Equal(time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date = %v", p.Date)
	}
	if p.Pinned || p.Featured || p.Draft {
		t.Fatal("flags should default to false")
	}
	if len(p.Tags) != 0 {
		t.Fatalf("tags = %v", p.Tags)
	}
	if log.count("warn") != 0 {
		t.Fatalf("unexpected warnings: %v", log.records)
	}
}

func TestNewPostHeaderWins(t *testing.T) {
	raw := `---
title: Explicit Title
date: January 5, 2024
excerpt: Hand written.
author: Grace
tags: go, testing
slug: custom-slug
---
# Heading In Body

Paragraph.`
	p, _ := mustNewPost(t, raw)

	if p.Title != "Explicit Title" {
		t.Fatalf("title = %q", p.Title)
	}
	if p.Slug != "custom-slug" {
		t.Fatalf("slug = %q", p.Slug)
	}
	if p.Excerpt != "Hand written." {
		t.Fatalf("excerpt = %q", p.Excerpt)
	}
	if p.Author != "Grace" {
		t.Fatalf("author = %q", p.Author)
	}
	if !slices.Equal(p.Tags, []string{"go", "testing"}) {
		t.Fatalf("tags = %v", p.Tags)
	}
	if p.DisplayDate != "January 5, 2024" {
		t.Fatalf("display date = %q", p.DisplayDate)
	}
	// An explicit title leaves the body heading in place.
	if !strings.Contains(p.Body, "# Heading In Body") {
		t.Fatalf("body lost its heading: %q", p.Body)
	}
}

func TestNewPostSlugFromHeaderIsNormalised(t *testing.T) {
	p, _ := mustNewPost(t, "---\ntitle: T\nslug: Not A Slug\n---\nbody")
	if p.Slug != "not-a-slug" {
		t.Fatalf("slug = %q", p.Slug)
	}
}

func TestNewPostUnparseableDateKeepsDisplay(t *testing.T) {
	p, log := mustNewPost(t, "---\ntitle: T\ndate: someday\n---\nbody")
	if p.DisplayDate != "someday" {
		t.Fatalf("display date = %q", p.DisplayDate)
	}
	if !p.Date.IsZero() {
		t.Fatalf("date = %v, want zero", p.Date)
	}
	if log.count("warn") != 1 {
		t.Fatalf("expected one warning, got %v", log.records)
	}
}

func TestNewPostMalformedHeader(t *testing.T) {
	raw := "---\ntitle: [oops\n---\n# Recovered\n\nText."
	p, log := mustNewPost(t, raw)

	if log.count("warn") == 0 {
		t.Fatal("expected a warning for the malformed header")
	}
	if p.Title != "Recovered" {
		t.Fatalf("title = %q", p.Title)
	}
	if !strings.Contains(p.Body, "title: [oops") {
		t.Fatalf("header text should stay in the body, got %q", p.Body)
	}
}

func TestExtractTitleSkipsCodeFences(t *testing.T) {
	body := "```sh\n# not a title\n```\n\n# Real Title\n\nText"
	title, rest, ok := extractTitle(body)
	if !ok || title != "Real Title" {
		t.Fatalf("extractTitle = %q, %v", title, ok)
	}
	if !strings.Contains(rest, "# not a title") {
		t.Fatalf("fenced line removed: %q", rest)
	}
	if strings.Contains(rest, "# Real Title") {
		t.Fatalf("title line kept: %q", rest)
	}
}

func TestExtractTitleIgnoresSubheadings(t *testing.T) {
	if _, _, ok := extractTitle("## Section\n\nText"); ok {
		t.Fatal("a level-2 heading is not a title")
	}
}

func TestDeriveExcerptSkipsNonProse(t *testing.T) {
	body := `# Title

## Subheading

*Posted in a hurry*

---

` + "```go\ncode()\n```" + `

First line of prose.
Second line.`
	got := deriveExcerpt(body, 300)
	if got != "First line of prose. Second line." {
		t.Fatalf("excerpt = %q", got)
	}
}

func TestDeriveExcerptStopsCollecting(t *testing.T) {
	line := strings.Repeat("word ", 30)
	body := strings.Repeat(line+"\n", 10)
	got := deriveExcerpt(body, 1000)
	if n := len(got); n > excerptCollectLength+len(line)+1 {
		t.Fatalf("collected %d bytes, expected collection to stop early", n)
	}
}

func TestTruncateExcerpt(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog again and again"

	got := truncateExcerpt(text, 20)
	if utf8.RuneCountInString(got) > 20 {
		t.Fatalf("excerpt %q longer than 20", got)
	}
	if !strings.HasSuffix(got, ellipsis) {
		t.Fatalf("excerpt %q lacks ellipsis", got)
	}
	stem := strings.TrimSuffix(got, ellipsis)
	if !strings.HasPrefix(text, stem) {
		t.Fatalf("excerpt %q is not a prefix of the text", got)
	}
	if next := text[len(stem)]; next != ' ' {
		t.Fatalf("excerpt %q splits a word", got)
	}

	if short := truncateExcerpt("short", 20); short != "short" {
		t.Fatalf("short text changed: %q", short)
	}
}

func TestTruncateExcerptCountsRunes(t *testing.T) {
	text := strings.Repeat("ü", 50)
	got := truncateExcerpt(text, 10)
	if n := utf8.RuneCountInString(got); n > 10 {
		t.Fatalf("got %d runes", n)
	}
	if !utf8.ValidString(got) {
		t.Fatal("truncation produced invalid UTF-8")
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello":            "hello",
		"Hello World":      "hello-world",
		"already-a-slug":   "already-a-slug",
		"--Trim  Dashes--": "trim-dashes",
		"!!!":              defaultSlug,
		"":                 defaultSlug,
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSlugifyIsIdempotentAndValid(t *testing.T) {
	inputs := []string{"Hello World", "Go 1.25 Released!", "a__b", "Ünïcödé Title", "2024 in review"}
	for _, in := range inputs {
		once := slugify(in)
		if !slugPattern.MatchString(once) {
			t.Errorf("slugify(%q) = %q is not a valid slug", in, once)
		}
		if twice := slugify(once); twice != once {
			t.Errorf("slugify not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestFindPostFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.md", "a.md", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nested", "c.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := findPostFiles(dir, ".md")
	if err != nil {
		t.Fatalf("findPostFiles: %v", err)
	}
	want := []string{filepath.Join(dir, "a.md"), filepath.Join(dir, "b.md")}
	if !slices.Equal(files, want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
}

func TestReadPostFromFileMissing(t *testing.T) {
	_, err := readPostFromFile(filepath.Join(t.TempDir(), "gone.md"), testPostOptions(), &recordingLogger{})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("unexpected error category: %v", err)
	}
}

func TestDeriveExcerptIgnoresHashLinesInFences(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "leading fence",
			body: "```bash\n# install deps\nmake\n```\nThis post explains how the build works.",
			want: "This post explains how the build works.",
		},
		{
			name: "fence without any heading",
			body: "```sh\n# not a title\n```\nProse here.",
			want: "Prose here.",
		},
		{
			name: "heading after fence",
			body: "```sh\n# comment\n```\n# Real\n\nAfter the heading.",
			want: "After the heading.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := deriveExcerpt(tc.body, 300); got != tc.want {
				t.Fatalf("deriveExcerpt = %q, want %q", got, tc.want)
			}
		})
	}
}
