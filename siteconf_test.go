package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReadConfDefaults(t *testing.T) {
	conf, err := readConf("")
	if err != nil {
		t.Fatalf("readConf: %v", err)
	}
	if conf.SiteTitle != "Blog" || conf.DefaultAuthor != "Editorial Team" {
		t.Fatalf("unexpected defaults: %+v", conf)
	}
	if conf.WritingDir != "blog" || conf.OutDir != "blog_html" {
		t.Fatalf("unexpected directories: %q, %q", conf.WritingDir, conf.OutDir)
	}
	if conf.WritingFileExtension != ".md" || conf.MarkdownEngine != engineBlackfriday {
		t.Fatalf("unexpected extension or engine: %+v", conf)
	}
	if conf.BaseUrl != "" {
		t.Fatalf("base url should stay empty, got %q", conf.BaseUrl)
	}
	if conf.LogoName() != "logo.svg" {
		t.Fatalf("LogoName = %q", conf.LogoName())
	}
}

func TestReadConfJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.json")
	writeFile(t, path, `{
		"SiteTitle": "JSON Blog",
		"BaseUrl": "https://example.com",
		"WritingDir": "posts",
		"WritingFileExtension": "text",
		"OutDir": "/tmp/abs-out",
		"ExcerptLength": 120
	}`)

	conf, err := readConf(path)
	if err != nil {
		t.Fatalf("readConf: %v", err)
	}
	if conf.SiteTitle != "JSON Blog" {
		t.Fatalf("SiteTitle = %q", conf.SiteTitle)
	}
	if conf.BaseUrl != "https://example.com/" {
		t.Fatalf("BaseUrl = %q", conf.BaseUrl)
	}
	if conf.WritingDir != filepath.Join(dir, "posts") {
		t.Fatalf("WritingDir = %q", conf.WritingDir)
	}
	if conf.OutDir != "/tmp/abs-out" {
		t.Fatalf("absolute OutDir rewritten to %q", conf.OutDir)
	}
	if conf.WritingFileExtension != ".text" {
		t.Fatalf("extension = %q", conf.WritingFileExtension)
	}
	if conf.ExcerptLength != 120 {
		t.Fatalf("ExcerptLength = %d", conf.ExcerptLength)
	}
}

func TestReadConfYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	writeFile(t, path, `site_title: YAML Blog
default_author: Grace
markdown_engine: goldmark
template_dir: tmpl
num_frequent_tags: 3
`)

	conf, err := readConf(path)
	if err != nil {
		t.Fatalf("readConf: %v", err)
	}
	if conf.SiteTitle != "YAML Blog" || conf.DefaultAuthor != "Grace" {
		t.Fatalf("unexpected values: %+v", conf)
	}
	if conf.MarkdownEngine != engineGoldmark {
		t.Fatalf("engine = %q", conf.MarkdownEngine)
	}
	if conf.TemplateDir != filepath.Join(dir, "tmpl") {
		t.Fatalf("TemplateDir = %q", conf.TemplateDir)
	}
	if conf.NumFrequentTags != 3 {
		t.Fatalf("NumFrequentTags = %d", conf.NumFrequentTags)
	}
	if conf.LogoPath != filepath.Join(dir, "logo.svg") {
		t.Fatalf("LogoPath = %q", conf.LogoPath)
	}
}

func TestReadConfErrors(t *testing.T) {
	if _, err := readConf(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	writeFile(t, bad, "{not json")
	if _, err := readConf(bad); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}
