package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type SiteConf struct {
	SiteTitle string `yaml:"site_title"`
	Tagline   string `yaml:"tagline"`
	BaseUrl   string `yaml:"base_url"`
	HomeUrl   string `yaml:"home_url"`

	// Used for posts without an author header.
	DefaultAuthor string `yaml:"default_author"`
	AuthorUri     string `yaml:"author_uri"`

	TemplateDir string `yaml:"template_dir"`

	WritingDir           string `yaml:"writing_dir"`
	WritingFileExtension string `yaml:"writing_file_extension"`
	LogoPath             string `yaml:"logo_path"`
	ImagesDir            string `yaml:"images_dir"`

	OutDir string `yaml:"out_dir"`

	MarkdownEngine string `yaml:"markdown_engine"`

	ExcerptLength           int `yaml:"excerpt_length"`
	WordsPerMinute          int `yaml:"words_per_minute"`
	NumFrequentTags         int `yaml:"num_frequent_tags"`
	MinPostsForFrequentTags int `yaml:"min_posts_for_frequent_tags"`
}

// readConf loads the site configuration. An empty fileName yields the
// defaults, resolved against the working directory.
func readConf(fileName string) (*SiteConf, error) {
	conf := SiteConf{}
	baseDir := "."

	if fileName != "" {
		rawConf, err := os.ReadFile(fileName)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		switch strings.ToLower(filepath.Ext(fileName)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(rawConf, &conf)
		default:
			err = json.Unmarshal(rawConf, &conf)
		}
		if err != nil {
			return nil, fmt.Errorf("parse config %s: %w", fileName, err)
		}
		baseDir = filepath.Dir(fileName)
	}

	conf.setDefaults()

	// Normalize relative paths because the executable can be called from anywhere
	conf.WritingDir = normalizePath(conf.WritingDir, baseDir)
	conf.OutDir = normalizePath(conf.OutDir, baseDir)
	conf.LogoPath = normalizePath(conf.LogoPath, baseDir)
	conf.ImagesDir = normalizePath(conf.ImagesDir, baseDir)
	if conf.TemplateDir != "" {
		conf.TemplateDir = normalizePath(conf.TemplateDir, baseDir)
	}

	return &conf, nil
}

func (c *SiteConf) setDefaults() {
	if c.SiteTitle == "" {
		c.SiteTitle = "Blog"
	}
	if c.DefaultAuthor == "" {
		c.DefaultAuthor = "Editorial Team"
	}
	if c.WritingDir == "" {
		c.WritingDir = "blog"
	}
	if c.WritingFileExtension == "" {
		c.WritingFileExtension = ".md"
	}
	if !strings.HasPrefix(c.WritingFileExtension, ".") {
		c.WritingFileExtension = "." + c.WritingFileExtension
	}
	if c.OutDir == "" {
		c.OutDir = "blog_html"
	}
	if c.LogoPath == "" {
		c.LogoPath = "logo.svg"
	}
	if c.ImagesDir == "" {
		c.ImagesDir = "images"
	}
	if c.MarkdownEngine == "" {
		c.MarkdownEngine = engineBlackfriday
	}
	if c.ExcerptLength <= 0 {
		c.ExcerptLength = 300
	}
	if c.WordsPerMinute <= 0 {
		c.WordsPerMinute = 200
	}
	if c.NumFrequentTags == 0 {
		c.NumFrequentTags = 6
	}
	if c.MinPostsForFrequentTags == 0 {
		c.MinPostsForFrequentTags = 2
	}
	if c.BaseUrl != "" && !strings.HasSuffix(c.BaseUrl, "/") {
		c.BaseUrl += "/"
	}
}

// LogoName is the file name the logo is published under in the output root.
func (c *SiteConf) LogoName() string {
	return filepath.Base(c.LogoPath)
}

func normalizePath(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
