// Command mdblog turns a directory of markdown posts with header blocks into
// a static blog: one page per post, an index ordered by pinned, featured and
// date flags, and optionally an Atom feed and a sitemap.
package main

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"time"
)

type Site struct {
	posts posts
	conf  *SiteConf
	out   outputWriter
	now   time.Time

	readLog   Logger
	renderLog Logger
	outputLog Logger
}

// ReadSite reads and resolves every post in the writing directory. Documents
// that cannot be read are logged and skipped; having no post left at all is
// an error, in which case nothing has been written.
func ReadSite(conf *SiteConf, drafts bool, loggers *loggerProvider) (*Site, error) {
	return readSiteAt(conf, drafts, loggers, time.Now())
}

func readSiteAt(conf *SiteConf, drafts bool, loggers *loggerProvider, now time.Time) (*Site, error) {
	site := &Site{
		posts:     make(posts, 0, 100),
		conf:      conf,
		out:       newFSWriter(conf.OutDir),
		now:       now,
		readLog:   loggers.get(readerLogger),
		renderLog: loggers.get(renderLogger),
		outputLog: loggers.get(outputLogger),
	}

	files, err := findPostFiles(conf.WritingDir, conf.WritingFileExtension)
	if err != nil {
		return nil, fmt.Errorf("blog directory %s: %w", conf.WritingDir, err)
	}
	site.readLog.Info("found documents", "count", len(files), "dir", conf.WritingDir)

	opts := postOptions{
		DefaultAuthor: conf.DefaultAuthor,
		ExcerptLength: conf.ExcerptLength,
		Now:           now,
	}
	for _, f := range files {
		p, err := readPostFromFile(f, opts, site.readLog)
		if err != nil {
			site.readLog.Warn("skipping document", "path", f, "error", err)
			continue
		}
		if p.Draft && !drafts {
			site.readLog.Info("skipping draft", "path", f)
			continue
		}
		site.posts = append(site.posts, p)
	}

	if len(site.posts) == 0 {
		return nil, noPostsError(conf.WritingDir)
	}

	site.posts.assignUniqueSlugs(site.readLog)
	return site, nil
}

func (s *Site) siteParam() siteParam {
	byTag := groupByTag(s.posts)
	s.renderLog.Debug("posts by tag", "groups", byTag.String())

	param := siteParam{
		SiteTitle:    s.conf.SiteTitle,
		Tagline:      s.conf.Tagline,
		HomeUrl:      s.conf.HomeUrl,
		LogoName:     s.conf.LogoName(),
		HasLogo:      fileExists(s.conf.LogoPath),
		FrequentTags: byTag.frequentTags(s.conf.NumFrequentTags, s.conf.MinPostsForFrequentTags),
	}
	if s.conf.BaseUrl != "" {
		param.FeedName = feedFileName
	}
	return param
}

// convertBodies renders every post body once. Posts whose body fails to
// convert are dropped like unreadable documents.
func (s *Site) convertBodies(te *templateEngine) error {
	kept := s.posts[:0]
	for _, p := range s.posts {
		rendered, err := markdownToHTML(te.toHtml, p.Body)
		if err != nil {
			s.renderLog.Warn("skipping post, markdown conversion failed", "path", p.SourcePath, "error", err)
			continue
		}
		p.RenderedHTML = template.HTML(rendered)
		p.ReadingTime = readingTime(rendered, s.conf.WordsPerMinute)
		kept = append(kept, p)
	}
	s.posts = kept

	if len(s.posts) == 0 {
		return noPostsError(s.conf.WritingDir)
	}
	return nil
}

func (s *Site) RenderHtml(te *templateEngine) error {
	if err := s.convertBodies(te); err != nil {
		return err
	}

	site := s.siteParam()

	// Render the posts.
	for _, p := range s.posts {
		var b bytes.Buffer
		if err := te.renderPost(newPostPageParam(site, p, s.conf.BaseUrl), &b); err != nil {
			return fmt.Errorf("render %s: %w", p.SourcePath, err)
		}
		if err := s.out.Write(p.FileName(), b.Bytes()); err != nil {
			return err
		}
		s.renderLog.Info("generated post", "file", p.FileName(), "source", p.SourcePath)
	}

	// Render index.html with every post in index order.
	var b bytes.Buffer
	entries := orderForIndex(s.posts)
	if err := te.renderIndex(newIndexPageParam(site, entries, s.conf.BaseUrl), &b); err != nil {
		return fmt.Errorf("render index: %w", err)
	}
	if err := s.out.Write("index.html", b.Bytes()); err != nil {
		return err
	}
	s.renderLog.Info("generated index", "posts", len(entries))
	return nil
}

// RenderAll writes the pages and, when a base URL is configured, the feed
// and the sitemap.
func (s *Site) RenderAll(te *templateEngine) error {
	if err := s.RenderHtml(te); err != nil {
		return err
	}
	if s.conf.BaseUrl == "" {
		return nil
	}
	if err := s.RenderAtom(); err != nil {
		return err
	}
	return s.RenderSitemap()
}

// CopyStaticFiles copies the logo and the images directory. Missing sources
// are reported and skipped.
func (s *Site) CopyStaticFiles() error {
	logo := s.conf.LogoPath
	if fileExists(logo) {
		if err := s.out.CopyFile(logo, s.conf.LogoName()); err != nil {
			return fmt.Errorf("copy logo: %w", err)
		}
		s.outputLog.Info("copied logo", "source", logo)
	} else {
		s.outputLog.Warn("logo not found", "error", assetMissingError(logo))
	}

	images := s.conf.ImagesDir
	if info, err := os.Stat(images); err == nil && info.IsDir() {
		if err := s.out.CopyTree(images, "images"); err != nil {
			return fmt.Errorf("copy images: %w", err)
		}
		s.outputLog.Info("copied images", "source", images)
	} else {
		s.outputLog.Info("images directory not found, skipping", "error", assetMissingError(images))
	}
	return nil
}
