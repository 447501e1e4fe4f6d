package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/goliatone/go-slug"
)

const (
	defaultTitle = "Blog Post"
	defaultSlug  = "post"
	ellipsis     = "..."

	// Lines are collected for an excerpt until the text grows past this.
	excerptCollectLength = 200
)

// postOptions carries the defaults a document is resolved against.
type postOptions struct {
	DefaultAuthor string
	ExcerptLength int
	Now           time.Time
}

// findPostFiles lists the documents directly inside dir, sorted by path.
func findPostFiles(dir, fileExtension string) ([]string, error) {
	files := make([]string, 0, 100)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, fileExtension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func readPostFromFile(path string, opts postOptions, log Logger) (*post, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, documentReadError(path, err)
	}
	return newPost(string(content), path, opts, log)
}

// newPost builds the fully defaulted record for one document. Explicit header
// values win over derived values, derived values over fixed defaults.
func newPost(raw, sourcePath string, opts postOptions, log Logger) (*post, error) {
	h, body, err := parseHeader(raw)
	if err != nil {
		log.Warn("ignoring header block", "path", sourcePath, "error", err)
	}

	// The excerpt is taken from the text below the first heading, so it is
	// derived before a title heading is cut out of the body.
	excerpt := h.Excerpt
	if excerpt == "" {
		excerpt = deriveExcerpt(body, opts.ExcerptLength)
	}

	title := h.Title
	if title == "" {
		if heading, rest, ok := extractTitle(body); ok {
			title, body = heading, rest
		} else {
			title = defaultTitle
		}
	}

	displayDate := h.Date
	if displayDate == "" {
		displayDate = opts.Now.Format(displayDateLayout)
	}

	author := h.Author
	if author == "" {
		author = opts.DefaultAuthor
	}

	slugSource := h.Slug
	if slugSource == "" {
		slugSource = title
	}

	p := &post{
		Title:       title,
		DisplayDate: displayDate,
		Date:        normalizeDate(displayDate, log),
		Excerpt:     excerpt,
		Author:      author,
		Tags:        h.Tags,
		Slug:        slugify(slugSource),
		Pinned:      h.Pinned,
		Featured:    h.Featured,
		Draft:       h.Draft,
		Body:        body,
		SourcePath:  sourcePath,
	}
	if err := p.Validate(); err != nil {
		return nil, documentReadError(sourcePath, err)
	}
	return p, nil
}

// extractTitle finds the first level-1 heading outside code fences and returns
// its text together with the body without that line.
func extractTitle(body string) (string, string, bool) {
	lines := strings.Split(body, "\n")
	inFence := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isFence(trimmed) {
			inFence = !inFence
			continue
		}
		if inFence || !strings.HasPrefix(trimmed, "# ") {
			continue
		}
		title := strings.TrimSpace(trimmed[2:])
		if title == "" {
			continue
		}
		rest := append(lines[:i:i], lines[i+1:]...)
		return title, strings.TrimLeft(strings.Join(rest, "\n"), "\r\n"), true
	}
	return "", body, false
}

// deriveExcerpt summarises the prose after the first heading (or from the top
// when there is none), skipping blank lines, headings, emphasis-led lines,
// rules and code.
func deriveExcerpt(body string, maxLen int) string {
	lines := strings.Split(body, "\n")
	inFence := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isFence(trimmed) {
			inFence = !inFence
			continue
		}
		if !inFence && strings.HasPrefix(trimmed, "#") {
			lines = lines[i+1:]
			break
		}
	}

	var parts []string
	collected := 0
	inFence = false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isFence(trimmed) {
			inFence = !inFence
			continue
		}
		if inFence || trimmed == "" ||
			strings.HasPrefix(trimmed, "#") ||
			strings.HasPrefix(trimmed, "*") ||
			strings.HasPrefix(trimmed, "---") {
			continue
		}
		parts = append(parts, trimmed)
		collected += len(trimmed) + 1
		if collected > excerptCollectLength {
			break
		}
	}

	return truncateExcerpt(strings.Join(parts, " "), maxLen)
}

// truncateExcerpt caps text at maxLen runes including the ellipsis, cutting on
// a whitespace boundary.
func truncateExcerpt(text string, maxLen int) string {
	runes := []rune(text)
	if maxLen <= 0 || len(runes) <= maxLen {
		return text
	}

	cut := maxLen - len(ellipsis)
	if cut <= 0 {
		return string(runes[:maxLen])
	}

	head := runes[:cut]
	if !unicode.IsSpace(runes[cut]) {
		for i := len(head) - 1; i > 0; i-- {
			if unicode.IsSpace(head[i]) {
				head = head[:i]
				break
			}
		}
	}
	return strings.TrimRightFunc(string(head), unicode.IsSpace) + ellipsis
}

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// slugify lower-cases s and collapses every run of other characters into a
// single dash. Strings that already are slugs come back unchanged.
func slugify(s string) string {
	if slugPattern.MatchString(s) {
		return s
	}
	if normalized, err := slug.Normalize(s); err == nil && normalized != "" {
		s = normalized
	}
	s = strings.Trim(nonSlugRun.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if s == "" {
		return defaultSlug
	}
	return s
}

func isFence(trimmed string) bool {
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}
