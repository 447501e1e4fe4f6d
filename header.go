package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// header holds the recognised fields of a document's header block. Zero values
// mean the field was absent.
type header struct {
	Title    string
	Date     string
	Excerpt  string
	Author   string
	Tags     []string
	Slug     string
	Pinned   bool
	Featured bool
	Draft    bool
}

type headerEnvelope struct {
	Title    string `yaml:"title" toml:"title" json:"title"`
	Date     any    `yaml:"date" toml:"date" json:"date"`
	Excerpt  string `yaml:"excerpt" toml:"excerpt" json:"excerpt"`
	Summary  string `yaml:"summary" toml:"summary" json:"summary"`
	Author   string `yaml:"author" toml:"author" json:"author"`
	Tags     any    `yaml:"tags" toml:"tags" json:"tags"`
	Slug     string `yaml:"slug" toml:"slug" json:"slug"`
	Pinned   bool   `yaml:"pinned" toml:"pinned" json:"pinned"`
	Featured bool   `yaml:"featured" toml:"featured" json:"featured"`
	Draft    bool   `yaml:"draft" toml:"draft" json:"draft"`
}

// parseHeader splits raw into its header block and body. Documents without a
// header block come back with an empty header and raw as the body. A header
// block that fails to decode is treated the same way; the returned error
// only describes what was ignored.
func parseHeader(raw string) (header, string, error) {
	if !startsWithHeaderMarker(raw) {
		return header{}, raw, nil
	}
	raw = strings.TrimPrefix(raw, "\ufeff")

	var env headerEnvelope

	rest, err := frontmatter.Parse(strings.NewReader(raw), &env)
	if err != nil {
		return header{}, raw, headerParseError(err)
	}

	return envelopeToHeader(env), strings.TrimSpace(string(rest)), nil
}

// Opening delimiters of the YAML, TOML and JSON header formats.
var headerMarkers = []string{"---", "---yaml", "+++", "---toml", ";;;", "---json"}

func startsWithHeaderMarker(raw string) bool {
	first, _, _ := strings.Cut(strings.TrimPrefix(raw, "\ufeff"), "\n")
	first = strings.TrimSpace(first)
	for _, m := range headerMarkers {
		if first == m {
			return true
		}
	}
	return false
}

func envelopeToHeader(env headerEnvelope) header {
	h := header{
		Title:    strings.TrimSpace(env.Title),
		Date:     headerDate(env.Date),
		Excerpt:  strings.TrimSpace(env.Excerpt),
		Author:   strings.TrimSpace(env.Author),
		Tags:     headerTags(env.Tags),
		Slug:     strings.TrimSpace(env.Slug),
		Pinned:   env.Pinned,
		Featured: env.Featured,
		Draft:    env.Draft,
	}
	if h.Excerpt == "" {
		h.Excerpt = strings.TrimSpace(env.Summary)
	}
	return h
}

// headerDate turns a decoded date value into display text. YAML timestamps
// arrive as time.Time, everything else is kept as written.
func headerDate(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format(displayDateLayout)
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// headerTags accepts a list or a comma separated string.
func headerTags(value any) []string {
	var raw []string
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		raw = strings.Split(v, ",")
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			raw = append(raw, fmt.Sprint(item))
		}
	default:
		raw = []string{fmt.Sprint(v)}
	}

	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
