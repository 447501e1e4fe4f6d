package main

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

const (
	engineBlackfriday = "blackfriday"
	engineGoldmark    = "goldmark"
)

type renderer interface {
	render(in []byte) (string, error)
}

func newMarkdownRenderer(engine string) (renderer, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", engineBlackfriday:
		return newBlackfridayRenderer(), nil
	case engineGoldmark:
		return newGoldmarkRenderer(), nil
	default:
		return nil, fmt.Errorf("markdown: unknown engine %q", engine)
	}
}

// markdownToHTML runs the full body conversion: list normalisation, the
// engine, then image path rewriting.
func markdownToHTML(r renderer, body string) (string, error) {
	out, err := r.render([]byte(normalizeLists(body)))
	if err != nil {
		return "", err
	}
	return rewriteImagePaths(out), nil
}

const blackfridayHTMLFlags = blackfriday.UseXHTML |
	blackfriday.Smartypants |
	blackfriday.SmartypantsFractions |
	blackfriday.SmartypantsLatexDashes

const blackfridayExtensions = blackfriday.NoIntraEmphasis |
	blackfriday.Tables |
	blackfriday.FencedCode |
	blackfriday.Autolink |
	blackfriday.Strikethrough |
	blackfriday.SpaceHeadings |
	blackfriday.AutoHeadingIDs

type blackfridayRenderer struct {
	flags      blackfriday.HTMLFlags
	extensions blackfriday.Extensions
}

func newBlackfridayRenderer() *blackfridayRenderer {
	return &blackfridayRenderer{blackfridayHTMLFlags, blackfridayExtensions}
}

func (b *blackfridayRenderer) render(in []byte) (string, error) {
	// The HTML renderer tracks heading ids, so every document gets its own.
	r := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: b.flags})
	return string(blackfriday.Run(in, blackfriday.WithRenderer(r), blackfriday.WithExtensions(b.extensions))), nil
}

type goldmarkRenderer struct {
	md goldmark.Markdown
}

func newGoldmarkRenderer() *goldmarkRenderer {
	return &goldmarkRenderer{md: goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithXHTML(),
			goldmarkhtml.WithUnsafe(),
		),
	)}
}

func (g *goldmarkRenderer) render(in []byte) (string, error) {
	var buf bytes.Buffer
	if err := g.md.Convert(in, &buf); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	return buf.String(), nil
}

var listItemPattern = regexp.MustCompile(`^\s*(?:[-*+]|\d+[.)])\s+\S`)

// normalizeLists makes sure every list block is separated from surrounding
// text by blank lines so it is not merged into a paragraph. Only blank lines
// are inserted; fenced code is left alone.
func normalizeLists(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines)+8)
	inList, inFence := false, false

	prevBlank := func() bool {
		return len(out) == 0 || strings.TrimSpace(out[len(out)-1]) == ""
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if inFence {
			out = append(out, line)
			if isFence(trimmed) {
				inFence = false
			}
			continue
		}

		switch {
		case listItemPattern.MatchString(line):
			if !inList && !prevBlank() {
				out = append(out, "")
			}
			inList = true
		case trimmed == "":
			// A blank line does not end a list; the next line decides.
		case inList && startsIndented(line):
			// Continuation of the current item.
		case inList:
			inList = false
			if !prevBlank() {
				out = append(out, "")
			}
		}

		if isFence(trimmed) {
			inFence = true
		}
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

func startsIndented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}

var imageSrcPrefix = regexp.MustCompile(`(<img\b[^>]*?\ssrc=")(?:\.\.?/)+`)

// rewriteImagePaths strips leading ../ and ./ segments from image sources so
// they resolve against the output root, where the images directory is copied.
func rewriteImagePaths(fragment string) string {
	return imageSrcPrefix.ReplaceAllString(fragment, "$1")
}
