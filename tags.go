package main

import (
	"cmp"
	"slices"
	"strings"
)

type tagWithPosts struct {
	Tag   string
	Posts posts
}

// Posts grouped by tag. Create using groupByTag, which orders by number of
// posts per tag, then by newest post, then by name.
type postsByTag []tagWithPosts

func (pt *postsByTag) addPost(tag string, p *post) {
	for i, t := range *pt {
		if t.Tag == tag {
			(*pt)[i].Posts = append(t.Posts, p)
			return
		}
	}
	*pt = append(*pt, tagWithPosts{Tag: tag, Posts: posts{p}})
}

func (pt postsByTag) String() string {
	var b strings.Builder
	for _, t := range pt {
		b.WriteString(t.Tag)
		b.WriteString(": ")
		for i, p := range t.Posts {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Title)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Return the most frequent n tags that have at least minPosts posts.
func (pt postsByTag) frequentTags(n, minPosts int) []string {
	frequent := make([]string, 0, n)
	for i, t := range pt {
		if i == n || len(t.Posts) < minPosts {
			break
		}
		frequent = append(frequent, t.Tag)
	}
	return frequent
}

func groupByTag(ps posts) postsByTag {
	byTag := make(postsByTag, 0, 20)
	for _, p := range ps {
		for _, tag := range p.Tags {
			byTag.addPost(tag, p)
		}
	}

	slices.SortFunc(byTag, func(a, b tagWithPosts) int {
		if c := cmp.Compare(len(b.Posts), len(a.Posts)); c != 0 {
			return c
		}
		if c := b.Posts.latestDate().Compare(a.Posts.latestDate()); c != 0 {
			return c
		}
		return cmp.Compare(a.Tag, b.Tag)
	})

	return byTag
}
