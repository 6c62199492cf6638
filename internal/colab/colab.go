// Package colab renders markdown links that open repository notebooks in
// Google Colab.
package colab

import (
	"fmt"
	"strings"

	"github.com/clintrovert/nbactions/pkg/types"
)

const (
	baseURL  = "https://colab.research.google.com/github"
	badgeURL = "https://colab.research.google.com/assets/colab-badge.svg"
)

// URL returns the Colab URL for path on branch of repo ("owner/name").
// The path is used verbatim.
func URL(path, branch, repo string) string {
	return fmt.Sprintf("%s/%s/blob/%s/%s", baseURL, repo, branch, path)
}

// Link renders a plain markdown link labelled with the path.
func Link(path, branch, repo string) string {
	return fmt.Sprintf("[%s](%s)", path, URL(path, branch, repo))
}

// Badge renders a markdown link using the "Open in Colab" badge image.
func Badge(path, branch, repo string) string {
	return fmt.Sprintf("[![badge](%s)](%s)", badgeURL, URL(path, branch, repo))
}

// SourceLink renders a markdown link to the file on github.com.
func SourceLink(path, branch, repo string) string {
	return fmt.Sprintf("[%s](https://github.com/%s/blob/%s/%s)", path, repo, branch, path)
}

// ComposeBody joins title and links, one bulleted link per line.
func ComposeBody(title string, links []string) string {
	parts := make([]string, 0, len(links)+1)
	parts = append(parts, title)
	parts = append(parts, links...)
	return strings.Join(parts, "\n -")
}

// NewDraft renders a plain link for every file, in order, under title.
func NewDraft(title string, files []string, branch, repo string) types.CommentDraft {
	links := make([]string, 0, len(files))
	for _, f := range files {
		links = append(links, Link(f, branch, repo))
	}
	return types.CommentDraft{
		Title: title,
		Links: links,
		Body:  ComposeBody(title, links),
	}
}
