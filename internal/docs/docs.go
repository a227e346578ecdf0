// Package docs serves the embedded help topics shown by `backlog docs`.
package docs

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed content/*.md
var contentFS embed.FS

// Topic is one embedded help page. Name is the lookup key (the lowercase
// file stem); Title comes from the page's first heading.
type Topic struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Topics lists the embedded topics sorted by name.
func Topics() []Topic {
	entries, err := fs.Glob(contentFS, "content/*.md")
	if err != nil {
		return nil
	}
	topics := make([]Topic, 0, len(entries))
	for _, path := range entries {
		name := strings.TrimSuffix(strings.TrimPrefix(path, "content/"), ".md")
		if name == "" {
			continue
		}
		body, err := contentFS.ReadFile(path)
		if err != nil {
			continue
		}
		topics = append(topics, Topic{Name: name, Title: title(string(body), name)})
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	return topics
}

// Get returns the markdown body for a topic name. Lookup trims surrounding
// space but is otherwise exact: topic names are lowercase.
func Get(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, "/\\") {
		return "", false
	}
	b, err := contentFS.ReadFile("content/" + name + ".md")
	if err != nil {
		return "", false
	}
	return string(b), true
}

func title(body, fallback string) string {
	for _, line := range strings.Split(body, "\n") {
		if after, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			return strings.TrimSpace(after)
		}
	}
	return fallback
}
