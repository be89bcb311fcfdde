package importer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/redmonkez12/bookmark-api/internal/bookmark"
	"github.com/redmonkez12/bookmark-api/internal/validation"
)

// Skipped records an entry that could not be imported.
type Skipped struct {
	Group  string
	Name   string
	Reason string
}

// Result is the outcome of mapping a File.
type Result struct {
	Requests []bookmark.CreateBookmarkRequest
	Skipped  []Skipped
}

// Map converts f into create requests in file order. The bookmark name
// becomes the title. The entry description is used when present,
// otherwise the group name. Entries without a valid href and repeated
// hrefs are skipped.
func Map(f File) Result {
	var res Result
	seen := make(map[string]bool)

	for _, group := range f {
		for _, groupName := range sortedKeys(group) {
			for _, named := range group[groupName] {
				for _, name := range sortedKeys(named) {
					entries := named[name]
					if len(entries) == 0 {
						res.Skipped = append(res.Skipped, Skipped{Group: groupName, Name: name, Reason: "no properties"})
						continue
					}
					entry := entries[0]
					href := strings.TrimSpace(entry.Href)

					if seen[href] && href != "" {
						res.Skipped = append(res.Skipped, Skipped{Group: groupName, Name: name, Reason: "duplicate href"})
						continue
					}

					title := strings.TrimSpace(name)
					if title == "" {
						title = entry.Abbr
					}

					description := strings.TrimSpace(entry.Description)
					if description == "" {
						description = groupName
					}

					req := bookmark.CreateBookmarkRequest{
						Title:       title,
						Description: &description,
						Link:        href,
					}
					if err := validation.Struct(&req); err != nil {
						res.Skipped = append(res.Skipped, Skipped{Group: groupName, Name: name, Reason: err.Error()})
						continue
					}

					seen[href] = true
					res.Requests = append(res.Requests, req)
				}
			}
		}
	}

	return res
}

func (s Skipped) String() string {
	return fmt.Sprintf("%s / %s: %s", s.Group, s.Name, s.Reason)
}

// sortedKeys keeps output stable when a YAML mapping has more than one key.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
