// Package importer reads Homepage-style bookmarks.yaml files and turns
// them into bookmark create requests.
package importer

// Entry is the property list of a single bookmark.
type Entry struct {
	Icon        string `yaml:"icon"`
	Abbr        string `yaml:"abbr"`
	Href        string `yaml:"href"`
	Description string `yaml:"description"`
}

// Group maps a group name to its bookmarks. Each bookmark name maps to a
// single-element list holding its Entry:
//
//	- Developer:
//	    - Github:
//	        - href: https://github.com
type Group map[string][]map[string][]Entry

// File is the root of bookmarks.yaml.
type File []Group
