package importer

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// LoadFile reads and parses a bookmarks.yaml file.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bookmarks file: %w", err)
	}
	return Parse(data)
}

// Parse decodes bookmarks YAML. Homepage template variables such as
// {{HOMEPAGE_VAR_URL}} are replaced with empty strings first.
func Parse(data []byte) (File, error) {
	data = templateVar.ReplaceAll(data, []byte(`""`))

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks yaml: %w", err)
	}
	return f, nil
}
