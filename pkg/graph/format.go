package graph

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/mindscape/pkg/errors"
)

// Serialization formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatFromPath returns the format implied by a file extension.
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer format from extension %q of %s", ext, path)
	}
}
