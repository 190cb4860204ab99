package site

import (
	"encoding/json"
	"os"

	"github.com/yacademy/researchsite/internal/search"
)

// WriteSearchIndex writes the search index as JSON to the given path. The
// browser script searches it when no server is available.
func WriteSearchIndex(entries []search.Entry, outputPath string) error {
	if entries == nil {
		entries = []search.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
