package scrape

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFromDir reads extraction strategies from every .yaml/.yml file
// in dirPath. A missing or empty directory is not an error. Files that
// fail to parse or validate are skipped; their errors are joined so
// one bad file never blocks the rest.
func LoadFromDir(dirPath string) ([]Strategy, error) {
	trimmed := strings.TrimSpace(dirPath)
	if trimmed == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read strategies dir: %w", err)
	}

	files := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		lower := strings.ToLower(entry.Name())
		if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
			files = append(files, filepath.Join(trimmed, entry.Name()))
		}
	}
	sort.Strings(files)

	loaded := make([]Strategy, 0, len(files))
	failures := make([]string, 0)

	for _, filePath := range files {
		content, err := os.ReadFile(filePath)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", filepath.Base(filePath), err))
			continue
		}

		var strategy Strategy
		if err := yaml.Unmarshal(content, &strategy); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", filepath.Base(filePath), err))
			continue
		}
		if err := strategy.normalizeAndValidate(); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", filepath.Base(filePath), err))
			continue
		}
		loaded = append(loaded, strategy)
	}

	if len(failures) > 0 {
		return loaded, fmt.Errorf("strategies failed to load: %s", strings.Join(failures, " | "))
	}
	return loaded, nil
}
