// Package scrape turns upstream HTML into catalog records. Extraction
// is driven by Strategy values so new page layouts are configuration,
// not code.
package scrape

import (
	"fmt"
	"strings"
)

// Strategy describes how to pull comic records out of one page layout.
// Containers are tried in order; within a container each field walks
// its selector chain and keeps the first non-empty hit.
type Strategy struct {
	Name             string   `yaml:"name"`
	Containers       []string `yaml:"containers"`
	TitleSelectors   []string `yaml:"title_selectors"`
	LinkSelectors    []string `yaml:"link_selectors"`
	ImageSelectors   []string `yaml:"image_selectors"`
	ChapterSelectors []string `yaml:"chapter_selectors"`
	DefaultChapter   string   `yaml:"default_chapter"`

	// LinkMustContain rejects records whose upstream href lacks every
	// listed fragment. Empty means no filtering.
	LinkMustContain []string `yaml:"link_must_contain"`

	// MinTitleLen rejects records with shorter titles. Zero means any
	// non-empty title passes.
	MinTitleLen int `yaml:"min_title_len"`

	// MaxRecords stops extraction once this many records were
	// collected. Zero means unbounded.
	MaxRecords int `yaml:"max_records"`
}

func (s *Strategy) normalizeAndValidate() error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Containers) == 0 {
		return fmt.Errorf("containers are required")
	}
	for i, c := range s.Containers {
		s.Containers[i] = strings.TrimSpace(c)
		if s.Containers[i] == "" {
			return fmt.Errorf("container %d is empty", i)
		}
	}
	if len(s.TitleSelectors) == 0 {
		s.TitleSelectors = []string{"h3 a", "h4 a", ".title a"}
	}
	if len(s.ImageSelectors) == 0 {
		s.ImageSelectors = []string{"img"}
	}
	if s.DefaultChapter == "" {
		s.DefaultChapter = "Unknown"
	}
	return nil
}

// WithoutLinkFilter returns a copy of the strategy with link filtering
// disabled. Used when the filtered pass produced nothing.
func (s Strategy) WithoutLinkFilter() Strategy {
	s.LinkMustContain = nil
	return s
}
