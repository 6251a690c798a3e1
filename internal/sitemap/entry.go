package sitemap

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/jpmhone/folio/pkg/validator"
)

var (
	ErrInvalidEntry    = errors.New("invalid sitemap entry")
	ErrLoadStaticFile  = errors.New("failed to load sitemap static entries")
	validChangeFreqs   = []string{"always", "hourly", "daily", "weekly", "monthly", "yearly", "never"}
	defaultStaticPages = []Entry{
		{Path: "/", Priority: 1.0, ChangeFreq: "weekly"},
		{Path: "/blog", Priority: 0.9, ChangeFreq: "daily"},
		{Path: "/cybersecurity", Priority: 0.8, ChangeFreq: "monthly"},
		{Path: "/software", Priority: 0.8, ChangeFreq: "monthly"},
		{Path: "/search", Priority: 0.6, ChangeFreq: "monthly"},
	}
)

// Entry is a site-relative page listed in the sitemap.
type Entry struct {
	Path       string  `yaml:"path"`
	Priority   float64 `yaml:"priority"`
	ChangeFreq string  `yaml:"changefreq"`
}

func (e Entry) Validate() error {
	if err := validator.Apply(
		validator.StartsWith("path", e.Path, "/"),
		validator.MinNum("priority", e.Priority, 0),
		validator.MaxNum("priority", e.Priority, 1),
		validator.InListString("changefreq", e.ChangeFreq, validChangeFreqs),
	); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidEntry, e.Path, err)
	}
	return nil
}

// DefaultEntries returns the built-in static pages.
func DefaultEntries() []Entry {
	return slices.Clone(defaultStaticPages)
}

type staticFile struct {
	Pages []Entry `yaml:"pages"`
}

// ParseEntries decodes a YAML document of the form:
//
//	pages:
//	  - path: /
//	    priority: 1.0
//	    changefreq: weekly
func ParseEntries(data []byte) ([]Entry, error) {
	var f staticFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Join(ErrLoadStaticFile, err)
	}
	for _, e := range f.Pages {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Pages, nil
}

// LoadEntries reads static entries from path, or returns DefaultEntries
// when path is empty.
func LoadEntries(path string) ([]Entry, error) {
	if path == "" {
		return DefaultEntries(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrLoadStaticFile, err)
	}
	return ParseEntries(data)
}
