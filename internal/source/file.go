package source

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"keyword-match-service/internal/domain"
)

// fileTTL keeps file-backed sets from ever expiring in practice; the file
// is read once at startup.
const fileTTL = 24 * 365 * time.Hour

// File serves keyword sets from a local YAML file, keyed by
// "filter" or "filter:version". Used for air-gapped deployments where the
// hosted API is unreachable.
type File struct {
	sets map[string]domain.KeywordSet
}

type fileDoc struct {
	Sets map[string]domain.KeywordSet `yaml:"sets"`
}

func NewFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keywords file: %w", err)
	}

	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse keywords file: %w", err)
	}
	if len(doc.Sets) == 0 {
		return nil, fmt.Errorf("keywords file %s defines no sets", path)
	}

	return &File{sets: doc.Sets}, nil
}

func (f *File) Fetch(ctx context.Context, filter, version string) (*domain.KeywordSet, time.Duration, error) {
	key := filter
	if version != "" {
		key = filter + ":" + version
	}

	set, ok := f.sets[key]
	if !ok && version != "" {
		// A versionless entry serves all versions of its filter.
		set, ok = f.sets[filter]
	}
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", domain.ErrSetNotFound, filter)
	}

	return &set, fileTTL, nil
}
