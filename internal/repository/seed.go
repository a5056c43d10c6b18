package repository

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Shivanand-hulikatti/activities-board/internal/model"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedFile struct {
	Activities []model.Entry `yaml:"activities"`
}

// DefaultSeed returns the built-in catalog.
func DefaultSeed() (model.Catalog, error) {
	return ParseSeed(defaultSeed)
}

// LoadSeed reads a seed catalog from path, or the built-in one when path is empty.
func LoadSeed(path string) (model.Catalog, error) {
	if path == "" {
		return DefaultSeed()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a YAML seed document.
func ParseSeed(data []byte) (model.Catalog, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	seen := make(map[string]bool, len(f.Activities))
	for _, e := range f.Activities {
		if e.Name == "" {
			return nil, fmt.Errorf("parse seed: activity without a name")
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("parse seed: duplicate activity %q", e.Name)
		}
		if e.Activity.MaxParticipants < 0 {
			return nil, fmt.Errorf("parse seed: %q has negative max_participants", e.Name)
		}
		if len(e.Activity.Participants) > e.Activity.MaxParticipants {
			return nil, fmt.Errorf("parse seed: %q has more participants than max_participants", e.Name)
		}
		emails := make(map[string]bool, len(e.Activity.Participants))
		for _, email := range e.Activity.Participants {
			key := strings.ToLower(email)
			if emails[key] {
				return nil, fmt.Errorf("parse seed: %q lists %q twice", e.Name, email)
			}
			emails[key] = true
		}
		seen[e.Name] = true
	}
	return model.Catalog(f.Activities), nil
}
