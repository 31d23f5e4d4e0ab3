package app

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/brandonleon/carbsmart/internal/domain/model"
)

// Seeder creates pans in an empty store.
type Seeder interface {
	Seed(ctx context.Context, pans []model.PanInput) (int, error)
}

type seedFile struct {
	Pans []model.PanInput `yaml:"pans"`
}

// LoadSeedFile reads a YAML document of the form
//
//	pans:
//	  - name: Dutch oven
//	    weight_grams: 2150.5
//	    capacity_label: 5 qt
func LoadSeedFile(path string) ([]model.PanInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	pans := make([]model.PanInput, 0, len(f.Pans))
	for _, p := range f.Pans {
		pans = append(pans, p.Normalize())
	}
	return pans, nil
}

// SeedPans loads path and hands its pans to seeder. An empty path is a no-op.
func SeedPans(ctx context.Context, seeder Seeder, path string) error {
	if path == "" {
		return nil
	}

	pans, err := LoadSeedFile(path)
	if err != nil {
		return err
	}

	created, err := seeder.Seed(ctx, pans)
	if err != nil {
		return err
	}
	if created > 0 {
		log.Info().Int("count", created).Str("file", path).Msg("Seeded pan library")
	}
	return nil
}
