// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package seed loads reference entities from a YAML file.

The file maps each reference collection to the names it should contain:

	temas:
	  - Programación
	  - Bases de datos
	idiomas:
	  - Español

Entities are created through the regular reference service, so the same
validation and uniqueness rules apply. Names that already exist are skipped,
which makes seeding safe to repeat.
*/
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/recursos/internal/catalog/reference"
	"github.com/taibuivan/recursos/internal/platform/apperr"
)

// File is the decoded seed document, keyed by collection name.
type File map[string][]string

// Creator stores a single reference entity. Implemented by [reference.Service].
type Creator interface {
	Create(ctx context.Context, kind *reference.Kind, input reference.Input) (reference.Entity, error)
}

// Result summarizes one seeding run.
type Result struct {
	Created int
	Skipped int
}

// Load reads and parses a seed file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: failed to read file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a seed document and rejects unknown collections.
func Parse(data []byte) (File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("seed: failed to parse yaml: %w", err)
	}

	var unknown []string
	for name := range file {
		if _, ok := reference.KindByName(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("seed: unknown collections: %s", strings.Join(unknown, ", "))
	}

	return file, nil
}

// Apply creates every entity in file, one collection at a time.
//
// Duplicates are counted as skipped. Any other failure aborts the run and is
// returned with the partial result.
func Apply(ctx context.Context, creator Creator, file File, logger *slog.Logger) (Result, error) {
	var result Result

	for _, kind := range reference.Kinds {
		for _, name := range file[kind.Name()] {
			_, err := creator.Create(ctx, kind, reference.Input{Nombre: name})
			switch {
			case err == nil:
				result.Created++
			case apperr.HasCode(err, "ALREADY_EXISTS"):
				result.Skipped++
				logger.Debug("seed_skipped_existing",
					slog.String("collection", kind.Name()),
					slog.String("nombre", name),
				)
			default:
				return result, fmt.Errorf("seed: %s %q: %w", kind.Name(), name, err)
			}
		}
	}

	logger.Info("seed_applied",
		slog.Int("created", result.Created),
		slog.Int("skipped", result.Skipped),
	)

	return result, nil
}
