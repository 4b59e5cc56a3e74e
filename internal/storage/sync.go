package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/misterclayt0n/weekplan/internal/catalog"
	"github.com/misterclayt0n/weekplan/internal/models"
)

// ExportConfig encodes people and exercise settings as TOML.
func (s *Store) ExportConfig(ctx context.Context) ([]byte, error) {
	st, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	export := models.ConfigExport{
		ExportedAt:     s.clock.Now().UTC(),
		ActivePersonID: st.ActivePersonID,
		People:         st.People,
		ExerciseConfig: st.ExerciseConfig,
	}

	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(export); err != nil {
		return nil, fmt.Errorf("encoding TOML: %w", err)
	}
	return []byte(sb.String()), nil
}

// ExportConfigToFile writes ExportConfig output to outputPath.
func (s *Store) ExportConfigToFile(ctx context.Context, outputPath string) error {
	data, err := s.ExportConfig(ctx)
	if err != nil {
		return err
	}
	outputPath, err = filepath.Abs(outputPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	return nil
}

// ImportConfig replaces people and exercise settings with the TOML document
// in data. Plans of people that are no longer present are dropped.
func (s *Store) ImportConfig(ctx context.Context, expectedRev *int64, data []byte) (*models.State, error) {
	var doc models.ConfigExport
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("Decoding TOML: %w", err)
	}
	if len(doc.People) == 0 {
		return nil, errors.New("import contains no people")
	}

	return s.mutate(ctx, "import_config", expectedRev, func(st *models.State) (bool, error) {
		now := s.clock.Now().UTC()
		st.People = doc.People
		st.ExerciseConfig = models.ExerciseConfig{
			DisabledExercises: catalog.NormalizeNames(doc.ExerciseConfig.DisabledExercises),
			CustomExercises:   catalog.NormalizeCustom(doc.ExerciseConfig.CustomExercises),
		}
		st.ActivePersonID = doc.ActivePersonID
		normalizeState(st, now, s.today())

		for personID := range st.Plans {
			if _, ok := st.Person(personID); !ok {
				delete(st.Plans, personID)
			}
		}
		return true, nil
	})
}

// ImportConfigFromFile reads a TOML export from filePath.
func (s *Store) ImportConfigFromFile(ctx context.Context, expectedRev *int64, filePath string) (*models.State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("Reading file %s: %w", filePath, err)
	}
	return s.ImportConfig(ctx, expectedRev, data)
}

// GetExportPath returns ~/.config/weekplan/config_export.toml, creating the
// directory if needed.
func GetExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "weekplan")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config_export.toml"), nil
}
