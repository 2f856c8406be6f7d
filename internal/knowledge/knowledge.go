// Package knowledge provides the advisory corpus: a built-in seed set plus
// an optional YAML file override.
package knowledge

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/domain"
)

// Seed returns the built-in knowledge snippets. Kept small on purpose —
// production deployments replace it via a knowledge file.
func Seed() []domain.Document {
	return []domain.Document{
		{
			ID:       "pest_banana_leaf_spot",
			Text:     "For banana leaf spot (Sigatoka), use mancozeb or propiconazole as per label. Ensure proper sanitation and remove affected leaves.",
			Metadata: map[string]any{"crop": "Banana", "topic": "pest"},
		},
		{
			ID:       "rice_blast",
			Text:     "Rice blast can be managed with tricyclazole; avoid excess nitrogen and maintain field hygiene.",
			Metadata: map[string]any{"crop": "Rice", "topic": "disease"},
		},
		{
			ID:       "kerala_weather",
			Text:     "Check IMD Kerala district forecast; heavy rain June-Sep. Ensure drainage in low-lying fields.",
			Metadata: map[string]any{"topic": "weather"},
		},
		{
			ID:       "schemes_subsidy",
			Text:     "For subsidies, refer to Kerala Department of Agriculture e-Krishi portal and PM-KISAN eligibility.",
			Metadata: map[string]any{"topic": "scheme"},
		},
	}
}

// corpusFile is the on-disk knowledge file layout.
type corpusFile struct {
	Documents []domain.Document `yaml:"documents"`
}

// Load reads the corpus from a YAML file. An empty path returns the seed
// corpus. Documents must carry unique non-empty ids and non-empty text.
func Load(path string) ([]domain.Document, error) {
	if path == "" {
		return Seed(), nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read knowledge file %s: %w", path, err)
	}

	var file corpusFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse knowledge file %s: %w", path, err)
	}

	seen := make(map[string]struct{}, len(file.Documents))
	for i, d := range file.Documents {
		if d.ID == "" {
			return nil, fmt.Errorf("knowledge file %s: document %d has no id", path, i)
		}
		if d.Text == "" {
			return nil, fmt.Errorf("knowledge file %s: document %q has no text", path, d.ID)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("knowledge file %s: duplicate document id %q", path, d.ID)
		}
		seen[d.ID] = struct{}{}
	}

	return file.Documents, nil
}
