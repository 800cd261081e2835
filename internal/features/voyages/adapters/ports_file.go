package adapters

import (
	"encoding/json"
	"fmt"
	"os"

	"voyage-tracker/internal/features/voyages/domain"
)

// LoadCatalogFile reads a port catalog from a JSON file holding a list
// of ports. Entry order is preserved, so ties in detection resolve to
// the earlier entry.
func LoadCatalogFile(path string) (*domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ports file: %w", err)
	}

	var ports []domain.Port
	if err := json.Unmarshal(data, &ports); err != nil {
		return nil, fmt.Errorf("failed to parse ports file %s: %w", path, err)
	}

	catalog, err := domain.NewCatalog(ports)
	if err != nil {
		return nil, fmt.Errorf("invalid ports file %s: %w", path, err)
	}

	return catalog, nil
}
