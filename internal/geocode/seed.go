package geocode

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/meeting-locator/internal/domain"
)

// seedEntry is one record of the YAML seed file:
//
//	- address: "100 Main St, Springfield, MA 01103"
//	  lat: 42.1015
//	  lon: -72.5898
type seedEntry struct {
	Address string  `yaml:"address"`
	Lat     float64 `yaml:"lat"`
	Lon     float64 `yaml:"lon"`
}

// LoadSeed reads a YAML file of known address → coordinate mappings.
func LoadSeed(path string) (map[string]domain.Coordinates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var entries []seedEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	known := make(map[string]domain.Coordinates, len(entries))
	for i, e := range entries {
		if e.Address == "" {
			return nil, fmt.Errorf("seed entry %d: missing address", i)
		}
		known[e.Address] = domain.Coordinates{Lat: e.Lat, Lon: e.Lon}
	}
	return known, nil
}
