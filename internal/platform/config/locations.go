package config

import (
	"fmt"
	"log"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// defaultLocations is the built-in location taxonomy, used when no
// locations file is provided. Codes come from deployment data; 111 is the
// Emergency Kit location.
var defaultLocations = map[string]string{
	"101": "Main Floor",
	"102": "Back Storage",
	"103": "Refrigerator",
	"104": "Controlled Substances",
	"105": "OTC Section",
	"111": "Emergency Kit",
}

var (
	locMu     sync.RWMutex
	locations = defaultLocations
)

type locationsFile struct {
	Locations map[string]string `yaml:"locations"`
}

// LoadLocations replaces the taxonomy with the contents of a YAML file of
// the form:
//
//	locations:
//	  "101": Main Floor
//	  "102": Back Storage
//
// Missing files leave the built-in defaults in place.
func LoadLocations(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Locations file %s not found, using built-in taxonomy.", path)
			return nil
		}
		return fmt.Errorf("failed to read locations file: %w", err)
	}
	var f locationsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("failed to parse locations file: %w", err)
	}
	if len(f.Locations) == 0 {
		return fmt.Errorf("locations file %s defines no locations", path)
	}
	locMu.Lock()
	locations = f.Locations
	locMu.Unlock()
	log.Printf("Loaded %d location(s) from %s", len(f.Locations), path)
	return nil
}

// LocationName resolves a location code to its display name. Unknown codes
// render as "Location <code>".
func LocationName(code string) string {
	locMu.RLock()
	name, ok := locations[code]
	locMu.RUnlock()
	if !ok {
		return "Location " + code
	}
	return name
}
