package aaslib

import (
	"io/ioutil"

	yaml "gopkg.in/yaml.v2"
)

// Settings holds the library's configuration tunables: the two libvar
// defaults the original reads at setup time (maxclients=128,
// maxentities=4096), plus the link-heap sizing and routing-cache knobs
// this translation exposes as first-class fields instead of string-typed
// libvars.
type Settings struct {
	MaxClients   int  `yaml:"max_clients"`
	MaxEntities  int  `yaml:"max_entities"`
	LinkHeapSize int  `yaml:"link_heap_size"`
	CacheRouting bool `yaml:"cache_routing"`
}

// DefaultSettings returns the original's shipped libvar defaults.
func DefaultSettings() Settings {
	return Settings{
		MaxClients:   128,
		MaxEntities:  4096,
		LinkHeapSize: 0, // 0 selects world.DefaultLinkHeapSize
		CacheRouting: true,
	}
}

// LoadSettings reads a YAML settings file, starting from DefaultSettings
// so an omitted field keeps its default rather than zeroing out.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}
	if err := yaml.Unmarshal(buf, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Save writes s to path in YAML format.
func (s Settings) Save(path string) error {
	buf, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, buf, 0644)
}
