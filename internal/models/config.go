package models

import "time"

// Config represents the main configuration
type Config struct {
	HTTP       HTTPConfig       `mapstructure:"http"`
	Output     OutputConfig     `mapstructure:"output"`
	Conversion ConversionConfig `mapstructure:"conversion"`
	Lists      []FilterList     `mapstructure:"lists"`
}

// HTTPConfig contains HTTP client settings
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Retries int           `mapstructure:"retries"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	MaxEntriesPerFile int  `mapstructure:"max_entries_per_file"`
	GenerateCombined  bool `mapstructure:"generate_combined"`
}

// ConversionConfig contains compiler settings shared by a conversion run
type ConversionConfig struct {
	AdvancedBlocking bool `mapstructure:"advanced_blocking"`
	MaxEntries       int  `mapstructure:"max_entries"`
}

// FilterList represents a single filter list configuration
type FilterList struct {
	Name    string `mapstructure:"name"`
	URL     string `mapstructure:"url"`
	Enabled bool   `mapstructure:"enabled"`
}

// EnabledLists returns only enabled filter lists
func (c *Config) EnabledLists() []FilterList {
	var enabled []FilterList
	for _, l := range c.Lists {
		if l.Enabled {
			enabled = append(enabled, l)
		}
	}
	return enabled
}
