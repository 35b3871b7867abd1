// Package config handles the migrator's configuration surface.
//
// All choices are resolved once, before the engine runs: an optional TOML
// file supplies defaults, command-line flags override it, and the resulting
// struct is immutable from the engine's point of view. The engine itself
// never prompts.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the per-run migration options.
type Config struct {
	// OverwriteOutput destructively clears a non-empty output directory
	// before the rewrite pass. Without it a non-empty output aborts the run.
	OverwriteOutput bool `toml:"overwrite_output"`

	// AddProvenanceTag adds the source/craft tag to every converted note.
	AddProvenanceTag bool `toml:"add_provenance_tag"`

	// RemoveBrokenImageLinks strips embeds whose attachment was missing
	// from the export. Broken internal links are never affected.
	RemoveBrokenImageLinks bool `toml:"remove_broken_image_links"`

	// DeleteEmptyNotes drops notes whose converted body is empty.
	DeleteEmptyNotes bool `toml:"delete_empty_notes"`
}

// Load reads a config file. A missing path or missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
