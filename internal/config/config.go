// Package config loads the application settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/BurntSushi/toml"
)

type Brush struct {
	Small  float64 `toml:"small"`
	Medium float64 `toml:"medium"`
	Large  float64 `toml:"large"`
}

type Share struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

type Config struct {
	Width      float32 `toml:"width"`
	Height     float32 `toml:"height"`
	Color      string  `toml:"color"`
	GalleryDir string  `toml:"gallery_dir"`
	Brush      Brush   `toml:"brush"`
	Share      Share   `toml:"share"`
}

func Default() Config {
	return Config{
		Width:  1024,
		Height: 768,
		Color:  "#FF660000",
		Brush:  Brush{Small: 10, Medium: 20, Large: 30},
		Share:  Share{Port: 8888},
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("[CONFIG] %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	for _, key := range meta.Undecoded() {
		log.Printf("[CONFIG] Ignoring unknown key %q", key.String())
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Brush.Small <= 0 || c.Brush.Medium <= 0 || c.Brush.Large <= 0 {
		return fmt.Errorf("brush sizes must be positive, got %v/%v/%v", c.Brush.Small, c.Brush.Medium, c.Brush.Large)
	}
	if c.Share.Port < 0 || c.Share.Port > 65535 {
		return fmt.Errorf("share port %d out of range", c.Share.Port)
	}
	return nil
}

// LoadOrInit is Load, except that a missing file is created with the
// defaults so there is something to edit after the first run.
func LoadOrInit(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		if err := cfg.Save(path); err != nil {
			log.Printf("[CONFIG] Could not write defaults to %s: %v", path, err)
		} else {
			log.Printf("[CONFIG] Wrote defaults to %s", path)
		}
		return cfg, nil
	}
	return Load(path)
}

// Save writes the config as TOML.
func (c Config) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}
