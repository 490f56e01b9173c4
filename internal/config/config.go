// Package config loads musing's server configuration: a TOML file
// (github.com/pelletier/go-toml/v2) overlaid with CLI flags
// (github.com/spf13/pflag), per spec.md §6's Configuration section.
// Restructured from the teacher's internal/config/config.go Manager
// (which loads/saves a JSON per-user settings file) into a one-shot
// load-at-startup reader, since spec.md's config is process bootstrap
// input, not mutable daemon state the server writes back out.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
)

// Config holds the four settings spec.md §6 names, plus the log level.
type Config struct {
	Port         int    `toml:"port"`
	MusicDir     string `toml:"music_dir"`
	PlaylistDir  string `toml:"playlist_dir"`
	AudioDevice  string `toml:"audio_device"`
	LogLevel     string `toml:"log_level"`
}

func defaults() Config {
	return Config{
		Port:        2137,
		AudioDevice: "default",
		LogLevel:    "info",
	}
}

// Load reads file (if it exists) and overlays any flags the caller
// explicitly set on fs, CLI over file over defaults.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	cfg := defaults()

	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	applyFlagOverride(fs, "port", func(v string) { fmt.Sscanf(v, "%d", &cfg.Port) })
	applyFlagOverride(fs, "music-dir", func(v string) { cfg.MusicDir = v })
	applyFlagOverride(fs, "playlist-dir", func(v string) { cfg.PlaylistDir = v })
	applyFlagOverride(fs, "audio-device", func(v string) { cfg.AudioDevice = v })
	applyFlagOverride(fs, "log-level", func(v string) { cfg.LogLevel = v })

	if cfg.MusicDir == "" {
		return Config{}, fmt.Errorf("music_dir is required (config file or --music-dir)")
	}
	return cfg, nil
}

func applyFlagOverride(fs *pflag.FlagSet, name string, set func(string)) {
	f := fs.Lookup(name)
	if f != nil && f.Changed {
		set(f.Value.String())
	}
}

// RegisterFlags declares the CLI overlay flags on fs, per SPEC_FULL.md §6.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Int("port", 2137, "TCP listen port")
	fs.String("music-dir", "", "library root directory")
	fs.String("playlist-dir", "", "M3U playlist directory")
	fs.String("audio-device", "default", "designated output device name")
	fs.String("log-level", "info", "zerolog level name")
}
