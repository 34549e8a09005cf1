package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
)

// DefaultPath is where the viewer looks for its config file.
const DefaultPath = "flowscope.toml"

type Config struct {
	LogLevel string `toml:"log_level"`
	Window   Window `toml:"window"`
	Feed     Feed   `toml:"feed"`
	Export   Export `toml:"export"`
}

type Window struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

type Feed struct {
	// URL of the topology feed; empty means discover via mDNS.
	URL      string `toml:"url"`
	Discover bool   `toml:"discover"`
	// Share re-serves the received topology to other viewers.
	Share     bool `toml:"share"`
	SharePort int  `toml:"share_port"`
}

type Export struct {
	// Dir receives timestamped PDF snapshots.
	Dir string `toml:"dir"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Window:   Window{Width: 1024, Height: 768},
		Feed:     Feed{Discover: true, SharePort: 8844},
		Export:   Export{Dir: "."},
	}
}

// Load reads the config file at path, applying defaults for anything
// unset. A missing file is not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.WithField("path", path).Debug("no config file, using defaults")
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}

	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return Config{}, fmt.Errorf("config %s: window size must be positive", path)
	}
	if cfg.Feed.Share && (cfg.Feed.SharePort <= 0 || cfg.Feed.SharePort > 65535) {
		return Config{}, fmt.Errorf("config %s: invalid share_port %d", path, cfg.Feed.SharePort)
	}
	return cfg, nil
}
