package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/lintang-b-s/shadowgraph/pkg/export"
	"github.com/lintang-b-s/shadowgraph/pkg/kv"
	"github.com/lintang-b-s/shadowgraph/pkg/osmparser"
)

type Config struct {
	Build   Build   `toml:"build"`
	Storage Storage `toml:"storage"`
	Server  Server  `toml:"server"`
	Export  Export  `toml:"export"`
}

type Build struct {
	NetworkType string `toml:"network_type"`
	Workers     int    `toml:"workers"`
}

type Storage struct {
	Backend string `toml:"backend"`
	// empty path keeps the store in memory
	Path    string `toml:"path"`
	Dataset string `toml:"dataset"`
}

type Server struct {
	ListenAddr string `toml:"listen_addr"`
}

type Export struct {
	Dir                string   `toml:"dir"`
	RemoveInternalData bool     `toml:"remove_internal_data"`
	GeoJSON            []string `toml:"geojson"`
	SimplifyMeters     float64  `toml:"simplify_meters"`
}

func Default() Config {
	return Config{
		Build: Build{
			NetworkType: string(osmparser.NetworkDrive),
			Workers:     runtime.NumCPU(),
		},
		Storage: Storage{
			Backend: string(kv.BackendBadger),
			Path:    "./shadowgraph.db",
			Dataset: "default",
		},
		Server: Server{
			ListenAddr: ":5000",
		},
		Export: Export{
			Dir: "",
		},
	}
}

// Load reads the toml file at path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(err, "can't decode config")
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, err := osmparser.ParseNetworkType(c.Build.NetworkType); err != nil {
		return err
	}
	if c.Build.Workers < 1 {
		return fmt.Errorf("build.workers must be positive, got %d", c.Build.Workers)
	}
	switch kv.Backend(c.Storage.Backend) {
	case kv.BackendBadger, kv.BackendPebble:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Dataset == "" {
		return errors.New("storage.dataset is empty")
	}
	for _, s := range c.Export.GeoJSON {
		if _, err := export.ParseSeries(s); err != nil {
			return err
		}
	}
	return nil
}
