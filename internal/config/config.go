package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Cache struct {
		Path string `yaml:"path"`
	} `yaml:"cache"`
	Scan struct {
		// Extra extension -> language id mappings, merged over the
		// built-in detection table.
		Languages map[string]string `yaml:"languages"`
		Ignored   []string          `yaml:"ignored"`
	} `yaml:"scan"`
}

// LoadConfig reads the YAML config, falling back to defaults when the
// file is absent. Environment variables win over both.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.Cache.Path = "foldspan.db"

	// 2. Load YAML config (optional)
	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if cachePath := os.Getenv("FOLDSPAN_CACHE"); cachePath != "" {
		cfg.Cache.Path = cachePath
	}

	return cfg, nil
}
