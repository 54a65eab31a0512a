package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/typetower/pkg/pipeline"
)

// configFileName is the per-project config file looked up in the working
// directory.
const configFileName = ".typetower.toml"

// Config holds user defaults loaded from a TOML config file. Command-line
// flags always win over config values.
type Config struct {
	Languages   []string `toml:"languages"`
	PackageName string   `toml:"package_name"`
	RootName    string   `toml:"root_name"`
}

// apply copies config defaults into opts for every field the user has not
// already set.
func (c Config) apply(opts *pipeline.Options) {
	if len(opts.Languages) == 0 {
		opts.Languages = c.Languages
	}
	if opts.PackageName == "" {
		opts.PackageName = c.PackageName
	}
	if opts.RootName == "" {
		opts.RootName = c.RootName
	}
}

// loadConfig reads the first config file found: .typetower.toml in the
// working directory, then config.toml under the user config directory.
// Missing files yield a zero Config; malformed files log a warning and are
// ignored so a broken config never blocks generation.
func loadConfig(logger *log.Logger) Config {
	for _, path := range configPaths() {
		cfg, err := readConfig(path)
		if err == nil {
			return cfg
		}
		if !os.IsNotExist(err) {
			logger.Warnf("Ignoring config %s: %v", path, err)
		}
	}
	return Config{}
}

func configPaths() []string {
	paths := []string{configFileName}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, appName, "config.toml"))
	}
	return paths
}

func readConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
