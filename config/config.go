// Package config the configuration
package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/jbaldus/shorten/cache"
	"github.com/jbaldus/shorten/client"
	"github.com/jbaldus/shorten/utils"
)

// DefaultPath the default configuration file path.
const DefaultPath = "~/.config/shorten/config.yml"

type configKey struct{}

// NewContext returns a context that contains the given Config.
func NewContext(ctx context.Context, config Config) context.Context {
	return context.WithValue(ctx, configKey{}, config)
}

// FromContext returns the Config stored in ctx by NewContext, or the default
// Config if there is none.
func FromContext(ctx context.Context) Config {
	if config, ok := ctx.Value(configKey{}).(Config); ok {
		return config
	}
	return DefaultConfig()
}

// Config The shorten configuration
type Config struct {
	// Cache the shortened URL cache
	Cache cache.Options `yaml:"cache"`

	// Client the shortening provider client
	Client client.Options `yaml:"client"`
}

// DefaultConfig The default configuration
func DefaultConfig() Config {
	return Config{
		Cache: cache.Options{
			Path: "~/.cache/shorten",
		},
		Client: client.Options{
			Endpoint: client.DefaultEndpoint,
			Timeout:  client.DefaultTimeout,
		},
	}
}

// ReadConfig read configuration from the file.
// If the configuration file is not existing then return the default
// configuration, creating its directory for a later write.
func ReadConfig(path string) (config Config, err error) {
	file, err := utils.ExpandPath(path)
	if err != nil {
		return config, err
	}
	if _, err = os.Stat(file); errors.Is(err, os.ErrNotExist) {
		if err = os.MkdirAll(filepath.Dir(file), os.ModePerm); err != nil {
			return config, err
		}
		return DefaultConfig(), nil
	}

	return utils.ReadYaml[Config](file)
}
