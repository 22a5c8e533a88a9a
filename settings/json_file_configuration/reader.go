package json_file_configuration

import (
	"encoding/json"
	"fmt"
	"os"
	"stegano/domain/stego"
	"stegano/settings"
)

const (
	strategyEnv    = "STEGANO_STRATEGY"
	primeSourceEnv = "STEGANO_PRIME_SOURCE"
	primeCacheEnv  = "STEGANO_PRIME_CACHE"
)

type reader struct {
	path string
}

func newReader(path string) *reader {
	return &reader{
		path: path,
	}
}

func (c *reader) read() (*settings.Configuration, error) {
	if !c.fileExists(c.path) {
		return nil, fmt.Errorf("configuration file does not exist: %s", c.path)
	}

	fileBytes, readFileErr := os.ReadFile(c.path)
	if readFileErr != nil {
		return nil, fmt.Errorf("configuration file (%s) is unreadable: %s", c.path, readFileErr)
	}

	configuration := settings.NewDefaultConfiguration()
	deserializationErr := json.Unmarshal(fileBytes, &configuration)
	if deserializationErr != nil {
		return nil, fmt.Errorf("configuration file (%s) is invalid: %s", c.path, deserializationErr)
	}

	c.setEnvStrategy(&configuration)
	c.setEnvPrimeSource(&configuration)
	c.setEnvPrimeCache(&configuration)

	return &configuration, nil
}

func (c *reader) fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (c *reader) setEnvStrategy(conf *settings.Configuration) {
	envStrategy := os.Getenv(strategyEnv)
	if envStrategy != "" {
		strategy, parseErr := stego.ParseStrategy(envStrategy)
		if parseErr == nil {
			conf.Strategy = strategy
		}
	}
}

func (c *reader) setEnvPrimeSource(conf *settings.Configuration) {
	envSource := os.Getenv(primeSourceEnv)
	if envSource != "" {
		source, parseErr := settings.ParsePrimeSource(envSource)
		if parseErr == nil {
			conf.PrimeSource = source
		}
	}
}

func (c *reader) setEnvPrimeCache(conf *settings.Configuration) {
	envPath := os.Getenv(primeCacheEnv)
	if envPath != "" {
		conf.PrimeCachePath = envPath
	}
}
