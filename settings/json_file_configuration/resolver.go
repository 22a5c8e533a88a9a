package json_file_configuration

import (
	"fmt"
	"os"
	"path/filepath"
)

const pathEnv = "STEGANO_CONFIG"

type ConfigurationResolver interface {
	resolve() (string, error)
}

// Resolver looks at STEGANO_CONFIG first, then <user config dir>/stegano/conf.json.
type Resolver struct {
}

func newResolver() Resolver {
	return Resolver{}
}

func (r Resolver) resolve() (string, error) {
	if path := os.Getenv(pathEnv); path != "" {
		return path, nil
	}

	configDir, configDirErr := os.UserConfigDir()
	if configDirErr != nil {
		return "", fmt.Errorf("failed to resolve configuration path: %w", configDirErr)
	}

	return filepath.Join(configDir, "stegano", "conf.json"), nil
}
