package json_file_configuration

import (
	"fmt"
	"os"
	"stegano/settings"
)

type Manager struct {
	resolver ConfigurationResolver
}

func NewManager() *Manager {
	return &Manager{
		resolver: newResolver(),
	}
}

// Configuration reads the configuration file, writing the defaults first
// when it does not exist yet.
func (c *Manager) Configuration() (*settings.Configuration, error) {
	path, pathErr := c.resolver.resolve()
	if pathErr != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", pathErr)
	}

	_, statErr := os.Stat(path)
	if statErr != nil {
		configuration := settings.NewDefaultConfiguration()
		w := newWriter(c.resolver)
		writeErr := w.Write(configuration)
		if writeErr != nil {
			return nil, fmt.Errorf("could not write default configuration: %s", writeErr)
		}
	}
	return newReader(path).read()
}

func (c *Manager) Save(configuration settings.Configuration) error {
	w := newWriter(c.resolver)
	return w.Write(configuration)
}
