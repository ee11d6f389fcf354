package storage

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// New creates the configured storage wrapped with retries
func New(config *StorageConfig, retry *RetryConfig, logger *logrus.Logger) (FileStorage, error) {
	if config == nil {
		return nil, fmt.Errorf("storage config cannot be nil")
	}

	switch config.Type {
	case "", "local":
		if config.BasePath == "" {
			return nil, fmt.Errorf("base_path is required for local storage")
		}
		local, err := NewLocalFileStorage(config.BasePath)
		if err != nil {
			return nil, err
		}
		return NewRetryableFileStorage(local, retry, logger), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, config.Type)
	}
}
