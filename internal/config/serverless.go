package config

import (
	"os"
	"path/filepath"
	"sync"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	IsLambda     bool
	FunctionName string
	Region       string
	Stage        string
}

var (
	serverlessConfig *ServerlessConfig
	serverlessOnce   sync.Once
)

// GetServerlessConfig returns the serverless configuration
func GetServerlessConfig() *ServerlessConfig {
	serverlessOnce.Do(func() {
		serverlessConfig = &ServerlessConfig{
			IsLambda:     os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "",
			FunctionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
			Region:       os.Getenv("AWS_REGION"),
			Stage:        GetEnv("STAGE", "dev"),
		}
	})
	return serverlessConfig
}

// IsServerlessMode returns true if running in serverless mode
func IsServerlessMode() bool {
	return GetServerlessConfig().IsLambda
}

// GetDeploymentMode returns the current deployment mode
func GetDeploymentMode() string {
	if IsServerlessMode() {
		return "serverless"
	}
	return "server"
}

// AdaptConfigForServerless relocates relative data paths to a writable mount.
// Lambda only allows writes under /tmp or an attached EFS volume.
func AdaptConfigForServerless(config *Config, serverless bool) *Config {
	if !serverless {
		return config
	}

	root := GetEnv("EFS_MOUNT_PATH", "/tmp")
	if !filepath.IsAbs(config.Database.Path) {
		config.Database.Path = filepath.Join(root, filepath.Base(config.Database.Path))
	}
	if !filepath.IsAbs(config.Storage.LocalPath) {
		config.Storage.LocalPath = filepath.Join(root, "files")
	}
	return config
}

// GetOptimizedConfig returns configuration adapted to the current deployment mode
func GetOptimizedConfig() (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}
	return AdaptConfigForServerless(config, IsServerlessMode()), nil
}
