package lambda

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tuanvy6922/caketeaadmin/internal/config"
	"github.com/tuanvy6922/caketeaadmin/pkg/server"
)

// IdleTimeout is how long a warm container may go unused before it is
// considered stale and reopened
const IdleTimeout = 5 * time.Minute

// ContainerFactory builds the service container for a configuration
type ContainerFactory func(cfg *config.Config) (*server.Container, error)

// ConnectionManager keeps one service container alive across warm invocations
type ConnectionManager struct {
	mu        sync.Mutex
	container *server.Container
	lastUsed  time.Time
	config    *config.Config
	factory   ContainerFactory
	now       func() time.Time
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the process-wide connection manager
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = NewConnectionManager(nil, server.NewContainer)
	})
	return globalConnectionManager
}

// NewConnectionManager creates a connection manager. A nil cfg is loaded
// with config.GetOptimizedConfig on first use.
func NewConnectionManager(cfg *config.Config, factory ContainerFactory) *ConnectionManager {
	if factory == nil {
		factory = server.NewContainer
	}
	return &ConnectionManager{config: cfg, factory: factory, now: time.Now}
}

// GetContainer returns the warm container, opening a new one when there is
// none or the previous one went stale
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*server.Container, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		if cm.now().Sub(cm.lastUsed) < IdleTimeout && cm.container.Health(ctx).Healthy {
			cm.lastUsed = cm.now()
			return cm.container, nil
		}
		cm.container.Logger.Info("Reopening stale container")
		_ = cm.container.Close()
		cm.container = nil
	}

	if cm.config == nil {
		cfg, err := config.GetOptimizedConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cm.config = cfg
	}

	container, err := cm.factory(cm.config)
	if err != nil {
		return nil, err
	}
	cm.container = container
	cm.lastUsed = cm.now()
	return container, nil
}

// IsHealthy reports whether a warm container exists and is still fresh
func (cm *ConnectionManager) IsHealthy() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.container != nil && cm.now().Sub(cm.lastUsed) < IdleTimeout
}

// Cleanup closes the warm container
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		return nil
	}
	err := cm.container.Close()
	cm.container = nil
	return err
}
