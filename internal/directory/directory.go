// Package directory abstracts the organizational directory service behind a
// small client interface. Concrete backends register themselves at init time
// and are selected by name through configuration.
package directory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sim-tools/simapps/internal/config"
	"github.com/sim-tools/simapps/internal/models"
)

// Client is the subset of directory operations the email-list tool needs.
// Implementations materialize full record lists; pagination is handled
// inside the backend.
type Client interface {
	ListGroups(ctx context.Context, service string) ([]models.Group, error)
	ListGroupMembers(ctx context.Context, group models.Group) ([]models.Member, error)
	GetUser(ctx context.Context, personID string) (*models.User, error)
	Close() error
}

// Factory builds a backend client from the application configuration.
type Factory func(cfg *config.Config) (Client, error)

var (
	registry      = make(map[string]Factory)
	registryMutex sync.RWMutex
)

// Register adds a backend factory to the registry.
func Register(name string, factory Factory) {
	name = strings.ToLower(name)
	registryMutex.Lock()
	defer registryMutex.Unlock()
	if _, exists := registry[name]; exists {
		return
	}
	registry[name] = factory
}

// New instantiates the named backend.
func New(name string, cfg *config.Config) (Client, error) {
	name = strings.ToLower(name)
	registryMutex.RLock()
	factory, exists := registry[name]
	registryMutex.RUnlock()
	if !exists {
		return nil, fmt.Errorf("unknown directory backend: %s (available: %s)",
			name, strings.Join(Backends(), ", "))
	}
	return factory(cfg)
}

// Backends lists the registered backend names in sorted order.
func Backends() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
