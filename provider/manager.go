package provider

import (
	"fmt"
	"sort"
	"sync"

	"github.com/afea/einvoice/gateway"
	"github.com/afea/einvoice/logger"
)

// Manager holds the initialized client of each provider an account uses
// and a default among them.
type Manager struct {
	mu          sync.RWMutex
	registry    *Registry
	opts        []gateway.Option
	clients     map[Name]Client
	defaultName Name
	log         *logger.Logger
}

// NewManager creates a Manager creating clients from registry. opts are
// passed to every gateway it creates.
func NewManager(registry *Registry, log *logger.Logger, opts ...gateway.Option) *Manager {
	if log == nil {
		log = logger.NewNop()
	}
	return &Manager{
		registry: registry,
		opts:     opts,
		clients:  make(map[Name]Client),
		log:      log.WithComponent("provider"),
	}
}

// Initialize creates the client of name and stores it, replacing any
// previous one. The first initialized client becomes the default.
func (m *Manager) Initialize(name Name, cfg gateway.Config) (Client, error) {
	c, err := m.registry.Create(name, cfg, m.opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize provider %q: %w", name, err)
	}
	m.mu.Lock()
	m.clients[name] = c
	if m.defaultName == "" {
		m.defaultName = name
	}
	m.mu.Unlock()
	m.log.Debug("provider initialized", logger.Fields(logger.FieldProvider, name.String()))
	return c, nil
}

// Get returns the default client.
func (m *Manager) Get() (Client, error) {
	m.mu.RLock()
	name := m.defaultName
	m.mu.RUnlock()
	if name == "" {
		return nil, fmt.Errorf("no provider initialized")
	}
	return m.GetByName(name)
}

// GetByName returns the client of a specific provider.
func (m *Manager) GetByName(name Name) (Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.clients[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("provider %q not initialized", name)
}

// SetDefault sets the default provider by name.
func (m *Manager) SetDefault(name Name) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[name]; !ok {
		return fmt.Errorf("provider %q not initialized", name)
	}
	m.defaultName = name
	return nil
}

// SetToken rotates the bearer token of an initialized provider. Calls in
// flight keep the token they started with.
func (m *Manager) SetToken(name Name, token string) error {
	c, err := m.GetByName(name)
	if err != nil {
		return err
	}
	c.SetToken(token)
	m.log.Debug("token rotated", logger.Fields(logger.FieldProvider, name.String()))
	return nil
}

// Available returns the sorted names of all initialized providers.
func (m *Manager) Available() []Name {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]Name, 0, len(m.clients))
	for name := range m.clients {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
