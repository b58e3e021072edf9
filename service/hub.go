package service

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/lixenwraith/hostpatch/core"
)

var (
	// ErrDuplicate is returned when two services share a name
	ErrDuplicate = errors.New("service already registered")
	// ErrDependency is returned for missing or circular dependencies
	ErrDependency = errors.New("service dependency error")
)

// Hub is the runtime container for service instances
// Manages lifecycle in dependency order
type Hub struct {
	mu       sync.RWMutex
	services map[string]Service
	sorted   []string // dependency order, computed on InitAll
	started  []string // services that completed Start(), for rollback
}

// NewHub creates an empty service hub
func NewHub() *Hub {
	return &Hub{services: make(map[string]Service)}
}

// Register adds a service instance to the hub
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, exists := h.services[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	h.services[name] = svc
	h.sorted = nil
	return nil
}

// Get retrieves a service by name
func (h *Hub) Get(name string) (Service, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	svc, ok := h.services[name]
	return svc, ok
}

// MustGet retrieves a service and casts to type T
// Panics if service not found or type mismatch
func MustGet[T any](h *Hub, name string) T {
	svc, ok := h.Get(name)
	if !ok {
		panic(fmt.Sprintf("service not found: %s", name))
	}
	typed, ok := svc.(T)
	if !ok {
		panic(fmt.Sprintf("service %s: type mismatch, got %T", name, svc))
	}
	return typed
}

// InitAll calls Init(args...) on every service in dependency order
// On failure, already-initialized services are stopped in reverse order
func (h *Hub) InitAll(args ...any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sorted == nil {
		order, err := h.order()
		if err != nil {
			return err
		}
		h.sorted = order
	}

	var initialized []string
	for _, name := range h.sorted {
		if err := h.services[name].Init(args...); err != nil {
			for i := len(initialized) - 1; i >= 0; i-- {
				h.stop(initialized[i])
			}
			return fmt.Errorf("service %s init failed: %w", name, err)
		}
		initialized = append(initialized, name)
	}
	return nil
}

// StartAll calls Start in dependency order, rolling back on failure
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.started = nil
	for _, name := range h.sorted {
		if err := h.services[name].Start(); err != nil {
			for i := len(h.started) - 1; i >= 0; i-- {
				h.stop(h.started[i])
			}
			h.started = nil
			return fmt.Errorf("service %s start failed: %w", name, err)
		}
		h.started = append(h.started, name)
	}
	return nil
}

// StopAll stops started services in reverse order. Errors are logged, not
// returned, so every service gets its Stop call
func (h *Hub) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := len(h.started) - 1; i >= 0; i-- {
		h.stop(h.started[i])
	}
	h.started = nil
}

func (h *Hub) stop(name string) {
	if err := h.services[name].Stop(); err != nil {
		core.Logger().Warn("service stop failed", "service", name, "error", err)
	}
}

// Contribute collects resources from every ResourceContributor in
// dependency order
func (h *Hub) Contribute(publish ResourcePublisher) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := h.sorted
	if names == nil {
		names = h.namesLocked()
	}
	for _, name := range names {
		if c, ok := h.services[name].(ResourceContributor); ok {
			c.Contribute(publish)
		}
	}
}

// order computes dependency order with Kahn's algorithm; ties break by name
// so startup is deterministic
func (h *Hub) order() ([]string, error) {
	inDegree := make(map[string]int, len(h.services))
	dependents := make(map[string][]string)

	for name := range h.services {
		inDegree[name] = 0
	}
	for name, svc := range h.services {
		for _, dep := range svc.Dependencies() {
			if _, exists := h.services[dep]; !exists {
				return nil, fmt.Errorf("%w: %s depends on unregistered %s", ErrDependency, name, dep)
			}
			inDegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var ready []string
	for name, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	result := make([]string, 0, len(h.services))
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		result = append(result, name)

		var next []string
		for _, d := range dependents[name] {
			if inDegree[d]--; inDegree[d] == 0 {
				next = append(next, d)
			}
		}
		sort.Strings(next)
		ready = append(ready, next...)
	}

	if len(result) != len(h.services) {
		return nil, fmt.Errorf("%w: circular dependency", ErrDependency)
	}
	return result, nil
}

// Names returns all registered service names, sorted
func (h *Hub) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.namesLocked()
}

func (h *Hub) namesLocked() []string {
	names := make([]string, 0, len(h.services))
	for name := range h.services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
