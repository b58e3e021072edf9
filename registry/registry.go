package registry

import (
	"sort"
	"sync"
)

// Forward declarations to avoid import cycles
// Actual types resolved at registration time via any

// PatchFactory creates a patch module from the shared patch environment
// Returns patch.Module
type PatchFactory func(env any) any

// ServiceFactory creates a Service
type ServiceFactory func() any

// PatchEntry holds factory and ordering metadata
type PatchEntry struct {
	Factory PatchFactory
	// Order sorts hook fan-out; lower runs first within a step or frame
	Order int
}

var (
	patchesMu  sync.RWMutex
	patches    = make(map[string]PatchEntry)
	servicesMu sync.RWMutex
	services   = make(map[string]ServiceFactory)
)

// RegisterPatch adds a patch module factory by name
func RegisterPatch(name string, factory PatchFactory, order int) {
	patchesMu.Lock()
	defer patchesMu.Unlock()
	patches[name] = PatchEntry{Factory: factory, Order: order}
}

// GetPatch retrieves a patch entry by name
func GetPatch(name string) (PatchEntry, bool) {
	patchesMu.RLock()
	defer patchesMu.RUnlock()
	e, ok := patches[name]
	return e, ok
}

// PatchNames returns all registered patch names by Order, then name
func PatchNames() []string {
	patchesMu.RLock()
	defer patchesMu.RUnlock()
	names := make([]string, 0, len(patches))
	for name := range patches {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		oi, oj := patches[names[i]].Order, patches[names[j]].Order
		if oi != oj {
			return oi < oj
		}
		return names[i] < names[j]
	})
	return names
}

// RegisterService adds a service factory by name
func RegisterService(name string, factory ServiceFactory) {
	servicesMu.Lock()
	defer servicesMu.Unlock()
	services[name] = factory
}

// GetService retrieves a service factory by name
func GetService(name string) (ServiceFactory, bool) {
	servicesMu.RLock()
	defer servicesMu.RUnlock()
	f, ok := services[name]
	return f, ok
}

// ServiceNames returns all registered service names, sorted
func ServiceNames() []string {
	servicesMu.RLock()
	defer servicesMu.RUnlock()
	names := make([]string, 0, len(services))
	for name := range services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
