package graphics

import (
	"sort"
	"sync"
)

// The registry holds the backends compiled into this binary. Backend
// packages call Register from init() behind their build constraints, so
// the registered set is the compile-time capability set.
var (
	registryMu sync.RWMutex
	openers    = make(map[API]Opener)
)

// Register registers the opener for api, replacing any previous one.
func Register(api API, open Opener) {
	if !api.Valid() {
		panic("graphics: Register with invalid api " + api.String())
	}
	if open == nil {
		panic("graphics: Register with nil opener for " + api.String())
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	openers[api] = open
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(api API) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(openers, api)
}

// IsRegistered reports whether api has a compiled backend
func IsRegistered(api API) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := openers[api]
	return ok
}

// Supported returns the registered APIs in ascending enum order
func Supported() []API {
	registryMu.RLock()
	defer registryMu.RUnlock()

	apis := make([]API, 0, len(openers))
	for api := range openers {
		apis = append(apis, api)
	}
	sort.Slice(apis, func(i, j int) bool { return apis[i] < apis[j] })
	return apis
}

func lookup(api API) (Opener, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	open, ok := openers[api]
	return open, ok
}
