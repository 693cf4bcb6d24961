package utils

import (
	"fmt"
	"sync"
)

// RegistryValidator checks an entry against the entries registered so far
type RegistryValidator[K comparable, V any] func(key K, value V, existing map[K]V) error

// BaseRegistry is a concurrency-safe map whose writes go through
// validators. The type registry and the kind registry build on it.
type BaseRegistry[K comparable, V any] struct {
	mu         sync.RWMutex
	name       string
	items      map[K]V
	order      []K
	validators []RegistryValidator[K, V]
}

// NewBaseRegistry creates a registry; name prefixes rejection errors
func NewBaseRegistry[K comparable, V any](name string, validators ...RegistryValidator[K, V]) *BaseRegistry[K, V] {
	return &BaseRegistry[K, V]{
		name:       name,
		items:      make(map[K]V),
		validators: validators,
	}
}

// Register stores value under key once every validator accepts it
func (r *BaseRegistry[K, V]) Register(key K, value V) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, validate := range r.validators {
		if err := validate(key, value, r.items); err != nil {
			return fmt.Errorf("%s registry: %w", r.name, err)
		}
	}

	if _, exists := r.items[key]; !exists {
		r.order = append(r.order, key)
	}
	r.items[key] = value
	return nil
}

// Get returns the value stored under key
func (r *BaseRegistry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.items[key]
	return value, ok
}

// Has reports whether key is registered
func (r *BaseRegistry[K, V]) Has(key K) bool {
	_, ok := r.Get(key)
	return ok
}

// List returns the keys in registration order
func (r *BaseRegistry[K, V]) List() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]K(nil), r.order...)
}

// NotEmptyKeyValidator rejects the empty string key
func NotEmptyKeyValidator[V any](keyDesc string) RegistryValidator[string, V] {
	return func(key string, _ V, _ map[string]V) error {
		if key == "" {
			return fmt.Errorf("%s cannot be empty", keyDesc)
		}
		return nil
	}
}

// NoDuplicateValidator rejects keys that are already registered
func NoDuplicateValidator[K comparable, V any](keyDesc string) RegistryValidator[K, V] {
	return func(key K, _ V, existing map[K]V) error {
		if _, exists := existing[key]; exists {
			return fmt.Errorf("%s '%v' is already registered", keyDesc, key)
		}
		return nil
	}
}
