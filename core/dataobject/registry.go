// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package dataobject

import (
	"fmt"
	"strings"
	"sync"

	"github.com/relabs-tech/dataobjects/core/logger"
)

// Registry is the table of all known data object classes, keyed by their
// lower cased name.
//
// The registry gets populated once at startup and is read-only afterwards.
type Registry struct {
	mu      sync.RWMutex
	classes []*Class
	bySlug  map[string]*Class
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{bySlug: map[string]*Class{}}
}

// Register adds a class to the registry. Registering the same class twice is a
// no-op, registering a different class under an existing slug fails with
// ErrDuplicateSlug.
func (r *Registry) Register(c *Class) error {
	if c == nil {
		return fmt.Errorf("cannot register nil class")
	}
	if c.Name == "" {
		return fmt.Errorf("cannot register class without name")
	}
	slug := c.Slug()

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.bySlug[slug]; ok {
		if existing == c {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrDuplicateSlug, slug)
	}
	r.bySlug[slug] = c
	r.classes = append(r.classes, c)
	logger.Default().Debugln("registered data object", c.Name)
	return nil
}

// IsRegistered returns true if a class with the given slug is registered. The
// comparison is case-insensitive.
func (r *Registry) IsRegistered(slug string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.bySlug[strings.ToLower(slug)]
	return ok
}

// Resolve returns a fresh copy of the class registered under slug. It returns
// false if there is no such class or if the class is abstract.
func (r *Registry) Resolve(slug string) (*Class, bool) {
	r.mu.RLock()
	c, ok := r.bySlug[strings.ToLower(slug)]
	r.mu.RUnlock()
	if !ok || c.Abstract {
		return nil, false
	}
	return c.Clone(), true
}

// Classes returns all registered classes in registration order
func (r *Registry) Classes() []*Class {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Class{}, r.classes...)
}
