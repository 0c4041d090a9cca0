// Package groups is a registry of the scalar groups available by name.
package groups

import (
	"fmt"
	"sort"
	"sync"

	"github.com/f3rmion/reshare/bjj"
	"github.com/f3rmion/reshare/group"
	"github.com/f3rmion/reshare/secp256k1"
)

var (
	mu       sync.RWMutex
	registry = make(map[string]group.Group)
)

func init() {
	Register(&bjj.BJJ{})
	Register(&secp256k1.Secp256k1{})
}

// Register makes g available under g.Name(). It panics if the name is
// already taken.
func Register(g group.Group) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := registry[g.Name()]; ok {
		panic("groups: " + g.Name() + " already registered")
	}
	registry[g.Name()] = g
}

// Lookup returns the group registered under name.
func Lookup(name string) (group.Group, error) {
	mu.RLock()
	defer mu.RUnlock()
	g, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unsupported group %q (have %v)", name, namesLocked())
	}
	return g, nil
}

// Names lists the registered group names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
