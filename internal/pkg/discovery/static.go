package discovery

import (
	"context"
	"math/rand/v2"
	"sync"
)

// StaticRegistry keeps registrations in memory. Peers given at construction never expire.
type StaticRegistry struct {
	mu        sync.RWMutex
	instances map[string]map[string]string
}

func NewStaticRegistry(peers map[string]string) *StaticRegistry {
	r := &StaticRegistry{instances: make(map[string]map[string]string)}
	for name, url := range peers {
		r.instances[name] = map[string]string{"static": url}
	}
	return r
}

func (r *StaticRegistry) Register(_ context.Context, instance Instance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.instances[instance.Service] == nil {
		r.instances[instance.Service] = make(map[string]string)
	}
	r.instances[instance.Service][instance.ID] = instance.URL
	return nil
}

func (r *StaticRegistry) Deregister(_ context.Context, instance Instance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.instances[instance.Service], instance.ID)
	return nil
}

// Resolve picks one registered instance at random.
func (r *StaticRegistry) Resolve(_ context.Context, service string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	urls := make([]string, 0, len(r.instances[service]))
	for _, url := range r.instances[service] {
		urls = append(urls, url)
	}
	if len(urls) == 0 {
		return "", notRegistered(service)
	}
	return urls[rand.IntN(len(urls))], nil
}
