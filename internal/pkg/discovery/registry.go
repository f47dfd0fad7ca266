// Package discovery maps logical service names to base URLs. Services register under
// their name on startup, renew the registration on a heartbeat, and resolve peers
// through the same registry.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var ErrServiceNotRegistered = errors.New("service not registered")

// Instance is one running copy of a service.
type Instance struct {
	Service string
	ID      string
	URL     string
}

// NewInstance names a fresh instance of service reachable at url.
func NewInstance(service, url string) Instance {
	return Instance{Service: service, ID: uuid.NewString(), URL: strings.TrimRight(url, "/")}
}

// Resolver turns a service name into the base URL of one of its instances.
type Resolver interface {
	Resolve(ctx context.Context, service string) (string, error)
}

// Registry is a Resolver that instances can join and leave.
type Registry interface {
	Resolver
	// Register adds or renews the instance.
	Register(ctx context.Context, instance Instance) error
	Deregister(ctx context.Context, instance Instance) error
}

// ParsePeers reads a "name=url,name=url" list. Blank entries are ignored.
func ParsePeers(s string) (map[string]string, error) {
	peers := make(map[string]string)
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, url, ok := strings.Cut(entry, "=")
		name, url = strings.TrimSpace(name), strings.TrimSpace(url)
		if !ok || name == "" || url == "" {
			return nil, fmt.Errorf("invalid peer %q, want name=url", entry)
		}
		peers[name] = strings.TrimRight(url, "/")
	}
	return peers, nil
}

func notRegistered(service string) error {
	return fmt.Errorf("%w: %s", ErrServiceNotRegistered, service)
}
