package reload

import (
	"go.trai.ch/revive/internal/core/domain"
	"go.trai.ch/revive/internal/core/ports"
)

var _ Invalidator = (*CacheInvalidator)(nil)

// CacheInvalidator removes stale entries from the module registry. A
// partial invalidation removes each changed identity and its transitive
// parent chain; a full invalidation drops everything outside the
// immutable-dependency namespace.
type CacheInvalidator struct {
	registry *domain.Registry
	logger   ports.Logger
}

// NewInvalidator creates an invalidator over the given registry.
func NewInvalidator(registry *domain.Registry, logger ports.Logger) *CacheInvalidator {
	return &CacheInvalidator{registry: registry, logger: logger}
}

// Invalidate removes the dependency closure of the changed identities and
// returns the removed identities. Nothing outside that closure is touched.
func (i *CacheInvalidator) Invalidate(changed []string, full bool) []string {
	if full {
		removed := i.registry.Clear()
		if i.logger != nil {
			i.logger.Debug("entry point changed, cleared module cache")
		}
		return removed
	}

	var removed []string
	for _, id := range changed {
		removed = append(removed, i.registry.RemoveChainFrom(id)...)
	}
	return removed
}
