package records

import (
	"context"

	"invoice-dashboard-backend/internal/cache"
)

// Navigator runs after a commit: it marks the entity's listing stale, then
// names the place to go. It is never called for a rejected write.
type Navigator struct {
	views cache.ListingCache
}

func NewNavigator(views cache.ListingCache) *Navigator {
	return &Navigator{views: views}
}

func (n *Navigator) Committed(ctx context.Context, entity Entity) MutationResult {
	n.views.Invalidate(ctx, entity.View())
	return MutationResult{
		Status:   StatusCommitted,
		Location: entity.ListingPath(),
	}
}

// Deleted invalidates like Committed but stays in place.
func (n *Navigator) Deleted(ctx context.Context, entity Entity) DeleteResult {
	n.views.Invalidate(ctx, entity.View())
	return DeleteResult{Message: "Deleted " + string(entity) + "."}
}
