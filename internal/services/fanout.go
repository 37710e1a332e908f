package services

import (
	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/cache"
	"github.com/light-bringer/catalog-service/internal/realtime"
)

// FanoutPublisher is the EventPublisher wired into the mutation usecases.
// Publish runs synchronously on the mutation path: the cache is cleared
// before the caller can write its HTTP response, so a client that mutates
// and immediately re-lists never reads its own stale page. The broadcast
// follows the invalidation; subscriber delivery stays best-effort.
type FanoutPublisher struct {
	cache *cache.ResultCache
	hub   *realtime.Hub
}

// NewFanoutPublisher creates the publisher.
func NewFanoutPublisher(resultCache *cache.ResultCache, hub *realtime.Hub) contracts.EventPublisher {
	return &FanoutPublisher{cache: resultCache, hub: hub}
}

// Publish invalidates the listing cache and broadcasts the event.
func (p *FanoutPublisher) Publish(event domain.Event) {
	p.cache.InvalidateAll()
	p.hub.Broadcast(event)
}
