package contracts

import "github.com/light-bringer/catalog-service/internal/app/catalog/domain"

// EventPublisher receives exactly one event per successful mutation, after
// the persistence commit. Implementations invalidate the result cache and
// fan the event out to realtime subscribers; both are fire-and-forget from
// the caller's point of view and never return an error to the mutation.
type EventPublisher interface {
	Publish(event domain.Event)
}
