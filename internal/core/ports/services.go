package ports

import (
	"context"

	"github.com/samirrijal/puntu/internal/core/domain"
)

// EventPublisher publishes domain events to a message broker. Publishing is
// best effort: a broker outage must never fail the originating operation.
type EventPublisher interface {
	PublishPointCreated(ctx context.Context, rec *domain.PointRecord) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
