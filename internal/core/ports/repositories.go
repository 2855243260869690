package ports

import (
	"context"
	"time"

	"github.com/samirrijal/puntu/internal/core/domain"
)

// PointRepository persists point records. Both spatial backends implement
// this contract; callers never see which engine is active.
type PointRepository interface {
	// Insert stores one point and returns the full record with the
	// storage-assigned id and the geometry round-tripped through the
	// engine's native encoding.
	Insert(ctx context.Context, p domain.Point, value float64, createdAt time.Time) (*domain.PointRecord, error)

	// ListAll returns every stored record ordered by ascending id.
	ListAll(ctx context.Context) ([]domain.PointRecord, error)

	// FindInEnvelope returns records whose geometry intersects the
	// envelope, boundary contact included, ordered by ascending id.
	// Bounds are assumed validated by the caller.
	FindInEnvelope(ctx context.Context, b domain.Bounds) ([]domain.PointRecord, error)
}

// StorageHealth reports connectivity of the active spatial backend.
type StorageHealth interface {
	Ping(ctx context.Context) error
}
