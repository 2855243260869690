package usecases

import (
	"context"
	"encoding/json"
	"time"

	"github.com/samirrijal/puntu/internal/core/domain"
	"github.com/samirrijal/puntu/internal/core/ports"
	"github.com/samirrijal/puntu/internal/geom"
)

const listCacheKey = "points:all"

// PointService is the public contract for storing and querying points.
// The HTTP layer talks to it in plain values only: WKT text, float64s.
type PointService struct {
	points ports.PointRepository
	cache  ports.CacheService
	events ports.EventPublisher
}

// NewPointService creates a new PointService. cache and events may be nil;
// both are optional collaborators.
func NewPointService(points ports.PointRepository, cache ports.CacheService, events ports.EventPublisher) *PointService {
	return &PointService{points: points, cache: cache, events: events}
}

// Create validates wktText, persists a new record stamped with the current
// UTC instant, and returns it with the storage-assigned id. The commit is
// synchronous: the record is visible to reads on return.
func (s *PointService) Create(ctx context.Context, wktText string, value float64) (*domain.PointRecord, error) {
	p, err := geom.ParsePoint(wktText)
	if err != nil {
		return nil, err
	}

	rec, err := s.points.Insert(ctx, p, value, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, listCacheKey)
	}

	// Best effort: a broker outage never fails the create.
	if s.events != nil {
		_ = s.events.PublishPointCreated(ctx, rec)
	}

	return rec, nil
}

// ListAll returns every stored record ordered by ascending id. An empty
// store yields an empty slice, not an error.
func (s *PointService) ListAll(ctx context.Context) ([]domain.PointRecord, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, listCacheKey); err == nil {
			var recs []domain.PointRecord
			if err := json.Unmarshal(data, &recs); err == nil {
				return recs, nil
			}
		}
	}

	recs, err := s.points.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []domain.PointRecord{}
	}

	if s.cache != nil {
		if data, err := json.Marshal(recs); err == nil {
			_ = s.cache.Set(ctx, listCacheKey, data, 30)
		}
	}

	return recs, nil
}

// QueryBBox returns records whose geometry intersects the envelope,
// boundary contact included, ordered by ascending id. Bounds with min > max
// on either axis are rejected before touching storage. Envelope results are
// never cached: a create must be visible to the very next query.
func (s *PointService) QueryBBox(ctx context.Context, b domain.Bounds) ([]domain.PointRecord, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	recs, err := s.points.FindInEnvelope(ctx, b)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []domain.PointRecord{}
	}

	return recs, nil
}
