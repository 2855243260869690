package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/puntu/internal/core/domain"
	"github.com/samirrijal/puntu/internal/pkg/metrics"
)

// createPointRequest is the POST /v1/points body. Geom is WKT:
// POINT(<lon> <lat>). Value is a pointer so a missing field is
// distinguishable from 0.
type createPointRequest struct {
	Geom  string   `json:"geom"`
	Value *float64 `json:"value"`
}

// CreatePointHandler stores a new point.
func CreatePointHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createPointRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}
		if req.Geom == "" {
			return errBadRequest(c, "geom is required")
		}
		if req.Value == nil {
			return errBadRequest(c, "value is required")
		}

		rec, err := deps.Points.Create(c.Context(), req.Geom, *req.Value)
		if err != nil {
			return writeDomainError(c, err)
		}

		metrics.PointsCreated.Inc()
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// ListPointsHandler returns all stored points, id ascending, with
// offset/limit pagination applied over the full list.
func ListPointsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := deps.Points.ListAll(c.Context())
		if err != nil {
			return writeDomainError(c, err)
		}

		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 100)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 1000 {
			limit = 100
		}

		total := len(recs)
		if offset >= total {
			recs = []domain.PointRecord{}
		} else {
			end := offset + limit
			if end > total {
				end = total
			}
			recs = recs[offset:end]
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: recs, Pagination: pg})
	}
}

// BBoxPointsHandler returns points intersecting the envelope given by
// min_lat/max_lat/min_lon/max_lon query parameters.
func BBoxPointsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		b := domain.Bounds{}
		for _, q := range []struct {
			name string
			dst  *float64
		}{
			{"min_lat", &b.MinLat},
			{"max_lat", &b.MaxLat},
			{"min_lon", &b.MinLon},
			{"max_lon", &b.MaxLon},
		} {
			raw := c.Query(q.name)
			if raw == "" {
				return errBadRequest(c, q.name+" is required")
			}
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return errBadRequest(c, q.name+" must be a number")
			}
			*q.dst = f
		}

		if b.MinLat < -90 || b.MaxLat > 90 {
			return errUnprocessable(c, "latitude bounds must be within [-90,90]")
		}
		if b.MinLon < -180 || b.MaxLon > 180 {
			return errUnprocessable(c, "longitude bounds must be within [-180,180]")
		}

		start := time.Now()
		recs, err := deps.Points.QueryBBox(c.Context(), b)
		if err != nil {
			return writeDomainError(c, err)
		}
		metrics.BBoxQueryDuration.Observe(time.Since(start).Seconds())

		return c.JSON(recs)
	}
}
