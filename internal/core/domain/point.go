package domain

import (
	"fmt"
	"time"
)

// Point is a WGS 84 (SRID 4326) coordinate, longitude first as in WKT.
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Bounds is an axis-aligned envelope in decimal degrees.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// Validate rejects envelopes with min above max on either axis.
// Antimeridian-crossing boxes are not supported; callers must pass min <= max.
func (b Bounds) Validate() error {
	if b.MinLat > b.MaxLat {
		return fmt.Errorf("%w: min_lat %g > max_lat %g", ErrInvalidBounds, b.MinLat, b.MaxLat)
	}
	if b.MinLon > b.MaxLon {
		return fmt.Errorf("%w: min_lon %g > max_lon %g", ErrInvalidBounds, b.MinLon, b.MaxLon)
	}
	return nil
}

// PointRecord is a stored geospatial point with its associated value.
// Geom always holds the canonical WKT form, round-tripped through the
// active storage engine's native encoding.
type PointRecord struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Geom      string    `json:"geom"`
	Value     float64   `json:"value"`
}
