// Package geom converts point geometries between their canonical WKT text
// form, the in-memory domain.Point value, and the spatial encodings the
// storage engines speak. It is the only place backend-specific geometry
// shapes are allowed to appear.
package geom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/ewkb"
	"github.com/paulmach/orb/encoding/wkt"

	"github.com/samirrijal/puntu/internal/core/domain"
)

// SRID is the only spatial reference system the store accepts or emits.
const SRID = 4326

// ParsePoint parses canonical `POINT(<lon> <lat>)` text. Any other geometry
// kind or token shape yields domain.ErrMalformedGeometry; ordinates outside
// WGS 84 degree ranges yield domain.ErrOutOfRange.
func ParsePoint(s string) (domain.Point, error) {
	g, err := wkt.Unmarshal(strings.TrimSpace(s))
	if err != nil {
		return domain.Point{}, fmt.Errorf("%w: %v", domain.ErrMalformedGeometry, err)
	}

	p, ok := g.(orb.Point)
	if !ok {
		return domain.Point{}, fmt.Errorf("%w: expected POINT, got %s", domain.ErrMalformedGeometry, g.GeoJSONType())
	}

	return checkRange(domain.Point{Lon: p[0], Lat: p[1]})
}

// FormatPoint renders the canonical WKT form. Ordinates are formatted with
// the shortest decimal representation that round-trips the float64 exactly.
func FormatPoint(p domain.Point) string {
	return "POINT(" + ord(p.Lon) + " " + ord(p.Lat) + ")"
}

// EWKT produces the value handed to a storage engine on insert. The SRID is
// pinned unconditionally; callers never choose a reference system. Both
// PostGIS and SpatiaLite accept this form through GeomFromEWKT.
func EWKT(p domain.Point) string {
	return fmt.Sprintf("SRID=%d;%s", SRID, FormatPoint(p))
}

// DecodePoint converts engine-native WKB or EWKB bytes back into a Point.
// A geometry tagged with a reference system other than 4326 is rejected:
// nothing in the store may carry another SRID.
func DecodePoint(data []byte) (domain.Point, error) {
	g, srid, err := ewkb.Unmarshal(data)
	if err != nil {
		return domain.Point{}, fmt.Errorf("%w: %v", domain.ErrMalformedGeometry, err)
	}
	if srid != 0 && srid != SRID {
		return domain.Point{}, fmt.Errorf("%w: unexpected SRID %d", domain.ErrMalformedGeometry, srid)
	}

	p, ok := g.(orb.Point)
	if !ok {
		return domain.Point{}, fmt.Errorf("%w: expected point geometry, got %s", domain.ErrMalformedGeometry, g.GeoJSONType())
	}

	return checkRange(domain.Point{Lon: p[0], Lat: p[1]})
}

// DecodeToText is DecodePoint followed by FormatPoint: native bytes in,
// canonical WKT out.
func DecodeToText(data []byte) (string, error) {
	p, err := DecodePoint(data)
	if err != nil {
		return "", err
	}
	return FormatPoint(p), nil
}

func checkRange(p domain.Point) (domain.Point, error) {
	if p.Lon < -180 || p.Lon > 180 {
		return domain.Point{}, fmt.Errorf("%w: longitude %s not in [-180,180]", domain.ErrOutOfRange, ord(p.Lon))
	}
	if p.Lat < -90 || p.Lat > 90 {
		return domain.Point{}, fmt.Errorf("%w: latitude %s not in [-90,90]", domain.ErrOutOfRange, ord(p.Lat))
	}
	return p, nil
}

func ord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
