package geom_test

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/ewkb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/puntu/internal/core/domain"
	"github.com/samirrijal/puntu/internal/geom"
)

func TestParsePoint(t *testing.T) {
	p, err := geom.ParsePoint("POINT(51.51999 -0.10684)")
	require.NoError(t, err)
	assert.Equal(t, 51.51999, p.Lon)
	assert.Equal(t, -0.10684, p.Lat)
}

func TestParsePoint_Whitespace(t *testing.T) {
	p, err := geom.ParsePoint("  POINT(1 2)\n")
	require.NoError(t, err)
	assert.Equal(t, domain.Point{Lon: 1, Lat: 2}, p)
}

func TestParsePoint_Malformed(t *testing.T) {
	cases := []string{
		"",
		"POINT",
		"POINT()",
		"POINT(10)",
		"POINT(a b)",
		"LINESTRING(0 0, 1 1)",
		"POLYGON((0 0, 1 0, 1 1, 0 0))",
		"not wkt at all",
	}
	for _, in := range cases {
		_, err := geom.ParsePoint(in)
		assert.ErrorIs(t, err, domain.ErrMalformedGeometry, "input %q", in)
	}
}

func TestParsePoint_OutOfRange(t *testing.T) {
	cases := []string{
		"POINT(200 10)",
		"POINT(-180.5 0)",
		"POINT(10 100)",
		"POINT(0 -90.01)",
	}
	for _, in := range cases {
		_, err := geom.ParsePoint(in)
		assert.ErrorIs(t, err, domain.ErrOutOfRange, "input %q", in)
	}
}

func TestParsePoint_BoundaryOrdinatesAccepted(t *testing.T) {
	for _, in := range []string{"POINT(-180 -90)", "POINT(180 90)", "POINT(0 0)"} {
		_, err := geom.ParsePoint(in)
		assert.NoError(t, err, "input %q", in)
	}
}

func TestFormatPoint(t *testing.T) {
	assert.Equal(t, "POINT(51.51999 -0.10684)", geom.FormatPoint(domain.Point{Lon: 51.51999, Lat: -0.10684}))
	assert.Equal(t, "POINT(0 0)", geom.FormatPoint(domain.Point{}))
	assert.Equal(t, "POINT(-180 90)", geom.FormatPoint(domain.Point{Lon: -180, Lat: 90}))
}

func TestEWKT(t *testing.T) {
	assert.Equal(t, "SRID=4326;POINT(2.5 -1.25)", geom.EWKT(domain.Point{Lon: 2.5, Lat: -1.25}))
}

// Round-trip law: text -> point -> native -> text is the identity for any
// valid coordinate.
func TestRoundTrip(t *testing.T) {
	points := []domain.Point{
		{Lon: 0, Lat: 0},
		{Lon: 51.51999, Lat: -0.10684},
		{Lon: -2.935, Lat: 43.263},
		{Lon: 180, Lat: 90},
		{Lon: -180, Lat: -90},
		{Lon: 0.000001, Lat: -0.000001},
	}

	for _, p := range points {
		native, err := ewkb.Marshal(orb.Point{p.Lon, p.Lat}, geom.SRID)
		require.NoError(t, err)

		text, err := geom.DecodeToText(native)
		require.NoError(t, err)
		assert.Equal(t, geom.FormatPoint(p), text)

		back, err := geom.ParsePoint(text)
		require.NoError(t, err)
		assert.Equal(t, p, back)
	}
}

func TestDecodePoint_PlainWKB(t *testing.T) {
	// SpatiaLite's ST_AsBinary emits SRID-less WKB; that must decode too.
	native, err := wkb.Marshal(orb.Point{7.5, 45.0})
	require.NoError(t, err)

	p, err := geom.DecodePoint(native)
	require.NoError(t, err)
	assert.Equal(t, domain.Point{Lon: 7.5, Lat: 45.0}, p)
}

func TestDecodePoint_WrongSRID(t *testing.T) {
	native, err := ewkb.Marshal(orb.Point{1, 2}, 3857)
	require.NoError(t, err)

	_, err = geom.DecodePoint(native)
	assert.ErrorIs(t, err, domain.ErrMalformedGeometry)
}

func TestDecodePoint_NotAPoint(t *testing.T) {
	native, err := ewkb.Marshal(orb.LineString{{0, 0}, {1, 1}}, geom.SRID)
	require.NoError(t, err)

	_, err = geom.DecodePoint(native)
	assert.ErrorIs(t, err, domain.ErrMalformedGeometry)
}

func TestDecodePoint_Garbage(t *testing.T) {
	_, err := geom.DecodePoint([]byte{0xde, 0xad, 0xbe, 0xef})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedGeometry))
}
