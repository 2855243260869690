package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samirrijal/puntu/internal/core/domain"
)

func TestBoundsValidate(t *testing.T) {
	ok := domain.Bounds{MinLat: -1, MaxLat: 1, MinLon: -1, MaxLon: 1}
	assert.NoError(t, ok.Validate())

	// Degenerate envelopes (point or line) are still valid
	degenerate := domain.Bounds{MinLat: 5, MaxLat: 5, MinLon: 3, MaxLon: 3}
	assert.NoError(t, degenerate.Validate())

	latFlipped := domain.Bounds{MinLat: 5, MaxLat: -5, MinLon: -1, MaxLon: 1}
	assert.ErrorIs(t, latFlipped.Validate(), domain.ErrInvalidBounds)

	lonFlipped := domain.Bounds{MinLat: -1, MaxLat: 1, MinLon: 10, MaxLon: -10}
	assert.ErrorIs(t, lonFlipped.Validate(), domain.ErrInvalidBounds)
}
