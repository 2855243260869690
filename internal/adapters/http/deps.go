package http

import (
	"github.com/samirrijal/puntu/internal/adapters/valkey"
	"github.com/samirrijal/puntu/internal/core/ports"
	"github.com/samirrijal/puntu/internal/core/usecases"
)

// Dependencies holds everything the HTTP handlers need.
type Dependencies struct {
	Points  *usecases.PointService
	Storage ports.StorageHealth
	Cache   *valkey.Cache
}
