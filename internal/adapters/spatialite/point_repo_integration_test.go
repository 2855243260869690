//go:build integration
// +build integration

package spatialite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/samirrijal/puntu/internal/adapters/spatialite"
	"github.com/samirrijal/puntu/internal/core/domain"
)

// setupTestDB opens a fresh database file under t.TempDir and applies the
// schema. Requires mod_spatialite on the loadable-extension path.
func setupTestDB(t *testing.T) (*spatialite.DB, *spatialite.PointRepo) {
	t.Helper()

	db, err := spatialite.Open(spatialite.Config{
		Path:        filepath.Join(t.TempDir(), "puntu_test.db"),
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	stmts := []string{
		`CREATE TABLE points (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TIMESTAMP NOT NULL,
			value DOUBLE NOT NULL
		)`,
		`SELECT AddGeometryColumn('points', 'geom', 4326, 'POINT', 'XY', 1)`,
		`SELECT CreateSpatialIndex('points', 'geom')`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(context.Background(), s); err != nil {
			t.Fatalf("apply schema: %v", err)
		}
	}

	return db, spatialite.NewPointRepo(db)
}

func seedPoint(t *testing.T, repo *spatialite.PointRepo, lon, lat, value float64) *domain.PointRecord {
	t.Helper()
	rec, err := repo.Insert(context.Background(),
		domain.Point{Lon: lon, Lat: lat}, value, time.Now().UTC())
	if err != nil {
		t.Fatalf("insert point (%v %v): %v", lon, lat, err)
	}
	return rec
}

func TestInsertAndListAll(t *testing.T) {
	_, repo := setupTestDB(t)
	ctx := context.Background()

	first := seedPoint(t, repo, -2.9349, 43.2625, 10)
	second := seedPoint(t, repo, 2.1744, 41.4036, 20)

	if first.ID >= second.ID {
		t.Fatalf("ids must be ascending: %d then %d", first.ID, second.ID)
	}

	recs, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].ID != first.ID || recs[1].ID != second.ID {
		t.Errorf("records not in id order: %v", recs)
	}
	if recs[0].Geom != "POINT(-2.9349 43.2625)" {
		t.Errorf("geometry did not round-trip: %s", recs[0].Geom)
	}
}

func TestListAllEmpty(t *testing.T) {
	_, repo := setupTestDB(t)

	recs, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list on empty store must succeed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected no records, got %v", recs)
	}
}

func TestFindInEnvelope(t *testing.T) {
	_, repo := setupTestDB(t)
	ctx := context.Background()

	inside := seedPoint(t, repo, 0.5, 0.5, 1)
	boundary := seedPoint(t, repo, 1, 1, 2) // on the envelope corner
	seedPoint(t, repo, 5, 5, 3)             // outside

	recs, err := repo.FindInEnvelope(ctx, domain.Bounds{
		MinLat: 0, MaxLat: 1, MinLon: 0, MaxLon: 1,
	})
	if err != nil {
		t.Fatalf("envelope query: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records (boundary contact included), got %d", len(recs))
	}
	if recs[0].ID != inside.ID || recs[1].ID != boundary.ID {
		t.Errorf("unexpected records or order: %v", recs)
	}
}

func TestFindInEnvelopeEmpty(t *testing.T) {
	_, repo := setupTestDB(t)

	seedPoint(t, repo, 50, 50, 1)

	recs, err := repo.FindInEnvelope(context.Background(), domain.Bounds{
		MinLat: -1, MaxLat: 1, MinLon: -1, MaxLon: 1,
	})
	if err != nil {
		t.Fatalf("empty envelope result must be success: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected no records, got %v", recs)
	}
}

func TestCreateVisibleToNextQuery(t *testing.T) {
	_, repo := setupTestDB(t)
	ctx := context.Background()

	rec := seedPoint(t, repo, 10, 10, 7)

	recs, err := repo.FindInEnvelope(ctx, domain.Bounds{
		MinLat: 9, MaxLat: 11, MinLon: 9, MaxLon: 11,
	})
	if err != nil {
		t.Fatalf("envelope query: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != rec.ID {
		t.Fatalf("freshly inserted point not visible: %v", recs)
	}
}
