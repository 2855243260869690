package spatialite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/samirrijal/puntu/internal/core/domain"
	"github.com/samirrijal/puntu/internal/geom"
)

// PointRepo implements ports.PointRepository against SpatiaLite.
//
// SpatiaLite does not hook its R*Tree index into the planner the way
// PostGIS does, so the envelope query pairs the exact Intersects test with
// a SpatialIndex virtual-table subquery: the subquery prunes candidates
// through the index, Intersects keeps boundary-touching geometries.
type PointRepo struct {
	db *DB
}

// NewPointRepo creates a new PointRepo.
func NewPointRepo(db *DB) *PointRepo {
	return &PointRepo{db: db}
}

// Insert stores one point. The geometry goes in as codec-produced EWKT
// (SpatiaLite understands the PostGIS form) and is read back as WKB so the
// returned record carries the engine's round-tripped geometry, not the
// caller's input.
func (r *PointRepo) Insert(ctx context.Context, p domain.Point, value float64, createdAt time.Time) (*domain.PointRecord, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO points (created_at, geom, value)
		VALUES (?, GeomFromEWKT(?), ?)
	`, createdAt, geom.EWKT(p), value)
	if err != nil {
		return nil, classify(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	var raw []byte
	if err := r.db.QueryRowContext(ctx, `
		SELECT ST_AsBinary(geom) FROM points WHERE id = ?
	`, id).Scan(&raw); err != nil {
		return nil, err
	}

	text, err := geom.DecodeToText(raw)
	if err != nil {
		return nil, err
	}

	return &domain.PointRecord{ID: id, CreatedAt: createdAt, Geom: text, Value: value}, nil
}

// ListAll returns every stored record ordered by ascending id.
func (r *PointRepo) ListAll(ctx context.Context) ([]domain.PointRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at, ST_AsBinary(geom), value
		FROM points
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []domain.PointRecord
	for rows.Next() {
		var (
			rec domain.PointRecord
			raw []byte
		)
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &raw, &rec.Value); err != nil {
			return nil, err
		}
		text, err := geom.DecodeToText(raw)
		if err != nil {
			return nil, err
		}
		rec.Geom = text
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// FindInEnvelope returns records intersecting the envelope, boundary
// contact included, ordered by ascending id.
func (r *PointRepo) FindInEnvelope(ctx context.Context, b domain.Bounds) ([]domain.PointRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at, ST_AsBinary(geom), value
		FROM points
		WHERE Intersects(geom, BuildMbr(?, ?, ?, ?, 4326))
		  AND rowid IN (
			SELECT ROWID FROM SpatialIndex
			WHERE f_table_name = 'points' AND search_frame = BuildMbr(?, ?, ?, ?, 4326)
		  )
		ORDER BY id
	`,
		b.MinLon, b.MinLat, b.MaxLon, b.MaxLat,
		b.MinLon, b.MinLat, b.MaxLon, b.MaxLat,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []domain.PointRecord
	for rows.Next() {
		var (
			rec domain.PointRecord
			raw []byte
		)
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &raw, &rec.Value); err != nil {
			return nil, err
		}
		text, err := geom.DecodeToText(raw)
		if err != nil {
			return nil, err
		}
		rec.Geom = text
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// classify maps SQLite constraint errors onto the domain taxonomy.
func classify(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: %v", domain.ErrConstraintViolation, sqliteErr)
	}
	return err
}
