package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/samirrijal/puntu/internal/core/domain"
	"github.com/samirrijal/puntu/internal/geom"
)

// PointRepo implements ports.PointRepository with pgx against PostGIS.
//
// The envelope predicate is ST_Intersects over ST_MakeEnvelope, which the
// planner satisfies from the GIST index on the geometry column; rows are
// never filtered by a scalar distance computation.
type PointRepo struct {
	db *DB
}

// NewPointRepo creates a new PointRepo.
func NewPointRepo(db *DB) *PointRepo {
	return &PointRepo{db: db}
}

// Insert stores one point. The geometry is handed over as EWKT with the
// SRID pinned by the codec, and read back in native form so the returned
// record carries the engine's round-tripped geometry.
func (r *PointRepo) Insert(ctx context.Context, p domain.Point, value float64, createdAt time.Time) (*domain.PointRecord, error) {
	var (
		id  int64
		raw []byte
	)
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO points (created_at, geom, value)
		VALUES ($1, ST_GeomFromEWKT($2), $3)
		RETURNING id, ST_AsBinary(geom)
	`, createdAt, geom.EWKT(p), value).Scan(&id, &raw)
	if err != nil {
		return nil, classify(err)
	}

	text, err := geom.DecodeToText(raw)
	if err != nil {
		return nil, err
	}

	return &domain.PointRecord{ID: id, CreatedAt: createdAt, Geom: text, Value: value}, nil
}

// ListAll returns every stored record ordered by ascending id.
func (r *PointRepo) ListAll(ctx context.Context) ([]domain.PointRecord, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, created_at, ST_AsBinary(geom), value
		FROM points
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// FindInEnvelope returns records intersecting the envelope, boundary
// contact included, ordered by ascending id.
func (r *PointRepo) FindInEnvelope(ctx context.Context, b domain.Bounds) ([]domain.PointRecord, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, created_at, ST_AsBinary(geom), value
		FROM points
		WHERE ST_Intersects(geom, ST_MakeEnvelope($1, $2, $3, $4, 4326))
		ORDER BY id
	`, b.MinLon, b.MinLat, b.MaxLon, b.MaxLat)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRecords(rows pgxRows) ([]domain.PointRecord, error) {
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

// classify maps integrity-constraint errors (SQLSTATE class 23) onto the
// domain taxonomy; everything else passes through unchanged.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return fmt.Errorf("%w: %s", domain.ErrConstraintViolation, pgErr.Message)
	}
	return err
}
