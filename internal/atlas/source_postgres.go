// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package atlas

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/shanhai/internal/platform/dberr"
)

// TxBeginner is the subset of *pgxpool.Pool used by [PostgresSource].
type TxBeginner interface {
	BeginTx(ctx context.Context, options pgx.TxOptions) (pgx.Tx, error)
}

// PostgresSource reads the catalog from the atlas_* tables created by the
// schema migrations.
type PostgresSource struct {
	pool TxBeginner
}

// NewPostgresSource constructs a [PostgresSource] over an open pool.
func NewPostgresSource(pool TxBeginner) *PostgresSource {
	return &PostgresSource{pool: pool}
}

func (s *PostgresSource) Name() string { return "postgres" }

/*
Load reads every table inside one read-only, repeatable-read transaction so the
snapshot is consistent even if an operator edits the tables concurrently.
*/
func (s *PostgresSource) Load(ctx context.Context) (Snapshot, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return Snapshot{}, dberr.Wrap(err, "postgres_catalog_begin_failed")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var set rowSet
	if set.locations, err = collect[locationRow](ctx, tx, selectLocations); err != nil {
		return Snapshot{}, err
	}
	if set.waters, err = collect[waterRow](ctx, tx, selectWaters); err != nil {
		return Snapshot{}, err
	}
	if set.creatures, err = collect[creatureRow](ctx, tx, selectCreatures); err != nil {
		return Snapshot{}, err
	}
	if set.depictions, err = collect[depictionRow](ctx, tx, selectDepictions); err != nil {
		return Snapshot{}, err
	}
	if set.locationWaters, err = collect[linkRow](ctx, tx, selectLocationWaters); err != nil {
		return Snapshot{}, err
	}
	if set.waterCreatures, err = collect[linkRow](ctx, tx, selectWaterCreatures); err != nil {
		return Snapshot{}, err
	}

	return set.snapshot(), nil
}

func collect[T any](ctx context.Context, tx pgx.Tx, query string) ([]T, error) {
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_catalog_query_failed")
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("collect %T: %w", *new(T), err), "postgres_catalog_scan_failed")
	}
	return items, nil
}
