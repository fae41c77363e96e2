// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package atlas

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	// sqlite registers the pure-Go "sqlite" driver.
	_ "modernc.org/sqlite"

	"github.com/taibuivan/shanhai/internal/platform/database/schema"
	"github.com/taibuivan/shanhai/internal/platform/dberr"
)

//go:embed seed/schema.sql
var sqliteSchema string

// OpenSQLite opens (or creates) a catalog bundle at path and ensures the
// atlas tables exist. Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite catalog: %w", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sqlite catalog schema: %w", err)
	}
	return db, nil
}

// SQLiteSource reads the catalog from a SQLite bundle written by [WriteSQLite].
type SQLiteSource struct {
	db *sqlx.DB
}

// NewSQLiteSource constructs a [SQLiteSource] over an open database.
func NewSQLiteSource(db *sqlx.DB) *SQLiteSource {
	return &SQLiteSource{db: db}
}

func (s *SQLiteSource) Name() string { return "sqlite" }

func (s *SQLiteSource) Load(ctx context.Context) (Snapshot, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return Snapshot{}, dberr.Wrap(err, "sqlite_catalog_begin_failed")
	}
	defer func() { _ = tx.Rollback() }()

	var set rowSet
	queries := []struct {
		dest  any
		query string
	}{
		{&set.locations, selectLocations},
		{&set.waters, selectWaters},
		{&set.creatures, selectCreatures},
		{&set.depictions, selectDepictions},
		{&set.locationWaters, selectLocationWaters},
		{&set.waterCreatures, selectWaterCreatures},
	}
	for _, q := range queries {
		if err := tx.SelectContext(ctx, q.dest, q.query); err != nil {
			return Snapshot{}, dberr.Wrap(err, "sqlite_catalog_select_failed")
		}
	}

	return set.snapshot(), nil
}

// WriteSQLite replaces the content of the bundle with snap (full replace,
// one transaction).
func WriteSQLite(ctx context.Context, db *sqlx.DB, snap Snapshot) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{
		schema.AtlasDepiction.Table,
		schema.AtlasWaterCreature.Table,
		schema.AtlasCreature.Table,
		schema.AtlasLocationWater.Table,
		schema.AtlasWater.Table,
		schema.AtlasLocation.Table,
	} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, loc := range snap.Locations {
		if _, err := tx.ExecContext(ctx, insertSQL(schema.AtlasLocation.Table,
			append(schema.AtlasLocation.Columns(), schema.AtlasLocation.SortOrder)),
			loc.ID, loc.Name, loc.NameZh, loc.Position.X, loc.Position.Y, i,
		); err != nil {
			return fmt.Errorf("insert location %s: %w", loc.ID, err)
		}
		for position, waterID := range loc.WaterIDs {
			if _, err := tx.ExecContext(ctx, insertSQL(schema.AtlasLocationWater.Table, schema.AtlasLocationWater.Columns()),
				loc.ID, waterID, position,
			); err != nil {
				return fmt.Errorf("link location %s to %s: %w", loc.ID, waterID, err)
			}
		}
	}

	for i, water := range snap.Waters {
		if _, err := tx.ExecContext(ctx, insertSQL(schema.AtlasWater.Table,
			append(schema.AtlasWater.Columns(), schema.AtlasWater.SortOrder)),
			water.ID, water.Name, water.NameZh, string(water.Kind), water.LocationID, i,
		); err != nil {
			return fmt.Errorf("insert water %s: %w", water.ID, err)
		}
		for position, creatureID := range water.CreatureIDs {
			if _, err := tx.ExecContext(ctx, insertSQL(schema.AtlasWaterCreature.Table, schema.AtlasWaterCreature.Columns()),
				water.ID, creatureID, position,
			); err != nil {
				return fmt.Errorf("link water %s to %s: %w", water.ID, creatureID, err)
			}
		}
	}

	for i, creature := range snap.Creatures {
		if _, err := tx.ExecContext(ctx, insertSQL(schema.AtlasCreature.Table,
			append(schema.AtlasCreature.Columns(), schema.AtlasCreature.SortOrder)),
			creature.ID, creature.Name, creature.NameZh, creature.SourceBook, creature.SourceChapter,
			creature.Territory, creature.OriginalText, creature.Description, creature.WaterID, i,
		); err != nil {
			return fmt.Errorf("insert creature %s: %w", creature.ID, err)
		}
		for position, depiction := range creature.Depictions {
			if _, err := tx.ExecContext(ctx, insertSQL(schema.AtlasDepiction.Table,
				append(schema.AtlasDepiction.Columns(), schema.AtlasDepiction.Position)),
				creature.ID, string(depiction.Period), depiction.Label, depiction.StyleAnalysis, position,
			); err != nil {
				return fmt.Errorf("insert depiction %s/%s: %w", creature.ID, depiction.Period, err)
			}
		}
	}

	return tx.Commit()
}

func insertSQL(table string, columns []string) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders)
}
