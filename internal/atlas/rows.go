// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package atlas

import (
	"fmt"
	"strings"

	"github.com/taibuivan/shanhai/internal/platform/database/schema"
)

// Row types shared by the Postgres and SQLite sources. Field tags follow the
// column names in [schema]; link queries alias their columns to parent/child.

type locationRow struct {
	ID     string  `db:"id"`
	Name   string  `db:"name"`
	NameZh string  `db:"name_zh"`
	PosX   float64 `db:"pos_x"`
	PosY   float64 `db:"pos_y"`
}

type waterRow struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	NameZh     string `db:"name_zh"`
	Kind       string `db:"kind"`
	LocationID string `db:"location_id"`
}

type creatureRow struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	NameZh        string `db:"name_zh"`
	SourceBook    string `db:"source_book"`
	SourceChapter string `db:"source_chapter"`
	Territory     string `db:"territory"`
	OriginalText  string `db:"original_text"`
	Description   string `db:"description"`
	WaterID       string `db:"water_id"`
}

type depictionRow struct {
	CreatureID    string `db:"creature_id"`
	Period        string `db:"period"`
	Label         string `db:"label"`
	StyleAnalysis string `db:"style_analysis"`
}

type linkRow struct {
	ParentID string `db:"parent_id"`
	ChildID  string `db:"child_id"`
}

// # Queries

var (
	selectLocations = fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s, %s`,
		strings.Join(schema.AtlasLocation.Columns(), ", "), schema.AtlasLocation.Table,
		schema.AtlasLocation.SortOrder, schema.AtlasLocation.ID)

	selectWaters = fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s, %s`,
		strings.Join(schema.AtlasWater.Columns(), ", "), schema.AtlasWater.Table,
		schema.AtlasWater.SortOrder, schema.AtlasWater.ID)

	selectCreatures = fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s, %s`,
		strings.Join(schema.AtlasCreature.Columns(), ", "), schema.AtlasCreature.Table,
		schema.AtlasCreature.SortOrder, schema.AtlasCreature.ID)

	selectDepictions = fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s, %s`,
		strings.Join(schema.AtlasDepiction.Columns(), ", "), schema.AtlasDepiction.Table,
		schema.AtlasDepiction.CreatureID, schema.AtlasDepiction.Position)

	selectLocationWaters = fmt.Sprintf(`SELECT %s AS parent_id, %s AS child_id FROM %s ORDER BY %s, %s`,
		schema.AtlasLocationWater.LocationID, schema.AtlasLocationWater.WaterID,
		schema.AtlasLocationWater.Table,
		schema.AtlasLocationWater.LocationID, schema.AtlasLocationWater.Position)

	selectWaterCreatures = fmt.Sprintf(`SELECT %s AS parent_id, %s AS child_id FROM %s ORDER BY %s, %s`,
		schema.AtlasWaterCreature.WaterID, schema.AtlasWaterCreature.CreatureID,
		schema.AtlasWaterCreature.Table,
		schema.AtlasWaterCreature.WaterID, schema.AtlasWaterCreature.Position)
)

// rowSet is everything a relational source reads.
type rowSet struct {
	locations      []locationRow
	waters         []waterRow
	creatures      []creatureRow
	depictions     []depictionRow
	locationWaters []linkRow
	waterCreatures []linkRow
}

// snapshot joins the rows into a [Snapshot]. Link rows arrive sorted by
// parent and position, so appending preserves the stored order.
func (set rowSet) snapshot() Snapshot {
	waterIDs := groupLinks(set.locationWaters)
	creatureIDs := groupLinks(set.waterCreatures)

	depictions := make(map[string][]Depiction)
	for _, row := range set.depictions {
		depictions[row.CreatureID] = append(depictions[row.CreatureID], Depiction{
			Period:        Period(row.Period),
			Label:         row.Label,
			StyleAnalysis: row.StyleAnalysis,
		})
	}

	snap := Snapshot{
		Locations: make([]Location, 0, len(set.locations)),
		Waters:    make([]Water, 0, len(set.waters)),
		Creatures: make([]Creature, 0, len(set.creatures)),
	}
	for _, row := range set.locations {
		snap.Locations = append(snap.Locations, Location{
			ID:       row.ID,
			Name:     row.Name,
			NameZh:   row.NameZh,
			Position: Point{X: row.PosX, Y: row.PosY},
			WaterIDs: waterIDs[row.ID],
		})
	}
	for _, row := range set.waters {
		snap.Waters = append(snap.Waters, Water{
			ID:          row.ID,
			Name:        row.Name,
			NameZh:      row.NameZh,
			Kind:        WaterKind(row.Kind),
			LocationID:  row.LocationID,
			CreatureIDs: creatureIDs[row.ID],
		})
	}
	for _, row := range set.creatures {
		snap.Creatures = append(snap.Creatures, Creature{
			ID:            row.ID,
			Name:          row.Name,
			NameZh:        row.NameZh,
			SourceBook:    row.SourceBook,
			SourceChapter: row.SourceChapter,
			Territory:     row.Territory,
			OriginalText:  row.OriginalText,
			Description:   row.Description,
			WaterID:       row.WaterID,
			Depictions:    depictions[row.ID],
		})
	}
	return snap
}

func groupLinks(rows []linkRow) map[string][]string {
	out := make(map[string][]string)
	for _, row := range rows {
		out[row.ParentID] = append(out[row.ParentID], row.ChildID)
	}
	return out
}
