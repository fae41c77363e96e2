// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package atlas

import (
	"fmt"
	"slices"

	"github.com/taibuivan/shanhai/internal/platform/validate"
)

// Snapshot is the raw content of a catalog as read from a [Source].
// Slice order is the declaration order used for listings.
type Snapshot struct {
	Locations []Location `json:"locations" yaml:"locations"`
	Waters    []Water    `json:"waters"    yaml:"waters"`
	Creatures []Creature `json:"creatures" yaml:"creatures"`
}

// Validate checks the structural rules a catalog must satisfy before it is
// indexed. Referential gaps are not errors here; see [Snapshot.Gaps].
func (s Snapshot) Validate() error {
	v := &validate.Validator{}

	seen := make(map[string]bool)
	for i, loc := range s.Locations {
		field := fmt.Sprintf("locations[%d]", i)
		v.Slug(field+".id", loc.ID).
			Custom(field+".id", seen[loc.ID], "Duplicate location id").
			Required(field+".name", loc.Name).
			Between(field+".position.x", loc.Position.X, 0, 100).
			Between(field+".position.y", loc.Position.Y, 0, 100)
		seen[loc.ID] = true

		if j := firstRepeat(loc.WaterIDs); j >= 0 {
			v.Custom(fmt.Sprintf("%s.water_ids[%d]", field, j), true, "Duplicate water link")
		}
	}

	clear(seen)
	for i, water := range s.Waters {
		field := fmt.Sprintf("waters[%d]", i)
		v.Slug(field+".id", water.ID).
			Custom(field+".id", seen[water.ID], "Duplicate water id").
			Required(field+".name", water.Name).
			Custom(field+".kind", !water.Kind.Valid(), "Must be one of: river, lake, sea")
		seen[water.ID] = true

		if j := firstRepeat(water.CreatureIDs); j >= 0 {
			v.Custom(fmt.Sprintf("%s.creature_ids[%d]", field, j), true, "Duplicate creature link")
		}
	}

	clear(seen)
	for i, creature := range s.Creatures {
		field := fmt.Sprintf("creatures[%d]", i)
		v.Slug(field+".id", creature.ID).
			Custom(field+".id", seen[creature.ID], "Duplicate creature id").
			Required(field+".name", creature.Name).
			Custom(field+".depictions", len(creature.Depictions) == 0, "At least one depiction is required")
		seen[creature.ID] = true

		periods := make(map[Period]bool, len(creature.Depictions))
		for j, depiction := range creature.Depictions {
			sub := fmt.Sprintf("%s.depictions[%d]", field, j)
			v.OneOf(sub+".period", string(depiction.Period), PeriodStrings()...).
				Custom(sub+".period", periods[depiction.Period], "Duplicate period").
				Required(sub+".label", depiction.Label)
			periods[depiction.Period] = true
		}
	}

	return v.Err()
}

// firstRepeat returns the index of the first id already seen earlier in ids,
// or -1.
func firstRepeat(ids []string) int {
	seen := make(map[string]bool, len(ids))
	for i, id := range ids {
		if seen[id] {
			return i
		}
		seen[id] = true
	}
	return -1
}

// GapKind classifies a broken cross-reference.
type GapKind string

const (
	// GapLocationWater: a location lists a water id that does not exist.
	GapLocationWater GapKind = "location_water"
	// GapWaterLocation: a water's back-reference does not resolve to a location
	// that lists it.
	GapWaterLocation GapKind = "water_location"
	// GapWaterCreature: a water lists a creature id that does not exist.
	GapWaterCreature GapKind = "water_creature"
)

// Gap is a referential inconsistency tolerated by the catalog.
type Gap struct {
	Kind GapKind `json:"kind"`
	From string  `json:"from"`
	To   string  `json:"to"`
}

func (g Gap) String() string {
	return fmt.Sprintf("%s: %s -> %s", g.Kind, g.From, g.To)
}

// Gaps lists every referential inconsistency in s. Queries skip these
// references silently; loaders log them.
func (s Snapshot) Gaps() []Gap {
	locations := make(map[string]Location, len(s.Locations))
	for _, loc := range s.Locations {
		locations[loc.ID] = loc
	}
	waters := make(map[string]bool, len(s.Waters))
	for _, water := range s.Waters {
		waters[water.ID] = true
	}
	creatures := make(map[string]bool, len(s.Creatures))
	for _, creature := range s.Creatures {
		creatures[creature.ID] = true
	}

	var gaps []Gap
	for _, loc := range s.Locations {
		for _, id := range loc.WaterIDs {
			if !waters[id] {
				gaps = append(gaps, Gap{Kind: GapLocationWater, From: loc.ID, To: id})
			}
		}
	}
	for _, water := range s.Waters {
		owner, ok := locations[water.LocationID]
		if !ok || !slices.Contains(owner.WaterIDs, water.ID) {
			gaps = append(gaps, Gap{Kind: GapWaterLocation, From: water.ID, To: water.LocationID})
		}
		for _, id := range water.CreatureIDs {
			if !creatures[id] {
				gaps = append(gaps, Gap{Kind: GapWaterCreature, From: water.ID, To: id})
			}
		}
	}
	return gaps
}
