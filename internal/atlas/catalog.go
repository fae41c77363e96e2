// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package atlas

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"

	"golang.org/x/crypto/blake2b"
)

// Catalog is the indexed, read-only view of a [Snapshot].
//
// # Concurrency
//
// A Catalog has no writers after [NewCatalog] returns; all methods are safe for
// concurrent use. Returned records share their slices with the catalog and
// must be treated as read-only.
type Catalog struct {
	locations []Location
	waters    []Water
	creatures []Creature

	locationIndex map[string]int
	waterIndex    map[string]int
	creatureIndex map[string]int

	fingerprint string
}

// Stats counts the records held by a [Catalog].
type Stats struct {
	Locations int `json:"locations"`
	Waters    int `json:"waters"`
	Creatures int `json:"creatures"`
}

// NewCatalog validates snap and indexes it by id. The snapshot is copied, so
// later changes to snap do not reach the catalog.
func NewCatalog(snap Snapshot) (*Catalog, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	snap = cloneSnapshot(snap)

	catalog := &Catalog{
		locations:     snap.Locations,
		waters:        snap.Waters,
		creatures:     snap.Creatures,
		locationIndex: make(map[string]int, len(snap.Locations)),
		waterIndex:    make(map[string]int, len(snap.Waters)),
		creatureIndex: make(map[string]int, len(snap.Creatures)),
	}
	for i, loc := range snap.Locations {
		catalog.locationIndex[loc.ID] = i
	}
	for i, water := range snap.Waters {
		catalog.waterIndex[water.ID] = i
	}
	for i, creature := range snap.Creatures {
		catalog.creatureIndex[creature.ID] = i
	}

	fingerprint, err := fingerprintOf(snap)
	if err != nil {
		return nil, err
	}
	catalog.fingerprint = fingerprint

	return catalog, nil
}

// MustCatalog is like [NewCatalog] but panics on error. It is meant for the
// embedded catalog and tests.
func MustCatalog(snap Snapshot) *Catalog {
	catalog, err := NewCatalog(snap)
	if err != nil {
		panic(fmt.Sprintf("atlas: invalid catalog: %v", err))
	}
	return catalog
}

// # Lookups

// Location resolves a location by id.
func (c *Catalog) Location(id string) (Location, bool) {
	i, ok := c.locationIndex[id]
	if !ok {
		return Location{}, false
	}
	return c.locations[i], true
}

// Water resolves a water by id.
func (c *Catalog) Water(id string) (Water, bool) {
	i, ok := c.waterIndex[id]
	if !ok {
		return Water{}, false
	}
	return c.waters[i], true
}

// Creature resolves a creature by id.
func (c *Catalog) Creature(id string) (Creature, bool) {
	i, ok := c.creatureIndex[id]
	if !ok {
		return Creature{}, false
	}
	return c.creatures[i], true
}

// Locations returns every location in declaration order.
func (c *Catalog) Locations() []Location { return slices.Clone(c.locations) }

// Waters returns every water in declaration order.
func (c *Catalog) Waters() []Water { return slices.Clone(c.waters) }

// Creatures returns every creature in declaration order.
func (c *Catalog) Creatures() []Creature { return slices.Clone(c.creatures) }

// # Relationship Queries

// WatersOf lists the waters linked to loc, in the order of loc.WaterIDs.
// Ids that do not resolve are skipped.
func (c *Catalog) WatersOf(loc Location) []Water {
	waters := make([]Water, 0, len(loc.WaterIDs))
	for _, id := range loc.WaterIDs {
		if water, ok := c.Water(id); ok {
			waters = append(waters, water)
		}
	}
	return waters
}

// CreaturesOf lists the creatures found in water, in the order of
// water.CreatureIDs. Ids that do not resolve are skipped.
func (c *Catalog) CreaturesOf(water Water) []Creature {
	creatures := make([]Creature, 0, len(water.CreatureIDs))
	for _, id := range water.CreatureIDs {
		if creature, ok := c.Creature(id); ok {
			creatures = append(creatures, creature)
		}
	}
	return creatures
}

// Depiction returns the depiction of creature for period, falling back to the
// first depiction when the period is absent. It reports false only when the
// creature has no depictions at all.
func (c *Catalog) Depiction(creature Creature, period Period) (Depiction, bool) {
	return DepictionFor(creature, period)
}

// DepictionFor is the catalog-independent form of [Catalog.Depiction].
func DepictionFor(creature Creature, period Period) (Depiction, bool) {
	if len(creature.Depictions) == 0 {
		return Depiction{}, false
	}
	for _, depiction := range creature.Depictions {
		if depiction.Period == period {
			return depiction, true
		}
	}
	return creature.Depictions[0], true
}

// # Metadata

// Fingerprint is a stable digest of the catalog content, suitable as an ETag.
func (c *Catalog) Fingerprint() string { return c.fingerprint }

// Stats returns the record counts.
func (c *Catalog) Stats() Stats {
	return Stats{
		Locations: len(c.locations),
		Waters:    len(c.waters),
		Creatures: len(c.creatures),
	}
}

// Snapshot returns a copy of the catalog content, e.g. for export.
func (c *Catalog) Snapshot() Snapshot {
	return cloneSnapshot(Snapshot{
		Locations: c.locations,
		Waters:    c.waters,
		Creatures: c.creatures,
	})
}

// fingerprintOf hashes the canonical JSON encoding of snap with BLAKE2b-256
// and keeps the first 16 bytes.
func fingerprintOf(snap Snapshot) (string, error) {
	canonical, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("atlas: encode snapshot: %w", err)
	}
	sum := blake2b.Sum256(canonical)
	return hex.EncodeToString(sum[:16]), nil
}

func cloneSnapshot(snap Snapshot) Snapshot {
	out := Snapshot{
		Locations: make([]Location, len(snap.Locations)),
		Waters:    make([]Water, len(snap.Waters)),
		Creatures: make([]Creature, len(snap.Creatures)),
	}
	for i, loc := range snap.Locations {
		loc.WaterIDs = slices.Clone(loc.WaterIDs)
		out.Locations[i] = loc
	}
	for i, water := range snap.Waters {
		water.CreatureIDs = slices.Clone(water.CreatureIDs)
		out.Waters[i] = water
	}
	for i, creature := range snap.Creatures {
		creature.Depictions = slices.Clone(creature.Depictions)
		out.Creatures[i] = creature
	}
	return out
}
