// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package atlas holds the immutable catalog of the Shanhai atlas.

# Entities

  - Location: a mountain anchoring one or more waters on the map.
  - Water: a river, lake or sea linked to a location and hosting creatures.
  - Creature: a mythical fish with provenance text and ordered depictions.
  - Depiction: one illustrated rendition of a creature for a given period.

# Lifecycle

A [Snapshot] is read once from a [Source] (embedded YAML, a file, Postgres or
SQLite) and indexed into a [Catalog]. The catalog is never mutated afterwards
and is safe for concurrent readers.
*/
package atlas

// # Enumerations

// WaterKind is the closed set of water categories.
type WaterKind string

const (
	KindRiver WaterKind = "river"
	KindLake  WaterKind = "lake"
	KindSea   WaterKind = "sea"
)

// WaterKinds lists every known [WaterKind].
var WaterKinds = []WaterKind{KindRiver, KindLake, KindSea}

// Valid reports whether k is a known kind.
func (k WaterKind) Valid() bool {
	switch k {
	case KindRiver, KindLake, KindSea:
		return true
	}
	return false
}

// Period tags a depiction with its stage in the ordered sequence
// ancient < modern1 < modern2 < modern3.
type Period string

const (
	PeriodAncient Period = "ancient"
	PeriodModern1 Period = "modern1"
	PeriodModern2 Period = "modern2"
	PeriodModern3 Period = "modern3"
)

// Periods lists every period in display order.
var Periods = []Period{PeriodAncient, PeriodModern1, PeriodModern2, PeriodModern3}

// Index returns the position of p in [Periods], or -1 for an unknown period.
func (p Period) Index() int {
	for i, known := range Periods {
		if p == known {
			return i
		}
	}
	return -1
}

// Valid reports whether p is a known period.
func (p Period) Valid() bool { return p.Index() >= 0 }

// ParsePeriod converts s into a known [Period].
func ParsePeriod(s string) (Period, bool) {
	p := Period(s)
	return p, p.Valid()
}

// PeriodStrings returns the string form of [Periods], for validation messages.
func PeriodStrings() []string {
	out := make([]string, len(Periods))
	for i, p := range Periods {
		out[i] = string(p)
	}
	return out
}

// # Records

// Point is a normalized map coordinate. Both axes range over [0, 100].
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Location is a mountain on the map.
//
// WaterIDs is the authoritative, ordered list of waters shown around it.
type Location struct {
	ID       string   `json:"id"        yaml:"id"`
	Name     string   `json:"name"      yaml:"name"`
	NameZh   string   `json:"name_zh"   yaml:"name_zh"`
	Position Point    `json:"position"  yaml:"position"`
	WaterIDs []string `json:"water_ids" yaml:"water_ids"`
}

// Water is a body of water linked to one location.
type Water struct {
	ID          string    `json:"id"           yaml:"id"`
	Name        string    `json:"name"         yaml:"name"`
	NameZh      string    `json:"name_zh"      yaml:"name_zh"`
	Kind        WaterKind `json:"kind"         yaml:"kind"`
	LocationID  string    `json:"location_id"  yaml:"location_id"`
	CreatureIDs []string  `json:"creature_ids" yaml:"creature_ids"`
}

// Depiction is one illustrated rendition of a creature.
type Depiction struct {
	Period        Period `json:"period"         yaml:"period"`
	Label         string `json:"label"          yaml:"label"`
	StyleAnalysis string `json:"style_analysis" yaml:"style_analysis"`
}

// Creature is a mythical fish and its provenance.
type Creature struct {
	ID            string      `json:"id"             yaml:"id"`
	Name          string      `json:"name"           yaml:"name"`
	NameZh        string      `json:"name_zh"        yaml:"name_zh"`
	SourceBook    string      `json:"source_book"    yaml:"source_book"`
	SourceChapter string      `json:"source_chapter" yaml:"source_chapter"`
	Territory     string      `json:"territory"      yaml:"territory"`
	OriginalText  string      `json:"original_text"  yaml:"original_text"`
	Description   string      `json:"description"    yaml:"description"`
	WaterID       string      `json:"water_id"       yaml:"water_id"`
	Depictions    []Depiction `json:"depictions"     yaml:"depictions"`
}
