// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package navigation is the selection state machine of the atlas.

# States

Exactly one [State] is active at a time:

  - [MapIdle]: map screen, nothing selected.
  - [MapLocationSelected]: map screen, one location selected.
  - [MapWaterOpen]: map screen, one location and one of its waters open.
  - [Detail]: detail screen for a creature, with the names it was reached through.

# Transitions

[Transition] is a pure function of (catalog, state, event). Events the current
state does not accept leave it unchanged. A [Machine] serializes transitions
for one user; the session store does the same across processes.
*/
package navigation

import "github.com/taibuivan/shanhai/internal/atlas"

// Screen names the top-level screen a state belongs to.
type Screen string

const (
	ScreenMap    Screen = "map"
	ScreenDetail Screen = "detail"
)

// Catalog is the part of [atlas.Catalog] the state machine reads.
type Catalog interface {
	Location(id string) (atlas.Location, bool)
	Water(id string) (atlas.Water, bool)
	Creature(id string) (atlas.Creature, bool)
}

// State is the sum type of navigation states.
type State interface {
	// Name is the variant tag, stable across releases.
	Name() string
	// Screen is the screen the state is rendered on.
	Screen() Screen

	isState()
}

// MapIdle is the map with no selection.
type MapIdle struct{}

// MapLocationSelected is the map with one location selected and no water.
type MapLocationSelected struct {
	Location atlas.Location
}

// MapWaterOpen is the map with a location selected and a water panel open.
//
// Water is not required to be linked to Location; the panel then lists no
// creatures.
type MapWaterOpen struct {
	Location atlas.Location
	Water    atlas.Water
}

// Detail is the creature screen. The names are resolved when the creature
// is picked and are empty when the catalog could not resolve them.
type Detail struct {
	Creature     atlas.Creature
	LocationName string
	WaterName    string
	Period       atlas.Period
}

const (
	NameMapIdle             = "map_idle"
	NameMapLocationSelected = "map_location_selected"
	NameMapWaterOpen        = "map_water_open"
	NameDetail              = "detail"
)

func (MapIdle) Name() string             { return NameMapIdle }
func (MapLocationSelected) Name() string { return NameMapLocationSelected }
func (MapWaterOpen) Name() string        { return NameMapWaterOpen }
func (Detail) Name() string              { return NameDetail }

func (MapIdle) Screen() Screen             { return ScreenMap }
func (MapLocationSelected) Screen() Screen { return ScreenMap }
func (MapWaterOpen) Screen() Screen        { return ScreenMap }
func (Detail) Screen() Screen              { return ScreenDetail }

func (MapIdle) isState()             {}
func (MapLocationSelected) isState() {}
func (MapWaterOpen) isState()        {}
func (Detail) isState()              {}

// SelectedLocation returns the location selected on the map, if any.
func SelectedLocation(state State) (atlas.Location, bool) {
	switch s := state.(type) {
	case MapLocationSelected:
		return s.Location, true
	case MapWaterOpen:
		return s.Location, true
	}
	return atlas.Location{}, false
}

// OpenWater returns the water whose panel is open, if any.
func OpenWater(state State) (atlas.Water, bool) {
	if s, ok := state.(MapWaterOpen); ok {
		return s.Water, true
	}
	return atlas.Water{}, false
}
