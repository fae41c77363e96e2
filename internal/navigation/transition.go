// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package navigation

import (
	"errors"

	"github.com/taibuivan/shanhai/internal/atlas"
)

// ErrIgnored is returned by [Machine.Apply] when the current state does not
// accept the event.
var ErrIgnored = errors.New("navigation: event ignored in current state")

// Initial is the state every navigation starts in.
func Initial() State { return MapIdle{} }

/*
Transition computes the state that follows event.

It reports false, and returns state unchanged, when the event is not accepted:
an event the current screen does not handle, or an id the catalog cannot
resolve. Water membership in the selected location is not checked.

Transition table:

	MapIdle              SelectLocation L  -> MapLocationSelected(L)
	MapLocationSelected  SelectLocation L2 -> MapLocationSelected(L2)
	MapLocationSelected  SelectWater W     -> MapWaterOpen(L, W)
	MapWaterOpen         SelectLocation L2 -> MapLocationSelected(L2)
	MapWaterOpen         SelectWater W2    -> MapWaterOpen(L, W2)
	MapWaterOpen         ClosePanel        -> MapLocationSelected(L)
	MapWaterOpen         PickCreature C    -> Detail(C, name(L), name(W))
	any Map*             Reset             -> MapIdle
	Detail               Back | Reset      -> MapIdle
	Detail               SelectPeriod P    -> Detail(..., P)
*/
func Transition(cat Catalog, state State, event Event) (State, bool) {
	if state == nil {
		state = Initial()
	}

	switch current := state.(type) {
	case MapIdle:
		return fromMap(cat, current, event, atlas.Location{}, false)
	case MapLocationSelected:
		return fromMap(cat, current, event, current.Location, true)
	case MapWaterOpen:
		return fromMap(cat, current, event, current.Location, true)
	case Detail:
		return fromDetail(current, event)
	default:
		return state, false
	}
}

// fromMap handles every map-screen state. selected is the current location
// when hasLocation is set.
func fromMap(cat Catalog, state State, event Event, selected atlas.Location, hasLocation bool) (State, bool) {
	switch e := event.(type) {
	case SelectLocation:
		loc, ok := cat.Location(e.ID)
		if !ok {
			return state, false
		}
		return MapLocationSelected{Location: loc}, true

	case SelectWater:
		if !hasLocation {
			return state, false
		}
		water, ok := cat.Water(e.ID)
		if !ok {
			return state, false
		}
		return MapWaterOpen{Location: selected, Water: water}, true

	case ClosePanel:
		if _, open := state.(MapWaterOpen); !open {
			return state, false
		}
		return MapLocationSelected{Location: selected}, true

	case Reset:
		return MapIdle{}, true

	case PickCreature:
		open, isOpen := state.(MapWaterOpen)
		if !isOpen {
			return state, false
		}
		creature, ok := cat.Creature(e.ID)
		if !ok {
			return state, false
		}
		return Detail{
			Creature:     creature,
			LocationName: locationName(cat, open.Location.ID),
			WaterName:    waterName(cat, open.Water.ID),
			Period:       atlas.PeriodAncient,
		}, true

	case Back, SelectPeriod:
		return state, false

	default:
		return state, false
	}
}

func fromDetail(state Detail, event Event) (State, bool) {
	switch e := event.(type) {
	case Back, Reset:
		return MapIdle{}, true

	case SelectPeriod:
		if !e.Period.Valid() {
			return state, false
		}
		state.Period = e.Period
		return state, true

	case SelectLocation, SelectWater, ClosePanel, PickCreature:
		return state, false

	default:
		return state, false
	}
}

// locationName resolves the display name at transition time, or "".
func locationName(cat Catalog, id string) string {
	if loc, ok := cat.Location(id); ok {
		return loc.Name
	}
	return ""
}

func waterName(cat Catalog, id string) string {
	if water, ok := cat.Water(id); ok {
		return water.Name
	}
	return ""
}
