// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package navigation

import (
	"encoding/json"
	"fmt"

	"github.com/taibuivan/shanhai/internal/atlas"
)

// Record is the stored form of a [State]. It keeps ids rather than records
// so a stored navigation survives catalog changes between processes.
type Record struct {
	State        string `json:"state"`
	LocationID   string `json:"location_id,omitempty"`
	WaterID      string `json:"water_id,omitempty"`
	CreatureID   string `json:"creature_id,omitempty"`
	LocationName string `json:"location_name,omitempty"`
	WaterName    string `json:"water_name,omitempty"`
	Period       string `json:"period,omitempty"`
}

// Encode converts state into its [Record].
func Encode(state State) Record {
	switch s := state.(type) {
	case MapLocationSelected:
		return Record{State: NameMapLocationSelected, LocationID: s.Location.ID}
	case MapWaterOpen:
		return Record{State: NameMapWaterOpen, LocationID: s.Location.ID, WaterID: s.Water.ID}
	case Detail:
		return Record{
			State:        NameDetail,
			CreatureID:   s.Creature.ID,
			LocationName: s.LocationName,
			WaterName:    s.WaterName,
			Period:       string(s.Period),
		}
	default:
		return Record{State: NameMapIdle}
	}
}

/*
Decode rebuilds a [State] from rec by resolving its ids against cat.

Unresolvable ids degrade instead of failing: a missing water closes the panel,
a missing location or creature returns to [MapIdle], and an unknown period
falls back to ancient.
*/
func Decode(cat Catalog, rec Record) State {
	switch rec.State {
	case NameMapLocationSelected, NameMapWaterOpen:
		loc, ok := cat.Location(rec.LocationID)
		if !ok {
			return MapIdle{}
		}
		if rec.State == NameMapWaterOpen {
			if water, ok := cat.Water(rec.WaterID); ok {
				return MapWaterOpen{Location: loc, Water: water}
			}
		}
		return MapLocationSelected{Location: loc}

	case NameDetail:
		creature, ok := cat.Creature(rec.CreatureID)
		if !ok {
			return MapIdle{}
		}
		period, ok := atlas.ParsePeriod(rec.Period)
		if !ok {
			period = atlas.PeriodAncient
		}
		return Detail{
			Creature:     creature,
			LocationName: rec.LocationName,
			WaterName:    rec.WaterName,
			Period:       period,
		}

	default:
		return MapIdle{}
	}
}

// Marshal encodes state as JSON.
func Marshal(state State) ([]byte, error) {
	data, err := json.Marshal(Encode(state))
	if err != nil {
		return nil, fmt.Errorf("navigation: marshal state: %w", err)
	}
	return data, nil
}

// Unmarshal decodes JSON produced by [Marshal].
func Unmarshal(cat Catalog, data []byte) (State, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("navigation: unmarshal state: %w", err)
	}
	return Decode(cat, rec), nil
}
