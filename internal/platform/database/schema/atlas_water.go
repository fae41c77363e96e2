package schema

// AtlasWaterTable represents the 'atlas_water' table
type AtlasWaterTable struct {
	Table      string
	ID         string
	Name       string
	NameZh     string
	Kind       string
	LocationID string
	SortOrder  string
}

// AtlasWater is the schema definition for atlas_water
var AtlasWater = AtlasWaterTable{
	Table:      "atlas_water",
	ID:         "id",
	Name:       "name",
	NameZh:     "name_zh",
	Kind:       "kind",
	LocationID: "location_id",
	SortOrder:  "sort_order",
}

func (t AtlasWaterTable) Columns() []string {
	return []string{t.ID, t.Name, t.NameZh, t.Kind, t.LocationID}
}

// AtlasWaterCreatureTable represents the 'atlas_water_creature' link table.
type AtlasWaterCreatureTable struct {
	Table      string
	WaterID    string
	CreatureID string
	Position   string
}

// AtlasWaterCreature is the schema definition for atlas_water_creature
var AtlasWaterCreature = AtlasWaterCreatureTable{
	Table:      "atlas_water_creature",
	WaterID:    "water_id",
	CreatureID: "creature_id",
	Position:   "position",
}

func (t AtlasWaterCreatureTable) Columns() []string {
	return []string{t.WaterID, t.CreatureID, t.Position}
}
