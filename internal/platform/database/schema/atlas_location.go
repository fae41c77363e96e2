package schema

// AtlasLocationTable represents the 'atlas_location' table
type AtlasLocationTable struct {
	Table     string
	ID        string
	Name      string
	NameZh    string
	PosX      string
	PosY      string
	SortOrder string
}

// AtlasLocation is the schema definition for atlas_location
var AtlasLocation = AtlasLocationTable{
	Table:     "atlas_location",
	ID:        "id",
	Name:      "name",
	NameZh:    "name_zh",
	PosX:      "pos_x",
	PosY:      "pos_y",
	SortOrder: "sort_order",
}

func (t AtlasLocationTable) Columns() []string {
	return []string{t.ID, t.Name, t.NameZh, t.PosX, t.PosY}
}

// AtlasLocationWaterTable represents the 'atlas_location_water' link table.
// Position carries the authoritative order of a location's waters.
type AtlasLocationWaterTable struct {
	Table      string
	LocationID string
	WaterID    string
	Position   string
}

// AtlasLocationWater is the schema definition for atlas_location_water
var AtlasLocationWater = AtlasLocationWaterTable{
	Table:      "atlas_location_water",
	LocationID: "location_id",
	WaterID:    "water_id",
	Position:   "position",
}

func (t AtlasLocationWaterTable) Columns() []string {
	return []string{t.LocationID, t.WaterID, t.Position}
}
