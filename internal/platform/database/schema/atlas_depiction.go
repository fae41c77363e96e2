package schema

// AtlasDepictionTable represents the 'atlas_depiction' table
type AtlasDepictionTable struct {
	Table         string
	CreatureID    string
	Period        string
	Label         string
	StyleAnalysis string
	Position      string
}

// AtlasDepiction is the schema definition for atlas_depiction
var AtlasDepiction = AtlasDepictionTable{
	Table:         "atlas_depiction",
	CreatureID:    "creature_id",
	Period:        "period",
	Label:         "label",
	StyleAnalysis: "style_analysis",
	Position:      "position",
}

func (t AtlasDepictionTable) Columns() []string {
	return []string{t.CreatureID, t.Period, t.Label, t.StyleAnalysis}
}
