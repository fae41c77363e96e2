package schema

// AtlasCreatureTable represents the 'atlas_creature' table
type AtlasCreatureTable struct {
	Table         string
	ID            string
	Name          string
	NameZh        string
	SourceBook    string
	SourceChapter string
	Territory     string
	OriginalText  string
	Description   string
	WaterID       string
	SortOrder     string
}

// AtlasCreature is the schema definition for atlas_creature
var AtlasCreature = AtlasCreatureTable{
	Table:         "atlas_creature",
	ID:            "id",
	Name:          "name",
	NameZh:        "name_zh",
	SourceBook:    "source_book",
	SourceChapter: "source_chapter",
	Territory:     "territory",
	OriginalText:  "original_text",
	Description:   "description",
	WaterID:       "water_id",
	SortOrder:     "sort_order",
}

func (t AtlasCreatureTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.NameZh, t.SourceBook, t.SourceChapter,
		t.Territory, t.OriginalText, t.Description, t.WaterID,
	}
}
