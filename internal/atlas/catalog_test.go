// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package atlas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shanhai/internal/atlas"
	"github.com/taibuivan/shanhai/internal/platform/apperr"
)

// tinySnapshot builds a two-location catalog with one dangling creature reference.
func tinySnapshot() atlas.Snapshot {
	return atlas.Snapshot{
		Locations: []atlas.Location{
			{ID: "alpha", Name: "Alpha Peak", Position: atlas.Point{X: 10, Y: 20}, WaterIDs: []string{"alpha-river", "ghost-lake", "alpha-sea"}},
			{ID: "beta", Name: "Beta Peak", Position: atlas.Point{X: 90, Y: 90}},
		},
		Waters: []atlas.Water{
			{ID: "alpha-river", Name: "Alpha River", Kind: atlas.KindRiver, LocationID: "alpha", CreatureIDs: []string{"carp", "missing", "eel"}},
			{ID: "alpha-sea", Name: "Alpha Sea", Kind: atlas.KindSea, LocationID: "alpha"},
		},
		Creatures: []atlas.Creature{
			{ID: "carp", Name: "Carp", Depictions: []atlas.Depiction{
				{Period: atlas.PeriodAncient, Label: "Ancient Woodcut"},
				{Period: atlas.PeriodModern1, Label: "Modern Interpretation 1"},
			}},
			{ID: "eel", Name: "Eel", Depictions: []atlas.Depiction{
				{Period: atlas.PeriodModern3, Label: "Modern Interpretation 3"},
			}},
		},
	}
}

/*
TestEmbedded_Scenario walks the kunlun / jade-lake / shenyu path through the
shipped catalog.
*/
func TestEmbedded_Scenario(t *testing.T) {
	catalog := atlas.Embedded()

	assert.Equal(t, atlas.Stats{Locations: 5, Waters: 6, Creatures: 6}, catalog.Stats())

	kunlun, ok := catalog.Location("kunlun")
	require.True(t, ok)
	assert.Equal(t, "Kunlun Mountain", kunlun.Name)
	assert.Equal(t, "昆仑山", kunlun.NameZh)
	assert.Equal(t, atlas.Point{X: 25, Y: 60}, kunlun.Position)

	waters := catalog.WatersOf(kunlun)
	require.Len(t, waters, 2)
	assert.Equal(t, "kunlun-river", waters[0].ID)
	assert.Equal(t, "jade-lake", waters[1].ID)
	assert.Equal(t, "Jade Lake", waters[1].Name)
	assert.Equal(t, atlas.KindLake, waters[1].Kind)

	creatures := catalog.CreaturesOf(waters[1])
	require.Len(t, creatures, 1)
	assert.Equal(t, "shenyu", creatures[0].ID)
	assert.Len(t, creatures[0].Depictions, 4)

	assert.Empty(t, atlas.Snapshot{
		Locations: catalog.Locations(),
		Waters:    catalog.Waters(),
		Creatures: catalog.Creatures(),
	}.Gaps())
}

func TestCatalog_Lookups(t *testing.T) {
	catalog := atlas.MustCatalog(tinySnapshot())

	_, ok := catalog.Location("nowhere")
	assert.False(t, ok)
	_, ok = catalog.Water("ghost-lake")
	assert.False(t, ok)
	_, ok = catalog.Creature("missing")
	assert.False(t, ok)

	locations := catalog.Locations()
	require.Len(t, locations, 2)
	assert.Equal(t, "alpha", locations[0].ID)

	// Listing copies must not leak into the catalog.
	locations[0].Name = "changed"
	again, _ := catalog.Location("alpha")
	assert.Equal(t, "Alpha Peak", again.Name)
}

/*
TestCatalog_FiltersUnresolved verifies that dangling references are skipped
and that order follows the owning record.
*/
func TestCatalog_FiltersUnresolved(t *testing.T) {
	catalog := atlas.MustCatalog(tinySnapshot())

	alpha, _ := catalog.Location("alpha")
	waters := catalog.WatersOf(alpha)
	require.Len(t, waters, 2)
	assert.Equal(t, "alpha-river", waters[0].ID)
	assert.Equal(t, "alpha-sea", waters[1].ID)

	creatures := catalog.CreaturesOf(waters[0])
	require.Len(t, creatures, 2)
	assert.Equal(t, "carp", creatures[0].ID)
	assert.Equal(t, "eel", creatures[1].ID)

	beta, _ := catalog.Location("beta")
	assert.Empty(t, catalog.WatersOf(beta))
	assert.Empty(t, catalog.CreaturesOf(waters[1]))
}

func TestCatalog_Depiction(t *testing.T) {
	catalog := atlas.MustCatalog(tinySnapshot())
	carp, _ := catalog.Creature("carp")

	tests := []struct {
		name      string
		period    atlas.Period
		wantLabel string
	}{
		{"exact_ancient", atlas.PeriodAncient, "Ancient Woodcut"},
		{"exact_modern1", atlas.PeriodModern1, "Modern Interpretation 1"},
		{"absent_falls_back_to_first", atlas.PeriodModern2, "Ancient Woodcut"},
		{"unknown_falls_back_to_first", atlas.Period("future"), "Ancient Woodcut"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			depiction, ok := catalog.Depiction(carp, tt.period)
			require.True(t, ok)
			assert.Equal(t, tt.wantLabel, depiction.Label)
		})
	}

	t.Run("no_depictions", func(t *testing.T) {
		_, ok := catalog.Depiction(atlas.Creature{ID: "bare"}, atlas.PeriodAncient)
		assert.False(t, ok)
	})
}

func TestNewCatalog_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *atlas.Snapshot)
		field  string
	}{
		{"bad_location_id", func(s *atlas.Snapshot) { s.Locations[0].ID = "Alpha Peak" }, "locations[0].id"},
		{"duplicate_location", func(s *atlas.Snapshot) { s.Locations[1].ID = "alpha" }, "locations[1].id"},
		{"off_map", func(s *atlas.Snapshot) { s.Locations[1].Position.X = 140 }, "locations[1].position.x"},
		{"unknown_kind", func(s *atlas.Snapshot) { s.Waters[0].Kind = "pond" }, "waters[0].kind"},
		{"no_depictions", func(s *atlas.Snapshot) { s.Creatures[1].Depictions = nil }, "creatures[1].depictions"},
		{"unknown_period", func(s *atlas.Snapshot) { s.Creatures[0].Depictions[1].Period = "future" }, "creatures[0].depictions[1].period"},
		{"duplicate_water_link", func(s *atlas.Snapshot) { s.Locations[0].WaterIDs[2] = "alpha-river" }, "locations[0].water_ids[2]"},
		{"duplicate_creature_link", func(s *atlas.Snapshot) { s.Waters[0].CreatureIDs[1] = "carp" }, "waters[0].creature_ids[1]"},
		{"duplicate_period", func(s *atlas.Snapshot) { s.Creatures[0].Depictions[1].Period = atlas.PeriodAncient }, "creatures[0].depictions[1].period"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := tinySnapshot()
			tt.mutate(&snap)

			_, err := atlas.NewCatalog(snap)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			fields := make([]string, 0, len(ae.Details))
			for _, detail := range ae.Details {
				fields = append(fields, detail.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestSnapshot_Gaps(t *testing.T) {
	snap := tinySnapshot()
	snap.Waters = append(snap.Waters, atlas.Water{ID: "stray", Name: "Stray", Kind: atlas.KindLake, LocationID: "beta"})

	assert.ElementsMatch(t, []atlas.Gap{
		{Kind: atlas.GapLocationWater, From: "alpha", To: "ghost-lake"},
		{Kind: atlas.GapWaterCreature, From: "alpha-river", To: "missing"},
		{Kind: atlas.GapWaterLocation, From: "stray", To: "beta"},
	}, snap.Gaps())
}

func TestCatalog_Fingerprint(t *testing.T) {
	first := atlas.MustCatalog(tinySnapshot())
	second := atlas.MustCatalog(tinySnapshot())
	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
	assert.Len(t, first.Fingerprint(), 32)

	changed := tinySnapshot()
	changed.Creatures[0].Name = "Golden Carp"
	assert.NotEqual(t, first.Fingerprint(), atlas.MustCatalog(changed).Fingerprint())
}

func TestPeriod(t *testing.T) {
	assert.Equal(t, 0, atlas.PeriodAncient.Index())
	assert.Equal(t, 3, atlas.PeriodModern3.Index())
	assert.Equal(t, -1, atlas.Period("future").Index())

	p, ok := atlas.ParsePeriod("modern2")
	assert.True(t, ok)
	assert.Equal(t, atlas.PeriodModern2, p)

	_, ok = atlas.ParsePeriod("")
	assert.False(t, ok)
}
