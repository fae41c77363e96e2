// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shanhai/internal/atlas"
	"github.com/taibuivan/shanhai/internal/layout"
	"github.com/taibuivan/shanhai/internal/navigation"
	"github.com/taibuivan/shanhai/internal/view"
)

var catalog = atlas.Embedded()

func projector() *view.Projector {
	return view.NewProjector(catalog, layout.NewEngine(15))
}

// drive applies events from MapIdle, failing on ignored ones.
func drive(t *testing.T, events ...navigation.Event) navigation.State {
	t.Helper()
	machine := navigation.NewMachine(catalog)
	for _, event := range events {
		_, err := machine.Apply(event)
		require.NoError(t, err)
	}
	return machine.State()
}

func TestProject_Idle(t *testing.T) {
	screen := projector().Project(nil)

	assert.Equal(t, navigation.ScreenMap, screen.Screen)
	assert.Equal(t, navigation.NameMapIdle, screen.State)
	require.NotNil(t, screen.Map)
	assert.Nil(t, screen.Detail)

	assert.False(t, screen.Map.ShowReset)
	assert.Empty(t, screen.Map.Nodes)
	assert.Nil(t, screen.Map.Panel)
	require.Len(t, screen.Map.Markers, 5)
	for _, marker := range screen.Map.Markers {
		assert.False(t, marker.Selected)
		assert.False(t, marker.Faded)
	}
}

func TestProject_LocationSelected(t *testing.T) {
	screen := projector().Project(drive(t, navigation.SelectLocation{ID: "kunlun"}))

	require.NotNil(t, screen.Map)
	assert.True(t, screen.Map.ShowReset)
	assert.Equal(t, "kunlun", screen.Map.SelectedID)

	for _, marker := range screen.Map.Markers {
		assert.Equal(t, marker.ID == "kunlun", marker.Selected, marker.ID)
		assert.Equal(t, marker.ID != "kunlun", marker.Faded, marker.ID)
	}

	require.Len(t, screen.Map.Nodes, 2)
	assert.Equal(t, "kunlun-river", screen.Map.Nodes[0].ID)
	assert.Equal(t, "River", screen.Map.Nodes[0].KindLabel)
	assert.Equal(t, "jade-lake", screen.Map.Nodes[1].ID)
	assert.Equal(t, "Lake", screen.Map.Nodes[1].KindLabel)
	assert.Equal(t, "M 25 60 Q 17.5 67 10 60", screen.Map.Nodes[1].Path)
	assert.False(t, screen.Map.Nodes[1].Open)
	assert.Nil(t, screen.Map.Panel)
}

func TestProject_WaterOpen(t *testing.T) {
	screen := projector().Project(drive(t,
		navigation.SelectLocation{ID: "kunlun"},
		navigation.SelectWater{ID: "jade-lake"},
	))

	require.NotNil(t, screen.Map.Panel)
	panel := screen.Map.Panel
	assert.Equal(t, "jade-lake", panel.WaterID)
	assert.Equal(t, "瑶池", panel.NameZh)
	assert.False(t, panel.Empty)
	require.Len(t, panel.Creatures, 1)
	assert.Equal(t, "shenyu", panel.Creatures[0].ID)

	assert.False(t, screen.Map.Nodes[0].Open)
	assert.True(t, screen.Map.Nodes[1].Open)
}

/*
TestProject_UnlinkedWaterPanel opens a water that belongs to another mountain:
the panel is shown but lists nothing.
*/
func TestProject_UnlinkedWaterPanel(t *testing.T) {
	screen := projector().Project(drive(t,
		navigation.SelectLocation{ID: "kunlun"},
		navigation.SelectWater{ID: "tian-river"},
	))

	require.NotNil(t, screen.Map.Panel)
	assert.True(t, screen.Map.Panel.Empty)
	assert.Empty(t, screen.Map.Panel.Creatures)
	for _, node := range screen.Map.Nodes {
		assert.False(t, node.Open)
	}
}

func TestProject_Detail(t *testing.T) {
	state := drive(t,
		navigation.SelectLocation{ID: "kunlun"},
		navigation.SelectWater{ID: "jade-lake"},
		navigation.PickCreature{ID: "shenyu"},
		navigation.SelectPeriod{Period: atlas.PeriodModern2},
	)
	screen := projector().Project(state)

	assert.Equal(t, navigation.ScreenDetail, screen.Screen)
	assert.Nil(t, screen.Map)
	require.NotNil(t, screen.Detail)

	detail := screen.Detail
	assert.Equal(t, "shenyu", detail.ID)
	assert.Equal(t, "Kunlun Mountain", detail.LocationName)
	assert.Equal(t, "Jade Lake", detail.WaterName)
	require.NotNil(t, detail.Depiction)
	assert.Equal(t, atlas.PeriodModern2, detail.Depiction.Period)

	require.Len(t, detail.Timeline.Entries, 4)
	assert.True(t, detail.Timeline.Entries[0].Origin)
	assert.True(t, detail.Timeline.Entries[2].Selected)
	assert.InDelta(t, 2.0/3.0, detail.Timeline.Progress, 1e-9)

	assert.Equal(t, view.Graph{
		Mountain:  "Kunlun Mountain",
		Water:     "Jade Lake",
		Territory: "Kunlun Mountain - Jade Lake",
		Creature:  "Shenyu",
	}, detail.Graph)
}

/*
TestProject_DetailFallback shows the first depiction when the selected period
is missing from the creature.
*/
func TestProject_DetailFallback(t *testing.T) {
	creature := atlas.Creature{
		ID:   "carp",
		Name: "Carp",
		Depictions: []atlas.Depiction{
			{Period: atlas.PeriodAncient, Label: "Ancient Woodcut"},
			{Period: atlas.PeriodModern1, Label: "Modern Interpretation 1"},
		},
	}
	screen := projector().Project(navigation.Detail{Creature: creature, Period: atlas.PeriodModern2})

	require.NotNil(t, screen.Detail.Depiction)
	assert.Equal(t, atlas.PeriodAncient, screen.Detail.Depiction.Period)
	assert.InDelta(t, 0, screen.Detail.Timeline.Progress, 1e-9)
	for _, entry := range screen.Detail.Timeline.Entries {
		assert.False(t, entry.Selected)
	}

	bare := projector().Project(navigation.Detail{Creature: atlas.Creature{ID: "bare"}})
	assert.Nil(t, bare.Detail.Depiction)
	assert.Empty(t, bare.Detail.Timeline.Entries)
}

func TestProgress(t *testing.T) {
	four := catalog.Creatures()[0].Depictions

	tests := []struct {
		name       string
		depictions []atlas.Depiction
		period     atlas.Period
		want       float64
	}{
		{"first", four, atlas.PeriodAncient, 0},
		{"second", four, atlas.PeriodModern1, 1.0 / 3.0},
		{"last", four, atlas.PeriodModern3, 1},
		{"absent", four[:2], atlas.PeriodModern3, 0},
		{"single", four[:1], atlas.PeriodAncient, 0},
		{"none", nil, atlas.PeriodAncient, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, view.Progress(tt.depictions, tt.period), 1e-9)
		})
	}
}

func TestScreen_JSON(t *testing.T) {
	data, err := json.Marshal(projector().Project(navigation.MapIdle{}))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "map", decoded["screen"])
	assert.Equal(t, "map_idle", decoded["state"])
	assert.NotContains(t, decoded, "detail")
}
