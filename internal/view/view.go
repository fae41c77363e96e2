// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package view projects a navigation state and the catalog into what each screen
widget receives: map markers, water nodes with connectors, the creature panel,
and the detail page with its timeline and relationship graph.

Projection is a pure read of its inputs; the layout is recomputed on every call.
*/
package view

import (
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/taibuivan/shanhai/internal/atlas"
	"github.com/taibuivan/shanhai/internal/layout"
	"github.com/taibuivan/shanhai/internal/navigation"
	"github.com/taibuivan/shanhai/pkg/slice"
)

// Catalog is the part of [atlas.Catalog] the projector reads.
type Catalog interface {
	layout.Catalog
	Locations() []atlas.Location
	CreaturesOf(water atlas.Water) []atlas.Creature
}

// # View Model

// Screen is the full projection of one state. Exactly one of Map and Detail is set.
type Screen struct {
	Screen navigation.Screen `json:"screen"`
	State  string            `json:"state"`
	Map    *MapView          `json:"map,omitempty"`
	Detail *DetailView       `json:"detail,omitempty"`
}

// MapView feeds the interactive map and the creature panel.
type MapView struct {
	Markers    []Marker    `json:"markers"`
	ShowReset  bool        `json:"show_reset"`
	SelectedID string      `json:"selected_location_id,omitempty"`
	Nodes      []WaterNode `json:"nodes"`
	Panel      *Panel      `json:"panel,omitempty"`
}

// Marker is one mountain on the map. Faded is set on every unselected marker
// while another one is selected.
type Marker struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	NameZh   string      `json:"name_zh"`
	Position atlas.Point `json:"position"`
	Selected bool        `json:"selected"`
	Faded    bool        `json:"faded"`
}

// WaterNode is one water placed around the selected mountain.
type WaterNode struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	NameZh    string          `json:"name_zh"`
	Kind      atlas.WaterKind `json:"kind"`
	KindLabel string          `json:"kind_label"`
	Index     int             `json:"index"`
	Angle     float64         `json:"angle"`
	Position  atlas.Point     `json:"position"`
	Curve     layout.Curve    `json:"curve"`
	Path      string          `json:"path"`
	Open      bool            `json:"open"`
}

// Panel is the creature list of the open water.
type Panel struct {
	WaterID   string          `json:"water_id"`
	Name      string          `json:"name"`
	NameZh    string          `json:"name_zh"`
	Kind      atlas.WaterKind `json:"kind"`
	KindLabel string          `json:"kind_label"`
	Creatures []CreatureCard  `json:"creatures"`
	Empty     bool            `json:"empty"`
}

// CreatureCard is one entry of the panel list.
type CreatureCard struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	NameZh      string `json:"name_zh"`
	Description string `json:"description"`
}

// DetailView feeds the creature page.
type DetailView struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	NameZh        string           `json:"name_zh"`
	SourceBook    string           `json:"source_book"`
	SourceChapter string           `json:"source_chapter"`
	Territory     string           `json:"territory"`
	OriginalText  string           `json:"original_text"`
	Description   string           `json:"description"`
	LocationName  string           `json:"location_name"`
	WaterName     string           `json:"water_name"`
	Depiction     *atlas.Depiction `json:"depiction"`
	Timeline      Timeline         `json:"timeline"`
	Graph         Graph            `json:"graph"`
}

// Timeline lists the creature's depictions and how far along the selected one is.
type Timeline struct {
	Entries  []TimelineEntry `json:"entries"`
	Progress float64         `json:"progress"`
}

// TimelineEntry is one stop on the timeline. Origin marks the ancient depiction.
type TimelineEntry struct {
	Period   atlas.Period `json:"period"`
	Label    string       `json:"label"`
	Selected bool         `json:"selected"`
	Origin   bool         `json:"origin"`
}

// Graph is the mountain, water, territory and creature relationship diagram.
type Graph struct {
	Mountain  string `json:"mountain"`
	Water     string `json:"water"`
	Territory string `json:"territory"`
	Creature  string `json:"creature"`
}

// # Projection

// Projector builds [Screen] values.
type Projector struct {
	cat    Catalog
	engine layout.Engine
}

// NewProjector constructs a [Projector].
func NewProjector(cat Catalog, engine layout.Engine) *Projector {
	return &Projector{cat: cat, engine: engine}
}

// Project renders state. A nil state renders as [navigation.MapIdle].
func (p *Projector) Project(state navigation.State) Screen {
	if state == nil {
		state = navigation.Initial()
	}

	screen := Screen{Screen: state.Screen(), State: state.Name()}
	switch s := state.(type) {
	case navigation.Detail:
		screen.Detail = p.detail(s)
	default:
		screen.Map = p.mapView(state)
	}
	return screen
}

func (p *Projector) mapView(state navigation.State) *MapView {
	selected, hasSelection := navigation.SelectedLocation(state)
	open, hasOpen := navigation.OpenWater(state)

	view := &MapView{ShowReset: hasSelection, Markers: []Marker{}, Nodes: []WaterNode{}}
	if hasSelection {
		view.SelectedID = selected.ID
	}

	for _, loc := range p.cat.Locations() {
		isSelected := hasSelection && loc.ID == selected.ID
		view.Markers = append(view.Markers, Marker{
			ID:       loc.ID,
			Name:     loc.Name,
			NameZh:   loc.NameZh,
			Position: loc.Position,
			Selected: isSelected,
			Faded:    hasSelection && !isSelected,
		})
	}

	if !hasSelection {
		return view
	}

	arrangement := p.engine.Compute(selected, p.cat.WatersOf(selected))
	for _, node := range arrangement.Nodes {
		view.Nodes = append(view.Nodes, WaterNode{
			ID:        node.Water.ID,
			Name:      node.Water.Name,
			NameZh:    node.Water.NameZh,
			Kind:      node.Water.Kind,
			KindLabel: KindLabel(node.Water.Kind),
			Index:     node.Index,
			Angle:     node.Angle,
			Position:  node.Position,
			Curve:     node.Curve,
			Path:      node.Curve.Path(),
			Open:      hasOpen && node.Water.ID == open.ID,
		})
	}

	if hasOpen {
		view.Panel = p.panel(selected, open)
	}
	return view
}

// panel lists the creatures of water. A water the location does not link
// yields an empty panel.
func (p *Projector) panel(loc atlas.Location, water atlas.Water) *Panel {
	panel := &Panel{
		WaterID:   water.ID,
		Name:      water.Name,
		NameZh:    water.NameZh,
		Kind:      water.Kind,
		KindLabel: KindLabel(water.Kind),
		Creatures: []CreatureCard{},
	}

	if slices.Contains(loc.WaterIDs, water.ID) {
		panel.Creatures = slice.Map(p.cat.CreaturesOf(water), newCard)
	}
	panel.Empty = len(panel.Creatures) == 0
	return panel
}

func newCard(creature atlas.Creature) CreatureCard {
	return CreatureCard{
		ID:          creature.ID,
		Name:        creature.Name,
		NameZh:      creature.NameZh,
		Description: creature.Description,
	}
}

func (p *Projector) detail(state navigation.Detail) *DetailView {
	creature := state.Creature
	view := &DetailView{
		ID:            creature.ID,
		Name:          creature.Name,
		NameZh:        creature.NameZh,
		SourceBook:    creature.SourceBook,
		SourceChapter: creature.SourceChapter,
		Territory:     creature.Territory,
		OriginalText:  creature.OriginalText,
		Description:   creature.Description,
		LocationName:  state.LocationName,
		WaterName:     state.WaterName,
		Timeline:      NewTimeline(creature.Depictions, state.Period),
		Graph: Graph{
			Mountain:  state.LocationName,
			Water:     state.WaterName,
			Territory: creature.Territory,
			Creature:  creature.Name,
		},
	}

	if depiction, ok := atlas.DepictionFor(creature, state.Period); ok {
		view.Depiction = &depiction
	}
	return view
}

// NewTimeline builds the timeline for depictions with period selected.
// A period absent from depictions selects no entry, even though the detail
// screen falls back to the first depiction.
func NewTimeline(depictions []atlas.Depiction, period atlas.Period) Timeline {
	timeline := Timeline{Entries: make([]TimelineEntry, 0, len(depictions))}
	for _, depiction := range depictions {
		timeline.Entries = append(timeline.Entries, TimelineEntry{
			Period:   depiction.Period,
			Label:    depiction.Label,
			Selected: depiction.Period == period,
			Origin:   depiction.Period == atlas.PeriodAncient,
		})
	}
	timeline.Progress = Progress(depictions, period)
	return timeline
}

// Progress is index/(n-1) of period within depictions. It is 0 when there
// are fewer than two depictions or the period is absent.
func Progress(depictions []atlas.Depiction, period atlas.Period) float64 {
	if len(depictions) <= 1 {
		return 0
	}
	index := slices.IndexFunc(depictions, func(d atlas.Depiction) bool { return d.Period == period })
	if index < 0 {
		return 0
	}
	return float64(index) / float64(len(depictions)-1)
}

// KindLabel is the display label of a water kind ("river" -> "River").
// A Caser is stateful, so one is created per call.
func KindLabel(kind atlas.WaterKind) string {
	return cases.Title(language.English).String(string(kind))
}
