// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package navigation

import (
	"github.com/taibuivan/shanhai/internal/atlas"
	"github.com/taibuivan/shanhai/internal/platform/validate"
)

// EventType is the wire name of an [Event].
type EventType string

const (
	EventSelectLocation EventType = "select_location"
	EventSelectWater    EventType = "select_water"
	EventClosePanel     EventType = "close_panel"
	EventReset          EventType = "reset"
	EventPickCreature   EventType = "pick_creature"
	EventBack           EventType = "back"
	EventSelectPeriod   EventType = "select_period"
)

// EventTypes lists every event type in wire form.
var EventTypes = []string{
	string(EventSelectLocation), string(EventSelectWater), string(EventClosePanel),
	string(EventReset), string(EventPickCreature), string(EventBack), string(EventSelectPeriod),
}

// Event is the sum type of user interactions.
type Event interface {
	Type() EventType

	isEvent()
}

// SelectLocation clicks a mountain on the map.
type SelectLocation struct{ ID string }

// SelectWater clicks a water node around the selected mountain.
type SelectWater struct{ ID string }

// ClosePanel closes the open water panel.
type ClosePanel struct{}

// Reset clears the map selection (reset button or empty background).
type Reset struct{}

// PickCreature opens a creature from the water panel.
type PickCreature struct{ ID string }

// Back leaves the detail screen.
type Back struct{}

// SelectPeriod switches the depiction shown on the detail screen.
type SelectPeriod struct{ Period atlas.Period }

func (SelectLocation) Type() EventType { return EventSelectLocation }
func (SelectWater) Type() EventType    { return EventSelectWater }
func (ClosePanel) Type() EventType     { return EventClosePanel }
func (Reset) Type() EventType          { return EventReset }
func (PickCreature) Type() EventType   { return EventPickCreature }
func (Back) Type() EventType           { return EventBack }
func (SelectPeriod) Type() EventType   { return EventSelectPeriod }

func (SelectLocation) isEvent() {}
func (SelectWater) isEvent()    {}
func (ClosePanel) isEvent()     {}
func (Reset) isEvent()          {}
func (PickCreature) isEvent()   {}
func (Back) isEvent()           {}
func (SelectPeriod) isEvent()   {}

// EventInput is the wire form of an event.
type EventInput struct {
	Type   string `json:"type"`
	ID     string `json:"id,omitempty"`
	Period string `json:"period,omitempty"`
}

// ParseEvent validates in and converts it into an [Event].
// It returns a VALIDATION_ERROR [apperr.AppError] for malformed input.
func ParseEvent(in EventInput) (Event, error) {
	v := &validate.Validator{}
	v.OneOf("type", in.Type, EventTypes...)

	switch EventType(in.Type) {
	case EventSelectLocation, EventSelectWater, EventPickCreature:
		v.Required("id", in.ID).MaxLen("id", in.ID, 64)
	case EventSelectPeriod:
		v.OneOf("period", in.Period, atlas.PeriodStrings()...)
	}

	if err := v.Err(); err != nil {
		return nil, err
	}

	switch EventType(in.Type) {
	case EventSelectLocation:
		return SelectLocation{ID: in.ID}, nil
	case EventSelectWater:
		return SelectWater{ID: in.ID}, nil
	case EventClosePanel:
		return ClosePanel{}, nil
	case EventReset:
		return Reset{}, nil
	case EventPickCreature:
		return PickCreature{ID: in.ID}, nil
	case EventBack:
		return Back{}, nil
	default:
		return SelectPeriod{Period: atlas.Period(in.Period)}, nil
	}
}
