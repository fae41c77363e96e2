// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package layout places the waters of a selected location around it and draws
the connectors between them.

# Geometry

For N linked waters, water i sits at angle i*360/N degrees (0 along +x) at a
fixed radius from the location. Each connector is a quadratic Bézier curve
whose control point is pushed off the midpoint, perpendicular to the chord,
by 5+2i units; even indices bend to one side and odd indices to the other so
that connectors fan out.

Nothing here fails: an unknown location or an empty link set yields an empty
[Layout], and coincident endpoints yield a straight [Curve].
*/
package layout

import (
	"math"
	"strconv"
	"strings"

	"github.com/taibuivan/shanhai/internal/atlas"
)

// DefaultRadius is the distance from a location to its waters, in map units.
const DefaultRadius = 15.0

const (
	baseCurvature = 5.0
	stepCurvature = 2.0
)

// Catalog is the part of [atlas.Catalog] the engine reads.
type Catalog interface {
	Location(id string) (atlas.Location, bool)
	WatersOf(loc atlas.Location) []atlas.Water
}

// Engine computes layouts. The zero value uses [DefaultRadius].
type Engine struct {
	Radius float64
}

// NewEngine returns an engine with the given radius. Non-positive or
// non-finite radii fall back to [DefaultRadius].
func NewEngine(radius float64) Engine {
	if !(radius > 0) || math.IsInf(radius, 0) {
		radius = DefaultRadius
	}
	return Engine{Radius: radius}
}

func (e Engine) radius() float64 {
	if !(e.Radius > 0) || math.IsInf(e.Radius, 0) {
		return DefaultRadius
	}
	return e.Radius
}

// Node is one water placed on the map.
type Node struct {
	Water    atlas.Water `json:"water"`
	Index    int         `json:"index"`
	Angle    float64     `json:"angle"`
	Position atlas.Point `json:"position"`
	Curve    Curve       `json:"curve"`
}

// Layout is the arrangement of one location's waters.
type Layout struct {
	Location atlas.Location `json:"location"`
	Nodes    []Node         `json:"nodes"`
}

// Empty reports whether the layout has no nodes.
func (l Layout) Empty() bool { return len(l.Nodes) == 0 }

// Node finds the node for waterID.
func (l Layout) Node(waterID string) (Node, bool) {
	for _, node := range l.Nodes {
		if node.Water.ID == waterID {
			return node, true
		}
	}
	return Node{}, false
}

// Compute places waters around loc in the given order.
func (e Engine) Compute(loc atlas.Location, waters []atlas.Water) Layout {
	result := Layout{Location: loc, Nodes: make([]Node, 0, len(waters))}
	if len(waters) == 0 {
		return result
	}

	radius := e.radius()
	step := 360.0 / float64(len(waters))

	for i, water := range waters {
		angle := float64(i) * step
		radians := angle * math.Pi / 180
		position := atlas.Point{
			X: loc.Position.X + radius*math.Cos(radians),
			Y: loc.Position.Y + radius*math.Sin(radians),
		}

		result.Nodes = append(result.Nodes, Node{
			Water:    water,
			Index:    i,
			Angle:    angle,
			Position: position,
			Curve:    Connector(loc.Position, position, i),
		})
	}
	return result
}

// ForLocation resolves locationID and its linked waters from cat and computes
// the layout. An unknown location yields an empty layout.
func (e Engine) ForLocation(cat Catalog, locationID string) Layout {
	loc, ok := cat.Location(locationID)
	if !ok {
		return Layout{Nodes: []Node{}}
	}
	return e.Compute(loc, cat.WatersOf(loc))
}

// # Connectors

// Curve is a quadratic Bézier segment. Straight is set when the endpoints
// coincide and the control point is simply the midpoint.
type Curve struct {
	Start    atlas.Point `json:"start"`
	Control  atlas.Point `json:"control"`
	End      atlas.Point `json:"end"`
	Straight bool        `json:"straight"`
}

// Connector builds the curve from a location to the water at index.
func Connector(from, to atlas.Point, index int) Curve {
	mid := atlas.Point{X: (from.X + to.X) / 2, Y: (from.Y + to.Y) / 2}

	dx := to.X - from.X
	dy := to.Y - from.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 || math.IsNaN(dist) || math.IsInf(dist, 0) {
		return Curve{Start: from, Control: mid, End: to, Straight: true}
	}

	offset := (baseCurvature + stepCurvature*float64(index)) * Bend(index)
	return Curve{
		Start: from,
		Control: atlas.Point{
			X: mid.X + (-dy/dist)*offset,
			Y: mid.Y + (dx/dist)*offset,
		},
		End: to,
	}
}

// Bend is +1 for even indices and -1 for odd ones.
func Bend(index int) float64 {
	if index%2 == 0 {
		return 1
	}
	return -1
}

// Path renders the curve as an SVG path: "M x1 y1 Q cx cy x2 y2".
func (c Curve) Path() string {
	var b strings.Builder
	b.WriteString("M ")
	writePoint(&b, c.Start)
	b.WriteString(" Q ")
	writePoint(&b, c.Control)
	b.WriteByte(' ')
	writePoint(&b, c.End)
	return b.String()
}

// Point evaluates the curve at t, clamped to [0, 1].
func (c Curve) Point(t float64) atlas.Point {
	t = math.Max(0, math.Min(1, t))
	u := 1 - t
	return atlas.Point{
		X: u*u*c.Start.X + 2*u*t*c.Control.X + t*t*c.End.X,
		Y: u*u*c.Start.Y + 2*u*t*c.Control.Y + t*t*c.End.Y,
	}
}

func writePoint(b *strings.Builder, p atlas.Point) {
	b.WriteString(formatCoord(p.X))
	b.WriteByte(' ')
	b.WriteString(formatCoord(p.Y))
}

// formatCoord rounds to four decimals and drops trailing zeros.
func formatCoord(v float64) string {
	v = math.Round(v*1e4) / 1e4
	if v == 0 {
		v = 0 // normalise -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
