package entity

import (
	"math"

	"levelengine/internal/mathutil"
)

// DoorKind distinguishes the structural tile entities
type DoorKind int

const (
	DoorPlain DoorKind = iota
	DoorSecret
	DoorGold
	DoorBronze
	DoorBars
)

// DoorKinds lists every kind in container order
var DoorKinds = []DoorKind{DoorPlain, DoorSecret, DoorGold, DoorBronze, DoorBars}

func (k DoorKind) String() string {
	switch k {
	case DoorSecret:
		return "secret_wall"
	case DoorGold:
		return "gold_door"
	case DoorBronze:
		return "bronze_door"
	case DoorBars:
		return "bars"
	default:
		return "door"
	}
}

// Axis is the direction a door slab spans
type Axis int

const (
	// AxisX slabs span X; the tile's solid neighbours are west and east.
	AxisX Axis = iota
	// AxisY slabs span Y; the tile's solid neighbours are north and south.
	AxisY
)

// DoorState is the door animation state
type DoorState int

const (
	DoorClosed DoorState = iota
	DoorOpening
	DoorOpen
	DoorClosing
)

// secretTravel is how many tiles a secret wall slides
const secretTravel = 2

// Door is a door, locked door, bars gate or secret wall. Doors and bars
// slide sideways into the wall along their axis. Secret walls are full-tile
// blocks pushed along the free axis and never close again.
type Door struct {
	Base
	Kind     DoorKind
	Axis     Axis
	Home     mathutil.Vec2
	State    DoorState
	Openness float64

	tileSize  float64
	push      mathutil.Vec2
	openTimer Timer
}

// NewDoor creates a closed door centred on its tile
func NewDoor(kind DoorKind, center mathutil.Vec2, axis Axis, tileSize, thickness float64) *Door {
	size := mathutil.Vec2{X: tileSize, Y: thickness}
	if axis == AxisY {
		size = mathutil.Vec2{X: thickness, Y: tileSize}
	}
	if kind == DoorSecret {
		size = mathutil.Vec2{X: tileSize, Y: tileSize}
	}
	d := &Door{
		Base:     NewBase(center, size),
		Kind:     kind,
		Axis:     axis,
		Home:     center,
		tileSize: tileSize,
	}
	if axis == AxisY {
		d.T.Rotation = math.Pi / 2
	}
	return d
}

// Blocks reports whether the door takes part in movement collision. The
// footprint itself slides out of the doorway as the door opens.
func (d *Door) Blocks() bool {
	return true
}

// Locked reports whether the door needs a key
func (d *Door) Locked() bool {
	return d.Kind == DoorGold || d.Kind == DoorBronze
}

// Open starts opening. from is the opener's position, which decides the
// push direction of secret walls. It reports whether the door started moving.
func (d *Door) Open(from mathutil.Vec2) bool {
	switch d.State {
	case DoorOpening, DoorOpen:
		return false
	}
	if d.Kind == DoorSecret {
		if d.Openness > 0 {
			return false
		}
		d.push = d.pushDirection(from)
	}
	d.State = DoorOpening
	return true
}

func (d *Door) pushDirection(from mathutil.Vec2) mathutil.Vec2 {
	// A secret wall moves along its free axis, away from the opener.
	if d.Axis == AxisX {
		if from.Y <= d.Home.Y {
			return mathutil.Vec2{Y: 1}
		}
		return mathutil.Vec2{Y: -1}
	}
	if from.X <= d.Home.X {
		return mathutil.Vec2{X: 1}
	}
	return mathutil.Vec2{X: -1}
}

// Update advances the animation. occupied reports whether an actor is
// standing in the doorway, which keeps an open door from closing.
func (d *Door) Update(dt, speed, closeDelay float64, occupied bool) {
	switch d.State {
	case DoorOpening:
		d.Openness = math.Min(1, d.Openness+speed*dt)
		if d.Openness >= 1 {
			d.State = DoorOpen
			d.openTimer = Timer{Remaining: closeDelay}
		}
	case DoorOpen:
		if d.Kind == DoorSecret || closeDelay <= 0 {
			break
		}
		if occupied {
			d.openTimer = Timer{Remaining: closeDelay}
			break
		}
		if d.openTimer.Tick(dt) {
			d.State = DoorClosing
		}
	case DoorClosing:
		if occupied {
			d.State = DoorOpening
			break
		}
		d.Openness = math.Max(0, d.Openness-speed*dt)
		if d.Openness <= 0 {
			d.State = DoorClosed
		}
	}
	d.SetPos(d.offset())
}

func (d *Door) offset() mathutil.Vec2 {
	if d.Kind == DoorSecret {
		return d.Home.Add(d.push.Scale(d.Openness * secretTravel * d.tileSize))
	}
	slide := mathutil.Vec2{X: 1}
	if d.Axis == AxisY {
		slide = mathutil.Vec2{Y: 1}
	}
	return d.Home.Add(slide.Scale(d.Openness * d.tileSize))
}
