package entity

import "levelengine/internal/mathutil"

// DecorKind is a decoration category
type DecorKind int

const (
	DecorLamp DecorKind = iota
	DecorPillar
	DecorBones
	DecorPlant
	DecorDeadGuard
	DecorTable
	DecorChandelier
	DecorArmor
	DecorFlag
	DecorSkeleton
	DecorWell
	DecorVines
	DecorCorpse
)

// DecorKinds lists every kind in container order
var DecorKinds = []DecorKind{
	DecorLamp, DecorPillar, DecorBones, DecorPlant, DecorDeadGuard,
	DecorTable, DecorChandelier, DecorArmor, DecorFlag, DecorSkeleton,
	DecorWell, DecorVines, DecorCorpse,
}

var decorNames = map[DecorKind]string{
	DecorLamp:       "lamp",
	DecorPillar:     "pillar",
	DecorBones:      "bones",
	DecorPlant:      "plant",
	DecorDeadGuard:  "dead_guard",
	DecorTable:      "table",
	DecorChandelier: "chandelier",
	DecorArmor:      "armor",
	DecorFlag:       "flag",
	DecorSkeleton:   "skeleton",
	DecorWell:       "well",
	DecorVines:      "vines",
	DecorCorpse:     "corpse",
}

func (k DecorKind) String() string { return decorNames[k] }

// DecorByCode maps level pixel codes to decoration kinds
var DecorByCode = map[uint8]DecorKind{
	50:  DecorLamp,
	52:  DecorPillar,
	55:  DecorBones,
	58:  DecorPlant,
	60:  DecorDeadGuard,
	140: DecorTable,
	145: DecorChandelier,
	150: DecorArmor,
	155: DecorFlag,
	160: DecorSkeleton,
	170: DecorWell,
	180: DecorVines,
}

var solidDecor = map[DecorKind]bool{
	DecorPillar: true,
	DecorPlant:  true,
	DecorTable:  true,
	DecorArmor:  true,
	DecorWell:   true,
}

// Decoration is a static prop
type Decoration struct {
	Base
	Kind DecorKind
}

// NewDecoration creates a decoration
func NewDecoration(kind DecorKind, pos mathutil.Vec2, size mathutil.Vec2) *Decoration {
	return &Decoration{Base: NewBase(pos, size), Kind: kind}
}

// Blocks implements Solid
func (d *Decoration) Blocks() bool { return solidDecor[d.Kind] }

// Barrel is an explosive barrel. Damage arms it; once its fuse runs out
// the level detonates it.
type Barrel struct {
	Base
	Health    float64
	Exploding bool

	fuse Timer
}

// NewBarrel creates an intact barrel
func NewBarrel(pos mathutil.Vec2, size mathutil.Vec2, health float64) *Barrel {
	return &Barrel{Base: NewBase(pos, size), Health: health}
}

// Damage implements Damageable. A barrel "dies" when it starts exploding.
func (b *Barrel) Damage(amount float64) bool {
	if b.Exploding || amount <= 0 {
		return false
	}
	b.Health -= amount
	return b.Health <= 0
}

func (b *Barrel) Alive() bool { return !b.Exploding }

// Ignite arms the barrel with the given fuse in seconds
func (b *Barrel) Ignite(fuse float64) {
	if b.Exploding {
		return
	}
	b.Exploding = true
	b.fuse = Timer{Remaining: fuse}
}

// TickFuse reports whether the barrel detonates this tick
func (b *Barrel) TickFuse(dt float64) bool {
	return b.Exploding && b.fuse.Tick(dt)
}

// Blocks implements Solid
func (b *Barrel) Blocks() bool { return true }

// Exit marks a level exit tile
type Exit struct {
	Base
	Offset int
}

// NewExit creates an exit trigger covering a tile
func NewExit(pos mathutil.Vec2, tileSize float64, offset int) *Exit {
	return &Exit{Base: NewBase(pos, mathutil.Vec2{X: tileSize, Y: tileSize}), Offset: offset}
}
