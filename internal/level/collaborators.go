package level

import (
	"fmt"

	"levelengine/internal/entity"
	"levelengine/internal/mathutil"
	"levelengine/internal/mesh"
)

// WeaponClass selects how an attack is resolved
type WeaponClass int

const (
	WeaponMelee WeaponClass = iota
	WeaponHitscan
	WeaponRocket
	WeaponGas
)

func (w WeaponClass) String() string {
	switch w {
	case WeaponMelee:
		return "melee"
	case WeaponHitscan:
		return "hitscan"
	case WeaponRocket:
		return "rocket"
	case WeaponGas:
		return "gas"
	}
	return fmt.Sprintf("WeaponClass(%d)", int(w))
}

// Area reports whether the class deals damage through the shooting objective
func (w WeaponClass) Area() bool {
	return w == WeaponRocket || w == WeaponGas
}

// ParseWeaponClass maps a config class name
func ParseWeaponClass(name string) (WeaponClass, error) {
	switch name {
	case "melee":
		return WeaponMelee, nil
	case "hitscan":
		return WeaponHitscan, nil
	case "rocket":
		return WeaponRocket, nil
	case "gas":
		return WeaponGas, nil
	}
	return 0, fmt.Errorf("unknown weapon class %q", name)
}

// Player is the level's view of the player
type Player interface {
	Position() mathutil.Vec3
	WeaponClass() WeaponClass
	WeaponDamage() float64
	Damage(amount float64)
	Alive() bool
	HasKey(kind entity.DoorKind) bool
	// Collect offers a pickup; false leaves it in the level.
	Collect(kind entity.PickupKind) bool
}

// Sounder plays a named clip heard from distance away
type Sounder interface {
	Play(clip string, distance float64)
}

// Renderer receives the draw traversal
type Renderer interface {
	DrawMesh(m *mesh.Mesh)
	DrawEntity(category string, e entity.Entity)
}

type silentSounder struct{}

func (silentSounder) Play(string, float64) {}
