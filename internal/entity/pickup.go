package entity

import "levelengine/internal/mathutil"

// PickupKind is a pickup category
type PickupKind int

const (
	PickupFood PickupKind = iota
	PickupMedkit
	PickupAmmoClip
	PickupShells
	PickupMachineGun
	PickupShotgun
	PickupChaingun
	PickupRocketLauncher
	PickupFlamethrower
	PickupRockets
	PickupGas
	PickupGoldKey
	PickupBronzeKey
	PickupTreasure
)

// PickupKinds lists every kind in container order
var PickupKinds = []PickupKind{
	PickupFood, PickupMedkit, PickupAmmoClip, PickupShells,
	PickupMachineGun, PickupShotgun, PickupChaingun, PickupRocketLauncher,
	PickupFlamethrower, PickupRockets, PickupGas, PickupGoldKey,
	PickupBronzeKey, PickupTreasure,
}

var pickupNames = map[PickupKind]string{
	PickupFood:           "food",
	PickupMedkit:         "medkit",
	PickupAmmoClip:       "ammo_clip",
	PickupShells:         "shells",
	PickupMachineGun:     "machine_gun",
	PickupShotgun:        "shotgun",
	PickupChaingun:       "chaingun",
	PickupRocketLauncher: "rocket_launcher",
	PickupFlamethrower:   "flamethrower",
	PickupRockets:        "rockets",
	PickupGas:            "gas",
	PickupGoldKey:        "gold_key",
	PickupBronzeKey:      "bronze_key",
	PickupTreasure:       "treasure",
}

func (k PickupKind) String() string { return pickupNames[k] }

// PickupByCode maps level pixel codes to pickup kinds
var PickupByCode = map[uint8]PickupKind{
	61: PickupFood,
	62: PickupMedkit,
	63: PickupAmmoClip,
	64: PickupShells,
	65: PickupMachineGun,
	66: PickupShotgun,
	67: PickupChaingun,
	68: PickupRocketLauncher,
	69: PickupFlamethrower,
	71: PickupRockets,
	72: PickupGas,
	73: PickupGoldKey,
	74: PickupBronzeKey,
	75: PickupTreasure,
}

// Pickup is an item lying on the floor
type Pickup struct {
	Base
	Kind PickupKind
}

// NewPickup creates a pickup
func NewPickup(kind PickupKind, pos mathutil.Vec2, size mathutil.Vec2) *Pickup {
	return &Pickup{Base: NewBase(pos, size), Kind: kind}
}
