// Package player holds the runtime player state the level talks to.
package player

import (
	"fmt"
	"log"
	"math"

	"github.com/jinzhu/copier"

	"levelengine/internal/config"
	"levelengine/internal/entity"
	"levelengine/internal/level"
	"levelengine/internal/mathutil"
)

const (
	MaxHealth = 100
	startAmmo = 8
)

// Collider is the movement query of a level
type Collider interface {
	CheckCollisions(oldPos, newPos mathutil.Vec3, width, length float64) mathutil.Vec3
}

// State is the player. Exported fields survive a level change through Carry.
type State struct {
	Pos     mathutil.Vec3 `copier:"-"`
	Angle   float64       `copier:"-"`
	Health  float64
	Score   int
	Lives   int
	Weapon  string
	Weapons []string
	Ammo    map[string]int
	Keys    map[entity.DoorKind]bool `copier:"-"`

	cfg *config.Config
}

// New creates a fresh player with a knife and a pistol
func New(cfg *config.Config) *State {
	return &State{
		Health:  MaxHealth,
		Lives:   3,
		Weapon:  "pistol",
		Weapons: []string{"knife", "pistol"},
		Ammo:    map[string]int{"bullets": startAmmo},
		Keys:    make(map[entity.DoorKind]bool),
		cfg:     cfg,
	}
}

// Carry starts the next level with this player's health, weapons, ammo and
// score. Keys and placement do not carry over.
func (s *State) Carry(start mathutil.Vec2) (*State, error) {
	next := New(s.cfg)
	next.Weapons, next.Ammo = nil, nil
	if err := copier.CopyWithOption(next, s, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("failed to carry player state: %w", err)
	}
	next.Pos = start.Lift(0)
	return next, nil
}

// Position implements level.Player
func (s *State) Position() mathutil.Vec3 { return s.Pos }

// Facing returns the unit view direction on the level plane
func (s *State) Facing() mathutil.Vec2 {
	return mathutil.Vec2{X: math.Cos(s.Angle), Y: math.Sin(s.Angle)}
}

// WeaponClass implements level.Player
func (s *State) WeaponClass() level.WeaponClass {
	w, ok := s.cfg.GetWeaponConfig(s.Weapon)
	if !ok {
		return level.WeaponMelee
	}
	class, err := level.ParseWeaponClass(w.Class)
	if err != nil {
		return level.WeaponMelee
	}
	return class
}

// WeaponDamage implements level.Player
func (s *State) WeaponDamage() float64 {
	w, _ := s.cfg.GetWeaponConfig(s.Weapon)
	return w.Damage
}

// Damage implements level.Player
func (s *State) Damage(amount float64) {
	if amount <= 0 || !s.Alive() {
		return
	}
	s.Health = math.Max(0, s.Health-amount)
	if s.Health == 0 {
		log.Printf("[player] killed")
	}
}

func (s *State) Alive() bool { return s.Health > 0 }

// HasKey implements level.Player
func (s *State) HasKey(kind entity.DoorKind) bool { return s.Keys[kind] }

// Collect implements level.Player. Health items are refused at full health.
func (s *State) Collect(kind entity.PickupKind) bool {
	switch kind {
	case entity.PickupFood:
		return s.heal(10)
	case entity.PickupMedkit:
		return s.heal(25)
	case entity.PickupAmmoClip:
		s.Ammo["bullets"] += 8
	case entity.PickupShells:
		s.Ammo["shells"] += 4
	case entity.PickupRockets:
		s.Ammo["rockets"] += 2
	case entity.PickupGas:
		s.Ammo["gas"] += 20
	case entity.PickupMachineGun:
		s.give("machine_gun", "bullets", 6)
	case entity.PickupShotgun:
		s.give("shotgun", "shells", 4)
	case entity.PickupChaingun:
		s.give("chaingun", "bullets", 6)
	case entity.PickupRocketLauncher:
		s.give("rocket_launcher", "rockets", 2)
	case entity.PickupFlamethrower:
		s.give("flamethrower", "gas", 20)
	case entity.PickupGoldKey:
		s.Keys[entity.DoorGold] = true
	case entity.PickupBronzeKey:
		s.Keys[entity.DoorBronze] = true
	case entity.PickupTreasure:
		s.Score += 100
	default:
		return false
	}
	return true
}

func (s *State) heal(amount float64) bool {
	if s.Health >= MaxHealth {
		return false
	}
	s.Health = math.Min(MaxHealth, s.Health+amount)
	return true
}

// give adds a weapon and switches to it
func (s *State) give(weapon, ammo string, rounds int) {
	s.Ammo[ammo] += rounds
	if !s.Owns(weapon) {
		s.Weapons = append(s.Weapons, weapon)
	}
	s.Weapon = weapon
}

// Owns reports whether the player carries a weapon
func (s *State) Owns(weapon string) bool {
	for _, w := range s.Weapons {
		if w == weapon {
			return true
		}
	}
	return false
}

// Select switches to an owned weapon
func (s *State) Select(weapon string) bool {
	if !s.Owns(weapon) {
		return false
	}
	s.Weapon = weapon
	return true
}

// Fire consumes one round of the current weapon's ammo and reports whether
// the shot goes off. Melee weapons need no ammo.
func (s *State) Fire() bool {
	if !s.Alive() {
		return false
	}
	w, ok := s.cfg.GetWeaponConfig(s.Weapon)
	if !ok {
		return false
	}
	if w.Ammo == "" {
		return true
	}
	if s.Ammo[w.Ammo] <= 0 {
		return false
	}
	s.Ammo[w.Ammo]--
	return true
}

// Move applies a movement delta, damped by the level's collision query
func (s *State) Move(delta mathutil.Vec3, c Collider) {
	if delta == (mathutil.Vec3{}) {
		return
	}
	size := s.cfg.Collision.PlayerFootprint * s.cfg.GetTileSize()
	damping := c.CheckCollisions(s.Pos, s.Pos.Add(delta), size, size)
	s.Pos = s.Pos.Add(delta.Mul(damping))
}
