package player

import (
	"testing"

	"levelengine/internal/config"
	"levelengine/internal/entity"
	"levelengine/internal/level"
	"levelengine/internal/mathutil"
)

func TestCollect(t *testing.T) {
	p := New(config.Default())

	if p.Collect(entity.PickupMedkit) {
		t.Error("medkit taken at full health")
	}
	p.Damage(30)
	if !p.Collect(entity.PickupMedkit) || p.Health != 95 {
		t.Errorf("after medkit health = %v, want 95", p.Health)
	}
	if !p.Collect(entity.PickupFood) || p.Health != MaxHealth {
		t.Errorf("health capped at %v, want %v", p.Health, MaxHealth)
	}

	if !p.Collect(entity.PickupShotgun) {
		t.Fatal("shotgun refused")
	}
	if p.Weapon != "shotgun" || p.Ammo["shells"] != 4 {
		t.Errorf("weapon = %s, shells = %d", p.Weapon, p.Ammo["shells"])
	}
	if p.WeaponClass() != level.WeaponHitscan {
		t.Errorf("shotgun class = %v, want hitscan", p.WeaponClass())
	}

	if p.HasKey(entity.DoorGold) {
		t.Error("key before pickup")
	}
	p.Collect(entity.PickupGoldKey)
	if !p.HasKey(entity.DoorGold) || p.HasKey(entity.DoorBronze) {
		t.Error("wrong keys after gold key pickup")
	}
}

func TestFireConsumesAmmo(t *testing.T) {
	p := New(config.Default())
	p.Ammo["bullets"] = 1
	if !p.Fire() {
		t.Fatal("pistol did not fire")
	}
	if p.Fire() {
		t.Error("pistol fired without ammo")
	}
	if !p.Select("knife") || !p.Fire() {
		t.Error("knife needs no ammo")
	}
	if p.WeaponClass() != level.WeaponMelee {
		t.Errorf("knife class = %v", p.WeaponClass())
	}
	if p.Select("flamethrower") {
		t.Error("selected a weapon the player does not own")
	}
}

func TestDamageAndDeath(t *testing.T) {
	p := New(config.Default())
	p.Damage(250)
	if p.Alive() || p.Health != 0 {
		t.Errorf("health = %v, alive = %v", p.Health, p.Alive())
	}
	if p.Fire() {
		t.Error("dead player fired")
	}
}

func TestCarryCopiesInventory(t *testing.T) {
	p := New(config.Default())
	p.Pos = mathutil.Vec3{X: 9, Z: 9}
	p.Health = 42
	p.Score = 300
	p.Collect(entity.PickupRocketLauncher)
	p.Collect(entity.PickupGoldKey)

	next, err := p.Carry(mathutil.Vec2{X: 1.5, Y: 2.5})
	if err != nil {
		t.Fatalf("Carry failed: %v", err)
	}
	if next.Health != 42 || next.Score != 300 || next.Weapon != "rocket_launcher" {
		t.Errorf("carried %+v", next)
	}
	if !next.Owns("rocket_launcher") || next.Ammo["rockets"] != 2 {
		t.Errorf("inventory lost: weapons %v ammo %v", next.Weapons, next.Ammo)
	}
	if next.HasKey(entity.DoorGold) {
		t.Error("keys carried into the next level")
	}
	if next.Pos != (mathutil.Vec3{X: 1.5, Z: 2.5}) {
		t.Errorf("position = %v, want the new start", next.Pos)
	}

	// The copy is deep.
	p.Ammo["rockets"] = 0
	p.Weapons[0] = "changed"
	if next.Ammo["rockets"] != 2 || next.Weapons[0] == "changed" {
		t.Error("carried state shares storage with the old player")
	}
}

type wallAtX struct{ x float64 }

func (w wallAtX) CheckCollisions(oldPos, newPos mathutil.Vec3, width, length float64) mathutil.Vec3 {
	if newPos.X+width/2 > w.x {
		return mathutil.Vec3{X: 0, Y: 1, Z: 1}
	}
	return mathutil.Vec3{X: 1, Y: 1, Z: 1}
}

func TestMoveAppliesDamping(t *testing.T) {
	p := New(config.Default())
	p.Pos = mathutil.Vec3{X: 1, Z: 1}
	wall := wallAtX{x: 1.3}

	p.Move(mathutil.Vec3{X: 0.2, Z: 0.2}, wall)
	if p.Pos != (mathutil.Vec3{X: 1, Z: 1.2}) {
		t.Errorf("position = %v, want slide along the wall", p.Pos)
	}
}
