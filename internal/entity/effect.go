package entity

import "levelengine/internal/mathutil"

// Blood is a short-lived particle
type Blood struct {
	Base
	Life Timer
}

// NewBlood creates a blood particle
func NewBlood(pos mathutil.Vec2, size, lifetime float64) *Blood {
	return &Blood{Base: NewBase(pos, mathutil.Vec2{X: size, Y: size}), Life: Timer{Remaining: lifetime}}
}

// Fire burns a target for a while
type Fire struct {
	Base
	Target Damageable
	DPS    float64
	Life   Timer
}

// NewFire attaches a fire to a target
func NewFire(target Damageable, size, dps, lifetime float64) *Fire {
	return &Fire{
		Base:   NewBase(target.Pos(), mathutil.Vec2{X: size, Y: size}),
		Target: target,
		DPS:    dps,
		Life:   Timer{Remaining: lifetime},
	}
}

// Follow keeps the flame on its target
func (f *Fire) Follow() {
	if f.Target != nil {
		f.SetPos(f.Target.Pos())
	}
}

// Explosion deals splash damage on its first tick and lingers for the visual
type Explosion struct {
	Base
	Radius    float64
	Strength  float64
	Life      Timer
	Detonated bool
}

// NewExplosion creates an explosion
func NewExplosion(pos mathutil.Vec2, radius, strength, lifetime float64) *Explosion {
	return &Explosion{
		Base:     NewBase(pos, mathutil.Vec2{X: radius * 2, Y: radius * 2}),
		Radius:   radius,
		Strength: strength,
		Life:     Timer{Remaining: lifetime},
	}
}

// Rocket is a homing projectile
type Rocket struct {
	Base
	Dir   mathutil.Vec2
	Speed float64
	Life  Timer
}

// NewRocket creates a rocket flying along dir
func NewRocket(pos, dir mathutil.Vec2, size, speed, lifetime float64) *Rocket {
	return &Rocket{
		Base:  NewBase(pos, mathutil.Vec2{X: size, Y: size}),
		Dir:   dir.Normalize(),
		Speed: speed,
		Life:  Timer{Remaining: lifetime},
	}
}

// Steer blends the heading toward a point; weight 1 turns fully
func (r *Rocket) Steer(target mathutil.Vec2, weight float64) {
	want := target.Sub(r.Pos()).Normalize()
	if want == (mathutil.Vec2{}) {
		return
	}
	r.Dir = r.Dir.Scale(1 - weight).Add(want.Scale(weight)).Normalize()
}

// Step returns the next position after dt seconds
func (r *Rocket) Step(dt float64) mathutil.Vec2 {
	return r.Pos().Add(r.Dir.Scale(r.Speed * dt))
}
