package level

import (
	"levelengine/internal/collision"
	"levelengine/internal/entity"
	"levelengine/internal/mathutil"
)

// Update advances every entity system by dt seconds. Removals and spawns
// are queued and only become visible after Flush.
func (l *Level) Update(dt float64) {
	l.updateDoors(dt)
	l.updateEnemies(dt)
	l.updatePickups()
	l.updateBarrels(dt)
	l.updateRockets(dt)
	l.updateExplosions(dt)
	l.updateFires(dt)
	l.updateBlood(dt)
	l.updateExits()
}

func (l *Level) playerBox() (collision.BoundingBox, bool) {
	if l.player == nil || !l.player.Alive() {
		return collision.BoundingBox{}, false
	}
	size := l.cfg.Collision.PlayerFootprint * l.cfg.GetTileSize()
	return collision.BoxAt(l.player.Position().Flat(), mathutil.Vec2{X: size, Y: size}), true
}

func (l *Level) updateDoors(dt float64) {
	ts := l.cfg.GetTileSize()
	doors := l.cfg.Doors
	player, hasPlayer := l.playerBox()

	for _, d := range l.Doors() {
		doorway := collision.BoxAt(d.Home, mathutil.Vec2{X: ts, Y: ts})
		occupied := hasPlayer && doorway.Overlaps(player)
		if !occupied {
			for _, e := range l.Enemies() {
				if doorway.Overlaps(e.Bounds()) {
					occupied = true
					break
				}
			}
		}
		speed := doors.Speed
		if d.Kind == entity.DoorSecret {
			speed = doors.SecretSpeed
		}
		wasClosing := d.State == entity.DoorClosing
		d.Update(dt, speed, doors.AutoCloseTime, occupied)
		if !wasClosing && d.State == entity.DoorClosing {
			l.play("door_close", d.Home)
		}
	}
}

func (l *Level) updateEnemies(dt float64) {
	for _, e := range l.Enemies() {
		if !e.Alive() || !e.Bleeding {
			continue
		}
		if e.TickBleed(dt, l.cfg.Combat.BleedInterval) && l.cfg.Combat.Particles {
			l.spawnBlood(e.Pos())
		}
	}
}

func (l *Level) updatePickups() {
	if l.player == nil || !l.player.Alive() {
		return
	}
	pos := l.player.Position().Flat()
	radius := l.cfg.Pickups.Radius * l.cfg.GetTileSize()
	for _, p := range l.pickups.Items() {
		if l.pickups.PendingRemoval(p) || p.Pos().Dist(pos) > radius {
			continue
		}
		if l.player.Collect(p.Kind) {
			l.RemovePickup(p)
			l.sounder.Play("pickup", 0)
		}
	}
}

func (l *Level) updateBarrels(dt float64) {
	combat := l.cfg.Combat
	ts := l.cfg.GetTileSize()
	for _, b := range l.barrels.Items() {
		if !b.TickFuse(dt) || l.barrels.PendingRemoval(b) {
			continue
		}
		l.RemoveBarrel(b)
		l.explode(b.Pos(), combat.ExplosionRadius*ts, combat.ExplosionDamage)
	}
}

// explode queues an explosion; its damage lands on the explosion's first
// update.
func (l *Level) explode(at mathutil.Vec2, radius, strength float64) {
	l.explosions.QueueAdd(entity.NewExplosion(at, radius, strength, l.cfg.Combat.ExplosionLifetime))
	l.play("explosion", at)
}

func (l *Level) updateExplosions(dt float64) {
	for _, x := range l.explosions.Items() {
		if !x.Detonated {
			x.Detonated = true
			l.splash(x)
		}
		if x.Life.Tick(dt) {
			l.RemoveExplosion(x)
		}
	}
}

// splash damages everything in an explosion's radius, plus the shooting
// objective if it is outside the radius.
func (l *Level) splash(x *entity.Explosion) {
	center := x.Pos()
	objectiveHit := false
	for _, e := range l.Enemies() {
		if !e.Alive() || e.Pos().Dist(center) > x.Radius {
			continue
		}
		if entity.Damageable(e) == l.objective {
			objectiveHit = true
		}
		l.damage(e, x.Strength, e.Pos())
		e.Bleed()
	}
	for _, b := range l.barrels.Items() {
		if b.Pos().Dist(center) <= x.Radius {
			b.Ignite(l.cfg.Combat.BarrelFuse)
		}
	}
	if l.objective != nil && !objectiveHit && l.objective.Alive() {
		l.damage(l.objective, x.Strength, l.objective.Pos())
	}
	if l.player != nil && l.player.Alive() && l.player.Position().Flat().Dist(center) <= x.Radius {
		l.player.Damage(x.Strength)
	}
}

func (l *Level) updateRockets(dt float64) {
	combat := l.cfg.Combat
	for _, r := range l.rockets.Items() {
		if l.rockets.PendingRemoval(r) {
			continue
		}
		if l.objective != nil && l.objective.Alive() {
			r.Steer(l.objective.Pos(), combat.RocketHoming)
		}
		from := r.Pos()
		to := r.Step(dt)

		if p, ok := l.CheckIntersections(from, to, false); ok {
			l.detonate(r, p)
			continue
		}
		r.SetPos(to)
		if l.rocketContact(r) || r.Life.Tick(dt) {
			l.detonate(r, to)
		}
	}
}

func (l *Level) rocketContact(r *entity.Rocket) bool {
	box := r.Bounds()
	for _, e := range l.Enemies() {
		if e.Alive() && box.Intersects(e.Bounds()) {
			return true
		}
	}
	for _, b := range l.barrels.Items() {
		if box.Intersects(b.Bounds()) {
			return true
		}
	}
	return false
}

func (l *Level) detonate(r *entity.Rocket, at mathutil.Vec2) {
	combat := l.cfg.Combat
	l.RemoveRocket(r)
	l.explode(at, combat.ExplosionRadius*l.cfg.GetTileSize(), combat.ExplosionDamage)
}

// SpawnRocket launches a rocket from pos along dir
func (l *Level) SpawnRocket(pos, dir mathutil.Vec2) *entity.Rocket {
	combat := l.cfg.Combat
	ts := l.cfg.GetTileSize()
	r := entity.NewRocket(pos, dir, 0.2*ts, combat.RocketSpeed*ts, combat.RocketLifetime)
	l.rockets.QueueAdd(r)
	l.play("rocket", pos)
	return r
}

func (l *Level) updateFires(dt float64) {
	for _, f := range l.fires.Items() {
		if f.Target == nil || !f.Target.Alive() {
			l.RemoveFire(f)
			continue
		}
		f.Follow()
		l.damage(f.Target, f.DPS*dt, f.Pos())
		if f.Life.Tick(dt) {
			l.RemoveFire(f)
		}
	}
}

func (l *Level) updateBlood(dt float64) {
	for _, b := range l.blood.Items() {
		if b.Life.Tick(dt) {
			l.RemoveBlood(b)
		}
	}
}

func (l *Level) updateExits() {
	if l.exitReached || l.player == nil || !l.player.Alive() {
		return
	}
	pos := l.player.Position().Flat()
	for _, x := range l.exits {
		if x.Bounds().Contains(pos) {
			l.exitOffset, l.exitReached = x.Offset, true
			l.logf("exit %d reached", x.Offset)
			return
		}
	}
}
