package level

import (
	"math"

	"levelengine/internal/collision"
	"levelengine/internal/entity"
	"levelengine/internal/mathutil"
)

// hit is a damageable entity crossed by a ray
type hit struct {
	target entity.Damageable
	point  mathutil.Vec2
	dist   float64
}

// nearestHits returns the hits nearest to start among items. Equal
// distances are all kept.
func nearestHits[T entity.Damageable](items []T, start, end mathutil.Vec2) []hit {
	var best []hit
	bestDist := math.Inf(1)
	for _, item := range items {
		if !item.Alive() {
			continue
		}
		p, ok := collision.RayBox(start, end, item.Bounds())
		if !ok {
			continue
		}
		d := start.Dist(p)
		switch {
		case d < bestDist:
			bestDist = d
			best = append(best[:0], hit{target: item, point: p, dist: d})
		case d == bestDist:
			best = append(best, hit{target: item, point: p, dist: d})
		}
	}
	return best
}

// CheckIntersections traces start-end against the walls and door-class
// entities and returns the nearest hit. When hurt is set, the nearest
// damageable entity of each category is resolved against the player's
// weapon and the exploding barrels.
func (l *Level) CheckIntersections(start, end mathutil.Vec2, hurt bool) (mathutil.Vec2, bool) {
	var best mathutil.Vec2
	bestDist := math.Inf(1)
	found := false

	if h, ok := l.coll.Raycast(start, end); ok {
		best, bestDist, found = h.Point, h.Dist, true
	}
	for _, d := range l.Doors() {
		p, ok := collision.RayBox(start, end, d.Bounds())
		if !ok {
			continue
		}
		if dist := start.Dist(p); dist < bestDist {
			best, bestDist, found = p, dist, true
		}
	}

	if hurt {
		l.resolveAttack(start, end, bestDist)
	}
	return best, found
}

// resolveAttack applies a shot along start-end. wallDist is the distance
// of the nearest static hit, +Inf when the ray is clear.
func (l *Level) resolveAttack(start, end mathutil.Vec2, wallDist float64) {
	var categories [][]hit
	for _, kind := range entity.EnemyKinds {
		if hits := nearestHits(l.enemies[kind].Items(), start, end); len(hits) > 0 {
			categories = append(categories, hits)
		}
	}
	enemyCategories := len(categories)
	if hits := nearestHits(l.barrels.Items(), start, end); len(hits) > 0 {
		categories = append(categories, hits)
	}

	if l.player != nil {
		l.applyWeapon(categories, wallDist)
	}

	// Exploding barrels near a hit point catch the target regardless of
	// the weapon.
	for _, hits := range categories[:enemyCategories] {
		for _, h := range hits {
			l.barrelSplash(h)
		}
	}
}

func (l *Level) applyWeapon(categories [][]hit, wallDist float64) {
	class := l.player.WeaponClass()
	damage := l.player.WeaponDamage()
	combat := l.cfg.Combat
	ts := l.cfg.GetTileSize()

	switch {
	case class == WeaponMelee:
		for _, hits := range categories {
			for _, h := range hits {
				if h.dist < combat.MeleeRange*ts {
					l.damage(h.target, damage, h.point)
				}
			}
		}
	case class == WeaponHitscan:
		for _, hits := range categories {
			for _, h := range hits {
				if h.dist >= wallDist {
					continue
				}
				l.damage(h.target, damage, h.point)
				if combat.Particles {
					l.spawnBlood(h.point)
				}
			}
		}
	case class.Area():
		var nearest *hit
		for _, hits := range categories {
			for i := range hits {
				if hits[i].dist >= wallDist {
					continue
				}
				if nearest == nil || hits[i].dist < nearest.dist {
					nearest = &hits[i]
				}
			}
		}
		if nearest == nil {
			return
		}
		l.objective = nearest.target
		if class == WeaponGas && nearest.dist < combat.FlameRange*ts {
			l.ignite(nearest.target)
		}
	}
}

// barrelSplash damages a hit target for every exploding barrel within the
// barrel radius of the hit point.
func (l *Level) barrelSplash(h hit) {
	radius := l.cfg.Combat.BarrelRadius * l.cfg.GetTileSize()
	for _, b := range l.barrels.Items() {
		if !b.Exploding || b.Pos().Dist(h.point) > radius {
			continue
		}
		l.damage(h.target, l.cfg.Combat.BarrelDamage, h.point)
		if e, ok := h.target.(*entity.Enemy); ok {
			e.Bleed()
		}
		l.ignite(h.target)
	}
}

// damage routes damage to a target and handles kills
func (l *Level) damage(target entity.Damageable, amount float64, at mathutil.Vec2) {
	if !target.Alive() {
		return
	}
	if !target.Damage(amount) {
		return
	}
	switch t := target.(type) {
	case *entity.Enemy:
		l.kill(t)
	case *entity.Barrel:
		t.Ignite(l.cfg.Combat.BarrelFuse)
	}
}

// kill removes a dead enemy and leaves a corpse behind
func (l *Level) kill(e *entity.Enemy) {
	l.RemoveEnemy(e)
	l.decorations.QueueAdd(entity.NewDecoration(entity.DecorCorpse, e.Pos(), e.Size()))
	l.play(l.cfg.GetEnemyConfig(e.Kind.String()).Death, e.Pos())
}

func (l *Level) ignite(target entity.Damageable) {
	combat := l.cfg.Combat
	l.fires.QueueAdd(entity.NewFire(target, target.Size().X, combat.FireDPS, combat.FireLifetime))
}

func (l *Level) spawnBlood(at mathutil.Vec2) {
	l.blood.QueueAdd(entity.NewBlood(at, 0.2*l.cfg.GetTileSize(), l.cfg.Combat.BloodLifetime))
}
