package level

import (
	"math"
	"testing"

	"levelengine/internal/config"
	"levelengine/internal/entity"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCheckIntersectionsNearestStaticHit(t *testing.T) {
	l, _ := newTestLevel(t, nil, nil,
		"#######",
		"#.....#",
		"#..#..#",
		"#.....#",
		"#######",
	)
	tests := []struct {
		name       string
		start, end [2]float64
		want       [2]float64
		hit        bool
	}{
		{"pillar before far wall", [2]float64{1.5, 2.5}, [2]float64{5.5, 2.5}, [2]float64{3, 2.5}, true},
		{"reverse direction", [2]float64{5.5, 2.5}, [2]float64{1.5, 2.5}, [2]float64{4, 2.5}, true},
		{"clear ray", [2]float64{1.5, 1.5}, [2]float64{5.5, 1.5}, [2]float64{}, false},
		{"ray ending in wall", [2]float64{1.5, 1.5}, [2]float64{1.5, 0.2}, [2]float64{1.5, 1}, true},
		{"zero length", [2]float64{1.5, 1.5}, [2]float64{1.5, 1.5}, [2]float64{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := l.CheckIntersections(v2(tt.start[0], tt.start[1]), v2(tt.end[0], tt.end[1]), false)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && (!approx(p.X, tt.want[0]) || !approx(p.Y, tt.want[1])) {
				t.Errorf("hit point = %v, want %v", p, tt.want)
			}
		})
	}
}

func TestCheckIntersectionsStopsAtClosedDoor(t *testing.T) {
	l, _ := newTestLevel(t, nil, nil,
		"#####",
		"#...#",
		"##D##",
		"#...#",
		"#####",
	)
	p, ok := l.CheckIntersections(v2(2.5, 1.5), v2(2.5, 3.5), false)
	if !ok {
		t.Fatal("ray passed through a closed door")
	}
	thickness := l.Config().Doors.Thickness
	if !approx(p.Y, 2.5-thickness/2) {
		t.Errorf("hit at %v, want the door's near face", p)
	}
}

// occlusionLevel has a nazi 2 units and a dog 5 units from the shooter
// with a wall 3 units away in between.
func occlusionLevel(t *testing.T, cfg *config.Config, p *mockPlayer) *Level {
	t.Helper()
	l, _ := newTestLevel(t, cfg, p,
		"#########",
		"#..n#.d.#",
		"#########",
	)
	l.EnemiesOf(entity.EnemyNazi)[0].SetPos(v2(3.25, 1.5))
	l.EnemiesOf(entity.EnemyDog)[0].SetPos(v2(6.25, 1.5))
	return l
}

func TestHitscanIsOccludedByWalls(t *testing.T) {
	p := newMockPlayer(1, 1.5)
	p.class, p.dmg = WeaponHitscan, 10
	l := occlusionLevel(t, nil, p)
	nazi := l.EnemiesOf(entity.EnemyNazi)[0]
	dog := l.EnemiesOf(entity.EnemyDog)[0]
	naziHealth, dogHealth := nazi.Health, dog.Health

	hit, ok := l.CheckIntersections(v2(1, 1.5), v2(7.9, 1.5), true)
	if !ok || !approx(hit.X, 4) || !approx(hit.Y, 1.5) {
		t.Errorf("static hit = %v,%v, want (4,1.5)", hit, ok)
	}
	if nazi.Health != naziHealth-10 {
		t.Errorf("near enemy health = %v, want %v", nazi.Health, naziHealth-10)
	}
	if dog.Health != dogHealth {
		t.Errorf("occluded enemy health = %v, want %v", dog.Health, dogHealth)
	}

	l.Flush()
	if got := len(l.Blood()); got != 1 {
		t.Errorf("blood = %d, want 1", got)
	}
}

func TestHitscanWithoutParticlesSpawnsNoBlood(t *testing.T) {
	cfg := testConfig()
	cfg.Combat.Particles = false
	p := newMockPlayer(1, 1.5)
	p.class, p.dmg = WeaponHitscan, 10
	l := occlusionLevel(t, cfg, p)

	l.CheckIntersections(v2(1, 1.5), v2(7.9, 1.5), true)
	l.Flush()
	if got := len(l.Blood()); got != 0 {
		t.Errorf("blood = %d, want 0", got)
	}
}

func TestMeleeOutOfRange(t *testing.T) {
	cfg := testConfig()
	cfg.Combat.MeleeRange = 1
	p := newMockPlayer(1, 1.5)
	p.class, p.dmg = WeaponMelee, 10
	l := occlusionLevel(t, cfg, p)
	nazi := l.EnemiesOf(entity.EnemyNazi)[0]
	dog := l.EnemiesOf(entity.EnemyDog)[0]
	naziHealth, dogHealth := nazi.Health, dog.Health

	l.CheckIntersections(v2(1, 1.5), v2(7.9, 1.5), true)
	if nazi.Health != naziHealth || dog.Health != dogHealth {
		t.Errorf("melee at range 1 damaged enemies: nazi %v, dog %v", nazi.Health, dog.Health)
	}

	// Close enough now.
	p.pos.X = 2.5
	l.CheckIntersections(v2(2.5, 1.5), v2(7.9, 1.5), true)
	if nazi.Health != naziHealth-10 {
		t.Errorf("melee in range: nazi health %v, want %v", nazi.Health, naziHealth-10)
	}
}

func TestEqualDistancesAllTakeDamage(t *testing.T) {
	p := newMockPlayer(1.5, 1.5)
	p.class, p.dmg = WeaponHitscan, 5
	l, _ := newTestLevel(t, nil, p,
		"#######",
		"#..nn.#",
		"#######",
	)
	a, b := l.EnemiesOf(entity.EnemyNazi)[0], l.EnemiesOf(entity.EnemyNazi)[1]
	a.SetPos(v2(3.5, 1.4))
	b.SetPos(v2(3.5, 1.6))
	before := a.Health

	l.CheckIntersections(v2(1.5, 1.5), v2(5.5, 1.5), true)
	if a.Health != before-5 || b.Health != before-5 {
		t.Errorf("tied enemies health = %v, %v, want both %v", a.Health, b.Health, before-5)
	}
}

func TestKillLeavesCorpse(t *testing.T) {
	p := newMockPlayer(1.5, 1.5)
	p.class, p.dmg = WeaponHitscan, 1000
	l, s := newTestLevel(t, nil, p,
		"######",
		"#..n.#",
		"######",
	)
	nazi := l.EnemiesOf(entity.EnemyNazi)[0]

	l.CheckIntersections(v2(1.5, 1.5), v2(4.5, 1.5), true)
	if nazi.Alive() {
		t.Fatal("enemy survived")
	}
	if got := len(l.EnemiesOf(entity.EnemyNazi)); got != 1 {
		t.Errorf("dead enemy dropped before flush, %d left", got)
	}

	l.Flush()
	if got := len(l.EnemiesOf(entity.EnemyNazi)); got != 0 {
		t.Errorf("enemies after flush = %d, want 0", got)
	}
	corpses := 0
	for _, d := range l.Decorations() {
		if d.Kind == entity.DecorCorpse {
			corpses++
		}
	}
	if corpses != 1 {
		t.Errorf("corpses = %d, want 1", corpses)
	}
	if s.count(l.Config().GetEnemyConfig("nazi").Death) != 1 {
		t.Errorf("death clip not played: %v", s.played)
	}
}

func TestExplodingBarrelHitsTargetRegardlessOfWeapon(t *testing.T) {
	classes := []WeaponClass{WeaponMelee, WeaponHitscan, WeaponRocket, WeaponGas}
	for _, class := range classes {
		t.Run(class.String(), func(t *testing.T) {
			cfg := testConfig()
			cfg.Enemies["nazi"] = config.EnemyConfig{Health: 100, Size: 0.5, Death: "death"}
			p := newMockPlayer(1.5, 1.5)
			p.class = class
			l, _ := newTestLevel(t, cfg, p,
				"#########",
				"#...nB..#",
				"#########",
			)
			nazi := l.EnemiesOf(entity.EnemyNazi)[0]
			barrel := l.Barrels()[0]
			barrel.Ignite(10)

			l.CheckIntersections(v2(1.5, 1.5), v2(7.5, 1.5), true)
			if want := 100 - cfg.Combat.BarrelDamage; nazi.Health != want {
				t.Errorf("enemy health = %v, want %v", nazi.Health, want)
			}
			if !nazi.Bleeding {
				t.Error("enemy is not bleeding")
			}
			l.Flush()
			if len(l.Fires()) == 0 {
				t.Error("no fire ignited on the enemy")
			}
		})
	}
}

func TestExplodingBarrelWithoutPlayer(t *testing.T) {
	cfg := testConfig()
	cfg.Enemies["nazi"] = config.EnemyConfig{Health: 100, Size: 0.5}
	l, _ := newTestLevel(t, cfg, nil,
		"#########",
		"#...nB..#",
		"#########",
	)
	l.Barrels()[0].Ignite(10)
	l.CheckIntersections(v2(1.5, 1.5), v2(7.5, 1.5), true)
	if got := l.EnemiesOf(entity.EnemyNazi)[0].Health; got != 100-cfg.Combat.BarrelDamage {
		t.Errorf("enemy health = %v, want %v", got, 100-cfg.Combat.BarrelDamage)
	}
}

func TestIntactBarrelDoesNotSplash(t *testing.T) {
	cfg := testConfig()
	cfg.Enemies["nazi"] = config.EnemyConfig{Health: 100, Size: 0.5}
	p := newMockPlayer(1.5, 1.5)
	p.class = WeaponMelee
	l, _ := newTestLevel(t, cfg, p,
		"#########",
		"#...nB..#",
		"#########",
	)
	l.CheckIntersections(v2(1.5, 1.5), v2(7.5, 1.5), true)
	if got := l.EnemiesOf(entity.EnemyNazi)[0].Health; got != 100 {
		t.Errorf("enemy health = %v, want 100", got)
	}
}

func TestShootingObjectiveClearedOnPurge(t *testing.T) {
	p := newMockPlayer(1.5, 1.5)
	p.class = WeaponRocket
	l, _ := newTestLevel(t, nil, p,
		"######",
		"#..n.#",
		"######",
	)
	nazi := l.EnemiesOf(entity.EnemyNazi)[0]

	l.CheckIntersections(v2(1.5, 1.5), v2(4.5, 1.5), true)
	if l.ShootingObjective() != entity.Damageable(nazi) {
		t.Fatalf("objective = %v, want the enemy", l.ShootingObjective())
	}

	l.RemoveEnemy(nazi)
	if l.ShootingObjective() == nil {
		t.Error("objective cleared before flush")
	}
	l.Flush()
	if l.ShootingObjective() != nil {
		t.Error("objective still set after the enemy was purged")
	}
}

func TestGasIgnitesWithinFlameRange(t *testing.T) {
	p := newMockPlayer(1.5, 1.5)
	p.class = WeaponGas
	l, _ := newTestLevel(t, nil, p,
		"#########",
		"#..n...d#",
		"#########",
	)
	l.CheckIntersections(v2(1.5, 1.5), v2(7.9, 1.5), true)
	l.Flush()
	fires := l.Fires()
	if len(fires) != 1 {
		t.Fatalf("fires = %d, want 1", len(fires))
	}
	if fires[0].Target != entity.Damageable(l.EnemiesOf(entity.EnemyNazi)[0]) {
		t.Error("fire attached to the wrong target")
	}

	nazi := l.EnemiesOf(entity.EnemyNazi)[0]
	before := nazi.Health
	l.Update(0.5)
	if want := before - 0.5*l.Config().Combat.FireDPS; !approx(nazi.Health, want) {
		t.Errorf("burning enemy health = %v, want %v", nazi.Health, want)
	}
}
