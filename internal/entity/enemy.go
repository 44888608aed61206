package entity

import "levelengine/internal/mathutil"

// EnemyKind is an enemy category. Each kind has its own container.
type EnemyKind int

const (
	EnemyNazi EnemyKind = iota
	EnemyDog
	EnemySS
	EnemySergeant
	EnemyGhost
	EnemyZombie
	EnemyCaptain
	EnemyCommander
)

// EnemyKinds lists every kind in container order
var EnemyKinds = []EnemyKind{
	EnemyNazi, EnemyDog, EnemySS, EnemySergeant,
	EnemyGhost, EnemyZombie, EnemyCaptain, EnemyCommander,
}

var enemyNames = map[EnemyKind]string{
	EnemyNazi:      "nazi",
	EnemyDog:       "dog",
	EnemySS:        "ss",
	EnemySergeant:  "sergeant",
	EnemyGhost:     "ghost",
	EnemyZombie:    "zombie",
	EnemyCaptain:   "captain",
	EnemyCommander: "commander",
}

func (k EnemyKind) String() string { return enemyNames[k] }

// EnemyByCode maps level pixel codes to enemy kinds
var EnemyByCode = map[uint8]EnemyKind{
	90:  EnemyNazi,
	91:  EnemyDog,
	92:  EnemySS,
	93:  EnemySergeant,
	94:  EnemyGhost,
	95:  EnemyZombie,
	130: EnemyCaptain,
	135: EnemyCommander,
}

// Enemy holds the state the level needs. Behaviour is driven by an external
// AI that flips the quiet flag.
type Enemy struct {
	Base
	Kind      EnemyKind
	Health    float64
	MaxHealth float64
	Bleeding  bool

	quiet      bool
	bleedTimer Timer
}

// NewEnemy creates a quiet enemy
func NewEnemy(kind EnemyKind, pos mathutil.Vec2, size mathutil.Vec2, health float64) *Enemy {
	return &Enemy{
		Base:      NewBase(pos, size),
		Kind:      kind,
		Health:    health,
		MaxHealth: health,
		quiet:     true,
	}
}

// Damage applies damage and reports whether this call killed the enemy
func (e *Enemy) Damage(amount float64) bool {
	if !e.Alive() || amount <= 0 {
		return false
	}
	e.Health -= amount
	return e.Health <= 0
}

func (e *Enemy) Alive() bool { return e.Health > 0 }

// Quiet reports whether the enemy is idle. Quiet enemies block movement;
// alerted ones do not, so a charging enemy cannot pin the player.
func (e *Enemy) Quiet() bool { return e.quiet }

// SetQuiet is called by the AI collaborator
func (e *Enemy) SetQuiet(quiet bool) { e.quiet = quiet }

// Blocks implements Solid
func (e *Enemy) Blocks() bool { return e.quiet && e.Alive() }

// Bleed starts periodic blood spawning
func (e *Enemy) Bleed() {
	e.Bleeding = true
}

// TickBleed reports whether a blood drop is due this tick
func (e *Enemy) TickBleed(dt, interval float64) bool {
	if !e.Bleeding || !e.Alive() {
		return false
	}
	if e.bleedTimer.Tick(dt) {
		e.bleedTimer = Timer{Remaining: interval}
		return true
	}
	return false
}
