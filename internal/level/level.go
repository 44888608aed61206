// Package level turns a tile bitmap into a playable level: static geometry,
// collision segments and the entity containers, plus the per-frame queries
// and systems that run over them.
package level

import (
	"fmt"
	"log"

	"levelengine/internal/collision"
	"levelengine/internal/config"
	"levelengine/internal/entity"
	"levelengine/internal/lifecycle"
	"levelengine/internal/mathutil"
)

// Options carries the collaborators a level is built with
type Options struct {
	Config  *config.Config
	Player  Player
	Sounder Sounder
	// Logger defaults to the standard logger
	Logger *log.Logger
}

// Level is one loaded level instance
type Level struct {
	cfg     *config.Config
	bitmap  *Bitmap
	geo     *Geometry
	coll    *collision.CollisionSystem
	player  Player
	sounder Sounder
	logger  *log.Logger

	start    mathutil.Vec2
	hasStart bool

	doors       map[entity.DoorKind]*lifecycle.Container[*entity.Door]
	enemies     map[entity.EnemyKind]*lifecycle.Container[*entity.Enemy]
	pickups     *lifecycle.Container[*entity.Pickup]
	decorations *lifecycle.Container[*entity.Decoration]
	barrels     *lifecycle.Container[*entity.Barrel]
	blood       *lifecycle.Container[*entity.Blood]
	fires       *lifecycle.Container[*entity.Fire]
	explosions  *lifecycle.Container[*entity.Explosion]
	rockets     *lifecycle.Container[*entity.Rocket]
	exits       []*entity.Exit

	// objective is the target of the last area attack. It does not own
	// the entity and is cleared when the entity is flushed out.
	objective entity.Damageable

	exitOffset  int
	exitReached bool
}

// New compiles a bitmap into a level
func New(bm *Bitmap, opts Options) (*Level, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	l := &Level{
		cfg:         cfg,
		bitmap:      bm,
		player:      opts.Player,
		sounder:     opts.Sounder,
		logger:      opts.Logger,
		doors:       make(map[entity.DoorKind]*lifecycle.Container[*entity.Door]),
		enemies:     make(map[entity.EnemyKind]*lifecycle.Container[*entity.Enemy]),
		pickups:     lifecycle.NewContainer[*entity.Pickup]("pickups"),
		decorations: lifecycle.NewContainer[*entity.Decoration]("decorations"),
		barrels:     lifecycle.NewContainer[*entity.Barrel]("barrels"),
		blood:       lifecycle.NewContainer[*entity.Blood]("blood"),
		fires:       lifecycle.NewContainer[*entity.Fire]("fires"),
		explosions:  lifecycle.NewContainer[*entity.Explosion]("explosions"),
		rockets:     lifecycle.NewContainer[*entity.Rocket]("rockets"),
	}
	if l.sounder == nil {
		l.sounder = silentSounder{}
	}
	if l.logger == nil {
		l.logger = log.Default()
	}
	for _, kind := range entity.DoorKinds {
		l.doors[kind] = lifecycle.NewContainer[*entity.Door](kind.String())
	}
	for _, kind := range entity.EnemyKinds {
		l.enemies[kind] = lifecycle.NewContainer[*entity.Enemy](kind.String())
	}

	l.geo = Compile(bm, CompileOptions{
		TileSize:   cfg.GetTileSize(),
		WallHeight: cfg.GetWallHeight(),
		Parallel:   cfg.World.ParallelCompile,
	})
	l.coll = collision.NewCollisionSystem(l.geo.Segments, cfg.GetGridCellSize())

	if err := l.spawn(); err != nil {
		return nil, fmt.Errorf("failed to spawn entities: %w", err)
	}
	return l, nil
}

// Load reads a level image and compiles it
func Load(path string, opts Options) (*Level, error) {
	bm, err := LoadBitmap(path)
	if err != nil {
		return nil, err
	}
	l, err := New(bm, opts)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	l.logf("loaded %s: %dx%d tiles, %d triangles, %d segments, %d doors, %d enemies, %d pickups",
		path, bm.Width, bm.Height, l.geo.Mesh.TriangleCount(), len(l.geo.Segments),
		len(l.Doors()), len(l.Enemies()), l.pickups.Len())
	return l, nil
}

func (l *Level) logf(format string, args ...any) {
	l.logger.Printf("[level] "+format, args...)
}

// SetPlayer attaches the player after loading
func (l *Level) SetPlayer(p Player) {
	l.player = p
}

// Config returns the level's configuration
func (l *Level) Config() *config.Config { return l.cfg }

// Bitmap returns the source bitmap
func (l *Level) Bitmap() *Bitmap { return l.bitmap }

// Geometry returns the compiled static geometry
func (l *Level) Geometry() *Geometry { return l.geo }

// Segments returns the static collision segments
func (l *Level) Segments() []collision.Segment { return l.geo.Segments }

// Outdoor returns the tiles open to the sky
func (l *Level) Outdoor() []TileCoord { return l.geo.Outdoor }

// Start returns the player start position
func (l *Level) Start() (mathutil.Vec2, error) {
	if !l.hasStart {
		return mathutil.Vec2{}, ErrNoPlayerStart
	}
	return l.start, nil
}

// ShootingObjective returns the target of the last area attack, if any
func (l *Level) ShootingObjective() entity.Damageable { return l.objective }

// ExitReached reports the exit offset once the player has stepped on an exit
func (l *Level) ExitReached() (int, bool) { return l.exitOffset, l.exitReached }

// Doors returns every door-class entity in kind order
func (l *Level) Doors() []*entity.Door {
	var all []*entity.Door
	for _, kind := range entity.DoorKinds {
		all = append(all, l.doors[kind].Items()...)
	}
	return all
}

// DoorsOf returns one door category
func (l *Level) DoorsOf(kind entity.DoorKind) []*entity.Door { return l.doors[kind].Items() }

// Enemies returns every enemy in kind order
func (l *Level) Enemies() []*entity.Enemy {
	var all []*entity.Enemy
	for _, kind := range entity.EnemyKinds {
		all = append(all, l.enemies[kind].Items()...)
	}
	return all
}

// EnemiesOf returns one enemy category
func (l *Level) EnemiesOf(kind entity.EnemyKind) []*entity.Enemy { return l.enemies[kind].Items() }

func (l *Level) Pickups() []*entity.Pickup         { return l.pickups.Items() }
func (l *Level) Decorations() []*entity.Decoration { return l.decorations.Items() }
func (l *Level) Barrels() []*entity.Barrel         { return l.barrels.Items() }
func (l *Level) Blood() []*entity.Blood            { return l.blood.Items() }
func (l *Level) Fires() []*entity.Fire             { return l.fires.Items() }
func (l *Level) Explosions() []*entity.Explosion   { return l.explosions.Items() }
func (l *Level) Rockets() []*entity.Rocket         { return l.rockets.Items() }
func (l *Level) Exits() []*entity.Exit             { return l.exits }

// Removal requests take effect at the next Flush. Repeats are ignored.
func (l *Level) RemoveDoor(d *entity.Door)             { l.doors[d.Kind].QueueRemove(d) }
func (l *Level) RemoveEnemy(e *entity.Enemy)           { l.enemies[e.Kind].QueueRemove(e) }
func (l *Level) RemovePickup(p *entity.Pickup)         { l.pickups.QueueRemove(p) }
func (l *Level) RemoveDecoration(d *entity.Decoration) { l.decorations.QueueRemove(d) }
func (l *Level) RemoveBarrel(b *entity.Barrel)         { l.barrels.QueueRemove(b) }
func (l *Level) RemoveBlood(b *entity.Blood)           { l.blood.QueueRemove(b) }
func (l *Level) RemoveFire(f *entity.Fire)             { l.fires.QueueRemove(f) }
func (l *Level) RemoveExplosion(e *entity.Explosion)   { l.explosions.QueueRemove(e) }
func (l *Level) RemoveRocket(r *entity.Rocket)         { l.rockets.QueueRemove(r) }

// Flush applies every queued add and removal. Call it once per frame after
// all updates and queries.
func (l *Level) Flush() {
	for _, kind := range entity.DoorKinds {
		l.doors[kind].Flush()
	}
	for _, kind := range entity.EnemyKinds {
		for _, e := range l.enemies[kind].Flush() {
			l.forget(e)
		}
	}
	for _, b := range l.barrels.Flush() {
		l.forget(b)
	}
	l.pickups.Flush()
	l.decorations.Flush()
	l.blood.Flush()
	l.fires.Flush()
	l.explosions.Flush()
	l.rockets.Flush()
}

func (l *Level) forget(e entity.Damageable) {
	if l.objective == e {
		l.objective = nil
	}
}

// CheckCollisions returns the damping to apply to a movement from oldPos to
// newPos for a footprint of width x length. Y is never damped.
func (l *Level) CheckCollisions(oldPos, newPos mathutil.Vec3, width, length float64) mathutil.Vec3 {
	d := l.coll.Resolve(oldPos.Flat(), newPos.Flat(), collision.Footprint{Width: width, Length: length}, l.obstacles())
	return mathutil.Vec3{X: d.X, Y: 1, Z: d.Y}
}

// obstacles collects the footprints of every blocking entity
func (l *Level) obstacles() []collision.BoundingBox {
	var boxes []collision.BoundingBox
	for _, d := range l.Doors() {
		if d.Blocks() {
			boxes = append(boxes, d.Bounds())
		}
	}
	for _, d := range l.decorations.Items() {
		if d.Blocks() {
			boxes = append(boxes, d.Bounds())
		}
	}
	for _, b := range l.barrels.Items() {
		boxes = append(boxes, b.Bounds())
	}
	for _, e := range l.Enemies() {
		if e.Blocks() {
			boxes = append(boxes, e.Bounds())
		}
	}
	return boxes
}

// OpenDoors starts opening every door within reach of pos and returns how
// many started. Locked doors need the matching key.
func (l *Level) OpenDoors(pos mathutil.Vec2, playSound bool) int {
	reach := l.cfg.Doors.OpenDistance * l.cfg.GetTileSize()
	opened := 0
	for _, d := range l.Doors() {
		if d.Home.Dist(pos) > reach {
			continue
		}
		if d.Locked() && (l.player == nil || !l.player.HasKey(d.Kind)) {
			if playSound {
				l.play("locked", d.Home)
			}
			continue
		}
		if !d.Open(pos) {
			continue
		}
		opened++
		if playSound {
			clip := "door_open"
			if d.Kind == entity.DoorSecret {
				clip = "secret_wall"
			}
			l.play(clip, d.Home)
		}
	}
	return opened
}

// play emits a clip at a world position relative to the player
func (l *Level) play(clip string, at mathutil.Vec2) {
	dist := 0.0
	if l.player != nil {
		dist = l.player.Position().Flat().Dist(at)
	}
	l.sounder.Play(clip, dist)
}
