package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"levelengine/internal/audio"
	"levelengine/internal/config"
	"levelengine/internal/entity"
	"levelengine/internal/frame"
	"levelengine/internal/level"
	"levelengine/internal/mathutil"
	"levelengine/internal/mesh"
	"levelengine/internal/player"
)

const sidebarWidth = 260

// weaponKeys maps the number row to weapons
var weaponKeys = []struct {
	key    ebiten.Key
	weapon string
}{
	{ebiten.Key1, "knife"},
	{ebiten.Key2, "pistol"},
	{ebiten.Key3, "machine_gun"},
	{ebiten.Key4, "chaingun"},
	{ebiten.Key5, "shotgun"},
	{ebiten.Key6, "rocket_launcher"},
	{ebiten.Key7, "flamethrower"},
}

// viewer is a top-down window onto a running level. It doubles as the
// level's Renderer while Draw runs.
type viewer struct {
	cfg     *config.Config
	levels  []string
	index   int
	sounder *audio.Sounder
	watcher *level.Watcher
	loop    *frame.Loop

	lvl    *level.Level
	player *player.State

	// set for the duration of Draw
	screen  *ebiten.Image
	originX float32
	originY float32
	scale   float32

	lastErr string
}

func newViewer(cfg *config.Config, levels []string, sounder *audio.Sounder) (*viewer, error) {
	w, err := level.NewWatcher(levels...)
	if err != nil {
		return nil, fmt.Errorf("failed to watch levels: %w", err)
	}
	v := &viewer{
		cfg:     cfg,
		levels:  levels,
		sounder: sounder,
		watcher: w,
		loop:    frame.NewLoop(frame.SystemClock{}, cfg.Display.TicksPerSec),
		player:  player.New(cfg),
	}
	if err := v.load(0, false); err != nil {
		_ = w.Close()
		return nil, err
	}
	return v, nil
}

// Close stops watching the level files
func (v *viewer) Close() error {
	return v.watcher.Close()
}

// load opens levels[index]. With carry set the player keeps health,
// weapons and score.
func (v *viewer) load(index int, carry bool) error {
	path := v.levels[index]
	lvl, err := level.Load(path, level.Options{Config: v.cfg, Sounder: v.sounder})
	if err != nil {
		return err
	}
	start, err := lvl.Start()
	if err != nil {
		log.Printf("Warning: %s: %v", path, err)
	}

	p := player.New(v.cfg)
	if carry {
		if p, err = v.player.Carry(start); err != nil {
			return err
		}
	}
	p.Pos = start.Lift(0)
	lvl.SetPlayer(p)

	v.sounder.Reset()
	v.sounder.Preload(v.clips())

	v.lvl, v.player, v.index = lvl, p, index
	v.lastErr = ""
	return nil
}

func (v *viewer) clips() []string {
	clips := []string{"door_open", "door_close", "secret_wall", "locked", "pickup", "explosion", "rocket"}
	seen := make(map[string]bool)
	for _, e := range v.cfg.Enemies {
		if e.Death != "" && !seen[e.Death] {
			seen[e.Death] = true
			clips = append(clips, e.Death)
		}
	}
	sort.Strings(clips[7:])
	return clips
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	v.reloadChanged()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		next := v.index
		if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
			next = (v.index + 1) % len(v.levels)
		}
		if err := v.load(next, false); err != nil {
			v.lastErr = err.Error()
		}
	}

	for _, wk := range weaponKeys {
		if inpututil.IsKeyJustPressed(wk.key) {
			v.player.Select(wk.weapon)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		v.lvl.OpenDoors(v.player.Position().Flat(), true)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.fire()
	}

	turn, forward, strafe := v.intent()
	// Shots and door pushes above drain with this frame's ticks.
	v.loop.Advance(func(dt float64) {
		v.player.Angle += turn * v.cfg.GetRotSpeed() * dt
		facing := v.player.Facing()
		side := mathutil.Vec2{X: -facing.Y, Y: facing.X}
		step := facing.Scale(forward).Add(side.Scale(strafe)).Scale(v.cfg.GetMoveSpeed() * v.cfg.GetTileSize() * dt)
		if v.player.Alive() {
			v.player.Move(step.Lift(0), v.lvl)
		}
		v.lvl.Update(dt)
	}, v.lvl.Flush)

	if offset, ok := v.lvl.ExitReached(); ok {
		next := (v.index + 1 + offset) % len(v.levels)
		if err := v.load(next, true); err != nil {
			v.lastErr = err.Error()
		}
	}
	return nil
}

func (v *viewer) intent() (turn, forward, strafe float64) {
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		turn--
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		turn++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		forward++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		forward--
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		strafe--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		strafe++
	}
	return turn, forward, strafe
}

// fire shoots the current weapon along the view direction
func (v *viewer) fire() {
	if !v.player.Fire() {
		return
	}
	ts := v.cfg.GetTileSize()
	from := v.player.Position().Flat()
	facing := v.player.Facing()
	to := from.Add(facing.Scale(v.cfg.Combat.HitscanRange * ts))

	v.lvl.CheckIntersections(from, to, true)
	if v.player.WeaponClass() == level.WeaponRocket {
		v.lvl.SpawnRocket(from.Add(facing.Scale(0.5*ts)), facing)
	}
}

// reloadChanged rebuilds the current level when its image changes on disk
func (v *viewer) reloadChanged() {
	for {
		select {
		case path, ok := <-v.watcher.Events:
			if !ok {
				return
			}
			if path != v.levels[v.index] {
				continue
			}
			log.Printf("[viewer] %s changed, reloading", path)
			if err := v.load(v.index, true); err != nil {
				v.lastErr = err.Error()
			}
		case err, ok := <-v.watcher.Errors:
			if ok {
				log.Printf("Warning: watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	padding := 16
	mapW := screenW - sidebarWidth - padding*3
	mapH := screenH - padding*2

	bm := v.lvl.Bitmap()
	tilePx := mathutil.IntMax(mathutil.IntMin(mapW/bm.Width, mapH/bm.Height), 2)
	v.screen = screen
	v.scale = float32(float64(tilePx) / v.cfg.GetTileSize())
	v.originX = float32(padding + (mapW-bm.Width*tilePx)/2)
	v.originY = float32(padding + (mapH-bm.Height*tilePx)/2)

	v.drawTiles(bm, tilePx)
	v.lvl.Render(v, v.player.Position().Flat())
	v.drawPlayer()
	v.drawSidebar(screenW-sidebarWidth-padding, padding, sidebarWidth, mapH)
	v.screen = nil
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.cfg.GetScreenWidth(), v.cfg.GetScreenHeight()
}

func (v *viewer) drawTiles(bm *level.Bitmap, tilePx int) {
	for y := 0; y < bm.Height; y++ {
		for x := 0; x < bm.Width; x++ {
			t := bm.Tile(x, y)
			clr := color.RGBA{70, 70, 80, 255}
			switch {
			case t.Solid:
				clr = color.RGBA{30, 30, 40, 255}
			case t.Outdoor():
				clr = color.RGBA{60, 100, 60, 255}
			}
			px := v.originX + float32(x*tilePx)
			py := v.originY + float32(y*tilePx)
			vector.DrawFilledRect(v.screen, px, py, float32(tilePx), float32(tilePx), clr, false)
		}
	}
}

func (v *viewer) project(p mathutil.Vec2) (float32, float32) {
	return v.originX + float32(p.X)*v.scale, v.originY + float32(p.Y)*v.scale
}

// DrawMesh outlines the wall faces of the static mesh
func (v *viewer) DrawMesh(m *mesh.Mesh) {
	wall := color.RGBA{200, 200, 210, 255}
	for i := 0; i < m.TriangleCount(); i++ {
		if math.Abs(m.Normal(i).Y) > 0.5 {
			continue
		}
		a, b, c := m.Triangle(i)
		corners := []mathutil.Vec3{a.Pos, b.Pos, c.Pos}
		for j := range corners {
			k := (j + 1) % len(corners)
			if corners[j].Y != 0 || corners[k].Y != 0 {
				continue
			}
			x0, y0 := v.project(corners[j].Flat())
			x1, y1 := v.project(corners[k].Flat())
			vector.StrokeLine(v.screen, x0, y0, x1, y1, 2, wall, false)
		}
	}
}

// DrawEntity draws one entity as a box the size of its footprint
func (v *viewer) DrawEntity(category string, e entity.Entity) {
	var clr color.RGBA
	switch t := e.(type) {
	case *entity.Door:
		clr = color.RGBA{160, 110, 60, 255}
		if t.Locked() {
			clr = color.RGBA{220, 180, 40, 255}
		}
	case *entity.Enemy:
		clr = color.RGBA{230, 80, 80, 255}
	case *entity.Pickup:
		clr = color.RGBA{80, 220, 120, 255}
	case *entity.Barrel:
		clr = color.RGBA{120, 160, 60, 255}
		if t.Exploding {
			clr = color.RGBA{255, 140, 0, 255}
		}
	case *entity.Decoration:
		clr = color.RGBA{120, 120, 140, 255}
	case *entity.Rocket:
		clr = color.RGBA{255, 255, 255, 255}
	case *entity.Fire, *entity.Explosion:
		clr = color.RGBA{255, 120, 20, 200}
	case *entity.Blood:
		clr = color.RGBA{140, 0, 0, 200}
	default:
		return
	}

	if x, ok := e.(*entity.Explosion); ok {
		cx, cy := v.project(x.Pos())
		vector.StrokeCircle(v.screen, cx, cy, float32(x.Radius)*v.scale, 2, clr, true)
		return
	}
	size := e.Size()
	x, y := v.project(e.Pos().Sub(size.Scale(0.5)))
	vector.DrawFilledRect(v.screen, x, y, float32(size.X)*v.scale, float32(size.Y)*v.scale, clr, false)
	if len(category) > 0 && v.scale >= 24 {
		if _, ok := e.(*entity.Enemy); ok {
			ebitenutil.DebugPrintAt(v.screen, category[:1], int(x)+2, int(y)+1)
		}
	}
}

func (v *viewer) drawPlayer() {
	pos := v.player.Position().Flat()
	cx, cy := v.project(pos)
	radius := float32(v.cfg.Collision.PlayerFootprint*v.cfg.GetTileSize()) * v.scale / 2
	vector.DrawFilledCircle(v.screen, cx, cy, radius, color.RGBA{50, 200, 255, 255}, true)
	tip := pos.Add(v.player.Facing().Scale(v.cfg.GetTileSize()))
	tx, ty := v.project(tip)
	vector.StrokeLine(v.screen, cx, cy, tx, ty, 1, color.RGBA{255, 255, 255, 255}, true)
}

func (v *viewer) drawSidebar(x, y, w, h int) {
	vector.DrawFilledRect(v.screen, float32(x), float32(y), float32(w), float32(h), color.RGBA{18, 18, 26, 255}, false)
	vector.StrokeRect(v.screen, float32(x), float32(y), float32(w), float32(h), 2, color.RGBA{70, 70, 90, 255}, false)

	p := v.player
	weapon, _ := v.cfg.GetWeaponConfig(p.Weapon)
	lines := []string{
		v.levels[v.index],
		"",
		fmt.Sprintf("Health: %.0f", p.Health),
		fmt.Sprintf("Score: %d  Lives: %d", p.Score, p.Lives),
		fmt.Sprintf("Weapon: %s (%s)", p.Weapon, p.WeaponClass()),
	}
	if weapon.Ammo != "" {
		lines = append(lines, fmt.Sprintf("Ammo: %d %s", p.Ammo[weapon.Ammo], weapon.Ammo))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Enemies: %d", len(v.lvl.Enemies())),
		fmt.Sprintf("Doors: %d", len(v.lvl.Doors())),
		fmt.Sprintf("Pickups: %d", len(v.lvl.Pickups())),
		fmt.Sprintf("Segments: %d", len(v.lvl.Segments())),
		fmt.Sprintf("Ticks: %d", v.loop.Ticks()),
		"",
		"W/S move  A/D strafe",
		"Left/Right turn",
		"Space fire  E open  1-7 weapon",
		"R restart  Tab next  Esc quit",
	)
	if !p.Alive() {
		lines = append(lines, "", "You are dead. R to restart")
	}
	if v.lastErr != "" {
		lines = append(lines, "", v.lastErr)
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(v.screen, line, x+12, y+12+i*16)
	}
}
