package level

import (
	"levelengine/internal/entity"
	"levelengine/internal/mathutil"
	"levelengine/internal/pixel"
)

var doorKinds = map[pixel.Special]entity.DoorKind{
	pixel.SpecialDoor:       entity.DoorPlain,
	pixel.SpecialSecretWall: entity.DoorSecret,
	pixel.SpecialGoldDoor:   entity.DoorGold,
	pixel.SpecialBronzeDoor: entity.DoorBronze,
	pixel.SpecialBars:       entity.DoorBars,
}

// spawn walks every tile, border included, and creates its entity.
func (l *Level) spawn() error {
	bm := l.bitmap
	ts := l.cfg.GetTileSize()
	for y := 0; y < bm.Height; y++ {
		for x := 0; x < bm.Width; x++ {
			tile := bm.Tile(x, y)
			center := TileCenter(x, y, ts)

			if tile.Structural() {
				axisX, err := structuralAxis(bm, x, y)
				if err != nil {
					return err
				}
				axis := entity.AxisY
				if axisX {
					axis = entity.AxisX
				}
				kind := doorKinds[tile.Special]
				l.doors[kind].Add(entity.NewDoor(kind, center, axis, ts, l.cfg.Doors.Thickness*ts))
				continue
			}

			l.spawnTile(tile, x, y, center)
		}
	}
	return nil
}

func (l *Level) spawnTile(tile pixel.Tile, x, y int, center mathutil.Vec2) {
	ts := l.cfg.GetTileSize()
	switch tile.Spawn {
	case pixel.SpawnPlayer:
		if l.hasStart {
			l.logf("duplicate player start at (%d,%d), keeping the first", x, y)
			return
		}
		l.start, l.hasStart = center, true
	case pixel.SpawnEnemy:
		kind := entity.EnemyByCode[tile.Code]
		ec := l.cfg.GetEnemyConfig(kind.String())
		size := mathutil.Vec2{X: ec.Size * ts, Y: ec.Size * ts}
		l.enemies[kind].Add(entity.NewEnemy(kind, center, size, ec.Health))
	case pixel.SpawnPickup:
		size := l.cfg.Pickups.Size * ts
		l.pickups.Add(entity.NewPickup(entity.PickupByCode[tile.Code], center, mathutil.Vec2{X: size, Y: size}))
	case pixel.SpawnDecoration:
		l.decorations.Add(entity.NewDecoration(entity.DecorByCode[tile.Code], center, mathutil.Vec2{X: 0.5 * ts, Y: 0.5 * ts}))
	case pixel.SpawnBarrel:
		l.barrels.Add(entity.NewBarrel(center, mathutil.Vec2{X: 0.5 * ts, Y: 0.5 * ts}, l.cfg.Combat.BarrelHealth))
	case pixel.SpawnExit:
		l.exits = append(l.exits, entity.NewExit(center, ts, tile.ExitOffset))
	}
}
