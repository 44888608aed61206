// Package pixel decodes level bitmap pixels into tile meanings.
//
// A pixel is read as the 24-bit value 0xCCFFWW. WW (blue) carries the
// wall, structural or spawn code, FF (green) the floor atlas index (the wall
// atlas index on solid tiles) and CC (red) the ceiling atlas index, where 0
// marks an open-sky tile.
package pixel

import "image/color"

// Reserved low-byte codes. The numeric values are the level file format.
const (
	CodeOpen        uint8 = 0
	CodePlayer      uint8 = 1
	CodeDoor        uint8 = 16
	CodeSecretWall  uint8 = 20
	CodeGoldDoor    uint8 = 24
	CodeBronzeDoor  uint8 = 28
	CodeBars        uint8 = 30
	CodeBarrel      uint8 = 70
	CodeExitFirst   uint8 = 96
	CodeExitLast    uint8 = 127
	CodeReservedMin uint8 = 50
	CodeReservedMax uint8 = 180
)

// Special identifies structural tiles that become door-like entities.
type Special int

const (
	SpecialNone Special = iota
	SpecialDoor
	SpecialSecretWall
	SpecialGoldDoor
	SpecialBronzeDoor
	SpecialBars
)

func (s Special) String() string {
	switch s {
	case SpecialDoor:
		return "door"
	case SpecialSecretWall:
		return "secret_wall"
	case SpecialGoldDoor:
		return "gold_door"
	case SpecialBronzeDoor:
		return "bronze_door"
	case SpecialBars:
		return "bars"
	default:
		return "none"
	}
}

// Spawn identifies the family of entity a tile spawns.
type Spawn int

const (
	SpawnNone Spawn = iota
	SpawnPlayer
	SpawnEnemy
	SpawnPickup
	SpawnDecoration
	SpawnBarrel
	SpawnExit
)

var spawnCodes = map[uint8]Spawn{
	CodePlayer: SpawnPlayer,
	CodeBarrel: SpawnBarrel,

	// decorations
	50: SpawnDecoration, 52: SpawnDecoration, 55: SpawnDecoration,
	58: SpawnDecoration, 60: SpawnDecoration, 140: SpawnDecoration,
	145: SpawnDecoration, 150: SpawnDecoration, 155: SpawnDecoration,
	160: SpawnDecoration, 170: SpawnDecoration, 180: SpawnDecoration,

	// pickups
	61: SpawnPickup, 62: SpawnPickup, 63: SpawnPickup, 64: SpawnPickup,
	65: SpawnPickup, 66: SpawnPickup, 67: SpawnPickup, 68: SpawnPickup,
	69: SpawnPickup, 71: SpawnPickup, 72: SpawnPickup, 73: SpawnPickup,
	74: SpawnPickup, 75: SpawnPickup,

	// enemies
	90: SpawnEnemy, 91: SpawnEnemy, 92: SpawnEnemy, 93: SpawnEnemy,
	94: SpawnEnemy, 95: SpawnEnemy, 130: SpawnEnemy, 135: SpawnEnemy,
}

var specialCodes = map[uint8]Special{
	CodeDoor:       SpecialDoor,
	CodeSecretWall: SpecialSecretWall,
	CodeGoldDoor:   SpecialGoldDoor,
	CodeBronzeDoor: SpecialBronzeDoor,
	CodeBars:       SpecialBars,
}

// Tile is the decoded meaning of one pixel.
type Tile struct {
	Raw        uint32
	Code       uint8
	Solid      bool
	FloorTex   int
	CeilTex    int
	HasCeiling bool
	Special    Special
	Spawn      Spawn
	ExitOffset int
}

// Outdoor reports whether the tile is open to the sky.
func (t Tile) Outdoor() bool {
	return !t.Solid && !t.HasCeiling
}

// Structural reports whether the tile becomes a door-like entity.
func (t Tile) Structural() bool {
	return t.Special != SpecialNone
}

// Decode turns a packed 0xCCFFWW pixel into a Tile.
func Decode(p uint32) Tile {
	code := uint8(p)
	floor := int(uint8(p >> 8))
	ceil := int(uint8(p >> 16))

	t := Tile{
		Raw:        p & 0xFFFFFF,
		Code:       code,
		FloorTex:   floor,
		CeilTex:    ceil,
		HasCeiling: ceil != 0,
	}

	if special, ok := specialCodes[code]; ok {
		t.Special = special
		return t
	}

	switch {
	case code == CodeOpen:
	case code >= CodeExitFirst && code <= CodeExitLast:
		t.Spawn = SpawnExit
		t.ExitOffset = int(code - CodeExitFirst)
	default:
		if spawn, ok := spawnCodes[code]; ok {
			t.Spawn = spawn
			break
		}
		// Unmapped codes inside the reserved band are plain floor.
		if code >= CodeReservedMin && code <= CodeReservedMax {
			break
		}
		t.Solid = true
	}
	return t
}

// Pack builds a pixel value from its three channels.
func Pack(ceil, floor, code uint8) uint32 {
	return uint32(ceil)<<16 | uint32(floor)<<8 | uint32(code)
}

// FromColor reads an image colour as 0xCCFFWW (red, green, blue).
func FromColor(c color.Color) uint32 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pack(n.R, n.G, n.B)
}

// ToColor is the inverse of FromColor, used to author levels in memory.
func ToColor(p uint32) color.NRGBA {
	return color.NRGBA{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: 0xFF}
}
