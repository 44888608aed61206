package level

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLevel is returned when a door-class tile does not sit
	// between exactly one pair of solid neighbours.
	ErrMalformedLevel = errors.New("malformed level")
	// ErrNoPlayerStart is returned by Start when the bitmap has no start tile.
	ErrNoPlayerStart = errors.New("level has no player start")
)

// TileError describes a bad tile. It unwraps to ErrMalformedLevel.
type TileError struct {
	X, Y   int
	Code   uint8
	Reason string
}

func (e *TileError) Error() string {
	return fmt.Sprintf("tile (%d,%d) code %d: %s", e.X, e.Y, e.Code, e.Reason)
}

func (e *TileError) Unwrap() error {
	return ErrMalformedLevel
}
