package crossway

import (
	"fmt"
	"strings"
)

// Direction identifies one side of the intersection
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// NumDirections is the number of sides of the intersection
const NumDirections = 4

var directionNames = [NumDirections]string{"North", "East", "South", "West"}

// AllDirections returns the four directions in storage order
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Short returns the one-letter abbreviation of the direction
func (d Direction) Short() string {
	if !d.Valid() {
		return "?"
	}
	return directionNames[d][:1]
}

// Valid reports whether d is one of the four directions
func (d Direction) Valid() bool {
	return d >= North && d <= West
}

// ParseDirection parses a direction name or its one-letter abbreviation
func ParseDirection(s string) (Direction, error) {
	for _, d := range AllDirections() {
		if strings.EqualFold(s, d.String()) || strings.EqualFold(s, d.Short()) {
			return d, nil
		}
	}
	return 0, NewConfigurationError("Direction", fmt.Sprintf("unknown direction '%s'", s))
}

// Turn classifies a movement by the way the vehicle turns
type Turn int

const (
	TurnRight Turn = iota
	TurnStraight
	TurnLeft
)

func (t Turn) String() string {
	switch t {
	case TurnRight:
		return "right"
	case TurnStraight:
		return "straight"
	case TurnLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Movement is the path a vehicle takes from its origin side to its destination side
type Movement struct {
	Origin      Direction
	Destination Direction
}

// NewMovement creates a movement from origin to destination
func NewMovement(origin, destination Direction) Movement {
	return Movement{Origin: origin, Destination: destination}
}

// Valid reports whether both ends are real directions and the movement is not a U-turn
func (m Movement) Valid() bool {
	return m.Origin.Valid() && m.Destination.Valid() && m.Origin != m.Destination
}

// Turn returns the turn a vehicle makes on this movement.
// Directions are numbered clockwise, so arriving from the north and leaving
// west is a right turn.
func (m Movement) Turn() Turn {
	switch (m.Destination - m.Origin + NumDirections) % NumDirections {
	case 3:
		return TurnRight
	case 2:
		return TurnStraight
	default:
		return TurnLeft
	}
}

func (m Movement) String() string {
	return m.Origin.Short() + "->" + m.Destination.Short()
}

// AllMovements returns the twelve valid movements ordered by origin, then destination
func AllMovements() []Movement {
	movements := make([]Movement, 0, NumDirections*(NumDirections-1))
	for _, origin := range AllDirections() {
		for _, destination := range AllDirections() {
			if origin != destination {
				movements = append(movements, Movement{Origin: origin, Destination: destination})
			}
		}
	}
	return movements
}
