package crossway

import (
	"github.com/google/uuid"
	"github.com/tiendc/go-deepcopy"
)

// Occupancy counts the vehicles currently inside the intersection per movement.
// Counts is indexed by [origin][destination]; the diagonal is always zero.
type Occupancy struct {
	Counts [NumDirections][NumDirections]int
}

// Count returns the number of vehicles inside on movement m
func (o Occupancy) Count(m Movement) int {
	if !m.Valid() {
		return 0
	}
	return o.Counts[m.Origin][m.Destination]
}

// Total returns the number of vehicles inside the intersection
func (o Occupancy) Total() int {
	total := 0
	for _, row := range o.Counts {
		for _, n := range row {
			total += n
		}
	}
	return total
}

// Empty reports whether no vehicle is inside
func (o Occupancy) Empty() bool {
	return o.Total() == 0
}

// Occupied returns the movements with at least one vehicle inside
func (o Occupancy) Occupied() []Movement {
	var occupied []Movement
	for _, m := range AllMovements() {
		if o.Counts[m.Origin][m.Destination] > 0 {
			occupied = append(occupied, m)
		}
	}
	return occupied
}

// Snapshot returns an independent copy of the occupancy. The copy is made
// with deepcopy rather than plain assignment so that observers holding a
// snapshot never share memory with the monitor, whatever fields the table grows.
func (o *Occupancy) Snapshot() Occupancy {
	var snap Occupancy
	if err := deepcopy.Copy(&snap, o); err != nil {
		panic(err)
	}
	return snap
}

func (o *Occupancy) increment(m Movement) {
	o.Counts[m.Origin][m.Destination]++
}

func (o *Occupancy) decrement(m Movement) error {
	if o.Counts[m.Origin][m.Destination] <= 0 {
		return NewUnderflowError(m)
	}
	o.Counts[m.Origin][m.Destination]--
	return nil
}

// Vehicle is the request context of one vehicle passing through the monitor.
// It belongs to the goroutine that requested entry.
type Vehicle struct {
	ID               string
	Movement         Movement
	BlockerDirection Direction
	Blocked          bool
	WaitCount        int
}

// NewVehicle creates a request context for a vehicle on movement m
func NewVehicle(m Movement) *Vehicle {
	return &Vehicle{
		ID:       uuid.New().String(),
		Movement: m,
	}
}
