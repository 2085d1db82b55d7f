package simulation

import (
	"fmt"
	"sync"

	"github.com/anggasct/crossway"
)

// Violation records two conflicting movements found inside together
type Violation struct {
	A, B      crossway.Movement
	Occupancy crossway.Occupancy
}

func (v Violation) String() string {
	return fmt.Sprintf("%s and %s inside together (%d vehicles)", v.A, v.B, v.Occupancy.Total())
}

// SafetyChecker inspects the occupancy after every admission and records
// any pair of conflicting movements it finds
type SafetyChecker struct {
	crossway.BaseObserver
	mutex      sync.Mutex
	violations []Violation
	maxInside  int
	admitted   int
}

// NewSafetyChecker creates an empty checker
func NewSafetyChecker() *SafetyChecker {
	return &SafetyChecker{}
}

// OnAdmit checks every pair of occupied movements
func (c *SafetyChecker) OnAdmit(v *crossway.Vehicle, occ crossway.Occupancy) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.admitted++
	if total := occ.Total(); total > c.maxInside {
		c.maxInside = total
	}

	occupied := occ.Occupied()
	for i, a := range occupied {
		for _, b := range occupied[i+1:] {
			if crossway.Conflicts(a, b) {
				c.violations = append(c.violations, Violation{A: a, B: b, Occupancy: occ})
			}
		}
	}
}

// Violations returns the violations seen so far
func (c *SafetyChecker) Violations() []Violation {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return append([]Violation(nil), c.violations...)
}

// MaxInside returns the largest occupancy seen at an admission
func (c *SafetyChecker) MaxInside() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.maxInside
}

// Admitted returns the number of admissions checked
func (c *SafetyChecker) Admitted() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.admitted
}
