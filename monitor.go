package crossway

import (
	"sync"
)

// Monitor admits vehicles into the intersection so that no two vehicles
// inside at the same time are on conflicting movements.
//
// All state is guarded by a single mutex. A vehicle that cannot enter waits
// on the condition variable of the direction named by MayEnter and re-checks
// after every wake-up. A departing vehicle signals one waiter on its own
// destination, or wakes everyone when the intersection becomes empty.
type Monitor struct {
	name      string
	mutex     sync.Mutex
	conds     [NumDirections]*sync.Cond
	occupancy Occupancy
	waiting   int
	closed    bool
	observers *ObserverManager
}

// NewMonitor creates a monitor with an empty intersection
func NewMonitor(opts ...Option) (*Monitor, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mon := &Monitor{
		name:      cfg.Name,
		observers: NewObserverManager(),
	}
	for _, d := range AllDirections() {
		mon.conds[d] = sync.NewCond(&mon.mutex)
	}
	if cfg.LogLevel != nil {
		mon.observers.AddObserver(NewLoggingObserver(*cfg.LogLevel, cfg.Name))
	}
	for _, obs := range cfg.Observers {
		mon.observers.AddObserver(obs)
	}
	return mon, nil
}

// MustNewMonitor is like NewMonitor but panics if the configuration is invalid
func MustNewMonitor(opts ...Option) *Monitor {
	mon, err := NewMonitor(opts...)
	if err != nil {
		panic(err)
	}
	return mon
}

// Name returns the monitor name
func (mon *Monitor) Name() string {
	return mon.name
}

// AddObserver registers an observer
func (mon *Monitor) AddObserver(observer Observer) {
	mon.mutex.Lock()
	defer mon.mutex.Unlock()
	mon.observers.AddObserver(observer)
}

// RemoveObserver unregisters an observer
func (mon *Monitor) RemoveObserver(observer Observer) {
	mon.mutex.Lock()
	defer mon.mutex.Unlock()
	mon.observers.RemoveObserver(observer)
}

// BeforeEntry blocks the caller until a vehicle travelling from origin to
// destination can safely enter the intersection
func (mon *Monitor) BeforeEntry(origin, destination Direction) {
	mon.Enter(NewMovement(origin, destination))
}

// AfterExit records that a vehicle travelling from origin to destination has
// left the intersection and wakes the waiters it may have been blocking
func (mon *Monitor) AfterExit(origin, destination Direction) {
	mon.Exit(NewMovement(origin, destination))
}

// Enter blocks until a vehicle on m is admitted and returns its request context.
// There is no timeout: a vehicle waits for as long as its path is not clear.
func (mon *Monitor) Enter(m Movement) *Vehicle {
	mon.mutex.Lock()
	defer mon.mutex.Unlock()

	mon.checkUsable("Enter", m)

	v := NewVehicle(m)
	for {
		decision := MayEnter(m, &mon.occupancy)
		if decision.Admit {
			break
		}

		v.Blocked = true
		v.BlockerDirection = decision.WakeOn
		mon.observers.NotifyBlock(v, decision)

		mon.waiting++
		mon.conds[decision.WakeOn].Wait()
		mon.waiting--

		// being woken only means something left; the loop re-checks
		v.WaitCount++
		mon.observers.NotifyWake(v)
	}

	mon.occupancy.increment(m)
	if mon.observers.Len() > 0 {
		mon.observers.NotifyAdmit(v, mon.occupancy.Snapshot())
	}
	return v
}

// Exit records the departure of a vehicle on m. It never blocks beyond the
// monitor lock. Exiting without a matching Enter panics with an *InvariantError.
func (mon *Monitor) Exit(m Movement) {
	mon.mutex.Lock()
	defer mon.mutex.Unlock()

	mon.checkUsable("Exit", m)

	if err := mon.occupancy.decrement(m); err != nil {
		mon.fail(err)
	}
	if mon.observers.Len() > 0 {
		mon.observers.NotifyExit(m, mon.occupancy.Snapshot())
	}

	if mon.occupancy.Empty() {
		for _, cond := range mon.conds {
			cond.Broadcast()
		}
		mon.observers.NotifySignal(m.Destination, true)
		return
	}

	// waiters blocked by m are keyed on its destination
	mon.conds[m.Destination].Signal()
	mon.observers.NotifySignal(m.Destination, false)
}

// Cleanup retires the monitor. It panics if any vehicle is still inside or
// waiting; afterwards every call on the monitor panics.
func (mon *Monitor) Cleanup() {
	mon.mutex.Lock()
	defer mon.mutex.Unlock()

	if mon.closed {
		mon.fail(NewMonitorClosedError("Cleanup"))
	}
	if inside := mon.occupancy.Total(); inside > 0 || mon.waiting > 0 {
		mon.fail(NewCleanupError(inside, mon.waiting))
	}

	mon.closed = true
	for i := range mon.conds {
		mon.conds[i] = nil
	}
}

// Snapshot returns a copy of the current occupancy
func (mon *Monitor) Snapshot() Occupancy {
	mon.mutex.Lock()
	defer mon.mutex.Unlock()
	return mon.occupancy.Snapshot()
}

// Inside returns the number of vehicles inside the intersection
func (mon *Monitor) Inside() int {
	mon.mutex.Lock()
	defer mon.mutex.Unlock()
	return mon.occupancy.Total()
}

// Waiting returns the number of vehicles blocked in Enter
func (mon *Monitor) Waiting() int {
	mon.mutex.Lock()
	defer mon.mutex.Unlock()
	return mon.waiting
}

// Closed reports whether Cleanup has run
func (mon *Monitor) Closed() bool {
	mon.mutex.Lock()
	defer mon.mutex.Unlock()
	return mon.closed
}

// checkUsable panics when the monitor is closed or m cannot be requested.
// Must be called with the lock held.
func (mon *Monitor) checkUsable(operation string, m Movement) {
	if mon.closed {
		mon.fail(NewMonitorClosedError(operation))
	}
	if !m.Valid() {
		mon.fail(NewInvalidMovementError(operation, m))
	}
}

// fail reports err to observers and panics with it
func (mon *Monitor) fail(err error) {
	mon.observers.NotifyError(err)
	panic(err)
}
