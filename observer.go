package crossway

import "fmt"

// Observer represents an entity that observes vehicles passing through the monitor.
// Observers are called while the monitor lock is held and must not call back
// into the monitor.
type Observer interface {
	// Required methods

	// OnAdmit is called after a vehicle has been admitted; occ includes it
	OnAdmit(v *Vehicle, occ Occupancy)

	// OnExit is called after a vehicle on movement m has left; occ excludes it
	OnExit(m Movement, occ Occupancy)
}

// ExtendedObserver provides additional optional observation methods
type ExtendedObserver interface {
	Observer

	// OnBlock is called when a vehicle is about to wait
	OnBlock(v *Vehicle, decision Decision)

	// OnWake is called when a waiting vehicle wakes up, before it re-checks
	OnWake(v *Vehicle)

	// OnSignal is called when an exit wakes waiters on direction d.
	// broadcast is true when the intersection emptied and every direction was woken.
	OnSignal(d Direction, broadcast bool)

	// OnError is called when an invariant is violated, before the monitor panics
	OnError(err error)
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnAdmit implements the required Observer method
func (o *BaseObserver) OnAdmit(v *Vehicle, occ Occupancy) {}

// OnExit implements the required Observer method
func (o *BaseObserver) OnExit(m Movement, occ Occupancy) {}

// OnBlock implements the optional ExtendedObserver method
func (o *BaseObserver) OnBlock(v *Vehicle, decision Decision) {}

// OnWake implements the optional ExtendedObserver method
func (o *BaseObserver) OnWake(v *Vehicle) {}

// OnSignal implements the optional ExtendedObserver method
func (o *BaseObserver) OnSignal(d Direction, broadcast bool) {}

// OnError implements the optional ExtendedObserver method
func (o *BaseObserver) OnError(err error) {}

// ObserverManager manages a collection of observers
type ObserverManager struct {
	observers []Observer
}

// NewObserverManager creates a new observer manager
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		observers: make([]Observer, 0),
	}
}

// AddObserver adds an observer to the manager
func (om *ObserverManager) AddObserver(observer Observer) {
	om.observers = append(om.observers, observer)
}

// RemoveObserver removes an observer from the manager
func (om *ObserverManager) RemoveObserver(observer Observer) {
	for i, obs := range om.observers {
		if obs == observer {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			break
		}
	}
}

// Len returns the number of registered observers
func (om *ObserverManager) Len() int {
	return len(om.observers)
}

// safeCall runs fn and reports a panic to the observer's OnError, if it has one
func safeCall(observer Observer, method string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if extObs, ok := observer.(ExtendedObserver); ok {
				func() {
					defer func() { recover() }()
					extObs.OnError(fmt.Errorf("observer panic in %s: %v", method, r))
				}()
			}
		}
	}()
	fn()
}

// NotifyAdmit notifies all observers of an admission
func (om *ObserverManager) NotifyAdmit(v *Vehicle, occ Occupancy) {
	for _, observer := range om.observers {
		observer := observer
		safeCall(observer, "OnAdmit", func() { observer.OnAdmit(v, occ) })
	}
}

// NotifyExit notifies all observers of a departure
func (om *ObserverManager) NotifyExit(m Movement, occ Occupancy) {
	for _, observer := range om.observers {
		observer := observer
		safeCall(observer, "OnExit", func() { observer.OnExit(m, occ) })
	}
}

// NotifyBlock notifies all observers that a vehicle is about to wait
func (om *ObserverManager) NotifyBlock(v *Vehicle, decision Decision) {
	for _, observer := range om.observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			safeCall(observer, "OnBlock", func() { extObs.OnBlock(v, decision) })
		}
	}
}

// NotifyWake notifies all observers that a waiting vehicle woke up
func (om *ObserverManager) NotifyWake(v *Vehicle) {
	for _, observer := range om.observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			safeCall(observer, "OnWake", func() { extObs.OnWake(v) })
		}
	}
}

// NotifySignal notifies all observers of a wake-up signal
func (om *ObserverManager) NotifySignal(d Direction, broadcast bool) {
	for _, observer := range om.observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			safeCall(observer, "OnSignal", func() { extObs.OnSignal(d, broadcast) })
		}
	}
}

// NotifyError notifies all observers of errors
func (om *ObserverManager) NotifyError(err error) {
	for _, observer := range om.observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			func() {
				defer func() { recover() }()
				extObs.OnError(err)
			}()
		}
	}
}
