package crossway

import (
	"sync"
	"testing"
	"time"
)

// TestObserver is a mock observer for testing that captures all monitor events
type TestObserver struct {
	mutex   sync.RWMutex
	Admits  []AdmitEvent
	Exits   []ExitEvent
	Blocks  []BlockEvent
	Wakes   []string
	Signals []SignalEvent
	Errors  []error
}

type AdmitEvent struct {
	VehicleID string
	Movement  Movement
	WaitCount int
	Occupancy Occupancy
}

type ExitEvent struct {
	Movement  Movement
	Occupancy Occupancy
}

type BlockEvent struct {
	VehicleID string
	Movement  Movement
	Decision  Decision
}

type SignalEvent struct {
	Direction Direction
	Broadcast bool
}

// NewTestObserver creates a new test observer
func NewTestObserver() *TestObserver {
	return &TestObserver{}
}

// Observer interface implementations
func (o *TestObserver) OnAdmit(v *Vehicle, occ Occupancy) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Admits = append(o.Admits, AdmitEvent{VehicleID: v.ID, Movement: v.Movement, WaitCount: v.WaitCount, Occupancy: occ})
}

func (o *TestObserver) OnExit(m Movement, occ Occupancy) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Exits = append(o.Exits, ExitEvent{Movement: m, Occupancy: occ})
}

// ExtendedObserver interface implementations
func (o *TestObserver) OnBlock(v *Vehicle, decision Decision) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Blocks = append(o.Blocks, BlockEvent{VehicleID: v.ID, Movement: v.Movement, Decision: decision})
}

func (o *TestObserver) OnWake(v *Vehicle) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Wakes = append(o.Wakes, v.ID)
}

func (o *TestObserver) OnSignal(d Direction, broadcast bool) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Signals = append(o.Signals, SignalEvent{Direction: d, Broadcast: broadcast})
}

func (o *TestObserver) OnError(err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Errors = append(o.Errors, err)
}

// Helper methods for test assertions
func (o *TestObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Admits = nil
	o.Exits = nil
	o.Blocks = nil
	o.Wakes = nil
	o.Signals = nil
	o.Errors = nil
}

func (o *TestObserver) AdmitCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Admits)
}

func (o *TestObserver) BlockCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Blocks)
}

func (o *TestObserver) LastBlock() *BlockEvent {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	if len(o.Blocks) == 0 {
		return nil
	}
	return &o.Blocks[len(o.Blocks)-1]
}

func (o *TestObserver) LastSignal() *SignalEvent {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	if len(o.Signals) == 0 {
		return nil
	}
	return &o.Signals[len(o.Signals)-1]
}

// Test monitor builders

// CreateTestMonitor creates a monitor with a recording observer attached
func CreateTestMonitor(t *testing.T) (*Monitor, *TestObserver) {
	t.Helper()
	observer := NewTestObserver()
	mon, err := NewMonitor(WithName("test"), WithObserver(observer))
	if err != nil {
		t.Fatalf("Expected no error creating monitor, got: %v", err)
	}
	return mon, observer
}

// OccupancyOf builds an occupancy with one vehicle on each given movement
func OccupancyOf(movements ...Movement) *Occupancy {
	occ := &Occupancy{}
	for _, m := range movements {
		occ.increment(m)
	}
	return occ
}

// Test assertions and utilities

// EnterAsync starts a vehicle on m in its own goroutine; the channel closes once it is admitted
func EnterAsync(mon *Monitor, m Movement) <-chan struct{} {
	admitted := make(chan struct{})
	go func() {
		mon.Enter(m)
		close(admitted)
	}()
	return admitted
}

// WaitForWaiting blocks until the monitor has n waiting vehicles or the timeout expires
func WaitForWaiting(t *testing.T, mon *Monitor, n int, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for mon.Waiting() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d waiting vehicles, got %d", n, mon.Waiting())
		}
		time.Sleep(time.Millisecond)
	}
}

// WaitForBlocks blocks until the observer has seen n blocked vehicles or the timeout expires
func WaitForBlocks(t *testing.T, observer *TestObserver, n int, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for observer.BlockCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d blocks, got %d", n, observer.BlockCount())
		}
		time.Sleep(time.Millisecond)
	}
}

// AssertAdmitted checks that the channel returned by EnterAsync closes in time
func AssertAdmitted(t *testing.T, admitted <-chan struct{}, timeout time.Duration) {
	t.Helper()
	select {
	case <-admitted:
	case <-time.After(timeout):
		t.Fatal("Expected vehicle to be admitted")
	}
}

// AssertStillWaiting checks that the channel returned by EnterAsync stays open
func AssertStillWaiting(t *testing.T, admitted <-chan struct{}, wait time.Duration) {
	t.Helper()
	select {
	case <-admitted:
		t.Fatal("Expected vehicle to still be waiting")
	case <-time.After(wait):
	}
}

// AssertPanicsWithCode checks that fn panics with an error carrying code
func AssertPanicsWithCode(t *testing.T, code ErrorCode, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("Expected panic with %s", code)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("Expected panic with an error, got %v", r)
		}
		if GetErrorCode(err) != code {
			t.Errorf("Expected error code %s, got %s (%v)", code, GetErrorCode(err), err)
		}
	}()
	fn()
}

// AssertNoConflicts checks that no two occupied movements in occ conflict
func AssertNoConflicts(t *testing.T, occ Occupancy) {
	t.Helper()
	occupied := occ.Occupied()
	for i, a := range occupied {
		for _, b := range occupied[i+1:] {
			if Conflicts(a, b) {
				t.Errorf("Conflicting movements %s and %s inside together", a, b)
			}
		}
	}
}
