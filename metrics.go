package crossway

import (
	"sync"

	"github.com/samber/lo"
)

// MetricsObserver collects metrics about monitor activity
type MetricsObserver struct {
	admissions map[Movement]int
	exits      map[Movement]int
	blocks     map[Direction]int
	signals    map[Direction]int
	wakes      int
	broadcasts int
	errorCount int
	peakInside int
	mutex      sync.RWMutex
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	o := &MetricsObserver{}
	o.Reset()
	return o
}

// OnAdmit records an admission and the resulting occupancy
func (o *MetricsObserver) OnAdmit(v *Vehicle, occ Occupancy) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.admissions[v.Movement]++
	if total := occ.Total(); total > o.peakInside {
		o.peakInside = total
	}
}

// OnExit records a departure
func (o *MetricsObserver) OnExit(m Movement, occ Occupancy) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.exits[m]++
}

// OnBlock records which direction a blocked vehicle waits on
func (o *MetricsObserver) OnBlock(v *Vehicle, decision Decision) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.blocks[decision.WakeOn]++
}

// OnWake records a wake-up
func (o *MetricsObserver) OnWake(v *Vehicle) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.wakes++
}

// OnSignal records signals and broadcasts
func (o *MetricsObserver) OnSignal(d Direction, broadcast bool) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if broadcast {
		o.broadcasts++
		return
	}
	o.signals[d]++
}

// OnError records error metrics
func (o *MetricsObserver) OnError(err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.errorCount++
}

// GetAdmissionCounts returns the number of admissions per movement
func (o *MetricsObserver) GetAdmissionCounts() map[Movement]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[Movement]int, len(o.admissions))
	for m, count := range o.admissions {
		result[m] = count
	}
	return result
}

// GetBlockCounts returns how many times vehicles waited on each direction
func (o *MetricsObserver) GetBlockCounts() map[Direction]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[Direction]int, len(o.blocks))
	for d, count := range o.blocks {
		result[d] = count
	}
	return result
}

// TotalAdmissions returns the number of vehicles admitted
func (o *MetricsObserver) TotalAdmissions() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	return lo.Sum(lo.Values(o.admissions))
}

// TotalExits returns the number of vehicles that left
func (o *MetricsObserver) TotalExits() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	return lo.Sum(lo.Values(o.exits))
}

// TotalBlocks returns the number of times any vehicle had to wait
func (o *MetricsObserver) TotalBlocks() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	return lo.Sum(lo.Values(o.blocks))
}

// GetWakeCount returns the number of wake-ups
func (o *MetricsObserver) GetWakeCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	return o.wakes
}

// GetBroadcastCount returns how often the intersection emptied with a broadcast
func (o *MetricsObserver) GetBroadcastCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	return o.broadcasts
}

// GetSignalCounts returns the single-waiter signals per direction
func (o *MetricsObserver) GetSignalCounts() map[Direction]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[Direction]int, len(o.signals))
	for d, count := range o.signals {
		result[d] = count
	}
	return result
}

// GetErrorCount returns the number of errors
func (o *MetricsObserver) GetErrorCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	return o.errorCount
}

// PeakOccupancy returns the largest number of vehicles seen inside at once
func (o *MetricsObserver) PeakOccupancy() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	return o.peakInside
}

// BusiestMovement returns the movement with the most admissions.
// ok is false when nothing has been admitted.
func (o *MetricsObserver) BusiestMovement() (m Movement, ok bool) {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	if len(o.admissions) == 0 {
		return Movement{}, false
	}
	// AllMovements gives a stable order so ties resolve the same way every time
	used := lo.Filter(AllMovements(), func(m Movement, _ int) bool {
		return o.admissions[m] > 0
	})
	return lo.MaxBy(used, func(a, b Movement) bool {
		return o.admissions[a] > o.admissions[b]
	}), true
}

// Reset resets all metrics
func (o *MetricsObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.admissions = make(map[Movement]int)
	o.exits = make(map[Movement]int)
	o.blocks = make(map[Direction]int)
	o.signals = make(map[Direction]int)
	o.wakes = 0
	o.broadcasts = 0
	o.errorCount = 0
	o.peakInside = 0
}
