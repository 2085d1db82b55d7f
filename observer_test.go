package crossway

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestObserver_BasicInterface(t *testing.T) {
	observer := NewTestObserver()

	var _ Observer = observer
	var _ ExtendedObserver = observer
	var _ ExtendedObserver = &BaseObserver{}
	var _ ExtendedObserver = NewLoggingObserver(LogInfo, "")
	var _ ExtendedObserver = NewMetricsObserver()
}

func TestObserverManager_AddRemove(t *testing.T) {
	om := NewObserverManager()
	first := NewTestObserver()
	second := NewTestObserver()

	om.AddObserver(first)
	om.AddObserver(second)
	if om.Len() != 2 {
		t.Fatalf("Expected 2 observers, got %d", om.Len())
	}

	om.RemoveObserver(first)
	om.NotifyAdmit(NewVehicle(Movement{North, South}), Occupancy{})

	if first.AdmitCount() != 0 {
		t.Error("Expected removed observer not to be notified")
	}
	if second.AdmitCount() != 1 {
		t.Error("Expected remaining observer to be notified")
	}
}

func TestObserverManager_PanicReportedToObserver(t *testing.T) {
	om := NewObserverManager()
	observer := &panicRecorder{}
	om.AddObserver(observer)

	om.NotifyExit(Movement{West, East}, Occupancy{})

	if len(observer.errs) != 1 {
		t.Fatalf("Expected 1 reported error, got %d", len(observer.errs))
	}
	if !strings.Contains(observer.errs[0].Error(), "observer panic in OnExit") {
		t.Errorf("Unexpected error %v", observer.errs[0])
	}
}

type panicRecorder struct {
	BaseObserver
	errs []error
}

func (o *panicRecorder) OnExit(m Movement, occ Occupancy) {
	panic("boom")
}

func (o *panicRecorder) OnError(err error) {
	o.errs = append(o.errs, err)
}

func TestObserver_MonitorEvents(t *testing.T) {
	mon, observer := CreateTestMonitor(t)

	mon.BeforeEntry(North, West)
	mon.BeforeEntry(West, South)
	mon.AfterExit(North, West)
	mon.AfterExit(West, South)

	if observer.AdmitCount() != 2 {
		t.Errorf("Expected 2 admits, got %d", observer.AdmitCount())
	}
	if len(observer.Exits) != 2 {
		t.Fatalf("Expected 2 exits, got %d", len(observer.Exits))
	}
	if observer.Exits[0].Occupancy.Total() != 1 {
		t.Errorf("Expected 1 vehicle left after first exit, got %d", observer.Exits[0].Occupancy.Total())
	}

	expected := []SignalEvent{{Direction: West}, {Direction: South, Broadcast: true}}
	if len(observer.Signals) != len(expected) {
		t.Fatalf("Expected %d signals, got %d", len(expected), len(observer.Signals))
	}
	for i, s := range expected {
		if observer.Signals[i] != s {
			t.Errorf("Expected signal %v, got %v", s, observer.Signals[i])
		}
	}
}

func TestLoggingObserver_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggingObserver(LogInfo, "main")
	logger.SetOutput(&buf)

	v := NewVehicle(Movement{North, South})
	logger.OnAdmit(v, *OccupancyOf(Movement{North, South}))
	logger.OnBlock(v, Decision{WakeOn: West, Blockers: []Movement{{West, East}}})
	logger.OnError(errors.New("broken"))

	out := buf.String()
	if !strings.Contains(out, "[main] [INFO] Vehicle "+v.ID[:8]+" admitted on N->S after 0 wait(s), 1 inside") {
		t.Errorf("Expected admission line, got:\n%s", out)
	}
	if strings.Contains(out, "blocked") {
		t.Error("Expected debug lines to be filtered at info level")
	}
	if !strings.Contains(out, "[ERROR] Error: broken") {
		t.Errorf("Expected error line, got:\n%s", out)
	}
}

func TestLoggingObserver_DebugAndFormatter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggingObserver(LogDebug, "")
	logger.SetOutput(&buf)
	logger.SetFormatter(func(level LogLevel, format string, args ...interface{}) string {
		return fmt.Sprintf("L%d %s", level, fmt.Sprintf(format, args...))
	})

	v := NewVehicle(Movement{East, West})
	logger.OnBlock(v, Decision{WakeOn: West, Blockers: []Movement{{North, West}, {South, West}}})
	logger.OnSignal(North, true)
	logger.OnSignal(East, false)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "L3 ") || !strings.Contains(lines[0], "blocked by [N->W,S->W], waiting on West") {
		t.Errorf("Unexpected block line %q", lines[0])
	}
	if !strings.Contains(lines[1], "waking all waiters") {
		t.Errorf("Unexpected broadcast line %q", lines[1])
	}
	if !strings.Contains(lines[2], "one waiter on East") {
		t.Errorf("Unexpected signal line %q", lines[2])
	}
}

func TestWithLogger_UsesMonitorName(t *testing.T) {
	tests := map[string][]Option{
		"name first":   {WithName("crossing-7"), WithLogger(LogError)},
		"logger first": {WithLogger(LogError), WithName("crossing-7")},
	}

	for name, opts := range tests {
		t.Run(name, func(t *testing.T) {
			mon := MustNewMonitor(opts...)

			if mon.observers.Len() != 1 {
				t.Fatalf("Expected 1 observer, got %d", mon.observers.Len())
			}
			logger, ok := mon.observers.observers[0].(*LoggingObserver)
			if !ok {
				t.Fatal("Expected a logging observer")
			}
			if logger.prefix != "crossing-7" {
				t.Errorf("Expected prefix 'crossing-7', got '%s'", logger.prefix)
			}
			if logger.level != LogError {
				t.Errorf("Expected level %d, got %d", LogError, logger.level)
			}
		})
	}
}

func TestWithLogger_RejectsUnknownLevel(t *testing.T) {
	_, err := NewMonitor(WithLogger(LogLevel(9)))
	if !IsConfigurationError(err) {
		t.Errorf("Expected configuration error, got %v", err)
	}
}

func TestMetricsObserver(t *testing.T) {
	metrics := NewMetricsObserver()
	mon := MustNewMonitor(WithObserver(metrics))

	mon.BeforeEntry(East, West)
	mon.BeforeEntry(East, West)
	mon.BeforeEntry(South, East)

	admitted := EnterAsync(mon, Movement{North, South})
	WaitForWaiting(t, mon, 1, time.Second)

	mon.AfterExit(East, West)
	mon.AfterExit(East, West)
	mon.AfterExit(South, East)
	AssertAdmitted(t, admitted, time.Second)
	mon.AfterExit(North, South)

	if metrics.TotalAdmissions() != 4 {
		t.Errorf("Expected 4 admissions, got %d", metrics.TotalAdmissions())
	}
	if metrics.TotalExits() != 4 {
		t.Errorf("Expected 4 exits, got %d", metrics.TotalExits())
	}
	if metrics.PeakOccupancy() != 3 {
		t.Errorf("Expected peak of 3, got %d", metrics.PeakOccupancy())
	}
	if metrics.GetBlockCounts()[West] < 1 {
		t.Errorf("Expected a block on West, got %v", metrics.GetBlockCounts())
	}
	if metrics.TotalBlocks() < 1 || metrics.GetWakeCount() < 1 {
		t.Errorf("Expected blocks and wakes, got %d and %d", metrics.TotalBlocks(), metrics.GetWakeCount())
	}
	if metrics.GetBroadcastCount() < 1 {
		t.Error("Expected at least one broadcast")
	}
	if metrics.GetSignalCounts()[West] < 1 {
		t.Errorf("Expected signals on West, got %v", metrics.GetSignalCounts())
	}

	busiest, ok := metrics.BusiestMovement()
	if !ok || busiest != (Movement{East, West}) {
		t.Errorf("Expected busiest movement E->W, got %v (%v)", busiest, ok)
	}
	if metrics.GetAdmissionCounts()[Movement{East, West}] != 2 {
		t.Errorf("Expected 2 admissions on E->W, got %d", metrics.GetAdmissionCounts()[Movement{East, West}])
	}

	metrics.Reset()
	if _, ok := metrics.BusiestMovement(); ok {
		t.Error("Expected no busiest movement after reset")
	}
	if metrics.TotalAdmissions() != 0 || metrics.PeakOccupancy() != 0 {
		t.Error("Expected metrics to be cleared")
	}
}
