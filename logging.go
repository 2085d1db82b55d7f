package crossway

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// LogLevel represents the logging level
type LogLevel int

const (
	// LogError logs only errors
	LogError LogLevel = iota
	// LogWarning logs errors and warnings
	LogWarning
	// LogInfo logs errors, warnings, and info
	LogInfo
	// LogDebug logs errors, warnings, info, and debug
	LogDebug
)

// LogFormatter formats log messages
type LogFormatter func(level LogLevel, format string, args ...interface{}) string

// DefaultLogFormatter provides default log formatting
func DefaultLogFormatter(level LogLevel, format string, args ...interface{}) string {
	levelStr := "INFO"
	switch level {
	case LogError:
		levelStr = "ERROR"
	case LogWarning:
		levelStr = "WARN"
	case LogInfo:
		levelStr = "INFO"
	case LogDebug:
		levelStr = "DEBUG"
	}

	return fmt.Sprintf("[%s] %s", levelStr, fmt.Sprintf(format, args...))
}

// LoggingObserver logs monitor events
type LoggingObserver struct {
	level     LogLevel
	prefix    string
	out       io.Writer
	mutex     sync.RWMutex
	formatter LogFormatter
}

// NewLoggingObserver creates a new logging observer writing to stdout
func NewLoggingObserver(level LogLevel, prefix string) *LoggingObserver {
	return &LoggingObserver{
		level:     level,
		prefix:    prefix,
		out:       os.Stdout,
		formatter: DefaultLogFormatter,
	}
}

// SetFormatter sets the log formatter
func (o *LoggingObserver) SetFormatter(formatter LogFormatter) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.formatter = formatter
}

// SetOutput sets the destination of log lines
func (o *LoggingObserver) SetOutput(w io.Writer) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.out = w
}

// log logs a message at the specified level
func (o *LoggingObserver) log(level LogLevel, format string, args ...interface{}) {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	if level > o.level {
		return
	}

	prefix := ""
	if o.prefix != "" {
		prefix = fmt.Sprintf("[%s] ", o.prefix)
	}

	message := ""
	if o.formatter != nil {
		message = o.formatter(level, format, args...)
	} else {
		message = fmt.Sprintf(format, args...)
	}

	fmt.Fprintf(o.out, "%s%s\n", prefix, message)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatMovements(movements []Movement) string {
	names := make([]string, len(movements))
	for i, m := range movements {
		names[i] = m.String()
	}
	return strings.Join(names, ",")
}

// OnAdmit logs an admission
func (o *LoggingObserver) OnAdmit(v *Vehicle, occ Occupancy) {
	o.log(LogInfo, "Vehicle %s admitted on %s after %d wait(s), %d inside", shortID(v.ID), v.Movement, v.WaitCount, occ.Total())
}

// OnExit logs a departure
func (o *LoggingObserver) OnExit(m Movement, occ Occupancy) {
	o.log(LogInfo, "Vehicle left on %s, %d inside", m, occ.Total())
}

// OnBlock logs a vehicle that has to wait
func (o *LoggingObserver) OnBlock(v *Vehicle, decision Decision) {
	o.log(LogDebug, "Vehicle %s on %s blocked by [%s], waiting on %s", shortID(v.ID), v.Movement, formatMovements(decision.Blockers), decision.WakeOn)
}

// OnWake logs a waiting vehicle waking up
func (o *LoggingObserver) OnWake(v *Vehicle) {
	o.log(LogDebug, "Vehicle %s on %s woke up", shortID(v.ID), v.Movement)
}

// OnSignal logs wake-up signals
func (o *LoggingObserver) OnSignal(d Direction, broadcast bool) {
	if broadcast {
		o.log(LogDebug, "Intersection empty, waking all waiters")
		return
	}
	o.log(LogDebug, "Signalling one waiter on %s", d)
}

// OnError logs errors
func (o *LoggingObserver) OnError(err error) {
	o.log(LogError, "Error: %v", err)
}
