package crossway

import "fmt"

// ErrorCode represents specific error conditions in the intersection controller
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// Exit decremented a movement count that was already zero
	ErrCodeOccupancyUnderflow
	// Origin or destination out of range, or a U-turn was requested
	ErrCodeInvalidMovement
	// Monitor was used after Cleanup
	ErrCodeMonitorClosed
	// Cleanup was called with vehicles still inside or waiting
	ErrCodeVehiclesInFlight
	// Monitor configuration is invalid
	ErrCodeInvalidConfiguration
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeNone:
		return "none"
	case ErrCodeOccupancyUnderflow:
		return "occupancy underflow"
	case ErrCodeInvalidMovement:
		return "invalid movement"
	case ErrCodeMonitorClosed:
		return "monitor closed"
	case ErrCodeVehiclesInFlight:
		return "vehicles in flight"
	case ErrCodeInvalidConfiguration:
		return "invalid configuration"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// InvariantError reports a broken internal-consistency rule.
// The monitor panics with an *InvariantError; it is never returned to a caller.
type InvariantError struct {
	Code      ErrorCode
	Operation string
	Movement  Movement
	Message   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated during %s [%s]: %s", e.Operation, e.Movement, e.Message)
}

// NewUnderflowError creates an error for an exit without a matching entry
func NewUnderflowError(m Movement) *InvariantError {
	return &InvariantError{
		Code:      ErrCodeOccupancyUnderflow,
		Operation: "AfterExit",
		Movement:  m,
		Message:   fmt.Sprintf("no vehicle inside on movement %s", m),
	}
}

// NewInvalidMovementError creates an error for a movement that cannot be requested
func NewInvalidMovementError(operation string, m Movement) *InvariantError {
	reason := "direction out of range"
	if m.Origin == m.Destination {
		reason = "U-turns are not allowed"
	}
	return &InvariantError{
		Code:      ErrCodeInvalidMovement,
		Operation: operation,
		Movement:  m,
		Message:   reason,
	}
}

// NewMonitorClosedError creates an error for use of a monitor after Cleanup
func NewMonitorClosedError(operation string) *InvariantError {
	return &InvariantError{
		Code:      ErrCodeMonitorClosed,
		Operation: operation,
		Message:   "monitor has been cleaned up",
	}
}

// NewCleanupError creates an error for Cleanup with vehicles still present
func NewCleanupError(inside, waiting int) *InvariantError {
	return &InvariantError{
		Code:      ErrCodeVehiclesInFlight,
		Operation: "Cleanup",
		Message:   fmt.Sprintf("%d vehicle(s) inside and %d waiting", inside, waiting),
	}
}

// ConfigurationError represents monitor or simulation configuration issues
type ConfigurationError struct {
	Component string
	Issue     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Issue)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(component, issue string) *ConfigurationError {
	return &ConfigurationError{
		Component: component,
		Issue:     issue,
	}
}

// IsInvariantError checks if an error is an InvariantError
func IsInvariantError(err error) bool {
	_, ok := err.(*InvariantError)
	return ok
}

// IsConfigurationError checks if an error is a ConfigurationError
func IsConfigurationError(err error) bool {
	_, ok := err.(*ConfigurationError)
	return ok
}

// GetErrorCode returns the error code for known error types
func GetErrorCode(err error) ErrorCode {
	switch e := err.(type) {
	case *InvariantError:
		return e.Code
	case *ConfigurationError:
		return ErrCodeInvalidConfiguration
	default:
		return ErrCodeNone
	}
}
