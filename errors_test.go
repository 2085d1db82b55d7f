package crossway

import (
	"errors"
	"strings"
	"testing"
)

func TestErrors_ErrorCode(t *testing.T) {
	testCases := []ErrorCode{
		ErrCodeNone,
		ErrCodeOccupancyUnderflow,
		ErrCodeInvalidMovement,
		ErrCodeMonitorClosed,
		ErrCodeVehiclesInFlight,
		ErrCodeInvalidConfiguration,
	}

	for i, code := range testCases {
		if int(code) != i {
			t.Errorf("Expected error code %d to have value %d", i, int(code))
		}
		if code.String() == "" {
			t.Errorf("Expected error code %d to have a name", i)
		}
	}
}

func TestUnderflowError_Creation(t *testing.T) {
	err := NewUnderflowError(Movement{North, West})

	if err.Code != ErrCodeOccupancyUnderflow {
		t.Errorf("Expected error code %v, got %v", ErrCodeOccupancyUnderflow, err.Code)
	}

	if err.Operation != "AfterExit" {
		t.Errorf("Expected operation 'AfterExit', got '%s'", err.Operation)
	}

	if !strings.Contains(err.Error(), "N->W") {
		t.Errorf("Expected error string to contain movement, got '%s'", err.Error())
	}
}

func TestInvalidMovementError_Reason(t *testing.T) {
	uTurn := NewInvalidMovementError("Enter", Movement{South, South})
	if !strings.Contains(uTurn.Message, "U-turn") {
		t.Errorf("Expected U-turn reason, got '%s'", uTurn.Message)
	}

	outOfRange := NewInvalidMovementError("Enter", Movement{South, Direction(9)})
	if !strings.Contains(outOfRange.Message, "out of range") {
		t.Errorf("Expected out of range reason, got '%s'", outOfRange.Message)
	}
}

func TestCleanupError_Message(t *testing.T) {
	err := NewCleanupError(2, 3)

	if err.Code != ErrCodeVehiclesInFlight {
		t.Errorf("Expected error code %v, got %v", ErrCodeVehiclesInFlight, err.Code)
	}
	if !strings.Contains(err.Error(), "2 vehicle(s) inside and 3 waiting") {
		t.Errorf("Unexpected error string '%s'", err.Error())
	}
}

func TestErrorTypeCheckers(t *testing.T) {
	invariantErr := NewMonitorClosedError("Enter")
	configErr := NewConfigurationError("Monitor", "bad")
	plainErr := errors.New("plain")

	if !IsInvariantError(invariantErr) {
		t.Error("Expected IsInvariantError to return true")
	}
	if IsInvariantError(configErr) {
		t.Error("Expected IsInvariantError to return false for configuration error")
	}
	if !IsConfigurationError(configErr) {
		t.Error("Expected IsConfigurationError to return true")
	}
	if IsConfigurationError(plainErr) {
		t.Error("Expected IsConfigurationError to return false for plain error")
	}

	if GetErrorCode(invariantErr) != ErrCodeMonitorClosed {
		t.Errorf("Expected %v, got %v", ErrCodeMonitorClosed, GetErrorCode(invariantErr))
	}
	if GetErrorCode(configErr) != ErrCodeInvalidConfiguration {
		t.Errorf("Expected %v, got %v", ErrCodeInvalidConfiguration, GetErrorCode(configErr))
	}
	if GetErrorCode(plainErr) != ErrCodeNone {
		t.Errorf("Expected %v, got %v", ErrCodeNone, GetErrorCode(plainErr))
	}
}
