package hci

import "github.com/pkg/errors"

// Errors returned by the GAP layer before any command reaches the controller.
var (
	ErrBusyScanning = errors.New("busy scanning")
	ErrBusyDialing  = errors.New("busy dialing")
	ErrInvalidAddr  = errors.New("invalid address")
	ErrNoPhy        = errors.New("connection parameters without any PHY enabled")
)

// Controller status codes used in control flow.
var (
	ErrConnID     = ErrCommand(0x02)
	ErrDisallowed = ErrCommand(0x0C)
)

// ErrCommand is the status code returned in a Command Complete or Command
// Status event [Vol 2, Part D, 1.3].
type ErrCommand byte

func (e ErrCommand) Error() string {
	if s, ok := errCmd[e]; ok {
		return s
	}
	return "unknown status code"
}

var errCmd = map[ErrCommand]string{
	0x01: "unknown hci command",
	0x02: "unknown connection identifier",
	0x03: "hardware failure",
	0x04: "page timeout",
	0x05: "authentication failure",
	0x06: "pin or key missing",
	0x07: "memory capacity exceeded",
	0x08: "connection timeout",
	0x09: "connection limit exceeded",
	0x0A: "synchronous connection limit to a device exceeded",
	0x0B: "connection already exists",
	0x0C: "command disallowed",
	0x0D: "connection rejected due to limited resources",
	0x0E: "connection rejected due to security reasons",
	0x0F: "connection rejected due to unacceptable bd_addr",
	0x10: "connection accept timeout exceeded",
	0x11: "unsupported feature or parameter value",
	0x12: "invalid hci command parameters",
	0x13: "remote user terminated connection",
	0x16: "connection terminated by local host",
	0x1E: "invalid lmp parameters",
	0x1F: "unspecified error",
	0x22: "lmp response timeout",
	0x28: "instant passed",
	0x2F: "insufficient security",
	0x3A: "controller busy",
	0x3B: "unacceptable connection parameters",
	0x3C: "advertising timeout",
	0x3D: "connection terminated due to mic failure",
	0x3E: "connection failed to be established",
}
