package ble

import "golang.org/x/net/context"

// Conn is the initiator-side view of an established LE link.
type Conn interface {
	// Context returns the context that is used by this Conn.
	Context() context.Context

	// SetContext sets the context that is used by this Conn.
	SetContext(ctx context.Context)

	// LocalAddr returns local device's address.
	LocalAddr() Addr

	// RemoteAddr returns remote device's address.
	RemoteAddr() Addr

	// Interval returns the connection interval granted by the controller.
	Interval() ConnInterval

	// Latency returns the peripheral latency granted by the controller.
	Latency() PeripheralLatency

	// Timeout returns the supervision timeout granted by the controller.
	Timeout() SupervisionTimeout

	// Close disconnects the link.
	Close() error
}
