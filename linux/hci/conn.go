package hci

import (
	"net"

	"golang.org/x/net/context"

	"github.com/blelab/ble"
	"github.com/blelab/ble/linux/hci/cmd"
)

func newConn(h *HCI, handle uint16, peer [6]byte, interval, latency, timeout uint16) *Conn {
	return &Conn{
		hci:      h,
		ctx:      context.Background(),
		handle:   handle,
		peer:     peer,
		interval: interval,
		latency:  latency,
		timeout:  timeout,
		chDone:   make(chan struct{}),
	}
}

// Conn is an established LE link, seen from the initiator.
type Conn struct {
	hci *HCI
	ctx context.Context

	handle uint16
	peer   [6]byte

	// Granted by the controller; updated on connection update events.
	interval uint16
	latency  uint16
	timeout  uint16

	chDone chan struct{}
}

// Context returns the context that is used by this Conn.
func (c *Conn) Context() context.Context { return c.ctx }

// SetContext sets the context that is used by this Conn.
func (c *Conn) SetContext(ctx context.Context) { c.ctx = ctx }

// LocalAddr returns local device's address.
func (c *Conn) LocalAddr() ble.Addr { return c.hci.Addr() }

// RemoteAddr returns remote device's address.
func (c *Conn) RemoteAddr() ble.Addr {
	a := c.peer
	return ble.NewAddr(net.HardwareAddr([]byte{a[5], a[4], a[3], a[2], a[1], a[0]}).String())
}

// Interval returns the connection interval granted by the controller.
func (c *Conn) Interval() ble.ConnInterval { return ble.ConnInterval(c.interval) }

// Latency returns the peripheral latency granted by the controller.
func (c *Conn) Latency() ble.PeripheralLatency { return ble.PeripheralLatency(c.latency) }

// Timeout returns the supervision timeout granted by the controller.
func (c *Conn) Timeout() ble.SupervisionTimeout { return ble.SupervisionTimeout(c.timeout) }

// Disconnected returns a channel that is closed when the link goes down.
func (c *Conn) Disconnected() <-chan struct{} { return c.chDone }

// Close disconnects the link.
func (c *Conn) Close() error {
	select {
	case <-c.chDone:
		// Already disconnected.
		return nil
	default:
	}
	return c.hci.Send(&cmd.Disconnect{
		ConnectionHandle: c.handle,
		Reason:           0x13, // Remote User Terminated Connection.
	}, nil)
}

func (c *Conn) update(interval, latency, timeout uint16) {
	c.interval = interval
	c.latency = latency
	c.timeout = timeout
}

func (c *Conn) close() {
	close(c.chDone)
}
