package linux

import (
	"github.com/pkg/errors"

	"github.com/blelab/ble"
	"github.com/blelab/ble/linux/hci"
)

// NewDevice returns the default HCI device.
func NewDevice(opts ...hci.Option) (*Device, error) {
	dev, err := hci.NewHCI(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "can't create hci")
	}
	if err := dev.Init(); err != nil {
		return nil, errors.Wrap(err, "can't init hci")
	}
	return &Device{HCI: dev}, nil
}

// Device is a ble.Central backed by an HCI controller.
type Device struct {
	HCI *hci.HCI
}

// Addr returns the controller's address.
func (d *Device) Addr() ble.Addr { return d.HCI.Addr() }

// SetAdvHandler sets the handler invoked for each advertisement.
func (d *Device) SetAdvHandler(ah ble.AdvHandler) error { return d.HCI.SetAdvHandler(ah) }

// Scan starts scanning.
func (d *Device) Scan(allowDup bool) error { return d.HCI.Scan(allowDup) }

// StopScanning stops scanning.
func (d *Device) StopScanning() error { return d.HCI.StopScanning() }

// SetConnParams sets the parameter set used by subsequent Dial calls.
func (d *Device) SetConnParams(p *ble.ConnectionParameters) error { return d.HCI.SetConnParams(p) }

// Dial initiates a connection to the device with the given address.
func (d *Device) Dial(a ble.Addr) (ble.Conn, error) { return d.HCI.Dial(a) }

// Stop detaches from the controller.
func (d *Device) Stop() error { return d.HCI.Stop() }
