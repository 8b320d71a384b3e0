package hci

import (
	"time"

	"github.com/blelab/ble"
	"github.com/blelab/ble/linux/hci/cmd"
)

// An Option is a configuration function, which configures the device.
type Option func(*HCI) error

// OptDeviceID sets HCI device ID.
func OptDeviceID(id int) Option {
	return func(h *HCI) error {
		h.id = id
		return nil
	}
}

// OptDialerTimeout sets dialing timeout for Dialer.
func OptDialerTimeout(d time.Duration) Option {
	return func(h *HCI) error {
		h.dialerTmo = d
		return nil
	}
}

// OptScanParams sets scanning parameters.
func OptScanParams(p ScanParams) Option {
	return func(h *HCI) error {
		h.states.scanParams = cmd.LESetScanParameters(p)
		return nil
	}
}

// OptLegacyDial makes Dial use LE Create Connection instead of the extended
// command, for controllers without extended command support. Only the LE 1M
// parameters of the configured set are used.
func OptLegacyDial() Option {
	return func(h *HCI) error {
		h.states.legacy = true
		return nil
	}
}

// OptConnParams sets the per-PHY parameter set used by Dial.
func OptConnParams(p *ble.ConnectionParameters) Option {
	return func(h *HCI) error {
		c, err := extConnCmd(p)
		if err != nil {
			return err
		}
		h.states.connParams = c
		return nil
	}
}
