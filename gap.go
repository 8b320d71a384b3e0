package ble

// An Observer is a device that receives advertising events.
type Observer interface {
	// SetAdvHandler sets the handler invoked for each advertisement.
	SetAdvHandler(ah AdvHandler) error

	// Scan starts scanning. Duplicated advertisements are filtered out
	// unless allowDup is set.
	Scan(allowDup bool) error

	// StopScanning stops scanning.
	StopScanning() error
}

// A Dialer initiates connections to remote devices.
type Dialer interface {
	// Dial initiates a connection to the device with the given address.
	Dial(Addr) (Conn, error)
}

// A Central is a device that initiates the establishment of a physical
// connection.
type Central interface {
	Observer
	Dialer

	// SetConnParams sets the parameter set used by subsequent Dial calls.
	// At least one PHY must be enabled on the set.
	SetConnParams(*ConnectionParameters) error

	// Stop detaches from the controller.
	Stop() error
}
