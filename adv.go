package ble

// Advertisement is one received advertising report.
type Advertisement interface {
	// Addr returns the advertiser's address.
	Addr() Addr

	// RSSI returns the received signal strength in dBm.
	RSSI() int

	// Connectable reports whether a connection may be initiated to the
	// advertiser.
	Connectable() bool

	// Data returns the raw advertising data.
	Data() []byte
}

// AdvHandler handles advertisements.
type AdvHandler func(a Advertisement)
