package hci

import (
	"net"

	"github.com/blelab/ble"
	"github.com/blelab/ble/linux/hci/evt"
)

func newAdvertisement(e evt.LEAdvertisingReport, i int) *Advertisement {
	return &Advertisement{e: e, i: i}
}

// Advertisement is one report of an LE Advertising Report event.
type Advertisement struct {
	e evt.LEAdvertisingReport
	i int
}

// Addr returns the advertiser's address.
func (a *Advertisement) Addr() ble.Addr {
	b := a.e.Address(a.i)
	return ble.NewAddr(net.HardwareAddr([]byte{b[5], b[4], b[3], b[2], b[1], b[0]}).String())
}

// RSSI returns the received signal strength in dBm.
func (a *Advertisement) RSSI() int {
	return int(a.e.RSSI(a.i))
}

// Connectable reports whether a connection may be initiated to the advertiser.
func (a *Advertisement) Connectable() bool {
	t := a.e.EventType(a.i)
	return t == evtTypAdvInd || t == evtTypAdvDirectInd
}

// Data returns the raw advertising data.
func (a *Advertisement) Data() []byte {
	return a.e.Data(a.i)
}
