package cmd

import (
	"bytes"
	"io"
	"testing"

	"github.com/blelab/ble"
)

// TestLEExtendedCreateConnectionMarshal feeds the command from a compacted
// parameter set in the swapped state ({1M, Coded}) and checks the exact wire
// layout: one entry per initiating PHY, grouped by parameter, little endian.
func TestLEExtendedCreateConnectionMarshal(t *testing.T) {
	p := ble.NewConnectionParameters().
		SetOwnAddressType(ble.AddressTypeRandom).
		SetScanParameters(ble.Phy1M, 0x0010, 0x0008).
		SetConnectionParameters(ble.Phy1M, 6, 12, 0, 100, 0, 0xFFFF).
		SetScanParameters(ble.PhyCoded, 0x0020, 0x0018).
		SetConnectionParameters(ble.PhyCoded, 7, 13, 1, 200, 2, 3)

	c := LEExtendedCreateConnection{
		InitiatorFilterPolicy: uint8(p.FilterPolicy()),
		OwnAddressType:        uint8(p.OwnAddressType()),
		PeerAddressType:       0x00,
		PeerAddress:           [6]byte{6, 5, 4, 3, 2, 1},
		InitiatingPHYs:        uint8(p.PhySet()),
		ScanInterval:          p.ScanIntervals(),
		ScanWindow:            p.ScanWindows(),
		ConnIntervalMin:       p.MinConnIntervals(),
		ConnIntervalMax:       p.MaxConnIntervals(),
		ConnLatency:           p.PeripheralLatencies(),
		SupervisionTimeout:    p.SupervisionTimeouts(),
		MinimumCELength:       p.MinEventLengths(),
		MaximumCELength:       p.MaxEventLengths(),
	}

	if got, want := c.OpCode(), 0x2043; got != want {
		t.Errorf("OpCode() = 0x%04X, want 0x%04X", got, want)
	}
	if got, want := c.Len(), 10+16*2; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}

	b := make([]byte, c.Len())
	if err := c.Marshal(b); err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := []byte{
		0x00,             // initiator filter policy
		0x01,             // own address type: random
		0x00,             // peer address type: public
		6, 5, 4, 3, 2, 1, // peer address
		0x05,       // initiating PHYs: 1M | Coded
		0x10, 0x00, 0x20, 0x00, // scan interval
		0x08, 0x00, 0x18, 0x00, // scan window
		0x06, 0x00, 0x07, 0x00, // conn interval min
		0x0C, 0x00, 0x0D, 0x00, // conn interval max
		0x00, 0x00, 0x01, 0x00, // conn latency
		0x64, 0x00, 0xC8, 0x00, // supervision timeout
		0x00, 0x00, 0x02, 0x00, // minimum CE length
		0xFF, 0xFF, 0x03, 0x00, // maximum CE length
	}
	if !bytes.Equal(b, want) {
		t.Errorf("Marshal:\n got [ % X ]\nwant [ % X ]", b, want)
	}
}

func TestLEExtendedCreateConnectionMarshalErrors(t *testing.T) {
	c := LEExtendedCreateConnection{
		InitiatingPHYs: 0x03, // two PHYs...
		ScanInterval:   []uint16{4},
	}
	if err := c.Marshal(make([]byte, 64)); err == nil {
		t.Errorf("Marshal with mismatched entry count did not fail")
	}

	c = LEExtendedCreateConnection{}
	if err := c.Marshal(make([]byte, 64)); err == nil {
		t.Errorf("Marshal with no initiating PHY did not fail")
	}

	c = LEExtendedCreateConnection{
		InitiatingPHYs:     0x01,
		ScanInterval:       []uint16{4},
		ScanWindow:         []uint16{4},
		ConnIntervalMin:    []uint16{6},
		ConnIntervalMax:    []uint16{12},
		ConnLatency:        []uint16{0},
		SupervisionTimeout: []uint16{100},
		MinimumCELength:    []uint16{0},
		MaximumCELength:    []uint16{0xFFFF},
	}
	if err := c.Marshal(make([]byte, c.Len()-1)); err != io.ErrShortBuffer {
		t.Errorf("Marshal into short buffer: got %v, want io.ErrShortBuffer", err)
	}
}

func TestLECreateConnectionMarshal(t *testing.T) {
	c := LECreateConnection{
		LEScanInterval:        0x0004,
		LEScanWindow:          0x0004,
		InitiatorFilterPolicy: 0x00,
		PeerAddressType:       0x00,
		PeerAddress:           [6]byte{1, 2, 3, 4, 5, 6},
		OwnAddressType:        0x00,
		ConnIntervalMin:       0x0006,
		ConnIntervalMax:       0x0C80,
		ConnLatency:           0x0000,
		SupervisionTimeout:    0x0C80,
		MinimumCELength:       0x0000,
		MaximumCELength:       0xFFFF,
	}
	if got, want := c.OpCode(), 0x200D; got != want {
		t.Errorf("OpCode() = 0x%04X, want 0x%04X", got, want)
	}
	b := make([]byte, c.Len())
	if err := c.Marshal(b); err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := []byte{
		0x04, 0x00, 0x04, 0x00, 0x00,
		0x00, 1, 2, 3, 4, 5, 6, 0x00,
		0x06, 0x00, 0x80, 0x0C, 0x00, 0x00,
		0x80, 0x0C, 0x00, 0x00, 0xFF, 0xFF,
	}
	if !bytes.Equal(b, want) {
		t.Errorf("Marshal:\n got [ % X ]\nwant [ % X ]", b, want)
	}
}

func TestDisconnectMarshal(t *testing.T) {
	c := Disconnect{ConnectionHandle: 0x0040, Reason: 0x13}
	if got, want := c.OpCode(), 0x0406; got != want {
		t.Errorf("OpCode() = 0x%04X, want 0x%04X", got, want)
	}
	b := make([]byte, c.Len())
	if err := c.Marshal(b); err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := []byte{0x40, 0x00, 0x13}; !bytes.Equal(b, want) {
		t.Errorf("Marshal: got [ % X ], want [ % X ]", b, want)
	}
}
