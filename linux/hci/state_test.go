package hci

import (
	"testing"

	"github.com/blelab/ble"
)

func TestExtConnCmdRejectsEmptySet(t *testing.T) {
	if _, err := extConnCmd(ble.NewConnectionParameters()); err == nil {
		t.Errorf("extConnCmd with no enabled PHY did not fail")
	}
}

// TestExtConnCmdCopiesViews checks the command owns its entries: mutating the
// parameter set after the copy must not reach the command.
func TestExtConnCmdCopiesViews(t *testing.T) {
	p := ble.NewConnectionParameters().
		SetScanParameters(ble.Phy1M, 0x0010, 0x0008)
	c, err := extConnCmd(p)
	if err != nil {
		t.Fatalf("extConnCmd: %v", err)
	}
	p.SetScanParameters(ble.Phy1M, 0x0020, 0x0018)
	if got := c.ScanInterval[0]; got != 0x0010 {
		t.Errorf("ScanInterval[0] = 0x%04X after mutation, want 0x0010", got)
	}
	if got := c.InitiatingPHYs; got != 0x01 {
		t.Errorf("InitiatingPHYs = 0x%02X, want 0x01", got)
	}
}

// TestLegacyConnCmd derives the single-PHY command from a swapped set
// ({1M, Coded}); entry 0 belongs to LE 1M.
func TestLegacyConnCmd(t *testing.T) {
	p := ble.NewConnectionParameters().
		SetScanParameters(ble.Phy1M, 0x0010, 0x0008).
		SetConnectionParameters(ble.Phy1M, 6, 12, 1, 100, 2, 3).
		SetScanParameters(ble.PhyCoded, 0x0020, 0x0018)
	c, err := extConnCmd(p)
	if err != nil {
		t.Fatalf("extConnCmd: %v", err)
	}

	s := newStates()
	s.connParams = c
	s.connParams.PeerAddress = [6]byte{6, 5, 4, 3, 2, 1}

	l := s.legacyConnCmd()
	if got := l.LEScanInterval; got != 0x0010 {
		t.Errorf("LEScanInterval = 0x%04X, want 0x0010", got)
	}
	if got := l.LEScanWindow; got != 0x0008 {
		t.Errorf("LEScanWindow = 0x%04X, want 0x0008", got)
	}
	if got := l.ConnIntervalMin; got != 6 {
		t.Errorf("ConnIntervalMin = %d, want 6", got)
	}
	if got := l.ConnLatency; got != 1 {
		t.Errorf("ConnLatency = %d, want 1", got)
	}
	if got, want := l.PeerAddress, [6]byte{6, 5, 4, 3, 2, 1}; got != want {
		t.Errorf("PeerAddress = %v, want %v", got, want)
	}
}
