package hci

import (
	"net"
	"time"

	"github.com/pkg/errors"

	"github.com/blelab/ble"
	"github.com/blelab/ble/linux/hci/cmd"
)

// ScanParams implements LE Set Scan Parameters (0x08|0x000B) [Vol 2, Part E, 7.8.10].
type ScanParams struct {
	LEScanType           uint8
	LEScanInterval       uint16
	LEScanWindow         uint16
	OwnAddressType       uint8
	ScanningFilterPolicy uint8
}

// Addr returns the controller's address.
func (h *HCI) Addr() ble.Addr { return ble.NewAddr(h.addr.String()) }

// SetAdvHandler sets the handler invoked for each advertising report.
func (h *HCI) SetAdvHandler(ah ble.AdvHandler) error {
	h.advHandler = ah
	return nil
}

// Scan starts scanning.
func (h *HCI) Scan(allowDup bool) error {
	h.states.Lock()
	h.states.scanEnable.FilterDuplicates = 1
	if allowDup {
		h.states.scanEnable.FilterDuplicates = 0
	}
	h.states.Unlock()
	return h.states.set(Scanning)
}

// StopScanning stops scanning.
func (h *HCI) StopScanning() error {
	return h.states.set(StopScanning)
}

// SetScanParams sets scanning parameters.
func (h *HCI) SetScanParams(p ScanParams) error {
	h.states.Lock()
	h.states.scanParams = cmd.LESetScanParameters(p)
	h.states.Unlock()
	return h.states.set(ScanningUpdated)
}

// SetConnParams sets the per-PHY parameter set used by subsequent Dial
// calls. At least one PHY must be enabled on the set.
func (h *HCI) SetConnParams(p *ble.ConnectionParameters) error {
	c, err := extConnCmd(p)
	if err != nil {
		return err
	}
	h.states.Lock()
	h.states.connParams = c
	h.states.Unlock()
	return h.states.set(DialingUpdated)
}

// extConnCmd copies the compacted parameter views into an extended create
// connection command. The views alias the parameter set's storage, so they
// are copied out before the set is handed back to the caller.
func extConnCmd(p *ble.ConnectionParameters) (*cmd.LEExtendedCreateConnection, error) {
	if p.EnabledPhyCount() == 0 {
		return nil, errors.Wrap(ErrNoPhy, "conn params")
	}
	return &cmd.LEExtendedCreateConnection{
		InitiatorFilterPolicy: uint8(p.FilterPolicy()),
		OwnAddressType:        uint8(p.OwnAddressType()),
		InitiatingPHYs:        uint8(p.PhySet()),
		ScanInterval:          append([]uint16(nil), p.ScanIntervals()...),
		ScanWindow:            append([]uint16(nil), p.ScanWindows()...),
		ConnIntervalMin:       append([]uint16(nil), p.MinConnIntervals()...),
		ConnIntervalMax:       append([]uint16(nil), p.MaxConnIntervals()...),
		ConnLatency:           append([]uint16(nil), p.PeripheralLatencies()...),
		SupervisionTimeout:    append([]uint16(nil), p.SupervisionTimeouts()...),
		MinimumCELength:       append([]uint16(nil), p.MinEventLengths()...),
		MaximumCELength:       append([]uint16(nil), p.MaxEventLengths()...),
	}, nil
}

// Dial initiates a connection to the given peer address.
func (h *HCI) Dial(a ble.Addr) (ble.Conn, error) {
	b, err := net.ParseMAC(a.String())
	if err != nil {
		return nil, ErrInvalidAddr
	}
	h.states.Lock()
	h.states.connParams.PeerAddress = [6]byte{b[5], b[4], b[3], b[2], b[1], b[0]}
	h.states.Unlock()
	if err := h.states.set(Dialing); err != nil {
		return nil, err
	}
	defer h.states.set(StopDialing)
	var tmo <-chan time.Time
	if h.dialerTmo != time.Duration(0) {
		tmo = time.After(h.dialerTmo)
	}
	select {
	case <-h.done:
		return nil, h.err
	case c := <-h.chMasterConn:
		return c, nil
	case <-tmo:
		if err := h.states.set(DialingCanceling); err != nil {
			return nil, err
		}
		// The controller answers the cancel with a connection complete
		// event: a nil conn if the cancel won, a live conn if it lost.
		if c := <-h.chMasterConn; c != nil {
			return c, nil
		}
		return nil, errors.New("dialer timed out")
	}
}
