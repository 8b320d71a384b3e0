package hci

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/blelab/ble/linux/hci/cmd"
	"github.com/mgutz/logxi/v1"
)

var logger = log.New("state")

// State ...
type State string

type nextState struct {
	s    State
	done chan error
}

// Controller states driven by the GAP layer.
const (
	Scanning               State = "Scanning"
	StopScanning           State = "StopScanning"
	ScanningUpdated        State = "ScanningUpdated"
	Dialing                State = "Dialing"
	DialingCanceling       State = "DialingCanceling"
	StopDialing            State = "StopDialing"
	DialingUpdated         State = "DialingUpdated"
	PeripheralDisconnected State = "PeripheralDisconnected"
)

type states struct {
	sync.Mutex

	hci *HCI

	isScanning bool
	isDialing  bool
	legacy     bool

	chState chan nextState
	done    chan bool
	err     error

	scanEnable  cmd.LESetScanEnable
	scanDisable cmd.LESetScanEnable
	connCancel  cmd.LECreateConnectionCancel

	scanParams cmd.LESetScanParameters
	connParams *cmd.LEExtendedCreateConnection
}

func newStates() *states {
	return &states{
		chState: make(chan nextState, 10),
		done:    make(chan bool),

		scanEnable:  cmd.LESetScanEnable{LEScanEnable: 1},
		scanDisable: cmd.LESetScanEnable{LEScanEnable: 0},
		scanParams: cmd.LESetScanParameters{
			LEScanType:           0x01,   // 0x00: passive, 0x01: active
			LEScanInterval:       0x0004, // 0x0004 - 0x4000; N * 0.625msec
			LEScanWindow:         0x0004, // 0x0004 - 0x4000; N * 0.625msec
			OwnAddressType:       0x00,   // 0x00: public, 0x01: random
			ScanningFilterPolicy: 0x00,   // 0x00: accept all, 0x01: ignore non-listed.
		},
		// Initiate on LE 1M with controller defaults until SetConnParams
		// replaces the whole command.
		connParams: &cmd.LEExtendedCreateConnection{
			InitiatorFilterPolicy: 0x00,                // Filter accept list is not used.
			OwnAddressType:        0x00,                // Public Device Address.
			PeerAddressType:       0x00,                // Public Device Address.
			InitiatingPHYs:        0x01,                // LE 1M only.
			ScanInterval:          []uint16{0x0004},    // 0x0004 - 0x4000; N * 0.625 msec
			ScanWindow:            []uint16{0x0004},    // 0x0004 - 0x4000; N * 0.625 msec
			ConnIntervalMin:       []uint16{0x0006},    // 0x0006 - 0x0C80; N * 1.25 msec
			ConnIntervalMax:       []uint16{0x0C80},    // 0x0006 - 0x0C80; N * 1.25 msec
			ConnLatency:           []uint16{0x0000},    // 0x0000 - 0x01F3; N * conn interval
			SupervisionTimeout:    []uint16{0x0C80},    // 0x000A - 0x0C80; N * 10 msec
			MinimumCELength:       []uint16{0x0000},    // 0x0000 - 0xFFFF; N * 0.625 msec
			MaximumCELength:       []uint16{0xFFFF},    // 0x0000 - 0xFFFF; N * 0.625 msec
		},
	}
}

func (s *states) init(h *HCI) {
	s.hci = h
	go s.loop()
	s.set(ScanningUpdated)
}

func (s *states) close() {
	close(s.done)
}

func (s *states) loop() {
	for {
		select {
		case <-s.done:
			return
		case next := <-s.chState:
			s.handle(next)
		}
	}
}

func (s *states) set(next State) error {
	n := nextState{s: next, done: make(chan error)}
	s.chState <- n
	return <-n.done
}

func (s *states) send(c Command) error {
	if s.err != nil {
		return s.err
	}
	if b, err := s.hci.send(c); err != nil {
		s.err = err
	} else if len(b) > 0 && b[0] != 0x00 {
		s.err = ErrCommand(b[0])
	}
	return s.err
}

func (s *states) handle(n nextState) {
	s.err = nil
	logger.Info(string(n.s) + " +")
	defer func() {
		logger.Info(string(n.s) + " -")
		n.done <- s.err
	}()
	switch n.s {
	case Scanning:
		if s.isScanning {
			return
		}
		if s.isDialing {
			s.err = errors.Wrapf(ErrBusyDialing, "scan")
			return
		}
		if s.send(&s.scanEnable) == nil {
			s.isScanning = true
		}
		if s.err == ErrDisallowed {
			logger.Info("scan: already enabled.")
			s.err = nil
		}
	case StopScanning:
		if !s.isScanning {
			return
		}
		s.isScanning = false
		s.send(&s.scanDisable)
	case ScanningUpdated:
		if s.isScanning {
			s.send(&s.scanDisable)
		}
		s.send(&s.scanParams)
		if s.isScanning {
			s.send(&s.scanEnable)
		}
	case Dialing:
		if s.isScanning {
			s.err = errors.Wrapf(ErrBusyScanning, "dial")
			return
		}
		if s.isDialing {
			s.err = errors.Wrapf(ErrBusyDialing, "dial")
			return
		}
		s.send(s.connCmd())
		if s.err == nil || s.err == ErrDisallowed {
			s.err = nil
			s.isDialing = true
			return
		}
	case StopDialing:
		s.isDialing = false
	case DialingCanceling:
		s.isDialing = false
		if s.send(&s.connCancel) == ErrDisallowed {
			// The connection completed before the cancel; a live conn is
			// already on its way to the dialer.
			s.err = nil
		}
	case DialingUpdated:
		if !s.isDialing {
			return
		}
		if s.send(&s.connCancel) == ErrDisallowed {
			s.err = nil
		}
		s.send(s.connCmd())
	case PeripheralDisconnected:
		if !s.isDialing {
			return
		}
		if s.send(s.connCmd()) == ErrDisallowed {
			s.err = nil
		}
	}
}

func (s *states) connCmd() Command {
	if s.legacy {
		return s.legacyConnCmd()
	}
	return s.connParams
}

// legacyConnCmd derives the single-PHY create connection command from the
// extended one, for controllers that predate extended commands. Only the
// first entry is carried; it belongs to LE 1M whenever 1M is enabled.
func (s *states) legacyConnCmd() *cmd.LECreateConnection {
	c := s.connParams
	return &cmd.LECreateConnection{
		LEScanInterval:        c.ScanInterval[0],
		LEScanWindow:          c.ScanWindow[0],
		InitiatorFilterPolicy: c.InitiatorFilterPolicy,
		PeerAddressType:       c.PeerAddressType,
		PeerAddress:           c.PeerAddress,
		OwnAddressType:        c.OwnAddressType,
		ConnIntervalMin:       c.ConnIntervalMin[0],
		ConnIntervalMax:       c.ConnIntervalMax[0],
		ConnLatency:           c.ConnLatency[0],
		SupervisionTimeout:    c.SupervisionTimeout[0],
		MinimumCELength:       c.MinimumCELength[0],
		MaximumCELength:       c.MaximumCELength[0],
	}
}
