package hci

import (
	"io"
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/blelab/ble"
	"github.com/blelab/ble/linux/hci/cmd"
	"github.com/blelab/ble/linux/hci/evt"
	"github.com/blelab/ble/linux/hci/socket"
)

// Command is an HCI command to be sent to the controller.
type Command interface {
	OpCode() int
	Len() int
	Marshal([]byte) error
}

// CommandRP is the return parameter of an HCI command.
type CommandRP interface {
	Unmarshal(b []byte) error
}

type handlerFn func(b []byte) error

type pkt struct {
	cmd  Command
	done chan []byte
}

// NewHCI returns an hci device.
func NewHCI(opts ...Option) (*HCI, error) {
	h := &HCI{
		id: -1,

		chCmdBufs: make(chan []byte, 8),
		sent:      make(map[int]*pkt),

		evth: map[int]handlerFn{},
		subh: map[int]handlerFn{},

		states: newStates(),

		chEvt: make(chan []byte, 64),

		muConns:      &sync.Mutex{},
		conns:        make(map[uint16]*Conn),
		chMasterConn: make(chan *Conn),

		done: make(chan bool),
	}
	if err := h.Option(opts...); err != nil {
		return nil, err
	}
	return h, nil
}

// HCI is the host side of an HCI transport, reduced to the central role:
// scanning and connection initiation.
type HCI struct {
	sync.Mutex

	skt io.ReadWriteCloser
	id  int

	// Host to Controller command flow control [Vol 2, Part E, 4.4]
	muSent    sync.Mutex
	chCmdBufs chan []byte
	sent      map[int]*pkt

	// evtHub
	evth map[int]handlerFn
	subh map[int]handlerFn

	// Device information or status.
	addr net.HardwareAddr

	states *states

	chEvt      chan []byte
	advHandler ble.AdvHandler

	muConns      *sync.Mutex
	conns        map[uint16]*Conn
	chMasterConn chan *Conn // Dial returns master connections.

	dialerTmo time.Duration

	err  error
	done chan bool
}

// Init connects to the controller and brings it to a known state.
func (h *HCI) Init(opts ...Option) error {
	h.evth[evt.CommandCompleteCode] = h.handleCommandComplete
	h.evth[evt.CommandStatusCode] = h.handleCommandStatus
	h.evth[evt.DisconnectionCompleteCode] = h.handleDisconnectionComplete
	h.evth[evt.LEMetaCode] = h.handleLEMeta

	h.subh[evt.LEAdvertisingReportSubCode] = h.handleLEAdvertisingReport
	h.subh[evt.LEConnectionCompleteSubCode] = h.handleLEConnectionComplete
	h.subh[evt.LEEnhancedConnectionCompleteSubCode] = h.handleLEEnhancedConnectionComplete
	h.subh[evt.LEConnectionUpdateCompleteSubCode] = h.handleLEConnectionUpdateComplete

	if err := h.Option(opts...); err != nil {
		return err
	}

	skt, err := socket.NewSocket(h.id)
	if err != nil {
		return err
	}
	h.skt = skt

	h.chCmdBufs <- make([]byte, 64)

	go h.asyncLoop()
	go h.sktLoop()
	if err := h.init(); err != nil {
		return err
	}
	h.states.init(h)

	return nil
}

// Stop detaches from the controller.
func (h *HCI) Stop() error {
	return h.stop(nil)
}

// Error returns the first fatal error the device encountered.
func (h *HCI) Error() error {
	return h.err
}

// Option sets the options specified.
func (h *HCI) Option(opts ...Option) error {
	var err error
	for _, opt := range opts {
		err = opt(h)
	}
	return err
}

func (h *HCI) init() error {
	h.Send(&cmd.Reset{}, nil)

	SetEventMaskRP := cmd.SetEventMaskRP{}
	h.Send(&cmd.SetEventMask{EventMask: 0x3dbff807fffbffff}, &SetEventMaskRP)

	// Connection complete, advertising report, connection update complete,
	// and enhanced connection complete.
	LESetEventMaskRP := cmd.LESetEventMaskRP{}
	h.Send(&cmd.LESetEventMask{LEEventMask: 0x000000000000021F}, &LESetEventMaskRP)

	ReadBDADDRRP := cmd.ReadBDADDRRP{}
	h.Send(&cmd.ReadBDADDR{}, &ReadBDADDRRP)

	a := ReadBDADDRRP.BDADDR
	h.addr = net.HardwareAddr([]byte{a[5], a[4], a[3], a[2], a[1], a[0]})

	return h.err
}

// Send sends an HCI Command and unmarshals the return parameter into r.
func (h *HCI) Send(c Command, r CommandRP) error {
	b, err := h.send(c)
	if err != nil {
		return err
	}
	if r != nil {
		return r.Unmarshal(b)
	}
	return nil
}

func (h *HCI) send(c Command) ([]byte, error) {
	if h.err != nil {
		return nil, h.err
	}
	p := &pkt{c, make(chan []byte)}
	b := <-h.chCmdBufs
	b[0] = pktTypeCommand // HCI header
	b[1] = byte(c.OpCode())
	b[2] = byte(c.OpCode() >> 8)
	b[3] = byte(c.Len())
	if err := c.Marshal(b[4:]); err != nil {
		return nil, errors.Wrap(err, "hci: can't marshal cmd")
	}

	h.muSent.Lock()
	h.sent[c.OpCode()] = p
	h.muSent.Unlock()

	if n, err := h.skt.Write(b[:4+c.Len()]); err != nil {
		return nil, errors.Wrap(err, "hci: can't send cmd")
	} else if n != 4+c.Len() {
		return nil, errors.New("hci: can't send whole cmd pkt to hci socket")
	}

	select {
	case <-h.done:
		return nil, h.err
	case b := <-p.done:
		return b, nil
	}
}

func (h *HCI) asyncLoop() {
	for {
		select {
		case <-h.done:
			return
		case b := <-h.chEvt:
			if f := h.evth[int(b[0])]; f != nil {
				if err := f(b[2:]); err != nil {
					h.err = err
				}
			}
		}
	}
}

func (h *HCI) sktLoop() {
	b := make([]byte, 4096)
	defer close(h.done)
	for {
		n, err := h.skt.Read(b)
		if n == 0 || err != nil {
			h.err = errors.Wrap(err, "skt")
			return
		}
		p := make([]byte, n)
		copy(p, b)
		if err := h.handlePkt(p); err != nil {
			h.err = err
			return
		}
	}
}

func (h *HCI) stop(err error) error {
	h.err = err
	h.states.close()
	if err := h.skt.Close(); err != nil {
		return err
	}
	return nil
}

func (h *HCI) handlePkt(b []byte) error {
	// Strip the HCI header, and pass down the rest of the packet.
	t, b := b[0], b[1:]
	switch t {
	case pktTypeEvent:
		return h.handleEvt(b)
	case pktTypeACLData:
		// No data plane in this stack.
		return nil
	case pktTypeCommand, pktTypeSCOData, pktTypeVendor:
		return errors.Errorf("hci: unsupported packet type 0x%02X: [ % X ]", t, b)
	default:
		return errors.Errorf("hci: invalid packet: 0x%02X [ % X ]", t, b)
	}
}

func (h *HCI) handleEvt(b []byte) error {
	code, plen := int(b[0]), int(b[1])
	if plen != len(b[2:]) {
		return errors.Errorf("hci: corrupt event packet: [ % X ]", b)
	}
	if code == evt.CommandCompleteCode || code == evt.CommandStatusCode {
		if f := h.evth[code]; f != nil {
			return f(b[2:])
		}
	}
	h.chEvt <- b
	return nil
}

func (h *HCI) handleLEMeta(b []byte) error {
	subcode := int(b[0])
	if f := h.subh[subcode]; f != nil {
		return f(b)
	}
	return errors.Errorf("hci: unsupported LE event: [ % X ]", b)
}

func (h *HCI) handleLEAdvertisingReport(b []byte) error {
	if h.advHandler == nil {
		return nil
	}
	e := evt.LEAdvertisingReport(b)
	for i := 0; i < int(e.NumReports()); i++ {
		go h.advHandler(newAdvertisement(e, i))
	}
	return nil
}

func (h *HCI) handleCommandComplete(b []byte) error {
	e := evt.CommandComplete(b)
	for i := 0; i < int(e.NumHCICommandPackets()); i++ {
		h.chCmdBufs <- make([]byte, 64)
	}

	// NOP command, used for flow control purpose [Vol 2, Part E, 4.4]
	if e.CommandOpcode() == 0x0000 {
		return nil
	}
	h.muSent.Lock()
	p, found := h.sent[int(e.CommandOpcode())]
	h.muSent.Unlock()
	if !found {
		return errors.Errorf("hci: can't find the cmd for CommandCompleteEP: % X", e)
	}
	p.done <- e.ReturnParameters()
	return nil
}

func (h *HCI) handleCommandStatus(b []byte) error {
	e := evt.CommandStatus(b)
	for i := 0; i < int(e.NumHCICommandPackets()); i++ {
		h.chCmdBufs <- make([]byte, 64)
	}

	h.muSent.Lock()
	p, found := h.sent[int(e.CommandOpcode())]
	h.muSent.Unlock()
	if !found {
		return errors.Errorf("hci: can't find the cmd for CommandStatusEP: % X", e)
	}
	p.done <- []byte{e.Status()}
	return nil
}

func (h *HCI) handleLEConnectionComplete(b []byte) error {
	e := evt.LEConnectionComplete(b)
	return h.connectionComplete(e.Status(), e.Role(), e.ConnectionHandle(),
		e.PeerAddress(), e.ConnInterval(), e.ConnLatency(), e.SupervisionTimeout())
}

func (h *HCI) handleLEEnhancedConnectionComplete(b []byte) error {
	e := evt.LEEnhancedConnectionComplete(b)
	return h.connectionComplete(e.Status(), e.Role(), e.ConnectionHandle(),
		e.PeerAddress(), e.ConnInterval(), e.ConnLatency(), e.SupervisionTimeout())
}

func (h *HCI) connectionComplete(status, role uint8, handle uint16, peer [6]byte, interval, latency, timeout uint16) error {
	if role != roleMaster {
		// This stack never advertises as connectable.
		return nil
	}
	if status == 0x00 {
		c := newConn(h, handle, peer, interval, latency, timeout)
		h.muConns.Lock()
		h.conns[handle] = c
		h.muConns.Unlock()
		h.chMasterConn <- c
		return nil
	}
	if ErrCommand(status) == ErrConnID {
		// nil for a canceled connection.
		h.chMasterConn <- nil
	}
	return nil
}

func (h *HCI) handleLEConnectionUpdateComplete(b []byte) error {
	e := evt.LEConnectionUpdateComplete(b)
	if e.Status() != 0x00 {
		return nil
	}
	h.muConns.Lock()
	defer h.muConns.Unlock()
	if c, found := h.conns[e.ConnectionHandle()]; found {
		c.update(e.ConnInterval(), e.ConnLatency(), e.SupervisionTimeout())
	}
	return nil
}

func (h *HCI) handleDisconnectionComplete(b []byte) error {
	e := evt.DisconnectionComplete(b)
	h.muConns.Lock()
	c, found := h.conns[e.ConnectionHandle()]
	delete(h.conns, e.ConnectionHandle())
	h.muConns.Unlock()
	if !found {
		return errors.Errorf("hci: disconnecting an invalid handle %04X", e.ConnectionHandle())
	}
	c.close()
	h.states.set(PeripheralDisconnected)
	return nil
}
