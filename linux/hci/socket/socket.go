//go:build linux
// +build linux

package socket

import (
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/mgutz/logxi/v1"
)

var logger = log.New("skt")

// Socket is a raw HCI channel to a controller.
type Socket struct {
	fd   int
	dev  int
	name string
	rmu  sync.Mutex
	wmu  sync.Mutex
}

// NewSocket opens the HCI device with the given id, or the first usable
// device if id is -1.
func NewSocket(id int) (*Socket, error) {
	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_RAW|unix.SOCK_CLOEXEC, unix.BTPROTO_HCI)
	if err != nil {
		return nil, errors.Wrap(err, "can't create socket")
	}
	if id != -1 {
		return open(fd, id)
	}

	req := devListRequest{devNum: hciMaxDevices}
	if err := ioctl(uintptr(fd), hciGetDeviceList, uintptr(unsafe.Pointer(&req))); err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, "can't get device list")
	}
	var lastErr error
	for i := 0; i < int(req.devNum); i++ {
		s, err := open(fd, int(req.devRequest[i].id))
		if err == nil {
			return s, nil
		}
		lastErr = err
	}
	unix.Close(fd)
	if lastErr == nil {
		lastErr = errors.New("no devices available")
	}
	return nil, lastErr
}

func open(fd, id int) (*Socket, error) {
	i := hciDevInfo{id: uint16(id)}
	if err := ioctl(uintptr(fd), hciGetDeviceInfo, uintptr(unsafe.Pointer(&i))); err != nil {
		return nil, errors.Wrap(err, "can't get device info")
	}
	name := string(i.name[:])

	// Take the device down so it can be bound to the user channel.
	logger.Debug("down", "dev", name)
	if err := ioctl(uintptr(fd), hciDownDevice, uintptr(id)); err != nil {
		return nil, errors.Wrap(err, "can't down device")
	}

	// Prefer the exclusive user channel (linux 3.14+); fall back to raw
	// access on older kernels.
	sa := unix.SockaddrHCI{Dev: uint16(id), Channel: unix.HCI_CHANNEL_USER}
	if err := unix.Bind(fd, &sa); err != nil {
		if err != unix.EINVAL {
			return nil, errors.Wrap(err, "can't bind socket to hci user channel")
		}
		logger.Warn("can't bind to user channel, falling back to raw", "dev", name)
		sa := unix.SockaddrHCI{Dev: uint16(id), Channel: unix.HCI_CHANNEL_RAW}
		if err := unix.Bind(fd, &sa); err != nil {
			return nil, errors.Wrap(err, "can't bind socket to hci raw channel")
		}
	}
	logger.Info("opened", "dev", name)
	return &Socket{fd: fd, dev: id, name: name}, nil
}

func (s *Socket) Read(b []byte) (int, error) {
	s.rmu.Lock()
	defer s.rmu.Unlock()
	n, err := unix.Read(s.fd, b)
	return n, errors.Wrap(err, "can't read hci socket")
}

func (s *Socket) Write(b []byte) (int, error) {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	n, err := unix.Write(s.fd, b)
	return n, errors.Wrap(err, "can't write hci socket")
}

func (s *Socket) Close() error {
	return errors.Wrap(unix.Close(s.fd), "can't close hci socket")
}

const (
	ioctlSize     = 4
	hciMaxDevices = 16
	typHCI        = 72 // 'H'
)

var (
	hciUpDevice      = ioW(typHCI, 201, ioctlSize) // HCIDEVUP
	hciDownDevice    = ioW(typHCI, 202, ioctlSize) // HCIDEVDOWN
	hciResetDevice   = ioW(typHCI, 203, ioctlSize) // HCIDEVRESET
	hciGetDeviceList = ioR(typHCI, 210, ioctlSize) // HCIGETDEVLIST
	hciGetDeviceInfo = ioR(typHCI, 211, ioctlSize) // HCIGETDEVINFO
)

func ioW(t, nr, size uintptr) uintptr {
	return (1 << 30) | (size << 16) | (t << 8) | nr
}

func ioR(t, nr, size uintptr) uintptr {
	return (2 << 30) | (size << 16) | (t << 8) | nr
}

func ioctl(fd, op, arg uintptr) error {
	if _, _, ep := unix.Syscall(unix.SYS_IOCTL, fd, op, arg); ep != 0 {
		return ep
	}
	return nil
}

type devRequest struct {
	id  uint16
	opt uint32
}

type devListRequest struct {
	devNum     uint16
	devRequest [hciMaxDevices]devRequest
}

type hciDevInfo struct {
	id         uint16
	name       [8]byte
	bdaddr     [6]byte
	flags      uint32
	devType    uint8
	features   [8]uint8
	pktType    uint32
	linkPolicy uint32
	linkMode   uint32
	aclMtu     uint16
	aclPkts    uint16
	scoMtu     uint16
	scoPkts    uint16

	stats hciDevStats
}

type hciDevStats struct {
	errRx  uint32
	errTx  uint32
	cmdTx  uint32
	evtRx  uint32
	aclTx  uint32
	aclRx  uint32
	scoTx  uint32
	scoRx  uint32
	byteRx uint32
	byteTx uint32
}
