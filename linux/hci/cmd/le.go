package cmd

import (
	"encoding/binary"
	"io"
	"math/bits"

	"github.com/pkg/errors"
)

// LESetEventMask implements LE Set Event Mask (0x08|0x0001) [Vol 2, Part E, 7.8.1].
type LESetEventMask struct {
	LEEventMask uint64
}

// String returns a human readable representation of the command.
func (c LESetEventMask) String() string { return "LE Set Event Mask (0x08|0x0001)" }

// OpCode returns the opcode of the command.
func (c LESetEventMask) OpCode() int { return 0x08<<10 | 0x0001 }

// Len returns the length of the command parameters.
func (c LESetEventMask) Len() int { return 8 }

// Marshal serializes the command parameters into binary form.
func (c LESetEventMask) Marshal(b []byte) error { return marshal(c, b) }

// LESetEventMaskRP returns the status of the LE Set Event Mask command.
type LESetEventMaskRP struct {
	Status uint8
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *LESetEventMaskRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LESetScanParameters implements LE Set Scan Parameters (0x08|0x000B) [Vol 2, Part E, 7.8.10].
type LESetScanParameters struct {
	LEScanType           uint8
	LEScanInterval       uint16
	LEScanWindow         uint16
	OwnAddressType       uint8
	ScanningFilterPolicy uint8
}

// String returns a human readable representation of the command.
func (c LESetScanParameters) String() string { return "LE Set Scan Parameters (0x08|0x000B)" }

// OpCode returns the opcode of the command.
func (c LESetScanParameters) OpCode() int { return 0x08<<10 | 0x000B }

// Len returns the length of the command parameters.
func (c LESetScanParameters) Len() int { return 7 }

// Marshal serializes the command parameters into binary form.
func (c LESetScanParameters) Marshal(b []byte) error { return marshal(c, b) }

// LESetScanParametersRP returns the status of the LE Set Scan Parameters command.
type LESetScanParametersRP struct {
	Status uint8
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *LESetScanParametersRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LESetScanEnable implements LE Set Scan Enable (0x08|0x000C) [Vol 2, Part E, 7.8.11].
type LESetScanEnable struct {
	LEScanEnable     uint8
	FilterDuplicates uint8
}

// String returns a human readable representation of the command.
func (c LESetScanEnable) String() string { return "LE Set Scan Enable (0x08|0x000C)" }

// OpCode returns the opcode of the command.
func (c LESetScanEnable) OpCode() int { return 0x08<<10 | 0x000C }

// Len returns the length of the command parameters.
func (c LESetScanEnable) Len() int { return 2 }

// Marshal serializes the command parameters into binary form.
func (c LESetScanEnable) Marshal(b []byte) error { return marshal(c, b) }

// LESetScanEnableRP returns the status of the LE Set Scan Enable command.
type LESetScanEnableRP struct {
	Status uint8
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *LESetScanEnableRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LECreateConnection implements LE Create Connection (0x08|0x000D) [Vol 2, Part E, 7.8.12].
type LECreateConnection struct {
	LEScanInterval        uint16
	LEScanWindow          uint16
	InitiatorFilterPolicy uint8
	PeerAddressType       uint8
	PeerAddress           [6]byte
	OwnAddressType        uint8
	ConnIntervalMin       uint16
	ConnIntervalMax       uint16
	ConnLatency           uint16
	SupervisionTimeout    uint16
	MinimumCELength       uint16
	MaximumCELength       uint16
}

// String returns a human readable representation of the command.
func (c LECreateConnection) String() string { return "LE Create Connection (0x08|0x000D)" }

// OpCode returns the opcode of the command.
func (c LECreateConnection) OpCode() int { return 0x08<<10 | 0x000D }

// Len returns the length of the command parameters.
func (c LECreateConnection) Len() int { return 25 }

// Marshal serializes the command parameters into binary form.
func (c LECreateConnection) Marshal(b []byte) error { return marshal(c, b) }

// LECreateConnectionCancel implements LE Create Connection Cancel (0x08|0x000E) [Vol 2, Part E, 7.8.13].
type LECreateConnectionCancel struct{}

// String returns a human readable representation of the command.
func (c LECreateConnectionCancel) String() string { return "LE Create Connection Cancel (0x08|0x000E)" }

// OpCode returns the opcode of the command.
func (c LECreateConnectionCancel) OpCode() int { return 0x08<<10 | 0x000E }

// Len returns the length of the command parameters.
func (c LECreateConnectionCancel) Len() int { return 0 }

// Marshal serializes the command parameters into binary form.
func (c LECreateConnectionCancel) Marshal(b []byte) error { return marshal(c, b) }

// LECreateConnectionCancelRP returns the status of the LE Create Connection Cancel command.
type LECreateConnectionCancelRP struct {
	Status uint8
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *LECreateConnectionCancelRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LESetDefaultPHY implements LE Set Default PHY (0x08|0x0031) [Vol 2, Part E, 7.8.48].
type LESetDefaultPHY struct {
	AllPhys uint8
	TxPhys  uint8
	RxPhys  uint8
}

// String returns a human readable representation of the command.
func (c LESetDefaultPHY) String() string { return "LE Set Default PHY (0x08|0x0031)" }

// OpCode returns the opcode of the command.
func (c LESetDefaultPHY) OpCode() int { return 0x08<<10 | 0x0031 }

// Len returns the length of the command parameters.
func (c LESetDefaultPHY) Len() int { return 3 }

// Marshal serializes the command parameters into binary form.
func (c LESetDefaultPHY) Marshal(b []byte) error { return marshal(c, b) }

// LESetDefaultPHYRP returns the status of the LE Set Default PHY command.
type LESetDefaultPHYRP struct {
	Status uint8
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *LESetDefaultPHYRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LEExtendedCreateConnection implements LE Extended Create Connection
// (0x08|0x0043) [Vol 2, Part E, 7.8.66].
//
// The per-PHY parameter fields hold one entry per bit set in InitiatingPHYs,
// in ascending PHY order (LE 1M, LE 2M, LE Coded). The wire layout groups
// the entries by parameter, which is exactly the compacted array form
// ble.ConnectionParameters produces.
type LEExtendedCreateConnection struct {
	InitiatorFilterPolicy uint8
	OwnAddressType        uint8
	PeerAddressType       uint8
	PeerAddress           [6]byte
	InitiatingPHYs        uint8
	ScanInterval          []uint16
	ScanWindow            []uint16
	ConnIntervalMin       []uint16
	ConnIntervalMax       []uint16
	ConnLatency           []uint16
	SupervisionTimeout    []uint16
	MinimumCELength       []uint16
	MaximumCELength       []uint16
}

// String returns a human readable representation of the command.
func (c LEExtendedCreateConnection) String() string {
	return "LE Extended Create Connection (0x08|0x0043)"
}

// OpCode returns the opcode of the command.
func (c LEExtendedCreateConnection) OpCode() int { return 0x08<<10 | 0x0043 }

// Len returns the length of the command parameters.
func (c LEExtendedCreateConnection) Len() int {
	return 10 + 16*bits.OnesCount8(c.InitiatingPHYs)
}

// Marshal serializes the command parameters into binary form.
func (c LEExtendedCreateConnection) Marshal(b []byte) error {
	n := bits.OnesCount8(c.InitiatingPHYs)
	if n == 0 {
		return errors.New("no initiating PHY")
	}
	series := [][]uint16{
		c.ScanInterval,
		c.ScanWindow,
		c.ConnIntervalMin,
		c.ConnIntervalMax,
		c.ConnLatency,
		c.SupervisionTimeout,
		c.MinimumCELength,
		c.MaximumCELength,
	}
	for _, s := range series {
		if len(s) != n {
			return errors.Errorf("%d entries for %d initiating PHYs", len(s), n)
		}
	}
	if len(b) < c.Len() {
		return io.ErrShortBuffer
	}
	b[0] = c.InitiatorFilterPolicy
	b[1] = c.OwnAddressType
	b[2] = c.PeerAddressType
	copy(b[3:9], c.PeerAddress[:])
	b[9] = c.InitiatingPHYs
	off := 10
	for _, s := range series {
		for _, v := range s {
			binary.LittleEndian.PutUint16(b[off:], v)
			off += 2
		}
	}
	return nil
}
