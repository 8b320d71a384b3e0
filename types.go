package ble

import "time"

// AddressType is the Own_Address_Type of connection and scanning commands
// [Vol 2, Part E, 7.8.12].
type AddressType uint8

// Own address types.
const (
	AddressTypePublic             AddressType = 0x00 // Public Device Address.
	AddressTypeRandom             AddressType = 0x01 // Random Device Address.
	AddressTypeResolvableOrPublic AddressType = 0x02 // RPA, or public if no local IRK.
	AddressTypeResolvableOrRandom AddressType = 0x03 // RPA, or random if no local IRK.
)

// FilterPolicy is the Initiator_Filter_Policy of connection commands
// [Vol 2, Part E, 7.8.12].
type FilterPolicy uint8

// Initiator filter policies.
const (
	// FilterPolicyIgnoreList connects to the peer address given to Dial;
	// the filter accept list is not used.
	FilterPolicyIgnoreList FilterPolicy = 0x00

	// FilterPolicyAcceptList connects to any device on the filter accept
	// list; the peer address given to Dial is ignored.
	FilterPolicyAcceptList FilterPolicy = 0x01
)

// ScanInterval is the time between consecutive scan windows, in units of
// 0.625 ms (0x0004 - 0x4000).
type ScanInterval uint16

// Duration returns the interval as a time.Duration.
func (i ScanInterval) Duration() time.Duration { return time.Duration(i) * 625 * time.Microsecond }

// ScanWindow is the duration of a single scan, in units of 0.625 ms
// (0x0004 - 0x4000). It must not exceed the scan interval.
type ScanWindow uint16

// Duration returns the window as a time.Duration.
func (w ScanWindow) Duration() time.Duration { return time.Duration(w) * 625 * time.Microsecond }

// ConnInterval is a connection interval bound, in units of 1.25 ms
// (0x0006 - 0x0C80).
type ConnInterval uint16

// Duration returns the interval as a time.Duration.
func (i ConnInterval) Duration() time.Duration { return time.Duration(i) * 1250 * time.Microsecond }

// PeripheralLatency is the number of connection events the peripheral may
// skip (0x0000 - 0x01F3).
type PeripheralLatency uint16

// Events returns the latency as a plain count.
func (l PeripheralLatency) Events() int { return int(l) }

// SupervisionTimeout is the link supervision timeout, in units of 10 ms
// (0x000A - 0x0C80).
type SupervisionTimeout uint16

// Duration returns the timeout as a time.Duration.
func (t SupervisionTimeout) Duration() time.Duration { return time.Duration(t) * 10 * time.Millisecond }

// ConnEventLength is a connection event length bound, in units of 0.625 ms.
// It is informational to the controller.
type ConnEventLength uint16

// Duration returns the length as a time.Duration.
func (l ConnEventLength) Duration() time.Duration { return time.Duration(l) * 625 * time.Microsecond }
