package ble

// maxParamPhys is the number of PHYs addressable by the extended connection
// commands [Vol 2, Part E, 7.8.66].
const maxParamPhys = 3

// ConnectionParameters holds per-PHY scan and connection timing for LE
// Extended Create Connection. Each PHY owns a fixed storage slot
// (LE 1M: 0, LE 2M: 1, LE Coded: 2); the command wants only the enabled
// PHYs' parameters, packed contiguously in ascending PHY order.
//
// The only enabled subset whose slots are not already contiguous is
// {1M, Coded}. Entering or leaving that subset swaps the full parameter
// content of slots 1 and 2, so the enabled entries always form a contiguous
// run starting at the first enabled slot. The swap is self-inverse; the
// enabled flags themselves are never swapped, they track PHY identity.
//
// Setters return the receiver so configuration calls chain. The zero-ready
// constructor is NewConnectionParameters; a ConnectionParameters is not safe
// for concurrent use and is meant to be built, then handed read-only to the
// HCI layer.
type ConnectionParameters struct {
	ownAddrType  AddressType
	filterPolicy FilterPolicy

	scanInterval       [maxParamPhys]uint16 // 0.625 ms
	scanWindow         [maxParamPhys]uint16 // 0.625 ms
	connIntervalMin    [maxParamPhys]uint16 // 1.25 ms
	connIntervalMax    [maxParamPhys]uint16 // 1.25 ms
	peripheralLatency  [maxParamPhys]uint16 // events
	supervisionTimeout [maxParamPhys]uint16 // 10 ms
	minEventLength     [maxParamPhys]uint16 // 0.625 ms
	maxEventLength     [maxParamPhys]uint16 // 0.625 ms

	enabledPhy [maxParamPhys]bool
}

// NewConnectionParameters returns a parameter set with controller defaults
// on every slot and no PHY enabled.
func NewConnectionParameters() *ConnectionParameters {
	p := &ConnectionParameters{
		ownAddrType:  AddressTypePublic,
		filterPolicy: FilterPolicyIgnoreList,
	}
	for i := 0; i < maxParamPhys; i++ {
		p.scanInterval[i] = 0x0004
		p.scanWindow[i] = 0x0004
		p.connIntervalMin[i] = 0x0006
		p.connIntervalMax[i] = 0x0C80
		p.peripheralLatency[i] = 0x0000
		p.supervisionTimeout[i] = 0x0C80
		p.minEventLength[i] = 0x0000
		p.maxEventLength[i] = 0xFFFF
	}
	return p
}

// SetScanParameters sets the scan interval and window used while initiating
// on the given PHY, enabling it if needed.
func (p *ConnectionParameters) SetScanParameters(phy Phy, interval ScanInterval, window ScanWindow) *ConnectionParameters {
	i := p.togglePhy(phy, true)
	p.scanInterval[i] = uint16(interval)
	p.scanWindow[i] = uint16(window)
	return p
}

// SetConnectionParameters sets the connection timing requested on the given
// PHY, enabling it if needed. An inverted event-length pair is not an error;
// the minimum is lowered to the maximum.
func (p *ConnectionParameters) SetConnectionParameters(
	phy Phy,
	minInterval, maxInterval ConnInterval,
	latency PeripheralLatency,
	timeout SupervisionTimeout,
	minEventLength, maxEventLength ConnEventLength,
) *ConnectionParameters {
	i := p.togglePhy(phy, true)
	p.connIntervalMin[i] = uint16(minInterval)
	p.connIntervalMax[i] = uint16(maxInterval)
	p.peripheralLatency[i] = uint16(latency)
	p.supervisionTimeout[i] = uint16(timeout)

	// avoid propagating an inverted range
	if minEventLength > maxEventLength {
		minEventLength = maxEventLength
	}
	p.minEventLength[i] = uint16(minEventLength)
	p.maxEventLength[i] = uint16(maxEventLength)
	return p
}

// SetOwnAddressType sets the address type the local device initiates with.
func (p *ConnectionParameters) SetOwnAddressType(t AddressType) *ConnectionParameters {
	p.ownAddrType = t
	return p
}

// SetFilterPolicy sets the initiator filter policy.
func (p *ConnectionParameters) SetFilterPolicy(f FilterPolicy) *ConnectionParameters {
	p.filterPolicy = f
	return p
}

// TogglePhys sets all three enabled flags in one call.
func (p *ConnectionParameters) TogglePhys(phy1M, phy2M, phyCoded bool) *ConnectionParameters {
	p.togglePhy(Phy1M, phy1M)
	p.togglePhy(Phy2M, phy2M)
	p.togglePhy(PhyCoded, phyCoded)
	return p
}

// EnablePhy enables initiation on the given PHY.
func (p *ConnectionParameters) EnablePhy(phy Phy) *ConnectionParameters {
	p.togglePhy(phy, true)
	return p
}

// DisablePhy disables initiation on the given PHY.
func (p *ConnectionParameters) DisablePhy(phy Phy) *ConnectionParameters {
	p.togglePhy(phy, false)
	return p
}

// OwnAddressType returns the configured own address type.
func (p *ConnectionParameters) OwnAddressType() AddressType { return p.ownAddrType }

// FilterPolicy returns the configured initiator filter policy.
func (p *ConnectionParameters) FilterPolicy() FilterPolicy { return p.filterPolicy }

// EnabledPhyCount returns how many PHYs are enabled (0-3).
func (p *ConnectionParameters) EnabledPhyCount() int {
	n := 0
	for _, on := range p.enabledPhy {
		if on {
			n++
		}
	}
	return n
}

// PhySet returns the enabled set as a bitmask. The mask encodes PHY
// identity, not storage position, so it is unaffected by the slot swap.
func (p *ConnectionParameters) PhySet() PhySet {
	var set PhySet
	for i, on := range p.enabledPhy {
		if on {
			set |= Phy(i).Mask()
		}
	}
	return set
}

// The view accessors below return the enabled PHYs' values in ascending PHY
// order, one entry per enabled PHY. The slices alias internal storage and
// are valid only until the next mutating call. They panic if no PHY is
// enabled.

// ScanIntervals returns the scan intervals of the enabled PHYs, 0.625 ms units.
func (p *ConnectionParameters) ScanIntervals() []uint16 { return p.view(&p.scanInterval) }

// ScanWindows returns the scan windows of the enabled PHYs, 0.625 ms units.
func (p *ConnectionParameters) ScanWindows() []uint16 { return p.view(&p.scanWindow) }

// MinConnIntervals returns the minimum connection intervals of the enabled
// PHYs, 1.25 ms units.
func (p *ConnectionParameters) MinConnIntervals() []uint16 { return p.view(&p.connIntervalMin) }

// MaxConnIntervals returns the maximum connection intervals of the enabled
// PHYs, 1.25 ms units.
func (p *ConnectionParameters) MaxConnIntervals() []uint16 { return p.view(&p.connIntervalMax) }

// PeripheralLatencies returns the peripheral latencies of the enabled PHYs,
// in connection events.
func (p *ConnectionParameters) PeripheralLatencies() []uint16 { return p.view(&p.peripheralLatency) }

// SupervisionTimeouts returns the supervision timeouts of the enabled PHYs,
// 10 ms units.
func (p *ConnectionParameters) SupervisionTimeouts() []uint16 { return p.view(&p.supervisionTimeout) }

// MinEventLengths returns the minimum connection event lengths of the
// enabled PHYs, 0.625 ms units.
func (p *ConnectionParameters) MinEventLengths() []uint16 { return p.view(&p.minEventLength) }

// MaxEventLengths returns the maximum connection event lengths of the
// enabled PHYs, 0.625 ms units.
func (p *ConnectionParameters) MaxEventLengths() []uint16 { return p.view(&p.maxEventLength) }

func (p *ConnectionParameters) view(s *[maxParamPhys]uint16) []uint16 {
	first := p.firstEnabledIndex()
	return s[first : first+p.EnabledPhyCount()]
}

// firstEnabledIndex returns the slot the compacted views start at. Asking
// for it with a blank enabled set means the caller is about to initiate a
// connection with no PHY defined, which is a programming error.
func (p *ConnectionParameters) firstEnabledIndex() int {
	for i, on := range p.enabledPhy {
		if on {
			return i
		}
	}
	panic("ble: connection parameters without any PHY enabled")
}

// togglePhy applies one flag change, keeps the storage compacted, and
// returns the slot the caller should address for the given PHY.
func (p *ConnectionParameters) togglePhy(phy Phy, enable bool) int {
	index := int(phy)

	wasSwapped := p.swapped()
	p.enabledPhy[phy] = enable
	isSwapped := p.swapped()

	if wasSwapped != isSwapped {
		p.swapCodedAnd2M()
	}

	// While swapped, the Coded PHY's live parameters sit in slot 1.
	if isSwapped && phy == PhyCoded {
		index--
	}
	return index
}

// swapped reports whether the enabled set is {1M, Coded}, the one subset
// whose fixed slots (0 and 2) are not contiguous.
func (p *ConnectionParameters) swapped() bool {
	return p.enabledPhy[Phy1M] && !p.enabledPhy[Phy2M] && p.enabledPhy[PhyCoded]
}

// swapCodedAnd2M exchanges the whole parameter content of slots 1 and 2 so
// the enabled entries at slots 0 and 1 are contiguous. Disabled 2M's former
// values land in slot 2 and are never read.
func (p *ConnectionParameters) swapCodedAnd2M() {
	for _, s := range p.series() {
		s[Phy2M], s[PhyCoded] = s[PhyCoded], s[Phy2M]
	}
}

func (p *ConnectionParameters) series() []*[maxParamPhys]uint16 {
	return []*[maxParamPhys]uint16{
		&p.scanInterval,
		&p.scanWindow,
		&p.connIntervalMin,
		&p.connIntervalMax,
		&p.peripheralLatency,
		&p.supervisionTimeout,
		&p.minEventLength,
		&p.maxEventLength,
	}
}
