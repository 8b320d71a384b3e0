package ble

import (
	"reflect"
	"testing"
)

// fillPhy gives one PHY a distinct, identifiable set of values derived from
// base, so compacted views can be traced back to the PHY they belong to.
func fillPhy(p *ConnectionParameters, phy Phy, base uint16) {
	p.SetScanParameters(phy, ScanInterval(base+1), ScanWindow(base+2))
	p.SetConnectionParameters(phy,
		ConnInterval(base+3), ConnInterval(base+4),
		PeripheralLatency(base+5), SupervisionTimeout(base+6),
		ConnEventLength(base+7), ConnEventLength(base+8))
}

// viewsOf collects the eight series views in a fixed order.
func viewsOf(p *ConnectionParameters) [8][]uint16 {
	return [8][]uint16{
		p.ScanIntervals(),
		p.ScanWindows(),
		p.MinConnIntervals(),
		p.MaxConnIntervals(),
		p.PeripheralLatencies(),
		p.SupervisionTimeouts(),
		p.MinEventLengths(),
		p.MaxEventLengths(),
	}
}

// wantRow is the series row fillPhy produces for a PHY filled with base.
func wantRow(base uint16) [8]uint16 {
	return [8]uint16{base + 1, base + 2, base + 3, base + 4, base + 5, base + 6, base + 7, base + 8}
}

func checkCompacted(t *testing.T, p *ConnectionParameters, phys []Phy, bases map[Phy]uint16) {
	t.Helper()
	if got, want := p.EnabledPhyCount(), len(phys); got != want {
		t.Fatalf("EnabledPhyCount() = %d, want %d", got, want)
	}
	views := viewsOf(p)
	for series, view := range views {
		if len(view) != len(phys) {
			t.Fatalf("series %d: view length = %d, want %d", series, len(view), len(phys))
		}
	}
	for pos, phy := range phys {
		want := wantRow(bases[phy])
		for series, view := range views {
			if view[pos] != want[series] {
				t.Errorf("series %d entry %d: got %d, want %d (%s)",
					series, pos, view[pos], want[series], phy)
			}
		}
	}
}

func permutations(phys []Phy) [][]Phy {
	if len(phys) <= 1 {
		return [][]Phy{append([]Phy(nil), phys...)}
	}
	var out [][]Phy
	for i := range phys {
		rest := make([]Phy, 0, len(phys)-1)
		rest = append(rest, phys[:i]...)
		rest = append(rest, phys[i+1:]...)
		for _, perm := range permutations(rest) {
			out = append(out, append([]Phy{phys[i]}, perm...))
		}
	}
	return out
}

// TestCompactedViewAllSubsets enables every non-empty subset of PHYs, in
// every toggle order, and checks the views return exactly the enabled PHYs'
// values in ascending PHY order.
func TestCompactedViewAllSubsets(t *testing.T) {
	bases := map[Phy]uint16{Phy1M: 100, Phy2M: 200, PhyCoded: 300}
	for mask := 1; mask <= 7; mask++ {
		var phys []Phy
		for _, phy := range []Phy{Phy1M, Phy2M, PhyCoded} {
			if mask&int(phy.Mask()) != 0 {
				phys = append(phys, phy)
			}
		}
		for _, order := range permutations(phys) {
			p := NewConnectionParameters()
			for _, phy := range order {
				fillPhy(p, phy, bases[phy])
			}
			checkCompacted(t, p, phys, bases)
			if got := p.PhySet(); got != PhySet(mask) {
				t.Errorf("mask %03b order %v: PhySet() = %03b", mask, order, got)
			}
		}
	}
}

// TestSwappedSubset pins the one non-contiguous subset: 1M and Coded only.
func TestSwappedSubset(t *testing.T) {
	p := NewConnectionParameters()
	fillPhy(p, Phy1M, 10)
	fillPhy(p, PhyCoded, 20)

	checkCompacted(t, p, []Phy{Phy1M, PhyCoded}, map[Phy]uint16{Phy1M: 10, PhyCoded: 20})
	if got := p.PhySet(); got != PhySet1M|PhySetCoded {
		t.Errorf("PhySet() = %03b, want %03b", got, PhySet1M|PhySetCoded)
	}
}

// TestDisable2MEntersSwappedState enables all three PHYs, then disables 2M;
// the Coded values set before the disable must survive the swap.
func TestDisable2MEntersSwappedState(t *testing.T) {
	bases := map[Phy]uint16{Phy1M: 100, Phy2M: 200, PhyCoded: 300}
	p := NewConnectionParameters()
	for phy, base := range bases {
		fillPhy(p, phy, base)
	}
	checkCompacted(t, p, []Phy{Phy1M, Phy2M, PhyCoded}, bases)

	p.DisablePhy(Phy2M)
	checkCompacted(t, p, []Phy{Phy1M, PhyCoded}, bases)
}

// TestToggleSelfInverse toggles 2M off and back on repeatedly; the views of
// all three PHYs must come back unchanged every round trip.
func TestToggleSelfInverse(t *testing.T) {
	bases := map[Phy]uint16{Phy1M: 100, Phy2M: 200, PhyCoded: 300}
	p := NewConnectionParameters()
	for phy, base := range bases {
		fillPhy(p, phy, base)
	}
	for i := 0; i < 3; i++ {
		p.DisablePhy(Phy2M)
		checkCompacted(t, p, []Phy{Phy1M, PhyCoded}, bases)
		p.EnablePhy(Phy2M)
		checkCompacted(t, p, []Phy{Phy1M, Phy2M, PhyCoded}, bases)
	}
}

// TestSetCodedWhileSwapped addresses the Coded PHY while the set is in the
// swapped state; the write must land in the slot the views read.
func TestSetCodedWhileSwapped(t *testing.T) {
	p := NewConnectionParameters()
	fillPhy(p, Phy1M, 100)
	fillPhy(p, PhyCoded, 300)

	// Already swapped; overwrite Coded's values in place.
	fillPhy(p, PhyCoded, 500)
	checkCompacted(t, p, []Phy{Phy1M, PhyCoded}, map[Phy]uint16{Phy1M: 100, PhyCoded: 500})
}

func TestTogglePhys(t *testing.T) {
	bases := map[Phy]uint16{Phy1M: 100, Phy2M: 200, PhyCoded: 300}
	p := NewConnectionParameters()
	for phy, base := range bases {
		fillPhy(p, phy, base)
	}

	p.TogglePhys(true, false, true)
	checkCompacted(t, p, []Phy{Phy1M, PhyCoded}, bases)

	p.TogglePhys(false, false, true)
	checkCompacted(t, p, []Phy{PhyCoded}, bases)

	p.TogglePhys(true, true, true)
	checkCompacted(t, p, []Phy{Phy1M, Phy2M, PhyCoded}, bases)
}

func TestEventLengthClamp(t *testing.T) {
	p := NewConnectionParameters()
	p.SetConnectionParameters(Phy1M, 6, 12, 0, 100, 100, 50)
	if got := p.MinEventLengths()[0]; got != 50 {
		t.Errorf("min event length = %d, want 50 (clamped)", got)
	}
	if got := p.MaxEventLengths()[0]; got != 50 {
		t.Errorf("max event length = %d, want 50", got)
	}
}

// TestConnIntervalNotClamped pins the asymmetry: only the event-length pair
// is clamped, connection interval bounds pass through as given.
func TestConnIntervalNotClamped(t *testing.T) {
	p := NewConnectionParameters()
	p.SetConnectionParameters(Phy1M, 100, 50, 0, 100, 0, 10)
	if got := p.MinConnIntervals()[0]; got != 100 {
		t.Errorf("min conn interval = %d, want 100 (unclamped)", got)
	}
	if got := p.MaxConnIntervals()[0]; got != 50 {
		t.Errorf("max conn interval = %d, want 50", got)
	}
}

func TestDefaults(t *testing.T) {
	p := NewConnectionParameters()
	if got := p.OwnAddressType(); got != AddressTypePublic {
		t.Errorf("OwnAddressType() = %d, want public", got)
	}
	if got := p.FilterPolicy(); got != FilterPolicyIgnoreList {
		t.Errorf("FilterPolicy() = %d, want ignore list", got)
	}
	if got := p.EnabledPhyCount(); got != 0 {
		t.Errorf("EnabledPhyCount() = %d, want 0", got)
	}

	p.EnablePhy(Phy2M)
	want := [8][]uint16{
		{0x0004}, {0x0004}, {0x0006}, {0x0C80}, {0x0000}, {0x0C80}, {0x0000}, {0xFFFF},
	}
	if got := viewsOf(p); !reflect.DeepEqual(got, want) {
		t.Errorf("default views = %v, want %v", got, want)
	}
}

func TestScalarSetters(t *testing.T) {
	p := NewConnectionParameters().
		SetOwnAddressType(AddressTypeRandom).
		SetFilterPolicy(FilterPolicyAcceptList)
	if got := p.OwnAddressType(); got != AddressTypeRandom {
		t.Errorf("OwnAddressType() = %d, want random", got)
	}
	if got := p.FilterPolicy(); got != FilterPolicyAcceptList {
		t.Errorf("FilterPolicy() = %d, want accept list", got)
	}
}

// TestViewWithoutPhyPanics asserts the contract-violation path: reading a
// compacted view with a blank enabled set must not return a value.
func TestViewWithoutPhyPanics(t *testing.T) {
	p := NewConnectionParameters()
	defer func() {
		if recover() == nil {
			t.Errorf("ScanIntervals() with no enabled PHY did not panic")
		}
	}()
	p.ScanIntervals()
}

func TestPhySetIgnoresSwap(t *testing.T) {
	p := NewConnectionParameters()
	p.EnablePhy(Phy1M)
	p.EnablePhy(PhyCoded) // swapped storage
	if got := p.PhySet(); got != PhySet1M|PhySetCoded {
		t.Errorf("PhySet() = %03b, want %03b", got, PhySet1M|PhySetCoded)
	}
	if got := p.PhySet().Count(); got != 2 {
		t.Errorf("PhySet().Count() = %d, want 2", got)
	}
	if p.PhySet().Has(Phy2M) {
		t.Errorf("PhySet() contains 2M after disable")
	}
}
