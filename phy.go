package ble

import "math/bits"

// Phy identifies one of the LE physical layers [Vol 6, Part B, 2].
// The value doubles as the fixed storage slot the PHY owns in the per-PHY
// parameter arrays of a ConnectionParameters.
type Phy uint8

// LE PHY variants.
const (
	Phy1M    Phy = 0 // LE 1M
	Phy2M    Phy = 1 // LE 2M
	PhyCoded Phy = 2 // LE Coded (long range)
)

func (p Phy) String() string {
	switch p {
	case Phy1M:
		return "LE 1M"
	case Phy2M:
		return "LE 2M"
	case PhyCoded:
		return "LE Coded"
	default:
		return "unknown PHY"
	}
}

// Mask returns the single-PHY bitmask of p.
func (p Phy) Mask() PhySet { return 1 << p }

// PhySet is the bitmask encoding of a set of PHYs used by HCI commands that
// take a PHY set (bit 0: LE 1M, bit 1: LE 2M, bit 2: LE Coded)
// [Vol 2, Part E, 7.8.66].
type PhySet uint8

// Single-PHY sets.
const (
	PhySet1M    PhySet = 0x01
	PhySet2M    PhySet = 0x02
	PhySetCoded PhySet = 0x04
)

// Has reports whether p is a member of the set.
func (s PhySet) Has(p Phy) bool { return s&p.Mask() != 0 }

// Count returns the number of PHYs in the set.
func (s PhySet) Count() int { return bits.OnesCount8(uint8(s)) }

func (s PhySet) String() string {
	out := ""
	for _, p := range []Phy{Phy1M, Phy2M, PhyCoded} {
		if !s.Has(p) {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += p.String()
	}
	if out == "" {
		return "no PHY"
	}
	return out
}
