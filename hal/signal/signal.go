// Package signal names the logical bus lines the HAL exposes, independent of
// the physical pin or electrical polarity a board uses for them.
package signal

// Signal is one logical bus line.
type Signal uint8

// Serial (IEC) bus.
const (
	None Signal = iota

	ATN
	Clock
	Data
	SRQ

	// Parallel (IEEE-488) bus. TE and DC steer the bus transceivers.
	TE
	DC
	IEEEATN
	NDAC
	NRFD
	DAV
	EOI
	IFC
	D0
	D1
	D2
	D3
	D4
	D5
	D6
	D7

	Count
)

var names = [Count]string{
	None:    "none",
	ATN:     "iec_atn",
	Clock:   "iec_clock",
	Data:    "iec_data",
	SRQ:     "iec_srq",
	TE:      "ieee_te",
	DC:      "ieee_dc",
	IEEEATN: "ieee_atn",
	NDAC:    "ieee_ndac",
	NRFD:    "ieee_nrfd",
	DAV:     "ieee_dav",
	EOI:     "ieee_eoi",
	IFC:     "ieee_ifc",
	D0:      "ieee_d0",
	D1:      "ieee_d1",
	D2:      "ieee_d2",
	D3:      "ieee_d3",
	D4:      "ieee_d4",
	D5:      "ieee_d5",
	D6:      "ieee_d6",
	D7:      "ieee_d7",
}

func (s Signal) String() string {
	if s >= Count {
		return "unknown"
	}
	return names[s]
}

func (s Signal) IsIEC() bool  { return s >= ATN && s <= SRQ }
func (s Signal) IsIEEE() bool { return s >= TE && s <= D7 }
func (s Signal) IsData() bool { return s >= D0 && s <= D7 }

// DataBit returns the IEEE data line for bit n (0..7).
func DataBit(n int) Signal {
	if n < 0 || n > 7 {
		return None
	}
	return D0 + Signal(n)
}

// IEC lists the serial bus lines in a fixed order.
var IEC = [4]Signal{ATN, Clock, Data, SRQ}
