// Package pins describes physical 8-bit ports, the registers behind them and
// single-bit pin references, plus the capability used to touch those
// registers. Everything above this package speaks in PinRefs; only a
// Registers backend knows where a register actually lives.
package pins

// Port is a physical 8-bit GPIO port. The zero value means "not connected".
type Port uint8

const (
	PortNone Port = iota
	PortA
	PortB
	PortC
	PortD
	PortE
	PortF
	PortG
	PortH
	PortJ
	PortK
	PortL
)

// Ports is the number of Port values including PortNone.
const Ports = int(PortL) + 1

func (p Port) String() string {
	if p == PortNone || int(p) >= Ports {
		return "-"
	}
	return string("ABCDEFGHJKL"[p-1])
}

// RegKind selects a register family.
//
// Per port: PIN samples the inputs (writing 1 toggles the PORT bit), DDR sets
// direction (1 = output), PORT sets the output level or, for an input, the
// pull-up. Interrupt control: EIMSK/EIFR mask and flag INT0..7, EICRA/EICRB
// hold their sense bits, PCICR/PCIFR enable and flag pin-change groups and
// PCMSK<n> masks the pins of group n. Flag registers clear on writing 1.
type RegKind uint8

const (
	RegPIN RegKind = iota
	RegDDR
	RegPORT

	RegEIMSK
	RegEIFR
	RegEICRA
	RegEICRB
	RegPCICR
	RegPCIFR
	RegPCMSK
)

// Reg names one physical register. Index is the Port for port registers and
// the group number for RegPCMSK; it is zero otherwise.
type Reg struct {
	Kind  RegKind
	Index uint8
}

func PIN(p Port) Reg        { return Reg{Kind: RegPIN, Index: uint8(p)} }
func DDR(p Port) Reg        { return Reg{Kind: RegDDR, Index: uint8(p)} }
func PORT(p Port) Reg       { return Reg{Kind: RegPORT, Index: uint8(p)} }
func PCMSK(group uint8) Reg { return Reg{Kind: RegPCMSK, Index: group} }

var (
	EIMSK = Reg{Kind: RegEIMSK}
	EIFR  = Reg{Kind: RegEIFR}
	EICRA = Reg{Kind: RegEICRA}
	EICRB = Reg{Kind: RegEICRB}
	PCICR = Reg{Kind: RegPCICR}
	PCIFR = Reg{Kind: RegPCIFR}
)

// Registers is raw access to the chip's 8-bit I/O registers.
// Implementations need not be interrupt-safe; callers that share a register
// with an interrupt handler serialise themselves.
type Registers interface {
	Load(r Reg) uint8
	Store(r Reg, v uint8)
}

// SetBits performs r |= mask.
func SetBits(regs Registers, r Reg, mask uint8) {
	regs.Store(r, regs.Load(r)|mask)
}

// ClearBits performs r &^= mask.
func ClearBits(regs Registers, r Reg, mask uint8) {
	regs.Store(r, regs.Load(r)&^mask)
}

// Update sets or clears mask in r.
func Update(regs Registers, r Reg, mask uint8, on bool) {
	if on {
		SetBits(regs, r, mask)
	} else {
		ClearBits(regs, r, mask)
	}
}
