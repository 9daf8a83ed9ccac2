package irq

import "diskhal-go/hal/pins"

// Kind selects the interrupt facility behind a Binding.
type Kind uint8

const (
	KindNone Kind = iota
	// KindDedicated is an INTn line: own vector, one EIMSK bit.
	KindDedicated
	// KindGroup is a PCINTn group: one vector and PCICR bit shared by up to
	// eight pins, each gated by its PCMSK bit.
	KindGroup
)

// Sense is the edge/level selection of a dedicated line. The values are the
// ISCn1:ISCn0 bit pairs of EICRA/EICRB.
type Sense uint8

const (
	SenseLow     Sense = 0
	SenseAny     Sense = 1
	SenseFalling Sense = 2
	SenseRising  Sense = 3
)

func (s Sense) String() string {
	switch s {
	case SenseLow:
		return "low"
	case SenseAny:
		return "any"
	case SenseFalling:
		return "falling"
	default:
		return "rising"
	}
}

// Binding ties a logical signal to one interrupt source.
type Binding struct {
	Kind  Kind
	Line  uint8 // INTn for KindDedicated
	Sense Sense // KindDedicated only; pin-change groups always fire on any edge
	Group uint8 // PCINT group for KindGroup
	Bit   uint8 // mask bit within PCMSK<Group>
}

// Dedicated binds to external interrupt line INTn.
func Dedicated(line uint8, sense Sense) Binding {
	return Binding{Kind: KindDedicated, Line: line, Sense: sense}
}

// Group binds to bit of pin-change group PCINT<group>.
func Group(group, bit uint8) Binding {
	return Binding{Kind: KindGroup, Group: group, Bit: bit}
}

func (b Binding) Bound() bool { return b.Kind != KindNone }

// Valid reports whether the binding can be expressed in the AVR register set.
func (b Binding) Valid() bool {
	switch b.Kind {
	case KindNone:
		return true
	case KindDedicated:
		return b.Line < 8 && b.Sense <= SenseRising
	case KindGroup:
		return b.Group < 4 && b.Bit < 8
	}
	return false
}

// Vector is the hardware vector the binding raises.
func (b Binding) Vector() Vector {
	switch b.Kind {
	case KindDedicated:
		return Vector{Kind: KindDedicated, N: b.Line}
	case KindGroup:
		return Vector{Kind: KindGroup, N: b.Group}
	}
	return Vector{}
}

// maskReg returns the register and bit that gate this binding.
func (b Binding) maskReg() (pins.Reg, uint8) {
	if b.Kind == KindGroup {
		return pins.PCMSK(b.Group), 1 << b.Bit
	}
	return pins.EIMSK, 1 << b.Line
}

// senseReg returns the sense control register, the bit pair mask and the
// shifted sense value for a dedicated line.
func (b Binding) senseReg() (pins.Reg, uint8, uint8) {
	r := pins.EICRA
	shift := 2 * b.Line
	if b.Line >= 4 {
		r = pins.EICRB
		shift = 2 * (b.Line - 4)
	}
	return r, 0x03 << shift, uint8(b.Sense) << shift
}

// Vector identifies an interrupt vector: INTn or PCINTn.
type Vector struct {
	Kind Kind
	N    uint8
}

// INT and PCINT name vectors.
func INT(n uint8) Vector   { return Vector{Kind: KindDedicated, N: n} }
func PCINT(n uint8) Vector { return Vector{Kind: KindGroup, N: n} }

func (v Vector) String() string {
	switch v.Kind {
	case KindDedicated:
		return "INT" + string('0'+v.N)
	case KindGroup:
		return "PCINT" + string('0'+v.N)
	}
	return "none"
}
