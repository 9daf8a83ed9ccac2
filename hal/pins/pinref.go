package pins

// PinRef is one bit of one port plus the electrical polarity of that bit.
// Inverted means the physical level is the opposite of the logical one.
type PinRef struct {
	Port     Port
	Bit      uint8
	Inverted bool
}

// P builds a non-inverted PinRef.
func P(port Port, bit uint8) PinRef { return PinRef{Port: port, Bit: bit} }

// Inv builds an inverted PinRef.
func Inv(port Port, bit uint8) PinRef { return PinRef{Port: port, Bit: bit, Inverted: true} }

// Valid reports whether the reference names a real pin.
func (p PinRef) Valid() bool {
	return p.Port != PortNone && int(p.Port) < Ports && p.Bit < 8
}

// Same reports whether p and o name the same physical pin, ignoring polarity.
func (p PinRef) Same(o PinRef) bool { return p.Port == o.Port && p.Bit == o.Bit }

// Mask returns the bit mask within the port, or 0 for an unbound reference.
func (p PinRef) Mask() uint8 {
	if !p.Valid() {
		return 0
	}
	return 1 << p.Bit
}

// Level extracts the logical level of p from a raw register value.
func (p PinRef) Level(raw uint8) bool {
	return (raw&p.Mask() != 0) != p.Inverted
}

// Apply returns raw with p's bit set to represent the logical level.
func (p PinRef) Apply(raw uint8, level bool) uint8 {
	if level != p.Inverted {
		return raw | p.Mask()
	}
	return raw &^ p.Mask()
}

// Physical returns p with polarity dropped.
func (p PinRef) Physical() PinRef { return PinRef{Port: p.Port, Bit: p.Bit} }

func (p PinRef) String() string {
	if !p.Valid() {
		return "-"
	}
	s := "P" + p.Port.String() + string('0'+p.Bit)
	if p.Inverted {
		s = "!" + s
	}
	return s
}

// Sample reads p's logical level from its port's input register.
func Sample(regs Registers, p PinRef) bool {
	if !p.Valid() {
		return false
	}
	return p.Level(regs.Load(PIN(p.Port)))
}

// Write stores p's logical level into the given register family of its port.
func Write(regs Registers, kind RegKind, p PinRef, level bool) {
	if !p.Valid() {
		return
	}
	r := Reg{Kind: kind, Index: uint8(p.Port)}
	regs.Store(r, p.Apply(regs.Load(r), level))
}

// Masks groups several PinRefs by port and returns one mask per port.
func Masks(refs ...PinRef) [Ports]uint8 {
	var m [Ports]uint8
	for _, r := range refs {
		if r.Valid() {
			m[r.Port] |= r.Mask()
		}
	}
	return m
}
