package pins

import "testing"

// memRegs is a plain register file without any electrical behaviour.
type memRegs map[Reg]uint8

func (m memRegs) Load(r Reg) uint8     { return m[r] }
func (m memRegs) Store(r Reg, v uint8) { m[r] = v }

func TestPinRefApplyLevelRoundTrip(t *testing.T) {
	for _, inv := range []bool{false, true} {
		p := PinRef{Port: PortC, Bit: 5, Inverted: inv}
		for _, lvl := range []bool{false, true} {
			raw := p.Apply(0xAA, lvl)
			if p.Level(raw) != lvl {
				t.Fatalf("inv=%v level=%v: got %v (raw %#02x)", inv, lvl, p.Level(raw), raw)
			}
			// Other bits untouched.
			if raw&^p.Mask() != 0xAA&^p.Mask() {
				t.Fatalf("inv=%v: sibling bits changed: %#02x", inv, raw)
			}
		}
	}
}

func TestPinRefPolarity(t *testing.T) {
	plain := P(PortA, 3)
	inv := Inv(PortA, 3)
	if got := plain.Apply(0, true); got != 0x08 {
		t.Fatalf("plain high: %#02x", got)
	}
	if got := inv.Apply(0, true); got != 0x00 {
		t.Fatalf("inverted high: %#02x", got)
	}
	if got := inv.Apply(0, false); got != 0x08 {
		t.Fatalf("inverted low: %#02x", got)
	}
}

func TestPinRefUnbound(t *testing.T) {
	var p PinRef
	if p.Valid() || p.Mask() != 0 {
		t.Fatal("zero PinRef must be unbound")
	}
	if (PinRef{Port: PortA, Bit: 8}).Valid() {
		t.Fatal("bit 8 must be invalid")
	}
	regs := memRegs{}
	Write(regs, RegPORT, p, true)
	if len(regs) != 0 {
		t.Fatalf("write through unbound ref touched registers: %v", regs)
	}
	if Sample(regs, p) {
		t.Fatal("unbound sample should be false")
	}
}

func TestPinRefString(t *testing.T) {
	cases := map[string]PinRef{
		"PA0":  P(PortA, 0),
		"!PD7": Inv(PortD, 7),
		"PG4":  P(PortG, 4),
		"-":    {},
	}
	for want, p := range cases {
		if got := p.String(); got != want {
			t.Fatalf("String(%+v) = %q, want %q", p, got, want)
		}
	}
}

func TestBitHelpers(t *testing.T) {
	regs := memRegs{}
	r := PCMSK(2)
	SetBits(regs, r, 0x05)
	ClearBits(regs, r, 0x01)
	Update(regs, r, 0x80, true)
	if got := regs[r]; got != 0x84 {
		t.Fatalf("PCMSK2 = %#02x, want 0x84", got)
	}
	Write(regs, RegDDR, Inv(PortB, 1), false)
	if regs[DDR(PortB)] != 0x02 {
		t.Fatalf("DDRB = %#02x", regs[DDR(PortB)])
	}
}

func TestMasks(t *testing.T) {
	m := Masks(P(PortA, 0), P(PortA, 2), P(PortD, 7), PinRef{})
	if m[PortA] != 0x05 || m[PortD] != 0x80 || m[PortNone] != 0 {
		t.Fatalf("unexpected masks: %v", m)
	}
}
