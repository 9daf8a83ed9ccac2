package boards

import (
	"diskhal-go/errcode"
	"diskhal-go/hal/pins"
	"diskhal-go/hal/signal"
)

// Selected is the board chosen by the board_<name> build tag.
var Selected = mustLookup(SelectedVariant)

func mustLookup(v Variant) Board {
	b, err := Lookup(v)
	if err != nil {
		panic(err.Error())
	}
	if err := b.Validate(); err != nil {
		panic(err.Error())
	}
	return b
}

func (v Variant) String() string {
	if mk, ok := tables[v]; ok {
		return mk().Name
	}
	return "unknown"
}

// Validate checks the table for unbound mandatory lines and references that
// cannot exist on the chip. Every bus needs its ATN line; everything else
// may be absent.
func (b Board) Validate() error {
	const op = "boards.Validate"
	if b.IEC == nil && b.IEEE == nil {
		return errcode.New(errcode.UnboundSignal, op, b.Name+": no bus")
	}
	if b.IEC != nil {
		if !b.IEC.ATN.Bound() {
			return errcode.New(errcode.UnboundSignal, op, signal.ATN.String())
		}
		for _, sig := range signal.IEC {
			l, _ := b.IEC.Line(sig)
			if err := checkLine(op, sig, l); err != nil {
				return err
			}
			if b.IEC.Wiring == Shared && l.CanDrive() && !l.Out.Same(l.In) {
				return errcode.New(errcode.InvalidPin, op, sig.String()+": shared line drives "+l.Out.String())
			}
		}
	}
	if b.IEEE != nil {
		if !b.IEEE.ATN.Bound() {
			return errcode.New(errcode.UnboundSignal, op, signal.IEEEATN.String())
		}
		for sig := signal.TE; sig <= signal.D7; sig++ {
			l, _ := b.IEEE.Line(sig)
			if err := checkLine(op, sig, l); err != nil {
				return err
			}
			if sig.IsData() && !l.Bound() {
				return errcode.New(errcode.UnboundSignal, op, sig.String())
			}
		}
	}
	a := b.Aux
	for _, p := range []pins.PinRef{a.CardDetect, a.WriteProtect, a.ButtonNext, a.ButtonPrev, a.BusyLED, a.DirtyLED, a.I2CSCL, a.I2CSDA} {
		if !refOK(p) {
			return errcode.New(errcode.InvalidPin, op, "aux "+p.String())
		}
	}
	if !a.CardIRQ.Valid() {
		return errcode.New(errcode.InvalidIRQ, op, "aux card irq")
	}
	return nil
}

func checkLine(op string, sig signal.Signal, l Line) error {
	if !refOK(l.In) || !refOK(l.Out) {
		return errcode.New(errcode.InvalidPin, op, sig.String())
	}
	if l.In.Inverted {
		return errcode.New(errcode.InvalidPin, op, sig.String()+": inverted input")
	}
	if !l.IRQ.Valid() || (l.IRQ.Bound() && !l.Bound()) {
		return errcode.New(errcode.InvalidIRQ, op, sig.String())
	}
	return nil
}

// refOK accepts the zero PinRef (not connected) and any real pin.
func refOK(p pins.PinRef) bool {
	return p == (pins.PinRef{}) || p.Valid()
}
