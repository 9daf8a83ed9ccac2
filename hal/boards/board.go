// Package boards holds the pin binding table of every supported board
// revision. A table is pure data: which physical pin carries each logical bus
// line, how outputs are wired and which interrupt source reports changes.
// Exactly one table is selected at build time (see Selected).
package boards

import (
	"diskhal-go/errcode"
	"diskhal-go/hal/irq"
	"diskhal-go/hal/pins"
	"diskhal-go/hal/signal"
	"diskhal-go/x/conv"
)

// Variant is the closed set of hardware revisions. Numbers match the
// hardware ids used by existing firmware images.
type Variant uint8

const (
	Example    Variant = 1
	Shadowolf1 Variant = 2
	LarsP      Variant = 3
	UIEC       Variant = 4
	Shadowolf2 Variant = 5
	UIECv3     Variant = 7
	PetSD      Variant = 8
	PetSDPlus  Variant = 9
	PetSDLite  Variant = 10
)

// Variants lists every known variant.
var Variants = []Variant{Example, Shadowolf1, LarsP, UIEC, Shadowolf2, UIECv3, PetSD, PetSDPlus, PetSDLite}

// Wiring is the electrical model of a serial bus.
type Wiring uint8

const (
	// Shared uses one bidirectional pin per line. A line is driven low by
	// setting its DDR bit with PORT clear, and released by clearing DDR.
	Shared Wiring = iota
	// Split reads through one pin and drives through another, usually via
	// an inverting transistor stage.
	Split
)

func (w Wiring) String() string {
	if w == Split {
		return "split"
	}
	return "shared"
}

// Line binds one logical signal.
type Line struct {
	In  pins.PinRef // input sample, never inverted
	Out pins.PinRef // output location; Inverted = output stage inverts
	IRQ irq.Binding
}

func (l Line) Bound() bool    { return l.In.Valid() }
func (l Line) CanDrive() bool { return l.Out.Valid() }

// IEC is the serial bus binding.
type IEC struct {
	Wiring Wiring
	// DirectHiZ is true when the chip can switch a pin from driven-low
	// output straight to a pulled-up input. AVRs cannot: the pull-up would
	// be enabled while the pin still drives, so shared lines start without
	// pull-ups and rely on the bus pull-ups.
	DirectHiZ bool

	ATN, Clock, Data, SRQ Line
}

// Line returns the binding for an IEC signal.
func (b *IEC) Line(sig signal.Signal) (Line, bool) {
	switch sig {
	case signal.ATN:
		return b.ATN, b.ATN.Bound()
	case signal.Clock:
		return b.Clock, b.Clock.Bound()
	case signal.Data:
		return b.Data, b.Data.Bound()
	case signal.SRQ:
		return b.SRQ, b.SRQ.Bound()
	}
	return Line{}, false
}

// IEEE is the parallel bus binding. Lines are bidirectional pins behind
// bus transceivers; TE selects talk/listen and DC device/controller mode.
type IEEE struct {
	TE   pins.PinRef
	DC   pins.PinRef
	ATN  Line
	NDAC Line
	NRFD Line
	DAV  Line
	EOI  Line
	IFC  Line
	Data [8]pins.PinRef
}

// Line returns the binding for an IEEE signal, data lines included.
func (b *IEEE) Line(sig signal.Signal) (Line, bool) {
	var l Line
	switch sig {
	case signal.TE:
		l = Line{In: b.TE, Out: b.TE}
	case signal.DC:
		l = Line{In: b.DC, Out: b.DC}
	case signal.IEEEATN:
		l = b.ATN
	case signal.NDAC:
		l = b.NDAC
	case signal.NRFD:
		l = b.NRFD
	case signal.DAV:
		l = b.DAV
	case signal.EOI:
		l = b.EOI
	case signal.IFC:
		l = b.IFC
	default:
		if sig.IsData() {
			p := b.Data[sig-signal.D0]
			l = Line{In: p, Out: p}
		}
	}
	return l, l.Bound()
}

// Aux collects the non-bus pins a board declares. Drivers for them live
// outside this module; the table only records where they are.
type Aux struct {
	CardDetect   pins.PinRef // Inverted: low = card present
	WriteProtect pins.PinRef
	CardIRQ      irq.Binding
	ButtonNext   pins.PinRef
	ButtonPrev   pins.PinRef
	BusyLED      pins.PinRef
	DirtyLED     pins.PinRef
	I2CSCL       pins.PinRef
	I2CSDA       pins.PinRef
}

// Board is the complete binding table of one variant.
type Board struct {
	Variant Variant
	Name    string
	MCU     string

	IEC  *IEC  // nil when the board has no serial bus
	IEEE *IEEE // nil when the board has no parallel bus
	Aux  Aux
}

func (b Board) HasIEC() bool  { return b.IEC != nil }
func (b Board) HasIEEE() bool { return b.IEEE != nil }

// HasI2C reports whether the board routes the software I²C pins used for
// the RTC.
func (b Board) HasI2C() bool { return b.Aux.I2CSCL.Valid() && b.Aux.I2CSDA.Valid() }

// Routes returns the interrupt bindings of every bus line for irq.New.
func (b Board) Routes() []irq.Route {
	var rs []irq.Route
	if b.IEC != nil {
		for _, sig := range signal.IEC {
			if l, ok := b.IEC.Line(sig); ok && l.IRQ.Bound() {
				rs = append(rs, irq.Route{Signal: sig, Binding: l.IRQ})
			}
		}
	}
	if b.IEEE != nil {
		for sig := signal.TE; sig <= signal.IFC; sig++ {
			if l, ok := b.IEEE.Line(sig); ok && l.IRQ.Bound() {
				rs = append(rs, irq.Route{Signal: sig, Binding: l.IRQ})
			}
		}
	}
	return rs
}

// Lookup returns the table for v. The result is a deep copy; tables never
// change at runtime.
func Lookup(v Variant) (Board, error) {
	mk, ok := tables[v]
	if !ok {
		var buf [4]byte
		return Board{}, errcode.New(errcode.UnknownVariant, "boards.Lookup", "variant "+string(conv.Utoa(buf[:], uint64(v))))
	}
	return mk(), nil
}

// tables maps each variant to its constructor. Constructors return fresh
// values so callers cannot alias another caller's table.
var tables = map[Variant]func() Board{
	Example:    example,
	Shadowolf1: shadowolf1,
	LarsP:      larsP,
	UIEC:       uiec,
	Shadowolf2: shadowolf2,
	UIECv3:     uiecV3,
	PetSD:      petSD,
	PetSDPlus:  petSDPlus,
	PetSDLite:  petSDLite,
}
