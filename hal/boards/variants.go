package boards

import (
	"diskhal-go/hal/irq"
	"diskhal-go/hal/pins"
)

// shared binds a bidirectional line. Output goes through DDR, so driving the
// bit to 1 pulls the line low: the output location is the input pin, inverted.
func shared(p pins.PinRef, b irq.Binding) Line {
	return Line{In: p, Out: pins.Inv(p.Port, p.Bit), IRQ: b}
}

// split binds a line with a dedicated output pin.
func split(in, out pins.PinRef, b irq.Binding) Line {
	return Line{In: in, Out: out, IRQ: b}
}

// input binds a read-only line.
func input(p pins.PinRef, b irq.Binding) Line { return Line{In: p, IRQ: b} }

func bidir(p pins.PinRef) Line { return Line{In: p, Out: p} }

var none irq.Binding

// Reference layout for new hardware: IEC on port A, ATN and CLOCK on
// pin-change group 0.
func example() Board {
	return Board{
		Variant: Example,
		Name:    "example",
		MCU:     "atmega1284p",
		IEC: &IEC{
			Wiring: Shared,
			ATN:    shared(pins.P(pins.PortA, 0), irq.Group(0, 0)),
			Data:   shared(pins.P(pins.PortA, 1), none),
			Clock:  shared(pins.P(pins.PortA, 2), irq.Group(0, 2)),
			SRQ:    shared(pins.P(pins.PortA, 3), none),
		},
		Aux: Aux{
			CardDetect:   pins.Inv(pins.PortD, 2),
			WriteProtect: pins.P(pins.PortD, 6),
			CardIRQ:      irq.Dedicated(0, irq.SenseAny),
			ButtonNext:   pins.Inv(pins.PortC, 4),
			ButtonPrev:   pins.Inv(pins.PortC, 3),
			BusyLED:      pins.P(pins.PortC, 0),
			DirtyLED:     pins.P(pins.PortC, 1),
			I2CSCL:       pins.P(pins.PortC, 4),
			I2CSDA:       pins.P(pins.PortC, 5),
		},
	}
}

func shadowolf1() Board {
	return Board{
		Variant: Shadowolf1,
		Name:    "shadowolf1",
		MCU:     "atmega644",
		IEC: &IEC{
			Wiring: Shared,
			ATN:    shared(pins.P(pins.PortA, 0), irq.Group(0, 0)),
			Data:   shared(pins.P(pins.PortA, 1), none),
			Clock:  shared(pins.P(pins.PortA, 2), irq.Group(0, 2)),
			SRQ:    shared(pins.P(pins.PortA, 3), none),
		},
		Aux: Aux{
			CardDetect:   pins.Inv(pins.PortD, 2),
			WriteProtect: pins.P(pins.PortD, 6),
			CardIRQ:      irq.Dedicated(0, irq.SenseAny),
			ButtonNext:   pins.Inv(pins.PortC, 4),
			ButtonPrev:   pins.Inv(pins.PortC, 3),
			BusyLED:      pins.P(pins.PortC, 0),
			DirtyLED:     pins.P(pins.PortC, 1),
		},
	}
}

func larsP() Board {
	return Board{
		Variant: LarsP,
		Name:    "larsp",
		MCU:     "atmega644",
		IEC: &IEC{
			Wiring: Shared,
			ATN:    shared(pins.P(pins.PortC, 0), irq.Group(2, 0)),
			Data:   shared(pins.P(pins.PortC, 1), none),
			Clock:  shared(pins.P(pins.PortC, 2), irq.Group(2, 2)),
			SRQ:    shared(pins.P(pins.PortC, 3), none),
		},
		Aux: Aux{
			CardDetect:   pins.Inv(pins.PortD, 2),
			WriteProtect: pins.P(pins.PortD, 6),
			CardIRQ:      irq.Dedicated(0, irq.SenseAny),
			ButtonNext:   pins.Inv(pins.PortA, 5),
			ButtonPrev:   pins.Inv(pins.PortA, 4),
			BusyLED:      pins.Inv(pins.PortA, 0), // active low
			DirtyLED:     pins.P(pins.PortA, 1),
			I2CSCL:       pins.P(pins.PortC, 6),
			I2CSDA:       pins.P(pins.PortC, 5),
		},
	}
}

// uIEC has dedicated INT lines for ATN and CLOCK.
func uiec() Board {
	return Board{
		Variant: UIEC,
		Name:    "uiec",
		MCU:     "atmega1281",
		IEC: &IEC{
			Wiring: Shared,
			ATN:    shared(pins.P(pins.PortE, 6), irq.Dedicated(6, irq.SenseAny)),
			Data:   shared(pins.P(pins.PortE, 4), none),
			Clock:  shared(pins.P(pins.PortE, 5), irq.Dedicated(5, irq.SenseAny)),
			SRQ:    shared(pins.P(pins.PortE, 2), none),
		},
		Aux: Aux{
			CardDetect:   pins.Inv(pins.PortB, 7),
			WriteProtect: pins.P(pins.PortB, 6),
			CardIRQ:      irq.Group(0, 7),
			ButtonNext:   pins.Inv(pins.PortG, 4),
			ButtonPrev:   pins.Inv(pins.PortG, 3),
			BusyLED:      pins.P(pins.PortE, 3),
			I2CSCL:       pins.P(pins.PortD, 0),
			I2CSDA:       pins.P(pins.PortD, 1),
		},
	}
}

// sd2iec 1.x: inputs on PA0-3, inverting drivers on PA4-7.
func shadowolf2() Board {
	return Board{
		Variant: Shadowolf2,
		Name:    "shadowolf2",
		MCU:     "atmega1284p",
		IEC: &IEC{
			Wiring: Split,
			ATN:    split(pins.P(pins.PortA, 0), pins.Inv(pins.PortA, 4), irq.Group(0, 0)),
			Data:   split(pins.P(pins.PortA, 1), pins.Inv(pins.PortA, 5), none),
			Clock:  split(pins.P(pins.PortA, 2), pins.Inv(pins.PortA, 6), irq.Group(0, 2)),
			SRQ:    split(pins.P(pins.PortA, 3), pins.Inv(pins.PortA, 7), none),
		},
		Aux: Aux{
			CardDetect:   pins.Inv(pins.PortD, 2),
			WriteProtect: pins.P(pins.PortD, 6),
			CardIRQ:      irq.Dedicated(0, irq.SenseAny),
			ButtonNext:   pins.Inv(pins.PortC, 3),
			ButtonPrev:   pins.Inv(pins.PortC, 2),
			BusyLED:      pins.P(pins.PortC, 0),
			DirtyLED:     pins.P(pins.PortC, 1),
			I2CSCL:       pins.P(pins.PortC, 4),
			I2CSDA:       pins.P(pins.PortC, 5),
		},
	}
}

// uIEC v3: inputs on port B, inverting drivers on port D.
func uiecV3() Board {
	return Board{
		Variant: UIECv3,
		Name:    "uiecv3",
		MCU:     "atmega1281",
		IEC: &IEC{
			Wiring: Split,
			ATN:    split(pins.P(pins.PortB, 4), pins.Inv(pins.PortD, 4), irq.Group(0, 4)),
			Data:   split(pins.P(pins.PortB, 5), pins.Inv(pins.PortD, 5), none),
			Clock:  split(pins.P(pins.PortB, 6), pins.Inv(pins.PortD, 6), irq.Group(0, 6)),
			SRQ:    split(pins.P(pins.PortB, 7), pins.Inv(pins.PortD, 7), none),
		},
		Aux: Aux{
			CardDetect:   pins.Inv(pins.PortE, 6),
			WriteProtect: pins.P(pins.PortE, 2),
			CardIRQ:      irq.Dedicated(6, irq.SenseAny),
			ButtonNext:   pins.Inv(pins.PortG, 4),
			ButtonPrev:   pins.Inv(pins.PortG, 3),
			BusyLED:      pins.P(pins.PortG, 0),
		},
	}
}

// petSD is IEEE-488 only.
func petSD() Board {
	return Board{
		Variant: PetSD,
		Name:    "petsd",
		MCU:     "atmega1284p",
		IEEE: &IEEE{
			TE:   pins.P(pins.PortB, 0),
			DC:   pins.P(pins.PortC, 5),
			ATN:  input(pins.P(pins.PortD, 2), irq.Dedicated(0, irq.SenseAny)),
			NDAC: bidir(pins.P(pins.PortC, 6)),
			NRFD: bidir(pins.P(pins.PortC, 7)),
			DAV:  bidir(pins.P(pins.PortB, 2)),
			EOI:  bidir(pins.P(pins.PortD, 7)),
			IFC:  input(pins.P(pins.PortD, 3), none),
			Data: [8]pins.PinRef{
				pins.P(pins.PortA, 0), pins.P(pins.PortA, 1), pins.P(pins.PortA, 2), pins.P(pins.PortA, 3),
				pins.P(pins.PortA, 4), pins.P(pins.PortA, 5), pins.P(pins.PortA, 6), pins.P(pins.PortA, 7),
			},
		},
		Aux: Aux{
			CardDetect:   pins.Inv(pins.PortD, 4),
			WriteProtect: pins.P(pins.PortC, 3),
			CardIRQ:      irq.Group(3, 4),
			ButtonNext:   pins.Inv(pins.PortB, 1),
			ButtonPrev:   pins.Inv(pins.PortB, 3),
			BusyLED:      pins.P(pins.PortD, 5),
			DirtyLED:     pins.P(pins.PortD, 6),
			I2CSCL:       pins.P(pins.PortC, 0),
			I2CSDA:       pins.P(pins.PortC, 1),
		},
	}
}

// petSD+ carries both buses behind a multiplexer. IEC outputs are not
// inverted, ATN cannot be driven and SRQ is not wired.
func petSDPlus() Board {
	b := petSDFamily()
	b.Variant = PetSDPlus
	b.Name = "petsdplus"
	return b
}

// petSD Lite shares the petSD+ layout.
func petSDLite() Board {
	b := petSDFamily()
	b.Variant = PetSDLite
	b.Name = "petsdlite"
	return b
}

func petSDFamily() Board {
	return Board{
		MCU: "atmega1284p",
		IEC: &IEC{
			Wiring: Split,
			ATN:    input(pins.P(pins.PortC, 2), irq.Group(2, 2)),
			Data:   split(pins.P(pins.PortC, 4), pins.P(pins.PortC, 6), none),
			Clock:  split(pins.P(pins.PortC, 5), pins.P(pins.PortC, 7), irq.Group(2, 5)),
		},
		IEEE: &IEEE{
			TE:   pins.P(pins.PortC, 3),
			ATN:  input(pins.P(pins.PortD, 2), irq.Dedicated(0, irq.SenseAny)),
			NDAC: bidir(pins.P(pins.PortC, 6)),
			NRFD: bidir(pins.P(pins.PortC, 7)),
			DAV:  bidir(pins.P(pins.PortC, 5)),
			EOI:  bidir(pins.P(pins.PortC, 4)),
			IFC:  input(pins.P(pins.PortC, 2), none),
			Data: [8]pins.PinRef{
				pins.P(pins.PortA, 0), pins.P(pins.PortA, 1), pins.P(pins.PortA, 2), pins.P(pins.PortA, 3),
				pins.P(pins.PortA, 4), pins.P(pins.PortA, 5), pins.P(pins.PortA, 6), pins.P(pins.PortD, 7),
			},
		},
		Aux: Aux{
			CardDetect:   pins.Inv(pins.PortD, 5),
			WriteProtect: pins.P(pins.PortD, 6),
			CardIRQ:      irq.Group(3, 5),
			BusyLED:      pins.P(pins.PortD, 1),
			DirtyLED:     pins.P(pins.PortD, 0),
			I2CSCL:       pins.P(pins.PortC, 0),
			I2CSDA:       pins.P(pins.PortC, 1),
		},
	}
}
