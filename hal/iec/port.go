// Package iec is the line-level access to the Commodore serial bus: ATN,
// CLOCK, DATA and SRQ. It hides whether a board reads and drives a line
// through one pin or two, and whether its output stage inverts.
//
// Nothing here fails at runtime. Tables are validated at build time, so an
// unbound signal reads as released and ignores writes.
package iec

import (
	"diskhal-go/hal/boards"
	"diskhal-go/hal/irq"
	"diskhal-go/hal/pins"
	"diskhal-go/hal/signal"
)

// Lines is a snapshot of the bus, one bit per signal in signal.IEC order.
// A set bit means the line is high.
type Lines uint8

func bit(sig signal.Signal) Lines {
	for i, s := range signal.IEC {
		if s == sig {
			return 1 << i
		}
	}
	return 0
}

// Has reports whether sig was high.
func (l Lines) Has(sig signal.Signal) bool { return l&bit(sig) != 0 }

func (l Lines) String() string {
	b := []byte("atn=_ clk=_ data=_ srq=_")
	for i, at := range [4]int{4, 10, 17, 23} {
		if l&(1<<i) != 0 {
			b[at] = '1'
		} else {
			b[at] = '0'
		}
	}
	return string(b)
}

// Port drives the serial bus of one board.
type Port struct {
	b      *boards.IEC
	regs   pins.Registers
	router *irq.Router
}

// New returns the serial bus port of board, or nil when the board has none.
// The router may be nil on boards that never arm interrupts.
func New(board boards.Board, regs pins.Registers, router *irq.Router) *Port {
	if board.IEC == nil {
		return nil
	}
	return &Port{b: board.IEC, regs: regs, router: router}
}

// Init configures direction and pull-ups of every bound line and leaves the
// bus released.
//
// Split wiring: inputs with pull-ups, outputs driven to the released level.
// Shared wiring: all lines input. ATN, CLOCK and DATA only get pull-ups
// where the chip can go from driven-low straight to a pulled-up input;
// elsewhere PORT is cleared and the bus pull-ups hold the lines. Switching
// such a line later goes through a short window where the pin is neither
// driven nor pulled up. SRQ always gets its pull-up since it may be
// unconnected.
func (p *Port) Init() {
	var in, out [pins.Ports]uint8
	for _, sig := range signal.IEC {
		l, ok := p.b.Line(sig)
		if !ok {
			continue
		}
		in[l.In.Port] |= l.In.Mask()
		if l.CanDrive() && !l.Out.Same(l.In) {
			out[l.Out.Port] |= l.Out.Mask()
		}
	}

	if p.b.Wiring == boards.Split {
		for port := range in {
			if in[port] == 0 {
				continue
			}
			pins.ClearBits(p.regs, pins.DDR(pins.Port(port)), in[port])
			pins.SetBits(p.regs, pins.PORT(pins.Port(port)), in[port])
		}
		for _, sig := range signal.IEC {
			l, _ := p.b.Line(sig)
			p.drive(l, true)
		}
		for port := range out {
			if out[port] != 0 {
				pins.SetBits(p.regs, pins.DDR(pins.Port(port)), out[port])
			}
		}
		return
	}

	for port := range in {
		if in[port] != 0 {
			pins.ClearBits(p.regs, pins.DDR(pins.Port(port)), in[port])
		}
	}
	pullups := pins.Masks(p.b.SRQ.In)
	if p.b.DirectHiZ {
		pullups = pins.Masks(p.b.ATN.In, p.b.Clock.In, p.b.Data.In, p.b.SRQ.In)
	}
	for port := range in {
		if in[port] == 0 {
			continue
		}
		r := pins.PORT(pins.Port(port))
		v := p.regs.Load(r)&^in[port] | pullups[port]
		p.regs.Store(r, v)
	}
}

// Get samples sig. True means the line is high.
func (p *Port) Get(sig signal.Signal) bool {
	l, _ := p.b.Line(sig)
	return p.sample(l)
}

// Set drives sig: false pulls the line low, true releases it.
func (p *Port) Set(sig signal.Signal, level bool) {
	l, _ := p.b.Line(sig)
	p.drive(l, level)
}

// Release stops driving sig and leaves it to the pull-ups.
func (p *Port) Release(sig signal.Signal) {
	l, _ := p.b.Line(sig)
	p.release(l)
}

// Read samples all four lines.
func (p *Port) Read() Lines {
	var ls Lines
	for i, sig := range signal.IEC {
		if p.Get(sig) {
			ls |= 1 << i
		}
	}
	return ls
}

// ArmInterrupt enables or disables the change interrupt of sig.
func (p *Port) ArmInterrupt(sig signal.Signal, enabled bool) {
	if p.router == nil || !sig.IsIEC() {
		return
	}
	p.router.Set(sig, enabled)
}

// HasSRQ reports whether the board wires SRQ.
func (p *Port) HasSRQ() bool { return p.b.SRQ.Bound() }

// HasClockIRQ reports whether CLOCK changes can raise an interrupt.
func (p *Port) HasClockIRQ() bool { return p.b.Clock.IRQ.Bound() }

// Wiring returns the electrical model of the bus.
func (p *Port) Wiring() boards.Wiring { return p.b.Wiring }
