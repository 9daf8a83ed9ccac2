package iec

import (
	"diskhal-go/hal/boards"
	"diskhal-go/hal/pins"
)

// Logical levels are bus levels: true is released (high), false is pulled
// low. The helpers below turn them into register writes for either wiring.

func (p *Port) sample(l boards.Line) bool {
	if !l.Bound() {
		return true
	}
	return pins.Sample(p.regs, l.In)
}

// drive puts a logical level on l's output. Shared lines are open-drain:
// PORT is cleared before DDR is set so a pull-up is never turned into an
// active high, and releasing only clears DDR.
func (p *Port) drive(l boards.Line, level bool) {
	if !l.CanDrive() {
		return
	}
	if p.b.Wiring == boards.Split {
		pins.Write(p.regs, pins.RegPORT, l.Out, level)
		return
	}
	if !level {
		pins.ClearBits(p.regs, pins.PORT(l.Out.Port), l.Out.Mask())
	}
	pins.Write(p.regs, pins.RegDDR, l.Out, level)
}

// release stops driving l. A shared line also gets its pull-up, which is
// what keeps an unconnected SRQ from floating. Between the two writes the
// pin is an input without pull-up; only the bus pull-ups hold it.
func (p *Port) release(l boards.Line) {
	if !l.CanDrive() {
		return
	}
	if p.b.Wiring == boards.Split {
		p.drive(l, true)
		return
	}
	pins.ClearBits(p.regs, pins.DDR(l.Out.Port), l.Out.Mask())
	pins.SetBits(p.regs, pins.PORT(l.Out.Port), l.Out.Mask())
}
