// Package ieee is the line-level access to the IEEE-488 parallel bus as
// wired on the petSD family: bus transceivers steered by TE (talk enable)
// and, where fitted, DC (device/controller), eight handshake and control
// lines and an eight bit data bus that may span two ports.
//
// Levels are electrical: true is a high line. IEEE-488 is active low, so a
// set data bit read here is a logical zero on the bus. Mapping that onto
// bytes belongs to the protocol layer.
package ieee

import (
	"diskhal-go/hal/boards"
	"diskhal-go/hal/irq"
	"diskhal-go/hal/pins"
	"diskhal-go/hal/signal"
)

// Port drives the parallel bus of one board.
type Port struct {
	b      *boards.IEEE
	regs   pins.Registers
	router *irq.Router
}

// New returns the parallel bus port of board, or nil when the board has none.
func New(board boards.Board, regs pins.Registers, router *irq.Router) *Port {
	if board.IEEE == nil {
		return nil
	}
	return &Port{b: board.IEEE, regs: regs, router: router}
}

var handshake = [...]signal.Signal{signal.NDAC, signal.NRFD, signal.DAV, signal.EOI}

// Init puts the transceivers in listen mode with DC high, makes ATN and IFC
// pulled-up inputs and releases the handshake lines and the data bus.
func (p *Port) Init() {
	p.Set(signal.TE, false)
	p.Set(signal.DC, true)
	p.input(p.b.ATN.In)
	p.input(p.b.IFC.In)
	for _, sig := range handshake {
		p.Release(sig)
	}
	p.ReleaseData()
}

func (p *Port) input(ref pins.PinRef) {
	if !ref.Valid() {
		return
	}
	pins.SetBits(p.regs, pins.PORT(ref.Port), ref.Mask())
	pins.ClearBits(p.regs, pins.DDR(ref.Port), ref.Mask())
}

// Get samples sig. True means the line is high.
func (p *Port) Get(sig signal.Signal) bool {
	l, ok := p.b.Line(sig)
	if !ok {
		return true
	}
	return pins.Sample(p.regs, l.In)
}

// Set drives sig as an output at level. ATN and IFC are inputs only and
// ignore it.
func (p *Port) Set(sig signal.Signal, level bool) {
	l, ok := p.b.Line(sig)
	if !ok || !l.CanDrive() {
		return
	}
	pins.Write(p.regs, pins.RegPORT, l.Out, level)
	pins.SetBits(p.regs, pins.DDR(l.Out.Port), l.Out.Mask())
}

// Release turns sig into a pulled-up input.
func (p *Port) Release(sig signal.Signal) {
	l, ok := p.b.Line(sig)
	if !ok || !l.CanDrive() {
		return
	}
	p.input(l.Out)
}

// ReadData samples D0..D7; bit n is the level of Dn.
func (p *Port) ReadData() byte {
	var v byte
	var cache [pins.Ports]uint8
	var loaded [pins.Ports]bool
	for i, ref := range p.b.Data {
		if !ref.Valid() {
			continue
		}
		if !loaded[ref.Port] {
			cache[ref.Port] = p.regs.Load(pins.PIN(ref.Port))
			loaded[ref.Port] = true
		}
		if ref.Level(cache[ref.Port]) {
			v |= 1 << i
		}
	}
	return v
}

// WriteData drives D0..D7 with v, one register update per port.
func (p *Port) WriteData(v byte) {
	mask := pins.Masks(p.b.Data[:]...)
	var val [pins.Ports]uint8
	for i, ref := range p.b.Data {
		val[ref.Port] = ref.Apply(val[ref.Port], v&(1<<i) != 0)
	}
	for port := range mask {
		if mask[port] == 0 {
			continue
		}
		r := pins.PORT(pins.Port(port))
		out := p.regs.Load(r)&^mask[port] | val[port]
		p.regs.Store(r, out)
		pins.SetBits(p.regs, pins.DDR(pins.Port(port)), mask[port])
	}
}

// ReleaseData turns the data bus into pulled-up inputs.
func (p *Port) ReleaseData() {
	mask := pins.Masks(p.b.Data[:]...)
	for port := range mask {
		if mask[port] == 0 {
			continue
		}
		pins.ClearBits(p.regs, pins.DDR(pins.Port(port)), mask[port])
		pins.SetBits(p.regs, pins.PORT(pins.Port(port)), mask[port])
	}
}

// SetTalk switches the transceivers between talk (TE high) and listen.
// Handshake lines and data are released first so the MCU never drives
// against a transceiver that just turned around.
func (p *Port) SetTalk(talk bool) {
	for _, sig := range handshake {
		p.Release(sig)
	}
	p.ReleaseData()
	p.Set(signal.TE, talk)
}

// Talking reports the current TE level.
func (p *Port) Talking() bool { return p.Get(signal.TE) }

// ArmInterrupt enables or disables the change interrupt of sig.
func (p *Port) ArmInterrupt(sig signal.Signal, enabled bool) {
	if p.router == nil || !sig.IsIEEE() {
		return
	}
	p.router.Set(sig, enabled)
}

// HasDC reports whether the board has a DC transceiver control.
func (p *Port) HasDC() bool { return p.b.DC.Valid() }
