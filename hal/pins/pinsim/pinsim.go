// Package pinsim is a register-level simulation of the I/O ports and
// interrupt controller of the supported boards. It implements
// pins.Registers, models each bus line as a wired-AND net with pull-ups,
// the board's output stage and external devices pulling lines low, and
// raises INTn / PCINTn vectors when a net changes.
package pinsim

import (
	"sync"

	"diskhal-go/hal/boards"
	"diskhal-go/hal/irq"
	"diskhal-go/hal/pins"
	"diskhal-go/hal/signal"
)

type net struct {
	sig   signal.Signal
	in    pins.PinRef
	out   pins.PinRef
	irq   irq.Binding
	ext   bool // pulled low by another bus device
	level bool
}

// Sim holds the simulated register file of one board.
type Sim struct {
	mu sync.Mutex

	ddr  [pins.Ports]uint8
	port [pins.Ports]uint8

	eimsk, eifr  uint8
	eicra, eicrb uint8
	pcicr, pcifr uint8
	pcmsk        [4]uint8

	nets   []*net
	bySig  [signal.Count]*net
	vector func(irq.Vector)
}

type options struct {
	ieee bool
}

// Option configures New.
type Option func(*options)

// WithIEEE wires the parallel bus nets instead of the serial ones on boards
// that multiplex both onto the same pins.
func WithIEEE() Option { return func(o *options) { o.ieee = true } }

// New builds a simulator for b. All lines start released (high).
func New(b boards.Board, opts ...Option) *Sim {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	s := &Sim{}
	useIEEE := b.IEEE != nil && (o.ieee || b.IEC == nil)
	if useIEEE {
		for sig := signal.TE; sig <= signal.D7; sig++ {
			if l, ok := b.IEEE.Line(sig); ok {
				s.add(sig, l)
			}
		}
	} else if b.IEC != nil {
		for _, sig := range signal.IEC {
			if l, ok := b.IEC.Line(sig); ok {
				s.add(sig, l)
			}
		}
	}
	return s
}

func (s *Sim) add(sig signal.Signal, l boards.Line) {
	n := &net{sig: sig, in: l.In, out: l.Out, irq: l.IRQ, level: true}
	s.nets = append(s.nets, n)
	s.bySig[sig] = n
}

// SetVectorHandler installs the function called for every raised vector,
// normally (*irq.Router).Dispatch. It runs on the goroutine whose register
// write or Pull caused the change, after the simulator lock is released.
func (s *Sim) SetVectorHandler(fn func(irq.Vector)) {
	s.mu.Lock()
	s.vector = fn
	s.mu.Unlock()
}

// Pull makes an external device pull sig low, or let go of it.
func (s *Sim) Pull(sig signal.Signal, low bool) {
	s.mu.Lock()
	n := s.lookup(sig)
	if n == nil {
		s.mu.Unlock()
		return
	}
	n.ext = low
	s.settle()
}

// Level returns the electrical bus level of sig: true when high.
func (s *Sim) Level(sig signal.Signal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.lookup(sig)
	if n == nil {
		return true
	}
	return n.level
}

func (s *Sim) lookup(sig signal.Signal) *net {
	if sig >= signal.Count {
		return nil
	}
	return s.bySig[sig]
}

func (s *Sim) Load(r pins.Reg) uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch r.Kind {
	case pins.RegPIN:
		return s.pin(pins.Port(r.Index))
	case pins.RegDDR:
		return s.ddr[r.Index]
	case pins.RegPORT:
		return s.port[r.Index]
	case pins.RegEIMSK:
		return s.eimsk
	case pins.RegEIFR:
		return s.eifr
	case pins.RegEICRA:
		return s.eicra
	case pins.RegEICRB:
		return s.eicrb
	case pins.RegPCICR:
		return s.pcicr
	case pins.RegPCIFR:
		return s.pcifr
	case pins.RegPCMSK:
		return s.pcmsk[r.Index&3]
	}
	return 0
}

// Store writes a register. Port writes settle the bus and may raise
// vectors; interrupt control writes never do.
func (s *Sim) Store(r pins.Reg, v uint8) {
	s.mu.Lock()
	switch r.Kind {
	case pins.RegPIN:
		s.port[r.Index] ^= v
	case pins.RegDDR:
		s.ddr[r.Index] = v
	case pins.RegPORT:
		s.port[r.Index] = v
	default:
		s.storeControl(r, v)
		s.mu.Unlock()
		return
	}
	s.settle()
}

func (s *Sim) storeControl(r pins.Reg, v uint8) {
	switch r.Kind {
	case pins.RegEIMSK:
		s.eimsk = v
	case pins.RegEIFR:
		s.eifr &^= v
	case pins.RegEICRA:
		s.eicra = v
	case pins.RegEICRB:
		s.eicrb = v
	case pins.RegPCICR:
		s.pcicr = v
	case pins.RegPCIFR:
		s.pcifr &^= v
	case pins.RegPCMSK:
		s.pcmsk[r.Index&3] = v
	}
}

// pin returns the PIN image of a port: nets read their bus level, other
// outputs read back PORT, other inputs float high.
func (s *Sim) pin(p pins.Port) uint8 {
	v := s.ddr[p]&s.port[p] | ^s.ddr[p]
	for _, n := range s.nets {
		if n.in.Port != p {
			continue
		}
		if n.level {
			v |= n.in.Mask()
		} else {
			v &^= n.in.Mask()
		}
	}
	return v
}

// drivesLow reports whether the board's own output stage pulls n low.
func (s *Sim) drivesLow(n *net) bool {
	o := n.out
	if !o.Valid() {
		return false
	}
	m := o.Mask()
	if s.ddr[o.Port]&m == 0 {
		return false
	}
	high := s.port[o.Port]&m != 0
	if o.Same(n.in) {
		return !high
	}
	return high == o.Inverted
}

// settle recomputes every net, collects the vectors raised by level changes
// and calls the vector handler for them once the lock is dropped. It must be
// called with s.mu held and releases it.
func (s *Sim) settle() {
	var fire []irq.Vector
	for _, n := range s.nets {
		lv := !n.ext && !s.drivesLow(n)
		if lv == n.level {
			continue
		}
		n.level = lv
		if v, ok := s.raise(n.irq, lv); ok {
			fire = append(fire, v)
		}
	}
	h := s.vector
	s.mu.Unlock()
	if h == nil {
		return
	}
	for _, v := range fire {
		h(v)
	}
}

// raise latches the interrupt flag for a change on b. When the source is
// unmasked the vector is taken, which clears the flag again.
func (s *Sim) raise(b irq.Binding, level bool) (irq.Vector, bool) {
	switch b.Kind {
	case irq.KindDedicated:
		if !senses(s.sense(b.Line), level) {
			return irq.Vector{}, false
		}
		bit := uint8(1) << b.Line
		if s.eimsk&bit != 0 {
			return b.Vector(), true
		}
		s.eifr |= bit
	case irq.KindGroup:
		if s.pcmsk[b.Group&3]&(1<<b.Bit) == 0 {
			return irq.Vector{}, false
		}
		bit := uint8(1) << b.Group
		if s.pcicr&bit != 0 {
			return b.Vector(), true
		}
		s.pcifr |= bit
	}
	return irq.Vector{}, false
}

func (s *Sim) sense(line uint8) irq.Sense {
	r, shift := s.eicra, 2*line
	if line >= 4 {
		r, shift = s.eicrb, 2*(line-4)
	}
	return irq.Sense((r >> shift) & 0x03)
}

func senses(se irq.Sense, level bool) bool {
	switch se {
	case irq.SenseAny:
		return true
	case irq.SenseRising:
		return level
	default:
		return !level
	}
}
