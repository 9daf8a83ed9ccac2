// hal/platform/factories_avr.go
//go:build avr && atmega1284p

package platform

import (
	"device/avr"
	"machine"
	"runtime/interrupt"
	"runtime/volatile"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/i2csoft"

	"diskhal-go/errcode"
	"diskhal-go/hal/boards"
	"diskhal-go/hal/irq"
	"diskhal-go/hal/pins"
)

// TODO: register and vector maps for the atmega1281 boards (uiec, uiecv3),
// which add ports E-G, EICRB and INT3-7.

// ------------------------- Registers (AVR) -----------------------------------

var portRegs = [3][pins.Ports]*volatile.Register8{
	pins.RegPIN:  {pins.PortA: avr.PINA, pins.PortB: avr.PINB, pins.PortC: avr.PINC, pins.PortD: avr.PIND},
	pins.RegDDR:  {pins.PortA: avr.DDRA, pins.PortB: avr.DDRB, pins.PortC: avr.DDRC, pins.PortD: avr.DDRD},
	pins.RegPORT: {pins.PortA: avr.PORTA, pins.PortB: avr.PORTB, pins.PortC: avr.PORTC, pins.PortD: avr.PORTD},
}

var pcmskRegs = [4]*volatile.Register8{avr.PCMSK0, avr.PCMSK1, avr.PCMSK2, avr.PCMSK3}

// deviceRegisters maps pins.Reg onto the memory-mapped I/O registers.
type deviceRegisters struct{}

func (deviceRegisters) reg(r pins.Reg) *volatile.Register8 {
	switch r.Kind {
	case pins.RegPIN, pins.RegDDR, pins.RegPORT:
		if int(r.Index) < pins.Ports {
			return portRegs[r.Kind][r.Index]
		}
	case pins.RegEIMSK:
		return avr.EIMSK
	case pins.RegEIFR:
		return avr.EIFR
	case pins.RegEICRA:
		return avr.EICRA
	case pins.RegPCICR:
		return avr.PCICR
	case pins.RegPCIFR:
		return avr.PCIFR
	case pins.RegPCMSK:
		if int(r.Index) < len(pcmskRegs) {
			return pcmskRegs[r.Index]
		}
	}
	return nil
}

func (d deviceRegisters) Load(r pins.Reg) uint8 {
	if p := d.reg(r); p != nil {
		return p.Get()
	}
	return 0
}

func (d deviceRegisters) Store(r pins.Reg, v uint8) {
	if p := d.reg(r); p != nil {
		p.Set(v)
	}
}

// DefaultRegisters returns the chip's own register file.
func DefaultRegisters(boards.Board) pins.Registers { return deviceRegisters{} }

// ------------------------- Vectors (AVR) -------------------------------------

var dispatch func(irq.Vector)

func vector(v irq.Vector) {
	if dispatch != nil {
		dispatch(v)
	}
}

// AttachVectors installs the INTn and PCINTn vectors and forwards them to
// fn. Call once, before any source is unmasked.
func AttachVectors(_ pins.Registers, fn func(irq.Vector)) {
	dispatch = fn
	interrupt.New(avr.IRQ_INT0, func(interrupt.Interrupt) { vector(irq.INT(0)) })
	interrupt.New(avr.IRQ_INT1, func(interrupt.Interrupt) { vector(irq.INT(1)) })
	interrupt.New(avr.IRQ_INT2, func(interrupt.Interrupt) { vector(irq.INT(2)) })
	interrupt.New(avr.IRQ_PCINT0, func(interrupt.Interrupt) { vector(irq.PCINT(0)) })
	interrupt.New(avr.IRQ_PCINT1, func(interrupt.Interrupt) { vector(irq.PCINT(1)) })
	interrupt.New(avr.IRQ_PCINT2, func(interrupt.Interrupt) { vector(irq.PCINT(2)) })
	interrupt.New(avr.IRQ_PCINT3, func(interrupt.Interrupt) { vector(irq.PCINT(3)) })
}

// ----------------------------- I²C (AVR) -------------------------------------

// DefaultI2C returns a bit-banged bus on the board's soft-I²C pins at
// 100 kHz.
func DefaultI2C(b boards.Board) (drivers.I2C, error) {
	if !b.HasI2C() {
		return nil, errcode.New(errcode.PeripheralAbsent, "platform.DefaultI2C", b.Name+": no i2c pins")
	}
	bus := i2csoft.New(machinePin(b.Aux.I2CSCL), machinePin(b.Aux.I2CSDA))
	if err := bus.Configure(i2csoft.I2CConfig{Frequency: 100 * machine.KHz}); err != nil {
		return nil, err
	}
	return bus, nil
}

// machinePin converts a PinRef to TinyGo's numbering: eight pins per port,
// port A first.
func machinePin(p pins.PinRef) machine.Pin {
	return machine.Pin((int(p.Port)-1)*8 + int(p.Bit))
}
