package rtc

import (
	"errors"

	"tinygo.org/x/drivers"
)

// ErrTooLong is returned by WriteRegisters for writes beyond the buffer.
var ErrTooLong = errors.New("rtc: register write too long")

// Bus is register-oriented access to one chip on an I²C bus: a register
// pointer followed by a burst of bytes. The transport itself (hardware TWI
// or bit-banged) is supplied by the caller.
type Bus struct {
	i2c  drivers.I2C
	Addr uint16 // 7-bit address

	w [9]byte
}

// NewBus binds a device address on i2c.
func NewBus(i2c drivers.I2C, addr uint16) *Bus {
	return &Bus{i2c: i2c, Addr: addr}
}

// ReadRegisters reads len(buf) consecutive registers starting at reg.
func (b *Bus) ReadRegisters(reg uint8, buf []byte) error {
	b.w[0] = reg
	return b.i2c.Tx(b.Addr, b.w[:1], buf)
}

// WriteRegisters writes data to consecutive registers starting at reg.
func (b *Bus) WriteRegisters(reg uint8, data []byte) error {
	if len(data) > len(b.w)-1 {
		return ErrTooLong
	}
	b.w[0] = reg
	n := copy(b.w[1:], data)
	return b.i2c.Tx(b.Addr, b.w[:1+n], nil)
}

// WriteRegister writes a single register.
func (b *Bus) WriteRegister(reg, v uint8) error {
	b.w[0] = reg
	b.w[1] = v
	return b.i2c.Tx(b.Addr, b.w[:2], nil)
}
