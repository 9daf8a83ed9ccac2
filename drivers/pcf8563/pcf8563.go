// Package pcf8563 drives the NXP PCF8563 real-time clock over I²C.
//
// The chip keeps time in seven BCD registers starting at VL_seconds. Bit 7
// of that register (VL) is set when the supply dropped below the minimum
// since the clock was last written; the driver reports such a clock as
// rtc.Invalid until the next Set.
//
// Only Init reports a missing chip. Later transport errors leave the state
// untouched: Read keeps the default time and Set still marks the clock OK.
package pcf8563

import (
	"tinygo.org/x/drivers"

	"diskhal-go/hal/rtc"
	"diskhal-go/x/bcd"
)

// Address is the 7-bit I²C address (0xA2 on the wire).
const Address = 0x51

// Registers.
const (
	RegCtrl1   = 0x00
	RegCtrl2   = 0x01
	RegSeconds = 0x02 // VL_seconds
	RegMinutes = 0x03
	RegHours   = 0x04
	RegDays    = 0x05
	RegWeekday = 0x06
	RegMonths  = 0x07 // Century_months
	RegYears   = 0x08
	RegClkout  = 0x0D
)

const (
	ctrl1Stop  = 0x20
	ctrl1Start = 0x00

	// CLKOUT enabled at 32.768 kHz.
	clkout32k = 0x80

	secondsVL    = 0x80
	monthCentury = 0x80
)

// Config controls non-hardware behaviour. All fields are optional.
type Config struct {
	// Address defaults to 0x51 if zero.
	Address uint16
}

// Device is a PCF8563 on an I²C bus. It implements rtc.Driver.
type Device struct {
	bus   *rtc.Bus
	state rtc.State
	buf   [7]byte
}

var _ rtc.Driver = (*Device)(nil)

// New creates a driver on an already configured bus. It does not touch the
// chip; call Init.
func New(i2c drivers.I2C) *Device {
	return &Device{bus: rtc.NewBus(i2c, Address)}
}

// Configure applies cfg. Call before Init.
func (d *Device) Configure(cfg Config) {
	if cfg.Address != 0 {
		d.bus.Addr = cfg.Address
	}
}

// State returns the clock state established by Init and Set.
func (d *Device) State() rtc.State { return d.state }

// Init starts the oscillator and probes the chip. A write failure leaves the
// state NotFound. Otherwise the VL bit decides between Invalid and OK, and
// CLKOUT is switched to 32.768 kHz.
func (d *Device) Init() {
	d.state = rtc.NotFound
	if err := d.bus.WriteRegister(RegCtrl1, ctrl1Start); err != nil {
		println("[rtc] pcf8563 not found")
		return
	}
	sec := d.buf[:1]
	if err := d.bus.ReadRegisters(RegSeconds, sec); err != nil {
		println("[rtc] pcf8563 read failed:", err.Error())
		return
	}
	if sec[0]&secondsVL != 0 {
		d.state = rtc.Invalid
	} else {
		d.state = rtc.OK
	}
	_ = d.bus.WriteRegister(RegClkout, clkout32k)
	println("[rtc] pcf8563", d.state.String())
}

// Read fills t with the current time. Unless the clock is OK, or when the
// burst read fails, t holds rtc.DefaultTime.
func (d *Device) Read(t *rtc.CalendarTime) {
	*t = rtc.DefaultTime
	if d.state != rtc.OK {
		return
	}
	b := d.buf[:]
	if err := d.bus.ReadRegisters(RegSeconds, b); err != nil {
		return
	}
	*t = decode(b)
}

// Set stops the clock, writes t and restarts it. The clock is OK afterwards;
// writing the seconds register clears VL. Nothing happens when the chip was
// not found.
func (d *Device) Set(t rtc.CalendarTime) {
	if d.state == rtc.NotFound {
		return
	}
	_ = d.bus.WriteRegister(RegCtrl1, ctrl1Stop)
	encode(d.buf[:], t)
	_ = d.bus.WriteRegisters(RegSeconds, d.buf[:])
	_ = d.bus.WriteRegister(RegCtrl1, ctrl1Start)
	d.state = rtc.OK
}

// decode converts the seven time registers. Reserved bits are masked off
// before BCD decoding. Weekday and month are stored 1-based.
func decode(b []byte) rtc.CalendarTime {
	t := rtc.CalendarTime{
		Sec:  bcd.Decode[uint8](b[0] & 0x7F),
		Min:  bcd.Decode[uint8](b[1] & 0x7F),
		Hour: bcd.Decode[uint8](b[2] & 0x3F),
		MDay: bcd.Decode[uint8](b[3] & 0x3F),
		WDay: (bcd.Decode[uint8](b[4]&0x07) + 6) % 7,
		Mon:  bcd.Decode[uint8](b[5]&0x1F) - 1,
		Year: bcd.Decode[uint8](b[6]),
	}
	if b[5]&monthCentury != 0 {
		t.Year += 100
	}
	return t
}

// encode is the inverse of decode. The century flag is set from 2000 on.
func encode(b []byte, t rtc.CalendarTime) {
	b[0] = bcd.Encode(t.Sec)
	b[1] = bcd.Encode(t.Min)
	b[2] = bcd.Encode(t.Hour)
	b[3] = bcd.Encode(t.MDay)
	b[4] = bcd.Encode(t.WDay + 1)
	b[5] = bcd.Encode(t.Mon + 1)
	if t.Century() {
		b[5] |= monthCentury
	}
	b[6] = bcd.Encode(t.Year % 100)
}
