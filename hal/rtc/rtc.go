// Package rtc is the real-time clock capability of the HAL: the calendar
// value exchanged with clock drivers, the trust state of the clock and the
// Driver interface implemented by chip drivers such as drivers/pcf8563.
//
// A driver never returns an error from Read or Set. A missing chip is
// recorded once at Init as NotFound and every later call degrades to the
// default calendar value or a no-op.
package rtc

import "diskhal-go/errcode"

// State is the trust level of the clock.
type State uint8

const (
	// NotFound: the chip did not answer at Init.
	NotFound State = iota
	// Invalid: the chip answered but lost power since it was last set.
	Invalid
	// OK: time is readable and trustworthy.
	OK
)

func (s State) String() string {
	switch s {
	case NotFound:
		return "not found"
	case Invalid:
		return "invalid"
	case OK:
		return "ok"
	}
	return "unknown"
}

// Err maps the state onto the error vocabulary: nil for OK.
func (s State) Err() error {
	switch s {
	case OK:
		return nil
	case Invalid:
		return errcode.ClockInvalid
	}
	return errcode.PeripheralAbsent
}

// Driver is an RTC chip driver. Init probes the chip and sets State. Read
// fills t with the current time, or with DefaultTime unless State is OK.
// Set writes t to the chip and makes the clock trustworthy; it does nothing
// when the chip is NotFound.
//
// Calls block on the I²C transport and must not be made from an interrupt
// handler.
type Driver interface {
	Init()
	Read(t *CalendarTime)
	Set(t CalendarTime)
	State() State
}

// None is the driver for boards without a clock chip.
type None struct{}

func (None) Init()                {}
func (None) Read(t *CalendarTime) { *t = DefaultTime }
func (None) Set(CalendarTime)     {}
func (None) State() State         { return NotFound }
