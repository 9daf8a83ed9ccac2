// hal/hal.go
package hal

import (
	"tinygo.org/x/drivers"

	"diskhal-go/drivers/pcf8563"
	"diskhal-go/hal/boards"
	"diskhal-go/hal/iec"
	"diskhal-go/hal/ieee"
	"diskhal-go/hal/irq"
	"diskhal-go/hal/pins"
	"diskhal-go/hal/platform"
	"diskhal-go/hal/rtc"
)

// -----------------------------------------------------------------------------
// Configuration
// -----------------------------------------------------------------------------

// RTCKind selects the clock driver.
type RTCKind uint8

const (
	RTCNone RTCKind = iota
	RTCPCF8563
)

// BusSelect picks the active bus on boards that multiplex both onto the
// same pins.
type BusSelect uint8

const (
	// BusAuto uses the serial bus when the board has one.
	BusAuto BusSelect = iota
	BusIEC
	BusIEEE
)

// Config describes how the HAL is assembled. Zero fields take defaults:
// Board falls back to boards.Selected and Regs to the platform backend.
type Config struct {
	Board      boards.Board
	Regs       pins.Registers
	Bus        BusSelect
	I2C        drivers.I2C
	RTC        RTCKind
	RTCAddress uint16 // 0 = chip default
}

// DefaultConfig returns the build-selected board with a PCF8563 on the
// platform I²C bus when one is available. Regs is left nil so New builds the
// platform backend for the bus actually in use.
func DefaultConfig() Config {
	cfg := Config{Board: boards.Selected}
	i2c, err := platform.DefaultI2C(boards.Selected)
	if err != nil {
		println("[hal] no i2c:", err.Error())
		return cfg
	}
	cfg.I2C = i2c
	cfg.RTC = RTCPCF8563
	return cfg
}

// -----------------------------------------------------------------------------
// HAL
// -----------------------------------------------------------------------------

// HAL bundles the capabilities of one board. IEC or IEEE is nil when the
// board lacks that bus or it was not selected.
type HAL struct {
	Board boards.Board
	Regs  pins.Registers
	IRQ   *irq.Router
	IEC   *iec.Port
	IEEE  *ieee.Port
	RTC   rtc.Driver
}

// New assembles the HAL without touching the hardware; call Init.
func New(cfg Config) *HAL {
	b := cfg.Board
	if b.Name == "" {
		b = boards.Selected
	}
	b = selectBus(b, cfg.Bus)

	regs := cfg.Regs
	if regs == nil {
		regs = platform.DefaultRegisters(b)
	}

	r := irq.New(regs, b.Routes()...)
	platform.AttachVectors(regs, r.Dispatch)

	h := &HAL{
		Board: b,
		Regs:  regs,
		IRQ:   r,
		IEC:   iec.New(b, regs, r),
		IEEE:  ieee.New(b, regs, r),
		RTC:   rtc.None{},
	}
	if cfg.RTC == RTCPCF8563 && cfg.I2C != nil {
		d := pcf8563.New(cfg.I2C)
		d.Configure(pcf8563.Config{Address: cfg.RTCAddress})
		h.RTC = d
	}
	return h
}

// selectBus drops the bus that is not in use. A selection the board cannot
// honour leaves it unchanged.
func selectBus(b boards.Board, sel BusSelect) boards.Board {
	if b.IEC == nil || b.IEEE == nil {
		return b
	}
	switch sel {
	case BusAuto, BusIEC:
		b.IEEE = nil
	case BusIEEE:
		b.IEC = nil
	}
	return b
}

// Init programs the interrupt controller, puts the bus lines in their idle
// state and probes the clock, in that order.
func (h *HAL) Init() {
	h.IRQ.Init()
	if h.IEC != nil {
		h.IEC.Init()
	}
	if h.IEEE != nil {
		h.IEEE.Init()
	}
	h.RTC.Init()
	println("[hal] board", h.Board.Name, "rtc", h.RTC.State().String())
}

// Now returns the clock time, or rtc.DefaultTime when the clock is not OK.
func (h *HAL) Now() rtc.CalendarTime {
	var t rtc.CalendarTime
	h.RTC.Read(&t)
	return t
}
