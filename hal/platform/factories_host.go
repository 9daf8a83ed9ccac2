// hal/platform/factories_host.go
//go:build !avr

package platform

import (
	"errors"
	"sync"

	"tinygo.org/x/drivers"

	"diskhal-go/hal/boards"
	"diskhal-go/hal/irq"
	"diskhal-go/hal/pins"
	"diskhal-go/hal/pins/pinsim"
)

// ------------------------- Registers (host) ----------------------------------

// DefaultRegisters returns a simulated register file wired from b.
func DefaultRegisters(b boards.Board) pins.Registers { return pinsim.New(b) }

// AttachVectors routes the simulator's interrupt vectors to fn. Other
// register backends are left alone.
func AttachVectors(regs pins.Registers, fn func(irq.Vector)) {
	if s, ok := regs.(*pinsim.Sim); ok {
		s.SetVectorHandler(fn)
	}
}

// ----------------------------- I²C (host) ------------------------------------

// ErrNoDevice is returned by HostI2C for every transfer.
var ErrNoDevice = errors.New("platform: no device on host i2c")

// HostI2C implements tinygo drivers.I2C with nothing attached: every address
// NACKs, so clock drivers report NotFound on the host.
type HostI2C struct {
	mu     sync.Mutex
	LastTx struct {
		Addr uint16
		W    []byte
		Rn   int
	}
}

func (h *HostI2C) Tx(addr uint16, w, r []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LastTx.Addr = addr
	h.LastTx.W = append([]byte(nil), w...)
	h.LastTx.Rn = len(r)
	return ErrNoDevice
}

// DefaultI2C returns an inert host bus.
func DefaultI2C(boards.Board) (drivers.I2C, error) { return &HostI2C{}, nil }
