// cmd/halprobe/main.go
package main

import (
	"time"

	"diskhal-go/hal"
	"diskhal-go/hal/pins"
	"diskhal-go/hal/signal"
	"diskhal-go/x/conv"
)

// ---------- Configuration ----------

const (
	// Allow the serial console to come up before we print.
	bootDelay = 2 * time.Second

	samplePeriod = 1 * time.Second

	// Samples between clock reads.
	clockEvery = 10
)

// ---------- Register dump ----------

func dumpPorts(regs pins.Registers) {
	var buf [2]byte
	for p := pins.PortA; int(p) < pins.Ports; p++ {
		ddr := regs.Load(pins.DDR(p))
		port := regs.Load(pins.PORT(p))
		if ddr == 0 && port == 0 {
			continue
		}
		d := string(conv.Hex8(buf[:], ddr))
		o := string(conv.Hex8(buf[:], port))
		println("[halprobe] port", p.String(), "ddr", d, "port", o)
	}
}

// ---------- Sampling ----------

func sampleIEC(h *hal.HAL) {
	if h.IEC == nil {
		return
	}
	println("[halprobe] iec", h.IEC.Read().String(), "atn irqs", h.IRQ.Hits(signal.ATN))
}

func sampleIEEE(h *hal.HAL) {
	if h.IEEE == nil {
		return
	}
	var buf [2]byte
	data := string(conv.Hex8(buf[:], h.IEEE.ReadData()))
	println("[halprobe] ieee data", data,
		"atn", h.IEEE.Get(signal.IEEEATN),
		"ifc", h.IEEE.Get(signal.IFC),
		"atn irqs", h.IRQ.Hits(signal.IEEEATN))
}

// armATN enables the ATN interrupts; the router counts them.
func armATN(h *hal.HAL) {
	if h.IEC != nil && h.IRQ.Bound(signal.ATN) {
		h.IEC.ArmInterrupt(signal.ATN, true)
	}
	if h.IEEE != nil && h.IRQ.Bound(signal.IEEEATN) {
		h.IEEE.ArmInterrupt(signal.IEEEATN, true)
	}
}

// ---------- Main ----------

func main() {
	time.Sleep(bootDelay)
	println("[halprobe] boot")

	h := hal.New(hal.DefaultConfig())
	h.Init()

	println("[halprobe] board", h.Board.Name, "mcu", h.Board.MCU)
	println("[halprobe] rtc", h.RTC.State().String(), h.Now().String())
	dumpPorts(h.Regs)
	armATN(h)

	tick := time.NewTicker(samplePeriod)
	defer tick.Stop()

	n := 0
	for range tick.C {
		sampleIEC(h)
		sampleIEEE(h)
		n++
		if n%clockEvery == 0 {
			println("[halprobe] time", h.Now().String())
		}
	}
}
