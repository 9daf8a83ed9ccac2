package pinsim

import (
	"testing"

	"diskhal-go/hal/boards"
	"diskhal-go/hal/irq"
	"diskhal-go/hal/pins"
	"diskhal-go/hal/signal"
)

func board(t *testing.T, v boards.Variant) boards.Board {
	t.Helper()
	b, err := boards.Lookup(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestSharedLineDrive(t *testing.T) {
	s := New(board(t, boards.Example))
	if !s.Level(signal.Data) {
		t.Fatal("lines start released")
	}
	// DDR=1 with PORT=0 pulls PA1 low.
	s.Store(pins.DDR(pins.PortA), 0x02)
	if s.Level(signal.Data) {
		t.Fatal("DATA should be low")
	}
	if s.Load(pins.PIN(pins.PortA))&0x02 != 0 {
		t.Fatal("PIN should sample the low line")
	}
	// Driving high on the same pin releases the wired-AND net.
	s.Store(pins.PORT(pins.PortA), 0x02)
	if !s.Level(signal.Data) {
		t.Fatal("DATA should be high")
	}
}

func TestSplitInvertedDrive(t *testing.T) {
	s := New(board(t, boards.Shadowolf2))
	s.Store(pins.DDR(pins.PortA), 0xF0)
	if !s.Level(signal.Clock) {
		t.Fatal("PORT clear must leave the inverted stage off")
	}
	s.Store(pins.PORT(pins.PortA), 0x40)
	if s.Level(signal.Clock) {
		t.Fatal("PA6 high should pull CLOCK low through the inverter")
	}
	if got := s.Load(pins.PIN(pins.PortA)); got&0x04 != 0 || got&0x40 == 0 {
		t.Fatalf("PIN = %#02x", got)
	}
}

func TestSplitNonInvertedDrive(t *testing.T) {
	s := New(board(t, boards.PetSDPlus))
	s.Store(pins.DDR(pins.PortC), 0x40)
	if s.Level(signal.Data) {
		t.Fatal("non-inverted output at 0 should pull DATA low")
	}
	s.Store(pins.PORT(pins.PortC), 0x40)
	if !s.Level(signal.Data) {
		t.Fatal("DATA should be released")
	}
}

func TestExternalPullAndPinToggle(t *testing.T) {
	s := New(board(t, boards.UIEC))
	s.Pull(signal.ATN, true)
	if s.Load(pins.PIN(pins.PortE))&0x40 != 0 {
		t.Fatal("ATN pulled by the host must read low")
	}
	s.Pull(signal.ATN, false)

	s.Store(pins.PORT(pins.PortE), 0x04)
	s.Store(pins.PIN(pins.PortE), 0x05)
	if got := s.Load(pins.PORT(pins.PortE)); got != 0x01 {
		t.Fatalf("writing PIN should toggle PORT: %#02x", got)
	}
}

func TestDedicatedInterrupt(t *testing.T) {
	s := New(board(t, boards.UIEC))
	var got []irq.Vector
	s.SetVectorHandler(func(v irq.Vector) { got = append(got, v) })

	// INT6, falling edge only.
	s.Store(pins.EICRB, 0x20)
	s.Pull(signal.ATN, true)
	if s.Load(pins.EIFR) != 0x40 || len(got) != 0 {
		t.Fatalf("masked edge should only latch the flag: eifr=%#02x fired=%v", s.Load(pins.EIFR), got)
	}
	s.Store(pins.EIFR, 0x40)
	if s.Load(pins.EIFR) != 0 {
		t.Fatal("flags clear on writing one")
	}

	s.Store(pins.EIMSK, 0x40)
	s.Pull(signal.ATN, false)
	if len(got) != 0 {
		t.Fatal("rising edge must not fire a falling-edge line")
	}
	s.Pull(signal.ATN, true)
	if len(got) != 1 || got[0] != irq.INT(6) {
		t.Fatalf("fired %v", got)
	}
}

func TestGroupInterrupt(t *testing.T) {
	s := New(board(t, boards.Shadowolf2))
	var got []irq.Vector
	s.SetVectorHandler(func(v irq.Vector) { got = append(got, v) })

	s.Pull(signal.Clock, true)
	if s.Load(pins.PCIFR) != 0 {
		t.Fatal("pin not in PCMSK must not flag the group")
	}
	s.Store(pins.PCMSK(0), 0x04)
	s.Pull(signal.Clock, false)
	if s.Load(pins.PCIFR) != 0x01 || len(got) != 0 {
		t.Fatal("group disabled in PCICR should only latch")
	}
	s.Store(pins.PCICR, 0x01)
	s.Pull(signal.Clock, true)
	s.Pull(signal.Data, true)
	if len(got) != 1 || got[0] != irq.PCINT(0) {
		t.Fatalf("fired %v", got)
	}
}

func TestWithIEEE(t *testing.T) {
	b := board(t, boards.PetSDPlus)
	s := New(b, WithIEEE())
	s.Pull(signal.D7, true)
	if s.Load(pins.PIN(pins.PortD))&0x80 != 0 {
		t.Fatal("D7 lives on PD7")
	}
	if !s.Level(signal.Clock) {
		t.Fatal("serial nets are not wired in IEEE mode")
	}
}
