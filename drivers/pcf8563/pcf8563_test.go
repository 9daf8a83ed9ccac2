package pcf8563

import (
	"errors"
	"testing"

	"diskhal-go/hal/rtc"
)

// fakeChip models the register file behind a register-pointer I²C device.
type fakeChip struct {
	regs    [16]byte
	absent  bool
	failRd  bool
	writes  int
	ctrlLog []byte
}

var errNack = errors.New("nack")

func (f *fakeChip) Tx(addr uint16, w, r []byte) error {
	if f.absent || addr != Address {
		return errNack
	}
	if len(w) == 0 {
		return errNack
	}
	reg := int(w[0])
	if len(w) > 1 {
		f.writes++
		for i, b := range w[1:] {
			f.regs[(reg+i)%len(f.regs)] = b
		}
		if reg == RegCtrl1 {
			f.ctrlLog = append(f.ctrlLog, w[1])
		}
		// Writing the seconds register clears VL.
		if reg <= RegSeconds && reg+len(w)-1 > RegSeconds {
			f.regs[RegSeconds] &^= secondsVL
		}
	}
	if len(r) > 0 {
		if f.failRd {
			return errNack
		}
		for i := range r {
			r[i] = f.regs[(reg+i)%len(f.regs)]
		}
	}
	return nil
}

func TestInitNotFound(t *testing.T) {
	d := New(&fakeChip{absent: true})
	d.Init()
	if d.State() != rtc.NotFound {
		t.Fatalf("state = %v", d.State())
	}
	tm := rtc.CalendarTime{Year: 124, Mon: 2, MDay: 5}
	d.Read(&tm)
	if tm != rtc.DefaultTime {
		t.Fatalf("Read = %+v, want default", tm)
	}
	d.Set(rtc.CalendarTime{Year: 124})
	if d.State() != rtc.NotFound {
		t.Fatal("Set must not revive a missing chip")
	}
}

func TestInitOK(t *testing.T) {
	chip := &fakeChip{}
	chip.regs[RegCtrl1] = ctrl1Stop
	d := New(chip)
	d.Init()
	if d.State() != rtc.OK {
		t.Fatalf("state = %v", d.State())
	}
	if chip.regs[RegCtrl1] != ctrl1Start {
		t.Fatal("Init must start the oscillator")
	}
	if chip.regs[RegClkout] != 0x80 {
		t.Fatalf("CLKOUT = %#02x", chip.regs[RegClkout])
	}
}

func TestInitSecondsReadFails(t *testing.T) {
	d := New(&fakeChip{failRd: true})
	d.Init()
	if d.State() != rtc.NotFound {
		t.Fatalf("state = %v", d.State())
	}
}

func TestInvalidUntilSet(t *testing.T) {
	chip := &fakeChip{}
	chip.regs[RegSeconds] = 0x80 | 0x42
	d := New(chip)
	d.Init()
	if d.State() != rtc.Invalid {
		t.Fatalf("state = %v", d.State())
	}
	var tm rtc.CalendarTime
	d.Read(&tm)
	if tm != rtc.DefaultTime {
		t.Fatal("an invalid clock reads the default time")
	}

	want := rtc.CalendarTime{Sec: 30, Min: 59, Hour: 23, MDay: 31, WDay: 6, Mon: 11, Year: 123}
	d.Set(want)
	if d.State() != rtc.OK {
		t.Fatalf("state after Set = %v", d.State())
	}
	if chip.regs[RegSeconds]&secondsVL != 0 {
		t.Fatal("VL still set")
	}
	d.Read(&tm)
	if tm != want {
		t.Fatalf("Read = %+v, want %+v", tm, want)
	}
}

func TestSetSequence(t *testing.T) {
	chip := &fakeChip{}
	d := New(chip)
	d.Init()
	chip.ctrlLog = nil
	d.Set(rtc.CalendarTime{MDay: 1, Year: 100})
	if len(chip.ctrlLog) != 2 || chip.ctrlLog[0] != ctrl1Stop || chip.ctrlLog[1] != ctrl1Start {
		t.Fatalf("CTRL1 writes = %x", chip.ctrlLog)
	}
}

func TestWorkedExample(t *testing.T) {
	chip := &fakeChip{}
	d := New(chip)
	d.Init()
	in := rtc.CalendarTime{Sec: 0, Min: 7, Hour: 13, MDay: 5, WDay: 2, Mon: 2, Year: 124}
	d.Set(in)
	if got := chip.regs[RegMonths]; got != 0x83 {
		t.Fatalf("month register = %#02x, want 0x83", got)
	}
	if got := chip.regs[RegYears]; got != 0x24 {
		t.Fatalf("year register = %#02x, want 0x24", got)
	}
	if chip.regs[RegMinutes] != 0x07 || chip.regs[RegHours] != 0x13 || chip.regs[RegDays] != 0x05 {
		t.Fatalf("registers = % x", chip.regs[RegSeconds:RegYears+1])
	}
	var out rtc.CalendarTime
	d.Read(&out)
	if out != in {
		t.Fatalf("Read = %+v, want %+v", out, in)
	}
}

func TestCentury(t *testing.T) {
	cases := []struct {
		year    uint8
		month   byte
		yearReg byte
	}{
		{99, 0x01, 0x99},
		{100, 0x81, 0x00},
		{199, 0x81, 0x99},
	}
	for _, c := range cases {
		var b [7]byte
		in := rtc.CalendarTime{MDay: 1, Year: c.year}
		encode(b[:], in)
		if b[5] != c.month || b[6] != c.yearReg {
			t.Fatalf("year %d: month=%#02x year=%#02x", c.year, b[5], b[6])
		}
		if got := decode(b[:]); got != in {
			t.Fatalf("year %d: decode = %+v", c.year, got)
		}
	}
}

func TestDecodeMasksReservedBits(t *testing.T) {
	b := []byte{0x80 | 0x59, 0x80 | 0x30, 0xC0 | 0x23, 0xC0 | 0x31, 0xF8 | 0x07, 0x60 | 0x12, 0x99}
	got := decode(b)
	want := rtc.CalendarTime{Sec: 59, Min: 30, Hour: 23, MDay: 31, WDay: 6, Mon: 11, Year: 99}
	if got != want {
		t.Fatalf("decode = %+v, want %+v", got, want)
	}
}

func TestReadFailureKeepsDefault(t *testing.T) {
	chip := &fakeChip{}
	d := New(chip)
	d.Init()
	d.Set(rtc.CalendarTime{MDay: 9, Mon: 4, Year: 124})
	chip.failRd = true
	var tm rtc.CalendarTime
	d.Read(&tm)
	if tm != rtc.DefaultTime {
		t.Fatalf("Read = %+v", tm)
	}
	if d.State() != rtc.OK {
		t.Fatal("runtime transport errors do not change the state")
	}
}

func TestConfigureAddress(t *testing.T) {
	d := New(&fakeChip{})
	d.Configure(Config{Address: 0x52})
	d.Init()
	if d.State() != rtc.NotFound {
		t.Fatal("wrong address must not answer")
	}
	d.Configure(Config{})
	if d.bus.Addr != 0x52 {
		t.Fatal("zero config keeps the address")
	}
}
