package rtc

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"diskhal-go/errcode"
)

type fakeI2C struct {
	addr uint16
	w    []byte
	resp []byte
	err  error
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	f.addr = addr
	f.w = append([]byte(nil), w...)
	copy(r, f.resp)
	return f.err
}

func TestStateErr(t *testing.T) {
	if OK.Err() != nil {
		t.Fatal("OK carries no error")
	}
	if errcode.Of(NotFound.Err()) != errcode.PeripheralAbsent {
		t.Fatal("NotFound should be peripheral_absent")
	}
	if errcode.Of(Invalid.Err()) != errcode.ClockInvalid {
		t.Fatal("Invalid should be clock_invalid")
	}
	if NotFound.String() != "not found" || OK.String() != "ok" || State(9).String() != "unknown" {
		t.Fatal("state names")
	}
}

func TestNoneDriver(t *testing.T) {
	var d Driver = None{}
	d.Init()
	if d.State() != NotFound {
		t.Fatal("None is never found")
	}
	tm := CalendarTime{Year: 124, Mon: 5, MDay: 9}
	d.Set(tm)
	d.Read(&tm)
	if tm != DefaultTime {
		t.Fatalf("Read = %+v", tm)
	}
}

func TestDefaultTime(t *testing.T) {
	got := DefaultTime.Time()
	want := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DefaultTime = %v", got)
	}
	if got.Weekday() != time.Weekday(DefaultTime.WDay) {
		t.Fatalf("weekday %v does not match %d", got.Weekday(), DefaultTime.WDay)
	}
	if DefaultTime.String() != "2000-01-01 00:00:00" {
		t.Fatalf("String() = %q", DefaultTime.String())
	}
}

func TestTimeConversion(t *testing.T) {
	tm := time.Date(2024, time.March, 5, 13, 7, 0, 0, time.UTC)
	c := FromTime(tm)
	want := CalendarTime{Sec: 0, Min: 7, Hour: 13, MDay: 5, WDay: 2, Mon: 2, Year: 124}
	if c != want {
		t.Fatalf("FromTime = %+v", c)
	}
	if !c.Time().Equal(tm) {
		t.Fatalf("Time() = %v", c.Time())
	}
	if !c.Century() {
		t.Fatal("2024 is past the century")
	}
	if (CalendarTime{Year: 99}).Century() {
		t.Fatal("1999 is not")
	}
	if c.String() != "2024-03-05 13:07:00" {
		t.Fatalf("String() = %q", c.String())
	}
}

func TestFromTimeClampsYear(t *testing.T) {
	late := FromTime(time.Date(2150, time.June, 1, 0, 0, 0, 0, time.UTC))
	if late.Year != MaxYear {
		t.Fatalf("2150 -> Year %d", late.Year)
	}
	early := FromTime(time.Date(1850, time.June, 1, 0, 0, 0, 0, time.UTC))
	if early.Year != 0 {
		t.Fatalf("1850 -> Year %d", early.Year)
	}
}

func TestBus(t *testing.T) {
	f := &fakeI2C{resp: []byte{0x11, 0x22, 0x33}}
	b := NewBus(f, 0x51)

	buf := make([]byte, 3)
	if err := b.ReadRegisters(0x02, buf); err != nil {
		t.Fatal(err)
	}
	if f.addr != 0x51 || !bytes.Equal(f.w, []byte{0x02}) || !bytes.Equal(buf, f.resp) {
		t.Fatalf("read: addr=%#x w=%x buf=%x", f.addr, f.w, buf)
	}

	if err := b.WriteRegisters(0x02, []byte{1, 2, 3, 4, 5, 6, 7}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(f.w, []byte{0x02, 1, 2, 3, 4, 5, 6, 7}) {
		t.Fatalf("burst write = %x", f.w)
	}
	if err := b.WriteRegisters(0, make([]byte, 9)); err != ErrTooLong {
		t.Fatalf("got %v", err)
	}

	if err := b.WriteRegister(0x0D, 0x80); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(f.w, []byte{0x0D, 0x80}) {
		t.Fatalf("write = %x", f.w)
	}

	f.err = errors.New("nack")
	if err := b.WriteRegister(0, 0); err == nil {
		t.Fatal("transport errors pass through")
	}
}
