package rtc

import (
	"time"

	"diskhal-go/x/conv"
	"diskhal-go/x/mathx"
)

// CalendarTime is a broken-down time as clock chips store it. Month and
// weekday are 0-based (0 = January, 0 = Sunday); Year counts from 1900, so
// 124 is 2024.
type CalendarTime struct {
	Sec  uint8 // 0-59
	Min  uint8 // 0-59
	Hour uint8 // 0-23
	MDay uint8 // 1-31
	WDay uint8 // 0-6
	Mon  uint8 // 0-11
	Year uint8
}

// DefaultTime is handed out whenever the clock cannot be trusted:
// Saturday 2000-01-01 00:00:00.
var DefaultTime = CalendarTime{MDay: 1, WDay: 6, Mon: 0, Year: 100}

// Century reports whether the year is 2000 or later.
func (c CalendarTime) Century() bool { return c.Year >= 100 }

// Time converts c to a UTC time.Time.
func (c CalendarTime) Time() time.Time {
	return time.Date(1900+int(c.Year), time.Month(c.Mon)+1, int(c.MDay),
		int(c.Hour), int(c.Min), int(c.Sec), 0, time.UTC)
}

// MaxYear is the last year a CalendarTime can carry through a clock chip
// with a single century flag (2099).
const MaxYear = 199

// FromTime converts t to a CalendarTime. Years outside 1900..2099 are
// clamped to that range.
func FromTime(t time.Time) CalendarTime {
	year := mathx.Clamp(t.Year()-1900, 0, MaxYear)
	return CalendarTime{
		Sec:  uint8(t.Second()),
		Min:  uint8(t.Minute()),
		Hour: uint8(t.Hour()),
		MDay: uint8(t.Day()),
		WDay: uint8(t.Weekday()),
		Mon:  uint8(t.Month() - 1),
		Year: uint8(year),
	}
}

// String formats c as "2024-03-05 13:07:00" without fmt.
func (c CalendarTime) String() string {
	var b [19]byte
	var n [4]byte
	y := conv.Utoa(n[:], 1900+uint64(c.Year))
	copy(b[0:4], y)
	b[4], b[7], b[10], b[13], b[16] = '-', '-', ' ', ':', ':'
	conv.Pad2(b[5:7], c.Mon+1)
	conv.Pad2(b[8:10], c.MDay)
	conv.Pad2(b[11:13], c.Hour)
	conv.Pad2(b[14:16], c.Min)
	conv.Pad2(b[17:19], c.Sec)
	return string(b[:])
}
