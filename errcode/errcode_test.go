package errcode

import (
	"errors"
	"testing"
)

func TestCodesAreStableStrings(t *testing.T) {
	cases := map[string]Code{
		"ok":                OK,
		"unbound_signal":    UnboundSignal,
		"unknown_variant":   UnknownVariant,
		"invalid_pin":       InvalidPin,
		"invalid_irq":       InvalidIRQ,
		"peripheral_absent": PeripheralAbsent,
		"clock_invalid":     ClockInvalid,
		"error":             Error,
	}
	for want, c := range cases {
		if c.Error() != want {
			t.Fatalf("code %q mismatch: got %q", want, c.Error())
		}
	}
}

func TestOf(t *testing.T) {
	if Of(nil) != OK {
		t.Fatal("nil should map to ok")
	}
	if Of(PeripheralAbsent) != PeripheralAbsent {
		t.Fatal("bare code not preserved")
	}
	cause := errors.New("nack")
	e := &E{C: UnboundSignal, Op: "boards.Validate", Msg: "iec_atn", Err: cause}
	if Of(e) != UnboundSignal {
		t.Fatalf("wrapped code lost: %v", Of(e))
	}
	if !errors.Is(e, cause) {
		t.Fatal("Unwrap should expose the cause")
	}
	if got := e.Error(); got != "boards.Validate: unbound_signal: iec_atn" {
		t.Fatalf("Error() = %q", got)
	}
	if Of(errors.New("x")) != Error {
		t.Fatal("foreign error should map to generic code")
	}
}
