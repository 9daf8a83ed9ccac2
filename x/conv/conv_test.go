package conv

import "testing"

func TestUtoa(t *testing.T) {
	var buf [20]byte
	for _, c := range []struct {
		n    uint64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{1984, "1984"},
		{18446744073709551615, "18446744073709551615"},
	} {
		if got := string(Utoa(buf[:], c.n)); got != c.want {
			t.Fatalf("Utoa(%d) = %q", c.n, got)
		}
	}
	if got := Utoa(nil, 5); len(got) != 0 {
		t.Fatal("empty buffer")
	}
}

func TestPad2(t *testing.T) {
	var buf [2]byte
	for n, want := range map[uint8]string{0: "00", 5: "05", 42: "42", 124: "24"} {
		if got := string(Pad2(buf[:], n)); got != want {
			t.Fatalf("Pad2(%d) = %q", n, got)
		}
	}
	if len(Pad2(buf[:1], 3)) != 0 {
		t.Fatal("short buffer")
	}
}

func TestHex8(t *testing.T) {
	var buf [2]byte
	for n, want := range map[uint8]string{0x00: "00", 0x0F: "0F", 0xA5: "A5", 0xFF: "FF"} {
		if got := string(Hex8(buf[:], n)); got != want {
			t.Fatalf("Hex8(%#x) = %q", n, got)
		}
	}
}
