package conv

// Pad2 writes n as exactly two decimal digits, keeping the last two for
// n >= 100. buf must hold at least 2 bytes.
func Pad2(buf []byte, n uint8) []byte {
	if len(buf) < 2 {
		return buf[:0]
	}
	n %= 100
	buf[0] = '0' + n/10
	buf[1] = '0' + n%10
	return buf[:2]
}
