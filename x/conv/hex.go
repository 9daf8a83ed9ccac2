package conv

const hexDigits = "0123456789ABCDEF"

// Hex8 writes v as two uppercase hex digits without 0x. buf must hold at
// least 2 bytes.
func Hex8(buf []byte, v uint8) []byte {
	if len(buf) < 2 {
		return buf[:0]
	}
	buf[0] = hexDigits[v>>4]
	buf[1] = hexDigits[v&0xF]
	return buf[:2]
}
