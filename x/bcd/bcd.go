// Package bcd converts two-digit values to and from packed binary-coded
// decimal, the format clock chips keep their time registers in.
package bcd

import "golang.org/x/exp/constraints"

// Encode packs v (0..99) as tens<<4 | ones. Larger values are not checked.
func Encode[T constraints.Integer](v T) uint8 {
	return uint8(v/10)<<4 | uint8(v%10)
}

// Decode unpacks a BCD byte into its decimal value.
func Decode[T constraints.Integer](b uint8) T {
	return T(b>>4)*10 + T(b&0x0F)
}
