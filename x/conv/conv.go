// Package conv formats integers into caller-owned buffers without fmt or
// strconv, so it is usable from interrupt-adjacent MCU code.
package conv

const hexDigits = "0123456789ABCDEF"

// Utoa writes the base-10 form of n into the tail of buf and returns the
// used slice. 20 bytes hold any uint64; a shorter buf truncates the most
// significant digits.
func Utoa(buf []byte, n uint64) []byte {
	i := len(buf)
	if i == 0 {
		return buf
	}
	if n == 0 {
		buf[i-1] = '0'
		return buf[i-1:]
	}
	for n > 0 && i > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return buf[i:]
}

// Hex writes the low digits nibbles of n as zero-padded uppercase hex,
// without a prefix. It returns an empty slice when buf is too short.
func Hex(buf []byte, n uint64, digits int) []byte {
	if digits <= 0 || len(buf) < digits {
		return buf[:0]
	}
	i := len(buf)
	for j := 0; j < digits; j++ {
		i--
		buf[i] = hexDigits[n&0xF]
		n >>= 4
	}
	return buf[i:]
}
