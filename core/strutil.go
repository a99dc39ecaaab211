package core

// FieldWidth is the width of a sample field on screen. Shorter values are
// padded with spaces so a previously longer value is fully overwritten.
const FieldWidth = 8

// itoa converts an integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func itoa(n int) string {
	if n < 0 {
		// negating in uint64 also covers the most negative int
		return "-" + utoa(-uint64(n))
	}
	return utoa(uint64(n))
}

// utoa converts an unsigned integer to a string
func utoa(n uint64) string {
	var buf [20]byte
	return string(appendUint(buf[:0], n))
}

// appendUint appends the decimal digits of n to dst.
func appendUint(dst []byte, n uint64) []byte {
	if n == 0 {
		return append(dst, '0')
	}

	// Count digits
	digits := 0
	for temp := n; temp > 0; temp /= 10 {
		digits++
	}

	start := len(dst)
	for i := 0; i < digits; i++ {
		dst = append(dst, 0)
	}

	// Fill from right to left
	pos := start + digits - 1
	for n > 0 {
		dst[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}
	return dst
}

// Itoa is the exported form of itoa for targets without fmt.
func Itoa(n int) string {
	return itoa(n)
}

// FormatSample writes v as decimal into buf, padded on the right with
// spaces to FieldWidth, and returns the used part of buf. Values wider than
// the field are written in full.
func FormatSample(buf *[FieldWidth]byte, v uint32) []byte {
	out := appendUint(buf[:0], uint64(v))
	for len(out) < FieldWidth {
		out = append(out, ' ')
	}
	return out
}

// SampleText is FormatSample returning a string.
func SampleText(v uint32) string {
	var buf [FieldWidth]byte
	return string(FormatSample(&buf, v))
}
