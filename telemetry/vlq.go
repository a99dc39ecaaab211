package telemetry

// EncodeVLQInt appends one report field to out. Small values such as the
// mode and sample count take a single byte; a 12-bit sample takes two.
func EncodeVLQInt(out OutputBuffer, v int32) {
	if !(-(1<<26) <= v && v < (3<<26)) {
		out.Output([]byte{byte((v>>28)&0x7F) | 0x80})
	}
	if !(-(1<<19) <= v && v < (3<<19)) {
		out.Output([]byte{byte((v>>21)&0x7F) | 0x80})
	}
	if !(-(1<<12) <= v && v < (3<<12)) {
		out.Output([]byte{byte((v>>14)&0x7F) | 0x80})
	}
	if !(-(1<<5) <= v && v < (3<<5)) {
		out.Output([]byte{byte((v>>7)&0x7F) | 0x80})
	}
	out.Output([]byte{byte(v & 0x7F)})
}

// EncodeVLQUint encodes an iteration counter or sample. Values at or above
// 1<<31 still round-trip through DecodeVLQUint.
func EncodeVLQUint(out OutputBuffer, v uint32) {
	EncodeVLQInt(out, int32(v))
}

// DecodeVLQInt takes one field off the front of a report payload. A field
// cut off by the end of the payload is ErrShortFrame.
func DecodeVLQInt(data *[]byte) (int32, error) {
	if len(*data) == 0 {
		return 0, ErrShortFrame
	}
	c := uint32((*data)[0])
	*data = (*data)[1:]

	v := c & 0x7F
	if c&0x60 == 0x60 {
		// sign extend
		v |= ^uint32(0x1F)
	}
	for c&0x80 != 0 {
		if len(*data) == 0 {
			return 0, ErrShortFrame
		}
		c = uint32((*data)[0])
		*data = (*data)[1:]
		v = v<<7 | c&0x7F
	}
	return int32(v), nil
}

// DecodeVLQUint is DecodeVLQInt for the payload's unsigned fields.
func DecodeVLQUint(data *[]byte) (uint32, error) {
	v, err := DecodeVLQInt(data)
	return uint32(v), err
}
