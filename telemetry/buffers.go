package telemetry

// OutputBuffer receives encoded VLQ bytes.
type OutputBuffer interface {
	Output(data []byte)
}

// ScratchOutput is a fixed OutputBuffer big enough for one frame. Writes
// past the end are dropped.
type ScratchOutput struct {
	buf [FrameMax]byte
	pos int
}

func (s *ScratchOutput) Output(data []byte) {
	s.pos += copy(s.buf[s.pos:], data)
}

// CurPosition is the length of the frame so far.
func (s *ScratchOutput) CurPosition() int {
	return s.pos
}

// Update patches a header byte once the frame length is known.
func (s *ScratchOutput) Update(pos int, val byte) {
	if pos < len(s.buf) {
		s.buf[pos] = val
	}
}

// Result returns everything written since the last Reset.
func (s *ScratchOutput) Result() []byte {
	return s.buf[:s.pos]
}

// Reset empties the buffer.
func (s *ScratchOutput) Reset() {
	s.pos = 0
}

// FifoBuffer is a byte ring used to reassemble frames split across reads.
// One slot is kept free to tell full from empty.
type FifoBuffer struct {
	buf   []byte
	read  int
	write int
}

// NewFifoBuffer returns a ring holding up to capacity-1 bytes.
func NewFifoBuffer(capacity int) *FifoBuffer {
	return &FifoBuffer{buf: make([]byte, capacity)}
}

// Write appends as much of data as fits and returns the count.
func (f *FifoBuffer) Write(data []byte) int {
	n := 0
	for _, b := range data {
		next := (f.write + 1) % len(f.buf)
		if next == f.read {
			break
		}
		f.buf[f.write] = b
		f.write = next
		n++
	}
	return n
}

// Available returns the number of buffered bytes.
func (f *FifoBuffer) Available() int {
	if f.write >= f.read {
		return f.write - f.read
	}
	return len(f.buf) - f.read + f.write
}

// Free returns how many more bytes Write would accept.
func (f *FifoBuffer) Free() int {
	return len(f.buf) - f.Available() - 1
}

// Data returns the buffered bytes as one slice. When the ring has wrapped
// the result is a copy.
func (f *FifoBuffer) Data() []byte {
	if f.read <= f.write {
		return f.buf[f.read:f.write]
	}
	out := make([]byte, f.Available())
	n := copy(out, f.buf[f.read:])
	copy(out[n:], f.buf[:f.write])
	return out
}

// Pop drops up to n bytes from the front.
func (f *FifoBuffer) Pop(n int) {
	if avail := f.Available(); n > avail {
		n = avail
	}
	f.read = (f.read + n) % len(f.buf)
}

// IsEmpty reports whether nothing is buffered.
func (f *FifoBuffer) IsEmpty() bool {
	return f.read == f.write
}

// Reset drops everything.
func (f *FifoBuffer) Reset() {
	f.read, f.write = 0, 0
}
