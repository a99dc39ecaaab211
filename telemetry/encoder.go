package telemetry

import (
	"io"

	"adclab/core"
	"adclab/lab"
)

// Encoder turns lab reports into frames. It keeps one frame of scratch
// space, so Encode does not allocate.
type Encoder struct {
	w   io.Writer
	seq uint8
	out ScratchOutput

	errors int
}

// NewEncoder returns an encoder writing to w. A nil w is allowed when only
// Encode is used.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode builds the frame for r. The returned slice is reused by the next
// call. Samples beyond MaxSamples are not sent.
func (e *Encoder) Encode(r lab.Report) []byte {
	e.out.Reset()
	e.out.Output([]byte{0, SeqDest | e.seq&SeqMask})

	samples := r.Samples
	if len(samples) > MaxSamples {
		samples = samples[:MaxSamples]
	}
	EncodeVLQUint(&e.out, r.Iteration)
	EncodeVLQUint(&e.out, uint32(r.Mode))
	EncodeVLQUint(&e.out, uint32(len(samples)))
	for _, v := range samples {
		EncodeVLQUint(&e.out, v)
	}

	e.out.Update(posLen, uint8(e.out.CurPosition()+FrameTrailer))
	crc := CRC16(e.out.Result())
	e.out.Output([]byte{uint8(crc >> 8), uint8(crc), SyncByte})

	e.seq = (e.seq + 1) & SeqMask
	return e.out.Result()
}

// Report encodes r and writes it out. Write errors are counted and logged
// through the debug hook; the lab never stops for them.
func (e *Encoder) Report(r lab.Report) {
	if e.w == nil {
		return
	}
	if _, err := e.w.Write(e.Encode(r)); err != nil {
		e.errors++
		core.DebugPrintln("[TM] write failed: " + err.Error())
	}
}

// WriteErrors returns how many writes failed.
func (e *Encoder) WriteErrors() int { return e.errors }
