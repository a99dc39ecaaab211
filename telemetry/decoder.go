package telemetry

import "adclab/lab"

// decoderBuffer holds a few frames' worth of unparsed input.
const decoderBuffer = 4 * FrameMax

// Decoder reassembles frames from a byte stream. After a corrupt frame it
// skips to the next sync byte before trying again.
type Decoder struct {
	fifo   *FifoBuffer
	synced bool

	haveSeq bool
	nextSeq uint8
	lost    int
}

// NewDecoder returns a decoder that assumes the stream starts on a frame
// boundary.
func NewDecoder() *Decoder {
	return &Decoder{
		fifo:   NewFifoBuffer(decoderBuffer),
		synced: true,
	}
}

// Feed buffers data and returns how many bytes were taken. Drain with
// Next until ErrNeedMore before feeding more than a frame at a time.
func (d *Decoder) Feed(data []byte) int {
	return d.fifo.Write(data)
}

// Free returns how many bytes Feed would accept right now.
func (d *Decoder) Free() int { return d.fifo.Free() }

// Reset drops buffered input and forgets the sequence history, as if the
// decoder were new.
func (d *Decoder) Reset() {
	d.fifo.Reset()
	d.synced = true
	d.haveSeq = false
	d.nextSeq = 0
	d.lost = 0
}

// Buffered returns the number of bytes not yet consumed.
func (d *Decoder) Buffered() int { return d.fifo.Available() }

// Lost returns the number of frames missed, judged by sequence gaps.
func (d *Decoder) Lost() int { return d.lost }

// Next returns the next complete report. ErrNeedMore means wait for more
// input; any other error reports one discarded frame and Next may be called
// again straight away.
func (d *Decoder) Next() (lab.Report, error) {
	for {
		if d.fifo.IsEmpty() {
			return lab.Report{}, ErrNeedMore
		}
		data := d.fifo.Data()

		if !d.synced {
			i := 0
			for i < len(data) && data[i] != SyncByte {
				i++
			}
			if i == len(data) {
				d.fifo.Pop(i)
				return lab.Report{}, ErrNeedMore
			}
			d.fifo.Pop(i + 1)
			d.synced = true
			continue
		}

		if data[0] == SyncByte {
			d.fifo.Pop(1)
			continue
		}
		if len(data) < FrameMin {
			return lab.Report{}, ErrNeedMore
		}

		n := int(data[posLen])
		if n < FrameMin || n > FrameMax {
			return d.desync(ErrBadLength)
		}
		seq := data[posSeq]
		if seq&^SeqMask != SeqDest {
			return d.desync(ErrBadSeq)
		}
		if len(data) < n {
			return lab.Report{}, ErrNeedMore
		}
		if data[n-trailerSync] != SyncByte {
			return d.desync(ErrBadSync)
		}
		crc := uint16(data[n-trailerCRC])<<8 | uint16(data[n-trailerCRC+1])
		if crc != CRC16(data[:n-FrameTrailer]) {
			return d.desync(ErrBadCRC)
		}

		r, err := decodePayload(data[FrameHeader : n-FrameTrailer])
		d.fifo.Pop(n)
		d.trackSeq(seq)
		return r, err
	}
}

func (d *Decoder) desync(err error) (lab.Report, error) {
	d.synced = false
	// drop the bad length byte so the resync scan makes progress
	d.fifo.Pop(1)
	return lab.Report{}, err
}

func (d *Decoder) trackSeq(seq uint8) {
	seq &= SeqMask
	if d.haveSeq && seq != d.nextSeq {
		d.lost += int((seq - d.nextSeq) & SeqMask)
	}
	d.haveSeq = true
	d.nextSeq = (seq + 1) & SeqMask
}

func decodePayload(p []byte) (lab.Report, error) {
	var r lab.Report
	iter, err := DecodeVLQUint(&p)
	if err != nil {
		return r, err
	}
	mode, err := DecodeVLQUint(&p)
	if err != nil {
		return r, err
	}
	count, err := DecodeVLQUint(&p)
	if err != nil {
		return r, err
	}
	if mode > 0xFF || !lab.Mode(mode).Valid() {
		return r, ErrBadMode
	}
	if count > MaxSamples {
		return r, ErrShortFrame
	}
	samples := make([]uint32, count)
	for i := range samples {
		if samples[i], err = DecodeVLQUint(&p); err != nil {
			return r, err
		}
	}
	if len(p) != 0 {
		return r, ErrShortFrame
	}
	r.Iteration = iter
	r.Mode = lab.Mode(mode)
	r.Samples = samples
	return r, nil
}
