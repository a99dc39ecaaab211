// Package telemetry frames the lab's per-refresh reports for the serial
// link. Frames use the same envelope as the Klipper wire protocol:
//
//	len  seq  payload...  crc_hi  crc_lo  0x7E
//
// len counts the whole frame, seq is 0x10 | (frame number & 0x0F) and the
// CRC covers len through the end of the payload. The payload is a run of
// VLQ integers: iteration, mode, sample count, then the samples.
package telemetry

import "errors"

// Version of the report payload layout.
const Version = 1

// Frame layout
const (
	FrameHeader  = 2 // len, seq
	FrameTrailer = 3 // crc (2), sync
	FrameMin     = FrameHeader + FrameTrailer
	FrameMax     = 64

	posLen = 0
	posSeq = 1

	trailerCRC  = 3
	trailerSync = 1

	SyncByte = 0x7E
	SeqDest  = 0x10
	SeqMask  = 0x0F
)

// MaxSamples bounds the sample count accepted in a report.
const MaxSamples = 8

var (
	// ErrNeedMore means the buffered bytes do not yet hold a full frame.
	ErrNeedMore = errors.New("telemetry: need more data")

	// ErrBadLength is returned for a length byte outside FrameMin..FrameMax.
	ErrBadLength = errors.New("telemetry: bad frame length")

	// ErrBadSeq is returned when the sequence byte lacks the 0x10 marker.
	ErrBadSeq = errors.New("telemetry: bad sequence byte")

	// ErrBadSync is returned when a frame does not end in SyncByte.
	ErrBadSync = errors.New("telemetry: missing sync byte")

	// ErrBadCRC is returned when the frame checksum does not match.
	ErrBadCRC = errors.New("telemetry: crc mismatch")

	// ErrBadMode is returned when a report names a mode the lab does not
	// have.
	ErrBadMode = errors.New("telemetry: unknown mode")

	// ErrShortFrame is returned when a well-formed frame carries a
	// truncated or inconsistent payload.
	ErrShortFrame = errors.New("telemetry: short frame")
)
