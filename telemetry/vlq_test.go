package telemetry

import (
	"bytes"
	"errors"
	"testing"
)

func TestVLQEncodeDecodeInt(t *testing.T) {
	testCases := []int32{0, 1, -1, 95, 96, -32, -33, 127, 4095, -4096, 65535, 1000000, -1000000}

	for _, want := range testCases {
		var out ScratchOutput
		EncodeVLQInt(&out, want)
		encoded := out.Result()

		data := encoded
		got, err := DecodeVLQInt(&data)
		if err != nil {
			t.Errorf("decode %d: %v", want, err)
			continue
		}
		if got != want {
			t.Errorf("VLQ mismatch: expected %d, got %d (encoded as %v)", want, got, encoded)
		}
		if len(data) != 0 {
			t.Errorf("value %d: %d bytes left after decode", want, len(data))
		}
	}
}

func TestVLQEncodeDecodeUint(t *testing.T) {
	testCases := []uint32{0, 1, 127, 128, 2048, 4095, 65535, 1 << 31, 0xFFFFFFFF}

	for _, want := range testCases {
		var out ScratchOutput
		EncodeVLQUint(&out, want)

		data := out.Result()
		got, err := DecodeVLQUint(&data)
		if err != nil {
			t.Errorf("decode %d: %v", want, err)
			continue
		}
		if got != want {
			t.Errorf("VLQ mismatch: expected %d, got %d", want, got)
		}
	}
}

func TestVLQKnownEncodings(t *testing.T) {
	testCases := []struct {
		v    uint32
		want []byte
	}{
		{0, []byte{0x00}},
		{95, []byte{0x5F}},
		{96, []byte{0x80, 0x60}},
		{2048, []byte{0x90, 0x00}},
		{4095, []byte{0x9F, 0x7F}},
	}
	for _, tc := range testCases {
		var out ScratchOutput
		EncodeVLQUint(&out, tc.v)
		if !bytes.Equal(out.Result(), tc.want) {
			t.Errorf("EncodeVLQUint(%d) = % X, want % X", tc.v, out.Result(), tc.want)
		}
	}
}

func TestVLQTruncated(t *testing.T) {
	for _, data := range [][]byte{{}, {0x90}, {0x81, 0x80}} {
		d := data
		if _, err := DecodeVLQInt(&d); !errors.Is(err, ErrShortFrame) {
			t.Errorf("DecodeVLQInt(% X) error = %v, want ErrShortFrame", data, err)
		}
	}
}
