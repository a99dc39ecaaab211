package telemetry

import "testing"

func TestCRC16(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
		want uint16
	}{
		{"empty", []byte{}, 0xFFFF},
		{"check string", []byte("123456789"), 0x6F91},
		{"ack header", []byte{5, SeqDest}, 0x9E81},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CRC16(tc.data); got != tc.want {
				t.Errorf("CRC16(%v) = 0x%04X, want 0x%04X", tc.data, got, tc.want)
			}
		})
	}
}

func TestCRC16Different(t *testing.T) {
	crc1 := CRC16([]byte{0x01, 0x02, 0x03})
	crc2 := CRC16([]byte{0x01, 0x02, 0x04})
	if crc1 == crc2 {
		t.Errorf("CRC16 collision: both inputs produced %04X", crc1)
	}
}
