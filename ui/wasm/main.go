//go:build js && wasm
// +build js,wasm

// Command wasm exposes the telemetry decoder to a browser page that reads
// the board over WebSerial.
package main

import (
	"encoding/hex"
	"errors"
	"strings"
	"syscall/js"

	"adclab/core"
	"adclab/lab"
	"adclab/telemetry"
)

// decoder persists between feed calls so frames split across WebSerial
// reads are reassembled.
var decoder = telemetry.NewDecoder()

func main() {
	js.Global().Set("adclabWasm", js.ValueOf(map[string]interface{}{
		"feed":      js.FuncOf(feedWrapper),
		"reset":     js.FuncOf(resetWrapper),
		"lost":      js.FuncOf(lostWrapper),
		"crc16":     js.FuncOf(crc16Wrapper),
		"decodeVLQ": js.FuncOf(decodeVLQWrapper),
		"version":   telemetry.Version,
	}))

	select {}
}

// feedWrapper buffers received bytes and returns every report completed.
// Args: hexString (string)
// Returns: [{iteration, mode, samples: [..], text, error}]
func feedWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf([]interface{}{makeError("missing hex string argument")})
	}
	data, err := hex.DecodeString(args[0].String())
	if err != nil {
		return js.ValueOf([]interface{}{makeError("invalid hex string: " + err.Error())})
	}

	var out []interface{}
	for len(data) > 0 {
		n := decoder.Feed(data)
		data = data[n:]
		for {
			r, err := decoder.Next()
			if errors.Is(err, telemetry.ErrNeedMore) {
				break
			}
			if err != nil {
				out = append(out, makeError(err.Error()))
				continue
			}
			out = append(out, makeReport(r))
		}
		if n == 0 {
			// decoder full even after draining: drop the rest
			out = append(out, makeError("decoder buffer full"))
			break
		}
	}
	return js.ValueOf(out)
}

func resetWrapper(this js.Value, args []js.Value) interface{} {
	decoder.Reset()
	return js.Undefined()
}

func lostWrapper(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(decoder.Lost())
}

// crc16Wrapper calculates the frame checksum.
// Args: hexString (string)
// Returns: number (uint16)
func crc16Wrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(0)
	}
	data, err := hex.DecodeString(args[0].String())
	if err != nil {
		return js.ValueOf(0)
	}
	return js.ValueOf(int(telemetry.CRC16(data)))
}

// decodeVLQWrapper decodes one VLQ from a hex string.
// Args: hexString (string)
// Returns: {value: number, consumed: number, error: string}
func decodeVLQWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeVLQResult(0, 0, "missing hex string argument")
	}
	data, err := hex.DecodeString(args[0].String())
	if err != nil {
		return makeVLQResult(0, 0, "invalid hex string: "+err.Error())
	}
	rest := data
	v, err := telemetry.DecodeVLQInt(&rest)
	if err != nil {
		return makeVLQResult(0, 0, err.Error())
	}
	return makeVLQResult(int(v), len(data)-len(rest), "")
}

func makeReport(r lab.Report) map[string]interface{} {
	samples := make([]interface{}, len(r.Samples))
	text := make([]string, len(r.Samples))
	for i, v := range r.Samples {
		samples[i] = int(v)
		text[i] = core.SampleText(v)
	}
	return map[string]interface{}{
		"iteration": int(r.Iteration),
		"mode":      r.Mode.String(),
		"samples":   samples,
		"text":      strings.Join(text, "|"),
	}
}

func makeError(msg string) map[string]interface{} {
	return map[string]interface{}{"error": msg}
}

func makeVLQResult(value int, consumed int, errMsg string) js.Value {
	result := map[string]interface{}{
		"value":    value,
		"consumed": consumed,
	}
	if errMsg != "" {
		result["error"] = errMsg
	}
	return js.ValueOf(result)
}
