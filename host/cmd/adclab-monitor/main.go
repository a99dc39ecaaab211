// Command adclab-monitor logs the telemetry frames the lab firmware sends
// over its serial port, or replays a capture written by adclab-sim.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"
	"github.com/warthog618/config"
	"github.com/warthog618/config/blob"
	"github.com/warthog618/config/blob/decoder/json"
	"github.com/warthog618/config/dict"
	"github.com/warthog618/config/env"
	"github.com/warthog618/config/pflag"

	"adclab/core"
	"adclab/host/serial"
	"adclab/lab"
	"adclab/telemetry"
)

var log zerolog.Logger

func init() {
	cw := zerolog.ConsoleWriter{Out: os.Stderr}
	log = zerolog.New(cw).With().Timestamp().Logger()
}

var defaultConfig = map[string]interface{}{
	"device":  "/dev/ttyACM0",
	"baud":    serial.DefaultBaud,
	"timeout": 100,
	"replay":  "",
}

func loadConfig() *config.Config {
	def := dict.New(dict.WithMap(defaultConfig))
	cfg := config.New(
		pflag.New(pflag.WithFlags(
			[]pflag.Flag{{Short: 'c', Name: "config-file"}})),
		env.New(env.WithEnvPrefix("ADCLAB_")),
		config.WithDefault(def))
	cfg.Append(
		blob.NewConfigFile(cfg, "config.file", "adclab-monitor.json", json.NewDecoder()))
	return cfg.GetConfig("", config.WithMust)
}

// openSource opens the replay file if one is configured, else the serial
// port.
func openSource(cfg *config.Config) (io.ReadCloser, string, error) {
	if path := cfg.MustGet("replay").String(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, "", fmt.Errorf("open replay: %w", err)
		}
		return f, path, nil
	}
	sc := serial.DefaultConfig(cfg.MustGet("device").String())
	sc.Baud = cfg.MustGet("baud").Int()
	sc.ReadTimeout = cfg.MustGet("timeout").Int()
	port, err := serial.Open(sc)
	if err != nil {
		return nil, "", err
	}
	// drop whatever queued up before we started; the decoder would only
	// have to resync past it
	if err := port.Flush(); err != nil {
		log.Warn().Err(err).Msg("flush failed")
	}
	return port, sc.Device, nil
}

// reportText renders samples the way the panel shows them.
func reportText(r lab.Report) string {
	fields := make([]string, len(r.Samples))
	for i, v := range r.Samples {
		fields[i] = strings.TrimRight(core.SampleText(v), " ")
	}
	return strings.Join(fields, " ")
}

// handle logs one decoded report or decode error.
func handle(logger zerolog.Logger) telemetry.Handler {
	return func(r lab.Report, err error) {
		if err != nil {
			logger.Warn().Err(err).Msg("dropped frame")
			return
		}
		logger.Info().
			Uint32("iteration", r.Iteration).
			Stringer("mode", r.Mode).
			Str("value", reportText(r)).
			Msg("report")
	}
}

func main() {
	cfg := loadConfig()

	src, name, err := openSource(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open telemetry source")
	}
	log.Info().Str("source", name).Msg("listening")

	stream := telemetry.NewStream(src, handle(log))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	select {
	case <-sig:
	case <-stream.Done():
	}
	if err := stream.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		log.Warn().Err(err).Msg("close failed")
	}
	if err := stream.Err(); err != nil && !errors.Is(err, io.EOF) {
		log.Error().Err(err).Msg("read failed")
	}
	log.Info().Int("lost", stream.Lost()).Msg("stopped")
}
