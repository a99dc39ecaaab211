// Command adclab-sim runs the ADC lab against simulated hardware and logs
// what the board would have shown.
//
// Settings come from defaults, ADCLAB_* environment variables, flags and an
// optional JSON file (-c/--config-file, default adclab-sim.json).
package main

import (
	"context"
	"fmt"
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
	"adclab/lab"
	"adclab/sim"
	"adclab/telemetry"
)

var log zerolog.Logger

func init() {
	cw := zerolog.ConsoleWriter{Out: os.Stderr}
	log = zerolog.New(cw).With().Timestamp().Logger()
}

var defaultConfig = map[string]interface{}{
	"mode": "single",
	"clock": map[string]interface{}{
		"mhz": 50,
	},
	"sample": map[string]interface{}{
		"source":  "constant",
		"value":   2048,
		"step":    64,
		"period":  40,
		"noise":   0,
		"latency": 0,
	},
	"iterations": 20,
	"realtime":   false,
	"render":     false,
	"debug":      false,
	"telemetry":  "",
}

func loadConfig() *config.Config {
	def := dict.New(dict.WithMap(defaultConfig))
	cfg := config.New(
		pflag.New(pflag.WithFlags(
			[]pflag.Flag{{Short: 'c', Name: "config-file"}})),
		env.New(env.WithEnvPrefix("ADCLAB_")),
		config.WithDefault(def))
	cfg.Append(
		blob.NewConfigFile(cfg, "config.file", "adclab-sim.json", json.NewDecoder()))
	return cfg.GetConfig("", config.WithMust)
}

// options is the validated form of the configuration.
type options struct {
	mode       lab.Mode
	clockMHz   int
	source     sim.Source
	sourceName string
	latency    int
	iterations int
	realtime   bool
	render     bool
	debug      bool
	telemetry  string
}

func parseOptions(cfg *config.Config) (options, error) {
	var o options
	var err error

	if o.mode, err = lab.ParseMode(cfg.MustGet("mode").String()); err != nil {
		return o, err
	}
	o.clockMHz = cfg.MustGet("clock.mhz").Int()
	if sysDiv(o.clockMHz) == 0 {
		return o, fmt.Errorf("clock.mhz %d: must be 200 MHz divided by 1..64", o.clockMHz)
	}

	o.sourceName = strings.ToLower(cfg.MustGet("sample.source").String())
	if o.source, err = buildSource(cfg, o.sourceName); err != nil {
		return o, err
	}
	if noise := cfg.MustGet("sample.noise").Int(); noise > 0 {
		o.source = sim.Noisy(o.source, uint32(noise), 1)
	}

	o.latency = cfg.MustGet("sample.latency").Int()
	o.iterations = cfg.MustGet("iterations").Int()
	if o.iterations < 0 {
		return o, fmt.Errorf("iterations %d: must be 0 (forever) or positive", o.iterations)
	}
	o.realtime = cfg.MustGet("realtime").Bool()
	o.render = cfg.MustGet("render").Bool()
	o.debug = cfg.MustGet("debug").Bool()
	o.telemetry = cfg.MustGet("telemetry").String()
	return o, nil
}

func buildSource(cfg *config.Config, name string) (sim.Source, error) {
	switch name {
	case "constant":
		v := cfg.MustGet("sample.value").Int()
		if v < 0 || v > sim.MaxSample {
			return nil, fmt.Errorf("sample.value %d: outside 0..%d", v, sim.MaxSample)
		}
		return sim.Constant(uint32(v)), nil
	case "ramp":
		return sim.Ramp(uint32(cfg.MustGet("sample.step").Int())), nil
	case "sine", "tilt":
		return sim.Tilt(2000, cfg.MustGet("sample.period").Int()), nil
	}
	return nil, fmt.Errorf("sample.source %q: want constant, ramp or sine", name)
}

// sysDiv returns the PLL divisor giving mhz, or 0 if there is none.
func sysDiv(mhz int) uint32 {
	const pll = core.PLLFreq / 2
	if mhz <= 0 || mhz > pll/1000000 {
		return 0
	}
	hz := uint32(mhz) * 1000000
	if pll%hz != 0 || pll/hz > 64 {
		return 0
	}
	return pll / hz
}

// labConfig applies the clock override to the lab's fixed configuration.
func labConfig(o options) lab.Config {
	cfg := lab.DefaultConfig(o.mode)
	cfg.Clock.SysDiv = sysDiv(o.clockMHz)
	return cfg
}

// reporters fans one report out to several sinks.
type reporters []lab.Reporter

func (rs reporters) Report(r lab.Report) {
	for _, x := range rs {
		x.Report(r)
	}
}

// logReporter logs each refresh with the text the panel shows.
type logReporter struct {
	disp *sim.Display
}

func (lr logReporter) Report(r lab.Report) {
	ev := log.Info().
		Uint32("iteration", r.Iteration).
		Stringer("mode", r.Mode).
		Interface("samples", r.Samples)
	for i := range r.Samples {
		if s, ok := lr.disp.TextAt(lab.ValueX, lab.ValueRow(i)); ok {
			ev = ev.Str("row"+core.Itoa(i), strings.TrimRight(s, " "))
		}
	}
	ev.Msg("refresh")
}

func run(ctx context.Context, o options, board *sim.Board) (*lab.Lab, error) {
	board.ADC.Latency = o.latency
	board.Clock.RealTime = o.realtime
	board.Install()

	l, err := lab.New(labConfig(o), lab.BoardHardware())
	if err != nil {
		return nil, err
	}

	rs := reporters{logReporter{disp: board.Display}}
	if o.telemetry != "" {
		f, err := os.Create(o.telemetry)
		if err != nil {
			return nil, fmt.Errorf("telemetry output: %w", err)
		}
		defer f.Close()
		rs = append(rs, telemetry.NewEncoder(f))
	}
	l.SetReporter(rs)

	l.Setup()
	log.Info().
		Stringer("mode", o.mode).
		Uint32("clock_hz", board.Clock.ClockRate()).
		Str("source", o.sourceName).
		Msg("lab running")

	for o.iterations == 0 || int(l.Iterations()) < o.iterations {
		select {
		case <-ctx.Done():
			return l, nil
		default:
		}
		l.Iterate()
	}
	return l, nil
}

func main() {
	cfg := loadConfig()
	o, err := parseOptions(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if o.debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	core.SetDebugWriter(func(s string) { log.Debug().Msg(s) })
	core.SetDebugEnabled(o.debug)
	core.SetParamErrorHook(func(op, detail string) {
		log.Warn().Str("op", op).Msg(detail)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	board := sim.NewBoard(o.source)
	l, err := run(ctx, o, board)
	if err != nil {
		log.Fatal().Err(err).Msg("lab failed")
	}

	log.Info().
		Uint32("iterations", l.Iterations()).
		Dur("virtual_time", board.Clock.Elapsed()).
		Int("overflow", board.ADC.Overflow(o.mode.Sequencer())).
		Msg("done")

	if o.render {
		fmt.Print(board.Display.Render())
	}
}
