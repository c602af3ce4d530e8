// Package main is the entry point for chordscope, a demo CLI that drives
// the analysis engine over a synthesized signal and prints each tick's
// chord, confidence, and BPM. It exists to exercise the engine end to end;
// real hosts embed internal/engine directly and supply their own FFT
// provider instead of internal/spectrum's reference one.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	"github.com/chordscope/chordscope/internal/config"
	"github.com/chordscope/chordscope/internal/engine"
	"github.com/chordscope/chordscope/internal/spectrum"
)

// version is set via ldflags at build time.
var version = "dev"

// CLI defines the command-line interface.
type CLI struct {
	Version    bool    `short:"v" help:"Show version information"`
	DurationS  float64 `short:"d" default:"6" help:"Seconds of synthetic audio to analyze"`
	TickMs     float64 `short:"t" default:"50" help:"Wall-clock spacing between ticks, in milliseconds"`
	SampleRate float64 `short:"r" default:"44100" help:"Sample rate in Hz"`
	BPM        float64 `short:"b" default:"120" help:"BPM of the synthesized metronome click"`
	Bass       bool    `help:"Add a G2 bass note under the chord" default:"true" negatable:""`
}

func main() {
	cli := &CLI{}
	kong.Parse(cli,
		kong.Name("chordscope"),
		kong.Description("Realtime chord/BPM analysis demo"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	if cli.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := run(cli); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("chordscope: "+err.Error()))
		os.Exit(1)
	}
}

func run(cli *CLI) error {
	cfg := config.Default()
	eng, err := engine.New(cfg)
	if err != nil {
		return fmt.Errorf("construct engine: %w", err)
	}

	provider := spectrum.New(cfg.FFTSize)
	src := newTriadSource(cli.SampleRate, cli.BPM, cli.Bass)

	fmt.Println(titleStyle.Render("chordscope"))

	ticks := int(cli.DurationS * 1000 / cli.TickMs)
	for i := 0; i < ticks; i++ {
		wallMs := float64(i) * cli.TickMs
		mediaTimeS := wallMs / 1000

		mainTime, bassTime, timeDomain := src.frame(mediaTimeS, cli.SampleRate, cfg.FFTSize)

		res, err := eng.Tick(engine.Frame{
			MagMain:      provider.Magnitude(mainTime),
			MagBass:      provider.Magnitude(bassTime),
			TimeDomain:   timeDomain,
			SampleRateHz: cli.SampleRate,
			WallMs:       wallMs,
			MediaTimeS:   mediaTimeS,
			IsPlaying:    true,
		})
		if err != nil {
			return fmt.Errorf("tick %d: %w", i, err)
		}

		printTick(mediaTimeS, res)
	}

	fmt.Println(headerStyle.Render("timeline"))
	for i, ev := range eng.Events() {
		fmt.Printf("%s %s\n", keyStyle.Render(fmt.Sprintf("[%d] %5.2fs", i, ev.MediaTimeS)), chordStyle.Render(ev.Chord.String()))
	}

	return nil
}

func printTick(mediaTimeS float64, res engine.TickResult) {
	bpmText := "—"
	if res.HasBPM {
		bpmText = fmt.Sprintf("%.0f", res.BPM)
	}
	fmt.Printf("%s  chord=%s  conf=%.2f  bpm=%s\n",
		keyStyle.Render(fmt.Sprintf("%6.2fs", mediaTimeS)),
		chordStyle.Render(res.Chord),
		res.Confidence,
		bpmText,
	)
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A0D2FF"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA500")).MarginTop(1)
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	chordStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00AA00"))
	errStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A40000"))
)

// triadSource synthesizes a C major triad with an optional G2 bass note
// and a metronome click embedded in the time-domain buffer, used to drive
// the demo without needing real audio input.
type triadSource struct {
	sampleRate float64
	intervalS  float64
	bass       bool
}

func newTriadSource(sampleRate, bpm float64, bass bool) *triadSource {
	return &triadSource{sampleRate: sampleRate, intervalS: 60 / bpm, bass: bass}
}

func (s *triadSource) frame(mediaTimeS, sampleRate float64, fftSize int) (mainTime, bassTime, timeDomain []float64) {
	n := fftSize
	mainTime = make([]float64, n)
	bassTime = make([]float64, n)

	freqs := []float64{261.63, 329.63, 392.00}
	for i := 0; i < n; i++ {
		t := mediaTimeS + float64(i)/sampleRate
		var v float64
		for _, f := range freqs {
			v += math.Sin(2 * math.Pi * f * t)
		}
		mainTime[i] = v / float64(len(freqs))
		if s.bass {
			bassTime[i] = math.Sin(2 * math.Pi * 98.0 * t)
		}
	}

	// Short time-domain buffer just for BPM energy: a click near each
	// metronome boundary, silence otherwise.
	const clickLen = 64
	timeDomain = make([]float64, clickLen)
	phase := math.Mod(mediaTimeS, s.intervalS)
	if phase < float64(clickLen)/sampleRate {
		for i := range timeDomain {
			timeDomain[i] = 1.0
		}
	}

	return mainTime, bassTime, timeDomain
}
