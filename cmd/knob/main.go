package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/alkime/knobs/internal/config"
	"github.com/alkime/knobs/internal/dialface"
	"github.com/alkime/knobs/internal/knob"
	"github.com/alkime/knobs/internal/logger"
	"github.com/alkime/knobs/internal/server"
	"github.com/alkime/knobs/internal/tui"
	"github.com/alkime/knobs/internal/tui/components/knobview"
	"github.com/alkime/knobs/pkg/collections"
	tea "github.com/charmbracelet/bubbletea"
)

// CLI defines the knob command structure.
type CLI struct {
	// Default TUI command (runs when no subcommand given)
	TUI TUICmd `cmd:"" default:"withargs" help:"Launch a board of knobs in the terminal"`

	// Subcommands
	Serve  ServeCmd  `cmd:"" help:"Serve knobs over HTTP"`
	Snap   SnapCmd   `cmd:"" help:"Snap a value onto a knob range and print it with its angle"`
	Render RenderCmd `cmd:"" help:"Render a knob face to a PNG file"`
	Curve  CurveCmd  `cmd:"" help:"Plot the value reached at each dial angle"`
}

// TUICmd is the default command that runs the TUI.
type TUICmd struct {
	Knobs   string `flag:"" optional:"" type:"existingfile" help:"YAML knob definitions (default: KNOBS_FILE or built-in set)"`
	Radius  int    `flag:"" default:"3" help:"Dial radius in terminal rows"`
	Title   string `flag:"" default:"knobs" help:"Board title"`
	LogFile string `flag:"" optional:"" help:"Write debug logs to this file"`
}

// Run executes the TUI command.
func (c *TUICmd) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// the TUI owns stdout; logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()

		logOut = f
		cfg.LogLevel = "debug"
	}
	logger.SetupLogger(cfg, logOut, logger.FormatText)

	if c.Knobs != "" {
		cfg.KnobsFile = c.Knobs
	}

	specs, err := loadSpecs(cfg)
	if err != nil {
		return err
	}

	views, failed, err := collections.ApplyErr(specs, func(i int, spec config.KnobSpec) (knobview.Model, error) {
		return knobview.New(i, spec.Build, c.Radius)
	})
	if err != nil {
		return fmt.Errorf("knob %q: %w", specs[failed].Name, err)
	}

	p := tea.NewProgram(
		tui.New(tui.Config{Cancel: cancel, Title: c.Title}, views),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start TUI: %w", err)
	}

	for _, kv := range views {
		k := kv.Knob()
		fmt.Printf("%s=%s\n", k.Label(), k.Readout())
	}

	return nil
}

// ServeCmd runs the HTTP server. It is configured from the environment.
type ServeCmd struct{}

// Run executes the serve command.
func (c *ServeCmd) Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.SetupLogger(cfg, os.Stdout, logger.FormatJSON)

	log.Info("Starting knobs server",
		"env", cfg.Env,
		"port", cfg.Port,
		"knobs_file", cfg.KnobsFile,
	)

	specs, err := loadSpecs(cfg)
	if err != nil {
		return err
	}

	board, err := server.NewBoard(specs, cfg.FaceSize)
	if err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}
	defer board.Close()

	if err := server.Run(server.New(cfg, log, board)); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// SnapCmd pushes a single host value through a knob and prints the result.
type SnapCmd struct {
	Min     float64 `arg:"" help:"Lower bound"`
	Max     float64 `arg:"" help:"Upper bound"`
	Step    float64 `arg:"" help:"Step size"`
	Value   string  `arg:"" help:"Value to snap; anything that is not a finite number falls back to the default"`
	Default string  `flag:"" optional:"" help:"Default value (default: min)"`
}

// Run executes the snap command.
func (c *SnapCmd) Run() error {
	k, err := buildKnob(c.Min, c.Max, c.Step, c.Default)
	if err != nil {
		return err
	}

	k.Set(parseRaw(c.Value))

	fmt.Printf("value=%s angle=%s\n", k.Readout(), strconv.FormatFloat(k.Angle(), 'f', -1, 64))

	return nil
}

// RenderCmd draws a knob face at a given value.
type RenderCmd struct {
	Min     float64 `arg:"" help:"Lower bound"`
	Max     float64 `arg:"" help:"Upper bound"`
	Step    float64 `arg:"" help:"Step size"`
	Value   string  `flag:"" optional:"" help:"Value to show (default: the default)"`
	Default string  `flag:"" optional:"" help:"Default value (default: min)"`
	Label   string  `flag:"" optional:"" help:"Label drawn under the dial"`
	Size    int     `flag:"" default:"256" help:"Image edge length in pixels"`
	Hide    bool    `flag:"" help:"Hide the numeric readout"`
	Output  string  `flag:"" short:"o" default:"knob.png" help:"Output PNG path"`
}

// Run executes the render command.
func (c *RenderCmd) Run() error {
	if c.Size < 32 {
		return fmt.Errorf("size must be at least 32, got %d", c.Size)
	}

	face := dialface.New(c.Size, c.Label)

	k, err := buildKnob(c.Min, c.Max, c.Step, c.Default,
		knob.WithSurface(face), knob.WithShowValue(!c.Hide), knob.WithLabel(c.Label))
	if err != nil {
		return err
	}

	if c.Value != "" {
		k.Set(parseRaw(c.Value))
	}

	if err := face.SavePNG(c.Output); err != nil {
		return err
	}

	slog.Info("Rendered knob", "path", c.Output, "value", k.Readout(), "angle", k.Angle())

	return nil
}

func main() {
	// Set up text-based logger for CLI output
	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	ctx := kong.Parse(cli,
		kong.Name("knob"),
		kong.Description("Rotary knob controls for the terminal and the web."),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
	os.Exit(0)
}

func loadSpecs(cfg *config.Config) ([]config.KnobSpec, error) {
	if cfg.KnobsFile == "" {
		return config.DefaultKnobs(), nil
	}

	specs, err := config.LoadKnobs(cfg.KnobsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load knobs: %w", err)
	}

	return specs, nil
}

func buildKnob(minValue, maxValue, step float64, def string, opts ...knob.Option) (*knob.Knob, error) {
	if def != "" {
		v, err := strconv.ParseFloat(def, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid default %q: %w", def, err)
		}
		opts = append(opts, knob.WithDefault(v))
	}

	return knob.New(knob.Bounds{Min: minValue, Max: maxValue, Step: step}, opts...)
}

// parseRaw turns a command-line value into what a host would hand the knob:
// a number when it parses as one, the string itself otherwise.
func parseRaw(s string) any {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}

	return v
}
