package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/san-kum/studiofx/internal/config"
	"github.com/san-kum/studiofx/internal/gui"
	"github.com/san-kum/studiofx/internal/sim"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	ticks      int
	width      int
	height     int
	spring     string
	pointer    string
	logLevel   string
	// run
	numRuns  int
	validate bool
	// live
	theme   string
	gifPath string
	// render, export
	jsonOut    string
	csvOut     string
	renderOut  string
	svgPath    string
	frameEvery int
	// analyze
	entity int

	logger *slog.Logger
)

// main registers the commands and opens the window picker when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "studiofx",
		Short: "particle field and pointer flock effects",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := resolveConfig(cmd, nil)
			if err != nil {
				return err
			}
			return gui.Run(gui.Options{Config: cfg, Seed: cfg.Run.Seed, Interactive: true, Log: logger})
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".studiofx", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	pf.IntVar(&ticks, "ticks", config.DefaultTicks, "frames to simulate")
	pf.IntVar(&width, "width", config.DefaultWidth, "viewport width")
	pf.IntVar(&height, "height", config.DefaultHeight, "viewport height")
	pf.StringVar(&spring, "spring", "harmonica", "flock spring: harmonica, euler, rk4, verlet, leapfrog")
	pf.StringVar(&pointer, "pointer", config.DefaultPointer, "scripted pointer: "+strings.Join(sim.PointerScripts(), ", "))
	pf.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	guiCmd := &cobra.Command{
		Use:   "gui [effect]",
		Short: "open the effect in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}

	liveCmd := &cobra.Command{
		Use:   "live [effect]",
		Short: "run the effect in the terminal; without an effect, pick one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&theme, "theme", "ember", "theme")
	liveCmd.Flags().StringVar(&gifPath, "gif", "studiofx.gif", "where the g key saves recordings")

	runCmd := &cobra.Command{
		Use:   "run [effect]",
		Short: "headless run with a scripted pointer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&numRuns, "runs", 1, "number of seeds to run concurrently")
	runCmd.Flags().BoolVar(&validate, "validate", true, "stop at the first non-finite state")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis and entity path",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&entity, "entity", 0, "entity whose path is drawn")
	analyzeCmd.Flags().StringVar(&svgPath, "svg", "", "also write the entity path as svg")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&jsonOut, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&csvOut, "out", "o", "", "output file (default stdout)")

	renderCmd := &cobra.Command{
		Use:   "render [effect]",
		Short: "render frames to png or gif",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderEffect,
	}
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "studiofx.png", "output file; a .gif suffix records an animation")
	renderCmd.Flags().IntVar(&frameEvery, "every", 2, "keep every n-th frame of an animation")
	renderCmd.Flags().StringVar(&svgPath, "svg", "", "also write the last frame as svg")

	benchCmd := &cobra.Command{
		Use:   "bench [effect]",
		Short: "ticks per second for each spring",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchEffect,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [effect]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	rootCmd.AddCommand(guiCmd, liveCmd, runCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportCSVCmd, renderCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogger installs a text handler on stderr as the default logger and
// hands it to gg as well.
func setupLogger(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	gg.SetLogger(logger)
	return nil
}

// resolveConfig layers defaults, then the preset, then the config file, then
// flags the user actually set. The effect comes from args when given.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	effect := ""
	if len(args) > 0 {
		effect = args[0]
	}

	cfg := config.DefaultConfig()
	if preset != "" {
		var p *config.Config
		if effect != "" {
			p = config.GetPreset(effect, preset)
		} else {
			p = config.FindPreset(preset)
		}
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(effect))
		}
		cfg = p
	}

	if configFile != "" {
		var err error
		if cfg, err = config.LoadOver(configFile, cfg); err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") || cfg.Run.Seed == 0 {
		cfg.Run.Seed = seed
	}
	if flags.Changed("ticks") {
		cfg.Run.Ticks = ticks
	}
	if flags.Changed("width") {
		cfg.Run.Width = width
	}
	if flags.Changed("height") {
		cfg.Run.Height = height
	}
	if flags.Changed("spring") {
		cfg.Flock.Spring.Integrator = spring
	}
	if flags.Changed("pointer") {
		cfg.Run.Pointer = pointer
	}

	if effect == "" {
		effect = cfg.Run.Effect
	}
	cfg.Run.Effect = effect
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, effect, nil
}
