package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/studiofx/internal/analysis"
	"github.com/san-kum/studiofx/internal/config"
	"github.com/san-kum/studiofx/internal/dynamo"
	"github.com/san-kum/studiofx/internal/export"
	"github.com/san-kum/studiofx/internal/flock"
	"github.com/san-kum/studiofx/internal/gui"
	"github.com/san-kum/studiofx/internal/integrators"
	"github.com/san-kum/studiofx/internal/raster"
	"github.com/san-kum/studiofx/internal/sim"
	"github.com/san-kum/studiofx/internal/storage"
	"github.com/san-kum/studiofx/internal/surface"
	"github.com/san-kum/studiofx/internal/viz"
)

// components names the snapshot columns of each effect.
var components = map[string][]string{
	"field": {"x", "y", "opacity"},
	"flock": {"offset x", "offset y", "repulsion x", "repulsion y"},
	"lens":  {"scale", "tint"},
}

func simConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		Ticks:         cfg.Run.Ticks,
		Width:         cfg.Run.Width,
		Height:        cfg.Run.Height,
		FrameRate:     cfg.Run.FrameRate,
		ValidateState: validate,
	}
}

// newRunner builds an effect drawing onto surf (nil for none) behind a
// runner with the effect's default metrics.
func newRunner(cfg *config.Config, effect string, runSeed int64, surf surface.Surface) (*sim.Runner, error) {
	registry := sim.NewRegistry()
	eff, err := registry.NewEffect(effect, cfg, rand.New(rand.NewSource(runSeed)), surf, logger)
	if err != nil {
		return nil, err
	}
	script, err := sim.NewPointerScript(cfg.Run.Pointer)
	if err != nil {
		return nil, err
	}
	r := sim.New(eff, script, logger)
	for _, m := range registry.DefaultMetrics(effect, cfg) {
		r.AddMetric(m)
	}
	return r, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, effect, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	return gui.Run(gui.Options{Effect: effect, Config: cfg, Seed: cfg.Run.Seed, Log: logger})
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, effect, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	opts := viz.Options{Effect: effect, Config: cfg, Seed: cfg.Run.Seed, Theme: theme, GIFPath: gifPath, Log: logger}
	if len(args) == 0 {
		return viz.RunMenu(opts, sim.NewRegistry().ListEffects())
	}
	return viz.Run(opts)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, effect, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s for %d ticks (pointer %s)...\n", effect, cfg.Run.Ticks, cfg.Run.Pointer)
	start := time.Now()

	var results []*sim.Result
	if numRuns <= 1 {
		r, err := newRunner(cfg, effect, cfg.Run.Seed, nil)
		if err != nil {
			return err
		}
		res, err := r.Run(ctx, simConfig(cfg))
		if err != nil {
			return err
		}
		results = append(results, res)
	} else {
		ens := sim.NewEnsemble(numRuns, func(i int) (*sim.Runner, error) {
			return newRunner(cfg, effect, cfg.Run.Seed+int64(i), nil)
		})
		if results, err = ens.Run(ctx, simConfig(cfg)); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	for i, res := range results {
		meta := storage.RunMetadata{
			Seed:      cfg.Run.Seed + int64(i),
			FrameRate: cfg.Run.FrameRate,
			Width:     cfg.Run.Width,
			Height:    cfg.Run.Height,
			Pointer:   cfg.Run.Pointer,
		}
		if effect == "flock" {
			meta.Spring = springName(cfg)
		}
		runID, err := st.Save(meta, res)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
		fmt.Printf("ticks: %d\n", res.StepsTaken)
		for _, e := range res.Errors {
			fmt.Printf("error: %v\n", e)
		}
		fmt.Println("metrics:")
		for _, name := range sortedKeys(res.Metrics) {
			fmt.Printf("  %s: %.6f\n", name, res.Metrics[name])
		}
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func springName(cfg *config.Config) string {
	if cfg.Flock.Spring.Integrator == "" {
		return "harmonica"
	}
	return cfg.Flock.Spring.Integrator
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEFFECT\tTIME\tTICKS\tVIEWPORT\tPOINTER\tSPRING")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%dx%d\t%s\t%s\n",
			run.ID,
			run.Effect,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Width, run.Height,
			run.Pointer,
			run.Spring,
		)
	}
	return w.Flush()
}

// loadRun resolves an optional run id ("latest" when omitted) and loads it.
func loadRun(args []string) (*storage.RunMetadata, *storage.Trace, error) {
	st := storage.New(dataDir)
	id := ""
	if len(args) > 0 {
		id = args[0]
	}
	id, err := st.Resolve(id)
	if err != nil {
		return nil, nil, err
	}
	meta, err := st.Load(id)
	if err != nil {
		return nil, nil, err
	}
	tr, err := st.LoadTrace(id)
	if err != nil {
		return nil, nil, err
	}
	if len(tr.States) == 0 {
		return nil, nil, fmt.Errorf("run %s has no data", id)
	}
	return meta, tr, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("effect: %s\n", meta.Effect)
	fmt.Printf("samples: %d\n\n", len(tr.States))

	for offset, name := range components[meta.Effect] {
		data := analysis.MeanSeries(tr.States, meta.Stride, offset)
		if len(data) == 0 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("mean "+name+" vs tick"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	present := make([]float64, len(tr.Controls))
	for i, u := range tr.Controls {
		if len(u) > 2 {
			present[i] = u[2]
		}
	}
	if len(present) > 1 {
		fmt.Println(asciigraph.Plot(present, asciigraph.Height(3), asciigraph.Width(70), asciigraph.Caption("pointer present")))
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args)
	if err != nil {
		return err
	}
	rate := meta.FrameRate
	if rate <= 0 {
		rate = 60
	}

	fmt.Printf("run: %s (%s, %d ticks at %.0f Hz)\n\n", meta.ID, meta.Effect, len(tr.States), rate)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COMPONENT\tDOMINANT HZ\tPOWER")
	names := components[meta.Effect]
	for offset, name := range names {
		freq, mag := analysis.DominantFrequency(analysis.MeanSeries(tr.States, meta.Stride, offset), rate)
		fmt.Fprintf(w, "%s\t%.4f\t%.4g\n", name, freq, mag)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(names) > 0 {
		spectrum := analysis.PowerSpectrum(analysis.MeanSeries(tr.States, meta.Stride, 0))
		if len(spectrum) > 1 {
			fmt.Println()
			fmt.Println(asciigraph.Plot(spectrum[1:], asciigraph.Height(8), asciigraph.Width(70),
				asciigraph.Caption("power spectrum of mean "+names[0])))
		}
	}

	if meta.Effect == "field" || meta.Effect == "flock" {
		path := analysis.TracePath(tr.States, meta.Stride, entity, 0, 1)
		fmt.Printf("\npath of entity %d (extent %.2f)\n", entity, path.Extent())
		fmt.Println(analysis.PathToASCII(path, 60, 20))
		if svgPath != "" {
			svg := export.PathToSVG(path, 400, 400, "#f87171")
			if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
				return err
			}
			fmt.Printf("path written to %s\n", svgPath)
		}
	}
	return nil
}

// openOut returns stdout for an empty path.
func openOut(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args)
	if err != nil {
		return err
	}
	w, closeFn, err := openOut(jsonOut)
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(w, meta, tr); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, tr, err := loadRun(args)
	if err != nil {
		return err
	}
	w, closeFn, err := openOut(csvOut)
	if err != nil {
		return err
	}
	if err := storage.ExportCSV(w, tr); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func renderEffect(cmd *cobra.Command, args []string) error {
	cfg, effect, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	surf := raster.New(cfg.Run.Width, cfg.Run.Height, logger)
	defer surf.Close()

	r, err := newRunner(cfg, effect, cfg.Run.Seed, surf)
	if err != nil {
		return err
	}
	animated := strings.EqualFold(filepath.Ext(renderOut), ".gif")
	var rec *raster.GIFRecorder
	if animated {
		rec = raster.NewGIFRecorder(surf, frameEvery, cfg.Run.FrameRate)
		r.AddObserver(rec)
	}

	res, err := r.Run(ctx, simConfig(cfg))
	if err != nil {
		return err
	}

	if animated {
		f, err := os.Create(renderOut)
		if err != nil {
			return err
		}
		if err := rec.Encode(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("wrote %d frames to %s\n", rec.Frames(), renderOut)
	} else {
		if err := surf.SavePNG(renderOut); err != nil {
			return err
		}
		fmt.Printf("wrote tick %d to %s\n", res.StepsTaken, renderOut)
	}

	if svgPath != "" {
		return renderSVG(ctx, cfg, effect)
	}
	return nil
}

// renderSVG replays the run onto a recorder and writes its last frame.
func renderSVG(ctx context.Context, cfg *config.Config, effect string) error {
	recorder := surface.NewRecorder(cfg.Run.Width, cfg.Run.Height)
	r, err := newRunner(cfg, effect, cfg.Run.Seed, recorder)
	if err != nil {
		return err
	}
	if _, err := r.Run(ctx, simConfig(cfg)); err != nil {
		return err
	}
	w, h := recorder.Size()
	if err := os.WriteFile(svgPath, []byte(export.FrameToSVG(w, h, recorder.Ops())), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %d shapes to %s\n", len(recorder.Ops()), svgPath)
	return nil
}

func benchEffect(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"flock"}
	}
	cfg, effect, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("pointer") {
		cfg.Run.Pointer = "sweep"
	}

	springs := []string{springName(cfg)}
	if effect == "flock" {
		springs = append([]string{"harmonica"}, integrators.Names()...)
	}

	fmt.Printf("benchmarking %s, %d ticks\n\n", effect, cfg.Run.Ticks)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SPRING\tTICKS\tTIME\tTICKS/SEC\tDECAY RATE")

	for _, name := range springs {
		c := *cfg
		c.Flock.Spring.Integrator = name
		r, err := newRunner(&c, effect, c.Run.Seed, nil)
		if err != nil {
			return err
		}

		start := time.Now()
		res, err := r.Run(context.Background(), simConfig(&c))
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		decay := "-"
		if integ, err := integrators.New(name); err == nil {
			rate := analysis.DecayRate(flock.NewSpringSystem(c.Flock.Spring), integ,
				dynamo.State{1, 0}, c.Flock.FrameDt, 5, 1e-6)
			decay = fmt.Sprintf("%.3f", rate)
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%.0f\t%s\n",
			name, res.StepsTaken, elapsed.Round(time.Microsecond),
			float64(res.StepsTaken)/elapsed.Seconds(), decay)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	effects := sim.NewRegistry().ListEffects()
	if len(args) > 0 {
		effects = args
	}
	for _, effect := range effects {
		presets := config.ListPresets(effect)
		if len(presets) == 0 {
			fmt.Printf("no presets for effect: %s\n", effect)
			continue
		}
		fmt.Printf("presets for %s:\n", effect)
		for _, p := range presets {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}
