package gui

import (
	"fmt"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/studiofx/internal/config"
	"github.com/san-kum/studiofx/internal/host"
	"github.com/san-kum/studiofx/internal/sim"
)

// Theme Colors (Monochrome)
var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColAccent  = rl.NewColor(248, 113, 113, 255) // #f87171
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

const telemetryCapacity = 200

// Options configure a window session.
type Options struct {
	Effect string
	Config *config.Config
	Seed   int64
	// Interactive opens the effect picker instead of starting Effect.
	Interactive bool
	Log         *slog.Logger
}

// App hosts the particle field as the page background and, for the flock
// and lens, a foreground layer composited additively on top.
type App struct {
	opts     Options
	registry *sim.Registry
	win      *host.Window

	back, front *Surface
	field       sim.Effect
	fore        sim.Effect

	Name      string
	Effects   []string
	Selected  int
	Running   bool
	InMenu    bool
	Telemetry []float64
	metric    string
	pointerIn bool
	Font      rl.Font
}

func initWindow(w, h int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w), int32(h), "studiofx")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont falls back to raylib's built-in font when the system font is missing.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp requires an initialised window.
func NewApp(opts Options) (*App, error) {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Effect == "" {
		opts.Effect = opts.Config.Run.Effect
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	run := opts.Config.Run
	reg := sim.NewRegistry()
	a := &App{
		opts:     opts,
		registry: reg,
		back:     NewSurface(run.Width, run.Height),
		front:    NewSurface(run.Width, run.Height),
		Effects:  reg.ListEffects(),
		InMenu:   opts.Interactive,
		Font:     loadFont(),
	}
	if !opts.Interactive {
		if err := a.load(opts.Effect); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

// Run opens a window for one effect, or the picker when Interactive is set,
// and blocks until the window closes.
func Run(opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	initWindow(cfg.Run.Width, cfg.Run.Height)
	defer rl.CloseWindow()

	app, err := NewApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// load mounts the field plus the named foreground effect on a fresh window.
func (a *App) load(name string) error {
	a.unload()
	run := a.opts.Config.Run
	a.win = host.NewWindow(host.SystemClock{}, host.Viewport{Width: run.Width, Height: run.Height})
	if rl.IsWindowReady() {
		a.win.SetViewport(host.Viewport{Width: int(rl.GetScreenWidth()), Height: int(rl.GetScreenHeight())})
	}

	rng := rand.New(rand.NewSource(a.opts.Seed))
	field, err := a.registry.NewEffect("field", a.opts.Config, rng, a.back, a.opts.Log)
	if err != nil {
		return err
	}
	if err := field.Mount(a.win); err != nil {
		return fmt.Errorf("mount field: %w", err)
	}
	a.field = field

	if name != "field" {
		fore, err := a.registry.NewEffect(name, a.opts.Config, rng, a.front, a.opts.Log)
		if err != nil {
			a.unload()
			return err
		}
		if err := fore.Mount(a.win); err != nil {
			a.unload()
			return fmt.Errorf("mount %s: %w", name, err)
		}
		a.fore = fore
	}

	a.Name = name
	a.Running = true
	a.InMenu = false
	a.Telemetry = a.Telemetry[:0]
	a.pointerIn = false
	a.opts.Log.Debug("loaded", "effect", name)
	return nil
}

func (a *App) unload() {
	if a.fore != nil {
		a.fore.Unmount()
		a.fore = nil
	}
	if a.field != nil {
		a.field.Unmount()
		a.field = nil
	}
}

func (a *App) Close() {
	a.unload()
	a.back.Close()
	a.front.Close()
}

// Update handles input and advances one frame. It returns false when the
// user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}

	if a.InMenu {
		a.updateMenu()
		return true
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		a.unload()
		a.InMenu = true
		return true
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if err := a.load(a.Name); err != nil {
			a.opts.Log.Error("reset failed", "effect", a.Name, "err", err)
			a.InMenu = true
			return true
		}
	}
	if rl.IsKeyPressed(rl.KeyP) {
		rl.TakeScreenshot("studiofx.png")
	}

	if rl.IsWindowResized() {
		a.win.SetViewport(host.Viewport{Width: int(rl.GetScreenWidth()), Height: int(rl.GetScreenHeight())})
	}
	a.updatePointer()

	if !a.Running {
		return true
	}

	a.back.Begin()
	a.win.Pump()
	a.back.End()

	top := a.field
	if a.fore != nil {
		a.front.Begin()
		a.fore.Draw()
		a.front.End()
		top = a.fore
	}

	label, v := sim.Headline(top.Name(), top.Snapshot(), top.Stride())
	a.metric = label
	a.Telemetry = append(a.Telemetry, v)
	if len(a.Telemetry) > telemetryCapacity {
		a.Telemetry = a.Telemetry[1:]
	}
	return true
}

func (a *App) updatePointer() {
	if !rl.IsCursorOnScreen() {
		if a.pointerIn {
			a.pointerIn = false
			a.win.LeavePointer()
		}
		return
	}
	m := rl.GetMousePosition()
	a.pointerIn = true
	a.win.MovePointer(float64(m.X), float64(m.Y))
}

func (a *App) updateMenu() {
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.Selected++
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.Selected--
	}
	if a.Selected >= len(a.Effects) {
		a.Selected = 0
	}
	if a.Selected < 0 {
		a.Selected = len(a.Effects) - 1
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
		if err := a.load(a.Effects[a.Selected]); err != nil {
			a.opts.Log.Error("load failed", "effect", a.Effects[a.Selected], "err", err)
		}
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawMenu()
	} else {
		a.back.Blit()
		if a.fore != nil {
			// the foreground clears to black every frame, which adds nothing
			rl.BeginBlendMode(rl.BlendAdditive)
			a.front.Blit()
			rl.EndBlendMode()
		}
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
	a.drawText("studiofx", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Name), 150, 34, 16, ColText)

	a.DrawTelemetry(30, h-120)

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, w-130, 30, 16, col)

	a.drawText("[SPACE] PAUSE  [R] RESET  [P] SCREENSHOT  [ESC] MENU  [Q] QUIT", w-600, h-40, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, h-40, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) DrawTelemetry(rectX, rectY int) {
	if len(a.Telemetry) < 2 {
		return
	}
	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal, maxVal = min(minVal, v), max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("%s: %.3f", a.metric, a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawMenu() {
	a.drawText("studiofx", 50, 50, 40, ColSelect)
	a.drawText("Select Effect", 50, 100, 16, ColTextDim)

	y := 160
	for i, name := range a.Effects {
		if i == a.Selected {
			a.drawText(fmt.Sprintf("> %s", name), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %s", name), 50, y, 20, ColText)
		}
		y += 28
	}

	h := int(rl.GetScreenHeight())
	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", 50, h-40, 14, ColTextDim)
}
