package viz

import (
	"fmt"
	"image"
	"image/gif"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/studiofx/internal/config"
	"github.com/san-kum/studiofx/internal/host"
	"github.com/san-kum/studiofx/internal/sim"
)

const (
	defaultCols     = 60
	defaultRows     = 20
	statsWidth      = 42
	historyCapacity = 600
	graphWidth      = 30
	// canvas padding from canvasStyle
	padLeft, padTop = 2, 1
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Options configure a live session.
type Options struct {
	Effect  string
	Config  *config.Config
	Seed    int64
	Theme   string
	GIFPath string
	// Clock defaults to the system clock.
	Clock host.Clock
	Log   *slog.Logger
}

// Model drives one effect on a host.Window and paints it onto a braille
// surface every tick.
type Model struct {
	opts     Options
	registry *sim.Registry
	win      *host.Window
	surf     *BrailleSurface
	effect   sim.Effect

	running   bool
	ticks     int
	history   []float64
	metric    string
	pointerIn bool
	pointer   [2]float64
	recording bool
	frames    []*image.Paletted
	showHelp  bool
	status    string

	theme Theme
	st    styles
}

// NewModel builds and mounts the effect. The caller owns the returned model
// and should call Close when done with it outside of a tea.Program.
func NewModel(opts Options) (Model, error) {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Effect == "" {
		opts.Effect = opts.Config.Run.Effect
	}
	if opts.Clock == nil {
		opts.Clock = host.SystemClock{}
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "studiofx.gif"
	}
	theme := GetTheme(opts.Theme)
	m := Model{
		opts:     opts,
		registry: sim.NewRegistry(),
		running:  true,
		theme:    theme,
		st:       newStyles(theme),
	}
	if err := m.build(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) build() error {
	run := m.opts.Config.Run
	m.win = host.NewWindow(m.opts.Clock, host.Viewport{Width: run.Width, Height: run.Height})
	cols, rows := defaultCols, defaultRows
	if m.surf != nil {
		cols, rows = m.surf.Cells()
	}
	m.surf = NewBrailleSurface(cols, rows, run.Width, run.Height)

	rng := rand.New(rand.NewSource(m.opts.Seed))
	eff, err := m.registry.NewEffect(m.opts.Effect, m.opts.Config, rng, m.surf, m.opts.Log)
	if err != nil {
		return err
	}
	if err := eff.Mount(m.win); err != nil {
		return fmt.Errorf("mount %s: %w", m.opts.Effect, err)
	}
	m.effect = eff
	m.ticks = 0
	m.history = m.history[:0]
	m.pointerIn = false
	return nil
}

// Close unmounts the effect.
func (m Model) Close() {
	if m.effect != nil {
		m.effect.Unmount()
	}
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.MouseMsg:
		m.mouse(msg.X, msg.Y)
		return m, nil
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.recording {
			m.status = m.saveGIF()
		}
		m.Close()
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.Close()
		if err := m.build(); err != nil {
			m.status = err.Error()
		} else {
			m.status = "reset"
		}
	case "g":
		if m.recording {
			m.status = m.saveGIF()
		} else {
			m.frames = nil
			m.status = "recording"
		}
		m.recording = !m.recording
	case "t":
		m.theme = NextTheme(m.theme)
		m.st = newStyles(m.theme)
	case "l":
		m.leave()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// resize fits the braille canvas into the terminal beside the stats panel.
func (m *Model) resize(w, h int) {
	cols := max(w-statsWidth-2*padLeft-6, 10)
	rows := max(h-2*padTop, 4)
	m.surf.SetCells(cols, rows)
}

// mouse maps a terminal cell to host coordinates. Motion outside the canvas
// counts as the pointer leaving.
func (m *Model) mouse(x, y int) {
	cols, rows := m.surf.Cells()
	cx, cy := x-padLeft, y-padTop
	if cx < 0 || cy < 0 || cx >= cols || cy >= rows {
		m.leave()
		return
	}
	vp := m.win.Viewport()
	px := (float64(cx) + 0.5) / float64(cols) * float64(vp.Width)
	py := (float64(cy) + 0.5) / float64(rows) * float64(vp.Height)
	m.pointerIn, m.pointer = true, [2]float64{px, py}
	m.win.MovePointer(px, py)
}

func (m *Model) leave() {
	if !m.pointerIn {
		return
	}
	m.pointerIn = false
	m.win.LeavePointer()
}

func (m *Model) step() {
	m.win.Pump()
	m.effect.Draw()
	m.ticks++

	label, v := sim.Headline(m.effect.Name(), m.effect.Snapshot(), m.effect.Stride())
	m.metric = label
	m.history = append(m.history, v)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
	if m.recording && m.ticks%2 == 0 {
		m.frames = append(m.frames, m.surf.Paint().Image(8, 16))
	}
}

func (m Model) saveGIF() string {
	if len(m.frames) == 0 {
		return "nothing recorded"
	}
	anim := gif.GIF{}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 3)
	}
	f, err := os.Create(m.opts.GIFPath)
	if err != nil {
		return err.Error()
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("saved %d frames to %s", len(m.frames), m.opts.GIFPath)
}

func (m Model) View() string {
	canvas := m.st.canvas.Render(m.surf.Paint().Styled())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, m.st.stats.Render(m.stats()))
}

func (m Model) stats() string {
	var b strings.Builder
	b.WriteString(m.st.header.Render("studiofx · "+m.effect.Name()) + "\n")

	switch {
	case m.recording:
		b.WriteString(m.st.recording.Render("● REC") + "\n")
	case m.running:
		b.WriteString(m.st.running.Render("▶ running") + "\n")
	default:
		b.WriteString(m.st.paused.Render("❚❚ paused") + "\n")
	}

	vp := m.win.Viewport()
	b.WriteString(m.st.row("ticks", fmt.Sprintf("%d", m.ticks)) + "\n")
	b.WriteString(m.st.row("viewport", fmt.Sprintf("%dx%d", vp.Width, vp.Height)) + "\n")
	ptr := "-"
	if m.pointerIn {
		ptr = fmt.Sprintf("%.0f, %.0f", m.pointer[0], m.pointer[1])
	}
	b.WriteString(m.st.row("pointer", ptr) + "\n")
	if len(m.history) > 0 {
		b.WriteString(m.st.row(m.metric, fmt.Sprintf("%.3f", m.history[len(m.history)-1])) + "\n")
		b.WriteString(m.st.Sparkline(m.history, graphWidth) + "\n")
	}

	if len(m.history) > 1 {
		data := m.history
		if len(data) > graphWidth*4 {
			data = data[len(data)-graphWidth*4:]
		}
		graph := asciigraph.Plot(data, asciigraph.Height(4), asciigraph.Width(graphWidth), asciigraph.Caption(m.metric))
		b.WriteString(m.st.graph.Render(graph) + "\n")
	}

	if m.status != "" {
		b.WriteString(m.st.value.Render(m.status) + "\n")
	}
	if m.showHelp {
		b.WriteString(m.st.help.Render(strings.Join([]string{
			"space  pause/resume",
			"r      reset",
			"g      record gif",
			"t      cycle theme",
			"l      release pointer",
			"q      quit",
		}, "\n")))
	} else {
		b.WriteString(m.st.help.Render("? help"))
	}
	return b.String()
}

// Run starts a full-screen live session with mouse motion enabled.
func Run(opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
