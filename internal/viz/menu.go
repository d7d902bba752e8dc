package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/studiofx/internal/config"
)

var effectInfo = map[string]string{
	"field": "hero particle background",
	"flock": "logo grid pushed by the pointer",
	"lens":  "honeycomb proximity lens",
}

const (
	stateMenu = iota
	stateConfig
	stateLive
)

// entry is one selectable line of the menu: an effect with an optional preset.
type entry struct {
	effect, preset string
}

func (e entry) String() string {
	if e.preset == "" {
		return e.effect
	}
	return e.effect + "/" + e.preset
}

// param is one tunable of the config screen.
type param struct {
	name string
	step float64
	get  func(*config.Config) float64
	set  func(*config.Config, float64)
}

var effectParams = map[string][]param{
	"field": {
		{"count", 10, func(c *config.Config) float64 { return float64(c.Field.Count) },
			func(c *config.Config, v float64) { c.Field.Count = max(int(v), 1) }},
		{"drift", 0.05, func(c *config.Config) float64 { return c.Field.Drift },
			func(c *config.Config, v float64) { c.Field.Drift = max(v, 0) }},
		{"trail", 0.01, func(c *config.Config) float64 { return c.Field.TrailAlpha },
			func(c *config.Config, v float64) { c.Field.TrailAlpha = min(max(v, 0), 1) }},
	},
	"flock": {
		{"radius", 10, func(c *config.Config) float64 { return c.Flock.RepulsionRadius },
			func(c *config.Config, v float64) { c.Flock.RepulsionRadius = max(v, 1) }},
		{"force", 1, func(c *config.Config) float64 { return c.Flock.MaxRepulsionForce },
			func(c *config.Config, v float64) { c.Flock.MaxRepulsionForce = max(v, 0) }},
		{"damping", 1, func(c *config.Config) float64 { return c.Flock.Spring.Damping },
			func(c *config.Config, v float64) { c.Flock.Spring.Damping = max(v, 0) }},
		{"stiffness", 10, func(c *config.Config) float64 { return c.Flock.Spring.Stiffness },
			func(c *config.Config, v float64) { c.Flock.Spring.Stiffness = max(v, 1) }},
	},
	"lens": {
		{"radius", 10, func(c *config.Config) float64 { return c.Lens.Radius },
			func(c *config.Config, v float64) { c.Lens.Radius = max(v, 1) }},
		{"max scale", 0.05, func(c *config.Config) float64 { return c.Lens.MaxScale },
			func(c *config.Config, v float64) { c.Lens.MaxScale = max(v, c.Lens.MinScale) }},
	},
}

type menu struct {
	state, cursor int
	entries       []entry
	base          Options
	cfg           *config.Config
	paramCursor   int
	err           string
	live          Model
	width, height int
	st            styles
}

// NewMenu lists every effect followed by its presets. base supplies the
// defaults each selection starts from.
func NewMenu(base Options, effects []string) tea.Model {
	if base.Config == nil {
		base.Config = config.DefaultConfig()
	}
	m := &menu{base: base, st: newStyles(GetTheme(base.Theme))}
	for _, eff := range effects {
		m.entries = append(m.entries, entry{effect: eff})
		for _, p := range config.ListPresets(eff) {
			m.entries = append(m.entries, entry{effect: eff, preset: p})
		}
	}
	return m
}

func (m *menu) Init() tea.Cmd { return nil }

func (m *menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
	}
	if m.state == stateLive {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
			m.live.Close()
			m.state = stateConfig
			return m, nil
		}
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		if m.state == stateMenu {
			return m.menuKey(k)
		}
		return m.configKey(k)
	}
	return m, nil
}

func (m *menu) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.cfg = m.selectedConfig()
		m.state, m.paramCursor, m.err = stateConfig, 0, ""
	}
	return m, nil
}

func (m *menu) selectedConfig() *config.Config {
	e := m.entries[m.cursor]
	var cfg *config.Config
	if e.preset != "" {
		cfg = config.GetPreset(e.effect, e.preset)
	}
	if cfg == nil {
		c := *m.base.Config
		cfg = &c
	}
	cfg.Run.Effect = e.effect
	return cfg
}

func (m *menu) params() []param { return effectParams[m.cfg.Run.Effect] }

func (m *menu) configKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ps := m.params()
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(ps)-1 {
			m.paramCursor++
		}
	case "left", "h":
		if len(ps) > 0 {
			p := ps[m.paramCursor]
			p.set(m.cfg, p.get(m.cfg)-p.step)
		}
	case "right", "l":
		if len(ps) > 0 {
			p := ps[m.paramCursor]
			p.set(m.cfg, p.get(m.cfg)+p.step)
		}
	case "enter", "s":
		return m.start()
	}
	return m, nil
}

func (m *menu) start() (tea.Model, tea.Cmd) {
	if err := m.cfg.Validate(); err != nil {
		m.err = err.Error()
		return m, nil
	}
	opts := m.base
	opts.Config = m.cfg
	opts.Effect = m.cfg.Run.Effect
	live, err := NewModel(opts)
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	if m.width > 0 {
		live.resize(m.width, m.height)
	}
	m.live, m.state, m.err = live, stateLive, ""
	return m, live.Init()
}

func (m *menu) View() string {
	switch m.state {
	case stateConfig:
		return m.viewConfig()
	case stateLive:
		return m.live.View()
	}
	return m.viewMenu()
}

func (m *menu) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + m.st.header.Render("STUDIOFX") + "\n")
	for i, e := range m.entries {
		desc := ""
		if e.preset == "" {
			desc = effectInfo[e.effect]
		}
		name := fmt.Sprintf("%-18s", e.String())
		if i == m.cursor {
			b.WriteString("    " + m.st.running.Render("▸ "+name) + " " + m.st.value.Render(desc) + "\n")
		} else {
			b.WriteString("      " + m.st.label.UnsetWidth().Render(name) + " " + m.st.label.UnsetWidth().Render(desc) + "\n")
		}
	}
	b.WriteString(m.st.help.Render("    j/k navigate  enter select  q quit") + "\n")
	return b.String()
}

func (m *menu) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + m.st.header.Render(strings.ToUpper(m.entries[m.cursor].String())) + "\n")
	for i, p := range m.params() {
		line := fmt.Sprintf("%-10s %8.3f", p.name, p.get(m.cfg))
		if i == m.paramCursor {
			b.WriteString("    " + m.st.running.Render("▸ "+line) + "\n")
		} else {
			b.WriteString("      " + m.st.value.Render(line) + "\n")
		}
	}
	if m.err != "" {
		b.WriteString("\n    " + m.st.recording.Render(m.err) + "\n")
	}
	b.WriteString(m.st.help.Render("    j/k select  h/l adjust  s start  esc back") + "\n")
	return b.String()
}

// RunMenu starts the picker; selecting an entry opens a live session and esc
// returns to the picker.
func RunMenu(base Options, effects []string) error {
	_, err := tea.NewProgram(NewMenu(base, effects), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
