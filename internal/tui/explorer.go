package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/phaseplane/internal/config"
	"github.com/san-kum/phaseplane/internal/field"
	"github.com/san-kum/phaseplane/internal/models"
	"github.com/san-kum/phaseplane/internal/phase"
	"github.com/san-kum/phaseplane/internal/traj"
	"github.com/san-kum/phaseplane/internal/viz"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

var modelInfo = map[string]string{
	"saddle":          "canonical linear saddle",
	"vanderpol":       "relaxation oscillator",
	"duffing":         "double-well oscillator",
	"pendulum":        "damped pendulum",
	"fitzhugh-nagumo": "excitable neuron",
}

type state int

const (
	stateMenu state = iota
	stateConfig
	stateView
)

type explorer struct {
	state    state
	cursor   int
	names    []string
	registry *models.Registry
	selected string

	params      map[string]float64
	paramNames  []string
	paramCursor int
	editing     bool
	editBuf     string

	theme    viz.Theme
	showNull bool
	showMan  bool
	zoom     float64

	portrait string
	status   string

	width  int
	height int
}

func NewExplorer() *explorer {
	reg := models.NewRegistry()
	return &explorer{
		state:    stateMenu,
		registry: reg,
		names:    reg.List(),
		params:   make(map[string]float64),
		theme:    viz.CurrentTheme,
		showNull: true,
		showMan:  true,
		zoom:     1.0,
		width:    80,
		height:   24,
	}
}

func (m explorer) Init() tea.Cmd { return nil }

func (m explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.state == stateView {
			m.render()
		}
		return m, nil
	}
	return m, nil
}

func (m explorer) handleKey(msg tea.KeyMsg) (explorer, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateView:
		return m.viewKey(msg)
	}
	return m, nil
}

func (m explorer) menuKey(msg tea.KeyMsg) (explorer, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.names[m.cursor]
		m.state = stateConfig
		m.paramCursor = 0
		m.loadParams()
	}
	return m, nil
}

func (m explorer) configKey(msg tea.KeyMsg) (explorer, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			fmt.Sscanf(m.editBuf, "%f", &val)
			m.params[m.paramNames[m.paramCursor]] = val
			m.editing = false
			m.editBuf = ""
		case "escape":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "escape":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = fmt.Sprintf("%.2f", m.params[m.paramNames[m.paramCursor]])
	case "left", "h":
		m.params[m.paramNames[m.paramCursor]] -= 0.1
	case "right", "l":
		m.params[m.paramNames[m.paramCursor]] += 0.1
	case "a":
		m.zoom = 1.0
		m.render()
		m.state = stateView
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m explorer) viewKey(msg tea.KeyMsg) (explorer, tea.Cmd) {
	switch msg.String() {
	case "q", "escape":
		m.state = stateMenu
		return m, tea.ClearScreen
	case "c":
		m.state = stateConfig
		return m, tea.ClearScreen
	case "t":
		m.theme = nextTheme(m.theme)
		m.render()
	case "n":
		m.showNull = !m.showNull
		m.render()
	case "m":
		m.showMan = !m.showMan
		m.render()
	case "+", "=":
		m.zoom *= 0.8
		m.render()
	case "-", "_":
		m.zoom = math.Min(m.zoom/0.8, 4)
		m.render()
	case "r":
		m.render()
	}
	return m, nil
}

func (m *explorer) loadParams() {
	f, err := m.registry.Get(m.selected)
	if err != nil {
		return
	}
	m.params = f.Params()
	m.paramNames = make([]string, 0, len(m.params))
	for name := range m.params {
		m.paramNames = append(m.paramNames, name)
	}
	sort.Strings(m.paramNames)
}

// render recomputes the analysis and the portrait synchronously; errors
// land in the status line instead of aborting the view.
func (m *explorer) render() {
	f, err := m.registry.Get(m.selected)
	if err != nil {
		m.status = err.Error()
		return
	}
	for name, v := range m.params {
		if err := f.SetParam(name, v); err != nil {
			m.status = err.Error()
			return
		}
	}
	vars := f.Vars()
	xname, yname := vars[0], vars[1]
	xiv, err := f.Domain(xname)
	if err != nil {
		m.status = err.Error()
		return
	}
	yiv, err := f.Domain(yname)
	if err != nil {
		m.status = err.Error()
		return
	}
	xiv = zoomed(xiv, m.zoom)
	yiv = zoomed(yiv, m.zoom)

	w := m.width - 6
	h := m.height - 12
	if w < 40 {
		w = 40
	}
	if h < 10 {
		h = 10
	}
	p := viz.NewPortrait(w, h, xiv, yiv, m.theme)
	m.status = ""

	cfg := config.DefaultConfig()
	cfg.FillDefaults()

	pts, err := phase.FindFixedPoints(f, phase.FixedPointSearch{
		SubDomain: map[string]phase.AxisSpec{
			xname: phase.Over(xiv.Lo, xiv.Hi),
			yname: phase.Over(yiv.Lo, yiv.Hi),
		},
		N:         cfg.FixedPts.GridN,
		MaxSearch: cfg.FixedPts.MaxSearch,
		Eps:       cfg.FixedPts.Eps,
	})
	if err != nil {
		m.status = err.Error()
	}

	if m.showNull {
		xn, yn, err := phase.FindNullclines(f, xname, yname, phase.NullclineOptions{
			XDom: &xiv,
			YDom: &yiv,
			N:    cfg.Nullclines.GridN,
		})
		if err != nil {
			m.status = err.Error()
		} else {
			p.AddNullcline(xn, true)
			p.AddNullcline(yn, false)
		}
	}

	var fps []*phase.FixedPoint
	for _, pt := range pts {
		fp, err := phase.Classify(f, pt, phase.ClassifyOptions{Eps: 1e-6})
		if err != nil {
			continue
		}
		fps = append(fps, fp)
		p.AddFixedPoint(fp)
	}

	if m.showMan {
		for _, fp := range fps {
			if fp.Class != phase.Saddle || fp.Degenerate {
				continue
			}
			man, err := phase.SaddleManifolds(f, traj.New(f), fp, phase.ManifoldOptions{
				Dx:           cfg.Manifolds.Dx,
				DxGamma:      cfg.Manifolds.DxGamma,
				DxPerp:       cfg.Manifolds.DxPerp,
				Tmax:         cfg.Manifolds.Tmax,
				MaxLen:       cfg.Manifolds.MaxLen,
				MaxPoints:    200,
				ShrinkFactor: cfg.Manifolds.ShrinkFactor,
			})
			if err != nil {
				m.status = err.Error()
				continue
			}
			p.AddBranch(man[phase.StableBranch])
			p.AddBranch(man[phase.UnstableBranch])
		}
	}

	m.portrait = p.Render()
}

func zoomed(iv field.Interval, zoom float64) field.Interval {
	mid := iv.Mid()
	half := iv.Width() / 2 * zoom
	return field.Interval{Lo: mid - half, Hi: mid + half}
}

func nextTheme(cur viz.Theme) viz.Theme {
	for i, t := range viz.Themes {
		if t.Name == cur.Name {
			return viz.Themes[(i+1)%len(viz.Themes)]
		}
	}
	return viz.Themes[0]
}

func (m explorer) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateView:
		return m.viewPortrait()
	}
	return ""
}

func (m explorer) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("         " + cyan.Render("p h a s e p l a n e") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.names {
		desc := modelInfo[name]
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-18s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-18s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter configure   q quit") + "\n")

	return b.String()
}

func (m explorer) viewConfig() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(m.selected) + "  " + dim.Render(modelInfo[m.selected]) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 32)) + "\n\n")

	for i, name := range m.paramNames {
		val := fmt.Sprintf("%8.3f", m.params[name])
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%8s", m.editBuf+"▋")
		}
		if i == m.paramCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-10s", name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-10s", name)) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter edit  a analyze  esc back") + "\n")

	return b.String()
}

func (m explorer) viewPortrait() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("\n   %s  %s\n\n",
		cyan.Render(m.selected), dim.Render("theme: "+m.theme.Name)))
	for _, line := range strings.Split(strings.TrimRight(m.portrait, "\n"), "\n") {
		b.WriteString("   " + line + "\n")
	}
	if m.status != "" {
		b.WriteString("\n   " + red.Render(m.status) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(dim.Render("   t theme  n nullclines  m manifolds  +/- zoom  r redraw  c configure  q back") + "\n")

	return b.String()
}
