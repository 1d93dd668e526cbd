package term

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"predprey/internal/control"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
)

const (
	leftColumnWidth = 34
	minWindowHeight = 20
	tickInterval    = time.Second / 30
)

type keyBinding struct {
	key     interface{}
	name    string
	descr   string
	handler func() error
}

// ConsoleUI is the interactive terminal front-end. All controller access
// happens on the gocui goroutine; the ticker only schedules work through
// Gui.Update.
type ConsoleUI struct {
	ctrl     *control.Controller
	g        *gocui.Gui
	au       aurora.Aurora
	keys     []keyBinding
	settings *Settings
	lastErr  error
}

// NewConsoleUI sets up the terminal and key bindings for ctrl.
func NewConsoleUI(ctrl *control.Controller) (*ConsoleUI, error) {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	t := &ConsoleUI{
		ctrl:     ctrl,
		g:        g,
		au:       aurora.NewAurora(true),
		settings: NewSettings(ctrl.Sim()),
	}
	cmd := func(c control.Command) func() error {
		return func() error { return t.dispatch(c) }
	}
	t.keys = []keyBinding{
		{gocui.KeySpace, "SPACE", "Pause/resume", cmd(control.CommandTogglePause)},
		{gocui.KeyEnter, "ENTER", "Start", cmd(control.CommandStart)},
		{'n', "N", "Step", cmd(control.CommandStep)},
		{'r', "R", "Reset", cmd(control.CommandReset)},
		{'s', "S", "Reseed", cmd(control.CommandReseed)},
		{'m', "M", "Help", cmd(control.CommandToggleMenu)},
		{gocui.KeyArrowUp, "↑/↓", "Select", func() error { t.settings.Select(-1); return nil }},
		{gocui.KeyArrowDown, "", "", func() error { t.settings.Select(1); return nil }},
		{gocui.KeyArrowLeft, "←/→", "Adjust", func() error { t.settings.Adjust(-1); return nil }},
		{gocui.KeyArrowRight, "", "", func() error { t.settings.Adjust(1); return nil }},
		{'q', "Q", "Quit", cmd(control.CommandQuit)},
		{gocui.KeyCtrlC, "", "", cmd(control.CommandQuit)},
	}
	g.SetManagerFunc(t.layout)
	for _, kb := range t.keys {
		h := kb.handler
		if err := g.SetKeybinding("", kb.key, gocui.ModNone, func(*gocui.Gui, *gocui.View) error { return h() }); err != nil {
			g.Close()
			return nil, fmt.Errorf("bind %v: %w", kb.key, err)
		}
	}
	return t, nil
}

// Run blocks in the gocui main loop until the user quits or ctx is done.
func (t *ConsoleUI) Run(ctx context.Context) error {
	defer t.g.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				t.g.Update(func(*gocui.Gui) error { return gocui.ErrQuit })
				return
			case now := <-ticker.C:
				t.g.Update(func(*gocui.Gui) error {
					t.ctrl.Advance(now)
					return nil
				})
			}
		}
	}()

	if err := t.g.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) {
		return err
	}
	return nil
}

func (t *ConsoleUI) dispatch(cmd control.Command) error {
	err := t.ctrl.Dispatch(cmd)
	if errors.Is(err, control.ErrQuit) {
		return gocui.ErrQuit
	}
	t.lastErr = err
	return nil
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if maxY < minWindowHeight {
		if err := t.header(g, maxY, "Terminal height too small"); err != nil {
			return err
		}
		for _, name := range []string{"configuration", "status", "settings", "grid", "keys", "help"} {
			_ = g.DeleteView(name)
		}
		return nil
	}
	if err := t.header(g, 3, "Rabbits and wolves"); err != nil {
		return err
	}

	sectionH := (maxY - 5 - 3) / 3
	panels := []struct {
		name, title string
		y0, y1      int
		render      func(v *gocui.View)
	}{
		{"configuration", "Configuration", 3, 3 + sectionH, t.renderConfiguration},
		{"status", "Status", 3 + sectionH + 1, 3 + 2*sectionH, t.renderStatus},
		{"settings", "Settings", 3 + 2*sectionH + 1, maxY - 5, t.renderSettings},
		{"grid", "Field", 3, maxY - 5, t.renderGrid},
	}
	for _, p := range panels {
		x0, x1 := 0, leftColumnWidth
		if p.name == "grid" {
			x0, x1 = leftColumnWidth+1, maxX-1
		}
		v, err := g.SetView(p.name, x0, p.y0, x1, p.y1)
		if err != nil {
			if err != gocui.ErrUnknownView || v == nil {
				return err
			}
			v.Title = p.title
			v.Frame = true
		}
		v.Clear()
		p.render(v)
	}

	if v, err := g.SetView("keys", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		_, _ = fmt.Fprintln(v, t.keyLine())
	}

	if t.ctrl.MenuOpen() {
		w, h := 44, len(helpText)+2
		x0, y0 := (maxX-w)/2, (maxY-h)/2
		v, err := g.SetView("help", x0, y0, x0+w, y0+h)
		if err != nil {
			if err != gocui.ErrUnknownView || v == nil {
				return err
			}
			v.Title = "Help"
			v.Frame = true
			_, _ = fmt.Fprint(v, strings.Join(helpText, "\n"))
		}
		if _, err := g.SetViewOnTop("help"); err != nil {
			return err
		}
	} else {
		_ = g.DeleteView("help")
	}
	return nil
}

var helpText = []string{
	" Rabbits breed into a free neighbour.",
	" Wolves eat a neighbouring rabbit or lose",
	" energy and starve at zero. A well fed male",
	" next to a female produces a pup.",
	"",
	" Settings marked * apply on reset (R/S).",
	" Press M to close.",
}

func (t *ConsoleUI) header(g *gocui.Gui, height int, text string) error {
	maxX, _ := g.Size()
	v, err := g.SetView("header", -1, -1, maxX+1, height)
	if err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorCyan
		v.FgColor = gocui.ColorBlack
	}
	v.Clear()
	pad := max((maxX-len(text))/2, 0)
	_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2)+strings.Repeat(" ", pad)+text)
	return nil
}

func (t *ConsoleUI) renderConfiguration(v *gocui.View) {
	sim := t.ctrl.Sim()
	size := sim.Size()
	st := t.ctrl.Status()
	_, _ = fmt.Fprintln(v, t.prop("Simulation", "%v", sim.Name()))
	_, _ = fmt.Fprintln(v, t.prop("Dimension", "%v x %v", size.W, size.H))
	_, _ = fmt.Fprintln(v, t.prop("Seed", "%v", st.Seed))
	_, _ = fmt.Fprintln(v, t.prop("Speed", "%v steps/s", st.TPS))
}

func (t *ConsoleUI) renderStatus(v *gocui.View) {
	st := t.ctrl.Status()
	mode := t.au.Blue("paused").String()
	switch {
	case st.Extinct:
		mode = t.au.Red("extinct").String()
	case st.Running:
		mode = t.au.Cyan("running").String()
	}
	_, _ = fmt.Fprintln(v, t.prop("Generation", "%v", st.Generation))
	_, _ = fmt.Fprintln(v, t.prop("Rabbits", "%v", st.Counts.Rabbits))
	_, _ = fmt.Fprintln(v, t.prop("Wolves", "%v (%vF/%vM)", st.Counts.Wolves(), st.Counts.FemaleWolves, st.Counts.MaleWolves))
	_, _ = fmt.Fprintln(v, t.prop("Step time", "%v", st.StepTime.Round(time.Microsecond)))
	_, _ = fmt.Fprintln(v, t.prop("Mode", "%v", mode))
	if t.lastErr != nil {
		_, _ = fmt.Fprintln(v, " "+t.au.Red(t.lastErr.Error()).String())
	}
}

func (t *ConsoleUI) renderSettings(v *gocui.View) {
	_, _ = fmt.Fprint(v, strings.Join(t.settings.Lines(t.au), "\n"))
}

func (t *ConsoleUI) renderGrid(v *gocui.View) {
	sim := t.ctrl.Sim()
	maxW, maxH := v.Size()
	lines := RenderGrid(t.au, sim.Cells(), sim.Size(), maxW, maxH)
	_, _ = fmt.Fprint(v, strings.Join(lines, "\n"))
}

func (t *ConsoleUI) keyLine() string {
	var b bytes.Buffer
	b.WriteString("KEYS: ")
	first := true
	for _, k := range t.keys {
		if k.name == "" {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(t.au.Green(k.name).String())
		b.WriteString(": ")
		b.WriteString(k.descr)
	}
	return b.String()
}

func (t *ConsoleUI) prop(name, format string, values ...interface{}) string {
	return fmt.Sprintf(" "+t.au.Green(name).String()+": "+format, values...)
}
