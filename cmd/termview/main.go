// Command termview renders the status engine in a terminal.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/vitals/components"
	"github.com/pthm-cable/vitals/config"
	"github.com/pthm-cable/vitals/engine"
	"github.com/pthm-cable/vitals/systems"
)

// Engine units per terminal cell; cells are roughly twice as tall as wide
const (
	cellW = 8
	cellH = 16
)

type viewer struct {
	screen tcell.Screen
	engine *engine.Engine
	cfg    *config.Config
	cols   int
	rows   int
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	skin := flag.String("skin", "", "Threshold skin to start with")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	fps := flag.Int("fps", 30, "Redraw rate")
	flag.Parse()

	// The terminal belongs to the viewer; warnings are held until the screen
	// is released
	var logs bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading config:", err)
		os.Exit(1)
	}
	if *skin != "" {
		if err := cfg.UseSkin(*skin); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	err = run(cfg, *seed, *fps)
	os.Stderr.Write(logs.Bytes())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, seed int64, fps int) error {
	e, err := engine.New(cfg, seed)
	if err != nil {
		return err
	}
	defer e.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	v := &viewer{screen: screen, engine: e, cfg: cfg}
	v.resize()

	done := make(chan struct{})
	defer close(done)
	events := pump(screen, done, 100)

	if fps < 1 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case ev, ok := <-events:
			if !ok || v.handle(ev) {
				return nil
			}
		case now := <-ticker.C:
			e.Advance(now.Sub(last).Seconds())
			last = now
			v.draw()
		}
	}
}

// pump forwards terminal events until the screen is finalized or done is
// closed. PollEvent blocks, so it runs on its own goroutine and the frame
// loop drains the channel.
func pump(screen tcell.Screen, done <-chan struct{}, size int) <-chan tcell.Event {
	events := make(chan tcell.Event, size)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}

// handle applies one terminal event and reports whether to quit.
func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
		v.resize()
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			v.engine.SpawnBurst(float32(x*cellW), float32(y*cellH))
		}
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyUp:
			v.nudge(1)
		case tcell.KeyDown:
			v.nudge(-1)
		case tcell.KeyPgUp:
			v.nudge(10)
		case tcell.KeyPgDn:
			v.nudge(-10)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case '+', '=':
				v.nudge(1)
			case '-':
				v.nudge(-1)
			case 'c':
				v.engine.Clear(v.cfg.Population.Clear.ResetAfter)
			case 'b':
				x, y := v.orbCenter()
				v.engine.SpawnBurst(float32(x*cellW), float32(y*cellH))
			case 'k':
				v.cycleSkin()
			}
		}
	}
	return false
}

func (v *viewer) nudge(d int) {
	v.engine.SetMetric(v.engine.Frame().Metric + d)
}

func (v *viewer) resize() {
	v.cols, v.rows = v.screen.Size()
	v.engine.Resize(float32(v.cols*cellW), float32(v.rows*cellH))
}

func (v *viewer) cycleSkin() {
	names := v.cfg.SkinNames()
	next := ""
	if v.cfg.Status.Skin == "" && len(names) > 0 {
		next = names[0]
	}
	for i, n := range names {
		if n == v.cfg.Status.Skin && i+1 < len(names) {
			next = names[i+1]
		}
	}
	cfg := *v.cfg
	if err := cfg.UseSkin(next); err != nil {
		slog.Warn("skin switch failed", "skin", next, "error", err)
		return
	}
	if err := v.engine.ApplyConfig(&cfg); err != nil {
		slog.Warn("skin switch failed", "skin", next, "error", err)
		return
	}
	v.cfg = &cfg
}

func (v *viewer) orbCenter() (x, y int) {
	return v.cols / 2, v.rows / 2
}

func rgb(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (v *viewer) draw() {
	f := v.engine.Frame()
	s := v.screen
	s.Clear()

	v.drawOrb(f)
	v.drawSpirits(f)

	label := fmt.Sprintf(" %s  errors=%d ", f.Label(), f.Metric)
	labelStyle := tcell.StyleDefault.Foreground(rgb(v.cfg.Derived.Colors[f.Class])).Bold(true)
	v.text((v.cols-len(label))/2, 0, label, labelStyle)

	info := fmt.Sprintf("speed %.2f  intensity %.1f  fixers %d  defenders %d", f.Params.Speed, f.Params.Intensity, f.Fixers, f.Defenders)
	if v.cfg.Status.Skin != "" {
		info += "  skin " + v.cfg.Status.Skin
	}
	v.text(1, 1, info, tcell.StyleDefault.Foreground(tcell.ColorGray))
	v.text(1, v.rows-1, "[up/down +/-] metric  [pgup/pgdn] x10  [c] clear  [b/click] burst  [k] skin  [q] quit", tcell.StyleDefault.Foreground(tcell.ColorGray))

	s.Show()
}

func (v *viewer) drawOrb(f engine.Frame) {
	cx, cy := v.orbCenter()
	cy += int(math.Round(f.Idle.Float))
	radius := math.Min(float64(v.cols)/2, float64(v.rows)) * 0.2 * f.Idle.Scale
	style := tcell.StyleDefault.Foreground(rgb(f.Params.Color))

	// Cells are twice as tall as wide, so x distances are halved
	for dy := -int(radius) - 1; dy <= int(radius)+1; dy++ {
		for dx := -2*int(radius) - 2; dx <= 2*int(radius)+2; dx++ {
			d := math.Hypot(float64(dx)/2, float64(dy))
			if d > radius {
				continue
			}
			ch := '●'
			// Facets sweep with the core angle
			a := math.Atan2(float64(dy), float64(dx)/2) - f.Idle.CoreAngle
			if math.Mod(math.Abs(a), math.Pi/3) < 0.15 {
				ch = '◆'
			}
			v.screen.SetContent(cx+dx, cy+dy, ch, nil, style)
		}
	}

	if f.Pulse.Active && f.Pulse.Opacity() > 0.1 {
		pr := radius * f.Pulse.RadiusScale() * 0.5
		ring := tcell.StyleDefault.Foreground(rgb(f.Params.Color.BlendRgb(colorful.Color{}, 1-f.Pulse.Opacity())))
		for i := 0; i < 72; i++ {
			a := float64(i) * math.Pi / 36
			x := cx + int(math.Round(math.Cos(a)*pr*2))
			y := cy + int(math.Round(math.Sin(a)*pr))
			v.screen.SetContent(x, y, '·', nil, ring)
		}
	}
}

var eyeRunes = [...]rune{
	systems.EyesNormal: 'o',
	systems.EyesSquint: '-',
	systems.EyesWide:   'O',
	systems.EyesMad:    'x',
}

func (v *viewer) drawSpirits(f engine.Frame) {
	for _, sp := range f.Spirits {
		off := systems.Motion(sp, f.Time)
		x := int((float64(sp.X) + off.DX) / cellW)
		y := int((float64(sp.Y) + off.DY) / cellH)
		style := tcell.StyleDefault.Foreground(rgb(systems.BodyColor(sp.Mood)))

		ch := eyeRunes[systems.EyesFor(sp.Mood)]
		if sp.Kind == components.KindDefender {
			ch = '@'
		}
		if sp.Behavior == components.BehaviorCheer {
			ch = '^'
		}
		v.screen.SetContent(x, y, ch, nil, style)
		if sp.Tooltip != "" {
			v.text(x-len(sp.Tooltip)/2, y-1, sp.Tooltip, style)
		}
	}
}

func (v *viewer) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}
