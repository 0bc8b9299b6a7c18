package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vitals/systems"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Label      string
	LabelColor rl.Color
	Metric     int
	Skin       string

	OrbColor        rl.Color
	Speed           float64
	TargetSpeed     float64
	Intensity       float64
	TargetIntensity float64
	PulseActive     bool
	PulseProgress   float64
	Float           float64

	Fixers       int
	Defenders    int
	ClearPending bool

	Tick   int64
	FPS    int32
	Paused bool
}

func hud(data any) HUDData {
	d, _ := data.(HUDData)
	return d
}

// StatusPanelDescriptor describes the orb and population readout.
func StatusPanelDescriptor() PanelDescriptor {
	return PanelDescriptor{
		ID:     "status",
		Title:  "Status",
		Width:  240,
		Anchor: AnchorTopRight,
		Sections: []SectionDescriptor{
			{
				ID:    "metric",
				Title: "Metric",
				Fields: []FieldDescriptor{
					{ID: "errors", Label: "Errors", Widget: WidgetText, Format: "%.0f",
						Getter: func(d any) float32 { return float32(hud(d).Metric) }},
					{ID: "label", Label: "State", Widget: WidgetText,
						TextGetter:  func(d any) string { return hud(d).Label },
						ColorGetter: func(d any) rl.Color { return hud(d).LabelColor }},
					{ID: "skin", Label: "Skin", Widget: WidgetText,
						TextGetter: func(d any) string { return hud(d).Skin },
						Visible:    func(d any) bool { return hud(d).Skin != "" }},
				},
			},
			{
				ID:    "orb",
				Title: "Orb",
				Fields: []FieldDescriptor{
					{ID: "color", Label: "Color", Widget: WidgetColorSwatch,
						ColorGetter: func(d any) rl.Color { return hud(d).OrbColor }},
					{ID: "speed", Label: "Speed", Widget: WidgetBar, Range: FieldRange{Min: 0, Max: 5},
						Getter: func(d any) float32 { return float32(hud(d).Speed) }},
					{ID: "intensity", Label: "Intensity", Widget: WidgetBar, Range: FieldRange{Min: 0, Max: 20},
						Getter: func(d any) float32 { return float32(hud(d).Intensity) }},
					{ID: "pulse", Label: "Pulse", Widget: WidgetBar, Range: DefaultRange(),
						Getter:  func(d any) float32 { return float32(hud(d).PulseProgress) },
						Visible: func(d any) bool { return hud(d).PulseActive }},
					{ID: "float", Label: "Float", Widget: WidgetCenteredBar, Range: CenteredRange(),
						Getter: func(d any) float32 { return float32(hud(d).Float) }},
				},
			},
			{
				ID:    "population",
				Title: "Spirits",
				Fields: []FieldDescriptor{
					{ID: "fixers", Label: "Fixers", Widget: WidgetText, Format: "%.0f",
						Getter: func(d any) float32 { return float32(hud(d).Fixers) }},
					{ID: "defenders", Label: "Defenders", Widget: WidgetText, Format: "%.0f",
						Getter: func(d any) float32 { return float32(hud(d).Defenders) }},
					{ID: "clear", Label: "Reset", Widget: WidgetText,
						TextGetter: func(any) string { return "pending" },
						Color:      rl.Yellow,
						Visible:    func(d any) bool { return hud(d).ClearPending }},
				},
			},
		},
	}
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	status   PanelDescriptor
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		status:   StatusPanelDescriptor(),
	}
}

// Draw renders the status banner and the status panel.
func (h *HUD) Draw(data HUDData, screenW, screenH int32) {
	const bannerSize = 28
	w := rl.MeasureText(data.Label, bannerSize)
	rl.DrawText(data.Label, (screenW-w)/2, 16, bannerSize, data.LabelColor)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d", data.Tick, data.FPS),
		10, screenH-45, 14, rl.LightGray,
	)
	if data.Paused {
		rl.DrawText("PAUSED", (screenW-rl.MeasureText("PAUSED", 20))/2, 50, 20, rl.Yellow)
	}

	h.renderer.DrawDescribedPanel(h.status, data, screenW, screenH)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	PhaseTimes map[string]time.Duration
	Total      time.Duration
	Registry   *systems.SystemRegistry
}

// PerfPanel renders per-phase frame timing.
type PerfPanel struct {
	x, y int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel in frame phase order.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Phases", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Total: %s", data.Total.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	if data.Registry == nil {
		return
	}
	for _, info := range data.Registry.All() {
		avg, ok := data.PhaseTimes[info.ID]
		if !ok {
			continue
		}
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", info.Name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
