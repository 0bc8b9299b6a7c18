package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsData is the state the controls panel displays.
type ControlsData struct {
	Metric    int
	SliderMax int
	Label     string
	Skins     []string
	Skin      string
}

// ControlActions reports what the user did with the panel this frame.
type ControlActions struct {
	// Metric is the slider value; SetMetric is true when it moved
	Metric    int
	SetMetric bool

	Clear    bool
	NextSkin bool
}

// ControlsPanel is the developer panel: metric slider, clear button and
// skin switch.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Height returns the panel height.
func (c *ControlsPanel) Height() int32 {
	return c.renderer.Theme.LineHeight*6 + c.renderer.Theme.Padding*2 + 40
}

// Contains reports whether a screen point falls on the panel, so clicks
// there are not treated as burst clicks.
func (c *ControlsPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, c.bounds())
}

func (c *ControlsPanel) bounds() rl.Rectangle {
	return rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(c.Height())}
}

// Draw renders the panel and returns the actions taken.
func (c *ControlsPanel) Draw(data ControlsData) ControlActions {
	var act ControlActions
	if !c.visible {
		return act
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	r.DrawPanel(c.x, c.y, c.width, c.Height())

	y := c.y + padding
	rl.DrawText("Controls", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	inner := float32(c.width - padding*2)
	x := float32(c.x + padding)

	rl.DrawText(fmt.Sprintf("Errors: %d  (%s)", data.Metric, data.Label), c.x+padding, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += lineHeight
	value := gui.SliderBar(
		rl.Rectangle{X: x + 14, Y: float32(y), Width: inner - 50, Height: 18},
		"0", fmt.Sprintf("%d", data.SliderMax),
		float32(data.Metric), 0, float32(data.SliderMax),
	)
	if n := int(value); n != data.Metric {
		act.Metric = n
		act.SetMetric = true
	}
	y += lineHeight + 10

	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner/2 - 4, Height: 24}, "Clear All") {
		act.Clear = true
	}
	skinText := "Skin: default"
	if data.Skin != "" {
		skinText = "Skin: " + data.Skin
	}
	if len(data.Skins) > 0 && gui.Button(rl.Rectangle{X: x + inner/2 + 4, Y: float32(y), Width: inner/2 - 4, Height: 24}, skinText) {
		act.NextSkin = true
	}
	return act
}
