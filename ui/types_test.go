package ui

import "testing"

func TestPanelOrigin(t *testing.T) {
	tests := []struct {
		anchor PanelAnchor
		x, y   int32
	}{
		{AnchorTopLeft, 10, 10},
		{AnchorTopRight, 750, 10},
		{AnchorBottomLeft, 10, 490},
		{AnchorBottomRight, 750, 490},
	}
	for _, tt := range tests {
		x, y := PanelOrigin(tt.anchor, 240, 100, 1000, 600, 10)
		if x != tt.x || y != tt.y {
			t.Errorf("anchor %d: origin = (%d,%d), want (%d,%d)", tt.anchor, x, y, tt.x, tt.y)
		}
	}
}

func TestStatusPanelHeight(t *testing.T) {
	th := DefaultTheme()
	pd := StatusPanelDescriptor()

	// title, 3 section headers, 3 text + 1 swatch + 3 bars + 1 centered bar + 3 text
	want := th.Padding*2 + th.LineHeight + 4 +
		3*th.LineHeight + 3*4 +
		7*th.LineHeight + 4*(th.LineHeight+2)
	if got := th.PanelHeight(pd); got != want {
		t.Errorf("PanelHeight = %d, want %d", got, want)
	}
}

func TestStatusPanelGetters(t *testing.T) {
	data := HUDData{Metric: 42, Label: "STRESSED", Fixers: 10, PulseActive: false}
	byID := map[string]FieldDescriptor{}
	for _, sd := range StatusPanelDescriptor().Sections {
		for _, fd := range sd.Fields {
			byID[fd.ID] = fd
		}
	}

	if v := byID["errors"].Getter(data); v != 42 {
		t.Errorf("errors = %v", v)
	}
	if s := byID["label"].TextGetter(data); s != "STRESSED" {
		t.Errorf("label = %q", s)
	}
	if byID["pulse"].Visible(data) {
		t.Error("pulse bar should hide while the pulse is inactive")
	}
	if byID["skin"].Visible(data) {
		t.Error("skin row should hide without a skin")
	}
	// Foreign data falls back to zero values
	if v := byID["fixers"].Getter(nil); v != 0 {
		t.Errorf("fixers from nil = %v", v)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		v    float32
		rng  FieldRange
		want float32
	}{
		{0.5, DefaultRange(), 0.5},
		{-1, DefaultRange(), 0},
		{30, FieldRange{Min: 0, Max: 20}, 1},
		{2.5, FieldRange{Min: 0, Max: 5}, 0.5},
		{1, FieldRange{Min: 1, Max: 1}, 0},
	}
	for _, tt := range tests {
		if got := normalize(tt.v, tt.rng); got != tt.want {
			t.Errorf("normalize(%v, %+v) = %v, want %v", tt.v, tt.rng, got, tt.want)
		}
	}
}
