package status

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		th     Thresholds
		metric int
		want   Classification
	}{
		{"zero", Thresholds{20, 60}, 0, Stable},
		{"at warning threshold", Thresholds{20, 60}, 20, Stable},
		{"just above warning", Thresholds{20, 60}, 21, Warning},
		{"at critical threshold", Thresholds{20, 60}, 60, Warning},
		{"just above critical", Thresholds{20, 60}, 61, Critical},
		{"compact skin stable", Thresholds{5, 10}, 5, Stable},
		{"compact skin warning", Thresholds{5, 10}, 10, Warning},
		{"compact skin critical", Thresholds{5, 10}, 11, Critical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.th.Classify(tt.metric); got != tt.want {
				t.Errorf("Classify(%d) = %v, want %v", tt.metric, got, tt.want)
			}
		})
	}
}

func TestClassifyMonotonic(t *testing.T) {
	for _, th := range []Thresholds{{20, 60}, {5, 10}, {0, 1}} {
		prev := th.Classify(0)
		for m := 1; m < 200; m++ {
			c := th.Classify(m)
			if c < prev {
				t.Fatalf("thresholds %+v: class decreased from %v to %v at metric %d", th, prev, c, m)
			}
			prev = c
		}
	}
}

func TestThresholdsValidate(t *testing.T) {
	if err := (Thresholds{20, 60}).Validate(); err != nil {
		t.Errorf("valid thresholds rejected: %v", err)
	}
	if err := (Thresholds{60, 20}).Validate(); err == nil {
		t.Error("expected error for descending thresholds")
	}
	if err := (Thresholds{10, 10}).Validate(); err == nil {
		t.Error("expected error for equal thresholds")
	}
	if err := (Thresholds{-1, 10}).Validate(); err == nil {
		t.Error("expected error for negative threshold")
	}
	if _, err := NewStore(Thresholds{5, 5}); err == nil {
		t.Error("NewStore should reject invalid thresholds")
	}
}

func TestStoreSetNotifies(t *testing.T) {
	s, err := NewStore(Thresholds{20, 60})
	if err != nil {
		t.Fatal(err)
	}

	var got []Change
	s.Subscribe(func(c Change) { got = append(got, c) })

	s.Set(61)
	if s.Metric() != 61 || s.Class() != Critical {
		t.Fatalf("after Set(61): metric=%d class=%v", s.Metric(), s.Class())
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(got))
	}
	if got[0].Previous != 0 || got[0].PreviousClass != Stable || !got[0].ClassChanged() {
		t.Errorf("unexpected change: %+v", got[0])
	}

	// Same value: no notification.
	if s.Set(61) {
		t.Error("Set with unchanged value reported a change")
	}
	if len(got) != 1 {
		t.Errorf("expected no extra notification, got %d total", len(got))
	}

	// Metric change within the same class still notifies.
	s.Set(70)
	if len(got) != 2 || got[1].ClassChanged() {
		t.Errorf("expected in-class notification, got %+v", got)
	}
}

func TestStoreClampsInvalidInput(t *testing.T) {
	s, _ := NewStore(Thresholds{20, 60})
	s.Set(30)

	s.Set(-5)
	if s.Metric() != 0 {
		t.Errorf("negative input: metric = %d, want 0", s.Metric())
	}

	s.SetFloat(42.9)
	if s.Metric() != 42 {
		t.Errorf("SetFloat(42.9): metric = %d, want 42", s.Metric())
	}

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -3.5} {
		s.Set(10)
		s.SetFloat(v)
		if s.Metric() != 0 {
			t.Errorf("SetFloat(%v): metric = %d, want 0", v, s.Metric())
		}
	}
}

func TestStoreUnsubscribe(t *testing.T) {
	s, _ := NewStore(Thresholds{20, 60})
	calls := 0
	unsub := s.Subscribe(func(Change) { calls++ })
	s.Set(1)
	unsub()
	unsub()
	s.Set(2)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestStoreSetThresholds(t *testing.T) {
	s, _ := NewStore(Thresholds{20, 60})
	s.Set(8)

	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	if err := s.SetThresholds(Thresholds{5, 10}); err != nil {
		t.Fatal(err)
	}
	if s.Class() != Warning {
		t.Errorf("class = %v, want warning", s.Class())
	}
	if len(changes) != 1 || changes[0].Metric != 8 {
		t.Errorf("expected a reclassification notice, got %+v", changes)
	}

	if err := s.SetThresholds(Thresholds{10, 5}); err == nil {
		t.Error("expected error for invalid thresholds")
	}
	if s.Thresholds() != (Thresholds{5, 10}) {
		t.Error("invalid thresholds must not be applied")
	}
}

func TestParseClassification(t *testing.T) {
	for _, c := range []Classification{Stable, Warning, Critical} {
		got, err := ParseClassification(c.String())
		if err != nil || got != c {
			t.Errorf("ParseClassification(%q) = %v, %v", c.String(), got, err)
		}
	}
	if _, err := ParseClassification("meltdown"); err == nil {
		t.Error("expected error for unknown name")
	}
}
