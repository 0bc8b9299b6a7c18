package engine

import (
	"fmt"
	"sort"

	"github.com/pthm-cable/vitals/config"
)

// Scenario replays timed engine actions for headless runs.
type Scenario struct {
	steps        []config.ScenarioStep
	next         int
	defaultReset float64
}

// NewScenario orders steps by time, keeping the written order for ties.
// defaultReset is the clear delay used by steps that do not set one.
func NewScenario(steps []config.ScenarioStep, defaultReset float64) *Scenario {
	sorted := append([]config.ScenarioStep(nil), steps...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	return &Scenario{steps: sorted, defaultReset: defaultReset}
}

// Apply runs every pending step due at or before now and returns how many
// ran. Unknown actions are reported but do not stop later steps.
func (s *Scenario) Apply(e *Engine, now float64) (int, error) {
	ran := 0
	var firstErr error
	for s.next < len(s.steps) && s.steps[s.next].At <= now {
		if err := s.run(e, s.steps[s.next]); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("scenario step %d: %w", s.next, err)
		}
		s.next++
		ran++
	}
	return ran, firstErr
}

func (s *Scenario) run(e *Engine, step config.ScenarioStep) error {
	switch step.Action {
	case "set":
		e.SetMetric(step.Metric)
	case "burst":
		e.SpawnBurst(float32(step.X), float32(step.Y))
	case "clear":
		after := s.defaultReset
		if step.After != nil {
			after = *step.After
		}
		e.Clear(after)
	case "resize":
		e.Resize(float32(step.Width), float32(step.Height))
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
	return nil
}

// Done reports whether every step has run.
func (s *Scenario) Done() bool { return s.next >= len(s.steps) }

// Remaining returns the number of steps not yet run.
func (s *Scenario) Remaining() int { return len(s.steps) - s.next }

// End returns the time of the last step.
func (s *Scenario) End() float64 {
	if len(s.steps) == 0 {
		return 0
	}
	return s.steps[len(s.steps)-1].At
}
