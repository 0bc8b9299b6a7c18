// Package status holds the process-wide health metric and its classification.
package status

import (
	"fmt"
	"math"
)

// Classification is the three-level discretization of the metric.
type Classification uint8

const (
	Stable Classification = iota
	Warning
	Critical
)

// String returns the lowercase name used in config and logs.
func (c Classification) String() string {
	switch c {
	case Stable:
		return "stable"
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	}
	return fmt.Sprintf("classification(%d)", uint8(c))
}

// Label returns the operator-facing status text.
func (c Classification) Label() string {
	switch c {
	case Warning:
		return "STRESSED"
	case Critical:
		return "CRITICAL FAILURE"
	}
	return "OPERATIONAL"
}

// ParseClassification is the inverse of String.
func ParseClassification(s string) (Classification, error) {
	switch s {
	case "stable":
		return Stable, nil
	case "warning":
		return Warning, nil
	case "critical":
		return Critical, nil
	}
	return Stable, fmt.Errorf("unknown classification %q", s)
}

// Thresholds are the two ascending cut points t1 < t2.
// Stable: m <= Warning, Warning: Warning < m <= Critical, Critical: m > Critical.
type Thresholds struct {
	Warning  int `yaml:"warning"`
	Critical int `yaml:"critical"`
}

// Validate checks 0 <= t1 < t2.
func (t Thresholds) Validate() error {
	if t.Warning < 0 {
		return fmt.Errorf("warning threshold %d is negative", t.Warning)
	}
	if t.Critical <= t.Warning {
		return fmt.Errorf("critical threshold %d must exceed warning threshold %d", t.Critical, t.Warning)
	}
	return nil
}

// Classify maps a metric value to its classification.
func (t Thresholds) Classify(metric int) Classification {
	switch {
	case metric <= t.Warning:
		return Stable
	case metric <= t.Critical:
		return Warning
	default:
		return Critical
	}
}

// Change describes a single store transition delivered to subscribers.
type Change struct {
	Metric        int
	Previous      int
	Class         Classification
	PreviousClass Classification
}

// ClassChanged reports whether the transition crossed a threshold.
func (c Change) ClassChanged() bool {
	return c.Class != c.PreviousClass
}

// Listener receives store changes synchronously.
type Listener func(Change)

// Store is the single source of truth for the metric.
// It is not safe for concurrent use; the frame loop owns it.
type Store struct {
	metric     int
	class      Classification
	thresholds Thresholds

	listeners map[int]Listener
	order     []int
	nextID    int
}

// NewStore creates a store at metric 0.
func NewStore(t Thresholds) (*Store, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid thresholds: %w", err)
	}
	return &Store{
		thresholds: t,
		class:      t.Classify(0),
		listeners:  make(map[int]Listener),
	}, nil
}

// Metric returns the current metric.
func (s *Store) Metric() int { return s.metric }

// Class returns the current classification.
func (s *Store) Class() Classification { return s.class }

// Thresholds returns the active thresholds.
func (s *Store) Thresholds() Thresholds { return s.thresholds }

// Set replaces the metric. Negative values clamp to zero.
// Subscribers are notified only when the metric or classification changed.
func (s *Store) Set(n int) bool {
	if n < 0 {
		n = 0
	}
	if n == s.metric {
		return false
	}
	prev, prevClass := s.metric, s.class
	s.metric = n
	s.class = s.thresholds.Classify(n)
	s.notify(Change{Metric: n, Previous: prev, Class: s.class, PreviousClass: prevClass})
	return true
}

// SetFloat accepts untrusted numeric input. NaN, infinities and negative
// values clamp to zero; finite values are floored.
func (s *Store) SetFloat(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return s.Set(0)
	}
	if v > math.MaxInt32 {
		v = math.MaxInt32
	}
	return s.Set(int(math.Floor(v)))
}

// SetThresholds swaps the cut points and reclassifies the current metric.
func (s *Store) SetThresholds(t Thresholds) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid thresholds: %w", err)
	}
	s.thresholds = t
	prevClass := s.class
	s.class = t.Classify(s.metric)
	if s.class != prevClass {
		s.notify(Change{Metric: s.metric, Previous: s.metric, Class: s.class, PreviousClass: prevClass})
	}
	return nil
}

// Subscribe registers l and returns a function that removes it.
// Listeners run in subscription order.
func (s *Store) Subscribe(l Listener) func() {
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.order = append(s.order, id)
	return func() {
		if _, ok := s.listeners[id]; !ok {
			return
		}
		delete(s.listeners, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

func (s *Store) notify(c Change) {
	// Listeners may unsubscribe while being notified.
	ids := append([]int(nil), s.order...)
	for _, id := range ids {
		if l, ok := s.listeners[id]; ok {
			l(c)
		}
	}
}
