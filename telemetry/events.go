// Package telemetry provides run statistics, bookmarks, perf timing and CSV output.
package telemetry

import (
	"github.com/pthm-cable/vitals/status"
)

// EventType identifies telemetry events.
type EventType uint8

const (
	EventMetricChanged EventType = iota
	EventClassChanged
	EventPulseArmed
	EventReconciled
	EventBurst
	EventBurstRejected
	EventDefendersExpired
	EventCleared
	EventMetricReset
	EventResized
	EventConfigReloaded
)

var eventNames = [...]string{
	EventMetricChanged:    "metric_changed",
	EventClassChanged:     "class_changed",
	EventPulseArmed:       "pulse_armed",
	EventReconciled:       "reconciled",
	EventBurst:            "burst",
	EventBurstRejected:    "burst_rejected",
	EventDefendersExpired: "defenders_expired",
	EventCleared:          "cleared",
	EventMetricReset:      "metric_reset",
	EventResized:          "resized",
	EventConfigReloaded:   "config_reloaded",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// MarshalCSV writes the event name instead of its number.
func (t EventType) MarshalCSV() (string, error) {
	return t.String(), nil
}

// Event represents a single telemetry event.
type Event struct {
	Type EventType `csv:"event"`
	Tick int64     `csv:"tick"`
	Time float64   `csv:"time"`

	// Optional fields depending on event type
	Metric   int     `csv:"metric"`
	Previous int     `csv:"previous"`
	Class    string  `csv:"class"`
	Count    int     `csv:"count"`   // Spirits added or affected
	Removed  int     `csv:"removed"` // Spirits despawned
	X        float32 `csv:"x"`
	Y        float32 `csv:"y"`
}

// NewMetricEvent creates a metric change event.
func NewMetricEvent(tick int64, t float64, c status.Change) Event {
	return Event{
		Type:     EventMetricChanged,
		Tick:     tick,
		Time:     t,
		Metric:   c.Metric,
		Previous: c.Previous,
		Class:    c.Class.String(),
	}
}

// NewClassEvent creates a classification change event.
func NewClassEvent(tick int64, t float64, c status.Change) Event {
	return Event{
		Type:   EventClassChanged,
		Tick:   tick,
		Time:   t,
		Metric: c.Metric,
		Class:  c.Class.String(),
	}
}

// NewReconcileEvent records a reconciliation that spawned or despawned fixers.
func NewReconcileEvent(tick int64, t float64, metric, spawned, despawned int) Event {
	return Event{
		Type:    EventReconciled,
		Tick:    tick,
		Time:    t,
		Metric:  metric,
		Count:   spawned,
		Removed: despawned,
	}
}

// NewBurstEvent records an accepted or rejected burst at a point.
func NewBurstEvent(tick int64, t float64, x, y float32, count int, accepted bool) Event {
	typ := EventBurst
	if !accepted {
		typ = EventBurstRejected
	}
	return Event{
		Type:  typ,
		Tick:  tick,
		Time:  t,
		Count: count,
		X:     x,
		Y:     y,
	}
}

// NewCountEvent creates an event that only carries an affected count.
func NewCountEvent(typ EventType, tick int64, t float64, count int) Event {
	ev := Event{
		Type: typ,
		Tick: tick,
		Time: t,
	}
	if typ == EventDefendersExpired {
		ev.Removed = count
	} else {
		ev.Count = count
	}
	return ev
}

// NewResizeEvent records a viewport change.
func NewResizeEvent(tick int64, t float64, w, h float32) Event {
	return Event{
		Type: EventResized,
		Tick: tick,
		Time: t,
		X:    w,
		Y:    h,
	}
}
