package telemetry

import "github.com/pthm-cable/vitals/components"

// LifetimeStats tracks one spirit from spawn to despawn.
type LifetimeStats struct {
	Kind      components.Kind
	BirthTick int64
	BirthTime float64
}

// LifetimeTracker follows spirit ids across frames and reports how long
// despawned spirits lived.
type LifetimeTracker struct {
	stats map[string]*LifetimeStats
	seen  map[string]struct{} // scratch set reused by Sync

	// Accumulated since the last Drain
	fixerSum, defenderSum     float64
	fixerCount, defenderCount int
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[string]*LifetimeStats),
		seen:  make(map[string]struct{}),
	}
}

// Sync registers ids that appeared and retires ids that disappeared since
// the previous call. ids and kinds are parallel slices.
func (lt *LifetimeTracker) Sync(ids []string, kinds []components.Kind, tick int64, now float64) {
	clear(lt.seen)
	for i, id := range ids {
		lt.seen[id] = struct{}{}
		if _, ok := lt.stats[id]; !ok {
			lt.stats[id] = &LifetimeStats{Kind: kinds[i], BirthTick: tick, BirthTime: now}
		}
	}
	for id, s := range lt.stats {
		if _, ok := lt.seen[id]; ok {
			continue
		}
		age := now - s.BirthTime
		if s.Kind == components.KindDefender {
			lt.defenderSum += age
			lt.defenderCount++
		} else {
			lt.fixerSum += age
			lt.fixerCount++
		}
		delete(lt.stats, id)
	}
}

// Get returns the lifetime stats for a live spirit, or nil if not found.
func (lt *LifetimeTracker) Get(id string) *LifetimeStats {
	return lt.stats[id]
}

// Count returns the number of tracked spirits.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// Drain returns the mean lifetimes of spirits retired since the last Drain
// and resets the accumulators.
func (lt *LifetimeTracker) Drain() (fixerMean, defenderMean float64) {
	if lt.fixerCount > 0 {
		fixerMean = lt.fixerSum / float64(lt.fixerCount)
	}
	if lt.defenderCount > 0 {
		defenderMean = lt.defenderSum / float64(lt.defenderCount)
	}
	lt.fixerSum, lt.defenderSum = 0, 0
	lt.fixerCount, lt.defenderCount = 0, 0
	return fixerMean, defenderMean
}
