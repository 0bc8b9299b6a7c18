package systems

import (
	"math"
	"math/rand"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/vitals/components"
	"github.com/pthm-cable/vitals/config"
	"github.com/pthm-cable/vitals/status"
	"github.com/pthm-cable/vitals/viewport"
)

// defenderPrefix marks defender ids so they are recognisable in logs.
const defenderPrefix = "def-"

// SpiritView is a read-only copy of one spirit for renderers.
type SpiritView struct {
	ID       string
	Kind     components.Kind
	Behavior components.Behavior
	Mood     components.Mood
	Tooltip  string
	X, Y     float32
	Phase    float32
	Since    float64
}

// ReconcileResult summarises one reconciliation pass.
type ReconcileResult struct {
	Target    int
	Spawned   int
	Despawned int
	Retinted  int // Fixers whose mood was refreshed
}

// Changed reports whether the pass altered the population.
func (r ReconcileResult) Changed() bool {
	return r.Spawned > 0 || r.Despawned > 0 || r.Retinted > 0
}

// PopulationSystem owns every spirit. Fixers follow the metric through
// Reconcile; defenders come from SpawnBurst and expire on a timer.
// Both kinds share one ordered collection.
type PopulationSystem struct {
	world  *ecs.World
	mapper *ecs.Map2[components.Position, components.Spirit]
	filter *ecs.Filter2[components.Position, components.Spirit]

	// Collection order; iteration order of the ECS is not relied upon
	order []ecs.Entity

	cfg    config.PopulationConfig
	view   *viewport.Viewport
	timers *Timers
	rng    *rand.Rand

	expiry TimerID

	// Lifetime counters
	spawned   int
	despawned int
}

// NewPopulationSystem creates an empty population.
func NewPopulationSystem(cfg *config.Config, view *viewport.Viewport, timers *Timers, rng *rand.Rand) *PopulationSystem {
	world := ecs.NewWorld()
	return &PopulationSystem{
		world:  world,
		mapper: ecs.NewMap2[components.Position, components.Spirit](world),
		filter: ecs.NewFilter2[components.Position, components.Spirit](world),
		cfg:    cfg.Population,
		view:   view,
		timers: timers,
		rng:    rng,
	}
}

// Reconfigure swaps in new population parameters. Existing spirits are kept.
func (s *PopulationSystem) Reconfigure(cfg *config.Config) {
	s.cfg = cfg.Population
}

// TargetFixers returns the fixer count a metric calls for.
func (s *PopulationSystem) TargetFixers(metric int) int {
	if s.cfg.UnitsPerFixer <= 0 || metric <= 0 {
		return 0
	}
	return clampInt(metric/s.cfg.UnitsPerFixer, 0, s.cfg.MaxFixers)
}

// Reconcile brings the fixer count to the target for metric. Growth appends
// fixers at random positions; shrinkage trims the last fixers in collection
// order; an unchanged count refreshes fixer moods. Defenders are never
// touched.
func (s *PopulationSystem) Reconcile(metric int, class status.Classification) ReconcileResult {
	res := ReconcileResult{Target: s.TargetFixers(metric)}
	mood := components.MoodFor(class)
	current := s.countKind(components.KindFixer)

	switch {
	case current < res.Target:
		for i := current; i < res.Target; i++ {
			s.spawnFixer(mood)
			res.Spawned++
		}
	case current > res.Target:
		res.Despawned = s.trimFixers(current - res.Target)
	default:
		for _, e := range s.order {
			sp := s.spirit(e)
			if sp.Kind != components.KindFixer {
				continue
			}
			if sp.Mood != mood {
				sp.Mood = mood
				res.Retinted++
			}
		}
	}
	return res
}

func (s *PopulationSystem) spawnFixer(mood components.Mood) {
	x, y := s.view.RandomPoint(s.rng)
	s.add(components.Position{X: x, Y: y}, components.Spirit{
		ID:       s.newID(""),
		Kind:     components.KindFixer,
		Behavior: components.BehaviorFixer,
		Mood:     mood,
		Phase:    s.rng.Float32(),
	})
}

// trimFixers removes n fixers scanning from the end of the collection.
func (s *PopulationSystem) trimFixers(n int) int {
	removed := 0
	kept := s.order[:0:0]
	for i := len(s.order) - 1; i >= 0; i-- {
		e := s.order[i]
		if removed < n && s.spirit(e).Kind == components.KindFixer {
			s.world.RemoveEntity(e)
			removed++
			continue
		}
		kept = append(kept, e)
	}
	// kept was built back to front
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	s.order = kept
	s.despawned += removed
	return removed
}

// SpawnBurst places a ring of defenders around an origin and schedules
// their removal. It does nothing while any defender exists and reports
// whether a burst was spawned.
func (s *PopulationSystem) SpawnBurst(x, y float32) bool {
	if s.countKind(components.KindDefender) > 0 {
		return false
	}
	if !finite(float64(x)) || !finite(float64(y)) {
		return false
	}

	burst := s.cfg.Burst
	origin := r2.Vec{X: float64(x), Y: float64(y)}
	adjust := r2.Vec{X: burst.CenterAdjust, Y: burst.CenterAdjust}
	for _, p := range RingPositions(origin, burst.Radius, burst.Count) {
		p = r2.Sub(p, adjust)
		s.add(components.Position{X: float32(p.X), Y: float32(p.Y)}, components.Spirit{
			ID:       s.newID(defenderPrefix),
			Kind:     components.KindDefender,
			Behavior: components.BehaviorBlocker,
			Mood:     components.MoodPanic,
			Tooltip:  burst.Tooltip,
			Phase:    s.rng.Float32(),
		})
	}
	if burst.Count > 0 {
		s.expiry = s.timers.After(burst.Expiry, s.expireDefenders)
	}
	return burst.Count > 0
}

// RingPositions spaces n points evenly on a circle, starting at angle 0.
func RingPositions(origin r2.Vec, radius float64, n int) []r2.Vec {
	out := make([]r2.Vec, 0, max(n, 0))
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		dir := r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
		out = append(out, r2.Add(origin, r2.Scale(radius, dir)))
	}
	return out
}

func (s *PopulationSystem) expireDefenders() {
	s.expiry = 0

	// Collect first; the world is locked while a query is open
	var toRemove []ecs.Entity
	query := s.filter.Query()
	for query.Next() {
		_, sp := query.Get()
		if sp.Kind == components.KindDefender {
			toRemove = append(toRemove, query.Entity())
		}
	}
	for _, e := range toRemove {
		s.world.RemoveEntity(e)
	}
	if len(toRemove) > 0 {
		s.compact()
		s.despawned += len(toRemove)
	}
}

// ExpiryPending reports whether a defender expiry is scheduled.
func (s *PopulationSystem) ExpiryPending() bool {
	return s.expiry != 0 && s.timers.Pending(s.expiry)
}

// ClearAll sets every fixer to cheer with a calm mood and no tooltip.
// The count is unchanged; the next reconciliation shrinks it.
func (s *PopulationSystem) ClearAll() int {
	n := 0
	for _, e := range s.order {
		sp := s.spirit(e)
		if sp.Kind != components.KindFixer {
			continue
		}
		sp.Behavior = components.BehaviorCheer
		sp.Since = s.timers.Now()
		sp.Mood = components.MoodCalm
		sp.Tooltip = ""
		n++
	}
	return n
}

// SetBehavior overwrites one spirit's behavior tag.
func (s *PopulationSystem) SetBehavior(id string, b components.Behavior) bool {
	sp := s.find(id)
	if sp == nil || int(b) >= components.BehaviorCount() {
		return false
	}
	sp.Behavior = b
	sp.Since = s.timers.Now()
	return true
}

// SetMood overwrites one spirit's mood.
func (s *PopulationSystem) SetMood(id string, m components.Mood) bool {
	sp := s.find(id)
	if sp == nil || int(m) >= len(components.MoodNames()) {
		return false
	}
	sp.Mood = m
	return true
}

// Spirits returns every spirit in collection order.
func (s *PopulationSystem) Spirits() []SpiritView {
	out := make([]SpiritView, 0, len(s.order))
	for _, e := range s.order {
		pos, sp := s.mapper.Get(e)
		out = append(out, SpiritView{
			ID:       sp.ID,
			Kind:     sp.Kind,
			Behavior: sp.Behavior,
			Mood:     sp.Mood,
			Tooltip:  sp.Tooltip,
			X:        pos.X,
			Y:        pos.Y,
			Phase:    sp.Phase,
			Since:    sp.Since,
		})
	}
	return out
}

// Counts returns the number of fixers and defenders.
func (s *PopulationSystem) Counts() (fixers, defenders int) {
	for _, e := range s.order {
		if s.spirit(e).Kind == components.KindDefender {
			defenders++
		} else {
			fixers++
		}
	}
	return fixers, defenders
}

// Lifetime returns how many spirits have been spawned and despawned.
func (s *PopulationSystem) Lifetime() (spawned, despawned int) {
	return s.spawned, s.despawned
}

// Reset removes every spirit and cancels a pending expiry.
func (s *PopulationSystem) Reset() {
	if s.expiry != 0 {
		s.timers.Cancel(s.expiry)
		s.expiry = 0
	}
	for _, e := range s.order {
		s.world.RemoveEntity(e)
	}
	s.despawned += len(s.order)
	s.order = s.order[:0]
}

func (s *PopulationSystem) add(pos components.Position, sp components.Spirit) {
	sp.Since = s.timers.Now()
	e := s.mapper.NewEntity(&pos, &sp)
	s.order = append(s.order, e)
	s.spawned++
}

func (s *PopulationSystem) spirit(e ecs.Entity) *components.Spirit {
	_, sp := s.mapper.Get(e)
	return sp
}

func (s *PopulationSystem) find(id string) *components.Spirit {
	for _, e := range s.order {
		if sp := s.spirit(e); sp.ID == id {
			return sp
		}
	}
	return nil
}

func (s *PopulationSystem) countKind(k components.Kind) int {
	n := 0
	for _, e := range s.order {
		if s.spirit(e).Kind == k {
			n++
		}
	}
	return n
}

// compact drops removed entities from the collection, keeping order.
func (s *PopulationSystem) compact() {
	kept := s.order[:0]
	for _, e := range s.order {
		if s.world.Alive(e) {
			kept = append(kept, e)
		}
	}
	s.order = kept
}

// newID returns a random id drawn from the population's rng so seeded
// runs are reproducible.
func (s *PopulationSystem) newID(prefix string) string {
	id, err := uuid.NewRandomFromReader(s.rng)
	if err != nil {
		return prefix + uuid.NewString()
	}
	return prefix + id.String()
}
