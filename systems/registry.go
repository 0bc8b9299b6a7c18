package systems

// Frame phase identifiers, shared by the perf collector and the HUD.
const (
	PhaseInput     = "input"
	PhaseReconcile = "reconcile"
	PhaseTimers    = "timers"
	PhaseAnimate   = "animate"
	PhaseTelemetry = "telemetry"
	PhaseRender    = "render"
)

// SystemInfo describes one frame phase for display.
type SystemInfo struct {
	ID          string // Perf tracking key
	Name        string // Display name
	Description string
	Category    string // "engine", "host"
}

// SystemRegistry keeps phase naming in one place so the HUD and the perf
// tracker agree.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry holding every frame phase in
// execution order.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: PhaseInput, Name: "Input", Description: "Drains pointer, keyboard and config events", Category: "host"})

	r.Register(SystemInfo{ID: PhaseReconcile, Name: "Reconcile", Description: "Brings the fixer count to the metric target", Category: "engine"})
	r.Register(SystemInfo{ID: PhaseTimers, Name: "Timers", Description: "Fires defender expiry and metric reset", Category: "engine"})
	r.Register(SystemInfo{ID: PhaseAnimate, Name: "Animate", Description: "Eases orb parameters, pulse and idle motion", Category: "engine"})

	r.Register(SystemInfo{ID: PhaseTelemetry, Name: "Telemetry", Description: "Samples the frame and flushes stats", Category: "host"})
	r.Register(SystemInfo{ID: PhaseRender, Name: "Render", Description: "Draws the orb, spirits and HUD", Category: "host"})
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns phase info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered phases.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCategory returns phases filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// IDs returns all phase IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
