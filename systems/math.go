package systems

import "math"

// Clamp functions for common value ranges

// clampFloat clamps a float64 value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clampInt clamps an int value between min and max.
func clampInt(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// Smoothing

// smoothingFactor returns the frame-rate independent blend weight for an
// exponential approach: 1 - e^(-rate*dt). The result is in [0, 1).
func smoothingFactor(rate, dt float64) float64 {
	if rate <= 0 || dt <= 0 {
		return 0
	}
	return 1 - math.Exp(-rate*dt)
}

// approach moves current toward target by factor t in [0, 1] and snaps
// once the remaining gap is below snapEpsilon. It never overshoots.
func approach(current, target, t float64) float64 {
	next := current + (target-current)*t
	if math.Abs(target-next) < snapEpsilon {
		return target
	}
	return next
}

// snapEpsilon is the distance at which smoothed values land on their target.
const snapEpsilon = 1e-6

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// validDelta reports whether dt can advance time.
func validDelta(dt float64) bool {
	return dt > 0 && finite(dt)
}
