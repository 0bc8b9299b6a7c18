package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard and pointer input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Metric nudges
	step := 1
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		step = 10
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressedRepeat(rl.KeyUp) {
		g.engine.SetMetric(g.frame.Metric + step)
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressedRepeat(rl.KeyDown) {
		g.engine.SetMetric(g.frame.Metric - step)
	}

	if rl.IsKeyPressed(rl.KeyC) {
		g.engine.Clear(g.cfg.Population.Clear.ResetAfter)
	}
	if rl.IsKeyPressed(rl.KeyK) {
		g.cycleSkin()
	}
	if rl.IsKeyPressed(rl.KeyB) {
		x, y := g.orb.Center()
		g.engine.SpawnBurst(x, y)
	}
	if rl.IsKeyPressed(rl.KeyS) {
		g.saveSnapshot(nil)
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}

	// Click anywhere outside the panel spawns a defender burst
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		m := rl.GetMousePosition()
		if !g.controls.Contains(m.X, m.Y) {
			g.engine.SpawnBurst(m.X, m.Y)
		}
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.background.Resize(w, h)
	g.orb.Resize(w, h)
	g.engine.Resize(w, h)
}
