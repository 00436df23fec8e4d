package mission

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard and mouse input.
func (v *View) handleInput() {
	v.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	runner := v.m.runner
	if rl.IsKeyPressed(rl.KeySpace) {
		runner.ScheduleLaunch()
	}
	if rl.IsKeyPressed(rl.KeyA) {
		runner.Abort()
	}

	// Physics speed with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && runner.Speed() > 0.125 {
		runner.SetSpeed(runner.Speed() / 2)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && runner.Speed() < 64 {
		runner.SetSpeed(runner.Speed() * 2)
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		v.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		v.showPerf = !v.showPerf
	}
	if rl.IsKeyPressed(rl.KeyH) {
		v.showHelp = !v.showHelp
	}

	for _, key := range v.overlays.Keys() {
		if rl.IsKeyPressed(key) {
			v.overlays.HandleKeyPress(key)
		}
	}

	v.handleCameraInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (v *View) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	if w == v.screenWidth && h == v.screenHeight {
		return
	}
	v.screenWidth = w
	v.screenHeight = h
	v.camera.Resize(float64(w), float64(h))
	v.perf.SetPosition(10, h-220)
}

// handleCameraInput processes zoom controls. The camera always tracks the rocket.
func (v *View) handleCameraInput() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.camera.ZoomBy(1 + float64(wheel)*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		v.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		v.camera.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		v.camera.SetZoom(v.defaultZoom)
	}
}
