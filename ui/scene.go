package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/launch/camera"
	"github.com/pthm-cable/launch/sim"
	"github.com/pthm-cable/launch/vmath"
)

var (
	spaceColor  = rl.Color{R: 5, G: 5, B: 15, A: 255}
	skyBlue     = rl.Color{R: 110, G: 160, B: 220, A: 255}
	groundColor = rl.Color{R: 60, G: 90, B: 50, A: 255}
	bodyColor   = rl.Color{R: 220, G: 220, B: 225, A: 255}
	flameColor  = rl.Color{R: 255, G: 150, B: 50, A: 230}
	idleNozzle  = rl.Color{R: 90, G: 90, B: 100, A: 255}
)

const defaultTrailLength = 2048

// Scene draws the world around the rocket: sky, ground, trail, vehicle and the
// vector overlays.
type Scene struct {
	Camera   *camera.Camera
	Overlays *OverlayRegistry
	env      sim.Environment

	trail     []vmath.Vec2
	trailHead int
	trailLen  int
	lastTick  uint64
}

// NewScene creates a scene that draws with cam.
func NewScene(cam *camera.Camera, env sim.Environment, overlays *OverlayRegistry) *Scene {
	return &Scene{
		Camera:   cam,
		Overlays: overlays,
		env:      env,
		trail:    make([]vmath.Vec2, defaultTrailLength),
	}
}

// Update follows the rocket and extends the trail.
func (sc *Scene) Update(s *sim.Snapshot) {
	if s == nil {
		return
	}
	sc.Camera.Follow(s.Position.X, s.Position.Y)

	if s.Tick == sc.lastTick || s.Phase != sim.PhaseLaunched && s.Phase != sim.PhaseAborted {
		return
	}
	sc.lastTick = s.Tick
	if sc.trailLen > 0 {
		prev := sc.trail[(sc.trailHead-1+len(sc.trail))%len(sc.trail)]
		if float64(sc.Camera.Scale(prev.Sub(s.Position).Length())) < 2 {
			return
		}
	}
	sc.trail[sc.trailHead] = s.Position
	sc.trailHead = (sc.trailHead + 1) % len(sc.trail)
	if sc.trailLen < len(sc.trail) {
		sc.trailLen++
	}
}

// ClearTrail forgets the recorded flight path.
func (sc *Scene) ClearTrail() {
	sc.trailHead = 0
	sc.trailLen = 0
}

// Draw renders the scene for a snapshot.
func (sc *Scene) Draw(s *sim.Snapshot) {
	if s == nil {
		return
	}
	cam := sc.Camera
	rl.ClearBackground(skyColor(s.Density))

	if sc.Overlays.IsEnabled(OverlayAltitudeGrid) {
		sc.drawAltitudeGrid()
	}
	sc.drawKarmanLine()
	sc.drawGround()

	if sc.Overlays.IsEnabled(OverlayTrail) {
		sc.drawTrail()
	}

	sc.drawRocket(s)

	if sc.Overlays.IsEnabled(OverlayVelocity) && !s.Velocity.IsZero() {
		cx, cy := cam.WorldToScreen(s.Position.X, s.Position.Y)
		v := s.Velocity.Normalize().Scale(60)
		end := rl.Vector2{X: cx + float32(v.X), Y: cy - float32(v.Y)}
		rl.DrawLineEx(rl.Vector2{X: cx, Y: cy}, end, 2, rl.SkyBlue)
		rl.DrawText(fmt.Sprintf("%.0f m/s", s.Speed()), int32(end.X)+4, int32(end.Y)-6, 12, rl.SkyBlue)
	}
}

// skyColor blends from space black to sky blue with air density.
func skyColor(density float64) rl.Color {
	t := vmath.Clamp(density, 0, 1)
	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return rl.Color{
		R: lerp(spaceColor.R, skyBlue.R),
		G: lerp(spaceColor.G, skyBlue.G),
		B: lerp(spaceColor.B, skyBlue.B),
		A: 255,
	}
}

// gridStep returns the smallest 1-2-5 altitude step at least minPixels apart.
func gridStep(zoom, minPixels float64) float64 {
	if zoom <= 0 {
		return 0
	}
	raw := minPixels / zoom
	exp := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if m*exp >= raw {
			return m * exp
		}
	}
	return 10 * exp
}

func (sc *Scene) drawGround() {
	cam := sc.Camera
	gy := cam.GroundY()
	if gy >= float32(cam.ViewportH) {
		return
	}
	rl.DrawRectangle(0, int32(gy), int32(cam.ViewportW), int32(float32(cam.ViewportH)-gy)+1, groundColor)

	// pad marker at longitude zero
	if cam.IsVisible(0, 0, 20) {
		px, py := cam.WorldToScreen(0, 0)
		w := cam.Scale(20)
		rl.DrawRectangle(int32(px-w/2), int32(py), int32(w)+1, 3, rl.DarkGray)
	}
}

func (sc *Scene) drawKarmanLine() {
	cam := sc.Camera
	if !cam.IsVisible(cam.X, sc.env.KarmanLine, 0) {
		return
	}
	_, y := cam.WorldToScreen(cam.X, sc.env.KarmanLine)
	for x := int32(0); x < int32(cam.ViewportW); x += 16 {
		rl.DrawLine(x, int32(y), x+8, int32(y), rl.Violet)
	}
	rl.DrawText("Karman line", 10, int32(y)-16, 12, rl.Violet)
}

func (sc *Scene) drawAltitudeGrid() {
	cam := sc.Camera
	step := gridStep(cam.Zoom, 80)
	if step <= 0 {
		return
	}
	halfH := cam.ViewportH / (2 * cam.Zoom)
	lo := math.Max(0, math.Ceil((cam.Y-halfH)/step)*step)
	lineColor := rl.Color{R: 255, G: 255, B: 255, A: 40}
	for alt := lo; alt <= cam.Y+halfH; alt += step {
		_, y := cam.WorldToScreen(cam.X, alt)
		rl.DrawLine(0, int32(y), int32(cam.ViewportW), int32(y), lineColor)
		rl.DrawText(formatAltitude(alt), int32(cam.ViewportW)-80, int32(y)-14, 12, rl.Color{R: 255, G: 255, B: 255, A: 120})
	}
}

func formatAltitude(m float64) string {
	if m >= 1000 {
		return fmt.Sprintf("%g km", m/1000)
	}
	return fmt.Sprintf("%g m", m)
}

func (sc *Scene) drawTrail() {
	if sc.trailLen < 2 {
		return
	}
	cam := sc.Camera
	n := len(sc.trail)
	start := (sc.trailHead - sc.trailLen + n) % n
	prev := sc.trail[start]
	px, py := cam.WorldToScreen(prev.X, prev.Y)
	for i := 1; i < sc.trailLen; i++ {
		p := sc.trail[(start+i)%n]
		x, y := cam.WorldToScreen(p.X, p.Y)
		// skip segments that cross the longitude seam
		if math.Abs(float64(x-px)) < cam.ViewportW/2 {
			alpha := uint8(60 + 180*i/sc.trailLen)
			rl.DrawLineV(rl.Vector2{X: px, Y: py}, rl.Vector2{X: x, Y: y}, rl.Color{R: 255, G: 220, B: 120, A: alpha})
		}
		px, py = x, y
	}
}

// toWorld maps a rocket-frame point to world coordinates.
func toWorld(s *sim.Snapshot, p vmath.Vec2) vmath.Vec2 {
	return p.Rotate(s.Orientation - math.Pi/2).Add(s.Position)
}

func (sc *Scene) drawRocket(s *sim.Snapshot) {
	cam := sc.Camera
	if !cam.IsVisible(s.Position.X, s.Position.Y, s.Height) {
		return
	}
	cx, cy := cam.WorldToScreen(s.Position.X, s.Position.Y)
	w := max(cam.Scale(s.Width), 2)
	h := max(cam.Scale(s.Height), 6)
	rotation := -float32(vmath.Degrees(s.Orientation - math.Pi/2))

	rl.DrawRectanglePro(
		rl.Rectangle{X: cx, Y: cy, Width: w, Height: h},
		rl.Vector2{X: w / 2, Y: h / 2},
		rotation,
		bodyColor,
	)

	// nose
	nose := toWorld(s, vmath.Vec2{Y: s.Height/2 + s.Width})
	nx, ny := cam.WorldToScreen(nose.X, nose.Y)
	rl.DrawLineEx(rl.Vector2{X: cx, Y: cy}, rl.Vector2{X: nx, Y: ny}, 1, rl.Red)

	for _, th := range s.Thrusters {
		sc.drawThruster(s, th)
	}
}

func (sc *Scene) drawThruster(s *sim.Snapshot, th sim.ThrusterState) {
	cam := sc.Camera
	pos := toWorld(s, th.Position)
	x, y := cam.WorldToScreen(pos.X, pos.Y)
	r := max(cam.Scale(th.Size/2), 1.5)

	nozzle := vmath.FromPolar(1, th.Orientation+s.Orientation-math.Pi/2)

	if th.Firing {
		length := math.Max(float64(cam.Scale(th.Size*4*th.Throttle)), 6)
		end := rl.Vector2{X: x + float32(nozzle.X*length), Y: y - float32(nozzle.Y*length)}
		rl.DrawLineEx(rl.Vector2{X: x, Y: y}, end, r*2, flameColor)
	}
	color := idleNozzle
	if th.Active {
		color = rl.Orange
	}
	rl.DrawCircleV(rl.Vector2{X: x, Y: y}, r, color)

	if sc.Overlays.IsEnabled(OverlayThrustVectors) && th.Firing {
		f := th.Thrust.Rotate(s.Orientation - math.Pi/2).Normalize().Scale(30 * th.Throttle)
		rl.DrawLineEx(rl.Vector2{X: x, Y: y}, rl.Vector2{X: x + float32(f.X), Y: y - float32(f.Y)}, 1.5, rl.Green)
	}
	if sc.Overlays.IsEnabled(OverlayThrusterLabels) {
		rl.DrawText(th.Name, int32(x)+4, int32(y)+4, 10, rl.White)
	}
}
