package mission

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/launch/camera"
	"github.com/pthm-cable/launch/ui"
)

const helpText = "[Space] Launch  [A] Abort  [</>] Speed  [Tab] Controls  [P] Perf  [H] Help  [+/-] Zoom  [Home] Reset zoom  [F11] Fullscreen"

// View renders a mission with raylib. All methods must be called on the thread
// that owns the window; the mission itself runs on its own goroutine.
type View struct {
	m *Mission

	camera   *camera.Camera
	overlays *ui.OverlayRegistry
	scene    *ui.Scene
	hud      *ui.HUD
	controls *ui.ControlsPanel
	perf     *ui.PerfPanel

	showPerf    bool
	showHelp    bool
	defaultZoom float64

	screenWidth, screenHeight int32
}

// NewView creates a view sized to the configured screen.
func NewView(m *Mission) *View {
	sc := m.cfg.Screen
	w, h := int32(sc.Width), int32(sc.Height)

	cam := camera.New(float64(w), float64(h), m.env.EarthCircumference, sc.PixelsPerM)
	overlays := ui.NewOverlayRegistry()

	return &View{
		m:            m,
		camera:       cam,
		overlays:     overlays,
		scene:        ui.NewScene(cam, m.env, overlays),
		hud:          ui.NewHUD(),
		controls:     ui.NewControlsPanel(10, 80, 240),
		perf:         ui.NewPerfPanel(10, h-220),
		showHelp:     sc.ShowHelpBar,
		defaultZoom:  sc.PixelsPerM,
		screenWidth:  w,
		screenHeight: h,
	}
}

// Update handles input and moves the camera to the latest snapshot.
func (v *View) Update() {
	v.handleInput()
	v.scene.Update(v.m.runner.Latest())
}

// Draw renders one frame.
func (v *View) Draw() {
	s := v.m.runner.Latest()

	rl.BeginDrawing()
	defer rl.EndDrawing()

	v.scene.Draw(s)

	v.hud.Draw(ui.HUDData{
		Title:        "Launch",
		Snapshot:     s,
		Speed:        v.m.runner.Speed(),
		FPS:          rl.GetFPS(),
		ScreenWidth:  v.screenWidth,
		ScreenHeight: v.screenHeight,
	})
	if v.overlays.IsEnabled(ui.OverlayTelemetry) {
		v.hud.DrawTelemetry(s, v.screenWidth)
	}

	for _, cmd := range v.controls.Draw(s, v.overlays) {
		v.m.runner.Post(cmd)
	}

	if v.showPerf {
		if stats := v.m.PerfStats(); stats != nil {
			rows := make([]ui.StageRow, 0, len(stats.Stages))
			for name, st := range stats.Stages {
				rows = append(rows, ui.StageRow{Name: name, Avg: st.Avg, Max: st.Max})
			}
			v.perf.Draw(ui.PerfPanelData{
				Stages:      rows,
				Total:       stats.AvgTick,
				TicksPerSec: stats.TicksPerSecond,
				RefreshRate: stats.RefreshRate,
			})
		}
	}

	if v.showHelp {
		v.hud.DrawControls(v.screenWidth, v.screenHeight, helpText)
	}
}
