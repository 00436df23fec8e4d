package ui

import (
	"fmt"
	"sort"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/launch/sim"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Snapshot     *sim.Snapshot
	Speed        float64 // simulated seconds per wall second
	FPS          int32
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	sections []SectionDescriptor
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		sections: FlightSections(),
	}
}

// Draw renders the title bar, mission clock and status line.
func (h *HUD) Draw(data HUDData) {
	s := data.Snapshot
	if s == nil {
		return
	}

	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	clockText := MissionClock(s)
	clockWidth := rl.MeasureText(clockText, 28)
	rl.DrawText(clockText, (data.ScreenWidth-clockWidth)/2, 10, 28, phaseColor(s.Phase))

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %.1fx | FPS: %d", s.Tick, data.Speed, data.FPS),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(s.Phase.String(), 10, 55, 16, phaseColor(s.Phase))
}

// DrawTelemetry renders the flight readout panel anchored to the top right.
func (h *HUD) DrawTelemetry(s *sim.Snapshot, screenWidth int32) {
	if s == nil {
		return
	}
	r := h.renderer
	width := int32(260)
	x := screenWidth - width - 10
	y := int32(10)

	sections := append(h.sections[:len(h.sections):len(h.sections)], FuelSection(s))

	height := r.Theme.Padding * 2
	for _, sd := range sections {
		height += r.SectionHeight(sd, s)
	}
	r.DrawPanel(x, y, width, height)

	cy := y + r.Theme.Padding
	for _, sd := range sections {
		cy = r.DrawSection(x+r.Theme.Padding, cy, sd, s, width-r.Theme.Padding*2)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

func phaseColor(p sim.Phase) rl.Color {
	switch p {
	case sim.PhaseCountdown:
		return rl.Yellow
	case sim.PhaseLaunched:
		return rl.Green
	case sim.PhaseAborted:
		return rl.Red
	default:
		return rl.LightGray
	}
}

// StageRow is one line of the perf panel.
type StageRow struct {
	Name string
	Avg  time.Duration
	Max  time.Duration
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	Stages      []StageRow
	Total       time.Duration
	TicksPerSec float64
	RefreshRate float64
}

// PerfPanel renders the physics stage timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel, slowest stage first.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x := p.x
	y := p.y

	rl.DrawText("Physics Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s | %.0f ticks/s | refresh %.0f Hz",
		data.Total.Round(time.Microsecond), data.TicksPerSec, data.RefreshRate), x, y, 14, rl.Yellow)
	y += 16

	rows := append([]StageRow(nil), data.Stages...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Avg > rows[j].Avg })

	for _, row := range rows {
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(row.Avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %6s %5.1f%% max %s", row.Name, row.Avg.Round(time.Microsecond), pct, row.Max.Round(time.Microsecond)),
			x, y, 12, color,
		)
		y += 14
	}
}
