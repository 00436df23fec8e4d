package ui

import (
	"fmt"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/launch/sim"
)

// ControlsPanel renders the flight controls: launch and abort, per-thruster
// switches, the main engine throttle and the overlay legend. Draw returns the
// commands the user issued this frame; the caller posts them to the runner.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool

	// ThrottlePrefix selects the thrusters the slider drives.
	ThrottlePrefix string
	throttle       float32
	throttleSet    bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer:       NewRenderer(),
		x:              x,
		y:              y,
		width:          width,
		visible:        true,
		ThrottlePrefix: "ME",
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Height returns the panel height for the snapshot's thrusters and the overlay legend.
func (c *ControlsPanel) Height(s *sim.Snapshot, overlays *OverlayRegistry) int32 {
	r := c.renderer
	lh := r.Theme.LineHeight
	h := r.Theme.Padding*2 + lh + 4 // title
	h += 34                         // launch / abort
	h += lh + 28                    // throttle
	h += lh + int32(len(s.Thrusters))*20
	if overlays != nil {
		for _, cat := range overlays.Categories() {
			h += lh + int32(len(overlays.ByCategory(cat)))*lh + 4
		}
	}
	return h
}

// Draw renders the controls panel and returns the commands issued this frame.
func (c *ControlsPanel) Draw(s *sim.Snapshot, overlays *OverlayRegistry) []sim.Command {
	if !c.visible || s == nil {
		return nil
	}

	var cmds []sim.Command
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	innerW := c.width - padding*2

	r.DrawPanel(c.x, c.y, c.width, c.Height(s, overlays))

	x := c.x + padding
	y := c.y + padding

	rl.DrawText("Flight Controls", x, y, 16, rl.White)
	y += lineHeight + 4

	// Launch / abort
	half := float32(innerW-6) / 2
	launchText := "Launch"
	if s.Phase != sim.PhaseIdle {
		launchText = MissionClock(s)
	}
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: half, Height: 26}, launchText) && s.Phase == sim.PhaseIdle {
		cmds = append(cmds, sim.LaunchCommand())
	}
	if gui.Button(rl.Rectangle{X: float32(x) + half + 6, Y: float32(y), Width: half, Height: 26}, "Abort") && s.Phase != sim.PhaseAborted {
		cmds = append(cmds, sim.AbortCommand())
	}
	y += 34

	// Main engine throttle
	if !c.throttleSet {
		if th, ok := c.firstThrottled(s); ok {
			c.throttle = float32(th.Throttle)
		}
		c.throttleSet = true
	}
	rl.DrawText(fmt.Sprintf("%s throttle", c.ThrottlePrefix), x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += lineHeight
	newThrottle := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(innerW - 50), Height: 18},
		"", "",
		c.throttle, 0, 1.05,
	)
	rl.DrawText(fmt.Sprintf("%.2f", c.throttle), x+innerW-44, y+3, r.Theme.FontSize, r.Theme.ValueColor)
	if newThrottle != c.throttle {
		c.throttle = newThrottle
		cmds = append(cmds, sim.ThrottleCommand(c.ThrottlePrefix, float64(newThrottle)))
	}
	y += 28

	// Thruster switches
	rl.DrawText("Thrusters", x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += lineHeight
	for _, th := range s.Thrusters {
		c.drawThrusterState(x, y, th)
		label := "OFF"
		if th.Active {
			label = "ON"
		}
		if gui.Button(rl.Rectangle{X: float32(x + innerW - 44), Y: float32(y), Width: 44, Height: 18}, label) {
			cmds = append(cmds, sim.ThrusterCommand(th.Name, !th.Active))
		}
		y += 20
	}

	if overlays == nil {
		return cmds
	}

	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(x, y, desc, overlays.IsEnabled(desc.ID), innerW)
			y += lineHeight
		}

		y += 4
	}

	return cmds
}

func (c *ControlsPanel) firstThrottled(s *sim.Snapshot) (sim.ThrusterState, bool) {
	for _, th := range s.Thrusters {
		if strings.HasPrefix(th.Name, c.ThrottlePrefix) {
			return th, true
		}
	}
	return sim.ThrusterState{}, false
}

// drawThrusterState draws a thruster's name with a firing indicator.
func (c *ControlsPanel) drawThrusterState(x, y int32, th sim.ThrusterState) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	switch {
	case th.Firing:
		statusColor = rl.Color{R: 255, G: 150, B: 50, A: 255}
	case th.Active:
		statusColor = rl.Color{R: 200, G: 100, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+4, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if th.Active {
		nameColor = rl.White
	}
	rl.DrawText(th.Name, x+14, y+3, r.Theme.FontSize, nameColor)
	if th.Gimbal != 0 {
		rl.DrawText(fmt.Sprintf("%+.1f deg", th.Gimbal), x+r.Theme.LabelWidth+20, y+3, r.Theme.FontSize, r.Theme.ValueColor)
	}
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "vectors":
		return "Vectors"
	case "scene":
		return "Scene"
	case "panels":
		return "Panels"
	default:
		return cat
	}
}
