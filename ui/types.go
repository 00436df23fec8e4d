// Package ui draws the flight: the scene, the HUD panels and the raygui controls.
// Panel contents are described by field descriptors read from a sim.Snapshot, so
// new readouts are added as data rather than drawing code.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/launch/sim"
)

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text with format string
	WidgetBar                           // Progress bar [0, 1]
	WidgetCenteredBar                   // Bar centered on zero over a custom range
	WidgetFuel                          // Tank level: Getter is stored, Capacity is capacity
	WidgetSection                       // Section header
	WidgetSpacer                        // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float64
	Max float64
}

// FieldDescriptor defines how to display a single readout.
type FieldDescriptor struct {
	ID         string                      // Unique identifier for the field
	Label      string                      // Display label
	Widget     WidgetType                  // How to render
	Format     string                      // Printf format for text (e.g., "%.2f")
	Range      FieldRange                  // Value range for bars
	Visible    func(*sim.Snapshot) bool    // Optional visibility check (nil = always visible)
	Getter     func(*sim.Snapshot) float64 // Value extractor (for numeric fields)
	TextGetter func(*sim.Snapshot) string  // Value extractor (for text fields)
	Capacity   func(*sim.Snapshot) float64 // Full-scale value (for fuel fields)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string                   // Unique identifier
	Title   string                   // Section header text
	Fields  []FieldDescriptor        // Fields in this section
	Visible func(*sim.Snapshot) bool // Optional visibility check for entire section
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg         rl.Color
	PanelBorder     rl.Color
	SectionHeader   rl.Color
	LabelColor      rl.Color
	ValueColor      rl.Color
	BarBg           rl.Color
	BarFill         rl.Color
	BarFillLow      rl.Color
	BarFillMedium   rl.Color
	BarFillHigh     rl.Color
	BarFillNegative rl.Color
	BarFillPositive rl.Color
	Padding         int32
	LineHeight      int32
	LabelWidth      int32
	BarHeight       int32
	FontSize        int32
	HeaderFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:         rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder:     rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:   rl.Yellow,
		LabelColor:      rl.LightGray,
		ValueColor:      rl.RayWhite,
		BarBg:           rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:         rl.Color{R: 100, G: 150, B: 200, A: 255},
		BarFillLow:      rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillMedium:   rl.Color{R: 200, G: 180, B: 100, A: 255},
		BarFillHigh:     rl.Color{R: 100, G: 200, B: 100, A: 255},
		BarFillNegative: rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillPositive: rl.Color{R: 100, G: 200, B: 100, A: 255},
		Padding:         10,
		LineHeight:      16,
		LabelWidth:      90,
		BarHeight:       12,
		FontSize:        12,
		HeaderFontSize:  14,
	}
}
