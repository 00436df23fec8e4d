// Package camera maps flight coordinates (metres, y up, longitude wrapping around
// the Earth) to screen pixels.
package camera

import "math"

// Camera is a 2D viewport that tracks the rocket. World coordinates are float64
// because longitudes reach tens of millions of metres.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float64

	// Zoom in pixels per metre
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// WorldW is the horizontal wrap length (Earth circumference)
	WorldW float64

	// Zoom constraints
	MinZoom, MaxZoom float64

	// GroundMargin is how far below the ground the view may extend, as a fraction
	// of the viewport height.
	GroundMargin float64
}

// New creates a camera looking at the launch pad.
func New(viewportW, viewportH, worldW, zoom float64) *Camera {
	c := &Camera{
		Zoom:         zoom,
		ViewportW:    viewportW,
		ViewportH:    viewportH,
		WorldW:       worldW,
		MinZoom:      0.001,
		MaxZoom:      64,
		GroundMargin: 0.2,
	}
	c.Follow(0, 0)
	return c
}

// WorldToScreen converts world coordinates to screen coordinates, taking the
// shortest way around the wrapped longitude.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float32) {
	dx := wrapDelta(wx, c.X, c.WorldW)
	dy := wy - c.Y
	sx = float32(c.ViewportW/2 + dx*c.Zoom)
	sy = float32(c.ViewportH/2 - dy*c.Zoom)
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float64) {
	dx := (float64(sx) - c.ViewportW/2) / c.Zoom
	dy := (c.ViewportH/2 - float64(sy)) / c.Zoom
	return mod(c.X+dx, c.WorldW), c.Y + dy
}

// Scale converts a length in metres to pixels.
func (c *Camera) Scale(m float64) float32 {
	return float32(m * c.Zoom)
}

// IsVisible returns true if a circle at (wx, wy) with the given radius in metres
// could be on screen.
func (c *Camera) IsVisible(wx, wy, radius float64) bool {
	dx := wrapDelta(wx, c.X, c.WorldW)
	dy := wy - c.Y
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return math.Abs(dx) <= halfW && math.Abs(dy) <= halfH
}

// Follow centers the camera on a point, keeping the ground no higher than
// GroundMargin above the bottom of the screen.
func (c *Camera) Follow(wx, wy float64) {
	c.X = mod(wx, c.WorldW)
	minY := c.ViewportH/(2*c.Zoom) - c.GroundMargin*c.ViewportH/c.Zoom
	c.Y = math.Max(wy, minY)
}

// GroundY returns the screen row of altitude zero.
func (c *Camera) GroundY() float32 {
	_, sy := c.WorldToScreen(c.X, 0)
	return sy
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = math.Min(math.Max(zoom, c.MinZoom), c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// wrapDelta computes the shortest signed distance from 'from' to 'to' on a
// circle of the given size. A non-positive size disables wrapping.
func wrapDelta(to, from, size float64) float64 {
	d := to - from
	if size <= 0 {
		return d
	}
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}

// mod computes the positive modulo (Go's math.Mod can return negative).
func mod(x, m float64) float64 {
	if m <= 0 {
		return x
	}
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}
