package vehicle

// GuidanceComputer is the control logic bound to a rocket. The simulation calls
// LaunchSequenceStart once when a countdown is scheduled, Launch once at zero-time,
// and ControlRocket once per physics tick after that tick's integration.
//
// All three run on the simulation goroutine and must return without blocking.
// Work that has to happen later is queued on a scheduler rather than a goroutine.
type GuidanceComputer interface {
	// LaunchSequenceStart is called when the countdown begins; t is the number of
	// seconds remaining until launch.
	LaunchSequenceStart(r *Rocket, t float64)

	// Launch is called at t = 0.
	Launch(r *Rocket)

	// ControlRocket is called every physics tick with t seconds since launch.
	ControlRocket(r *Rocket, t float64)
}

// NopGuidance ignores every callback.
type NopGuidance struct{}

func (NopGuidance) LaunchSequenceStart(*Rocket, float64) {}
func (NopGuidance) Launch(*Rocket)                       {}
func (NopGuidance) ControlRocket(*Rocket, float64)       {}
