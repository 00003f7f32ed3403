package game

// Phase is the coarse state of the game.
type Phase int

const (
	PhaseIdle      Phase = iota // Waiting for the player to start
	PhaseRunning                // Timer running
	PhaseReviewing              // Run stopped, result on display
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseRunning:
		return "Running"
	case PhaseReviewing:
		return "Reviewing"
	default:
		return "Unknown"
	}
}

// OutcomeKind describes what a trigger did.
type OutcomeKind int

const (
	OutcomeStarted OutcomeKind = iota // Idle -> Running
	OutcomeStopped                    // Running -> Reviewing
	OutcomeReset                      // Reviewing -> Idle
)

// String returns a human-readable name for the outcome.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeStarted:
		return "Started"
	case OutcomeStopped:
		return "Stopped"
	case OutcomeReset:
		return "Reset"
	default:
		return "Unknown"
	}
}

// CelebrationPolicy selects how overlapping new records affect the
// celebratory flag's auto-clear.
type CelebrationPolicy string

const (
	// CelebrationRestart keeps a single timer; a new record restarts the window.
	CelebrationRestart CelebrationPolicy = "restart"
	// CelebrationIndependent schedules one timer per record without cancelling
	// earlier ones, so an earlier timer may clear the flag before the latest
	// window has elapsed.
	CelebrationIndependent CelebrationPolicy = "independent"
)

// Valid reports whether p is a known policy.
func (p CelebrationPolicy) Valid() bool {
	return p == CelebrationRestart || p == CelebrationIndependent
}
