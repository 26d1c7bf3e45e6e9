package loader

// Mode records why the controller is currently running. Modes are ordered:
// replaying history is also a programmatic combo.
type Mode int

const (
	// ModeIdle means events come from the user.
	ModeIdle Mode = iota
	// ModeProgrammaticCombo means the controller is switching tab and
	// selection itself.
	ModeProgrammaticCombo
	// ModeReplayingHistory means a history entry is being restored.
	ModeReplayingHistory
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeProgrammaticCombo:
		return "programmatic"
	case ModeReplayingHistory:
		return "replaying"
	}
	return "unknown"
}

// enter raises the mode to at least m and returns a func restoring the
// previous mode. Callers defer the returned func.
func (c *Controller) enter(m Mode) func() {
	prev := c.mode
	if m > c.mode {
		c.mode = m
	}
	return func() {
		c.mode = prev
	}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

func (c *Controller) programmatic() bool {
	return c.mode >= ModeProgrammaticCombo
}

func (c *Controller) replaying() bool {
	return c.mode == ModeReplayingHistory
}
