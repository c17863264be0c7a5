package core

// RelativeTime returns the number of seconds elapsed since the last call
// (0 for the first call, which only sets the anchor) and advances the
// internal monotonic anchor.
func (c *Context) RelativeTime() float64 {
	now := c.now()
	var delta float64
	if !c.lastTime.IsZero() {
		delta = now.Sub(c.lastTime).Seconds()
	}
	c.lastTime = now
	return delta
}

// UpdateCoreIdleState recomputes PlaybackActive from its component gates
// and emits CoreIdle + updates the screensaver policy on any transition.
func (c *Context) UpdateCoreIdleState() {
	eof := c.VideoStatus == StatusEOF && c.AudioStatus == StatusEOF
	active := !c.Paused && c.RestartComplete && c.Playing && c.InPlayloop && !eof

	if c.PlaybackActive != active {
		c.PlaybackActive = active
		c.updateScreensaverState()
		c.emit(Event{Type: EventCoreIdle})
	}
}

func (c *Context) updateScreensaverState() {
	if c.VideoOutput == nil {
		return
	}
	suppress := c.PlaybackActive && c.Opts.StopScreensaver
	c.VideoOutput.SetScreensaverSuppressed(suppress)
}
