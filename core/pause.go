package core

// SetPauseState reconciles the requested user pause state with the
// cache-pause flag and propagates the result to the audio/video outputs.
// Emits Pause/Unpause iff the user-visible pause setting actually changed.
func (c *Context) SetPauseState(userPause bool) {
	sendUpdate := c.UserPause != userPause
	c.UserPause = userPause

	effective := c.UserPause || c.PausedForCache
	if effective != c.Paused {
		c.Paused = effective

		if c.AudioOutput != nil {
			if effective {
				c.AudioOutput.Pause()
			} else {
				c.AudioOutput.Resume()
			}
		}
		if c.VideoOutput != nil {
			c.VideoOutput.SetPaused(effective)
		}

		c.Wakeup()

		if effective {
			c.StepFrames = 0
			c.TimeFrame -= c.RelativeTime()
		} else {
			c.RelativeTime() // discard time accumulated while paused
		}
	}

	c.UpdateCoreIdleState()

	if sendUpdate {
		if c.UserPause {
			c.emit(Event{Type: EventPause})
		} else {
			c.emit(Event{Type: EventUnpause})
		}
	}
}

// UpdateInternalPauseState re-runs pause reconciliation after
// PausedForCache changes without the user having requested a pause change.
func (c *Context) UpdateInternalPauseState() {
	c.SetPauseState(c.UserPause)
}
