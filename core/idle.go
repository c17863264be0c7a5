package core

// Idle runs one trimmed playloop iteration used while there is no current
// playlist entry: dummy ticks, the blocking wait, input, and window/cursor
// housekeeping, but none of the seek/restart/EOF machinery a loaded file
// needs.
func (c *Context) Idle() {
	c.HandleDummyTicks()
	c.WaitEvents()
	c.ProcessInput()
	c.HandleCursorAutohide()
	c.HandleVOEvents()
	c.HandleOSDRedraw()
}

// IdleLoop runs Idle repeatedly while idle mode is enabled and there is no
// current playlist entry, draining the audio output and forcing a window
// once on entry. The audio output is drained only; it stays assigned and is
// not torn down.
func (c *Context) IdleLoop(currentPlaylistEntry func() bool) {
	needReinit := true
	for c.Opts.PlayerIdleMode && !currentPlaylistEntry() && c.StopPlayState != PTQuit {
		if needReinit {
			if c.AudioOutput != nil {
				c.AudioOutput.Drain()
			}
			c.HandleForceWindow(true)
			c.Wakeup()
			c.emit(Event{Type: EventIdle})
			needReinit = false
		}
		c.Idle()
	}
}
