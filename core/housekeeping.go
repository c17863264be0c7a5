package core

import "github.com/dweymouth/playcore/media"

// dummyTickInterval is how often a TICK is synthesized while paused or at
// EOF, so scripts that assume TICK always fires keep working.
const dummyTickInterval = 0.050

// osdRedrawMinInterval is how long after a seek handle_osd_redraw refuses to
// force a redraw, since redrawing mid-seek is significantly slower.
const osdRedrawMinInterval = 0.1

// HandleDummyTicks emits a Tick event at most once per dummyTickInterval
// while paused or at video EOF, for scripts that expect a steady tick.
func (c *Context) HandleDummyTicks() {
	if c.VideoStatus == StatusEOF || c.Paused {
		if c.nowSec()-c.lastIdleTick > dummyTickInterval {
			c.lastIdleTick = c.nowSec()
			c.emit(Event{Type: EventTick})
		}
	}
}

// HandleCursorAutohide recomputes cursor visibility from recent mouse
// activity and the cursor-autohide options.
func (c *Context) HandleCursorAutohide() {
	if c.VideoOutput == nil {
		return
	}

	visible := c.MouseCursorVisible
	now := c.nowSec()

	ts := uint64(0)
	if c.Input != nil {
		ts = c.Input.MouseEventCounter()
	}
	if c.MouseEventTS != ts {
		c.MouseEventTS = ts
		c.MouseTimer = now + float64(c.Opts.CursorAutohideDelay)/1000.0
		visible = true
	}

	if c.MouseTimer > now {
		c.SetTimeout(c.MouseTimer - now)
	} else {
		visible = false
	}

	if c.Opts.CursorAutohideDelay == -1 {
		visible = true
	}
	if c.Opts.CursorAutohideDelay == -2 {
		visible = false
	}
	if c.Opts.CursorAutohideFS && !c.VideoOutput.GetFullscreen() {
		visible = true
	}

	if visible != c.MouseCursorVisible {
		c.VideoOutput.SetCursorVisible(visible)
	}
	c.MouseCursorVisible = visible
}

// HandleVOEvents drains window-system events (resize, window-state,
// fullscreen toggled externally) and emits the corresponding core events.
func (c *Context) HandleVOEvents() {
	if c.VideoOutput == nil {
		return
	}
	events := c.VideoOutput.QueryAndResetEvents()
	if events&media.EventResize != 0 {
		c.emit(Event{Type: EventWinResize})
	}
	if events&media.EventWinState != 0 {
		c.emit(Event{Type: EventWinState})
	}
	if events&media.EventFullscreenState != 0 {
		// Only purpose is to sync the fullscreen flag if it changed "from
		// outside" on the VO; nothing else observes it here.
		c.VideoOutput.GetFullscreen()
	}
}

// HandleOSDRedraw redraws the OSD overlay when it's due, without
// interfering with normal video-driven redraws or mid-seek redraw storms.
// OSDWantRedraw lets the embedder report whether an OSD message changed and
// needs a redraw; treated as always-false if unset.
func (c *Context) HandleOSDRedraw() {
	if c.VideoOutput == nil || !c.VideoOutput.ConfigOK() {
		return
	}
	if !c.Paused {
		if c.Sleeptime < 0.1 && c.VideoStatus == StatusPlaying {
			return
		}
	}
	useVideo := c.HasVideoChain && !c.VideoOutput.IsCoverArt()
	if useVideo && c.nowSec()-c.StartTimestamp < osdRedrawMinInterval {
		c.SetTimeout(osdRedrawMinInterval)
		return
	}
	wantRedraw := c.VideoOutput.WantRedraw()
	if c.OSDWantRedraw != nil && c.OSDWantRedraw() {
		wantRedraw = true
	}
	if !wantRedraw {
		return
	}
	c.VideoOutput.Redraw()
}

// ProcessInput drains the input command queue, dispatching each command to
// CommandHandler (if set), then arms the next wakeup from the input
// subsystem's delay hint.
func (c *Context) ProcessInput() {
	if c.Input == nil {
		return
	}
	for {
		cmd, ok := c.Input.ReadCmd()
		if !ok {
			break
		}
		if c.CommandHandler != nil {
			c.CommandHandler(cmd)
		}
	}
	c.SetTimeout(c.Input.GetDelay())
}
