package core

// HandlePlaybackRestart waits for both pipelines to reach at least READY,
// then promotes them to PLAYING together and, once both are settled,
// finalizes the restart (spec.md §4.6).
func (c *Context) HandlePlaybackRestart() {
	if c.AudioStatus < StatusReady || c.VideoStatus < StatusReady {
		return
	}

	if c.Opts.CachePauseInitial && (c.VideoStatus == StatusReady || c.AudioStatus == StatusReady) {
		c.PausedForCache = true
		c.CacheBuffer = 0
		c.UpdateInternalPauseState()
	}

	if c.VideoStatus == StatusReady {
		c.VideoStatus = StatusPlaying
		c.RelativeTime() // consume timer delta to avoid a frame-time jump
		c.Wakeup()
	}

	if c.AudioStatus == StatusReady {
		if c.Seek.Type != SeekNone && c.VideoStatus == StatusPlaying {
			c.HandlePlaybackTime()
			c.ExecuteQueuedSeek()
			return
		}
		if c.AudioOutput != nil {
			c.AudioOutput.FillBuffer()
		}
	}

	if !c.RestartComplete {
		c.HrSeekActive = false
		c.RestartComplete = true
		c.CurrentSeek = SeekRequest{}
		c.AudioAllowSecondChanceSeek = false
		c.HandlePlaybackTime()
		c.emit(Event{Type: EventPlaybackRestart})
		c.UpdateCoreIdleState()
		if !c.PlayingMsgShown {
			// Playing/OSD messages are rendered by the embedder; core only
			// needs to fire the event exactly once per restart.
			c.PlayingMsgShown = true
		}
		c.Wakeup()
		c.ABLoopClip = c.PlaybackPTS < c.Opts.ABLoopB
	}
}
