package core

// HandleEOF sets the AT_END_OF_FILE terminal signal once both pipelines
// have reached EOF, unless we're paused showing the last video frame.
func (c *Context) HandleEOF() {
	preventEOF := c.Paused && c.VideoOutput != nil && c.VideoOutput.HasFrame()

	hasPipeline := c.AudioOutput != nil || c.VideoOutput != nil
	if hasPipeline && !preventEOF &&
		c.AudioStatus == StatusEOF && c.VideoStatus == StatusEOF &&
		c.StopPlayState == KeepPlaying {
		c.StopPlayState = AtEndOfFile
	}
}

// ABLoopStartTime returns the configured AB-loop A endpoint, or NOPTS.
func (c *Context) ABLoopStartTime() float64 {
	return c.Opts.ABLoopA
}

// HandleLoopFile converts a pending EOF into a seek back to the AB-loop
// start (if configured) or to the beginning of the file (if loop-file is
// configured), in that priority order.
func (c *Context) HandleLoopFile() {
	if c.StopPlayState == AtEndOfFile &&
		(hasPTS(c.Opts.ABLoopA) || hasPTS(c.Opts.ABLoopB)) {
		// Assumes ExecuteQueuedSeek happens before the next audio/video is
		// attempted to be decoded or filtered.
		c.StopPlayState = KeepPlaying
		start := c.ABLoopStartTime()
		if !hasPTS(start) {
			start = 0
		}
		c.QueueSeek(SeekAbsolute, start, SeekExact, SeekFlagNoFlush)
		return
	}

	if c.Opts.LoopFile != 0 && c.StopPlayState == AtEndOfFile {
		c.StopPlayState = KeepPlaying
		c.QueueSeek(SeekAbsolute, 0, SeekDefault, SeekFlagNoFlush)
		if c.Opts.LoopFile > 0 {
			c.Opts.LoopFile--
		}
	}
}

// SeekToLastFrame synthesizes a very-exact absolute seek to the end of the
// file, so the last frame can be held on screen once decoding actually
// reaches it.
func (c *Context) SeekToLastFrame() {
	if c.VideoOutput == nil {
		return
	}
	if c.HrSeekLastframe {
		return // already tried this
	}
	end := c.PlayEndPTS
	if !hasPTS(end) {
		end = c.GetTimeLength()
	}
	c.seek(SeekRequest{Type: SeekAbsolute, Amount: end, Exact: SeekVeryExact})
	if c.HrSeekActive {
		c.HrSeekPTS = 1e99 // "infinite"
		c.HrSeekLastframe = true
	}
}

// HandleKeepOpen reverts a pending EOF and pins the displayed frame when
// keep-open is configured and there is no next playlist entry to advance to.
func (c *Context) HandleKeepOpen() {
	hasNext := c.HasNextPlaylistEntry != nil && c.HasNextPlaylistEntry()
	if c.Opts.KeepOpen != 0 && c.StopPlayState == AtEndOfFile &&
		(c.Opts.KeepOpen == 2 || !hasNext) && c.Opts.LoopTimes == 1 {
		c.StopPlayState = KeepPlaying
		if c.VideoOutput != nil {
			if !c.VideoOutput.HasFrame() {
				c.SeekToLastFrame()
			}
			c.PlaybackPTS = c.LastVOPts
		}
		if c.Opts.KeepOpenPause {
			c.SetPauseState(true)
		}
	}
}

// HandleSstep queues the next step-seek when step_sec is configured, and
// pauses when video reaches EOF while a frame-step is still pending.
func (c *Context) HandleSstep() {
	if c.StopPlayState != KeepPlaying || !c.RestartComplete {
		return
	}

	if c.Opts.StepSec > 0 && !c.Paused {
		c.QueueSeek(SeekRelative, c.Opts.StepSec, SeekDefault, 0)
	}

	if c.VideoStatus >= StatusEOF {
		if c.Opts.PlayFrames > 0 && c.StopPlayState == KeepPlaying {
			c.StopPlayState = AtEndOfFile // force EOF even if audio left
		}
		if c.StepFrames > 0 && !c.Paused {
			c.SetPauseState(true)
		}
	}
}

// StepFrame implements add_step_frame: dir > 0 steps one frame forward
// (unpausing to let the video writer consume it and re-pause), dir < 0
// backsteps via a very-exact backward seek.
func (c *Context) StepFrame(dir int) {
	if c.VideoOutput == nil {
		return
	}
	if dir > 0 {
		c.StepFrames++
		c.SetPauseState(false)
	} else if dir < 0 {
		if !c.HrSeekActive {
			c.QueueSeek(SeekBackstep, 0, SeekVeryExact, 0)
			c.SetPauseState(true)
		}
	}
}
