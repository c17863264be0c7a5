package core

// ResetPlaybackState drains the filter graph, resets every selected
// decoder, and clears all per-file PTS/hr-seek bookkeeping. Called after
// every seek and on file load.
func (c *Context) ResetPlaybackState() {
	if c.Filter != nil {
		c.Filter.SeekReset()
	}

	for _, d := range c.Decoders {
		d.Reset()
	}

	c.VideoStatus = StatusNone
	c.AudioStatus = StatusNone
	c.VideoPTS = NOPTS
	c.LastVOPts = NOPTS

	c.HrSeekActive = false
	c.HrSeekFramedrop = false
	c.HrSeekLastframe = false
	c.HrSeekBackstep = false
	c.CurrentSeek = SeekRequest{}
	c.PlaybackPTS = NOPTS
	c.LastSeekPTS = NOPTS
	c.StepFrames = 0
	c.ABLoopClip = true
	c.RestartComplete = false

	if c.Encoder != nil {
		c.Encoder.Discontinuity()
	}

	c.UpdateCoreIdleState()
}
