package core

import "github.com/dweymouth/playcore/media"

// RunPlayloop executes one fixed-order iteration of the playback control
// loop (spec.md §4.12). Call it in a loop from the single goroutine that
// owns the Context; it returns once StopPlayState is no longer KeepPlaying,
// or after the one blocking WaitEvents call if playback is ongoing.
func (c *Context) RunPlayloop() {
	c.InPlayloop = true
	defer func() { c.InPlayloop = false }()

	if c.Encoder != nil && c.Encoder.Failed() {
		c.StopPlayState = PTQuit
		return
	}

	c.updateDemuxerProperties()

	c.handleComplexFilterDecoders()

	c.HandleCursorAutohide()
	c.HandleVOEvents()
	c.ProcessCommandUpdates()

	if c.Filter != nil {
		if c.Filter.Process() {
			c.Wakeup()
		}
		if c.Filter.Failed() {
			c.StopPlayState = AtEndOfFile
		}
	}

	c.fillAudioOutBuffers()
	c.writeVideo()

	c.HandlePlaybackRestart()

	c.HandlePlaybackTime()

	c.HandleDummyTicks()

	c.updateOSDMsg()
	if c.VideoStatus == StatusEOF {
		c.updateSubtitles()
	}

	c.HandleEOF()

	c.HandleLoopFile()

	c.HandleKeepOpen()

	c.HandleSstep()

	c.UpdateCoreIdleState()

	if c.StopPlayState != KeepPlaying {
		return
	}

	c.HandleOSDRedraw()

	c.WaitEvents()

	c.HandlePauseOnLowCache()

	c.ProcessInput()

	c.HandleChapterChange()

	c.HandleForceWindow(false)

	c.ExecuteQueuedSeek()
}

// updateDemuxerProperties is a touchpoint for refreshing cached demuxer
// metadata (chapters, duration) that the embedder may want to poll each
// iteration; it is a no-op unless the embedder installs a callback.
func (c *Context) updateDemuxerProperties() {
	if c.OnUpdateDemuxerProperties != nil {
		c.OnUpdateDemuxerProperties()
	}
}

// ProcessCommandUpdates is a touchpoint for the client-API/property-observer
// layer (out of scope here) to be given a chance to react every iteration.
func (c *Context) ProcessCommandUpdates() {
	if c.OnCommandUpdates != nil {
		c.OnCommandUpdates()
	}
}

func (c *Context) updateOSDMsg() {
	if c.OnUpdateOSDMsg != nil {
		c.OnUpdateOSDMsg()
	}
}

func (c *Context) updateSubtitles() {
	if c.OnUpdateSubtitles != nil {
		c.OnUpdateSubtitles(c.PlaybackPTS)
	}
}

// handleComplexFilterDecoders pushes decoded frames into the complex-filter
// graph for every selected track whose sink still wants input, and reports
// an underrun/EOF status to the graph otherwise (spec.md §4.12 step 3,
// supplemented from original_source/player/playloop.c).
func (c *Context) handleComplexFilterDecoders() {
	if c.Filter == nil {
		return
	}
	for _, d := range c.Decoders {
		if !c.Filter.NeedsInput(d.TrackID()) {
			continue
		}
		if err := d.Work(); err != nil {
			continue
		}
		frame, status := d.GetFrame()
		if status == media.DataOK {
			c.Filter.SendFrame(d.TrackID(), frame)
		} else {
			c.Filter.SendStatus(d.TrackID(), status)
		}
	}
}

func (c *Context) fillAudioOutBuffers() {
	if c.AudioOutput == nil {
		return
	}
	status, err := c.AudioOutput.FillBuffer()
	if err != nil {
		return
	}
	c.AudioStatus = fromReportedStatus(status)
}

func (c *Context) writeVideo() {
	if c.VideoOutput == nil {
		return
	}
	status, pts, err := c.VideoOutput.WriteVideo()
	if err != nil {
		return
	}
	c.VideoStatus = fromReportedStatus(status)
	if hasPTS(pts) {
		c.VideoPTS = pts
		c.LastVOPts = pts
	}
}

func fromReportedStatus(s media.ReportedStatus) Status {
	switch s {
	case media.RStatusSyncing:
		return StatusSyncing
	case media.RStatusReady:
		return StatusReady
	case media.RStatusPlaying:
		return StatusPlaying
	case media.RStatusDraining:
		return StatusDraining
	case media.RStatusEOF:
		return StatusEOF
	default:
		return StatusNone
	}
}
