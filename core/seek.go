package core

import "github.com/dweymouth/playcore/media"

// QueueSeek coalesces a new seek request into the pending one. See
// spec.md §4.4 and §9 "Open questions" for the exact (deliberately
// non-optimal) RELATIVE-vs-FACTOR coalescing rule.
func (c *Context) QueueSeek(t SeekType, amount float64, exact Precision, flags SeekFlags) {
	c.Wakeup()

	if c.StopPlayState == AtEndOfFile {
		c.StopPlayState = KeepPlaying
	}

	switch t {
	case SeekRelative:
		c.Seek.Flags |= flags
		if c.Seek.Type == SeekFactor {
			return // not common enough to bother doing better
		}
		c.Seek.Amount += amount
		if c.Seek.Type == SeekNone {
			c.Seek.Exact = exact
		} else if exact > c.Seek.Exact {
			c.Seek.Exact = exact
		}
		if c.Seek.Type == SeekAbsolute {
			return
		}
		c.Seek.Type = SeekRelative
	case SeekAbsolute, SeekFactor, SeekBackstep:
		c.Seek = SeekRequest{Type: t, Amount: amount, Exact: exact, Flags: flags}
	case SeekNone:
		c.Seek = SeekRequest{}
	}
}

// ExecuteQueuedSeek runs the pending seek request, if any, subject to the
// delay gate in spec.md §4.4.
func (c *Context) ExecuteQueuedSeek() {
	if c.Seek.Type == SeekNone {
		return
	}

	// Let explicitly imprecise seeks cancel precise seeks.
	if c.HrSeekActive && c.Seek.Exact == SeekKeyframe {
		c.StartTimestamp = negInf
	}

	// If the user seeks continuously, try to finish showing a frame from
	// one location before doing another seek.
	delay := c.Seek.Flags&SeekFlagDelay != 0
	if delay && c.VideoStatus < StatusPlaying && c.nowSec()-c.StartTimestamp < 0.3 {
		return
	}

	c.seek(c.Seek)
	c.Seek = SeekRequest{}
}

const negInf = -1e18

// GetTimeLength returns NOPTS if the demuxer's duration is unknown.
func (c *Context) GetTimeLength() float64 {
	if c.Demuxer == nil {
		return NOPTS
	}
	d := c.Demuxer.Duration()
	if d < 0 {
		return NOPTS
	}
	return d
}

// GetCurrentTime returns the best known current position, or NOPTS.
func (c *Context) GetCurrentTime() float64 {
	if c.Demuxer == nil {
		return NOPTS
	}
	if hasPTS(c.PlaybackPTS) {
		return c.PlaybackPTS
	}
	if hasPTS(c.LastSeekPTS) {
		return c.LastSeekPTS
	}
	return NOPTS
}

// seek is the executor (mp_seek in the original): translates a coalesced
// request into demuxer flags, hr-seek bookkeeping, and the pipeline reset.
func (c *Context) seek(req SeekRequest) {
	if c.Demuxer == nil || req.Type == SeekNone || req.Amount == NOPTS {
		return
	}

	hrSeekVeryExact := req.Exact == SeekVeryExact
	currentTime := c.GetCurrentTime()
	if !hasPTS(currentTime) && req.Type == SeekRelative {
		return
	}
	if !hasPTS(currentTime) {
		currentTime = 0
	}

	seekPTS := NOPTS
	var demuxFlags media.DemuxFlags

	switch req.Type {
	case SeekAbsolute:
		seekPTS = req.Amount
	case SeekBackstep:
		seekPTS = currentTime
		hrSeekVeryExact = true
	case SeekRelative:
		if req.Amount > 0 {
			demuxFlags |= media.SeekForward
		}
		seekPTS = currentTime + req.Amount
	case SeekFactor:
		if length := c.GetTimeLength(); hasPTS(length) {
			seekPTS = req.Amount * length
		}
	}

	demuxPTS := seekPTS

	hrSeek := c.Opts.CorrectPTS && req.Exact != SeekKeyframe &&
		((c.Opts.HrSeek == 0 && req.Type == SeekAbsolute) || c.Opts.HrSeek > 0 || req.Exact >= SeekExact) &&
		hasPTS(seekPTS)

	if req.Type == SeekFactor || req.Amount < 0 ||
		(req.Type == SeekAbsolute && req.Amount < c.LastChapterPTS) {
		c.LastChapterSeek = -2
	}

	// Under certain circumstances, prefer SEEK_FACTOR.
	if req.Type == SeekFactor && !hrSeek &&
		(c.Demuxer.TsResetsPossible() || !hasPTS(seekPTS)) {
		demuxPTS = req.Amount
		demuxFlags |= media.SeekFactorFlag
	}

	if hrSeek {
		hrSeekOffset := c.Opts.HrSeekDemuxerOffset
		if hrSeekVeryExact {
			hrSeekOffset = max(hrSeekOffset, 0.5)
		}
		for _, d := range c.Decoders {
			hrSeekOffset = max(hrSeekOffset, -d.SeekOffset())
		}
		demuxPTS -= hrSeekOffset
		demuxFlags = (demuxFlags | media.SeekHR) &^ media.SeekForward
	}

	if !c.Demuxer.Seekable() {
		demuxFlags |= media.SeekCached
	}

	if !c.Demuxer.Seek(demuxPTS, demuxFlags) {
		return
	}

	for _, t := range c.ExternalTracks {
		if t.Demuxer == nil {
			continue
		}
		pos := demuxPTS + t.Offset // external tracks always get the offset
		if demuxFlags&media.SeekFactorFlag != 0 {
			pos = seekPTS
		}
		t.Demuxer.Seek(pos, 0)
	}

	if req.Flags&SeekFlagNoFlush == 0 && c.AudioOutput != nil {
		c.AudioOutput.FlushBuffers()
	}

	c.ResetPlaybackState()

	if c.Recorder != nil {
		c.Recorder.MarkDiscontinuity()
	}

	c.LastSeekPTS = seekPTS

	if hrSeek {
		c.HrSeekActive = true
		c.HrSeekFramedrop = !hrSeekVeryExact && c.Opts.HrSeekFramedrop
		c.HrSeekBackstep = req.Type == SeekBackstep
		c.HrSeekPTS = seekPTS
	}

	if c.StopPlayState == AtEndOfFile {
		c.StopPlayState = KeepPlaying
	}

	c.StartTimestamp = c.nowSec()
	c.Wakeup()

	c.emit(Event{Type: EventSeek})
	c.emit(Event{Type: EventTick})

	c.AudioAllowSecondChanceSeek = !hrSeek && demuxFlags&media.SeekForward == 0

	c.ABLoopClip = c.LastSeekPTS < c.Opts.ABLoopB

	c.CurrentSeek = req
}
