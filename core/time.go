package core

// HandlePlaybackTime updates PlaybackPTS from whichever pipeline is
// actively driving the clock: video, if it has a real (non-cover-art)
// frame in flight, otherwise audio.
func (c *Context) HandlePlaybackTime() {
	if c.VideoOutput != nil && !c.VideoOutput.IsCoverArt() &&
		c.VideoStatus >= StatusPlaying && c.VideoStatus < StatusEOF {
		c.PlaybackPTS = c.VideoPTS
		return
	}
	if c.AudioStatus >= StatusPlaying && c.AudioStatus < StatusEOF && c.AudioOutput != nil {
		c.PlaybackPTS = c.AudioOutput.PTS()
	}
}

// GetPlaybackTime is like GetCurrentTime, but clamps a mid-seek estimate
// (one still anchored to LastSeekPTS rather than a decoded frame) into
// [0, duration] so it doesn't read as implausible to a UI.
func (c *Context) GetPlaybackTime() float64 {
	cur := c.GetCurrentTime()
	if !hasPTS(cur) {
		return cur
	}
	if !hasPTS(c.PlaybackPTS) {
		if length := c.GetTimeLength(); hasPTS(length) {
			cur = clamp(cur, 0, length)
		}
	}
	return cur
}

// GetCurrentPosRatio returns playback position as a 0.0-1.0 ratio, or -1 if
// unknown. When useRange is true, the ratio is computed against the
// play-start/play-end window instead of the whole file.
func (c *Context) GetCurrentPosRatio(useRange bool, playStartPTS, playEndPTS float64) float64 {
	if c.Demuxer == nil {
		return -1
	}
	ans := -1.0
	start := 0.0
	length := c.GetTimeLength()

	if useRange {
		startPos := playStartPTS
		endPos := playEndPTS
		if !hasPTS(endPos) || endPos > max(0, length) {
			endPos = max(0, length)
		}
		if !hasPTS(startPos) || startPos < 0 {
			startPos = 0
		}
		if endPos < startPos {
			endPos = startPos
		}
		start = startPos
		length = endPos - startPos
	}

	pos := c.GetCurrentTime()
	if length > 0 && hasPTS(pos) {
		ans = clamp((pos-start)/length, 0, 1)
	}
	if ans < 0 || c.Demuxer.TsResetsPossible() {
		if size, ok := c.Demuxer.StreamSize(); ok && size > 0 {
			if fp := c.Demuxer.Filepos(); fp >= 0 {
				ans = clamp(float64(fp)/float64(size), 0, 1)
			}
		}
	}
	if useRange && c.Opts.PlayFrames > 0 {
		ans = max(ans, 1.0-float64(c.maxFrames)/float64(c.Opts.PlayFrames))
	}
	return ans
}

// GetPercentPos is GetCurrentPosRatio expressed as 0-100, or -1 if unknown.
func (c *Context) GetPercentPos() int {
	pos := c.GetCurrentPosRatio(false, NOPTS, NOPTS)
	if pos < 0 {
		return -1
	}
	return int(pos * 100)
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
