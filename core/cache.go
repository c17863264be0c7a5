package core

// HandlePauseOnLowCache runs the cache-based pause controller: it enters
// cache-pause on underrun and leaves it once the reader has buffered enough
// ahead, and maintains the CacheBuffer percentage and CACHE_UPDATE events.
func (c *Context) HandlePauseOnLowCache() {
	if c.Demuxer == nil {
		return
	}

	forceUpdate := false
	now := c.nowSec()

	info := c.Demuxer.CacheInfo()
	state := c.Demuxer.ReaderState()

	cacheBuffer := 100
	usePauseOnLowCache := info.Size > 0 || c.Demuxer.IsNetwork()

	if c.RestartComplete && usePauseOnLowCache {
		if c.Paused && c.PausedForCache {
			if !state.Underrun && (!c.Opts.CachePause || state.Idle || state.TsDuration >= c.Opts.CachePauseWait) {
				c.PausedForCache = false
				c.UpdateInternalPauseState()
				forceUpdate = true
			}
			c.SetTimeout(0.2)
		} else {
			if c.Opts.CachePause && state.Underrun {
				c.PausedForCache = true
				c.UpdateInternalPauseState()
				c.CacheStopTime = now
				forceUpdate = true
			}
		}
		if c.PausedForCache {
			cacheBuffer = int(100 * clamp(state.TsDuration/c.Opts.CachePauseWait, 0, 0.99))
		}
	}

	busy := !state.Idle || !info.Idle
	if busy || c.NextCacheUpdate > 0 {
		if c.NextCacheUpdate <= now {
			if busy {
				c.NextCacheUpdate = now + 0.25
			} else {
				c.NextCacheUpdate = 0
			}
			forceUpdate = true
		}
		if c.NextCacheUpdate > 0 {
			c.SetTimeout(c.NextCacheUpdate - now)
		}
	}

	if c.CacheBuffer != cacheBuffer {
		c.CacheBuffer = cacheBuffer
		forceUpdate = true
	}

	if state.EOF && !busy {
		c.prefetchNext()
	}

	if forceUpdate {
		c.emit(Event{Type: EventCacheUpdate})
	}
}

func (c *Context) prefetchNext() {
	if c.OnPrefetchNext != nil {
		c.OnPrefetchNext()
	}
}

// GetCacheBufferingPercentage returns -1 if there is no demuxer.
func (c *Context) GetCacheBufferingPercentage() int {
	if c.Demuxer == nil {
		return -1
	}
	return c.CacheBuffer
}
