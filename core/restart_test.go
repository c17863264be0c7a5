package core

import "testing"

func TestHandlePlaybackRestartWaitsForBothPipelines(t *testing.T) {
	f := newFixture(DefaultOptions())
	f.ctx.VideoStatus = StatusReady
	f.ctx.AudioStatus = StatusSyncing

	f.ctx.HandlePlaybackRestart()

	if f.ctx.VideoStatus != StatusReady {
		t.Errorf("video promoted to %v before audio caught up", f.ctx.VideoStatus)
	}
	if f.ctx.RestartComplete {
		t.Error("restart completed before both pipelines reached ready")
	}
}

func TestHandlePlaybackRestartPromotesAndFinalizes(t *testing.T) {
	f := newFixture(DefaultOptions())
	f.readyPipelines()
	f.audio.ClockPTS = 12.5

	var restarts int
	f.ctx.OnEvent(func(e Event) {
		if e.Type == EventPlaybackRestart {
			restarts++
		}
	})

	f.ctx.HandlePlaybackRestart()

	if f.ctx.VideoStatus != StatusPlaying {
		t.Errorf("VideoStatus = %v, want StatusPlaying", f.ctx.VideoStatus)
	}
	if !f.ctx.RestartComplete {
		t.Fatal("expected RestartComplete to be set")
	}
	if restarts != 1 {
		t.Errorf("EventPlaybackRestart fired %d times, want exactly 1", restarts)
	}

	// A second call with pipelines still ready must not double-fire.
	f.ctx.HandlePlaybackRestart()
	if restarts != 1 {
		t.Errorf("EventPlaybackRestart fired again on a settled restart: %d", restarts)
	}
}

func TestHandlePlaybackRestartCachePauseInitial(t *testing.T) {
	opts := DefaultOptions()
	opts.CachePauseInitial = true
	f := newFixture(opts)
	f.ctx.VideoStatus = StatusReady
	f.ctx.AudioStatus = StatusReady

	f.ctx.HandlePlaybackRestart()

	if !f.ctx.PausedForCache {
		t.Error("expected cache_pause_initial to set PausedForCache")
	}
	if f.ctx.CacheBuffer != 0 {
		t.Errorf("CacheBuffer = %d, want 0", f.ctx.CacheBuffer)
	}
}

func TestHandlePlaybackRestartDefersToNewerSeek(t *testing.T) {
	f := newFixture(DefaultOptions())
	f.ctx.VideoStatus = StatusPlaying
	f.ctx.AudioStatus = StatusReady
	f.ctx.Seek = SeekRequest{Type: SeekAbsolute, Amount: 30}

	f.ctx.HandlePlaybackRestart()

	if f.audio.FillCalls != 0 {
		t.Errorf("FillBuffer called %d times, want 0 (deferred to the newer seek)", f.audio.FillCalls)
	}
	if len(f.demux.SeekCalls) != 1 {
		t.Errorf("demuxer seek calls = %d, want 1", len(f.demux.SeekCalls))
	}
	if f.ctx.RestartComplete {
		t.Error("restart should not finalize while deferring to a newer seek")
	}
}
