package core

import "testing"

func TestQueueSeekCoalescing(t *testing.T) {
	tests := []struct {
		name    string
		initial SeekRequest
		t       SeekType
		amount  float64
		exact   Precision
		flags   SeekFlags
		want    SeekRequest
	}{
		{
			name:    "relative onto none sets type and exact",
			initial: SeekRequest{},
			t:       SeekRelative,
			amount:  5,
			exact:   SeekExact,
			want:    SeekRequest{Type: SeekRelative, Amount: 5, Exact: SeekExact},
		},
		{
			name:    "relative sums amount and raises exact",
			initial: SeekRequest{Type: SeekRelative, Amount: 5, Exact: SeekDefault},
			t:       SeekRelative,
			amount:  3,
			exact:   SeekExact,
			want:    SeekRequest{Type: SeekRelative, Amount: 8, Exact: SeekExact},
		},
		{
			name:    "relative onto factor is dropped",
			initial: SeekRequest{Type: SeekFactor, Amount: 0.5, Exact: SeekDefault},
			t:       SeekRelative,
			amount:  3,
			exact:   SeekExact,
			want:    SeekRequest{Type: SeekFactor, Amount: 0.5, Exact: SeekDefault},
		},
		{
			name:    "relative onto absolute stays absolute",
			initial: SeekRequest{Type: SeekAbsolute, Amount: 10, Exact: SeekDefault},
			t:       SeekRelative,
			amount:  3,
			exact:   SeekExact,
			want:    SeekRequest{Type: SeekAbsolute, Amount: 13, Exact: SeekExact},
		},
		{
			name:    "absolute overwrites pending relative",
			initial: SeekRequest{Type: SeekRelative, Amount: 5, Exact: SeekExact},
			t:       SeekAbsolute,
			amount:  42,
			exact:   SeekDefault,
			want:    SeekRequest{Type: SeekAbsolute, Amount: 42, Exact: SeekDefault},
		},
		{
			name:    "none clears pending",
			initial: SeekRequest{Type: SeekRelative, Amount: 5, Exact: SeekExact},
			t:       SeekNone,
			want:    SeekRequest{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(DefaultOptions())
			f.ctx.Seek = tt.initial
			f.ctx.QueueSeek(tt.t, tt.amount, tt.exact, tt.flags)
			if f.ctx.Seek != tt.want {
				t.Errorf("Seek = %+v, want %+v", f.ctx.Seek, tt.want)
			}
		})
	}
}

func TestQueueSeekClearsAtEndOfFile(t *testing.T) {
	f := newFixture(DefaultOptions())
	f.ctx.StopPlayState = AtEndOfFile
	f.ctx.QueueSeek(SeekRelative, 1, SeekDefault, 0)
	if f.ctx.StopPlayState != KeepPlaying {
		t.Errorf("StopPlayState = %v, want KeepPlaying", f.ctx.StopPlayState)
	}
}

func TestSeekAbsoluteExecutesAgainstDemuxer(t *testing.T) {
	f := newFixture(DefaultOptions())
	f.ctx.PlaybackPTS = 10
	f.ctx.QueueSeek(SeekAbsolute, 50, SeekDefault, 0)
	f.ctx.ExecuteQueuedSeek()

	if len(f.demux.SeekCalls) != 1 {
		t.Fatalf("got %d seek calls, want 1", len(f.demux.SeekCalls))
	}
	if f.demux.SeekCalls[0].PTS != 50 {
		t.Errorf("seek PTS = %v, want 50", f.demux.SeekCalls[0].PTS)
	}
	if f.ctx.Seek.Type != SeekNone {
		t.Errorf("pending seek not cleared after execution")
	}
	if f.ctx.LastSeekPTS != 50 {
		t.Errorf("LastSeekPTS = %v, want 50", f.ctx.LastSeekPTS)
	}
	if f.rec.DiscontinuityCalls != 1 {
		t.Errorf("recorder discontinuity calls = %d, want 1", f.rec.DiscontinuityCalls)
	}
}

func TestSeekRelativeWithoutKnownTimeIsDropped(t *testing.T) {
	f := newFixture(DefaultOptions())
	f.ctx.PlaybackPTS = NOPTS
	f.ctx.LastSeekPTS = NOPTS
	f.ctx.QueueSeek(SeekRelative, 5, SeekDefault, 0)
	f.ctx.ExecuteQueuedSeek()

	if len(f.demux.SeekCalls) != 0 {
		t.Errorf("expected no seek call without a known current time, got %d", len(f.demux.SeekCalls))
	}
}

func TestSeekHrSeekActivatesOnExactRequest(t *testing.T) {
	f := newFixture(DefaultOptions())
	f.ctx.PlaybackPTS = 10
	f.ctx.QueueSeek(SeekAbsolute, 20, SeekExact, 0)
	f.ctx.ExecuteQueuedSeek()

	if !f.ctx.HrSeekActive {
		t.Error("expected hr-seek to activate for an exact absolute seek")
	}
	if f.ctx.HrSeekPTS != 20 {
		t.Errorf("HrSeekPTS = %v, want 20", f.ctx.HrSeekPTS)
	}
}

func TestSeekKeyframeNeverActivatesHrSeek(t *testing.T) {
	f := newFixture(DefaultOptions())
	f.ctx.PlaybackPTS = 10
	f.ctx.QueueSeek(SeekAbsolute, 20, SeekKeyframe, 0)
	f.ctx.ExecuteQueuedSeek()

	if f.ctx.HrSeekActive {
		t.Error("keyframe-precision seek should never activate hr-seek")
	}
}

func TestSeekFactorUsesDuration(t *testing.T) {
	f := newFixture(DefaultOptions())
	f.demux.DurationSec = 200
	f.ctx.PlaybackPTS = 10
	f.ctx.QueueSeek(SeekFactor, 0.25, SeekDefault, 0)
	f.ctx.ExecuteQueuedSeek()

	if len(f.demux.SeekCalls) != 1 {
		t.Fatalf("got %d seek calls, want 1", len(f.demux.SeekCalls))
	}
	if got := f.demux.SeekCalls[0].PTS; got != 50 {
		t.Errorf("seek PTS = %v, want 50 (0.25 * 200)", got)
	}
}

func TestExecuteQueuedSeekDelayGateDefersDuringPendingRestart(t *testing.T) {
	f := newFixture(DefaultOptions())
	f.ctx.PlaybackPTS = 10
	f.ctx.VideoStatus = StatusSyncing
	f.ctx.StartTimestamp = f.ctx.nowSec()
	f.ctx.QueueSeek(SeekAbsolute, 20, SeekDefault, SeekFlagDelay)
	f.ctx.ExecuteQueuedSeek()

	if len(f.demux.SeekCalls) != 0 {
		t.Error("expected the delay gate to defer the seek")
	}
	if f.ctx.Seek.Type == SeekNone {
		t.Error("expected the pending seek to remain queued")
	}
}
