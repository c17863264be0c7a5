package core

import (
	"time"

	"github.com/dweymouth/playcore/media"
	"github.com/dweymouth/playcore/media/memory"
)

// testFixture bundles a Context with its fake collaborators for assertions,
// and an adjustable fake clock.
type testFixture struct {
	ctx   *Context
	clock time.Time

	demux *memory.Demuxer
	audio *memory.AudioOutput
	video *memory.VideoOutput
	input *memory.Input
	rec   *memory.Recorder
	enc   *memory.Encoder
}

func newFixture(opts Options) *testFixture {
	f := &testFixture{clock: time.Unix(1700000000, 0)}

	f.demux = memory.NewDemuxer(100)
	f.audio = memory.NewAudioOutput()
	f.video = memory.NewVideoOutput()
	f.input = &memory.Input{}
	f.rec = &memory.Recorder{}
	f.enc = &memory.Encoder{}

	c := New(opts)
	c.now = func() time.Time { return f.clock }
	c.Demuxer = f.demux
	c.AudioOutput = f.audio
	c.VideoOutput = f.video
	c.Input = f.input
	c.Recorder = f.rec
	c.Encoder = f.enc
	c.Playing = true
	c.PlaybackInitialized = true

	f.ctx = c
	return f
}

func (f *testFixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}

// readyPipelines puts both pipelines at StatusReady, a precondition several
// handlers (restart, step, EOF) assume.
func (f *testFixture) readyPipelines() {
	f.ctx.VideoStatus = StatusReady
	f.ctx.AudioStatus = StatusReady
}

func (f *testFixture) eofPipelines() {
	f.ctx.VideoStatus = StatusEOF
	f.ctx.AudioStatus = StatusEOF
}

var _ media.Decoder = (*memory.Decoder)(nil)
