package core

import (
	"testing"

	"github.com/dweymouth/playcore/media"
)

func TestRunPlayloopDrivesPipelinesToPlaying(t *testing.T) {
	f := newFixture(DefaultOptions())
	f.readyPipelines()
	f.audio.FillStatus = media.RStatusPlaying
	f.video.WriteStatus = media.RStatusPlaying
	f.video.WritePTS = 1.5

	f.ctx.RunPlayloop()

	if !f.ctx.RestartComplete {
		t.Error("expected the restart to complete within one playloop iteration")
	}
	if f.ctx.VideoPTS != 1.5 {
		t.Errorf("VideoPTS = %v, want 1.5", f.ctx.VideoPTS)
	}
}

func TestRunPlayloopStopsOnEncoderFailure(t *testing.T) {
	f := newFixture(DefaultOptions())
	f.enc.FailedVal = true

	f.ctx.RunPlayloop()

	if f.ctx.StopPlayState != PTQuit {
		t.Errorf("StopPlayState = %v, want PTQuit", f.ctx.StopPlayState)
	}
}

func TestRunPlayloopReachesEOF(t *testing.T) {
	f := newFixture(DefaultOptions())
	f.ctx.RestartComplete = true
	f.eofPipelines()
	f.audio.FillStatus = media.RStatusEOF
	f.video.WriteStatus = media.RStatusEOF

	f.ctx.RunPlayloop()

	if f.ctx.StopPlayState != AtEndOfFile {
		t.Errorf("StopPlayState = %v, want AtEndOfFile", f.ctx.StopPlayState)
	}
}

func TestRunPlayloopPushesFramesThroughFilterGraph(t *testing.T) {
	f := newFixture(DefaultOptions())
	decoder := &trackDecoder{id: "v1", frame: media.Frame{PTS: 2}}
	f.ctx.Decoders = []media.Decoder{decoder}

	graph := &wantsInputGraph{wants: true}
	f.ctx.Filter = graph

	// Nothing else in this iteration arms a wakeup (no restart, no
	// pending seek); prime one so the mandatory WaitEvents call later in
	// the iteration doesn't block the test forever.
	f.ctx.Wakeup()
	f.ctx.RunPlayloop()

	if decoder.workCalls != 1 {
		t.Errorf("decoder Work called %d times, want 1", decoder.workCalls)
	}
	if len(graph.sent) != 1 || graph.sent[0].PTS != 2 {
		t.Errorf("graph.sent = %+v, want one frame with PTS 2", graph.sent)
	}
}

// trackDecoder and wantsInputGraph are minimal purpose-built fakes for
// asserting on the complex-filter push/pull wiring, independent of the
// shared memory.Decoder/FilterGraph fakes used elsewhere.
type trackDecoder struct {
	id        string
	frame     media.Frame
	workCalls int
}

func (d *trackDecoder) TrackID() string     { return d.id }
func (d *trackDecoder) IsVideo() bool       { return true }
func (d *trackDecoder) IsAudio() bool       { return false }
func (d *trackDecoder) Reset() error        { return nil }
func (d *trackDecoder) SeekOffset() float64 { return 0 }

func (d *trackDecoder) Work() error {
	d.workCalls++
	return nil
}

func (d *trackDecoder) GetFrame() (media.Frame, media.FrameStatus) {
	return d.frame, media.DataOK
}

type wantsInputGraph struct {
	wants bool
	sent  []media.Frame
}

func (g *wantsInputGraph) NeedsInput(string) bool                    { return g.wants }
func (g *wantsInputGraph) SendFrame(_ string, f media.Frame)          { g.sent = append(g.sent, f) }
func (g *wantsInputGraph) SendStatus(string, media.FrameStatus)       {}
func (g *wantsInputGraph) Process() bool                             { return false }
func (g *wantsInputGraph) Failed() bool                               { return false }
func (g *wantsInputGraph) SeekReset()                                 {}
