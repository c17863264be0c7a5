// Package memory provides in-memory fake collaborators implementing the
// media package's interfaces, for deterministic core package tests. None of
// these types are safe for concurrent use; the core package only ever
// touches collaborators from its own playloop goroutine.
package memory

import "github.com/dweymouth/playcore/media"

// Demuxer is a fake media.Demuxer backed by a fixed duration and a
// seek-call log, for asserting on the flags/PTS a seek was executed with.
type Demuxer struct {
	DurationSec  float64
	CanSeek      bool
	TsResets     bool
	Network      bool
	Pos          int64
	SeekOK       bool
	Reader       media.ReaderState
	Cache        media.CacheInfo
	Size         int64
	HasSize      bool

	SeekCalls []SeekCall
}

// SeekCall records one Seek invocation for assertions.
type SeekCall struct {
	PTS   float64
	Flags media.DemuxFlags
}

func NewDemuxer(durationSec float64) *Demuxer {
	return &Demuxer{DurationSec: durationSec, CanSeek: true, SeekOK: true, Pos: -1}
}

func (d *Demuxer) Duration() float64         { return d.DurationSec }
func (d *Demuxer) Seekable() bool            { return d.CanSeek }
func (d *Demuxer) TsResetsPossible() bool    { return d.TsResets }
func (d *Demuxer) IsNetwork() bool           { return d.Network }
func (d *Demuxer) Filepos() int64            { return d.Pos }
func (d *Demuxer) ReaderState() media.ReaderState { return d.Reader }
func (d *Demuxer) CacheInfo() media.CacheInfo     { return d.Cache }
func (d *Demuxer) StreamSize() (int64, bool)      { return d.Size, d.HasSize }

func (d *Demuxer) Seek(pts float64, flags media.DemuxFlags) bool {
	d.SeekCalls = append(d.SeekCalls, SeekCall{PTS: pts, Flags: flags})
	return d.SeekOK
}

// Decoder is a fake media.Decoder that always reports its own track ID and
// records Reset/Work calls.
type Decoder struct {
	ID          string
	Video       bool
	Audio       bool
	ResetCalls  int
	WorkCalls   int
	WorkErr     error
	NextFrame   media.Frame
	NextStatus  media.FrameStatus
	TrackOffset float64
}

func (d *Decoder) TrackID() string      { return d.ID }
func (d *Decoder) IsVideo() bool        { return d.Video }
func (d *Decoder) IsAudio() bool        { return d.Audio }
func (d *Decoder) SeekOffset() float64  { return d.TrackOffset }

func (d *Decoder) Reset() error {
	d.ResetCalls++
	return nil
}

func (d *Decoder) Work() error {
	d.WorkCalls++
	return d.WorkErr
}

func (d *Decoder) GetFrame() (media.Frame, media.FrameStatus) {
	return d.NextFrame, d.NextStatus
}

// AudioOutput is a fake media.AudioOutput that reports a fixed clock PTS and
// returns the same settable status from every FillBuffer call.
type AudioOutput struct {
	PauseCalls, ResumeCalls, DrainCalls, FlushCalls, FillCalls int
	ClockPTS                                                   float64
	FillStatus                                                 media.ReportedStatus
	FillErr                                                     error
}

func NewAudioOutput() *AudioOutput {
	return &AudioOutput{ClockPTS: media.NOPTS, FillStatus: media.RStatusPlaying}
}

func (a *AudioOutput) Pause()         { a.PauseCalls++ }
func (a *AudioOutput) Resume()        { a.ResumeCalls++ }
func (a *AudioOutput) Drain()         { a.DrainCalls++ }
func (a *AudioOutput) FlushBuffers()  { a.FlushCalls++ }
func (a *AudioOutput) PTS() float64   { return a.ClockPTS }

func (a *AudioOutput) FillBuffer() (media.ReportedStatus, error) {
	a.FillCalls++
	return a.FillStatus, a.FillErr
}

// VideoOutput is a fake media.VideoOutput with every observable flag exposed
// as a plain field for tests to set up and assert on.
type VideoOutput struct {
	Paused              bool
	Configured          bool
	CoverArt            bool
	Frame               bool
	Redrawn             int
	Formats             []string
	Events              media.VOEvents
	CursorVisible       bool
	ScreensaverSuppressed bool
	Fullscreen          bool
	WriteStatus         media.ReportedStatus
	WritePTS            float64
	WriteErr            error
	Uninited            bool
	WantsRedraw         bool
}

func NewVideoOutput() *VideoOutput {
	return &VideoOutput{WritePTS: media.NOPTS}
}

func (v *VideoOutput) SetPaused(p bool) { v.Paused = p }

func (v *VideoOutput) Reconfig(media.VideoParams) error {
	v.Configured = true
	return nil
}

func (v *VideoOutput) Redraw()                            { v.Redrawn++ }
func (v *VideoOutput) QueryFormats() []string              { return v.Formats }
func (v *VideoOutput) QueryAndResetEvents() media.VOEvents { e := v.Events; v.Events = 0; return e }
func (v *VideoOutput) SetCursorVisible(b bool)             { v.CursorVisible = b }
func (v *VideoOutput) SetScreensaverSuppressed(b bool)      { v.ScreensaverSuppressed = b }
func (v *VideoOutput) HasFrame() bool                       { return v.Frame }
func (v *VideoOutput) ConfigOK() bool                        { return v.Configured }
func (v *VideoOutput) IsCoverArt() bool                      { return v.CoverArt }
func (v *VideoOutput) WantRedraw() bool                      { return v.WantsRedraw }
func (v *VideoOutput) GetFullscreen() bool                   { return v.Fullscreen }
func (v *VideoOutput) SetFullscreen(b bool)                  { v.Fullscreen = b }
func (v *VideoOutput) Uninit()                               { v.Uninited = true }

func (v *VideoOutput) WriteVideo() (media.ReportedStatus, float64, error) {
	return v.WriteStatus, v.WritePTS, v.WriteErr
}

// Input is a fake media.Input backed by a queue of commands to replay.
type Input struct {
	Commands  []media.Command
	Delay     float64
	MouseCtr  uint64
}

func (i *Input) ReadCmd() (media.Command, bool) {
	if len(i.Commands) == 0 {
		return media.Command{}, false
	}
	cmd := i.Commands[0]
	i.Commands = i.Commands[1:]
	return cmd, true
}

func (i *Input) GetDelay() float64        { return i.Delay }
func (i *Input) MouseEventCounter() uint64 { return i.MouseCtr }

// FilterGraph is a fake media.FilterGraph that always reports it wants no
// input and has nothing to process, unless configured otherwise.
type FilterGraph struct {
	Wants       map[string]bool
	Sent        []media.Frame
	SentStatus  []media.FrameStatus
	ProcessVal  bool
	FailedVal   bool
	ResetCalls  int
}

func (f *FilterGraph) NeedsInput(trackID string) bool {
	if f.Wants == nil {
		return false
	}
	return f.Wants[trackID]
}

func (f *FilterGraph) SendFrame(_ string, fr media.Frame)    { f.Sent = append(f.Sent, fr) }
func (f *FilterGraph) SendStatus(_ string, s media.FrameStatus) { f.SentStatus = append(f.SentStatus, s) }
func (f *FilterGraph) Process() bool                          { return f.ProcessVal }
func (f *FilterGraph) Failed() bool                            { return f.FailedVal }
func (f *FilterGraph) SeekReset()                              { f.ResetCalls++ }

// Recorder is a fake media.Recorder that counts discontinuity marks.
type Recorder struct {
	DiscontinuityCalls int
}

func (r *Recorder) MarkDiscontinuity() { r.DiscontinuityCalls++ }

// Encoder is a fake media.Encoder with scriptable failure and a
// discontinuity call counter.
type Encoder struct {
	FailedVal          bool
	DiscontinuityCalls int
}

func (e *Encoder) Failed() bool       { return e.FailedVal }
func (e *Encoder) Discontinuity()     { e.DiscontinuityCalls++ }
