// Package core implements the playback control core: a single-threaded
// cooperative scheduler that coordinates a demuxer, decoders, and audio/video
// outputs through start, seek, underrun, and end-of-file.
package core

import (
	"math"
	"time"

	"github.com/dweymouth/playcore/media"
)

// NOPTS is the sentinel for an unknown/unset presentation timestamp or
// duration. Every time accessor must preserve it through arithmetic without
// producing a spurious finite value.
const NOPTS = media.NOPTS

func hasPTS(v float64) bool { return v != NOPTS }

// StopPlay is the terminal signal a playloop iteration leaves for the
// outer player driver to observe.
type StopPlay int

const (
	KeepPlaying StopPlay = iota
	AtEndOfFile
	PTQuit
)

// Status is the readiness ladder a pipeline (audio or video) climbs through
// during a restart cycle.
type Status int

const (
	StatusNone Status = iota
	StatusSyncing
	StatusReady
	StatusPlaying
	StatusDraining
	StatusEOF
)

// SeekType identifies the kind of seek a caller requested.
type SeekType int

const (
	SeekNone SeekType = iota
	SeekRelative
	SeekAbsolute
	SeekFactor
	SeekBackstep
)

// Precision is the requested accuracy of a seek.
type Precision int

const (
	SeekKeyframe Precision = iota
	SeekDefault
	SeekExact
	SeekVeryExact
)

// SeekFlags are bit flags that modify how a queued seek is executed.
type SeekFlags int

const (
	SeekFlagDelay SeekFlags = 1 << iota
	SeekFlagNoFlush
)

// SeekRequest describes a pending or just-executed seek.
type SeekRequest struct {
	Type   SeekType
	Amount float64
	Exact  Precision
	Flags  SeekFlags
}

// Chapter is one entry of the chapter list.
type Chapter struct {
	ID    string
	PTS   float64
	Title string
}

// ForceVO controls when the video-output housekeeping handler creates a
// window even though there is no real video to show.
type ForceVO int

const (
	ForceVONever ForceVO = iota
	ForceVOWhenLoaded
	ForceVOAlways
)

// LoopFile is the loop-file counter: LoopInfinite means loop forever,
// any non-negative value is a remaining-loops counter that counts down to 0.
const LoopInfinite = -1

// Options holds the recognized playback options from spec.md §6.
type Options struct {
	Pause bool

	CorrectPTS          bool
	HrSeek              int // <0 off, 0 default, >0 on
	HrSeekFramedrop     bool
	HrSeekDemuxerOffset float64

	CachePause        bool
	CachePauseWait    float64
	CachePauseInitial bool

	ABLoopA, ABLoopB float64 // NOPTS if unset

	LoopFile  int // LoopInfinite, or a non-negative remaining count
	LoopTimes int

	KeepOpen      int // 0, 1, 2
	KeepOpenPause bool

	StepSec float64

	CursorAutohideDelay int // ms; -2 force hide, -1 force show
	CursorAutohideFS    bool
	StopScreensaver     bool

	ForceVO ForceVO

	PlayingMsg    string
	OSDPlayingMsg string

	PlayFrames int

	PlayerIdleMode bool
}

// DefaultOptions returns the defaults mpv itself ships with.
func DefaultOptions() Options {
	return Options{
		CorrectPTS:     true,
		CachePauseWait: 1,
		ABLoopA:        NOPTS,
		ABLoopB:        NOPTS,
		LoopFile:       0,
		LoopTimes:      1,
		KeepOpen:       0,
		PlayFrames:     -1,
	}
}

// Context is the single mutable hub of the playback core (PlayerContext in
// the spec). One goroutine owns it and runs the playloop; every other
// goroutine communicates through the Dispatch queue.
type Context struct {
	Opts Options

	// collaborators
	Demuxer     media.Demuxer
	AudioOutput media.AudioOutput
	VideoOutput media.VideoOutput
	Decoders       []media.Decoder
	ExternalTracks []media.ExternalTrack
	Input          media.Input
	Filter      media.FilterGraph
	Recorder    media.Recorder
	Encoder     media.Encoder

	Dispatch *Dispatch

	// Clocking
	lastTime        time.Time
	Sleeptime       float64
	InDispatch      bool
	StartTimestamp  float64
	lastIdleTick    float64
	// TimeFrame is the video scheduler's time-to-next-frame accumulator.
	// Pause/resume must subtract or discard elapsed time from it so it
	// isn't corrupted by time spent paused.
	TimeFrame float64

	// Playback state
	UserPause          bool
	PausedForCache     bool
	Paused             bool
	PlaybackActive     bool
	Playing            bool
	PlaybackInitialized bool
	RestartComplete    bool
	InPlayloop         bool
	StopPlayState      StopPlay
	StepFrames         int
	maxFrames          int
	VideoStatus        Status
	AudioStatus        Status
	PlayingMsgShown    bool

	// Time & PTS
	PlaybackPTS float64
	LastSeekPTS float64
	LastVOPts   float64
	VideoPTS    float64

	HrSeekActive    bool
	HrSeekPTS       float64
	HrSeekFramedrop bool
	HrSeekBackstep  bool
	HrSeekLastframe bool

	AudioAllowSecondChanceSeek bool

	// Seek request
	Seek        SeekRequest
	CurrentSeek SeekRequest

	// Caching
	CacheBuffer     int
	CacheStopTime   float64
	NextCacheUpdate float64

	// Chapters / loop
	Chapters        []Chapter
	LastChapter     int
	LastChapterSeek int
	LastChapterPTS  float64
	ABLoopClip      bool

	// Window / cursor
	MouseEventTS      uint64
	MouseTimer        float64
	MouseCursorVisible bool

	// OnPrefetchNext is called when the demuxer reports EOF while idle, so
	// the embedder can start loading the next playlist entry ahead of time.
	OnPrefetchNext func()

	// HasNextPlaylistEntry reports whether there is a next playlist entry
	// to advance to, for the keep-open handler. Treated as false if unset.
	HasNextPlaylistEntry func() bool

	// PlayStartPTS / PlayEndPTS bound the portion of the file to be played
	// (e.g. --start/--end); NOPTS means unbounded.
	PlayStartPTS, PlayEndPTS float64

	// HasVideoChain reports whether a video track is currently selected
	// and decoding (as opposed to audio-only or idle). Set by the embedder.
	HasVideoChain bool

	// NewVideoOutput constructs a VideoOutput on demand for force-window
	// housekeeping. Required for ForceVO settings other than ForceVONever.
	NewVideoOutput func() (media.VideoOutput, error)

	// OSDWantRedraw reports whether a pending OSD message needs a redraw.
	// The OSD module itself is out of scope; this is its sole touchpoint.
	OSDWantRedraw func() bool

	// CommandHandler processes one drained input command. The input
	// subsystem is out of scope; this is its sole touchpoint.
	CommandHandler func(media.Command)

	// OnUpdateDemuxerProperties lets the embedder refresh cached metadata
	// (chapters, duration) derived from the demuxer once per iteration.
	OnUpdateDemuxerProperties func()

	// OnCommandUpdates lets a client-API/property-observer layer (out of
	// scope here) react once per iteration.
	OnCommandUpdates func()

	// OnUpdateOSDMsg lets the embedder refresh its OSD status line. The OSD
	// module itself is out of scope; this is its sole touchpoint.
	OnUpdateOSDMsg func()

	// OnUpdateSubtitles is called with the current playback PTS once video
	// has reached EOF, so external subtitle tracks keep advancing. The
	// subtitle module itself is out of scope; this is its sole touchpoint.
	OnUpdateSubtitles func(pts float64)

	events *eventBus

	now func() time.Time // overridable for tests
}

// New constructs a Context and its dispatch queue. The collaborators
// (Demuxer, outputs, decoders, ...) must be assigned before the first
// playloop iteration runs.
func New(opts Options) *Context {
	c := &Context{
		Opts:            opts,
		Dispatch:        NewDispatch(),
		Sleeptime:       math.Inf(1),
		PlaybackPTS:     NOPTS,
		LastSeekPTS:     NOPTS,
		LastVOPts:       NOPTS,
		VideoPTS:        NOPTS,
		HrSeekPTS:       NOPTS,
		LastChapter:     -2,
		LastChapterSeek: -2,
		LastChapterPTS:  NOPTS,
		ABLoopClip:      true,
		CacheBuffer:     -1,
		PlayStartPTS:    NOPTS,
		PlayEndPTS:      NOPTS,
		now:             time.Now,
		events:          newEventBus(),
		UserPause:       opts.Pause,
	}
	return c
}

func (c *Context) nowSec() float64 {
	return float64(c.now().UnixNano()) / 1e9
}
